package reminder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
	"github.com/m04kA/SMC-AppointmentBot/pkg/metrics"
)

const msgReminder = "⏰ Reminder: Your appointment is tomorrow!\n📅 Date: %s\n⏰ Time: %s\nSee you soon!"

// Scheduler планировщик напоминаний о подтвержденных записях.
// На каждого клиента держится не больше одного таймера: повторное
// планирование заменяет предыдущее, отмена снимает таймер.
type Scheduler struct {
	mu      sync.Mutex
	timers  map[int64]*time.Timer
	stopped bool

	lead            time.Duration
	appointmentRepo AppointmentRepository
	notifier        Notifier
	timeProvider    TimeProvider
	metrics         *metrics.Metrics
	logger          Logger
}

// NewScheduler создает новый планировщик напоминаний.
// lead - за сколько до начала записи отправляется напоминание.
func NewScheduler(
	lead time.Duration,
	appointmentRepo AppointmentRepository,
	notifier Notifier,
	timeProvider TimeProvider,
	metricsCollector *metrics.Metrics,
	logger Logger,
) *Scheduler {
	return &Scheduler{
		timers:          make(map[int64]*time.Timer),
		lead:            lead,
		appointmentRepo: appointmentRepo,
		notifier:        notifier,
		timeProvider:    timeProvider,
		metrics:         metricsCollector,
		logger:          logger,
	}
}

// Schedule ставит напоминание на запись клиента.
// Если напоминание уже стояло, оно заменяется новым. Если момент отправки
// уже прошел, напоминание срабатывает сразу.
func (s *Scheduler) Schedule(userID int64, startAt time.Time) {
	fireAt := startAt.Add(-s.lead)
	delay := fireAt.Sub(s.timeProvider.Now())
	if delay < 0 {
		delay = 0
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	if prev, ok := s.timers[userID]; ok {
		prev.Stop()
	}

	s.timers[userID] = time.AfterFunc(delay, func() {
		s.fire(userID)
	})

	s.logger.Info("Reminder: scheduled for user=%d at %s", userID, fireAt.Format(time.RFC3339))
}

// Cancel снимает напоминание клиента. Отсутствие напоминания не ошибка
func (s *Scheduler) Cancel(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if timer, ok := s.timers[userID]; ok {
		timer.Stop()
		delete(s.timers, userID)
		s.logger.Info("Reminder: cancelled for user=%d", userID)
	}
}

// Restore восстанавливает напоминания по подтвержденным записям после
// перезапуска. Записи, чье время уже прошло, пропускаются.
func (s *Scheduler) Restore(ctx context.Context) error {
	appointments, err := s.appointmentRepo.ListConfirmed(ctx)
	if err != nil {
		return fmt.Errorf("reminder: Restore - failed to list appointments: %w", err)
	}

	now := s.timeProvider.Now()
	restored := 0
	for _, appt := range appointments {
		if !appt.StartAt.After(now) {
			continue
		}
		s.Schedule(appt.UserID, appt.StartAt)
		restored++
	}

	s.logger.Info("Reminder: restored %d reminders", restored)

	return nil
}

// Stop останавливает планировщик и снимает все таймеры
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	for userID, timer := range s.timers {
		timer.Stop()
		delete(s.timers, userID)
	}
}

// fire отправляет напоминание. Запись перечитывается из хранилища:
// к моменту срабатывания она могла быть отменена.
func (s *Scheduler) fire(userID int64) {
	s.mu.Lock()
	delete(s.timers, userID)
	s.mu.Unlock()

	ctx := context.Background()

	appt, err := s.appointmentRepo.GetConfirmed(ctx, userID)
	if err != nil {
		s.logger.Warn("Reminder: no confirmed appointment for user=%d, skipping: %v", userID, err)
		return
	}

	text := fmt.Sprintf(msgReminder,
		appt.StartAt.Format(domain.DisplayDateFormat),
		appt.StartAt.Format(domain.DisplayTimeFormat))
	if err := s.notifier.Notify(ctx, userID, text); err != nil {
		s.logger.Error("Reminder: failed to notify user=%d: %v", userID, err)
		return
	}

	if s.metrics != nil {
		s.metrics.RemindersFired.Inc()
	}
	s.logger.Info("Reminder: sent to user=%d", userID)
}
