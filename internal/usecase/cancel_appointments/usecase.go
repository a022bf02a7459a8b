package cancel_appointments

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
)

const msgCancelled = "❌ Your booking on %s has been cancelled by admin"

// UseCase use case для отмены подтвержденных записей администратором -
// точечно по клиенту или всех сразу.
type UseCase struct {
	appointmentRepo AppointmentRepository
	reminders       ReminderScheduler
	notifier        Notifier
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	reminders ReminderScheduler,
	notifier Notifier,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		reminders:       reminders,
		notifier:        notifier,
		logger:          logger,
	}
}

// CancelOne отменяет подтвержденную запись одного клиента.
// Напоминание снимается, запись удаляется безусловно; уведомление клиента
// доставляется по возможности и не блокирует отмену.
func (uc *UseCase) CancelOne(ctx context.Context, req *CancelOneRequest) (*CancelOneResponse, error) {
	uc.logger.Info("CancelAppointments: cancel one, user=%d", req.UserID)

	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	appt, err := uc.appointmentRepo.GetConfirmed(ctx, req.UserID)
	if err != nil {
		uc.logger.Warn("CancelAppointments: failed to get appointment for user=%d: %v", req.UserID, err)
		return nil, ErrAppointmentNotFound
	}

	notified, err := uc.cancel(ctx, appt)
	if err != nil {
		return nil, err
	}

	return &CancelOneResponse{
		Appointment:       appt,
		RequesterNotified: notified,
	}, nil
}

// List возвращает все подтвержденные записи по возрастанию времени начала.
// Администратор смотрит этот список перед точечной отменой.
func (uc *UseCase) List(ctx context.Context) ([]*domain.Appointment, error) {
	appointments, err := uc.appointmentRepo.ListConfirmed(ctx)
	if err != nil {
		uc.logger.Error("CancelAppointments: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}
	return appointments, nil
}

// CancelAll отменяет все подтвержденные записи.
// Клиенты, до которых уведомление не дошло, собираются в ответе - администратор
// видит, кого предупредить вручную.
func (uc *UseCase) CancelAll(ctx context.Context) (*CancelAllResponse, error) {
	uc.logger.Info("CancelAppointments: cancel all")

	appointments, err := uc.appointmentRepo.ListConfirmed(ctx)
	if err != nil {
		uc.logger.Error("CancelAppointments: failed to list appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	resp := &CancelAllResponse{}
	for _, appt := range appointments {
		notified, err := uc.cancel(ctx, appt)
		if err != nil {
			return nil, err
		}
		resp.Cancelled = append(resp.Cancelled, appt)
		if !notified {
			resp.NotifyFailures = append(resp.NotifyFailures, appt.UserID)
		}
	}

	uc.logger.Info("CancelAppointments: cancelled %d appointments, %d notifications failed",
		len(resp.Cancelled), len(resp.NotifyFailures))

	return resp, nil
}

// cancel снимает напоминание, удаляет запись и пытается уведомить клиента
func (uc *UseCase) cancel(ctx context.Context, appt *domain.Appointment) (bool, error) {
	uc.reminders.Cancel(appt.UserID)

	if err := uc.appointmentRepo.DeleteConfirmed(ctx, appt.UserID); err != nil {
		uc.logger.Error("CancelAppointments: failed to delete appointment for user=%d: %v", appt.UserID, err)
		return false, fmt.Errorf("%w: failed to delete appointment: %v", ErrInternal, err)
	}

	notified := true
	text := fmt.Sprintf(msgCancelled, appt.StartAt.Format(domain.ShortDateFormat))
	if err := uc.notifier.Notify(ctx, appt.UserID, text); err != nil {
		uc.logger.Error("CancelAppointments: failed to notify user=%d: %v", appt.UserID, err)
		notified = false
	}

	uc.logger.Info("CancelAppointments: appointment cancelled for user=%d", appt.UserID)

	return notified, nil
}
