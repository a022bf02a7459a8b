package bot

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
	createBookingUC "github.com/m04kA/SMC-AppointmentBot/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-AppointmentBot/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-AppointmentBot/internal/workflow"
)

// startBooking начинает новую сессию записи, вытесняя незавершенную
func (b *Bot) startBooking(ctx context.Context, chatID, userID int64) {
	activeDays, err := b.schedule.ActiveDays(ctx)
	if err != nil {
		b.logger.Error("Bot: failed to load active days: %v", err)
		b.send(chatID, msgSystemError)
		return
	}

	days := make([]domain.Weekday, 0, len(activeDays))
	for _, cfg := range activeDays {
		days = append(days, cfg.Weekday)
	}

	session := workflow.NewSession(userID)
	b.storeSession(userID, session)
	b.applyInput(ctx, chatID, userID, workflow.Started{ActiveDays: days})
}

// cancelSession отменяет текущий диалог клиента или ожидание ввода администратора
func (b *Bot) cancelSession(ctx context.Context, chatID, userID int64) {
	if b.isAdmin(userID) && b.clearAdminState() {
		b.send(chatID, msgActionCancelled)
		return
	}

	b.mu.Lock()
	_, ok := b.sessions[userID]
	b.mu.Unlock()
	if !ok {
		b.send(chatID, msgNothingCancel)
		return
	}

	b.applyInput(ctx, chatID, userID, workflow.Cancelled{})
}

func (b *Bot) handleClientText(ctx context.Context, chatID, userID int64, text string) {
	b.mu.Lock()
	_, ok := b.sessions[userID]
	b.mu.Unlock()
	if !ok {
		b.send(chatID, msgStartHint)
		return
	}

	b.applyInput(ctx, chatID, userID, workflow.TextEntered{Text: text})
}

func (b *Bot) handleClientCallback(ctx context.Context, chatID, userID int64, data string) {
	switch {
	case strings.HasPrefix(data, "day_"):
		day := domain.Weekday(strings.TrimPrefix(data, "day_"))
		b.applyInput(ctx, chatID, userID, workflow.DaySelected{Day: day})

	case strings.HasPrefix(data, "slot_"):
		index, err := strconv.Atoi(strings.TrimPrefix(data, "slot_"))
		if err != nil {
			b.logger.Warn("Bot: malformed slot callback %q from user=%d", data, userID)
			return
		}
		b.applyInput(ctx, chatID, userID, workflow.SlotSelected{Index: index})

	default:
		b.logger.Warn("Bot: unknown callback %q from user=%d", data, userID)
	}
}

// applyInput продвигает сессию клиента на один шаг и исполняет эффекты
func (b *Bot) applyInput(ctx context.Context, chatID, userID int64, in workflow.Input) {
	b.mu.Lock()
	session, ok := b.sessions[userID]
	b.mu.Unlock()
	if !ok {
		b.send(chatID, msgStartHint)
		return
	}

	session, effects := workflow.Advance(session, in)
	b.storeSession(userID, session)

	for _, effect := range effects {
		switch e := effect.(type) {
		case workflow.SendMessage:
			b.send(chatID, e.Text)
		case workflow.OfferDays:
			b.sendWithKeyboard(chatID, e.Text, dayKeyboard(e.Days, "day_"))
		case workflow.OfferSlots:
			b.sendWithKeyboard(chatID, e.Text, slotKeyboard(e.Slots))
		case workflow.LoadSlots:
			b.loadSlots(ctx, chatID, userID, e.Day)
		case workflow.SubmitBooking:
			b.submitBooking(ctx, chatID, userID, e)
		}
	}
}

// loadSlots загружает слоты выбранного дня и возвращает их в машину состояний
func (b *Bot) loadSlots(ctx context.Context, chatID, userID int64, day domain.Weekday) {
	resp, err := b.slots.Execute(ctx, &getAvailableSlotsUC.Request{Weekday: day})
	if err != nil {
		if errors.Is(err, getAvailableSlotsUC.ErrDayNotActive) {
			b.applyInput(ctx, chatID, userID, workflow.SlotsLoaded{Date: day.Title()})
			return
		}
		b.logger.Error("Bot: failed to load slots for user=%d: %v", userID, err)
		b.send(chatID, msgSystemError)
		b.dropSession(userID)
		return
	}

	if b.metrics != nil {
		b.metrics.SlotsGenerated.Observe(float64(len(resp.Slots)))
	}

	b.applyInput(ctx, chatID, userID, workflow.SlotsLoaded{
		Date:  resp.Date.Format(domain.DisplayDateFormat),
		Slots: resp.Slots,
	})
}

// submitBooking сохраняет заявку. Занятый слот не завершает диалог:
// клиенту предлагается выбрать время заново по свежему списку.
func (b *Bot) submitBooking(ctx context.Context, chatID, userID int64, e workflow.SubmitBooking) {
	resp, err := b.createBooking.Execute(ctx, &createBookingUC.Request{
		UserID:  e.UserID,
		Weekday: e.Weekday,
		StartAt: e.Slot.Start,
		EndAt:   e.Slot.End,
		Name:    e.Name,
		Contact: e.Contact,
	})

	switch {
	case err == nil:
		b.countBooking("accepted")
		b.send(chatID, msgAwaitingApproval)
		if !resp.AdminNotified {
			b.logger.Warn("Bot: admin was not notified about booking from user=%d", userID)
		}

	case errors.Is(err, createBookingUC.ErrSlotTaken):
		b.countBooking("conflict")
		b.send(chatID, msgSlotJustTaken)
		// Сессия уже завершилась подачей заявки - возвращаем клиента к выбору слота
		b.storeSession(userID, workflow.Session{
			UserID:  e.UserID,
			State:   workflow.StateChoosingSlot,
			Weekday: e.Weekday,
			Name:    e.Name,
			Contact: e.Contact,
		})
		b.loadSlots(ctx, chatID, userID, e.Weekday)

	default:
		b.countBooking("error")
		b.logger.Error("Bot: failed to submit booking for user=%d: %v", userID, err)
		b.send(chatID, msgSystemError)
	}
}

// storeSession сохраняет сессию; завершенные сессии удаляются из памяти
func (b *Bot) storeSession(userID int64, s workflow.Session) {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, existed := b.sessions[userID]
	if s.State.Terminal() {
		if existed {
			delete(b.sessions, userID)
			if b.metrics != nil {
				b.metrics.ActiveSessions.Dec()
			}
		}
		return
	}

	b.sessions[userID] = s
	if !existed && b.metrics != nil {
		b.metrics.ActiveSessions.Inc()
	}
}

func (b *Bot) dropSession(userID int64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.sessions[userID]; ok {
		delete(b.sessions, userID)
		if b.metrics != nil {
			b.metrics.ActiveSessions.Dec()
		}
	}
}

func (b *Bot) countBooking(outcome string) {
	if b.metrics != nil {
		b.metrics.BookingRequests.WithLabelValues(outcome).Inc()
	}
}
