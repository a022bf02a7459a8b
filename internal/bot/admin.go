package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
	"github.com/m04kA/SMC-AppointmentBot/internal/service/schedule"
	approveBookingUC "github.com/m04kA/SMC-AppointmentBot/internal/usecase/approve_booking"
	cancelAppointmentsUC "github.com/m04kA/SMC-AppointmentBot/internal/usecase/cancel_appointments"
	"github.com/m04kA/SMC-AppointmentBot/pkg/types"
)

type adminAction string

const (
	adminAwaitingRejectReason adminAction = "reject_reason"
	adminAwaitingDuration     adminAction = "duration"
	adminAwaitingBreakStart   adminAction = "break_start"
	adminAwaitingBreakEnd     adminAction = "break_end"
)

// adminState ожидаемый от администратора следующий ввод
type adminState struct {
	action       adminAction
	day          domain.Weekday
	targetUserID int64
	breakStart   string
}

func (b *Bot) setAdminState(s adminState) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.adminStates[b.adminChatID] = s
}

// clearAdminState снимает ожидание ввода, сообщает было ли оно
func (b *Bot) clearAdminState() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.adminStates[b.adminChatID]
	delete(b.adminStates, b.adminChatID)
	return ok
}

func (b *Bot) handleAdminCommand(ctx context.Context, chatID int64, command string) {
	switch command {
	case "days":
		b.showDays(ctx, chatID)
	case "set_duration":
		b.offerAdminDays(ctx, chatID, "dur_")
	case "add_break":
		b.offerAdminDays(ctx, chatID, "addbrk_")
	case "remove_break":
		b.offerAdminDays(ctx, chatID, "rmbrkday_")
	case "partial_slots":
		b.offerAdminDays(ctx, chatID, "partial_")
	case "bookings":
		b.showBookings(ctx, chatID)
	}
}

// handleAdminInput обрабатывает свободный текст, если администратор его ждет.
// Возвращает false, когда ожиданий нет - тогда текст уходит в клиентский диалог.
func (b *Bot) handleAdminInput(ctx context.Context, chatID int64, text string) bool {
	b.mu.Lock()
	state, ok := b.adminStates[b.adminChatID]
	b.mu.Unlock()
	if !ok {
		return false
	}

	switch state.action {
	case adminAwaitingRejectReason:
		b.finishReject(ctx, chatID, state.targetUserID, text)
	case adminAwaitingDuration:
		b.finishSetDuration(ctx, chatID, state.day, text)
	case adminAwaitingBreakStart:
		b.collectBreakStart(chatID, state, text)
	case adminAwaitingBreakEnd:
		b.finishAddBreak(ctx, chatID, state, text)
	}
	return true
}

// handleAdminCallback обрабатывает административные кнопки.
// Возвращает false для клиентских callback (администратор тоже может записаться).
func (b *Bot) handleAdminCallback(ctx context.Context, chatID int64, data string) bool {
	switch {
	case strings.HasPrefix(data, "approve_"):
		b.approve(ctx, chatID, strings.TrimPrefix(data, "approve_"))
	case strings.HasPrefix(data, "reject_"):
		b.startReject(chatID, strings.TrimPrefix(data, "reject_"))
	case strings.HasPrefix(data, "toggle_"):
		b.toggleDay(ctx, chatID, domain.Weekday(strings.TrimPrefix(data, "toggle_")))
	case strings.HasPrefix(data, "dur_"):
		b.setAdminState(adminState{action: adminAwaitingDuration, day: domain.Weekday(strings.TrimPrefix(data, "dur_"))})
		b.send(chatID, msgAskDuration)
	case strings.HasPrefix(data, "addbrk_"):
		b.setAdminState(adminState{action: adminAwaitingBreakStart, day: domain.Weekday(strings.TrimPrefix(data, "addbrk_"))})
		b.send(chatID, msgAskBreakStart)
	case strings.HasPrefix(data, "rmbrkday_"):
		b.showBreaks(ctx, chatID, domain.Weekday(strings.TrimPrefix(data, "rmbrkday_")))
	case strings.HasPrefix(data, "rmbrk_"):
		b.removeBreak(ctx, chatID, strings.TrimPrefix(data, "rmbrk_"))
	case strings.HasPrefix(data, "partial_"):
		b.togglePartialSlots(ctx, chatID, domain.Weekday(strings.TrimPrefix(data, "partial_")))
	case strings.HasPrefix(data, "cancelone_"):
		b.cancelOneBooking(ctx, chatID, strings.TrimPrefix(data, "cancelone_"))
	case data == "cancelall":
		b.cancelAllBookings(ctx, chatID)
	default:
		return false
	}
	return true
}

// --- Решения по заявкам ---

func (b *Bot) approve(ctx context.Context, chatID int64, rawUserID string) {
	userID, err := strconv.ParseInt(rawUserID, 10, 64)
	if err != nil {
		b.logger.Warn("Bot: malformed approve callback %q", rawUserID)
		return
	}

	resp, err := b.approval.Approve(ctx, &approveBookingUC.ApproveRequest{UserID: userID})
	switch {
	case err == nil:
		b.countAction("approve")
		text := fmt.Sprintf("✅ Booking confirmed: %s, %s at %s.",
			resp.Appointment.Name,
			resp.Appointment.StartAt.Format(domain.DisplayDateFormat),
			resp.Appointment.StartAt.Format(domain.DisplayTimeFormat))
		if !resp.RequesterNotified {
			text += "\n⚠️ Failed to notify the client."
		}
		b.send(chatID, text)

	case errors.Is(err, approveBookingUC.ErrPendingNotFound):
		b.send(chatID, msgRequestNotFound)
	case errors.Is(err, approveBookingUC.ErrSlotTaken):
		b.send(chatID, msgApproveConflict)
	default:
		b.logger.Error("Bot: approve failed for user=%d: %v", userID, err)
		b.send(chatID, msgSystemError)
	}
}

func (b *Bot) startReject(chatID int64, rawUserID string) {
	userID, err := strconv.ParseInt(rawUserID, 10, 64)
	if err != nil {
		b.logger.Warn("Bot: malformed reject callback %q", rawUserID)
		return
	}

	b.setAdminState(adminState{action: adminAwaitingRejectReason, targetUserID: userID})
	b.send(chatID, msgAskRejectReason)
}

func (b *Bot) finishReject(ctx context.Context, chatID int64, userID int64, reason string) {
	resp, err := b.approval.Reject(ctx, &approveBookingUC.RejectRequest{UserID: userID, Reason: reason})
	switch {
	case err == nil:
		b.clearAdminState()
		b.countAction("reject")
		text := fmt.Sprintf("✅ Request from %s rejected.", resp.Appointment.Name)
		if !resp.RequesterNotified {
			text += "\n⚠️ Failed to notify the client."
		}
		b.send(chatID, text)

	case errors.Is(err, approveBookingUC.ErrInvalidInput):
		// Причина не подошла - ждем новую, состояние не снимается
		b.send(chatID, msgAskRejectReason)
	case errors.Is(err, approveBookingUC.ErrPendingNotFound):
		b.clearAdminState()
		b.send(chatID, msgRequestNotFound)
	default:
		b.clearAdminState()
		b.logger.Error("Bot: reject failed for user=%d: %v", userID, err)
		b.send(chatID, msgSystemError)
	}
}

// --- Конфигурация дней ---

func (b *Bot) showDays(ctx context.Context, chatID int64) {
	configs, err := b.schedule.ListDays(ctx)
	if err != nil {
		b.logger.Error("Bot: failed to list days: %v", err)
		b.send(chatID, msgSystemError)
		return
	}

	var sb strings.Builder
	sb.WriteString("📅 Booking days (tap to toggle):\n")
	for _, cfg := range configs {
		if cfg.Active {
			sb.WriteString(fmt.Sprintf("✅ %s: %s-%s, %d min, %d break(s)\n",
				cfg.Weekday.Title(), cfg.OpenTime, cfg.CloseTime,
				cfg.SlotDurationMinutes, len(cfg.Breaks)))
		} else {
			sb.WriteString(fmt.Sprintf("🚫 %s: closed\n", cfg.Weekday.Title()))
		}
	}

	b.sendWithKeyboard(chatID, sb.String(), dayKeyboard(domain.AllWeekdays, "toggle_"))
}

func (b *Bot) offerAdminDays(ctx context.Context, chatID int64, prefix string) {
	b.sendWithKeyboard(chatID, msgChooseDayAdmin, dayKeyboard(domain.AllWeekdays, prefix))
}

func (b *Bot) toggleDay(ctx context.Context, chatID int64, day domain.Weekday) {
	active, err := b.schedule.ToggleDay(ctx, day)
	if err != nil {
		b.logger.Error("Bot: failed to toggle day %s: %v", day, err)
		b.send(chatID, msgSystemError)
		return
	}

	if active {
		b.send(chatID, fmt.Sprintf("✅ %s is now open for booking.", day.Title()))
	} else {
		b.send(chatID, fmt.Sprintf("🚫 %s is now closed for booking.", day.Title()))
	}
}

func (b *Bot) finishSetDuration(ctx context.Context, chatID int64, day domain.Weekday, text string) {
	minutes, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		b.send(chatID, "Duration must be a number. "+msgAskDuration)
		return
	}

	if err := b.schedule.SetSlotDuration(ctx, day, minutes); err != nil {
		if errors.Is(err, schedule.ErrInvalidDuration) {
			b.send(chatID, "Duration must be a positive number of minutes. "+msgAskDuration)
			return
		}
		b.clearAdminState()
		b.logger.Error("Bot: failed to set duration for %s: %v", day, err)
		b.send(chatID, msgSystemError)
		return
	}

	b.clearAdminState()
	b.send(chatID, fmt.Sprintf("✅ Slot duration for %s set to %d minutes.", day.Title(), minutes))
}

func (b *Bot) collectBreakStart(chatID int64, state adminState, text string) {
	start := strings.TrimSpace(text)
	if _, err := types.NewTimeStringFromString(start); err != nil {
		b.send(chatID, "Time must be in HH:MM format. "+msgAskBreakStart)
		return
	}

	state.action = adminAwaitingBreakEnd
	state.breakStart = start
	b.setAdminState(state)
	b.send(chatID, msgAskBreakEnd)
}

func (b *Bot) finishAddBreak(ctx context.Context, chatID int64, state adminState, text string) {
	end := strings.TrimSpace(text)

	err := b.schedule.AddBreak(ctx, state.day, state.breakStart, end)
	switch {
	case err == nil:
		b.clearAdminState()
		b.send(chatID, fmt.Sprintf("✅ Break %s - %s added to %s.", state.breakStart, end, state.day.Title()))

	case errors.Is(err, schedule.ErrInvalidTimeFormat):
		b.send(chatID, "Time must be in HH:MM format. "+msgAskBreakEnd)
	case errors.Is(err, schedule.ErrInvalidBreakRange):
		b.send(chatID, "Break end must be after its start. "+msgAskBreakEnd)
	default:
		b.clearAdminState()
		b.logger.Error("Bot: failed to add break for %s: %v", state.day, err)
		b.send(chatID, msgSystemError)
	}
}

func (b *Bot) showBreaks(ctx context.Context, chatID int64, day domain.Weekday) {
	cfg, err := b.schedule.GetDay(ctx, day)
	if err != nil {
		if errors.Is(err, schedule.ErrDayNotFound) {
			b.send(chatID, fmt.Sprintf("No breaks on %s.", day.Title()))
			return
		}
		b.logger.Error("Bot: failed to get day %s: %v", day, err)
		b.send(chatID, msgSystemError)
		return
	}

	if len(cfg.Breaks) == 0 {
		b.send(chatID, fmt.Sprintf("No breaks on %s.", day.Title()))
		return
	}

	// Кнопки нумеруются в порядке хранения: RemoveBreak удаляет по тому же индексу
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(cfg.Breaks)+1)
	for i, br := range cfg.Breaks {
		label := fmt.Sprintf("%s - %s", br.Start, br.End)
		if minutes, err := br.Start.MinutesUntil(br.End); err == nil {
			label = fmt.Sprintf("%s - %s (%d min)", br.Start, br.End, minutes)
		}
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, fmt.Sprintf("rmbrk_%s_%d", day, i)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🗑 Remove all", fmt.Sprintf("rmbrk_%s_all", day)),
	))

	b.sendWithKeyboard(chatID, fmt.Sprintf("Breaks on %s (tap to remove):", day.Title()),
		tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) removeBreak(ctx context.Context, chatID int64, payload string) {
	parts := strings.SplitN(payload, "_", 2)
	if len(parts) != 2 {
		b.logger.Warn("Bot: malformed remove-break callback %q", payload)
		return
	}
	day := domain.Weekday(parts[0])

	if parts[1] == "all" {
		removed, err := b.schedule.RemoveAllBreaks(ctx, day)
		if err != nil {
			if errors.Is(err, schedule.ErrDayNotFound) {
				b.send(chatID, fmt.Sprintf("No breaks on %s.", day.Title()))
				return
			}
			b.logger.Error("Bot: failed to remove breaks for %s: %v", day, err)
			b.send(chatID, msgSystemError)
			return
		}
		b.send(chatID, fmt.Sprintf("✅ Removed %d break(s) from %s.", removed, day.Title()))
		return
	}

	index, err := strconv.Atoi(parts[1])
	if err != nil {
		b.logger.Warn("Bot: malformed remove-break callback %q", payload)
		return
	}

	removed, err := b.schedule.RemoveBreak(ctx, day, index)
	if err != nil {
		if errors.Is(err, schedule.ErrBreakIndexOutOfRange) {
			b.send(chatID, "That break no longer exists.")
			return
		}
		b.logger.Error("Bot: failed to remove break for %s: %v", day, err)
		b.send(chatID, msgSystemError)
		return
	}

	b.send(chatID, fmt.Sprintf("✅ Break %s - %s removed from %s.", removed.Start, removed.End, day.Title()))
}

func (b *Bot) togglePartialSlots(ctx context.Context, chatID int64, day domain.Weekday) {
	current := false
	cfg, err := b.schedule.GetDay(ctx, day)
	switch {
	case err == nil:
		current = cfg.AllowPartialSlots
	case errors.Is(err, schedule.ErrDayNotFound):
		// День еще не настроен - переключаем от значения по умолчанию
	default:
		b.logger.Error("Bot: failed to get day %s: %v", day, err)
		b.send(chatID, msgSystemError)
		return
	}

	allow := !current
	if err := b.schedule.SetPartialSlots(ctx, day, allow); err != nil {
		b.logger.Error("Bot: failed to set partial slots for %s: %v", day, err)
		b.send(chatID, msgSystemError)
		return
	}

	if allow {
		b.send(chatID, fmt.Sprintf("✅ Partial slots enabled for %s.", day.Title()))
	} else {
		b.send(chatID, fmt.Sprintf("🚫 Partial slots disabled for %s.", day.Title()))
	}
}

// --- Отмена записей ---

func (b *Bot) showBookings(ctx context.Context, chatID int64) {
	appointments, err := b.cancel.List(ctx)
	if err != nil {
		b.logger.Error("Bot: failed to list bookings: %v", err)
		b.send(chatID, msgSystemError)
		return
	}

	if len(appointments) == 0 {
		b.send(chatID, msgNoBookings)
		return
	}

	var sb strings.Builder
	sb.WriteString("📋 Confirmed bookings (tap to cancel):\n")
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(appointments)+1)
	for _, appt := range appointments {
		sb.WriteString(fmt.Sprintf("👤 %s: %s at %s (%s)\n",
			appt.Name,
			appt.StartAt.Format(domain.DisplayDateFormat),
			appt.StartAt.Format(domain.DisplayTimeFormat),
			appt.Contact))
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(
				fmt.Sprintf("❌ %s (%s)", appt.Name, appt.StartAt.Format(domain.ShortDateFormat)),
				fmt.Sprintf("cancelone_%d", appt.UserID)),
		))
	}
	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("🗑 Cancel all", "cancelall"),
	))

	b.sendWithKeyboard(chatID, sb.String(), tgbotapi.NewInlineKeyboardMarkup(rows...))
}

func (b *Bot) cancelOneBooking(ctx context.Context, chatID int64, rawUserID string) {
	userID, err := strconv.ParseInt(rawUserID, 10, 64)
	if err != nil {
		b.logger.Warn("Bot: malformed cancel callback %q", rawUserID)
		return
	}

	resp, err := b.cancel.CancelOne(ctx, &cancelAppointmentsUC.CancelOneRequest{UserID: userID})
	switch {
	case err == nil:
		b.countAction("cancel")
		text := fmt.Sprintf("✅ Booking for %s cancelled.", resp.Appointment.Name)
		if !resp.RequesterNotified {
			text += "\n⚠️ Failed to notify the client."
		}
		b.send(chatID, text)

	case errors.Is(err, cancelAppointmentsUC.ErrAppointmentNotFound):
		b.send(chatID, "Booking not found - it may have been cancelled already.")
	default:
		b.logger.Error("Bot: cancel failed for user=%d: %v", userID, err)
		b.send(chatID, msgSystemError)
	}
}

func (b *Bot) cancelAllBookings(ctx context.Context, chatID int64) {
	resp, err := b.cancel.CancelAll(ctx)
	if err != nil {
		b.logger.Error("Bot: cancel all failed: %v", err)
		b.send(chatID, msgSystemError)
		return
	}

	b.countAction("cancel_all")
	text := fmt.Sprintf("✅ Cancelled %d booking(s).", len(resp.Cancelled))
	if len(resp.NotifyFailures) > 0 {
		text += fmt.Sprintf("\n⚠️ Failed to notify %d client(s).", len(resp.NotifyFailures))
	}
	b.send(chatID, text)
}

func (b *Bot) countAction(action string) {
	if b.metrics != nil {
		b.metrics.AppointmentActions.WithLabelValues(action).Inc()
	}
}
