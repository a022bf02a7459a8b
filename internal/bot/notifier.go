package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
	"github.com/m04kA/SMC-AppointmentBot/pkg/metrics"
)

// Sender доставляет сообщения клиентам и администратору вне текущего диалога.
// Отдельный от Bot тип: им пользуются use cases, которые собираются раньше бота.
type Sender struct {
	api         *tgbotapi.BotAPI
	adminChatID int64
	metrics     *metrics.Metrics
}

// NewSender создает отправителя поверх общего клиента Telegram API
func NewSender(api *tgbotapi.BotAPI, adminChatID int64, metricsCollector *metrics.Metrics) *Sender {
	return &Sender{
		api:         api,
		adminChatID: adminChatID,
		metrics:     metricsCollector,
	}
}

// Notify отправляет клиенту текстовое сообщение.
// Используется для подтверждений, отказов, отмен и напоминаний.
func (s *Sender) Notify(ctx context.Context, userID int64, text string) error {
	if _, err := s.api.Send(tgbotapi.NewMessage(userID, text)); err != nil {
		s.count("error")
		return fmt.Errorf("bot: Notify - failed to send message to user=%d: %w", userID, err)
	}
	s.count("ok")
	return nil
}

// NotifyBookingRequest отправляет администратору карточку новой заявки
// с кнопками подтверждения и отказа
func (s *Sender) NotifyBookingRequest(ctx context.Context, appt *domain.Appointment) error {
	text := fmt.Sprintf("%s\n👤 Name: %s\n📞 Contact: %s\n📅 Day: %s\n⏰ Time: %s - %s",
		msgNewBookingHeader,
		appt.Name,
		appt.Contact,
		appt.StartAt.Format(domain.DisplayDateFormat),
		domain.FormatClock(appt.StartAt),
		domain.FormatClock(appt.EndAt))

	msg := tgbotapi.NewMessage(s.adminChatID, text)
	msg.ReplyMarkup = approvalKeyboard(appt.UserID)

	if _, err := s.api.Send(msg); err != nil {
		s.count("error")
		return fmt.Errorf("bot: NotifyBookingRequest - failed to notify admin: %w", err)
	}
	s.count("ok")
	return nil
}

func (s *Sender) count(result string) {
	if s.metrics != nil {
		s.metrics.Notifications.WithLabelValues(result).Inc()
	}
}
