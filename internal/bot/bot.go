package bot

import (
	"context"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/m04kA/SMC-AppointmentBot/internal/workflow"
	"github.com/m04kA/SMC-AppointmentBot/pkg/metrics"
)

// Bot телеграм-адаптер: принимает апдейты, ведет диалоговые сессии клиентов
// и администратора, исполняет эффекты машины состояний через use cases.
type Bot struct {
	api         *tgbotapi.BotAPI
	adminChatID int64

	slots         SlotsProvider
	createBooking BookingCreator
	approval      BookingApprover
	cancel        AppointmentCanceller
	schedule      ScheduleService

	metrics *metrics.Metrics
	logger  Logger

	mu          sync.Mutex
	sessions    map[int64]workflow.Session
	adminStates map[int64]adminState
}

// New создает бота поверх уже авторизованного клиента Telegram API
func New(
	api *tgbotapi.BotAPI,
	adminChatID int64,
	slots SlotsProvider,
	createBooking BookingCreator,
	approval BookingApprover,
	cancel AppointmentCanceller,
	schedule ScheduleService,
	metricsCollector *metrics.Metrics,
	logger Logger,
) *Bot {
	return &Bot{
		api:           api,
		adminChatID:   adminChatID,
		slots:         slots,
		createBooking: createBooking,
		approval:      approval,
		cancel:        cancel,
		schedule:      schedule,
		metrics:       metricsCollector,
		logger:        logger,
		sessions:      make(map[int64]workflow.Session),
		adminStates:   make(map[int64]adminState),
	}
}

// Start запускает цикл обработки апдейтов. Блокируется до отмены контекста
func (b *Bot) Start(ctx context.Context) {
	b.logger.Info("Bot: authorized as @%s", b.api.Self.UserName)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.logger.Info("Bot: update loop stopped")
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			b.dispatch(ctx, update)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		b.handleCommand(ctx, chatID, userID, msg.Command())
		return
	}

	// Свободный текст: сперва ожидания администратора, затем сессия клиента
	if b.isAdmin(userID) {
		if b.handleAdminInput(ctx, chatID, msg.Text) {
			return
		}
	}
	b.handleClientText(ctx, chatID, userID, msg.Text)
}

func (b *Bot) handleCommand(ctx context.Context, chatID, userID int64, command string) {
	switch command {
	case "start", "book":
		b.startBooking(ctx, chatID, userID)
	case "cancel":
		b.cancelSession(ctx, chatID, userID)
	case "help":
		b.send(chatID, msgHelp)

	case "days", "set_duration", "add_break", "remove_break", "partial_slots", "bookings":
		if !b.isAdmin(userID) {
			b.send(chatID, msgAdminOnly)
			return
		}
		b.handleAdminCommand(ctx, chatID, command)

	default:
		b.send(chatID, msgUnknownCommand)
	}
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	// Для устаревших callback Telegram не присылает исходное сообщение
	if query.Message == nil {
		b.logger.Warn("Bot: callback %q without message from user=%d", query.Data, query.From.ID)
		return
	}

	// Снимаем "часики" на кнопке
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		b.logger.Warn("Bot: failed to answer callback: %v", err)
	}

	chatID := query.Message.Chat.ID
	userID := query.From.ID
	data := query.Data

	if b.isAdmin(userID) && b.handleAdminCallback(ctx, chatID, data) {
		return
	}
	b.handleClientCallback(ctx, chatID, userID, data)
}

func (b *Bot) isAdmin(userID int64) bool {
	return userID == b.adminChatID
}

// send отправляет текстовое сообщение, ошибки доставки только логируются
func (b *Bot) send(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error("Bot: failed to send message to chat=%d: %v", chatID, err)
	}
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		b.logger.Error("Bot: failed to send message to chat=%d: %v", chatID, err)
	}
}
