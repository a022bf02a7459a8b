package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
)

// dayKeyboard клавиатура выбора дня, по одной кнопке в ряд
func dayKeyboard(days []domain.Weekday, prefix string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(days))
	for _, day := range days {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(day.Title(), prefix+string(day)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// slotKeyboard клавиатура выбора слота, по две кнопки в ряд
func slotKeyboard(slots []domain.Slot) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for i, slot := range slots {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(slot.Label(), fmt.Sprintf("slot_%d", i)))
		if len(row) == 2 || i == len(slots)-1 {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(row...))
			row = nil
		}
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// approvalKeyboard кнопки решения администратора по заявке клиента
func approvalKeyboard(userID int64) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Approve", fmt.Sprintf("approve_%d", userID)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Reject", fmt.Sprintf("reject_%d", userID)),
		),
	)
}
