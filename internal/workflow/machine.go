package workflow

import (
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
)

const (
	msgChooseDay      = "📅 Which day would you like to book?"
	msgNoAvailability = "😔 Sorry, no days are currently available for booking."
	msgAskName        = "📝 Great! What's your name?"
	msgAskContact     = "📞 Thanks! What's your phone number or other contact?"
	msgChooseSlot     = "⏰ Available slots for %s:"
	msgNoSlots        = "😔 No free slots left for %s. Please try another day later."
	msgCancelled      = "❌ Booking cancelled."

	msgRetryDay  = "Please pick one of the offered days."
	msgRetryName = "Please enter your name."
	msgRetryText = "Please send a text message."
	msgRetrySlot = "Please pick one of the offered slots."
)

// Advance выполняет один переход диалога записи.
// Чистая функция: принимает сессию и входное событие, возвращает новую сессию
// и список эффектов для исполнителя. Неожиданный для состояния вход не двигает
// диалог - клиенту повторяется приглашение текущего шага.
func Advance(s Session, in Input) (Session, []Effect) {
	// Отмена обрывает диалог из любого незавершенного состояния
	if _, ok := in.(Cancelled); ok {
		if s.State.Terminal() {
			return s, nil
		}
		s.State = StateCancelled
		return s, []Effect{SendMessage{Text: msgCancelled}}
	}

	switch s.State {
	case StateChoosingDay:
		return advanceChoosingDay(s, in)
	case StateCollectingName:
		return advanceCollectingName(s, in)
	case StateCollectingContact:
		return advanceCollectingContact(s, in)
	case StateChoosingSlot:
		return advanceChoosingSlot(s, in)
	default:
		return s, nil
	}
}

func advanceChoosingDay(s Session, in Input) (Session, []Effect) {
	switch v := in.(type) {
	case Started:
		// Без единого активного дня диалог не начинается
		if len(v.ActiveDays) == 0 {
			s.State = StateCancelled
			return s, []Effect{SendMessage{Text: msgNoAvailability}}
		}
		return s, []Effect{OfferDays{Text: msgChooseDay, Days: v.ActiveDays}}

	case DaySelected:
		if _, err := domain.ParseWeekday(string(v.Day)); err != nil {
			return s, []Effect{SendMessage{Text: msgRetryDay}}
		}
		s.Weekday = v.Day
		s.State = StateCollectingName
		return s, []Effect{SendMessage{Text: msgAskName}}

	default:
		return s, []Effect{SendMessage{Text: msgRetryDay}}
	}
}

func advanceCollectingName(s Session, in Input) (Session, []Effect) {
	v, ok := in.(TextEntered)
	if !ok {
		return s, []Effect{SendMessage{Text: msgRetryText}}
	}

	name := strings.TrimSpace(v.Text)
	if name == "" || len(name) > domain.MaxNameLength {
		return s, []Effect{SendMessage{Text: msgRetryName}}
	}

	s.Name = name
	s.State = StateCollectingContact
	return s, []Effect{SendMessage{Text: msgAskContact}}
}

func advanceCollectingContact(s Session, in Input) (Session, []Effect) {
	v, ok := in.(TextEntered)
	if !ok {
		return s, []Effect{SendMessage{Text: msgRetryText}}
	}

	contact := strings.TrimSpace(v.Text)
	if contact == "" || len(contact) > domain.MaxContactLength {
		return s, []Effect{SendMessage{Text: msgRetryText}}
	}

	s.Contact = contact
	s.State = StateChoosingSlot
	return s, []Effect{LoadSlots{Day: s.Weekday}}
}

func advanceChoosingSlot(s Session, in Input) (Session, []Effect) {
	switch v := in.(type) {
	case SlotsLoaded:
		if len(v.Slots) == 0 {
			s.State = StateCancelled
			return s, []Effect{SendMessage{Text: fmt.Sprintf(msgNoSlots, v.Date)}}
		}
		s.Slots = v.Slots
		return s, []Effect{OfferSlots{Text: fmt.Sprintf(msgChooseSlot, v.Date), Slots: v.Slots}}

	case SlotSelected:
		if v.Index < 0 || v.Index >= len(s.Slots) {
			return s, []Effect{SendMessage{Text: msgRetrySlot}}
		}
		slot := s.Slots[v.Index]
		s.State = StateAwaitingApproval
		return s, []Effect{SubmitBooking{
			UserID:  s.UserID,
			Weekday: s.Weekday,
			Slot:    slot,
			Name:    s.Name,
			Contact: s.Contact,
		}}

	default:
		return s, []Effect{SendMessage{Text: msgRetrySlot}}
	}
}
