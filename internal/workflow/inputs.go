package workflow

import "github.com/m04kA/SMC-AppointmentBot/internal/domain"

// Input входное событие диалога
type Input interface {
	isInput()
}

// Started клиент начал диалог; исполнитель передает список активных дней
type Started struct {
	ActiveDays []domain.Weekday
}

// DaySelected клиент выбрал день недели
type DaySelected struct {
	Day domain.Weekday
}

// TextEntered клиент ввел свободный текст (имя или контакт)
type TextEntered struct {
	Text string
}

// SlotsLoaded исполнитель загрузил слоты для выбранного дня
type SlotsLoaded struct {
	Date  string // Отображаемая дата, подставляется в приглашение
	Slots []domain.Slot
}

// SlotSelected клиент выбрал слот по индексу в предложенном списке
type SlotSelected struct {
	Index int
}

// Cancelled клиент отменил диалог
type Cancelled struct{}

func (Started) isInput()      {}
func (DaySelected) isInput()  {}
func (TextEntered) isInput()  {}
func (SlotsLoaded) isInput()  {}
func (SlotSelected) isInput() {}
func (Cancelled) isInput()    {}
