package workflow

import "github.com/m04kA/SMC-AppointmentBot/internal/domain"

// Effect побочный эффект перехода. Advance возвращает эффекты данными,
// их выполняет внешний исполнитель - сам переход остается чистой функцией.
type Effect interface {
	isEffect()
}

// SendMessage отправить клиенту текстовое сообщение
type SendMessage struct {
	Text string
}

// OfferDays предложить клиенту выбор дня недели
type OfferDays struct {
	Text string
	Days []domain.Weekday
}

// OfferSlots предложить клиенту выбор слота
type OfferSlots struct {
	Text  string
	Slots []domain.Slot
}

// LoadSlots загрузить слоты для дня - исполнитель отвечает входом SlotsLoaded
type LoadSlots struct {
	Day domain.Weekday
}

// SubmitBooking сохранить заявку и уведомить администратора
type SubmitBooking struct {
	UserID  int64
	Weekday domain.Weekday
	Slot    domain.Slot
	Name    string
	Contact string
}

func (SendMessage) isEffect()   {}
func (OfferDays) isEffect()     {}
func (OfferSlots) isEffect()    {}
func (LoadSlots) isEffect()     {}
func (SubmitBooking) isEffect() {}
