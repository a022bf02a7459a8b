package cancel_appointments

import "github.com/m04kA/SMC-AppointmentBot/internal/domain"

// CancelOneRequest модель запроса на отмену одной записи
type CancelOneRequest struct {
	UserID int64 // Telegram ID клиента, чья запись отменяется
}

// CancelOneResponse модель ответа с отмененной записью
type CancelOneResponse struct {
	Appointment       *domain.Appointment // Отмененная запись
	RequesterNotified bool                // Удалось ли уведомить клиента
}

// CancelAllResponse модель ответа массовой отмены
type CancelAllResponse struct {
	Cancelled      []*domain.Appointment // Отмененные записи
	NotifyFailures []int64               // Клиенты, до которых уведомление не дошло
}
