package approve_booking

import "github.com/m04kA/SMC-AppointmentBot/internal/domain"

// ApproveRequest модель запроса на подтверждение заявки
type ApproveRequest struct {
	UserID int64 // Telegram ID клиента, чья заявка подтверждается
}

// ApproveResponse модель ответа с подтвержденной записью
type ApproveResponse struct {
	Appointment       *domain.Appointment // Запись со статусом confirmed
	RequesterNotified bool                // Удалось ли уведомить клиента
}

// RejectRequest модель запроса на отклонение заявки
type RejectRequest struct {
	UserID int64  // Telegram ID клиента, чья заявка отклоняется
	Reason string // Причина отказа, передается клиенту
}

// RejectResponse модель ответа с данными отклоненной заявки
type RejectResponse struct {
	Appointment       *domain.Appointment // Отклоненная заявка
	RequesterNotified bool                // Удалось ли уведомить клиента
}
