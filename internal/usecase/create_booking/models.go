package create_booking

import (
	"time"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
)

// Request модель запроса на создание заявки
type Request struct {
	UserID  int64          // Telegram ID клиента
	Weekday domain.Weekday // Выбранный день недели
	StartAt time.Time      // Начало выбранного слота
	EndAt   time.Time      // Конец выбранного слота
	Name    string         // Имя клиента
	Contact string         // Контакт клиента
}

// Response модель ответа с созданной заявкой
type Response struct {
	Appointment   *domain.Appointment // Заявка со статусом pending
	AdminNotified bool                // Удалось ли уведомить администратора
}
