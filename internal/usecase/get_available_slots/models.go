package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
)

// Request модель запроса доступных слотов
type Request struct {
	Weekday domain.Weekday // День недели, выбранный клиентом
}

// Response модель ответа со сгенерированными слотами
type Response struct {
	Weekday domain.Weekday // День недели
	Date    time.Time      // Ближайшая дата этого дня недели
	Slots   []domain.Slot  // Свободные слоты по возрастанию времени начала
}
