package get_available_slots

import "errors"

var (
	// ErrDayNotActive возвращается, когда день не настроен или закрыт для записи
	ErrDayNotActive = errors.New("get_available_slots: day is not active for booking")

	// ErrInvalidConfig возвращается при некорректной конфигурации дня
	ErrInvalidConfig = errors.New("get_available_slots: invalid day config")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
