package schedule

import "errors"

var (
	// ErrDayNotFound возвращается, когда конфигурация дня не найдена
	ErrDayNotFound = errors.New("schedule: day config not found")

	// ErrInvalidDuration возвращается при некорректной длительности слота
	ErrInvalidDuration = errors.New("schedule: duration must be a positive integer")

	// ErrInvalidTimeFormat возвращается при некорректном формате времени (ожидается HH:MM)
	ErrInvalidTimeFormat = errors.New("schedule: invalid time format, expected HH:MM")

	// ErrInvalidBreakRange возвращается, когда конец перерыва не позже начала
	ErrInvalidBreakRange = errors.New("schedule: break end time must be after start time")

	// ErrBreakIndexOutOfRange возвращается при некорректном индексе перерыва
	ErrBreakIndexOutOfRange = errors.New("schedule: break index out of range")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("schedule: internal error")
)
