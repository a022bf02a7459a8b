package create_booking

import "errors"

var (
	// ErrSlotTaken возвращается, когда выбранный слот уже занят подтвержденной
	// записью - слот был свободен при генерации, но гонку выиграл другой клиент
	ErrSlotTaken = errors.New("create_booking: slot is no longer available")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
