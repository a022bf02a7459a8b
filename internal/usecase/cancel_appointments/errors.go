package cancel_appointments

import "errors"

var (
	// ErrAppointmentNotFound возвращается, когда у клиента нет подтвержденной записи
	ErrAppointmentNotFound = errors.New("cancel_appointments: confirmed appointment not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_appointments: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_appointments: internal error")
)
