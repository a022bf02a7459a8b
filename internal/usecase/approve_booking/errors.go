package approve_booking

import "errors"

var (
	// ErrPendingNotFound возвращается, когда заявка клиента не найдена -
	// она могла быть уже обработана или перезаписана новой заявкой
	ErrPendingNotFound = errors.New("approve_booking: pending appointment not found")

	// ErrSlotTaken возвращается, когда слот заявки успел занять другой клиент.
	// Заявка при этом остается в очереди - администратор решает ее судьбу сам
	ErrSlotTaken = errors.New("approve_booking: slot is already taken by a confirmed appointment")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("approve_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("approve_booking: internal error")
)
