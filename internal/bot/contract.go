package bot

import (
	"context"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
	approveBookingUC "github.com/m04kA/SMC-AppointmentBot/internal/usecase/approve_booking"
	cancelAppointmentsUC "github.com/m04kA/SMC-AppointmentBot/internal/usecase/cancel_appointments"
	createBookingUC "github.com/m04kA/SMC-AppointmentBot/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-AppointmentBot/internal/usecase/get_available_slots"
)

// SlotsProvider интерфейс use case получения доступных слотов
type SlotsProvider interface {
	Execute(ctx context.Context, req *getAvailableSlotsUC.Request) (*getAvailableSlotsUC.Response, error)
}

// BookingCreator интерфейс use case создания заявки
type BookingCreator interface {
	Execute(ctx context.Context, req *createBookingUC.Request) (*createBookingUC.Response, error)
}

// BookingApprover интерфейс use case решения по заявке
type BookingApprover interface {
	Approve(ctx context.Context, req *approveBookingUC.ApproveRequest) (*approveBookingUC.ApproveResponse, error)
	Reject(ctx context.Context, req *approveBookingUC.RejectRequest) (*approveBookingUC.RejectResponse, error)
}

// AppointmentCanceller интерфейс use case отмены записей
type AppointmentCanceller interface {
	List(ctx context.Context) ([]*domain.Appointment, error)
	CancelOne(ctx context.Context, req *cancelAppointmentsUC.CancelOneRequest) (*cancelAppointmentsUC.CancelOneResponse, error)
	CancelAll(ctx context.Context) (*cancelAppointmentsUC.CancelAllResponse, error)
}

// ScheduleService интерфейс сервиса конфигурации дней
type ScheduleService interface {
	GetDay(ctx context.Context, weekday domain.Weekday) (*domain.DayConfig, error)
	ListDays(ctx context.Context) ([]*domain.DayConfig, error)
	ActiveDays(ctx context.Context) ([]*domain.DayConfig, error)
	ToggleDay(ctx context.Context, weekday domain.Weekday) (bool, error)
	SetSlotDuration(ctx context.Context, weekday domain.Weekday, minutes int) error
	AddBreak(ctx context.Context, weekday domain.Weekday, startStr, endStr string) error
	RemoveBreak(ctx context.Context, weekday domain.Weekday, index int) (domain.BreakInterval, error)
	RemoveAllBreaks(ctx context.Context, weekday domain.Weekday) (int, error)
	SetPartialSlots(ctx context.Context, weekday domain.Weekday, allow bool) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
