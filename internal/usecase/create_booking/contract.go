package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	ListConfirmedOnDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
	UpsertPending(ctx context.Context, appt *domain.Appointment) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// AdminNotifier интерфейс уведомления администратора о новой заявке
type AdminNotifier interface {
	NotifyBookingRequest(ctx context.Context, appt *domain.Appointment) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
