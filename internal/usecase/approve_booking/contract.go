package approve_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetPending(ctx context.Context, userID int64) (*domain.Appointment, error)
	ListConfirmedOnDate(ctx context.Context, date time.Time) ([]*domain.Appointment, error)
	InsertConfirmed(ctx context.Context, appt *domain.Appointment) error
	DeletePending(ctx context.Context, userID int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// ReminderScheduler интерфейс планировщика напоминаний
type ReminderScheduler interface {
	Schedule(userID int64, startAt time.Time)
}

// Notifier интерфейс доставки сообщений клиенту
type Notifier interface {
	Notify(ctx context.Context, userID int64, text string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
