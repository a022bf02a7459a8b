package cancel_appointments

import (
	"context"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetConfirmed(ctx context.Context, userID int64) (*domain.Appointment, error)
	ListConfirmed(ctx context.Context) ([]*domain.Appointment, error)
	DeleteConfirmed(ctx context.Context, userID int64) error
}

// ReminderScheduler интерфейс планировщика напоминаний
type ReminderScheduler interface {
	Cancel(userID int64)
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
