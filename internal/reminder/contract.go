package reminder

import (
	"context"
	"time"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetConfirmed(ctx context.Context, userID int64) (*domain.Appointment, error)
	ListConfirmed(ctx context.Context) ([]*domain.Appointment, error)
}

// Notifier интерфейс доставки сообщений клиенту
type Notifier interface {
	Notify(ctx context.Context, userID int64, text string) error
}

// TimeProvider интерфейс для получения текущего времени (для тестируемости)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider реальная реализация TimeProvider
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time {
	return time.Now()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
