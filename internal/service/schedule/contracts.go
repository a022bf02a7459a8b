package schedule

import (
	"context"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
)

// ConfigRepository интерфейс репозитория конфигурации дней
type ConfigRepository interface {
	Get(ctx context.Context, weekday domain.Weekday) (*domain.DayConfig, error)
	GetAll(ctx context.Context) ([]*domain.DayConfig, error)
	Put(ctx context.Context, cfg *domain.DayConfig) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
