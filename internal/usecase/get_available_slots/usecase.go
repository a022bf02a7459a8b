package get_available_slots

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
	configRepo "github.com/m04kA/SMC-AppointmentBot/internal/infra/storage/dayconfig"
)

// UseCase use case для получения свободных слотов на ближайшую дату дня недели
type UseCase struct {
	appointmentRepo AppointmentRepository
	configRepo      ConfigRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	configRepo ConfigRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		configRepo:      configRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case получения свободных слотов.
// Слоты считаются по снимку подтвержденных записей: параллельная запись
// могла добавить пересечение - финальная проверка выполняется при создании
// заявки (create_booking).
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: weekday=%s", req.Weekday)

	// 1. Конфигурация дня: день должен существовать и быть открыт для записи
	cfg, err := uc.configRepo.Get(ctx, req.Weekday)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			uc.logger.Warn("GetAvailableSlots: weekday=%s is not configured", req.Weekday)
			return nil, ErrDayNotActive
		}
		uc.logger.Error("GetAvailableSlots: failed to get config for %s: %v", req.Weekday, err)
		return nil, fmt.Errorf("%w: failed to get day config: %v", ErrInternal, err)
	}

	if !cfg.Active {
		uc.logger.Warn("GetAvailableSlots: weekday=%s is not active", req.Weekday)
		return nil, ErrDayNotActive
	}

	// 2. Ближайшая дата этого дня недели (сегодня учитывается)
	date := req.Weekday.NextOccurrence(uc.timeProvider.Now())

	// 3. Снимок подтвержденных записей на дату
	booked, err := uc.appointmentRepo.ListConfirmedOnDate(ctx, date)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to list appointments on %s: %v",
			date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to list appointments: %v", ErrInternal, err)
	}

	// 4. Генерация слотов
	slots, err := generateSlots(cfg, date, booked)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to generate slots for %s: %v", req.Weekday, err)
		return nil, err
	}

	uc.logger.Info("GetAvailableSlots: generated %d slots for %s (%s)",
		len(slots), req.Weekday, date.Format(domain.DateFormat))

	return &Response{
		Weekday: req.Weekday,
		Date:    date,
		Slots:   slots,
	}, nil
}
