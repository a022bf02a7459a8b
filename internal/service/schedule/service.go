package schedule

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
	configRepo "github.com/m04kA/SMC-AppointmentBot/internal/infra/storage/dayconfig"
	"github.com/m04kA/SMC-AppointmentBot/pkg/types"
)

// Service сервис управления конфигурацией дней записи.
// Все мутации администраторские: изменяют только конфигурацию дней и
// сохраняют документ дня целиком при каждом изменении.
type Service struct {
	configRepo ConfigRepository
	logger     Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(configRepo ConfigRepository, logger Logger) *Service {
	return &Service{
		configRepo: configRepo,
		logger:     logger,
	}
}

// EnsureDefaults создает конфигурацию по умолчанию при первом запуске
func (s *Service) EnsureDefaults(ctx context.Context) error {
	configs, err := s.configRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("%w: EnsureDefaults - repository error: %v", ErrInternal, err)
	}

	if len(configs) > 0 {
		return nil
	}

	for _, cfg := range domain.DefaultDayConfigs() {
		if err := s.configRepo.Put(ctx, cfg); err != nil {
			return fmt.Errorf("%w: EnsureDefaults - seed %s: %v", ErrInternal, cfg.Weekday, err)
		}
		s.logger.Info("EnsureDefaults: seeded default config for %s (%s-%s, %dm)",
			cfg.Weekday, cfg.OpenTime, cfg.CloseTime, cfg.SlotDurationMinutes)
	}

	return nil
}

// GetDay получает конфигурацию одного дня
func (s *Service) GetDay(ctx context.Context, weekday domain.Weekday) (*domain.DayConfig, error) {
	cfg, err := s.configRepo.Get(ctx, weekday)
	if err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			return nil, ErrDayNotFound
		}
		return nil, fmt.Errorf("%w: GetDay - repository error: %v", ErrInternal, err)
	}
	return cfg, nil
}

// ListDays получает конфигурации всех настроенных дней в календарном порядке
func (s *Service) ListDays(ctx context.Context) ([]*domain.DayConfig, error) {
	configs, err := s.configRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: ListDays - repository error: %v", ErrInternal, err)
	}

	byWeekday := make(map[domain.Weekday]*domain.DayConfig, len(configs))
	for _, cfg := range configs {
		byWeekday[cfg.Weekday] = cfg
	}

	ordered := make([]*domain.DayConfig, 0, len(configs))
	for _, weekday := range domain.AllWeekdays {
		if cfg, ok := byWeekday[weekday]; ok {
			ordered = append(ordered, cfg)
		}
	}

	return ordered, nil
}

// ActiveDays получает дни, открытые для записи, в календарном порядке
func (s *Service) ActiveDays(ctx context.Context) ([]*domain.DayConfig, error) {
	configs, err := s.ListDays(ctx)
	if err != nil {
		return nil, err
	}

	active := make([]*domain.DayConfig, 0, len(configs))
	for _, cfg := range configs {
		if cfg.Active {
			active = append(active, cfg)
		}
	}

	return active, nil
}

// getOrDefault возвращает конфигурацию дня. Для еще не настроенного дня
// возвращается закрытая заготовка - мутация администратора создаст документ.
func (s *Service) getOrDefault(ctx context.Context, weekday domain.Weekday) (*domain.DayConfig, error) {
	cfg, err := s.configRepo.Get(ctx, weekday)
	if err == nil {
		return cfg, nil
	}
	if errors.Is(err, configRepo.ErrConfigNotFound) {
		return &domain.DayConfig{
			Weekday:             weekday,
			Active:              false,
			OpenTime:            domain.DefaultOpenTime,
			CloseTime:           domain.DefaultCloseTime,
			SlotDurationMinutes: domain.DefaultSlotDurationMinutes,
			Breaks:              []domain.BreakInterval{},
		}, nil
	}
	return nil, fmt.Errorf("%w: getOrDefault - repository error: %v", ErrInternal, err)
}

// ToggleDay переключает доступность дня для записи.
// Возвращает новое состояние.
func (s *Service) ToggleDay(ctx context.Context, weekday domain.Weekday) (bool, error) {
	cfg, err := s.getOrDefault(ctx, weekday)
	if err != nil {
		return false, err
	}

	cfg.Active = !cfg.Active

	if err := s.configRepo.Put(ctx, cfg); err != nil {
		return false, fmt.Errorf("%w: ToggleDay - save config: %v", ErrInternal, err)
	}

	s.logger.Info("ToggleDay: %s availability toggled to %v", weekday, cfg.Active)
	return cfg.Active, nil
}

// SetSlotDuration устанавливает длительность слота в минутах
func (s *Service) SetSlotDuration(ctx context.Context, weekday domain.Weekday, minutes int) error {
	if minutes < domain.MinSlotDurationMinutes || minutes > domain.MaxSlotDurationMinutes {
		return fmt.Errorf("%w: got %d", ErrInvalidDuration, minutes)
	}

	cfg, err := s.getOrDefault(ctx, weekday)
	if err != nil {
		return err
	}

	cfg.SlotDurationMinutes = minutes

	if err := s.configRepo.Put(ctx, cfg); err != nil {
		return fmt.Errorf("%w: SetSlotDuration - save config: %v", ErrInternal, err)
	}

	s.logger.Info("SetSlotDuration: %s slot duration set to %d minutes", weekday, minutes)
	return nil
}

// AddBreak добавляет перерыв. Времена принимаются в строгом формате HH:MM,
// конец перерыва должен быть строго позже начала.
func (s *Service) AddBreak(ctx context.Context, weekday domain.Weekday, startStr, endStr string) error {
	start, err := types.NewTimeStringFromString(startStr)
	if err != nil {
		return fmt.Errorf("%w: start %q", ErrInvalidTimeFormat, startStr)
	}

	end, err := types.NewTimeStringFromString(endStr)
	if err != nil {
		return fmt.Errorf("%w: end %q", ErrInvalidTimeFormat, endStr)
	}

	if !end.IsAfter(start) {
		return fmt.Errorf("%w: %s - %s", ErrInvalidBreakRange, start, end)
	}

	cfg, err := s.getOrDefault(ctx, weekday)
	if err != nil {
		return err
	}

	cfg.Breaks = append(cfg.Breaks, domain.BreakInterval{Start: start, End: end})

	if err := s.configRepo.Put(ctx, cfg); err != nil {
		return fmt.Errorf("%w: AddBreak - save config: %v", ErrInternal, err)
	}

	s.logger.Info("AddBreak: %s break added %s - %s", weekday, start, end)
	return nil
}

// RemoveBreak удаляет перерыв по индексу.
// Возвращает удаленный перерыв для отображения администратору.
func (s *Service) RemoveBreak(ctx context.Context, weekday domain.Weekday, index int) (domain.BreakInterval, error) {
	cfg, err := s.GetDay(ctx, weekday)
	if err != nil {
		return domain.BreakInterval{}, err
	}

	if index < 0 || index >= len(cfg.Breaks) {
		return domain.BreakInterval{}, fmt.Errorf("%w: index %d of %d breaks", ErrBreakIndexOutOfRange, index, len(cfg.Breaks))
	}

	removed := cfg.Breaks[index]
	cfg.Breaks = append(cfg.Breaks[:index], cfg.Breaks[index+1:]...)

	if err := s.configRepo.Put(ctx, cfg); err != nil {
		return domain.BreakInterval{}, fmt.Errorf("%w: RemoveBreak - save config: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveBreak: %s break removed %s - %s", weekday, removed.Start, removed.End)
	return removed, nil
}

// RemoveAllBreaks удаляет все перерывы дня.
// Возвращает количество удаленных перерывов.
func (s *Service) RemoveAllBreaks(ctx context.Context, weekday domain.Weekday) (int, error) {
	cfg, err := s.GetDay(ctx, weekday)
	if err != nil {
		return 0, err
	}

	removed := len(cfg.Breaks)
	cfg.Breaks = []domain.BreakInterval{}

	if err := s.configRepo.Put(ctx, cfg); err != nil {
		return 0, fmt.Errorf("%w: RemoveAllBreaks - save config: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveAllBreaks: %s removed %d breaks", weekday, removed)
	return removed, nil
}

// SetPartialSlots включает или выключает неполные хвостовые слоты
func (s *Service) SetPartialSlots(ctx context.Context, weekday domain.Weekday, allow bool) error {
	cfg, err := s.getOrDefault(ctx, weekday)
	if err != nil {
		return err
	}

	cfg.AllowPartialSlots = allow

	if err := s.configRepo.Put(ctx, cfg); err != nil {
		return fmt.Errorf("%w: SetPartialSlots - save config: %v", ErrInternal, err)
	}

	s.logger.Info("SetPartialSlots: %s partial slots set to %v", weekday, allow)
	return nil
}
