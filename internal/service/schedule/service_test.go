package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
	configRepo "github.com/m04kA/SMC-AppointmentBot/internal/infra/storage/dayconfig"
)

type fakeConfigRepo struct {
	configs map[domain.Weekday]*domain.DayConfig
}

func newFakeConfigRepo() *fakeConfigRepo {
	return &fakeConfigRepo{configs: make(map[domain.Weekday]*domain.DayConfig)}
}

func (f *fakeConfigRepo) Get(_ context.Context, weekday domain.Weekday) (*domain.DayConfig, error) {
	cfg, ok := f.configs[weekday]
	if !ok {
		return nil, configRepo.ErrConfigNotFound
	}
	copied := *cfg
	return &copied, nil
}

func (f *fakeConfigRepo) GetAll(_ context.Context) ([]*domain.DayConfig, error) {
	configs := make([]*domain.DayConfig, 0, len(f.configs))
	for _, cfg := range f.configs {
		copied := *cfg
		configs = append(configs, &copied)
	}
	return configs, nil
}

func (f *fakeConfigRepo) Put(_ context.Context, cfg *domain.DayConfig) error {
	copied := *cfg
	f.configs[cfg.Weekday] = &copied
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestService() (*fakeConfigRepo, *Service) {
	repo := newFakeConfigRepo()
	return repo, NewService(repo, nopLogger{})
}

func TestEnsureDefaults_SeedsEmptyStore(t *testing.T) {
	repo, svc := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaults(ctx))
	require.Len(t, repo.configs, 2)

	wed, err := svc.GetDay(ctx, domain.Wednesday)
	require.NoError(t, err)
	assert.True(t, wed.Active)
	assert.Equal(t, 60, wed.SlotDurationMinutes)
	assert.Empty(t, wed.Breaks)

	fri, err := svc.GetDay(ctx, domain.Friday)
	require.NoError(t, err)
	assert.True(t, fri.Active)
	assert.Equal(t, 30, fri.SlotDurationMinutes)
	require.Len(t, fri.Breaks, 1)
	assert.Equal(t, "13:00", string(fri.Breaks[0].Start))
	assert.Equal(t, "14:00", string(fri.Breaks[0].End))

	_, err = svc.GetDay(ctx, domain.Monday)
	require.ErrorIs(t, err, ErrDayNotFound)
}

func TestEnsureDefaults_DoesNotOverwrite(t *testing.T) {
	repo, svc := newTestService()
	ctx := context.Background()

	require.NoError(t, svc.EnsureDefaults(ctx))
	require.NoError(t, svc.SetSlotDuration(ctx, domain.Wednesday, 45))

	require.NoError(t, svc.EnsureDefaults(ctx))

	assert.Equal(t, 45, repo.configs[domain.Wednesday].SlotDurationMinutes)
}

func TestGetDay_NotFound(t *testing.T) {
	_, svc := newTestService()

	_, err := svc.GetDay(context.Background(), domain.Sunday)
	require.ErrorIs(t, err, ErrDayNotFound)
}

func TestToggleDay(t *testing.T) {
	_, svc := newTestService()
	ctx := context.Background()
	require.NoError(t, svc.EnsureDefaults(ctx))

	active, err := svc.ToggleDay(ctx, domain.Wednesday)
	require.NoError(t, err)
	assert.False(t, active)

	active, err = svc.ToggleDay(ctx, domain.Wednesday)
	require.NoError(t, err)
	assert.True(t, active)
}

func TestToggleDay_CreatesUnconfiguredDay(t *testing.T) {
	repo, svc := newTestService()
	ctx := context.Background()
	require.NoError(t, svc.EnsureDefaults(ctx))

	active, err := svc.ToggleDay(ctx, domain.Monday)
	require.NoError(t, err)
	assert.True(t, active)

	mon := repo.configs[domain.Monday]
	require.NotNil(t, mon)
	assert.Equal(t, domain.DefaultOpenTime, string(mon.OpenTime))
	assert.Equal(t, domain.DefaultSlotDurationMinutes, mon.SlotDurationMinutes)
}

func TestActiveDays(t *testing.T) {
	_, svc := newTestService()
	ctx := context.Background()
	require.NoError(t, svc.EnsureDefaults(ctx))

	days, err := svc.ActiveDays(ctx)
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, domain.Wednesday, days[0].Weekday)
	assert.Equal(t, domain.Friday, days[1].Weekday)
}

func TestSetSlotDuration_Validation(t *testing.T) {
	_, svc := newTestService()
	ctx := context.Background()
	require.NoError(t, svc.EnsureDefaults(ctx))

	require.ErrorIs(t, svc.SetSlotDuration(ctx, domain.Wednesday, 0), ErrInvalidDuration)
	require.ErrorIs(t, svc.SetSlotDuration(ctx, domain.Wednesday, -30), ErrInvalidDuration)
	require.ErrorIs(t, svc.SetSlotDuration(ctx, domain.Wednesday, 10000), ErrInvalidDuration)
	require.NoError(t, svc.SetSlotDuration(ctx, domain.Wednesday, 90))

	cfg, err := svc.GetDay(ctx, domain.Wednesday)
	require.NoError(t, err)
	assert.Equal(t, 90, cfg.SlotDurationMinutes)
}

func TestAddBreak(t *testing.T) {
	_, svc := newTestService()
	ctx := context.Background()
	require.NoError(t, svc.EnsureDefaults(ctx))

	require.NoError(t, svc.AddBreak(ctx, domain.Wednesday, "12:00", "12:30"))

	cfg, err := svc.GetDay(ctx, domain.Wednesday)
	require.NoError(t, err)
	require.Len(t, cfg.Breaks, 1)
	assert.Equal(t, "12:00", string(cfg.Breaks[0].Start))
}

func TestAddBreak_Validation(t *testing.T) {
	_, svc := newTestService()
	ctx := context.Background()
	require.NoError(t, svc.EnsureDefaults(ctx))

	require.ErrorIs(t, svc.AddBreak(ctx, domain.Wednesday, "noon", "13:00"), ErrInvalidTimeFormat)
	require.ErrorIs(t, svc.AddBreak(ctx, domain.Wednesday, "12:00", "25:00"), ErrInvalidTimeFormat)
	require.ErrorIs(t, svc.AddBreak(ctx, domain.Wednesday, "12:0", "13:00"), ErrInvalidTimeFormat)
	require.ErrorIs(t, svc.AddBreak(ctx, domain.Wednesday, "13:00", "13:00"), ErrInvalidBreakRange)
	require.ErrorIs(t, svc.AddBreak(ctx, domain.Wednesday, "13:00", "12:00"), ErrInvalidBreakRange)
}

func TestRemoveBreak(t *testing.T) {
	_, svc := newTestService()
	ctx := context.Background()
	require.NoError(t, svc.EnsureDefaults(ctx))

	removed, err := svc.RemoveBreak(ctx, domain.Friday, 0)
	require.NoError(t, err)
	assert.Equal(t, "13:00", string(removed.Start))

	cfg, err := svc.GetDay(ctx, domain.Friday)
	require.NoError(t, err)
	assert.Empty(t, cfg.Breaks)
}

func TestRemoveBreak_UnsortedBreaksKeepStoredOrder(t *testing.T) {
	// Индекс удаления должен совпадать с позицией перерыва в конфигурации,
	// даже когда перерывы добавлены не по возрастанию времени
	_, svc := newTestService()
	ctx := context.Background()
	require.NoError(t, svc.EnsureDefaults(ctx))

	require.NoError(t, svc.AddBreak(ctx, domain.Wednesday, "13:00", "14:00"))
	require.NoError(t, svc.AddBreak(ctx, domain.Wednesday, "11:30", "12:00"))

	cfg, err := svc.GetDay(ctx, domain.Wednesday)
	require.NoError(t, err)
	require.Equal(t, "13:00", string(cfg.Breaks[0].Start))

	removed, err := svc.RemoveBreak(ctx, domain.Wednesday, 0)
	require.NoError(t, err)
	assert.Equal(t, "13:00", string(removed.Start))
	assert.Equal(t, "14:00", string(removed.End))

	cfg, err = svc.GetDay(ctx, domain.Wednesday)
	require.NoError(t, err)
	require.Len(t, cfg.Breaks, 1)
	assert.Equal(t, "11:30", string(cfg.Breaks[0].Start))
}

func TestRemoveBreak_IndexOutOfRange(t *testing.T) {
	_, svc := newTestService()
	ctx := context.Background()
	require.NoError(t, svc.EnsureDefaults(ctx))

	_, err := svc.RemoveBreak(ctx, domain.Friday, 5)
	require.ErrorIs(t, err, ErrBreakIndexOutOfRange)

	_, err = svc.RemoveBreak(ctx, domain.Friday, -1)
	require.ErrorIs(t, err, ErrBreakIndexOutOfRange)
}

func TestRemoveAllBreaks(t *testing.T) {
	_, svc := newTestService()
	ctx := context.Background()
	require.NoError(t, svc.EnsureDefaults(ctx))
	require.NoError(t, svc.AddBreak(ctx, domain.Friday, "11:30", "11:45"))

	removed, err := svc.RemoveAllBreaks(ctx, domain.Friday)
	require.NoError(t, err)
	assert.Equal(t, 2, removed)

	cfg, err := svc.GetDay(ctx, domain.Friday)
	require.NoError(t, err)
	assert.Empty(t, cfg.Breaks)
}

func TestSetPartialSlots(t *testing.T) {
	_, svc := newTestService()
	ctx := context.Background()
	require.NoError(t, svc.EnsureDefaults(ctx))

	require.NoError(t, svc.SetPartialSlots(ctx, domain.Wednesday, true))

	cfg, err := svc.GetDay(ctx, domain.Wednesday)
	require.NoError(t, err)
	assert.True(t, cfg.AllowPartialSlots)
}
