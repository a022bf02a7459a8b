package get_available_slots

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
	configRepo "github.com/m04kA/SMC-AppointmentBot/internal/infra/storage/dayconfig"
)

type fakeConfigRepo struct {
	configs map[domain.Weekday]*domain.DayConfig
}

func (f *fakeConfigRepo) Get(_ context.Context, weekday domain.Weekday) (*domain.DayConfig, error) {
	cfg, ok := f.configs[weekday]
	if !ok {
		return nil, configRepo.ErrConfigNotFound
	}
	return cfg, nil
}

type fakeAppointmentRepo struct {
	appointments []*domain.Appointment
	gotDate      time.Time
}

func (f *fakeAppointmentRepo) ListConfirmedOnDate(_ context.Context, date time.Time) ([]*domain.Appointment, error) {
	f.gotDate = date
	return f.appointments, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newTestUseCase(configs *fakeConfigRepo, appts *fakeAppointmentRepo, now time.Time) *UseCase {
	uc := NewUseCase(appts, configs, nopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: now}
	return uc
}

func TestExecute_HappyPath(t *testing.T) {
	configs := &fakeConfigRepo{configs: map[domain.Weekday]*domain.DayConfig{
		domain.Wednesday: testConfig("11:00", "15:00", 60, nil, false),
	}}
	appts := &fakeAppointmentRepo{appointments: []*domain.Appointment{booked(12, 0, 13, 0)}}

	// Понедельник 31 августа 2026: ближайшая среда - 2 сентября
	now := time.Date(2026, time.August, 31, 9, 30, 0, 0, time.UTC)
	uc := newTestUseCase(configs, appts, now)

	resp, err := uc.Execute(context.Background(), &Request{Weekday: domain.Wednesday})
	require.NoError(t, err)

	assert.Equal(t, domain.Wednesday, resp.Weekday)
	assert.Equal(t, testDate, resp.Date)
	assert.Equal(t, testDate, appts.gotDate)
	assert.Equal(t, []time.Time{at(11, 0), at(13, 0), at(14, 0)}, slotStarts(resp.Slots))
}

func TestExecute_TodayCountsAsNextOccurrence(t *testing.T) {
	configs := &fakeConfigRepo{configs: map[domain.Weekday]*domain.DayConfig{
		domain.Wednesday: testConfig("11:00", "15:00", 60, nil, false),
	}}
	appts := &fakeAppointmentRepo{}

	// Среда поздно вечером: дата остается сегодняшней
	now := time.Date(2026, time.September, 2, 23, 0, 0, 0, time.UTC)
	uc := newTestUseCase(configs, appts, now)

	resp, err := uc.Execute(context.Background(), &Request{Weekday: domain.Wednesday})
	require.NoError(t, err)

	assert.Equal(t, testDate, resp.Date)
}

func TestExecute_DayNotConfigured(t *testing.T) {
	uc := newTestUseCase(&fakeConfigRepo{configs: map[domain.Weekday]*domain.DayConfig{}},
		&fakeAppointmentRepo{}, time.Now())

	_, err := uc.Execute(context.Background(), &Request{Weekday: domain.Monday})
	require.ErrorIs(t, err, ErrDayNotActive)
}

func TestExecute_DayInactive(t *testing.T) {
	cfg := testConfig("11:00", "15:00", 60, nil, false)
	cfg.Active = false
	uc := newTestUseCase(&fakeConfigRepo{configs: map[domain.Weekday]*domain.DayConfig{
		domain.Wednesday: cfg,
	}}, &fakeAppointmentRepo{}, time.Now())

	_, err := uc.Execute(context.Background(), &Request{Weekday: domain.Wednesday})
	require.ErrorIs(t, err, ErrDayNotActive)
}
