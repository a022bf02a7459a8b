package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
)

type fakeAppointmentRepo struct {
	confirmed []*domain.Appointment
	upserted  *domain.Appointment
}

func (f *fakeAppointmentRepo) ListConfirmedOnDate(_ context.Context, _ time.Time) ([]*domain.Appointment, error) {
	return f.confirmed, nil
}

func (f *fakeAppointmentRepo) UpsertPending(_ context.Context, appt *domain.Appointment) error {
	f.upserted = appt
	return nil
}

// fakeTxManager исполняет функцию без настоящей транзакции
type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeAdminNotifier struct {
	notified *domain.Appointment
	err      error
}

func (f *fakeAdminNotifier) NotifyBookingRequest(_ context.Context, appt *domain.Appointment) error {
	if f.err != nil {
		return f.err
	}
	f.notified = appt
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func validRequest() *Request {
	return &Request{
		UserID:  100,
		Weekday: domain.Wednesday,
		StartAt: time.Date(2026, time.September, 2, 11, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2026, time.September, 2, 12, 0, 0, 0, time.UTC),
		Name:    "Alice",
		Contact: "+1 555 0100",
	}
}

func TestExecute_Success(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	notifier := &fakeAdminNotifier{}
	uc := NewUseCase(repo, fakeTxManager{}, notifier, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	require.NotNil(t, repo.upserted)
	assert.Equal(t, domain.StatusPending, repo.upserted.Status)
	assert.Equal(t, int64(100), repo.upserted.UserID)
	assert.True(t, resp.AdminNotified)
	assert.Equal(t, repo.upserted, notifier.notified)
}

func TestExecute_SlotTaken(t *testing.T) {
	repo := &fakeAppointmentRepo{confirmed: []*domain.Appointment{{
		UserID:  200,
		StartAt: time.Date(2026, time.September, 2, 11, 30, 0, 0, time.UTC),
		EndAt:   time.Date(2026, time.September, 2, 12, 30, 0, 0, time.UTC),
		Status:  domain.StatusConfirmed,
	}}}
	uc := NewUseCase(repo, fakeTxManager{}, &fakeAdminNotifier{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotTaken)
	assert.Nil(t, repo.upserted)
}

func TestExecute_TouchingSlotIsFree(t *testing.T) {
	// Смежный интервал не конфликтует: границы полуоткрыты
	repo := &fakeAppointmentRepo{confirmed: []*domain.Appointment{{
		UserID:  200,
		StartAt: time.Date(2026, time.September, 2, 12, 0, 0, 0, time.UTC),
		EndAt:   time.Date(2026, time.September, 2, 13, 0, 0, 0, time.UTC),
		Status:  domain.StatusConfirmed,
	}}}
	uc := NewUseCase(repo, fakeTxManager{}, &fakeAdminNotifier{}, nopLogger{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	require.NotNil(t, repo.upserted)
}

func TestExecute_NotifierFailureDoesNotRollBack(t *testing.T) {
	repo := &fakeAppointmentRepo{}
	notifier := &fakeAdminNotifier{err: errors.New("blocked")}
	uc := NewUseCase(repo, fakeTxManager{}, notifier, nopLogger{})

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotNil(t, repo.upserted)
	assert.False(t, resp.AdminNotified)
}

func TestExecute_Validation(t *testing.T) {
	uc := NewUseCase(&fakeAppointmentRepo{}, fakeTxManager{}, &fakeAdminNotifier{}, nopLogger{})

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{"zero user", func(r *Request) { r.UserID = 0 }},
		{"unknown weekday", func(r *Request) { r.Weekday = "someday" }},
		{"empty name", func(r *Request) { r.Name = "   " }},
		{"empty contact", func(r *Request) { r.Contact = "" }},
		{"inverted interval", func(r *Request) { r.StartAt, r.EndAt = r.EndAt, r.StartAt }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := uc.Execute(context.Background(), req)
			require.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
