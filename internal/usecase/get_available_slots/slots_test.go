package get_available_slots

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentBot/internal/domain"
	"github.com/m04kA/SMC-AppointmentBot/pkg/types"
)

// 2 сентября 2026 - среда
var testDate = time.Date(2026, time.September, 2, 0, 0, 0, 0, time.UTC)

func at(hour, min int) time.Time {
	return time.Date(2026, time.September, 2, hour, min, 0, 0, time.UTC)
}

func testConfig(open, close string, durationMinutes int, breaks []domain.BreakInterval, partial bool) *domain.DayConfig {
	return &domain.DayConfig{
		Weekday:             domain.Wednesday,
		Active:              true,
		OpenTime:            types.TimeString(open),
		CloseTime:           types.TimeString(close),
		SlotDurationMinutes: durationMinutes,
		Breaks:              breaks,
		AllowPartialSlots:   partial,
	}
}

func booked(startHour, startMin, endHour, endMin int) *domain.Appointment {
	return &domain.Appointment{
		UserID:  42,
		Weekday: domain.Wednesday,
		StartAt: at(startHour, startMin),
		EndAt:   at(endHour, endMin),
		Status:  domain.StatusConfirmed,
	}
}

func slotStarts(slots []domain.Slot) []time.Time {
	starts := make([]time.Time, 0, len(slots))
	for _, s := range slots {
		starts = append(starts, s.Start)
	}
	return starts
}

func TestGenerateSlots_FullDay(t *testing.T) {
	cfg := testConfig("11:00", "15:00", 60, nil, false)

	slots, err := generateSlots(cfg, testDate, nil)
	require.NoError(t, err)

	assert.Equal(t, []time.Time{at(11, 0), at(12, 0), at(13, 0), at(14, 0)}, slotStarts(slots))
	for _, s := range slots {
		assert.True(t, s.FullDuration)
		assert.Equal(t, time.Hour, s.End.Sub(s.Start))
	}
}

func TestGenerateSlots_BreakSplitsDay(t *testing.T) {
	breaks := []domain.BreakInterval{{Start: "13:00", End: "14:00"}}
	cfg := testConfig("11:00", "15:00", 30, breaks, false)

	slots, err := generateSlots(cfg, testDate, nil)
	require.NoError(t, err)

	assert.Equal(t, []time.Time{
		at(11, 0), at(11, 30), at(12, 0), at(12, 30),
		at(14, 0), at(14, 30),
	}, slotStarts(slots))
}

func TestGenerateSlots_OverlappingBreaksNotMerged(t *testing.T) {
	// Курсор выталкивается из перерыва в перерыв без слияния интервалов
	breaks := []domain.BreakInterval{
		{Start: "12:15", End: "13:00"},
		{Start: "12:00", End: "12:30"},
	}
	cfg := testConfig("11:00", "15:00", 60, breaks, false)

	slots, err := generateSlots(cfg, testDate, nil)
	require.NoError(t, err)

	assert.Equal(t, []time.Time{at(11, 0), at(13, 0), at(14, 0)}, slotStarts(slots))
}

func TestGenerateSlots_SlotMayStraddleBreakStart(t *testing.T) {
	// Перерыв проверяется только по положению курсора: слот, начавшийся до
	// перерыва, не обрезается его началом
	breaks := []domain.BreakInterval{{Start: "11:30", End: "12:30"}}
	cfg := testConfig("11:00", "15:00", 60, breaks, false)

	slots, err := generateSlots(cfg, testDate, nil)
	require.NoError(t, err)

	assert.Equal(t, []time.Time{at(11, 0), at(12, 30), at(13, 30)}, slotStarts(slots))
}

func TestGenerateSlots_BreakEndingAtCloseTime(t *testing.T) {
	// После перерыва, упирающегося в закрытие, слотов не остается
	breaks := []domain.BreakInterval{{Start: "13:00", End: "15:00"}}
	cfg := testConfig("11:00", "15:00", 60, breaks, true)

	slots, err := generateSlots(cfg, testDate, nil)
	require.NoError(t, err)

	assert.Equal(t, []time.Time{at(11, 0), at(12, 0)}, slotStarts(slots))
}

func TestGenerateSlots_PartialTrailingSlot(t *testing.T) {
	cfg := testConfig("11:00", "14:30", 60, nil, true)

	slots, err := generateSlots(cfg, testDate, nil)
	require.NoError(t, err)

	require.Len(t, slots, 4)
	assert.Equal(t, []time.Time{at(11, 0), at(12, 0), at(13, 0), at(14, 0)}, slotStarts(slots))

	last := slots[3]
	assert.False(t, last.FullDuration)
	assert.Equal(t, at(14, 30), last.End)
}

func TestGenerateSlots_PartialDisabled(t *testing.T) {
	cfg := testConfig("11:00", "14:30", 60, nil, false)

	slots, err := generateSlots(cfg, testDate, nil)
	require.NoError(t, err)

	assert.Equal(t, []time.Time{at(11, 0), at(12, 0), at(13, 0)}, slotStarts(slots))
}

func TestGenerateSlots_BookedSlotConsumesDuration(t *testing.T) {
	// Занятый слот не предлагается, но сетка остальных слотов не съезжает
	cfg := testConfig("11:00", "15:00", 60, nil, false)
	taken := []*domain.Appointment{booked(12, 0, 13, 0)}

	slots, err := generateSlots(cfg, testDate, taken)
	require.NoError(t, err)

	assert.Equal(t, []time.Time{at(11, 0), at(13, 0), at(14, 0)}, slotStarts(slots))
}

func TestGenerateSlots_TouchingIntervalsDoNotConflict(t *testing.T) {
	cfg := testConfig("11:00", "13:00", 60, nil, false)
	taken := []*domain.Appointment{booked(12, 0, 13, 0)}

	slots, err := generateSlots(cfg, testDate, taken)
	require.NoError(t, err)

	assert.Equal(t, []time.Time{at(11, 0)}, slotStarts(slots))
}

func TestGenerateSlots_Deterministic(t *testing.T) {
	breaks := []domain.BreakInterval{{Start: "13:00", End: "14:00"}}
	cfg := testConfig("11:00", "15:00", 30, breaks, true)
	taken := []*domain.Appointment{booked(11, 30, 12, 0)}

	first, err := generateSlots(cfg, testDate, taken)
	require.NoError(t, err)
	second, err := generateSlots(cfg, testDate, taken)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerateSlots_AscendingOrder(t *testing.T) {
	breaks := []domain.BreakInterval{{Start: "12:00", End: "12:45"}}
	cfg := testConfig("09:00", "18:00", 45, breaks, true)

	slots, err := generateSlots(cfg, testDate, nil)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	for i := 1; i < len(slots); i++ {
		assert.True(t, slots[i-1].Start.Before(slots[i].Start))
	}
}

func TestGenerateSlots_InvalidWindow(t *testing.T) {
	cfg := testConfig("15:00", "11:00", 60, nil, false)

	_, err := generateSlots(cfg, testDate, nil)
	require.ErrorIs(t, err, ErrInvalidConfig)
}
