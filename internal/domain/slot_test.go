package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	base := time.Date(2026, time.September, 2, 11, 0, 0, 0, time.UTC)
	hour := func(n int) time.Time { return base.Add(time.Duration(n) * time.Hour) }

	tests := []struct {
		name           string
		aStart, aEnd   time.Time
		bStart, bEnd   time.Time
		expectConflict bool
	}{
		{"identical", hour(0), hour(1), hour(0), hour(1), true},
		{"contained", hour(0), hour(3), hour(1), hour(2), true},
		{"partial overlap", hour(0), hour(2), hour(1), hour(3), true},
		{"touching end to start", hour(0), hour(1), hour(1), hour(2), false},
		{"touching start to end", hour(1), hour(2), hour(0), hour(1), false},
		{"disjoint", hour(0), hour(1), hour(2), hour(3), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expectConflict, Overlaps(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd))
			// Пересечение симметрично
			assert.Equal(t, tt.expectConflict, Overlaps(tt.bStart, tt.bEnd, tt.aStart, tt.aEnd))
		})
	}
}

func TestSlot_Label(t *testing.T) {
	slot := Slot{
		Start: time.Date(2026, time.September, 2, 11, 0, 0, 0, time.UTC),
		End:   time.Date(2026, time.September, 2, 12, 30, 0, 0, time.UTC),
	}
	assert.Equal(t, "11:00 AM - 12:30 PM", slot.Label())
}

func TestSortedBreaks(t *testing.T) {
	cfg := &DayConfig{Breaks: []BreakInterval{
		{Start: "14:00", End: "15:00"},
		{Start: "11:00", End: "11:30"},
		{Start: "12:00", End: "13:00"},
	}}

	sorted := cfg.SortedBreaks()
	assert.Equal(t, BreakInterval{Start: "11:00", End: "11:30"}, sorted[0])
	assert.Equal(t, BreakInterval{Start: "12:00", End: "13:00"}, sorted[1])
	assert.Equal(t, BreakInterval{Start: "14:00", End: "15:00"}, sorted[2])

	// Исходный порядок не изменяется
	assert.Equal(t, BreakInterval{Start: "14:00", End: "15:00"}, cfg.Breaks[0])
}
