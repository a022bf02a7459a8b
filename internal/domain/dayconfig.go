package domain

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-AppointmentBot/pkg/types"
)

// BreakInterval is a half-open break window within a working day
type BreakInterval struct {
	Start types.TimeString `json:"start"`
	End   types.TimeString `json:"end"`
}

// DayConfig is the declarative booking configuration for one recurring weekday.
// Persisted as a whole document per change (last-writer-wins, no merge).
type DayConfig struct {
	Weekday             Weekday
	Active              bool
	OpenTime            types.TimeString
	CloseTime           types.TimeString
	SlotDurationMinutes int
	Breaks              []BreakInterval
	AllowPartialSlots   bool
	UpdatedAt           time.Time
}

// SortedBreaks returns a copy of the breaks ordered by start time ascending.
// Breaks may be stored unsorted; slot generation requires start-time order.
func (c *DayConfig) SortedBreaks() []BreakInterval {
	sorted := make([]BreakInterval, len(c.Breaks))
	copy(sorted, c.Breaks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Start.IsBefore(sorted[j].Start)
	})
	return sorted
}

// DefaultDayConfigs returns the configuration seeded at first run
func DefaultDayConfigs() []*DayConfig {
	return []*DayConfig{
		{
			Weekday:             Wednesday,
			Active:              true,
			OpenTime:            DefaultOpenTime,
			CloseTime:           DefaultCloseTime,
			SlotDurationMinutes: 60,
			Breaks:              []BreakInterval{},
			AllowPartialSlots:   false,
		},
		{
			Weekday:             Friday,
			Active:              true,
			OpenTime:            DefaultOpenTime,
			CloseTime:           DefaultCloseTime,
			SlotDurationMinutes: 30,
			Breaks:              []BreakInterval{{Start: "13:00", End: "14:00"}},
			AllowPartialSlots:   false,
		},
	}
}
