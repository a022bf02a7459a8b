package domain

import (
	"fmt"
	"time"
)

// Slot is a candidate bookable interval offered to a client. Ephemeral, never
// persisted; FullDuration is false for a trailing partial slot.
type Slot struct {
	Start        time.Time
	End          time.Time
	FullDuration bool
}

// Label returns the user-facing representation ("11:00 AM - 12:00 PM")
func (s Slot) Label() string {
	return fmt.Sprintf("%s - %s", FormatClock(s.Start), FormatClock(s.End))
}

// Overlaps reports whether two half-open intervals [aStart, aEnd) and
// [bStart, bEnd) intersect. Touching endpoints do not conflict.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return bStart.Before(aEnd) && bEnd.After(aStart)
}

// FormatClock formats a timestamp as "3:04 PM"
func FormatClock(t time.Time) string {
	return t.Format(DisplayTimeFormat)
}
