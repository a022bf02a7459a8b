package domain

import (
	"fmt"
	"strings"
	"time"
)

// Weekday represents a recurring bookable weekday ("wednesday", "friday", ...)
type Weekday string

const (
	Monday    Weekday = "monday"
	Tuesday   Weekday = "tuesday"
	Wednesday Weekday = "wednesday"
	Thursday  Weekday = "thursday"
	Friday    Weekday = "friday"
	Saturday  Weekday = "saturday"
	Sunday    Weekday = "sunday"
)

// AllWeekdays lists weekdays in calendar order starting from Monday
var AllWeekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayToTime = map[Weekday]time.Weekday{
	Monday:    time.Monday,
	Tuesday:   time.Tuesday,
	Wednesday: time.Wednesday,
	Thursday:  time.Thursday,
	Friday:    time.Friday,
	Saturday:  time.Saturday,
	Sunday:    time.Sunday,
}

// ParseWeekday parses a lowercase weekday name
func ParseWeekday(s string) (Weekday, error) {
	w := Weekday(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := weekdayToTime[w]; !ok {
		return "", fmt.Errorf("domain: unknown weekday %q", s)
	}
	return w, nil
}

// ToTime converts to time.Weekday
func (w Weekday) ToTime() time.Weekday {
	return weekdayToTime[w]
}

// Title returns the capitalized display form ("Wednesday")
func (w Weekday) Title() string {
	if w == "" {
		return ""
	}
	return strings.ToUpper(string(w[0])) + string(w[1:])
}

// NextOccurrence returns the earliest date >= today (in now's location) whose
// weekday matches w, at midnight. Today counts as a candidate regardless of
// the current time of day.
func (w Weekday) NextOccurrence(now time.Time) time.Time {
	offset := (int(w.ToTime()) - int(now.Weekday()) + 7) % 7
	next := now.AddDate(0, 0, offset)
	return time.Date(next.Year(), next.Month(), next.Day(), 0, 0, 0, 0, next.Location())
}
