package domain

import "time"

// AppointmentStatus represents the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
)

// Appointment represents a booked (or awaiting approval) appointment.
// The requester's Telegram user ID is the natural key: at most one pending
// and one confirmed appointment exist per user.
type Appointment struct {
	UserID    int64
	Weekday   Weekday
	StartAt   time.Time
	EndAt     time.Time
	Name      string
	Contact   string
	Status    AppointmentStatus
	CreatedAt time.Time
}

// IsPending returns true if the appointment awaits admin approval
func (a *Appointment) IsPending() bool {
	return a.Status == StatusPending
}

// IsConfirmed returns true if the appointment has been approved
func (a *Appointment) IsConfirmed() bool {
	return a.Status == StatusConfirmed
}

// OverlapsInterval reports whether the appointment conflicts with [start, end)
func (a *Appointment) OverlapsInterval(start, end time.Time) bool {
	return Overlaps(start, end, a.StartAt, a.EndAt)
}
