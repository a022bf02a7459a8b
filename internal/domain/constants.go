package domain

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD

	// Formats for user-facing messages
	DisplayTimeFormat = "3:04 PM"
	DisplayDateFormat = "Monday, January 2"
	ShortDateFormat   = "02/01"
)

// Default configuration values
const (
	DefaultOpenTime            = "11:00"
	DefaultCloseTime           = "15:00"
	DefaultSlotDurationMinutes = 60
	DefaultReminderLeadHours   = 24
)

// Business validation constants
const (
	MinSlotDurationMinutes = 1
	MaxSlotDurationMinutes = 480 // 8 hours
	MaxNameLength          = 200
	MaxContactLength       = 200
	MaxRejectReasonLength  = 500
)
