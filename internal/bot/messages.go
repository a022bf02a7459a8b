package bot

const (
	msgHelp = "📅 Appointment booking bot\n\n" +
		"/book - start a new booking\n" +
		"/cancel - cancel the current action"
	msgUnknownCommand  = "I don't understand that command. Use /book to make a booking."
	msgStartHint       = "Use /book to start a booking."
	msgNothingCancel   = "Nothing to cancel."
	msgActionCancelled = "❌ Action cancelled."
	msgSystemError     = "⚠️ Something went wrong. Please try again later."

	msgAwaitingApproval = "⏳ Your request has been sent for approval. You'll be notified once it's reviewed!"
	msgSlotJustTaken    = "❌ That slot was just taken. Please choose another time."

	msgAdminOnly        = "❌ Admin only command"
	msgRequestNotFound  = "Request not found - it may have been replaced or already handled."
	msgApproveConflict  = "❌ Slot is already taken by a confirmed booking. The request is left pending."
	msgAskRejectReason  = "📝 Send the rejection reason:"
	msgNoBookings       = "No confirmed bookings."
	msgChooseDayAdmin   = "Choose a day:"
	msgAskDuration      = "Send the slot duration in minutes:"
	msgAskBreakStart    = "Send the break start time (HH:MM):"
	msgAskBreakEnd      = "Send the break end time (HH:MM):"
	msgNewBookingHeader = "📝 New booking request!"
)
