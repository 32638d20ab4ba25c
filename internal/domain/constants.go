package domain

// Default schedule settings
const (
	DefaultSlotDurationMinutes   = 30
	DefaultAllowSameDayBooking   = true
	DefaultMinTimeBeforeBooking  = 0
	DefaultMaxFutureBookingDays  = 0 // 0 = unlimited
	DefaultAllowCancellation     = true
	DefaultCancellationTimeLimit = 0
	DefaultAutoApprove           = false
)

// Business validation constants
const (
	MinSlotDurationMinutes      = 5
	MaxSlotDurationMinutes      = 480 // 8 hours
	MinTimeBeforeBookingMinutes = 0
	MaxTimeBeforeBookingMinutes = 10080 // 1 week
	MinFutureBookingDays        = 0
	MaxFutureBookingDays        = 365
	MinCancellationTimeLimit    = 0
	MaxCancellationTimeLimit    = 720 // 30 days
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses statuses that occupy a time range
var ActiveStatuses = []AppointmentStatus{
	StatusPending,
	StatusApproved,
}

// InactiveStatuses statuses that never block a slot
var InactiveStatuses = []AppointmentStatus{
	StatusCanceled,
	StatusCompleted,
}
