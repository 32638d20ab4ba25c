package domain

import "time"

// ScheduleSettings represents the booking policy of a business
type ScheduleSettings struct {
	BusinessID            int64
	SlotDurationMinutes   int
	AllowSameDayBooking   bool
	MinTimeBeforeBooking  int // minutes
	MaxFutureBookingDays  int // 0 = unlimited
	AllowCancellation     bool
	CancellationTimeLimit int // hours before start
	AutoApprove           bool
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// DefaultScheduleSettings returns the policy applied when a business has no stored settings
func DefaultScheduleSettings(businessID int64) *ScheduleSettings {
	return &ScheduleSettings{
		BusinessID:            businessID,
		SlotDurationMinutes:   DefaultSlotDurationMinutes,
		AllowSameDayBooking:   DefaultAllowSameDayBooking,
		MinTimeBeforeBooking:  DefaultMinTimeBeforeBooking,
		MaxFutureBookingDays:  DefaultMaxFutureBookingDays,
		AllowCancellation:     DefaultAllowCancellation,
		CancellationTimeLimit: DefaultCancellationTimeLimit,
		AutoApprove:           DefaultAutoApprove,
	}
}

// SlotDuration returns the slot increment as a duration
func (s *ScheduleSettings) SlotDuration() time.Duration {
	return time.Duration(s.SlotDurationMinutes) * time.Minute
}

// HasFutureBookingLimit returns true if there's a limit on how far in advance bookings can be made
func (s *ScheduleSettings) HasFutureBookingLimit() bool {
	return s.MaxFutureBookingDays > 0
}

// CancellationDeadline returns the last instant a customer may cancel an appointment starting at start
func (s *ScheduleSettings) CancellationDeadline(start time.Time) time.Time {
	return start.Add(-time.Duration(s.CancellationTimeLimit) * time.Hour)
}
