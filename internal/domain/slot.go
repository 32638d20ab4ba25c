package domain

import "time"

// CandidateSlot is a bookable start time for a service. It is derived per request and never stored.
type CandidateSlot struct {
	StartTime       time.Time
	FormattedTime   string // HH:MM in business-local time
	DurationMinutes int
	ServiceName     string
	ServicePrice    float64
}

// EndTime returns the instant the service would finish
func (s *CandidateSlot) EndTime() time.Time {
	return s.StartTime.Add(time.Duration(s.DurationMinutes) * time.Minute)
}
