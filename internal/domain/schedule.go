package domain

import "time"

// AroundTheClock is the open/close value pair meaning the business is open the whole day
const AroundTheClock = "00:00"

// DaySchedule represents working hours of a business for one weekday.
// Open and Close are ignored when IsOpen is false.
type DaySchedule struct {
	IsOpen bool
	Open   string // HH:MM
	Close  string // HH:MM
}

// IsAroundTheClock returns true for the 00:00-00:00 special case
func (d DaySchedule) IsAroundTheClock() bool {
	return d.Open == AroundTheClock && d.Close == AroundTheClock
}

// WeeklySchedule holds working hours per weekday. A nil entry means the weekday is missing.
type WeeklySchedule struct {
	Monday    *DaySchedule
	Tuesday   *DaySchedule
	Wednesday *DaySchedule
	Thursday  *DaySchedule
	Friday    *DaySchedule
	Saturday  *DaySchedule
	Sunday    *DaySchedule
}

// ForWeekday returns the schedule of the weekday and whether it is present
func (w WeeklySchedule) ForWeekday(day time.Weekday) (DaySchedule, bool) {
	var entry *DaySchedule

	switch day {
	case time.Monday:
		entry = w.Monday
	case time.Tuesday:
		entry = w.Tuesday
	case time.Wednesday:
		entry = w.Wednesday
	case time.Thursday:
		entry = w.Thursday
	case time.Friday:
		entry = w.Friday
	case time.Saturday:
		entry = w.Saturday
	case time.Sunday:
		entry = w.Sunday
	}

	if entry == nil {
		return DaySchedule{IsOpen: false}, false
	}
	return *entry, true
}

// Business represents a salon as seen by the booking service
type Business struct {
	ID           int64
	Name         string
	Timezone     string // IANA name, empty = service default
	WorkingHours WeeklySchedule
	ManagerIDs   []int64
}

// IsManager returns true if the user manages the business
func (b *Business) IsManager(userID int64) bool {
	for _, id := range b.ManagerIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Location resolves the business timezone, falling back to the given location
func (b *Business) Location(fallback *time.Location) *time.Location {
	if b.Timezone == "" {
		return fallback
	}
	loc, err := time.LoadLocation(b.Timezone)
	if err != nil {
		return fallback
	}
	return loc
}
