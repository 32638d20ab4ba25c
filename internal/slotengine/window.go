package slotengine

import (
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
	"github.com/m04kA/SMC-SalonService/pkg/types"
)

// ClosedReason причина, по которой на дату нет окна для записи
type ClosedReason string

const (
	ClosedDayOff          ClosedReason = "day_off"
	ClosedMalformedHours  ClosedReason = "malformed_hours"
	ClosedPastDate        ClosedReason = "past_date"
	ClosedTooFarInFuture  ClosedReason = "too_far_in_future"
	ClosedSameDayDisabled ClosedReason = "same_day_disabled"
	ClosedNoRemainingTime ClosedReason = "no_remaining_time"
)

// Window окно доступности на день [Start, End)
// Если Closed == true, Start и End не заполнены
type Window struct {
	Start  time.Time
	End    time.Time
	Closed bool
	Reason ClosedReason
}

func closed(reason ClosedReason) Window {
	return Window{Closed: true, Reason: reason}
}

// BuildWindow вычисляет окно доступности для даты
// date - календарная дата салона (время суток игнорируется, используется локация date)
// day - рабочие часы на день недели date
// now - текущий момент
func BuildWindow(date time.Time, day domain.DaySchedule, now time.Time, settings *domain.ScheduleSettings) Window {
	loc := date.Location()
	dayStart := startOfDay(date)
	today := startOfDay(now.In(loc))

	if dayStart.Before(today) {
		return closed(ClosedPastDate)
	}

	if settings.HasFutureBookingLimit() && dayStart.After(today.AddDate(0, 0, settings.MaxFutureBookingDays)) {
		return closed(ClosedTooFarInFuture)
	}

	if !day.IsOpen {
		return closed(ClosedDayOff)
	}

	start, end, ok := dayBounds(dayStart, day)
	if !ok {
		return closed(ClosedMalformedHours)
	}

	if dayStart.Equal(today) && !settings.AllowSameDayBooking {
		return closed(ClosedSameDayDisabled)
	}

	// Самое раннее время записи: сейчас + минимальный запас, округленное до границы слота
	earliest := RoundUpToSlot(now.In(loc).Add(time.Duration(settings.MinTimeBeforeBooking)*time.Minute), settings.SlotDurationMinutes)
	if earliest.After(start) {
		start = earliest
	}

	if !start.Before(end) {
		return closed(ClosedNoRemainingTime)
	}

	return Window{Start: start, End: end}
}

// RoundUpToSlot округляет минуты часа вверх до ближайшего кратного slotMinutes
// Момент, уже лежащий на границе (с нулевыми секундами), не изменяется
func RoundUpToSlot(t time.Time, slotMinutes int) time.Time {
	if slotMinutes <= 0 {
		return t
	}

	hourStart := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	offset := t.Sub(hourStart)
	step := time.Duration(slotMinutes) * time.Minute

	if offset%step == 0 {
		return t
	}
	return hourStart.Add((offset/step + 1) * step)
}

// dayBounds возвращает границы рабочего дня или ok=false для некорректных данных
func dayBounds(dayStart time.Time, day domain.DaySchedule) (time.Time, time.Time, bool) {
	if day.IsAroundTheClock() {
		return dayStart, dayStart.AddDate(0, 0, 1), true
	}

	if day.Open == "" || day.Close == "" {
		return time.Time{}, time.Time{}, false
	}

	openTime, err := types.NewTimeStringFromString(day.Open)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	closeTime, err := types.NewTimeStringFromString(day.Close)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	if !openTime.IsBefore(closeTime) {
		return time.Time{}, time.Time{}, false
	}

	return openTime.On(dayStart), closeTime.On(dayStart), true
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// IsSameDay проверяет, что два момента относятся к одной календарной дате в локации loc
func IsSameDay(a, b time.Time, loc *time.Location) bool {
	return startOfDay(a.In(loc)).Equal(startOfDay(b.In(loc)))
}
