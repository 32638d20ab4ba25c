package slotengine

import (
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

func at(loc *time.Location, day, hour, minute int) time.Time {
	return time.Date(2025, time.March, day, hour, minute, 0, 0, loc)
}

func openDay(open, close string) domain.DaySchedule {
	return domain.DaySchedule{IsOpen: true, Open: open, Close: close}
}

func settingsWithSlot(minutes int) *domain.ScheduleSettings {
	s := domain.DefaultScheduleSettings(1)
	s.SlotDurationMinutes = minutes
	return s
}

func TestBuildWindow_TodayRoundsUpToNextSlot(t *testing.T) {
	date := at(time.UTC, 10, 0, 0)
	now := at(time.UTC, 10, 14, 37)

	w := BuildWindow(date, openDay("09:00", "18:00"), now, settingsWithSlot(30))

	require.False(t, w.Closed)
	assert.Equal(t, at(time.UTC, 10, 15, 0), w.Start)
	assert.Equal(t, at(time.UTC, 10, 18, 0), w.End)
}

func TestBuildWindow_TodayBeforeOpeningKeepsOpenTime(t *testing.T) {
	date := at(time.UTC, 10, 0, 0)
	now := at(time.UTC, 10, 7, 12)

	w := BuildWindow(date, openDay("09:00", "18:00"), now, settingsWithSlot(30))

	require.False(t, w.Closed)
	assert.Equal(t, at(time.UTC, 10, 9, 0), w.Start)
}

func TestBuildWindow_ExactBoundaryIsNotRounded(t *testing.T) {
	date := at(time.UTC, 10, 0, 0)

	w := BuildWindow(date, openDay("09:00", "18:00"), at(time.UTC, 10, 15, 0), settingsWithSlot(30))
	require.False(t, w.Closed)
	assert.Equal(t, at(time.UTC, 10, 15, 0), w.Start)

	withSeconds := at(time.UTC, 10, 15, 0).Add(30 * time.Second)
	w = BuildWindow(date, openDay("09:00", "18:00"), withSeconds, settingsWithSlot(30))
	require.False(t, w.Closed)
	assert.Equal(t, at(time.UTC, 10, 15, 30), w.Start)
}

func TestBuildWindow_MinTimeBeforeBooking(t *testing.T) {
	date := at(time.UTC, 10, 0, 0)
	settings := settingsWithSlot(30)
	settings.MinTimeBeforeBooking = 60

	w := BuildWindow(date, openDay("09:00", "18:00"), at(time.UTC, 10, 14, 37), settings)

	require.False(t, w.Closed)
	assert.Equal(t, at(time.UTC, 10, 16, 0), w.Start)
}

func TestBuildWindow_NoticeCrossingMidnightClipsTomorrow(t *testing.T) {
	date := at(time.UTC, 11, 0, 0)
	settings := settingsWithSlot(30)
	settings.MinTimeBeforeBooking = 120

	w := BuildWindow(date, openDay("00:00", "00:00"), at(time.UTC, 10, 23, 30), settings)

	require.False(t, w.Closed)
	assert.Equal(t, at(time.UTC, 11, 1, 30), w.Start)
	assert.Equal(t, at(time.UTC, 12, 0, 0), w.End)
}

func TestBuildWindow_SameDayDisabled(t *testing.T) {
	settings := settingsWithSlot(30)
	settings.AllowSameDayBooking = false

	w := BuildWindow(at(time.UTC, 10, 0, 0), openDay("09:00", "18:00"), at(time.UTC, 10, 8, 0), settings)

	assert.True(t, w.Closed)
	assert.Equal(t, ClosedSameDayDisabled, w.Reason)

	tomorrow := BuildWindow(at(time.UTC, 11, 0, 0), openDay("09:00", "18:00"), at(time.UTC, 10, 8, 0), settings)
	assert.False(t, tomorrow.Closed)
}

func TestBuildWindow_AroundTheClock(t *testing.T) {
	w := BuildWindow(at(time.UTC, 11, 0, 0), openDay("00:00", "00:00"), at(time.UTC, 10, 10, 0), settingsWithSlot(60))

	require.False(t, w.Closed)
	assert.Equal(t, at(time.UTC, 11, 0, 0), w.Start)
	assert.Equal(t, at(time.UTC, 12, 0, 0), w.End)

	count := 0
	for range Generate(w, time.Hour) {
		count++
	}
	assert.Equal(t, 24, count)
}

func TestBuildWindow_ClosedReasons(t *testing.T) {
	now := at(time.UTC, 10, 8, 0)
	limited := settingsWithSlot(30)
	limited.MaxFutureBookingDays = 7

	tests := []struct {
		name     string
		date     time.Time
		day      domain.DaySchedule
		settings *domain.ScheduleSettings
		reason   ClosedReason
	}{
		{name: "day off", date: at(time.UTC, 11, 0, 0), day: domain.DaySchedule{IsOpen: false}, settings: settingsWithSlot(30), reason: ClosedDayOff},
		{name: "past date", date: at(time.UTC, 9, 0, 0), day: openDay("09:00", "18:00"), settings: settingsWithSlot(30), reason: ClosedPastDate},
		{name: "too far", date: at(time.UTC, 18, 0, 0), day: openDay("09:00", "18:00"), settings: limited, reason: ClosedTooFarInFuture},
		{name: "short hours format", date: at(time.UTC, 11, 0, 0), day: openDay("9:00", "18:00"), settings: settingsWithSlot(30), reason: ClosedMalformedHours},
		{name: "garbage hours", date: at(time.UTC, 11, 0, 0), day: openDay("ab:cd", "18:00"), settings: settingsWithSlot(30), reason: ClosedMalformedHours},
		{name: "open after close", date: at(time.UTC, 11, 0, 0), day: openDay("18:00", "09:00"), settings: settingsWithSlot(30), reason: ClosedMalformedHours},
		{name: "missing hours", date: at(time.UTC, 11, 0, 0), day: domain.DaySchedule{IsOpen: true}, settings: settingsWithSlot(30), reason: ClosedMalformedHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := BuildWindow(tt.date, tt.day, now, tt.settings)
			assert.True(t, w.Closed)
			assert.Equal(t, tt.reason, w.Reason)
		})
	}
}

func TestBuildWindow_LastAllowedFutureDay(t *testing.T) {
	settings := settingsWithSlot(30)
	settings.MaxFutureBookingDays = 7

	w := BuildWindow(at(time.UTC, 17, 0, 0), openDay("09:00", "18:00"), at(time.UTC, 10, 8, 0), settings)

	assert.False(t, w.Closed)
}

func TestBuildWindow_NoRemainingTime(t *testing.T) {
	w := BuildWindow(at(time.UTC, 10, 0, 0), openDay("09:00", "18:00"), at(time.UTC, 10, 17, 50), settingsWithSlot(30))

	assert.True(t, w.Closed)
	assert.Equal(t, ClosedNoRemainingTime, w.Reason)
}

func TestBuildWindow_UsesDateLocation(t *testing.T) {
	moscow, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	// 11:37 UTC = 14:37 MSK
	now := at(time.UTC, 10, 11, 37)
	w := BuildWindow(at(moscow, 10, 0, 0), openDay("09:00", "18:00"), now, settingsWithSlot(30))

	require.False(t, w.Closed)
	assert.Equal(t, at(moscow, 10, 15, 0), w.Start)
}

func TestRoundUpToSlot(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		slot int
		want time.Time
	}{
		{name: "mid slot", in: at(time.UTC, 10, 14, 37), slot: 30, want: at(time.UTC, 10, 15, 0)},
		{name: "on boundary", in: at(time.UTC, 10, 14, 0), slot: 30, want: at(time.UTC, 10, 14, 0)},
		{name: "quarter", in: at(time.UTC, 10, 14, 10), slot: 15, want: at(time.UTC, 10, 14, 15)},
		{name: "crosses midnight", in: at(time.UTC, 10, 23, 50), slot: 30, want: at(time.UTC, 11, 0, 0)},
		{name: "zero slot", in: at(time.UTC, 10, 14, 37), slot: 0, want: at(time.UTC, 10, 14, 37)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RoundUpToSlot(tt.in, tt.slot))
		})
	}
}
