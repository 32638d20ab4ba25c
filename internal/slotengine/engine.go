package slotengine

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Query входные данные для расчета свободных слотов на одну дату
type Query struct {
	Date     time.Time // календарная дата в локации салона
	Day      domain.DaySchedule
	Now      time.Time
	Settings *domain.ScheduleSettings
	Service  *domain.Service
	Booked   []domain.BookedRange
}

// Result результат расчета: окно дня и свободные слоты в хронологическом порядке
type Result struct {
	Window Window
	Slots  []domain.CandidateSlot
}

// AvailableSlots строит окно, генерирует кандидатов и отбрасывает занятые
func AvailableSlots(q Query) Result {
	window := BuildWindow(q.Date, q.Day, q.Now, q.Settings)
	return Result{Window: window, Slots: SlotsInWindow(window, q.Settings, q.Service, q.Booked)}
}

// SlotsInWindow возвращает свободные слоты уже построенного окна
// Для закрытого окна возвращает пустой (не nil) слайс
func SlotsInWindow(window Window, settings *domain.ScheduleSettings, service *domain.Service, booked []domain.BookedRange) []domain.CandidateSlot {
	if window.Closed {
		return []domain.CandidateSlot{}
	}

	serviceDuration := time.Duration(service.DurationMinutes) * time.Minute
	starts := Filter(Generate(window, settings.SlotDuration()), serviceDuration, window.End, booked)

	slots := make([]domain.CandidateSlot, 0, len(starts))
	for _, start := range starts {
		slots = append(slots, domain.CandidateSlot{
			StartTime:       start,
			FormattedTime:   start.Format(domain.TimeFormat),
			DurationMinutes: service.DurationMinutes,
			ServiceName:     service.Name,
			ServicePrice:    service.Price,
		})
	}

	return slots
}

// CheckWindow проверяет, что услуга [start, start+duration) целиком лежит в окне дня
// Выравнивание по сетке слотов не проверяется
func CheckWindow(window Window, start time.Time, duration time.Duration) error {
	if window.Closed {
		return fmt.Errorf("%w: %s", ErrOutsideWindow, window.Reason)
	}
	if start.Before(window.Start) || start.Add(duration).After(window.End) {
		return fmt.Errorf("%w: %s-%s not within %s-%s", ErrOutsideWindow,
			start.Format(domain.TimeFormat), start.Add(duration).Format(domain.TimeFormat),
			window.Start.Format(domain.TimeFormat), window.End.Format(domain.TimeFormat))
	}
	return nil
}

// CheckConflict проверяет, что интервал не пересекается с активными записями
func CheckConflict(start time.Time, duration time.Duration, booked []domain.BookedRange) error {
	if Conflicts(start, start.Add(duration), booked) {
		return ErrOverlap
	}
	return nil
}
