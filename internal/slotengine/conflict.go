package slotengine

import (
	"iter"
	"time"

	"github.com/m04kA/SMC-SalonService/internal/domain"
)

// Overlaps проверяет пересечение полуоткрытых интервалов [a1, a2) и [b1, b2)
// Интервалы, которые только касаются границами, не пересекаются
func Overlaps(a1, a2, b1, b2 time.Time) bool {
	return a1.Before(b2) && b1.Before(a2)
}

// Conflicts возвращает true, если [start, end) пересекается с любой активной записью
// Отмененные и завершенные записи не блокируют время
func Conflicts(start, end time.Time, booked []domain.BookedRange) bool {
	for _, b := range booked {
		if !b.Status.Blocks() {
			continue
		}
		if Overlaps(start, end, b.Start, b.End) {
			return true
		}
	}
	return false
}

// IsAvailable проверяет, что услуга длительностью serviceDuration, начатая в start,
// закончится не позже windowEnd и не пересечется с активными записями
func IsAvailable(start time.Time, serviceDuration time.Duration, windowEnd time.Time, booked []domain.BookedRange) bool {
	serviceEnd := start.Add(serviceDuration)
	if serviceEnd.After(windowEnd) {
		return false
	}
	return !Conflicts(start, serviceEnd, booked)
}

// Filter оставляет кандидатов, прошедших IsAvailable, сохраняя порядок
func Filter(candidates iter.Seq[time.Time], serviceDuration time.Duration, windowEnd time.Time, booked []domain.BookedRange) []time.Time {
	result := make([]time.Time, 0)
	for start := range candidates {
		if IsAvailable(start, serviceDuration, windowEnd, booked) {
			result = append(result, start)
		}
	}
	return result
}
