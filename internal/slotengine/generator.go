package slotengine

import (
	"iter"
	"time"
)

// Generate возвращает последовательность начал слотов Start, Start+step, ... пока < End
// Последовательность ленивая и может перебираться многократно
func Generate(w Window, step time.Duration) iter.Seq[time.Time] {
	return func(yield func(time.Time) bool) {
		if w.Closed || step <= 0 {
			return
		}
		for t := w.Start; t.Before(w.End); t = t.Add(step) {
			if !yield(t) {
				return
			}
		}
	}
}
