package slotengine

import "errors"

var (
	// ErrOutsideWindow возвращается, когда услуга не помещается в рабочее окно дня
	ErrOutsideWindow = errors.New("slotengine: appointment is outside business hours")

	// ErrOverlap возвращается, когда интервал пересекается с активной записью
	ErrOverlap = errors.New("slotengine: appointment overlaps an existing booking")
)
