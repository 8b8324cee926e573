package slotplanner

import "errors"

var (
	// ErrEmptyStart не выбрано время начала
	ErrEmptyStart = errors.New("slotplanner: start time is empty")

	// ErrInvalidDuration длительность не положительная
	ErrInvalidDuration = errors.New("slotplanner: duration must be positive")

	// ErrSlotUnavailable мастер недоступен во время начала
	ErrSlotUnavailable = errors.New("slotplanner: start slot is not available")

	// ErrNotContiguous в нужной серии слотов есть разрыв или она выходит за последний открытый слот
	ErrNotContiguous = errors.New("slotplanner: required slots are not contiguous")
)
