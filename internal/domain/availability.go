package domain

import "time"

// AvailabilityWindow интервал доступности (или блокировки) мастера на конкретную дату
// StartTime и EndTime в формате "H:MM"
type AvailabilityWindow struct {
	ID          int64
	StaffID     int64
	Date        time.Time
	StartTime   string
	EndTime     string
	IsAvailable bool
}

// Spec возвращает окно без привязки к мастеру и дате
func (w AvailabilityWindow) Spec() WindowSpec {
	return WindowSpec{
		StartTime:   w.StartTime,
		EndTime:     w.EndTime,
		IsAvailable: w.IsAvailable,
	}
}

// WindowSpec окно, которое записывается при полной замене дня
type WindowSpec struct {
	StartTime   string
	EndTime     string
	IsAvailable bool
}

// AvailabilityFilter фильтр выборки окон
type AvailabilityFilter struct {
	From     time.Time // Обязательный параметр
	To       time.Time // Обязательный параметр, включительно
	StaffIDs []int64   // Пустой список - все мастера
}

// SameDate сравнивает даты без учёта времени
func SameDate(a, b time.Time) bool {
	y1, m1, d1 := a.Date()
	y2, m2, d2 := b.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}

// DateOnly отбрасывает время, оставляя полночь UTC
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
