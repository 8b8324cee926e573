package get_availability

import "time"

// Request модель запроса доступности за период
type Request struct {
	From     time.Time // Начало периода (без времени)
	To       time.Time // Конец периода включительно
	StaffIDs []int64   // Пустой список - все мастера с окнами в периоде
}

// Response модель ответа
type Response struct {
	From time.Time
	To   time.Time
	Days []StaffDay // Отсортированы по мастеру, затем по дате
}

// StaffDay доступность мастера на одну дату
type StaffDay struct {
	StaffID        int64
	Date           time.Time
	AvailableSlots []string // "H:MM" в порядке сетки
	SlotCount      int
	Windows        []Window
}

// Window окно дня в ответе
type Window struct {
	StartTime   string
	EndTime     string
	IsAvailable bool
}
