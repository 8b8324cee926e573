package plan_booking

import "time"

// Request модель запроса на проверку записи
type Request struct {
	StaffID    int64
	Date       time.Time
	StartTime  string  // "H:MM"
	ServiceIDs []int64 // Услуги записи
	SlotCount  int     // 0 - длительность по услугам
}

// Response результат проверки
// Fits=false не ошибка: Reason объясняет, почему запись не помещается
type Response struct {
	StaffID         int64
	Date            time.Time
	StartTime       string
	Fits            bool
	Reason          string
	EndTime         string // пусто, если конец выходит за сутки
	DurationMinutes int
	RequiredSlots   int
	MaxSlots        int // слотов подряд от StartTime
	TotalPrice      float64
	AvailableSlots  []string

	// Представление для клиента
	StartDisplay    string // "1:30 PM"
	EndDisplay      string
	DurationDisplay string // "1 hour 30 minutes"
}
