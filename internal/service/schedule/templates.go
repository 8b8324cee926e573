package schedule

import (
	"sort"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/timegrid"
)

// Template именованный диапазон времени суток [Start, End)
type Template struct {
	ID    string
	Start string
	End   string
}

// "full" покрывает весь рабочий день, включая последний слот 20:00
var templates = map[string]Template{
	"full":      {ID: "full", Start: "9:00", End: "20:30"},
	"morning":   {ID: "morning", Start: "9:00", End: "13:00"},
	"afternoon": {ID: "afternoon", Start: "13:00", End: "17:00"},
	"evening":   {ID: "evening", Start: "17:00", End: "20:00"},
	"weekday":   {ID: "weekday", Start: "9:00", End: "17:00"},
	"weekend":   {ID: "weekend", Start: "10:00", End: "18:00"},
}

// Templates все шаблоны, отсортированные по началу
func Templates() []Template {
	out := make([]Template, 0, len(templates))
	for _, t := range templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		si, _ := timegrid.ToMinutes(out[i].Start)
		sj, _ := timegrid.ToMinutes(out[j].Start)
		if si != sj {
			return si < sj
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// LookupTemplate ищет шаблон по идентификатору
func LookupTemplate(id string) (Template, bool) {
	t, ok := templates[id]
	return t, ok
}

// Windows доступные окна для слотов сетки внутри [Start, End)
// Слоты вне диапазона не создаются
func (t Template) Windows() []domain.WindowSpec {
	start, _ := timegrid.ToMinutes(t.Start)
	end, _ := timegrid.ToMinutes(t.End)

	specs := make([]domain.WindowSpec, 0)
	for _, slot := range timegrid.GenerateDaySlots() {
		m, _ := timegrid.ToMinutes(slot)
		if m < start || m >= end {
			continue
		}
		slotEnd, _ := timegrid.FromMinutes(m + timegrid.SlotMinutes)
		specs = append(specs, domain.WindowSpec{StartTime: slot, EndTime: slotEnd, IsAvailable: true})
	}
	return specs
}

// dayWindows одно окно на каждый слот сетки с одинаковым флагом
func dayWindows(available bool) []domain.WindowSpec {
	slots := timegrid.GenerateDaySlots()
	specs := make([]domain.WindowSpec, 0, len(slots))
	for _, slot := range slots {
		end, _ := timegrid.AddSlots(slot, 1)
		specs = append(specs, domain.WindowSpec{StartTime: slot, EndTime: end, IsAvailable: available})
	}
	return specs
}
