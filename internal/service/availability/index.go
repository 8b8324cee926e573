// Package availability индекс окон доступности мастеров.
// Индекс строится из строк хранилища и только читается: после любого изменения
// окон его нужно собрать заново.
package availability

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/timegrid"
)

type dayKey struct {
	staffID int64
	date    string
}

type span struct {
	start     int
	end       int
	available bool
}

// Index доступность мастеров по дням
type Index struct {
	windows map[dayKey][]domain.AvailabilityWindow
	spans   map[dayKey][]span
}

// NewIndex строит индекс по окнам
// Окна с некорректным временем не участвуют в проверках доступности
func NewIndex(windows []domain.AvailabilityWindow) *Index {
	idx := &Index{
		windows: make(map[dayKey][]domain.AvailabilityWindow),
		spans:   make(map[dayKey][]span),
	}

	for _, w := range windows {
		key := keyFor(w.StaffID, w.Date)
		idx.windows[key] = append(idx.windows[key], w)

		start, err := timegrid.ToMinutes(w.StartTime)
		if err != nil {
			continue
		}
		end, err := timegrid.ToMinutes(w.EndTime)
		if err != nil || end <= start {
			continue
		}
		idx.spans[key] = append(idx.spans[key], span{start: start, end: end, available: w.IsAvailable})
	}

	for key := range idx.windows {
		ws := idx.windows[key]
		sort.SliceStable(ws, func(i, j int) bool {
			return startMinutes(ws[i]) < startMinutes(ws[j])
		})
	}

	return idx
}

// IsAvailable проверяет, что время попадает в доступное окно мастера
// Окно - полуинтервал [start, end)
func (i *Index) IsAvailable(staffID int64, date time.Time, t string) bool {
	minutes, err := timegrid.ToMinutes(t)
	if err != nil {
		return false
	}

	for _, s := range i.spans[keyFor(staffID, date)] {
		if s.available && s.start <= minutes && minutes < s.end {
			return true
		}
	}
	return false
}

// ListAvailableSlots слоты дня, в которые мастер доступен
func (i *Index) ListAvailableSlots(staffID int64, date time.Time) []string {
	slots := make([]string, 0)
	for _, slot := range timegrid.GenerateDaySlots() {
		if i.IsAvailable(staffID, date, slot) {
			slots = append(slots, slot)
		}
	}
	return slots
}

// AvailableSlotCount количество доступных слотов дня
func (i *Index) AvailableSlotCount(staffID int64, date time.Time) int {
	return len(i.ListAvailableSlots(staffID, date))
}

// Windows окна мастера на дату, отсортированные по началу
func (i *Index) Windows(staffID int64, date time.Time) []domain.AvailabilityWindow {
	ws := i.windows[keyFor(staffID, date)]
	out := make([]domain.AvailabilityWindow, len(ws))
	copy(out, ws)
	return out
}

// HasWindows есть ли у мастера хотя бы одно окно на дату
func (i *Index) HasWindows(staffID int64, date time.Time) bool {
	return len(i.windows[keyFor(staffID, date)]) > 0
}

// StaffIDs мастера, для которых в индексе есть окна
func (i *Index) StaffIDs() []int64 {
	seen := make(map[int64]struct{})
	ids := make([]int64, 0)
	for key := range i.windows {
		if _, ok := seen[key.staffID]; ok {
			continue
		}
		seen[key.staffID] = struct{}{}
		ids = append(ids, key.staffID)
	}
	sort.Slice(ids, func(a, b int) bool { return ids[a] < ids[b] })
	return ids
}

func keyFor(staffID int64, date time.Time) dayKey {
	return dayKey{staffID: staffID, date: date.Format(domain.DateFormat)}
}

func startMinutes(w domain.AvailabilityWindow) int {
	m, err := timegrid.ToMinutes(w.StartTime)
	if err != nil {
		return timegrid.MinutesPerDay
	}
	return m
}
