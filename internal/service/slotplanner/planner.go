// Package slotplanner проверяет, помещается ли запись в непрерывную серию доступных слотов.
// Планировщик ничего не исправляет сам: он отвечает "помещается / не помещается",
// а уменьшать длительность должен вызывающий код (через MaxConsecutiveDuration).
package slotplanner

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/timegrid"
)

// AvailabilityView источник доступности (availability.Index)
type AvailabilityView interface {
	IsAvailable(staffID int64, date time.Time, t string) bool
	ListAvailableSlots(staffID int64, date time.Time) []string
}

// Plan результат успешной проверки
type Plan struct {
	StaffID         int64
	Date            time.Time
	StartTime       string
	EndTime         string
	DurationMinutes int
	RequiredSlots   int
	MaxSlots        int
}

// CanFitDuration проверяет, что после startTime в availableSlots есть ещё durationSlots-1
// слотов подряд. Сам стартовый слот считается уже проверенным вызывающим кодом.
func CanFitDuration(startTime string, availableSlots []string, durationSlots int) bool {
	if strings.TrimSpace(startTime) == "" || durationSlots <= 0 {
		return false
	}

	present := toSet(availableSlots)
	for i := 1; i < durationSlots; i++ {
		next, err := timegrid.AddSlots(startTime, i)
		if err != nil {
			return false
		}
		if _, ok := present[next]; !ok {
			return false
		}
	}
	return true
}

// MaxConsecutiveDuration количество слотов подряд, начиная со startTime (включительно)
// Возвращает 0, если startTime нет среди availableSlots
func MaxConsecutiveDuration(startTime string, availableSlots []string) int {
	start, err := timegrid.Normalize(startTime)
	if err != nil {
		return 0
	}

	pos := -1
	for i, slot := range availableSlots {
		if slot == start {
			pos = i
			break
		}
	}
	if pos < 0 {
		return 0
	}

	count := 1
	prev, _ := timegrid.ToMinutes(availableSlots[pos])
	for _, slot := range availableSlots[pos+1:] {
		cur, err := timegrid.ToMinutes(slot)
		if err != nil || cur-prev != timegrid.SlotMinutes {
			break
		}
		count++
		prev = cur
	}
	return count
}

// ComputeEndTime время окончания записи
func ComputeEndTime(startTime string, durationMinutes int) (string, error) {
	return timegrid.AddMinutes(startTime, durationMinutes)
}

// ResolveEffectiveDuration max(сумма длительностей услуг, выбранные слоты * 30)
// chosenSlotCount <= 0 означает "не выбрано" и считается одним слотом
func ResolveEffectiveDuration(services []domain.SelectedService, chosenSlotCount int) int {
	if chosenSlotCount <= 0 {
		chosenSlotCount = 1
	}

	serviceMinutes := 0
	for _, s := range services {
		serviceMinutes += s.DurationMinutes
	}

	slotMinutes := chosenSlotCount * timegrid.SlotMinutes
	if serviceMinutes > slotMinutes {
		return serviceMinutes
	}
	return slotMinutes
}

// RequiredSlots количество слотов, которые занимает длительность (с округлением вверх)
func RequiredSlots(durationMinutes int) int {
	if durationMinutes <= 0 {
		return 0
	}
	return (durationMinutes + timegrid.SlotMinutes - 1) / timegrid.SlotMinutes
}

// Check проверяет, что запись мастера staffID на date с startTime длительностью durationMinutes
// целиком помещается в доступные слоты
func Check(view AvailabilityView, staffID int64, date time.Time, startTime string, durationMinutes int) (*Plan, error) {
	if strings.TrimSpace(startTime) == "" {
		return nil, ErrEmptyStart
	}
	if durationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}

	start, err := timegrid.Normalize(startTime)
	if err != nil {
		return nil, err
	}

	if !view.IsAvailable(staffID, date, start) {
		return nil, fmt.Errorf("%w: staff=%d date=%s time=%s",
			ErrSlotUnavailable, staffID, date.Format(domain.DateFormat), start)
	}

	endTime, err := ComputeEndTime(start, durationMinutes)
	if err != nil {
		return nil, err
	}

	slots := view.ListAvailableSlots(staffID, date)
	required := RequiredSlots(durationMinutes)
	if !CanFitDuration(start, slots, required) {
		return nil, fmt.Errorf("%w: staff=%d date=%s time=%s slots=%d",
			ErrNotContiguous, staffID, date.Format(domain.DateFormat), start, required)
	}

	return &Plan{
		StaffID:         staffID,
		Date:            date,
		StartTime:       start,
		EndTime:         endTime,
		DurationMinutes: durationMinutes,
		RequiredSlots:   required,
		MaxSlots:        MaxConsecutiveDuration(start, slots),
	}, nil
}

func toSet(slots []string) map[string]struct{} {
	set := make(map[string]struct{}, len(slots))
	for _, s := range slots {
		if normalized, err := timegrid.Normalize(s); err == nil {
			set[normalized] = struct{}{}
		}
	}
	return set
}
