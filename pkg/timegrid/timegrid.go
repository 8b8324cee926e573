// Package timegrid содержит арифметику времени суток для сетки 30-минутных слотов.
// Время представляется строкой "H:MM": час без ведущего нуля, минуты всегда двумя цифрами.
package timegrid

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// SlotMinutes длительность одного слота сетки
	SlotMinutes = 30

	// DayStartMinutes первый слот дня (9:00)
	DayStartMinutes = 9 * 60

	// LastSlotStartMinutes последнее допустимое начало слота (20:00)
	LastSlotStartMinutes = 20 * 60

	// MinutesPerDay количество минут в сутках
	MinutesPerDay = 24 * 60
)

var (
	// ErrFormat возвращается, когда строку нельзя разобрать как "H:MM"
	ErrFormat = errors.New("timegrid: malformed time string")

	// ErrDayRollover возвращается, когда результат выходит за границы суток
	ErrDayRollover = errors.New("timegrid: time crosses day boundary")
)

// ToMinutes переводит "H:MM" в количество минут от начала суток
func ToMinutes(t string) (int, error) {
	parts := strings.Split(strings.TrimSpace(t), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("%w: %q", ErrFormat, t)
	}

	hour, err := parseDigits(parts[0])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrFormat, t)
	}
	minute, err := parseDigits(parts[1])
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrFormat, t)
	}

	if hour > 23 || minute > 59 {
		return 0, fmt.Errorf("%w: %q out of range", ErrFormat, t)
	}

	return hour*60 + minute, nil
}

// FromMinutes обратное преобразование: 540 -> "9:00"
// Переход через полночь не поддерживается
func FromMinutes(total int) (string, error) {
	if total < 0 || total >= MinutesPerDay {
		return "", fmt.Errorf("%w: %d minutes", ErrDayRollover, total)
	}
	return fmt.Sprintf("%d:%02d", total/60, total%60), nil
}

// Normalize приводит время к каноническому виду ("09:00" -> "9:00")
func Normalize(t string) (string, error) {
	minutes, err := ToMinutes(t)
	if err != nil {
		return "", err
	}
	return FromMinutes(minutes)
}

// GenerateDaySlots возвращает все начала слотов рабочего дня: 9:00, 9:30, ..., 20:00
func GenerateDaySlots() []string {
	slots := make([]string, 0, (LastSlotStartMinutes-DayStartMinutes)/SlotMinutes+1)
	for m := DayStartMinutes; m <= LastSlotStartMinutes; m += SlotMinutes {
		slots = append(slots, fmt.Sprintf("%d:%02d", m/60, m%60))
	}
	return slots
}

// IsGridTick проверяет, что время совпадает с одним из слотов дня
func IsGridTick(t string) bool {
	minutes, err := ToMinutes(t)
	if err != nil {
		return false
	}
	if minutes < DayStartMinutes || minutes > LastSlotStartMinutes {
		return false
	}
	return (minutes-DayStartMinutes)%SlotMinutes == 0
}

// FormatForDisplay форматирует время в 12-часовом виде: "13:30" -> "1:30 PM"
func FormatForDisplay(t string) (string, error) {
	minutes, err := ToMinutes(t)
	if err != nil {
		return "", err
	}

	hour, minute := minutes/60, minutes%60
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}

	displayHour := hour % 12
	if displayHour == 0 {
		displayHour = 12
	}

	return fmt.Sprintf("%d:%02d %s", displayHour, minute, period), nil
}

// AddMinutes прибавляет к времени минуты
func AddMinutes(start string, minutes int) (string, error) {
	startMinutes, err := ToMinutes(start)
	if err != nil {
		return "", err
	}
	return FromMinutes(startMinutes + minutes)
}

// AddSlots прибавляет к времени slotCount слотов
func AddSlots(start string, slotCount int) (string, error) {
	return AddMinutes(start, slotCount*SlotMinutes)
}

// FormatDuration выводит длительность slotCount слотов: "30 minutes", "1 hour 30 minutes", "2 hours"
func FormatDuration(slotCount int) string {
	total := slotCount * SlotMinutes
	if total < 60 {
		return pluralize(total, "minute")
	}

	hours, minutes := total/60, total%60
	if minutes == 0 {
		return pluralize(hours, "hour")
	}
	return pluralize(hours, "hour") + " " + pluralize(minutes, "minute")
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func parseDigits(s string) (int, error) {
	if s == "" {
		return 0, ErrFormat
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrFormat
		}
	}
	return strconv.Atoi(s)
}
