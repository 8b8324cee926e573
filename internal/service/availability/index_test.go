package availability

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
)

var day = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func window(staffID int64, start, end string, available bool) domain.AvailabilityWindow {
	return domain.AvailabilityWindow{StaffID: staffID, Date: day, StartTime: start, EndTime: end, IsAvailable: available}
}

func TestIsAvailableHalfOpen(t *testing.T) {
	idx := NewIndex([]domain.AvailabilityWindow{window(1, "10:00", "10:30", true)})

	assert.True(t, idx.IsAvailable(1, day, "10:00"))
	assert.True(t, idx.IsAvailable(1, day, "10:29"))
	assert.False(t, idx.IsAvailable(1, day, "10:30"))
	assert.False(t, idx.IsAvailable(1, day, "9:59"))
}

func TestIsAvailableScopedByStaffAndDate(t *testing.T) {
	idx := NewIndex([]domain.AvailabilityWindow{window(1, "9:00", "12:00", true)})

	assert.True(t, idx.IsAvailable(1, day, "11:30"))
	assert.False(t, idx.IsAvailable(2, day, "11:30"))
	assert.False(t, idx.IsAvailable(1, day.AddDate(0, 0, 1), "11:30"))
	// время суток в дате не влияет на ключ
	assert.True(t, idx.IsAvailable(1, day.Add(15*time.Hour), "11:30"))
}

func TestBlockedWindowDoesNotMakeAvailable(t *testing.T) {
	idx := NewIndex([]domain.AvailabilityWindow{
		window(1, "9:00", "9:30", true),
		window(1, "9:30", "10:00", false),
	})

	assert.True(t, idx.IsAvailable(1, day, "9:00"))
	assert.False(t, idx.IsAvailable(1, day, "9:30"))
	assert.Equal(t, []string{"9:00"}, idx.ListAvailableSlots(1, day))
}

func TestMalformedInputIsUnavailable(t *testing.T) {
	idx := NewIndex([]domain.AvailabilityWindow{
		window(1, "nine", "10:00", true),
		window(1, "11:00", "10:00", true),
		window(1, "12:00", "12:30", true),
	})

	assert.False(t, idx.IsAvailable(1, day, "9:30"))
	assert.False(t, idx.IsAvailable(1, day, "10:30"))
	assert.False(t, idx.IsAvailable(1, day, "garbage"))
	assert.True(t, idx.IsAvailable(1, day, "12:00"))
	assert.Len(t, idx.Windows(1, day), 3)
}

func TestListAvailableSlotsAndCount(t *testing.T) {
	idx := NewIndex([]domain.AvailabilityWindow{
		window(1, "19:00", "20:30", true),
		window(1, "9:00", "10:00", true),
	})

	slots := idx.ListAvailableSlots(1, day)
	assert.Equal(t, []string{"9:00", "9:30", "19:00", "19:30", "20:00"}, slots)
	assert.Equal(t, 5, idx.AvailableSlotCount(1, day))
	assert.Equal(t, 0, idx.AvailableSlotCount(2, day))
	assert.Empty(t, idx.ListAvailableSlots(2, day))
}

func TestWindowsSortedAndCopied(t *testing.T) {
	idx := NewIndex([]domain.AvailabilityWindow{
		window(1, "13:00", "13:30", true),
		window(1, "9:00", "9:30", true),
		window(3, "9:00", "9:30", true),
	})

	ws := idx.Windows(1, day)
	assert.Equal(t, "9:00", ws[0].StartTime)
	assert.Equal(t, "13:00", ws[1].StartTime)

	ws[0].IsAvailable = false
	assert.True(t, idx.IsAvailable(1, day, "9:00"))

	assert.True(t, idx.HasWindows(1, day))
	assert.False(t, idx.HasWindows(2, day))
	assert.Equal(t, []int64{1, 3}, idx.StaffIDs())
}
