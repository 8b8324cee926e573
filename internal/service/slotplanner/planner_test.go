package slotplanner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/internal/service/availability"
	"github.com/m04kA/SMC-SalonBooking/pkg/timegrid"
)

var day = time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

func TestCanFitDuration(t *testing.T) {
	slots := []string{"9:00", "9:30", "10:30"}

	assert.True(t, CanFitDuration("9:00", slots, 1))
	assert.True(t, CanFitDuration("9:00", slots, 2))
	assert.False(t, CanFitDuration("9:00", slots, 3))
	assert.False(t, CanFitDuration("", slots, 1))
	assert.False(t, CanFitDuration("9:00", slots, 0))
	assert.False(t, CanFitDuration("23:30", []string{"23:30"}, 2))
}

func TestMaxConsecutiveDuration(t *testing.T) {
	slots := []string{"9:00", "9:30", "10:00", "11:00", "11:30"}

	assert.Equal(t, 3, MaxConsecutiveDuration("9:00", slots))
	assert.Equal(t, 2, MaxConsecutiveDuration("9:30", slots))
	assert.Equal(t, 2, MaxConsecutiveDuration("11:00", slots))
	assert.Equal(t, 1, MaxConsecutiveDuration("11:30", slots))
	assert.Equal(t, 0, MaxConsecutiveDuration("10:30", slots))
	assert.Equal(t, 3, MaxConsecutiveDuration("09:00", slots))
}

func TestResolveEffectiveDuration(t *testing.T) {
	services := []domain.SelectedService{{DurationMinutes: 30}, {DurationMinutes: 45}}

	assert.Equal(t, 75, ResolveEffectiveDuration(services, 1))
	assert.Equal(t, 75, ResolveEffectiveDuration(services, 0))
	assert.Equal(t, 120, ResolveEffectiveDuration(services, 4))
	assert.Equal(t, 30, ResolveEffectiveDuration(nil, 0))

	end, err := ComputeEndTime("14:00", ResolveEffectiveDuration(services, 1))
	require.NoError(t, err)
	assert.Equal(t, "15:15", end)
}

func TestRequiredSlots(t *testing.T) {
	assert.Equal(t, 0, RequiredSlots(0))
	assert.Equal(t, 1, RequiredSlots(20))
	assert.Equal(t, 1, RequiredSlots(30))
	assert.Equal(t, 3, RequiredSlots(75))
	assert.Equal(t, 2, RequiredSlots(60))
}

func TestCheckContiguousRun(t *testing.T) {
	idx := availability.NewIndex([]domain.AvailabilityWindow{
		{StaffID: 1, Date: day, StartTime: "9:00", EndTime: "9:30", IsAvailable: true},
		{StaffID: 1, Date: day, StartTime: "9:30", EndTime: "10:00", IsAvailable: true},
	})

	plan, err := Check(idx, 1, day, "9:00", 60)
	require.NoError(t, err)
	assert.Equal(t, "9:00", plan.StartTime)
	assert.Equal(t, "10:00", plan.EndTime)
	assert.Equal(t, 2, plan.RequiredSlots)
	assert.Equal(t, 2, plan.MaxSlots)
}

func TestCheckRejectsGap(t *testing.T) {
	idx := availability.NewIndex([]domain.AvailabilityWindow{
		{StaffID: 1, Date: day, StartTime: "9:00", EndTime: "9:30", IsAvailable: true},
		{StaffID: 1, Date: day, StartTime: "9:30", EndTime: "10:00", IsAvailable: false},
	})

	_, err := Check(idx, 1, day, "9:00", 60)
	assert.ErrorIs(t, err, ErrNotContiguous)
}

func TestCheckRejectsRunPastLastSlot(t *testing.T) {
	idx := availability.NewIndex([]domain.AvailabilityWindow{
		{StaffID: 1, Date: day, StartTime: "19:30", EndTime: "20:30", IsAvailable: true},
	})

	_, err := Check(idx, 1, day, "19:30", 90)
	assert.ErrorIs(t, err, ErrNotContiguous)
}

func TestCheckErrors(t *testing.T) {
	idx := availability.NewIndex(nil)

	_, err := Check(idx, 1, day, "", 30)
	assert.ErrorIs(t, err, ErrEmptyStart)

	_, err = Check(idx, 1, day, "9:00", 0)
	assert.ErrorIs(t, err, ErrInvalidDuration)

	_, err = Check(idx, 1, day, "9:00", 30)
	assert.ErrorIs(t, err, ErrSlotUnavailable)

	_, err = Check(idx, 1, day, "9h", 30)
	assert.ErrorIs(t, err, timegrid.ErrFormat)
}
