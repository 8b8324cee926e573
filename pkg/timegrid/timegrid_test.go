package timegrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToMinutes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{name: "morning", input: "9:00", want: 540},
		{name: "zero padded hour", input: "09:30", want: 570},
		{name: "midnight", input: "0:00", want: 0},
		{name: "last minute", input: "23:59", want: 1439},
		{name: "no colon", input: "900", wantErr: true},
		{name: "three parts", input: "9:00:00", wantErr: true},
		{name: "letters", input: "a:00", wantErr: true},
		{name: "empty minute", input: "9:", wantErr: true},
		{name: "negative", input: "-1:00", wantErr: true},
		{name: "hour out of range", input: "24:00", wantErr: true},
		{name: "minute out of range", input: "9:60", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToMinutes(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromMinutes(t *testing.T) {
	got, err := FromMinutes(540)
	require.NoError(t, err)
	assert.Equal(t, "9:00", got)

	got, err = FromMinutes(905)
	require.NoError(t, err)
	assert.Equal(t, "15:05", got)

	_, err = FromMinutes(MinutesPerDay)
	assert.ErrorIs(t, err, ErrDayRollover)

	_, err = FromMinutes(-30)
	assert.ErrorIs(t, err, ErrDayRollover)
}

func TestRoundTrip(t *testing.T) {
	for h := 0; h < 24; h++ {
		for m := 0; m < 60; m++ {
			s, err := FromMinutes(h*60 + m)
			require.NoError(t, err)

			minutes, err := ToMinutes(s)
			require.NoError(t, err)

			back, err := FromMinutes(minutes)
			require.NoError(t, err)
			assert.Equal(t, s, back)
		}
	}
}

func TestGenerateDaySlots(t *testing.T) {
	slots := GenerateDaySlots()

	require.Len(t, slots, 23)
	assert.Equal(t, "9:00", slots[0])
	assert.Equal(t, "9:30", slots[1])
	assert.Equal(t, "20:00", slots[len(slots)-1])
	assert.NotContains(t, slots, "20:30")
	assert.Equal(t, slots, GenerateDaySlots())
}

func TestIsGridTick(t *testing.T) {
	assert.True(t, IsGridTick("9:00"))
	assert.True(t, IsGridTick("09:30"))
	assert.True(t, IsGridTick("20:00"))
	assert.False(t, IsGridTick("20:30"))
	assert.False(t, IsGridTick("8:30"))
	assert.False(t, IsGridTick("9:15"))
	assert.False(t, IsGridTick("bad"))
}

func TestFormatForDisplay(t *testing.T) {
	tests := map[string]string{
		"9:00":  "9:00 AM",
		"12:00": "12:00 PM",
		"12:30": "12:30 PM",
		"0:15":  "12:15 AM",
		"13:30": "1:30 PM",
		"20:00": "8:00 PM",
	}

	for input, want := range tests {
		got, err := FormatForDisplay(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := FormatForDisplay("noon")
	assert.ErrorIs(t, err, ErrFormat)
}

func TestAddSlots(t *testing.T) {
	got, err := AddSlots("9:00", 3)
	require.NoError(t, err)
	assert.Equal(t, "10:30", got)

	got, err = AddMinutes("14:00", 75)
	require.NoError(t, err)
	assert.Equal(t, "15:15", got)

	_, err = AddSlots("23:30", 1)
	assert.ErrorIs(t, err, ErrDayRollover)
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "30 minutes", FormatDuration(1))
	assert.Equal(t, "1 hour", FormatDuration(2))
	assert.Equal(t, "1 hour 30 minutes", FormatDuration(3))
	assert.Equal(t, "2 hours", FormatDuration(4))
	assert.Equal(t, "2 hours 30 minutes", FormatDuration(5))
	assert.Equal(t, "0 minutes", FormatDuration(0))
}

func TestNormalize(t *testing.T) {
	got, err := Normalize("09:05")
	require.NoError(t, err)
	assert.Equal(t, "9:05", got)

	_, err = Normalize("9-05")
	assert.ErrorIs(t, err, ErrFormat)
}
