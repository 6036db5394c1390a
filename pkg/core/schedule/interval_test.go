package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftDurationHours(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  float64
	}{
		{"ten hour day shift", "08:00", "18:00", 10},
		{"twelve hour shift", "06:00", "18:00", 12},
		{"four hour shift", "14:00", "18:00", 4},
		{"crosses midnight", "20:00", "06:00", 10},
		{"graveyard crosses midnight", "22:00", "10:00", 12},
		{"half hour granularity", "09:30", "14:00", 4.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ShiftDurationHours(tt.start, tt.end)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShiftDurationHours_Invalid(t *testing.T) {
	_, err := ShiftDurationHours("25:00", "06:00")
	assert.Error(t, err)

	_, err = ShiftDurationHours("08:00", "8pm")
	assert.Error(t, err)

	_, err = ShiftDurationHours("", "06:00")
	assert.Error(t, err)
}

func TestOverlaps(t *testing.T) {
	// Closed-open date intervals
	assert.True(t, Overlaps("2024-03-01", "2024-03-10", "2024-03-05", "2024-03-15"))
	assert.True(t, Overlaps("2024-03-05", "2024-03-15", "2024-03-01", "2024-03-10"))
	assert.False(t, Overlaps("2024-03-01", "2024-03-05", "2024-03-05", "2024-03-10"))
	assert.False(t, Overlaps("2024-03-05", "2024-03-10", "2024-03-01", "2024-03-05"))

	// Works on HH:mm too
	assert.True(t, Overlaps("08:00", "12:00", "11:00", "14:00"))
	assert.False(t, Overlaps("08:00", "12:00", "12:00", "14:00"))
}

func TestTimeRangesOverlap(t *testing.T) {
	tests := []struct {
		name                       string
		aStart, aEnd, bStart, bEnd string
		want                       bool
	}{
		{"plain overlap", "08:00", "18:00", "17:00", "21:00", true},
		{"no overlap", "08:00", "12:00", "13:00", "17:00", false},
		{"adjacent blocks do not overlap", "08:00", "12:00", "12:00", "17:00", false},
		{"shift crossing midnight hits early block", "20:00", "06:00", "05:00", "09:00", true},
		{"shift crossing midnight misses midday block", "20:00", "06:00", "10:00", "14:00", false},
		{"both cross midnight", "22:00", "06:00", "23:00", "02:00", true},
		{"block crosses midnight", "01:00", "05:00", "22:00", "02:00", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TimeRangesOverlap(tt.aStart, tt.aEnd, tt.bStart, tt.bEnd)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWeekStart(t *testing.T) {
	// 2024-03-15 is a Friday; the week's Sunday is 2024-03-10
	week, err := WeekStart("2024-03-15")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", week)

	// A Sunday is its own week start
	week, err = WeekStart("2024-03-10")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", week)

	// Saturday belongs to the preceding Sunday
	week, err = WeekStart("2024-03-16")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-10", week)
}

func TestWeekStart_InvalidDate(t *testing.T) {
	_, err := WeekStart("15/03/2024")
	assert.Error(t, err)
}
