package season

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentWeek(t *testing.T) {
	cal := Calendar2025()

	tests := []struct {
		name     string
		date     time.Time
		expected int
	}{
		{
			name:     "opening night",
			date:     time.Date(2025, time.September, 5, 20, 0, 0, 0, time.UTC),
			expected: 1,
		},
		{
			name:     "mid week 1 window",
			date:     time.Date(2025, time.September, 7, 13, 0, 0, 0, time.UTC),
			expected: 1,
		},
		{
			name:     "first day of week 2",
			date:     time.Date(2025, time.September, 10, 0, 0, 0, 0, time.UTC),
			expected: 2,
		},
		{
			name:     "last day of week 9",
			date:     time.Date(2025, time.November, 4, 23, 59, 0, 0, time.UTC),
			expected: 9,
		},
		{
			name:     "week 18 spills into january",
			date:     time.Date(2026, time.January, 3, 12, 0, 0, 0, time.UTC),
			expected: 18,
		},
		{
			name:     "after final window clamps to 18",
			date:     time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
			expected: 18,
		},
		{
			name:     "before opener reports week 1",
			date:     time.Date(2025, time.August, 20, 0, 0, 0, 0, time.UTC),
			expected: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, cal.CurrentWeek(tt.date))
		})
	}
}

func TestWeekFor(t *testing.T) {
	cal := Calendar2025()

	week, ok := cal.WeekFor(time.Date(2025, time.October, 12, 9, 0, 0, 0, time.UTC))
	assert.True(t, ok)
	assert.Equal(t, 6, week)

	week, ok = cal.WeekFor(time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC))
	assert.False(t, ok)
	assert.Equal(t, 1, week)
}

func TestForSeason(t *testing.T) {
	cal := ForSeason(2025)
	require.NotNil(t, cal)
	assert.Equal(t, 2025, cal.Season())
	assert.Equal(t, 18, cal.FinalWeek())

	assert.Nil(t, ForSeason(2019))
}
