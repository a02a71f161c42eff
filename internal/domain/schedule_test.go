package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWeekRange(t *testing.T) {
	date := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name       string
		date       time.Time
		wantMonday time.Time
		wantSunday time.Time
	}{
		{
			name:       "wednesday maps to its monday",
			date:       date(2024, time.January, 10),
			wantMonday: date(2024, time.January, 8),
			wantSunday: date(2024, time.January, 14),
		},
		{
			name:       "monday maps to itself",
			date:       date(2024, time.January, 8),
			wantMonday: date(2024, time.January, 8),
			wantSunday: date(2024, time.January, 14),
		},
		{
			name:       "sunday belongs to the preceding monday",
			date:       date(2024, time.January, 14),
			wantMonday: date(2024, time.January, 8),
			wantSunday: date(2024, time.January, 14),
		},
		{
			name:       "week spanning month boundary",
			date:       date(2024, time.January, 31),
			wantMonday: date(2024, time.January, 29),
			wantSunday: date(2024, time.February, 4),
		},
		{
			name:       "time component is dropped",
			date:       time.Date(2024, time.January, 10, 18, 30, 15, 0, time.UTC),
			wantMonday: date(2024, time.January, 8),
			wantSunday: date(2024, time.January, 14),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			monday, sunday := WeekRange(tt.date)
			assert.Equal(t, tt.wantMonday, monday)
			assert.Equal(t, tt.wantSunday, sunday)
			assert.Equal(t, time.Monday, monday.Weekday())
			assert.Equal(t, time.Sunday, sunday.Weekday())
		})
	}
}

func TestSameDay(t *testing.T) {
	a := time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC)
	b := time.Date(2024, time.January, 10, 23, 59, 0, 0, time.UTC)
	c := time.Date(2024, time.January, 11, 0, 0, 0, 0, time.UTC)

	assert.True(t, SameDay(a, b))
	assert.False(t, SameDay(b, c))
}
