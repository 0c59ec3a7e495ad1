package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCountBusinessDays(t *testing.T) {
	day := func(value string) time.Time {
		parsed, err := time.Parse("2006-01-02", value)
		assert.NoError(t, err)
		return parsed
	}

	t.Run("Same Weekday", func(t *testing.T) {
		// 2026-08-03 is a Monday.
		assert.Equal(t, 1, CountBusinessDays(day("2026-08-03"), day("2026-08-03")))
	})

	t.Run("Full Work Week", func(t *testing.T) {
		assert.Equal(t, 5, CountBusinessDays(day("2026-08-03"), day("2026-08-07")))
	})

	t.Run("Spanning A Weekend", func(t *testing.T) {
		// Friday through next Monday counts both endpoints but no weekend.
		assert.Equal(t, 2, CountBusinessDays(day("2026-08-07"), day("2026-08-10")))
	})

	t.Run("Weekend Only", func(t *testing.T) {
		assert.Equal(t, 0, CountBusinessDays(day("2026-08-08"), day("2026-08-09")))
	})

	t.Run("End Before Start", func(t *testing.T) {
		assert.Equal(t, 0, CountBusinessDays(day("2026-08-10"), day("2026-08-03")))
	})

	t.Run("Hours Are Ignored", func(t *testing.T) {
		start := time.Date(2026, time.August, 3, 23, 59, 0, 0, time.UTC)
		end := time.Date(2026, time.August, 4, 0, 1, 0, 0, time.UTC)
		assert.Equal(t, 2, CountBusinessDays(start, end))
	})
}

func TestMonthWindow(t *testing.T) {
	t.Run("Regular Month", func(t *testing.T) {
		start, end := MonthWindow(2026, time.April)
		assert.Equal(t, time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2026, time.May, 1, 0, 0, 0, 0, time.UTC), end)
	})

	t.Run("December Rolls Into Next Year", func(t *testing.T) {
		start, end := MonthWindow(2026, time.December)
		assert.Equal(t, time.Date(2026, time.December, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC), end)
	})
}

func TestPreviousMonth(t *testing.T) {
	t.Run("Mid Year", func(t *testing.T) {
		year, month := PreviousMonth(2026, time.June)
		assert.Equal(t, 2026, year)
		assert.Equal(t, time.May, month)
	})

	t.Run("January Steps Back A Year", func(t *testing.T) {
		year, month := PreviousMonth(2026, time.January)
		assert.Equal(t, 2025, year)
		assert.Equal(t, time.December, month)
	})
}

func TestEndOfDay(t *testing.T) {
	end := EndOfDay(time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC))
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 59, end.Minute())
	assert.Equal(t, 15, end.Day())
}
