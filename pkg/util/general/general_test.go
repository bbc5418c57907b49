package general

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDayRangeIsHalfOpen(t *testing.T) {
	start, end, err := DayRange("2026-08-29")
	require.NoError(t, err)

	assert.Equal(t, 0, start.Hour())
	assert.Equal(t, "2026-08-29", start.Format("2006-01-02"))
	assert.Equal(t, "2026-08-30", end.Format("2006-01-02"))
	assert.Equal(t, 24*time.Hour, end.Sub(start))
}

func TestDayRangeRejectsMalformedDates(t *testing.T) {
	for _, value := range []string{"29-08-2026", "2026/08/29", "2026-13-01", "2026-02-30", ""} {
		_, _, err := DayRange(value)
		assert.Error(t, err, value)
	}
}

func TestDayRangeOfNormalizesToLocation(t *testing.T) {
	utc := time.Date(2026, 8, 29, 23, 0, 0, 0, time.UTC) // 2026-08-30 07:00 in +08
	start, end := DayRangeOf(utc)

	assert.Equal(t, "2026-08-30", start.Format("2006-01-02"))
	assert.Equal(t, "2026-08-31", end.Format("2006-01-02"))
}

func TestMonthRange(t *testing.T) {
	start, end := MonthRange(2026, 12)
	assert.Equal(t, "2026-12-01", start.Format("2006-01-02"))
	assert.Equal(t, "2027-01-01", end.Format("2006-01-02"))
}

func TestDaysInMonthLeapYears(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(2024, 2))
	assert.Equal(t, 28, DaysInMonth(2026, 2))
	assert.Equal(t, 28, DaysInMonth(2100, 2)) // century rule
	assert.Equal(t, 29, DaysInMonth(2000, 2))
	assert.Equal(t, 31, DaysInMonth(2026, 8))
	assert.Equal(t, 30, DaysInMonth(2026, 9))
}

func TestRoundFloat(t *testing.T) {
	assert.Equal(t, 25.0, RoundFloat(25.0000001, 2))
	assert.Equal(t, 66.7, RoundFloat(200.0/3.0, 1))
	assert.Equal(t, 33.33, RoundFloat(100.0/3.0, 2))
	assert.Equal(t, 0.0, RoundFloat(0, 1))
}

func TestParseDateUsesAppLocation(t *testing.T) {
	parsed, err := ParseDate("2026-08-29")
	require.NoError(t, err)
	_, offset := parsed.Zone()
	assert.Equal(t, 8*60*60, offset)
}
