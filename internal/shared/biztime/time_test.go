package biztime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDaysBetweenCeil_WholeDays(t *testing.T) {
	assert.Equal(t, 6, DaysBetweenCeil(date(2024, 1, 1), date(2024, 1, 7)))
	assert.Equal(t, 4, DaysBetweenCeil(date(2024, 1, 1), date(2024, 1, 5)))
	assert.Equal(t, 1, DaysBetweenCeil(date(2024, 1, 1), date(2024, 1, 2)))
}

func TestDaysBetweenCeil_PartialDayRoundsUp(t *testing.T) {
	start := date(2024, 1, 1)
	end := start.Add(24*time.Hour + time.Minute)
	assert.Equal(t, 2, DaysBetweenCeil(start, end))

	end = start.Add(time.Hour)
	assert.Equal(t, 1, DaysBetweenCeil(start, end))
}

func TestDaysBetweenCeil_NotAfterStart(t *testing.T) {
	d := date(2024, 1, 5)
	assert.Equal(t, 0, DaysBetweenCeil(d, d))
	assert.Equal(t, 0, DaysBetweenCeil(d, date(2024, 1, 1)))
}
