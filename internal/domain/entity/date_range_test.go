package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestExpandDates(t *testing.T) {
	t.Run("Inclusive and ascending", func(t *testing.T) {
		dates := ExpandDates(date(2023, 5, 4), date(2023, 5, 7))

		assert.Equal(t, []time.Time{date(2023, 5, 4), date(2023, 5, 5), date(2023, 5, 6), date(2023, 5, 7)}, dates)
	})

	t.Run("Single day", func(t *testing.T) {
		assert.Equal(t, []time.Time{date(2023, 6, 6)}, ExpandDates(date(2023, 6, 6), date(2023, 6, 6)))
	})

	t.Run("Inverted range is empty", func(t *testing.T) {
		dates := ExpandDates(date(2023, 4, 6), date(2023, 4, 4))

		assert.NotNil(t, dates)
		assert.Empty(t, dates)
	})

	t.Run("Crosses month and leap day", func(t *testing.T) {
		dates := ExpandDates(date(2024, 2, 28), date(2024, 3, 1))

		assert.Equal(t, []time.Time{date(2024, 2, 28), date(2024, 2, 29), date(2024, 3, 1)}, dates)
	})

	t.Run("Length is span plus one", func(t *testing.T) {
		for span := 0; span < 40; span++ {
			start := date(2022, 12, 20)
			end := start.AddDate(0, 0, span)
			dates := ExpandDates(start, end)

			require.Len(t, dates, span+1)
			assert.Equal(t, start, dates[0])
			assert.Equal(t, end, dates[len(dates)-1])
			assert.Equal(t, span+1, DaysInclusive(start, end))
		}
	})
}

func TestDaysInclusive(t *testing.T) {
	assert.Equal(t, 1, DaysInclusive(date(2023, 6, 6), date(2023, 6, 6)))
	assert.Equal(t, 6, DaysInclusive(date(2023, 6, 1), date(2023, 6, 6)))
	assert.Equal(t, 0, DaysInclusive(date(2023, 6, 6), date(2023, 6, 1)))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2023-06-06")
	require.NoError(t, err)
	assert.Equal(t, date(2023, 6, 6), d)
	assert.Equal(t, "2023-06-06", FormatDate(d))

	for _, bad := range []string{"", "2023-6-6", "06/06/2023", "2023-02-30", "today"} {
		_, err := ParseDate(bad)
		assert.Error(t, err, bad)
	}
}

func TestDateOf(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)

	assert.Equal(t, date(2023, 6, 10), DateOf(time.Date(2023, 6, 10, 23, 59, 0, 0, loc)))
	assert.Equal(t, date(2023, 6, 10), DateOf(time.Date(2023, 6, 10, 0, 0, 1, 0, time.UTC)))
}

func TestDateRange(t *testing.T) {
	r := DateRange{Start: date(2023, 5, 4), End: date(2023, 5, 7)}

	assert.Equal(t, 4, r.Days())
	assert.Len(t, r.Dates(), 4)
	assert.Equal(t, "2023-05-04..2023-05-07", r.String())
}
