package dateutils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		name        string
		dateStr     string
		endOfPeriod bool
		expected    string
	}{
		{"ISO passes through", "2016-03-15", false, "2016-03-15"},
		{"Compact SIE4 date", "20160315", false, "2016-03-15"},
		{"Compact leap day", "20160229", false, "2016-02-29"},
		{"Month start of period", "2016-01", false, "2016-01-01"},
		{"Month end of period", "2016-01", true, "2016-01-31"},
		{"February end of period", "2015-02", true, "2015-02-28"},
		{"Leap February end of period", "2016-02", true, "2016-02-29"},
		{"April end of period", "2016-04", true, "2016-04-30"},
		{"Whitespace trimmed", " 20160315 ", false, "2016-03-15"},
		{"Empty string", "", false, ""},
		{"Unrecognized returned unchanged", "not-a-date", false, "not-a-date"},
		{"Bad compact returned unchanged", "20161301", false, "20161301"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, NormalizeDate(tc.dateStr, tc.endOfPeriod))
		})
	}
}

func TestYearOf(t *testing.T) {
	assert.Equal(t, 2016, YearOf("2016-03-15"))
	assert.Equal(t, 2016, YearOf("20160315"))
	assert.Equal(t, 0, YearOf("garbage"))
	assert.Equal(t, 0, YearOf(""))
}

func TestMonthYear(t *testing.T) {
	assert.Equal(t, 2016, MonthYear("2016-01"))
	assert.Equal(t, 0, MonthYear("2016-13"))
	assert.Equal(t, 0, MonthYear(""))
}

func TestEndOfMonth(t *testing.T) {
	tests := []struct {
		name     string
		date     time.Time
		expected int
	}{
		{"January", time.Date(2016, time.January, 10, 0, 0, 0, 0, time.UTC), 31},
		{"Leap February", time.Date(2016, time.February, 1, 0, 0, 0, 0, time.UTC), 29},
		{"Plain February", time.Date(2015, time.February, 14, 0, 0, 0, 0, time.UTC), 28},
		{"April", time.Date(2016, time.April, 30, 0, 0, 0, 0, time.UTC), 30},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, EndOfMonth(tc.date).Day())
		})
	}
}

func TestParseISODate(t *testing.T) {
	d, err := ParseISODate("2016-03-15")
	assert.NoError(t, err)
	assert.Equal(t, 2016, d.Year())

	_, err = ParseISODate("20160315")
	assert.Error(t, err)
}
