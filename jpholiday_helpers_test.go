package jpholiday

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsBusinessDay(t *testing.T) {
	t.Parallel()

	// 2015: May 3 = Sun, Jun 1 = Mon
	tests := []struct {
		name string
		date time.Time
		want bool
	}{
		{"Wednesday non-holiday", d(2015, time.June, 10), true},
		{"Friday non-holiday", d(2015, time.June, 12), true},
		{"Saturday", d(2015, time.June, 6), false},
		{"Sunday", d(2015, time.June, 7), false},
		{"New Years Day (Friday)", d(2016, time.January, 1), false},
		{"May 6 holiday (Wednesday)", d(2015, time.May, 6), false},
		{"Substitute holiday (Monday)", d(2019, time.May, 6), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsBusinessDay(tt.date), tt.date.Format("2006-01-02"))
		})
	}
}

func TestIsBusinessDay_JSTNormalization(t *testing.T) {
	t.Parallel()

	// 2015-01-11 (Sun) 15:00 UTC = 2015-01-12 (Mon 成人の日) 00:00 JST
	assert.False(t, IsBusinessDay(time.Date(2015, time.January, 11, 15, 0, 0, 0, time.UTC)))
	// 2015-01-12 (Mon 成人の日) 15:00 UTC = 2015-01-13 (Tue) 00:00 JST
	assert.True(t, IsBusinessDay(time.Date(2015, time.January, 12, 15, 0, 0, 0, time.UTC)))
}

func TestIsBusinessDay_CustomHoliday(t *testing.T) {
	t.Parallel()

	cal := New()
	cal.AddCustomHoliday(d(2015, time.June, 10), "会社記念日")
	assert.False(t, cal.IsBusinessDay(d(2015, time.June, 10)))
	assert.True(t, IsBusinessDay(d(2015, time.June, 10)))
}

func TestNextHoliday(t *testing.T) {
	t.Parallel()

	h, ok := NextHoliday(d(2015, time.June, 1))
	require.True(t, ok)
	assert.Equal(t, d(2015, time.July, 20), h.Date)
	assert.Equal(t, "海の日", h.Name)

	// Strictly after: starting on a holiday skips it.
	h, ok = NextHoliday(d(2015, time.May, 5))
	require.True(t, ok)
	assert.Equal(t, d(2015, time.May, 6), h.Date)
}

func TestPreviousHoliday(t *testing.T) {
	t.Parallel()

	h, ok := PreviousHoliday(d(2015, time.July, 1))
	require.True(t, ok)
	assert.Equal(t, d(2015, time.May, 6), h.Date)

	h, ok = PreviousHoliday(d(2016, time.January, 1))
	require.True(t, ok)
	assert.Equal(t, d(2015, time.December, 23), h.Date)
}

func TestNextHoliday_Custom(t *testing.T) {
	t.Parallel()

	cal := New()
	cal.AddCustomHoliday(d(2015, time.June, 15), "会社記念日")
	h, ok := cal.NextHoliday(d(2015, time.June, 1))
	require.True(t, ok)
	assert.Equal(t, "会社記念日", h.Name)
	assert.Equal(t, Custom, h.Kind)
}

func TestNextHoliday_BeforeLaw(t *testing.T) {
	t.Parallel()

	h, ok := NextHoliday(d(1900, time.January, 1))
	require.True(t, ok)
	assert.Equal(t, d(1900, time.November, 3), h.Date)
}

func TestNextBusinessDay(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		from time.Time
		want time.Time
	}{
		{"business day returns itself", d(2015, time.June, 10), d(2015, time.June, 10)},
		{"Saturday to Monday", d(2015, time.June, 6), d(2015, time.June, 8)},
		{"Golden Week", d(2015, time.May, 2), d(2015, time.May, 7)},
		{"year end", d(2015, time.December, 31), d(2015, time.December, 31)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextBusinessDay(tt.from))
		})
	}
}

func TestPreviousBusinessDay(t *testing.T) {
	t.Parallel()

	assert.Equal(t, d(2015, time.May, 1), PreviousBusinessDay(d(2015, time.May, 6)))
	assert.Equal(t, d(2015, time.June, 5), PreviousBusinessDay(d(2015, time.June, 7)))
	assert.Equal(t, d(2015, time.June, 10), PreviousBusinessDay(d(2015, time.June, 10)))
}

func TestBusinessDaysBetween(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 18, BusinessDaysBetween(d(2015, time.May, 1), d(2015, time.May, 31)))
	assert.Equal(t, 1, BusinessDaysBetween(d(2015, time.June, 10), d(2015, time.June, 10)))
	assert.Equal(t, 0, BusinessDaysBetween(d(2015, time.June, 10), d(2015, time.June, 1)))
}

func TestBusinessDaysBetween_Custom(t *testing.T) {
	t.Parallel()

	cal := New()
	cal.AddCustomHolidayRange(d(2015, time.May, 7), d(2015, time.May, 8), "休業日")
	assert.Equal(t, 16, cal.BusinessDaysBetween(d(2015, time.May, 1), d(2015, time.May, 31)))
}
