package jpholiday

import "time"

// scanLimit bounds the day-by-day searches below. Culture Day falls on
// November 3 every year, so any window of this length holds a holiday.
const scanLimit = 366

// IsBusinessDay reports whether the given date is a business day
// (neither a weekend nor a holiday). The date is interpreted in JST.
func (c *Calendar) IsBusinessDay(t time.Time) bool {
	return c.isBusinessDay(dateFromTime(t))
}

func (c *Calendar) isBusinessDay(d date) bool {
	wd := d.weekday()
	if wd == time.Saturday || wd == time.Sunday {
		return false
	}
	_, ok := c.lookup(d)
	return !ok
}

// NextHoliday returns the next holiday strictly after the given date.
// Returns false if no holiday is found within a year.
func (c *Calendar) NextHoliday(t time.Time) (Holiday, bool) {
	return c.scanHoliday(dateFromTime(t), 1)
}

// PreviousHoliday returns the most recent holiday strictly before the given date.
// Returns false if no holiday is found within a year.
func (c *Calendar) PreviousHoliday(t time.Time) (Holiday, bool) {
	return c.scanHoliday(dateFromTime(t), -1)
}

func (c *Calendar) scanHoliday(from date, step int) (Holiday, bool) {
	d := from
	for i := 0; i < scanLimit; i++ {
		d = d.addDays(step)
		if h, ok := c.lookup(d); ok {
			return h, true
		}
	}
	return Holiday{}, false
}

// NextBusinessDay returns the next business day on or after the given date.
// If t itself is a business day, it returns t (normalized to midnight UTC).
// Returns the zero time if no business day is found within 366 days.
func (c *Calendar) NextBusinessDay(t time.Time) time.Time {
	return c.scanBusinessDay(dateFromTime(t), 1)
}

// PreviousBusinessDay returns the most recent business day on or before the given date.
// If t itself is a business day, it returns t (normalized to midnight UTC).
// Returns the zero time if no business day is found within 366 days.
func (c *Calendar) PreviousBusinessDay(t time.Time) time.Time {
	return c.scanBusinessDay(dateFromTime(t), -1)
}

func (c *Calendar) scanBusinessDay(from date, step int) time.Time {
	d := from
	for i := 0; i < scanLimit; i++ {
		if c.isBusinessDay(d) {
			return d.toTime()
		}
		d = d.addDays(step)
	}
	return time.Time{}
}

// BusinessDaysBetween returns the count of business days in the range [from, to] inclusive.
// If from is after to, returns 0.
func (c *Calendar) BusinessDaysBetween(from, to time.Time) int {
	fromD := dateFromTime(from)
	toD := dateFromTime(to)

	count := 0
	for d := fromD; !d.after(toD); d = d.addDays(1) {
		if c.isBusinessDay(d) {
			count++
		}
	}
	return count
}

// --- Package-level convenience functions ---

// IsBusinessDay reports whether the given date is a business day.
func IsBusinessDay(t time.Time) bool { return defaultCal.IsBusinessDay(t) }

// NextHoliday returns the next holiday strictly after the given date.
func NextHoliday(t time.Time) (Holiday, bool) { return defaultCal.NextHoliday(t) }

// PreviousHoliday returns the most recent holiday strictly before the given date.
func PreviousHoliday(t time.Time) (Holiday, bool) { return defaultCal.PreviousHoliday(t) }

// NextBusinessDay returns the next business day on or after the given date.
func NextBusinessDay(t time.Time) time.Time { return defaultCal.NextBusinessDay(t) }

// PreviousBusinessDay returns the most recent business day on or before the given date.
func PreviousBusinessDay(t time.Time) time.Time { return defaultCal.PreviousBusinessDay(t) }

// BusinessDaysBetween returns the count of business days in the range [from, to].
func BusinessDaysBetween(from, to time.Time) int { return defaultCal.BusinessDaysBetween(from, to) }
