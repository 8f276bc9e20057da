package jpholiday

import "time"

// jstZone is the Asia/Tokyo timezone (UTC+9) used to normalize all input
// times to the Japanese calendar date before holiday lookups.
var jstZone = time.FixedZone("Asia/Tokyo", 9*60*60)

// date is an internal comparable key for map lookups and rule evaluation.
// Users work with time.Time; this type is not exported.
type date struct {
	year  int
	month time.Month
	day   int
}

// dateFromTime converts a time.Time to a date by first normalizing to JST.
// This ensures that a moment in time always maps to the correct Japanese
// calendar date regardless of the input timezone.
func dateFromTime(t time.Time) date {
	jt := t.In(jstZone)
	y, m, d := jt.Date()
	return date{year: y, month: m, day: d}
}

// dateOf normalizes an arbitrary year/month/day triple (e.g. day 0 or 32)
// the same way time.Date does.
func dateOf(year int, month time.Month, day int) date {
	y, m, d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC).Date()
	return date{year: y, month: m, day: d}
}

func (d date) toTime() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// addDays returns the date n days away. The receiver is left untouched.
func (d date) addDays(n int) date {
	return dateOf(d.year, d.month, d.day+n)
}

func (d date) weekday() time.Weekday {
	return d.toTime().Weekday()
}

// weekdayOrdinal numbers the days of the week 1=Sunday through 7=Saturday.
func (d date) weekdayOrdinal() int {
	return int(d.weekday()) + 1
}

// weekOfMonth is the 1-based index of the 7-day block of the month the
// date falls in: days 1-7 are week 1, days 8-14 week 2 and so on.
func (d date) weekOfMonth() int {
	return (d.day-1)/7 + 1
}

func (d date) before(other date) bool {
	if d.year != other.year {
		return d.year < other.year
	}
	if d.month != other.month {
		return d.month < other.month
	}
	return d.day < other.day
}

func (d date) after(other date) bool {
	return other.before(d)
}

// sameDay reports whether t, read in its own location, is the date d.
// The zero time never matches.
func (d date) sameDay(t time.Time) bool {
	if t.IsZero() {
		return false
	}
	y, m, dd := t.Date()
	return y == d.year && m == d.month && dd == d.day
}
