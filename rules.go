package jpholiday

import (
	"time"

	"github.com/rickar/cal/v2"
)

// rule is a single statutory holiday of the Act on National Holidays as it
// stood for a span of years. The embedded cal.Holiday holds the English
// name, the month, the inclusive StartYear/EndYear gate (0 = open) and the
// function that places the holiday within a year. Func returns the zero
// time for years in which the rule does not fire.
type rule struct {
	*cal.Holiday
	label label
}

func newRule(l label, h cal.Holiday) *rule {
	h.Name = l.en
	h.Type = cal.ObservancePublic
	return &rule{Holiday: &h, label: l}
}

// onDay is a holiday on a fixed day of the month.
func onDay(l label, month time.Month, day, startYear, endYear int) *rule {
	return newRule(l, cal.Holiday{
		Month:     month,
		Day:       day,
		StartYear: startYear,
		EndYear:   endYear,
		Func:      cal.CalcDayOfMonth,
	})
}

// onWeekMonday is a holiday on the Monday of the given week of the month.
func onWeekMonday(l label, month time.Month, week, startYear, endYear int) *rule {
	return newRule(l, cal.Holiday{
		Month:     month,
		Weekday:   time.Monday,
		Offset:    week,
		StartYear: startYear,
		EndYear:   endYear,
		Func:      calcWeekOfMonth,
	})
}

// onDayIfWeekday is a holiday on a fixed day of the month, but only in
// years where that day's weekday ordinal (1=Sunday) lies in [first, last].
func onDayIfWeekday(l label, month time.Month, day, startYear, endYear, first, last int) *rule {
	return newRule(l, cal.Holiday{
		Month:     month,
		Day:       day,
		StartYear: startYear,
		EndYear:   endYear,
		Func:      calcDayOfMonthBetween(first, last),
	})
}

// onEquinox is a holiday on the estimated equinox day.
func onEquinox(l label, month time.Month, startYear int, estimate func(int) (int, bool)) *rule {
	return newRule(l, cal.Holiday{
		Month:     month,
		StartYear: startYear,
		Func:      calcEquinox(estimate),
	})
}

// calcWeekOfMonth finds h.Weekday inside the h.Offset'th 7-day block of
// h.Month.
func calcWeekOfMonth(h *cal.Holiday, year int) time.Time {
	for d := dateOf(year, h.Month, (h.Offset-1)*7+1); d.month == h.Month && d.weekOfMonth() == h.Offset; d = d.addDays(1) {
		if d.weekday() == h.Weekday {
			return d.toTime()
		}
	}
	return time.Time{}
}

func calcDayOfMonthBetween(first, last int) cal.HolidayFn {
	return func(h *cal.Holiday, year int) time.Time {
		d := dateOf(year, h.Month, h.Day)
		if wo := d.weekdayOrdinal(); wo < first || wo > last {
			return time.Time{}
		}
		return d.toTime()
	}
}

func calcEquinox(estimate func(int) (int, bool)) cal.HolidayFn {
	return func(h *cal.Holiday, year int) time.Time {
		day, ok := estimate(year)
		if !ok {
			return time.Time{}
		}
		return dateOf(year, h.Month, day).toTime()
	}
}

// calcAutumnBridge is the weekday squeezed between Respect for the Aged
// Day and the autumnal equinox: the day before the equinox, when it is a
// Tuesday.
func calcAutumnBridge(h *cal.Holiday, year int) time.Time {
	day, ok := AutumnalEquinoxDay(year)
	if !ok {
		return time.Time{}
	}
	d := dateOf(year, h.Month, day-1)
	if d.weekday() != time.Tuesday {
		return time.Time{}
	}
	return d.toTime()
}

// statutoryRules lists every rule in evaluation order. Within a month the
// first rule that places a holiday on the date wins.
var statutoryRules = []*rule{
	onDay(labelNewYear, time.January, 1, 1949, 0),
	onWeekMonday(labelComingOfAge, time.January, 2, 2000, 0),
	onDay(labelComingOfAge, time.January, 15, 1949, 1999),

	onDay(labelFoundation, time.February, 11, 1967, 0),

	onEquinox(labelVernalEquinox, time.March, 1949, VernalEquinoxDay),

	onDay(labelShowa, time.April, 29, 2007, 0),
	onDay(labelGreenery, time.April, 29, 1989, 2006),
	onDay(labelEmperor, time.April, 29, 1949, 1988),

	onDay(labelConstitution, time.May, 3, 1949, 0),
	onDay(labelChildren, time.May, 5, 1949, 0),
	onDay(labelGreenery, time.May, 4, 2007, 0),
	onDayIfWeekday(labelCitizens, time.May, 4, 1986, 2006, 3, 7),
	onDayIfWeekday(labelSubstitute, time.May, 6, 2007, 0, 3, 4),

	onWeekMonday(labelMarine, time.July, 3, 2003, 0),
	onDay(labelMarine, time.July, 20, 1996, 2002),

	onDay(labelMountain, time.August, 11, 2016, 0),

	onEquinox(labelAutumnalEquinox, time.September, 1948, AutumnalEquinoxDay),
	onWeekMonday(labelRespectForAged, time.September, 3, 2003, 0),
	onDay(labelRespectForAged, time.September, 15, 1966, 2002),
	newRule(labelCitizens, cal.Holiday{
		Month:     time.September,
		StartYear: 2003,
		Func:      calcAutumnBridge,
	}),

	onWeekMonday(labelHealthSports, time.October, 2, 2000, 0),
	onDay(labelHealthSports, time.October, 10, 1966, 1999),

	onDay(labelCulture, time.November, 3, 0, 0),
	onDay(labelLaborThanksgiving, time.November, 23, 0, 0),

	onDay(labelEmperor, time.December, 23, 1989, 0),
}

// rulesByMonth indexes statutoryRules by month, preserving order.
var rulesByMonth = indexByMonth(statutoryRules)

func indexByMonth(rules []*rule) [13][]*rule {
	var idx [13][]*rule
	for _, r := range rules {
		idx[r.Month] = append(idx[r.Month], r)
	}
	return idx
}

// statutory returns the statutory holiday falling on d, if any. Substitute
// holidays and custom dates are not considered.
func statutory(d date) (*rule, bool) {
	for _, r := range rulesByMonth[d.month] {
		actual, _ := r.Calc(d.year)
		if d.sameDay(actual) {
			return r, true
		}
	}
	return nil, false
}

// StatutoryHolidays returns the statutory holiday rules as cal.Holiday
// values, suitable for cal.BusinessCalendar.AddHoliday. Substitute holidays
// are not included since they depend on the preceding day. The returned
// values are copies; modifying them does not affect this package.
func StatutoryHolidays() []*cal.Holiday {
	out := make([]*cal.Holiday, 0, len(statutoryRules))
	for _, r := range statutoryRules {
		h := *r.Holiday
		out = append(out, &h)
	}
	return out
}
