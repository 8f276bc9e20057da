// Package jpholiday determines Japanese national holidays.
//
// Holidays are computed from the history of the Act on National Holidays
// (国民の祝日に関する法律) rather than looked up in a dataset: each rule
// carries the span of years it was in force, and the vernal and autumnal
// equinox days are estimated with the customary approximation formula.
// On top of the statutory rules the package applies the substitute holiday
// rule (振替休日) and an overlay of caller-registered custom holidays.
//
// All time.Time inputs are normalized to JST (Asia/Tokyo, UTC+9) before
// extracting the calendar date, so the correct Japanese holiday is returned
// regardless of the input timezone.
//
// Basic usage with package-level functions:
//
//	jst := time.FixedZone("Asia/Tokyo", 9*60*60)
//	t := time.Date(2016, 1, 1, 0, 0, 0, 0, jst)
//	jpholiday.IsHoliday(t)    // true
//	jpholiday.HolidayName(t)  // "元日"
//
// For isolated custom holiday management, create a Calendar instance:
//
//	cal := jpholiday.New()
//	cal.AddCustomHoliday(t, "会社記念日")
package jpholiday

import (
	"sort"
	"sync"
	"time"

	"golang.org/x/text/language"
)

// Kind tells which rule produced a holiday.
type Kind int

const (
	// Statutory holidays are named by the Act on National Holidays.
	Statutory Kind = iota + 1
	// Substitute holidays replace a statutory holiday that fell on Sunday.
	Substitute
	// Custom holidays were registered by the caller.
	Custom
)

func (k Kind) String() string {
	switch k {
	case Statutory:
		return "statutory"
	case Substitute:
		return "substitute"
	case Custom:
		return "custom"
	}
	return "unknown"
}

// MarshalText encodes the kind by name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Holiday represents a single holiday entry.
type Holiday struct {
	Date time.Time `json:"date"` // The date of the holiday (midnight UTC).
	Name string    `json:"name"` // The holiday name (e.g., "元日").
	Kind Kind      `json:"kind"`
}

// substituteStart is the date the substitute holiday rule took effect.
var substituteStart = date{year: 1973, month: time.April, day: 12}

// Calendar evaluates holidays and holds custom holidays.
// Create one with [New]. All methods are safe for concurrent use.
type Calendar struct {
	lang lang

	mu     sync.RWMutex
	custom map[date]string
}

// Option configures a Calendar.
type Option func(*Calendar)

// WithLanguage selects the language of statutory holiday and weekday names.
// Japanese and English are supported; other tags fall back to Japanese.
// Custom holiday names are returned as registered.
func WithLanguage(tag language.Tag) Option {
	return func(c *Calendar) {
		c.lang = langFor(tag)
	}
}

// New creates a new Calendar with no custom holidays.
func New(opts ...Option) *Calendar {
	c := &Calendar{
		lang:   langJapanese,
		custom: make(map[date]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// defaultCal is the package-level calendar used by top-level functions.
var defaultCal = New()

// lookup evaluates a date: statutory rules first, then the substitute
// holiday rule, then custom holidays.
func (c *Calendar) lookup(d date) (Holiday, bool) {
	if r, ok := statutory(d); ok {
		return Holiday{Date: d.toTime(), Name: r.label.in(c.lang), Kind: Statutory}, true
	}
	if isSubstitute(d) {
		return Holiday{Date: d.toTime(), Name: labelSubstitute.in(c.lang), Kind: Substitute}, true
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	if name, ok := c.custom[d]; ok {
		return Holiday{Date: d.toTime(), Name: name, Kind: Custom}, true
	}
	return Holiday{}, false
}

// isSubstitute reports whether d is a Monday following a statutory
// holiday on or after the day the rule took effect. Only the statutory
// rules are consulted for the previous day, so a substitute holiday never
// produces another one.
func isSubstitute(d date) bool {
	if d.weekday() != time.Monday || d.before(substituteStart) {
		return false
	}
	_, ok := statutory(d.addDays(-1))
	return ok
}

// Lookup returns the holiday on the given date. A date carries at most one
// holiday: statutory holidays take precedence over substitute holidays,
// which take precedence over custom holidays.
func (c *Calendar) Lookup(t time.Time) (Holiday, bool) {
	return c.lookup(dateFromTime(t))
}

// IsHoliday reports whether the given date is a holiday (statutory,
// substitute or custom). The input time is converted to JST (Asia/Tokyo,
// UTC+9) before extracting the calendar date.
func (c *Calendar) IsHoliday(t time.Time) bool {
	_, ok := c.lookup(dateFromTime(t))
	return ok
}

// HolidayName returns the holiday name for the given date, or an empty string
// if it is not a holiday.
func (c *Calendar) HolidayName(t time.Time) string {
	h, _ := c.lookup(dateFromTime(t))
	return h.Name
}

// WeekdayName returns the name of the day of the week of the given date in
// JST, e.g. "月" for Monday.
func (c *Calendar) WeekdayName(t time.Time) string {
	return weekdayLabel(dateFromTime(t).weekday()).in(c.lang)
}

// HolidaysInYear returns all holidays in the given year, sorted by date.
func (c *Calendar) HolidaysInYear(year int) []Holiday {
	from := date{year: year, month: time.January, day: 1}
	to := date{year: year, month: time.December, day: 31}
	return c.holidaysInRange(from, to)
}

// HolidaysInMonth returns all holidays in the given year and month, sorted by date.
func (c *Calendar) HolidaysInMonth(year int, month time.Month) []Holiday {
	from := dateOf(year, month, 1)
	to := dateOf(year, month+1, 0)
	return c.holidaysInRange(from, to)
}

// HolidaysBetween returns all holidays in the range [from, to] inclusive,
// sorted by date. If from is after to, returns nil.
func (c *Calendar) HolidaysBetween(from, to time.Time) []Holiday {
	fromD := dateFromTime(from)
	toD := dateFromTime(to)
	if toD.before(fromD) {
		return nil
	}
	return c.holidaysInRange(fromD, toD)
}

// holidaysInRange evaluates every day within the range (inclusive).
func (c *Calendar) holidaysInRange(from, to date) []Holiday {
	var result []Holiday
	for d := from; !d.after(to); d = d.addDays(1) {
		if h, ok := c.lookup(d); ok {
			result = append(result, h)
		}
	}
	return result
}

// AddCustomHoliday registers a custom holiday on the given date.
// If a custom holiday already exists on that date, it is overwritten.
// A statutory or substitute holiday on the same date still takes precedence
// in lookups; the custom name only fills days that are otherwise not
// holidays. An empty name registers nothing and clears the date.
func (c *Calendar) AddCustomHoliday(t time.Time, name string) {
	d := dateFromTime(t)
	c.mu.Lock()
	defer c.mu.Unlock()
	c.setCustom(d, name)
}

// AddCustomHolidayRange registers a custom holiday on every date in the
// range [from, to] inclusive. If from is after to, nothing is registered.
// An empty name clears the range.
func (c *Calendar) AddCustomHolidayRange(from, to time.Time, name string) {
	fromD := dateFromTime(from)
	toD := dateFromTime(to)
	c.mu.Lock()
	defer c.mu.Unlock()
	for d := fromD; !d.after(toD); d = d.addDays(1) {
		c.setCustom(d, name)
	}
}

// setCustom must be called with c.mu held.
func (c *Calendar) setCustom(d date, name string) {
	if name == "" {
		delete(c.custom, d)
		return
	}
	c.custom[d] = name
}

// RemoveCustomHoliday removes a previously added custom holiday.
// Has no effect if no custom holiday exists on that date.
func (c *Calendar) RemoveCustomHoliday(t time.Time) {
	d := dateFromTime(t)
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.custom, d)
}

// CustomHolidays returns the registered custom holidays sorted by date,
// including those shadowed by a statutory or substitute holiday.
func (c *Calendar) CustomHolidays() []Holiday {
	c.mu.RLock()
	defer c.mu.RUnlock()

	result := make([]Holiday, 0, len(c.custom))
	for d, name := range c.custom {
		result = append(result, Holiday{Date: d.toTime(), Name: name, Kind: Custom})
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date.Before(result[j].Date)
	})
	return result
}

// --- Package-level convenience functions ---

// Lookup returns the holiday on the given date.
func Lookup(t time.Time) (Holiday, bool) { return defaultCal.Lookup(t) }

// IsHoliday reports whether the given date is a holiday.
func IsHoliday(t time.Time) bool { return defaultCal.IsHoliday(t) }

// HolidayName returns the holiday name for the given date, or "".
func HolidayName(t time.Time) string { return defaultCal.HolidayName(t) }

// WeekdayName returns the Japanese name of the day of the week.
func WeekdayName(t time.Time) string { return defaultCal.WeekdayName(t) }

// HolidaysInYear returns all holidays in the given year, sorted by date.
func HolidaysInYear(year int) []Holiday { return defaultCal.HolidaysInYear(year) }

// HolidaysInMonth returns all holidays in the given year and month, sorted by date.
func HolidaysInMonth(year int, month time.Month) []Holiday {
	return defaultCal.HolidaysInMonth(year, month)
}

// HolidaysBetween returns all holidays in the range [from, to] inclusive.
func HolidaysBetween(from, to time.Time) []Holiday {
	return defaultCal.HolidaysBetween(from, to)
}

// AddCustomHoliday registers a custom holiday on the default calendar.
func AddCustomHoliday(t time.Time, name string) { defaultCal.AddCustomHoliday(t, name) }

// AddCustomHolidayRange registers a custom holiday range on the default calendar.
func AddCustomHolidayRange(from, to time.Time, name string) {
	defaultCal.AddCustomHolidayRange(from, to, name)
}

// RemoveCustomHoliday removes a custom holiday from the default calendar.
func RemoveCustomHoliday(t time.Time) { defaultCal.RemoveCustomHoliday(t) }
