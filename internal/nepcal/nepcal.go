// Package nepcal converts between the Bikram Sambat (BS) calendar used across
// Nepali farm paperwork and the Gregorian calendar, and performs day
// arithmetic directly on BS date strings.
//
// Two API levels are provided. The low-level functions (Parse, ToGregorian,
// FromGregorian, DaysInMonth, WeekdayOf) return errors. The string helpers
// (Today, AddDays, DaysBetween) fail closed instead: on malformed or
// out-of-range input they return the empty string or zero, and callers must
// treat that as "unknown". Record dates flow through the string helpers so a
// single bad date never takes a whole page down.
package nepcal

import (
	"errors"
	"fmt"
	"time"
)

// ErrMalformedDate reports input that is not a YYYY-MM-DD BS date string.
var ErrMalformedDate = errors.New("nepcal: malformed BS date")

// ErrOutOfRange reports a date outside the supported BS 2000-2090 table.
var ErrOutOfRange = errors.New("nepcal: date outside supported range")

// epoch is the Gregorian instant of BS 2000-01-01.
var epoch = time.Date(1943, time.April, 14, 0, 0, 0, 0, time.UTC)

// nepal is the UTC+5:45 zone BS "today" is evaluated in.
var nepal = time.FixedZone("Asia/Kathmandu", 5*3600+45*60)

// Date is a parsed BS calendar date.
type Date struct {
	Year  int
	Month int // 1..12, Baisakh = 1
	Day   int
}

// String formats the date in canonical zero-padded YYYY-MM-DD form.
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// Parse validates a YYYY-MM-DD BS date string against the calendar table.
func Parse(s string) (Date, error) {
	var d Date
	if len(s) != 10 || s[4] != '-' || s[7] != '-' {
		return Date{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	if _, err := fmt.Sscanf(s, "%4d-%2d-%2d", &d.Year, &d.Month, &d.Day); err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	days, err := DaysInMonth(d.Year, d.Month)
	if err != nil {
		return Date{}, err
	}
	if d.Day < 1 || d.Day > days {
		return Date{}, fmt.Errorf("%w: %q", ErrOutOfRange, s)
	}
	return d, nil
}

// DaysInMonth returns the length of the given BS month (1..12). Month
// lengths vary per year and come from the embedded table.
func DaysInMonth(year, month int) (int, error) {
	if year < EpochYear || year > LastYear {
		return 0, fmt.Errorf("%w: year %d", ErrOutOfRange, year)
	}
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("%w: month %d", ErrOutOfRange, month)
	}
	return monthDays[year-EpochYear][month-1], nil
}

// MonthName returns the BS month name for a zero-based month index
// (0 = Baisakh .. 11 = Chaitra), or "" when the index is out of range.
func MonthName(idx int) string {
	if idx < 0 || idx > 11 {
		return ""
	}
	return monthNames[idx]
}

// dayNumber counts days from the epoch (BS 2000-01-01 = day 0).
func dayNumber(d Date) int {
	n := 0
	for y := EpochYear; y < d.Year; y++ {
		for _, days := range monthDays[y-EpochYear] {
			n += days
		}
	}
	for m := 1; m < d.Month; m++ {
		n += monthDays[d.Year-EpochYear][m-1]
	}
	return n + d.Day - 1
}

// fromDayNumber is the inverse of dayNumber.
func fromDayNumber(n int) (Date, error) {
	if n < 0 {
		return Date{}, fmt.Errorf("%w: before BS %d", ErrOutOfRange, EpochYear)
	}
	for y := EpochYear; y <= LastYear; y++ {
		for m := 1; m <= 12; m++ {
			days := monthDays[y-EpochYear][m-1]
			if n < days {
				return Date{Year: y, Month: m, Day: n + 1}, nil
			}
			n -= days
		}
	}
	return Date{}, fmt.Errorf("%w: after BS %d", ErrOutOfRange, LastYear)
}

// ToGregorian converts a BS date string to the Gregorian midnight (UTC) of
// that calendar day.
func ToGregorian(bs string) (time.Time, error) {
	d, err := Parse(bs)
	if err != nil {
		return time.Time{}, err
	}
	return epoch.AddDate(0, 0, dayNumber(d)), nil
}

// FromGregorian converts a Gregorian instant to its BS date string.
func FromGregorian(t time.Time) (string, error) {
	y, m, day := t.Date()
	civil := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	n := int(civil.Sub(epoch).Hours() / 24)
	d, err := fromDayNumber(n)
	if err != nil {
		return "", err
	}
	return d.String(), nil
}

// Today returns the current date in Nepal as a BS date string, or "" should
// the clock ever fall outside the supported table.
func Today() string {
	s, err := FromGregorian(time.Now().In(nepal))
	if err != nil {
		return ""
	}
	return s
}

// AddDays advances a BS date by n calendar days (n may be negative), rolling
// over variable-length months and years. Returns "" on any conversion error.
func AddDays(base string, n int) string {
	d, err := Parse(base)
	if err != nil {
		return ""
	}
	out, err := fromDayNumber(dayNumber(d) + n)
	if err != nil {
		return ""
	}
	return out.String()
}

// DaysBetween returns the absolute number of calendar days between two BS
// dates. An empty b means today. Returns 0 when either date fails to parse.
func DaysBetween(a, b string) int {
	if b == "" {
		b = Today()
	}
	da, err := Parse(a)
	if err != nil {
		return 0
	}
	db, err := Parse(b)
	if err != nil {
		return 0
	}
	diff := dayNumber(db) - dayNumber(da)
	if diff < 0 {
		diff = -diff
	}
	return diff
}

// WeekdayOf returns the weekday of a BS date, 0 = Sunday .. 6 = Saturday.
// Calendar grids use it to left-pad the first row of a month.
func WeekdayOf(year, month, day int) (int, error) {
	t, err := ToGregorian(Date{Year: year, Month: month, Day: day}.String())
	if err != nil {
		return 0, err
	}
	return int(t.Weekday()), nil
}
