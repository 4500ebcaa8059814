// Package calendar provides a plain calendar date with no time of day and no
// time zone, plus the month arithmetic the recurrence engine relies on.
package calendar

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// ISOLayout is the wire and storage format for dates.
const ISOLayout = time.DateOnly

// Date is a valid Gregorian (year, month, day). The zero value means "unset".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// New returns the date or an error when the components do not form a real day.
func New(year int, month time.Month, day int) (Date, error) {
	if month < time.January || month > time.December {
		return Date{}, fmt.Errorf("calendar: month %d out of range", month)
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return Date{}, fmt.Errorf("calendar: day %d out of range for %04d-%02d", day, year, month)
	}
	return Date{Year: year, Month: month, Day: day}, nil
}

// MustNew is New for literals known to be valid.
func MustNew(year int, month time.Month, day int) Date {
	d, err := New(year, month, day)
	if err != nil {
		panic(err)
	}
	return d
}

// Parse reads a YYYY-MM-DD string.
func Parse(s string) (Date, error) {
	t, err := time.Parse(ISOLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("calendar: invalid date %q", s)
	}
	return FromTime(t), nil
}

// MustParse is Parse for literals known to be valid.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// FromTime takes the calendar day of t in t's own location.
func FromTime(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// Today is the local calendar date.
func Today() Date {
	return FromTime(time.Now())
}

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeap(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	default:
		return 31
	}
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// Compare returns -1, 0 or +1.
func (d Date) Compare(o Date) int {
	switch {
	case d.Year != o.Year:
		return cmpInt(d.Year, o.Year)
	case d.Month != o.Month:
		return cmpInt(int(d.Month), int(o.Month))
	default:
		return cmpInt(d.Day, o.Day)
	}
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (d Date) Before(o Date) bool { return d.Compare(o) < 0 }
func (d Date) After(o Date) bool  { return d.Compare(o) > 0 }
func (d Date) Equal(o Date) bool  { return d == o }

// Between reports whether from <= d <= to.
func (d Date) Between(from, to Date) bool {
	return !d.Before(from) && !d.After(to)
}

// AddDays moves the date by n days.
func (d Date) AddDays(n int) Date {
	return FromTime(d.Time().AddDate(0, 0, n))
}

// AddMonths moves the date by n months keeping the day of month, clamped to
// the last day of the target month (Jan 31 + 1 month = Feb 28/29).
func (d Date) AddMonths(n int) Date {
	idx := d.Year*12 + int(d.Month-1) + n
	year, month := idx/12, time.Month(idx%12+1)
	return Date{Year: year, Month: month, Day: min(d.Day, DaysInMonth(year, month))}
}

// AddYears moves the date by n years; Feb 29 clamps to Feb 28 in common years.
func (d Date) AddYears(n int) Date {
	year := d.Year + n
	return Date{Year: year, Month: d.Month, Day: min(d.Day, DaysInMonth(year, d.Month))}
}

// WithDay returns the given day of the same month, clamped to the month's length.
func (d Date) WithDay(day int) Date {
	return Date{Year: d.Year, Month: d.Month, Day: max(1, min(day, DaysInMonth(d.Year, d.Month)))}
}

// StartOfMonth is the 1st of the date's month.
func (d Date) StartOfMonth() Date { return Date{Year: d.Year, Month: d.Month, Day: 1} }

// EndOfMonth is the last day of the date's month.
func (d Date) EndOfMonth() Date {
	return Date{Year: d.Year, Month: d.Month, Day: DaysInMonth(d.Year, d.Month)}
}

// StartOfYear is January 1 of the date's year.
func (d Date) StartOfYear() Date { return Date{Year: d.Year, Month: time.January, Day: 1} }

// EndOfYear is December 31 of the date's year.
func (d Date) EndOfYear() Date { return Date{Year: d.Year, Month: time.December, Day: 31} }

// SameMonth reports whether both dates fall in the same calendar month.
func (d Date) SameMonth(o Date) bool {
	return d.Year == o.Year && d.Month == o.Month
}

// MarshalText encodes the date as YYYY-MM-DD; the zero date encodes as "".
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText accepts YYYY-MM-DD or "".
func (d *Date) UnmarshalText(b []byte) error {
	if len(b) == 0 {
		*d = Date{}
		return nil
	}
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value stores the date as an ISO string, which both postgres DATE columns
// and sqlite text affinity accept.
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}

// Scan reads DATE values returned either as time.Time or as text.
func (d *Date) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = FromTime(v.UTC())
		return nil
	case string:
		return d.scanString(v)
	case []byte:
		return d.scanString(string(v))
	default:
		return fmt.Errorf("calendar: cannot scan %T into Date", src)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) > len(ISOLayout) {
		s = s[:len(ISOLayout)]
	}
	parsed, err := Parse(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// GormDataType maps the field to a DATE column.
func (Date) GormDataType() string {
	return "date"
}
