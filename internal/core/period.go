package core

import (
	"fmt"
	"time"
)

// PeriodLayout is the canonical form for month periods.
const PeriodLayout = "2006-01"

// Period is a calendar month in YYYY-MM form, used as a filter and
// grouping key throughout the core.
type Period string

// ParsePeriod validates s as a YYYY-MM month key.
func ParsePeriod(s string) (Period, error) {
	if _, err := time.ParseInLocation(PeriodLayout, s, time.UTC); err != nil {
		return "", fmt.Errorf("invalid period %q: expected YYYY-MM", s)
	}
	return Period(s), nil
}

// NewPeriod builds a Period from year and month.
func NewPeriod(year, month int) Period {
	return Period(fmt.Sprintf("%04d-%02d", year, month))
}

// PeriodOf returns the month containing the given time.
func PeriodOf(t time.Time) Period {
	return NewPeriod(t.UTC().Year(), int(t.UTC().Month()))
}

func (p Period) Year() int {
	return Date(p + "-01").Year()
}

func (p Period) Month() int {
	return Date(p + "-01").Month()
}

// Previous returns the immediately preceding month, wrapping January back
// to December of the prior year.
func (p Period) Previous() Period {
	year, month := p.Year(), p.Month()
	month--
	if month < 1 {
		month = 12
		year--
	}
	return NewPeriod(year, month)
}

// DaysInMonth returns the number of days in the period's month.
func (p Period) DaysInMonth() int {
	return time.Date(p.Year(), time.Month(p.Month())+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// DateAt combines the period with a day of the month. Days past the end of
// the month are clamped to the last valid day, so a record anchored on the
// 31st lands on Feb 28/29 when rolled into February.
func (p Period) DateAt(day int) Date {
	if day < 1 {
		day = 1
	}
	if last := p.DaysInMonth(); day > last {
		day = last
	}
	return NewDate(p.Year(), p.Month(), day)
}
