package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	Income  Type = "income"
	Expense Type = "expense"
)

// DateLayout is the canonical storage form for calendar dates.
const DateLayout = "2006-01-02"

type (
	// Type carries the direction of a transaction; amounts are always positive.
	Type string

	// Date is a calendar date in canonical YYYY-MM-DD form. The string form
	// is the source of truth: it sorts lexicographically in date order and
	// supports prefix matching by month (YYYY-MM) or year (YYYY).
	Date string

	Money struct {
		Cents int64
	}

	// Transaction is a single income or expense record. It is immutable once
	// created; edits replace the record wholesale.
	Transaction struct {
		ID       string
		Title    string
		Amount   Money
		Type     Type
		Category string
		Date     Date
		Paid     bool
		Fixed    bool
	}
)

var (
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidDate   = errors.New("invalid date")
	ErrInvalidType   = errors.New("invalid transaction type")
	ErrEmptyTitle    = errors.New("empty title")
	ErrEmptyID       = errors.New("empty id")
	ErrNotFound      = errors.New("transaction not found")
)

// IsValid reports whether the type is one of the two known directions.
func (t Type) IsValid() bool {
	return t == Income || t == Expense
}

// ParseType normalizes and validates a transaction type string.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidType, s)
	}
	return t, nil
}

// ParseDate validates s against the canonical layout and returns it as a Date.
// Parsing is pinned to UTC so a date never shifts across timezones.
func ParseDate(s string) (Date, error) {
	if _, err := time.ParseInLocation(DateLayout, s, time.UTC); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return Date(s), nil
}

// NewDate builds a canonical Date from year, month and day.
func NewDate(year, month, day int) Date {
	return Date(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC).Format(DateLayout))
}

// DateOf converts a wall-clock time to its calendar date.
func DateOf(t time.Time) Date {
	return Date(t.UTC().Format(DateLayout))
}

func (d Date) Validate() error {
	_, err := ParseDate(string(d))
	return err
}

// Time returns the date at midnight UTC. Invalid dates yield the zero time.
func (d Date) Time() time.Time {
	t, _ := time.ParseInLocation(DateLayout, string(d), time.UTC)
	return t
}

// Year returns the calendar year, or 0 for a malformed date.
func (d Date) Year() int {
	if len(d) < 4 {
		return 0
	}
	y, _ := strconv.Atoi(string(d[:4]))
	return y
}

// Month returns the calendar month 1-12, or 0 for a malformed date.
func (d Date) Month() int {
	if len(d) < 7 {
		return 0
	}
	m, _ := strconv.Atoi(string(d[5:7]))
	return m
}

// Day returns the day of the month, or 0 for a malformed date.
func (d Date) Day() int {
	if len(d) < 10 {
		return 0
	}
	day, _ := strconv.Atoi(string(d[8:10]))
	return day
}

// Before reports whether d falls strictly before other. Canonical dates
// compare correctly as plain strings.
func (d Date) Before(other Date) bool {
	return string(d) < string(other)
}

// InPeriod reports whether the date falls inside the given month.
func (d Date) InPeriod(p Period) bool {
	return strings.HasPrefix(string(d), string(p))
}

// InYear reports whether the date falls inside the given calendar year.
func (d Date) InYear(year int) bool {
	return strings.HasPrefix(string(d), fmt.Sprintf("%04d", year))
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Validate checks the data-model invariants. The core assumes every
// Transaction it receives has already passed this at the boundary.
func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return ErrEmptyID
	}
	if strings.TrimSpace(t.Title) == "" {
		return ErrEmptyTitle
	}
	if len(t.Title) > 200 {
		return errors.New("title too long (max 200 characters)")
	}
	if err := t.Amount.Validate(); err != nil {
		return err
	}
	if !t.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, string(t.Type))
	}
	return t.Date.Validate()
}
