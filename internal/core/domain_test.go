package core

import (
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"valid", "2024-03-10", false},
		{"leap day", "2024-02-29", false},
		{"non-leap feb 29", "2023-02-29", true},
		{"month out of range", "2024-13-01", true},
		{"day out of range", "2024-01-32", true},
		{"wrong layout", "10/03/2024", true},
		{"missing day", "2024-03", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidDate) {
				t.Errorf("ParseDate(%q) error = %v, want ErrInvalidDate", tt.in, err)
			}
		})
	}
}

func TestDateParts(t *testing.T) {
	d := NewDate(2024, 7, 5)
	if d != "2024-07-05" {
		t.Fatalf("NewDate = %q", d)
	}
	if d.Year() != 2024 || d.Month() != 7 || d.Day() != 5 {
		t.Errorf("parts = %d-%d-%d, want 2024-7-5", d.Year(), d.Month(), d.Day())
	}
	if !d.InPeriod("2024-07") || d.InPeriod("2024-06") {
		t.Errorf("InPeriod mismatch for %q", d)
	}
	if !d.InYear(2024) || d.InYear(2023) {
		t.Errorf("InYear mismatch for %q", d)
	}
	if !Date("2024-07-04").Before(d) || d.Before(d) {
		t.Errorf("Before mismatch")
	}
}

func TestDateOf(t *testing.T) {
	got := DateOf(time.Date(2024, 3, 10, 23, 30, 0, 0, time.UTC))
	if got != "2024-03-10" {
		t.Errorf("DateOf = %q, want 2024-03-10", got)
	}
}

func TestParseType(t *testing.T) {
	if tp, err := ParseType(" Income "); err != nil || tp != Income {
		t.Errorf("ParseType(Income) = %v, %v", tp, err)
	}
	if _, err := ParseType("transfer"); !errors.Is(err, ErrInvalidType) {
		t.Errorf("ParseType(transfer) error = %v, want ErrInvalidType", err)
	}
}

func TestTransactionValidate(t *testing.T) {
	valid := Transaction{
		ID:       "tx-1",
		Title:    "Rent",
		Amount:   Money{Cents: 100000},
		Type:     Expense,
		Category: "Housing",
		Date:     "2024-01-05",
		Paid:     true,
		Fixed:    true,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(*Transaction)
		want   error
	}{
		{"empty id", func(tx *Transaction) { tx.ID = "  " }, ErrEmptyID},
		{"empty title", func(tx *Transaction) { tx.Title = "" }, ErrEmptyTitle},
		{"zero amount", func(tx *Transaction) { tx.Amount.Cents = 0 }, ErrInvalidAmount},
		{"negative amount", func(tx *Transaction) { tx.Amount.Cents = -100 }, ErrInvalidAmount},
		{"bad type", func(tx *Transaction) { tx.Type = "transfer" }, ErrInvalidType},
		{"bad date", func(tx *Transaction) { tx.Date = "2024-02-30" }, ErrInvalidDate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := valid
			tt.mutate(&tx)
			if err := tx.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}
