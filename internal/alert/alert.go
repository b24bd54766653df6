// Package alert derives payment reminders from unpaid expenses.
package alert

import (
	"fmt"
	"sort"

	"bilancio/internal/core"
)

// Severity classifies how urgent an alert is.
type Severity string

const (
	SeverityOverdue Severity = "overdue"
	SeverityDueSoon Severity = "dueSoon"
)

const (
	DefaultHorizonDays = 3
	DefaultMaxAlerts   = 3
)

// Alert is a single reminder for an unpaid expense.
type Alert struct {
	TransactionID string
	Title         string
	Amount        core.Money
	Date          core.Date
	Severity      Severity
	Message       string
}

// Generate scans the log for unpaid expenses and produces at most max
// alerts relative to today. An expense dated before today is overdue; one
// dated within horizonDays from today (inclusive) is due soon; anything
// further out stays silent. Income and settled transactions never alert.
//
// The result is ordered by urgency: overdue before due soon, then by
// ascending date, then by transaction ID to keep ties stable.
func Generate(log []core.Transaction, today core.Date, horizonDays, max int) []Alert {
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	if max <= 0 {
		max = DefaultMaxAlerts
	}
	horizon := core.DateOf(today.Time().AddDate(0, 0, horizonDays))

	var alerts []Alert
	for _, tx := range log {
		if tx.Type != core.Expense || tx.Paid {
			continue
		}
		switch {
		case tx.Date.Before(today):
			alerts = append(alerts, Alert{
				TransactionID: tx.ID,
				Title:         tx.Title,
				Amount:        tx.Amount,
				Date:          tx.Date,
				Severity:      SeverityOverdue,
				Message:       fmt.Sprintf("%s (%s) was due on %s", tx.Title, tx.Amount, tx.Date),
			})
		case !horizon.Before(tx.Date):
			alerts = append(alerts, Alert{
				TransactionID: tx.ID,
				Title:         tx.Title,
				Amount:        tx.Amount,
				Date:          tx.Date,
				Severity:      SeverityDueSoon,
				Message:       fmt.Sprintf("%s (%s) is due on %s", tx.Title, tx.Amount, tx.Date),
			})
		}
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		if alerts[i].Severity != alerts[j].Severity {
			return alerts[i].Severity == SeverityOverdue
		}
		if alerts[i].Date != alerts[j].Date {
			return alerts[i].Date.Before(alerts[j].Date)
		}
		return alerts[i].TransactionID < alerts[j].TransactionID
	})

	if len(alerts) > max {
		alerts = alerts[:max]
	}
	return alerts
}
