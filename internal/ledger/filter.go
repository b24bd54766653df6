// Package ledger provides pure filtering, grouping and search over the
// transaction log. Every function returns a fresh slice and never mutates
// its input; month filtering and search compose by intersection.
package ledger

import (
	"sort"
	"strings"

	"bilancio/internal/core"
)

// FilterByMonth returns the transactions whose date falls inside the given
// month, preserving input order.
func FilterByMonth(log []core.Transaction, p core.Period) []core.Transaction {
	out := make([]core.Transaction, 0, len(log))
	for _, tx := range log {
		if tx.Date.InPeriod(p) {
			out = append(out, tx)
		}
	}
	return out
}

// FilterByYear returns the transactions whose date falls inside the given
// calendar year, preserving input order.
func FilterByYear(log []core.Transaction, year int) []core.Transaction {
	out := make([]core.Transaction, 0, len(log))
	for _, tx := range log {
		if tx.Date.InYear(year) {
			out = append(out, tx)
		}
	}
	return out
}

// FilterByType returns the transactions of the given direction.
func FilterByType(log []core.Transaction, tp core.Type) []core.Transaction {
	out := make([]core.Transaction, 0, len(log))
	for _, tx := range log {
		if tx.Type == tp {
			out = append(out, tx)
		}
	}
	return out
}

// GroupByDate maps each date to the transactions on that date, keeping the
// caller-supplied ordering within each group.
func GroupByDate(txs []core.Transaction) map[core.Date][]core.Transaction {
	groups := make(map[core.Date][]core.Transaction)
	for _, tx := range txs {
		groups[tx.Date] = append(groups[tx.Date], tx)
	}
	return groups
}

// Search returns the transactions whose title or category contains term,
// case-insensitively. An empty term matches everything.
func Search(txs []core.Transaction, term string) []core.Transaction {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return append([]core.Transaction(nil), txs...)
	}
	out := make([]core.Transaction, 0, len(txs))
	for _, tx := range txs {
		if strings.Contains(strings.ToLower(tx.Title), term) ||
			strings.Contains(strings.ToLower(tx.Category), term) {
			out = append(out, tx)
		}
	}
	return out
}

// SortByDateDesc returns a copy sorted newest first, the default display
// order. The sort is stable so same-day records keep their log order.
func SortByDateDesc(txs []core.Transaction) []core.Transaction {
	out := append([]core.Transaction(nil), txs...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[j].Date.Before(out[i].Date)
	})
	return out
}
