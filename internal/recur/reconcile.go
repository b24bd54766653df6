// Package recur detects fixed transactions from the previous month that are
// missing in a target month and materializes clones for it.
//
// The reconciler is advisory: it only proposes the pending set. Appending
// the clones to the log is a separate, explicitly confirmed action owned by
// the caller.
package recur

import (
	"bilancio/internal/core"
	"bilancio/internal/ledger"
)

// MatchFunc decides whether an existing target-month transaction counts as
// the counterpart of a previous-month candidate. Swapping it changes the
// duplicate-detection strategy without touching the reconciliation flow.
type MatchFunc func(candidate, existing core.Transaction) bool

// DefaultMatch matches on the exact (title, amount, type) triple. Category,
// day of month and the fixed flag deliberately do not participate.
func DefaultMatch(candidate, existing core.Transaction) bool {
	return candidate.Title == existing.Title &&
		candidate.Amount == existing.Amount &&
		candidate.Type == existing.Type
}

// Pending returns the fixed transactions from the month preceding target
// that have no counterpart among ANY of target's transactions, using
// DefaultMatch.
//
// Once the clones for a period have been appended, a second call finds them
// as counterparts and returns nothing, so reconciliation is idempotent.
func Pending(log []core.Transaction, target core.Period) []core.Transaction {
	return PendingFunc(log, target, DefaultMatch)
}

// PendingFunc is Pending with a caller-supplied match predicate.
func PendingFunc(log []core.Transaction, target core.Period, match MatchFunc) []core.Transaction {
	previous := target.Previous()

	var candidates []core.Transaction
	for _, tx := range ledger.FilterByMonth(log, previous) {
		if tx.Fixed {
			candidates = append(candidates, tx)
		}
	}
	existing := ledger.FilterByMonth(log, target)

	var pending []core.Transaction
	for _, cand := range candidates {
		found := false
		for _, ex := range existing {
			if match(cand, ex) {
				found = true
				break
			}
		}
		if !found {
			pending = append(pending, cand)
		}
	}
	return pending
}

// Materialize produces the concrete clones for the target month. Each clone
// gets a fresh identifier from newID, keeps title, amount, type, category
// and the fixed flag, lands on the source's day of month (clamped to the
// target month's length), and starts unsettled: a rolled-forward obligation
// is never pre-paid.
func Materialize(pending []core.Transaction, target core.Period, newID func() string) []core.Transaction {
	clones := make([]core.Transaction, 0, len(pending))
	for _, src := range pending {
		clone := src
		clone.ID = newID()
		clone.Date = target.DateAt(src.Date.Day())
		clone.Paid = false
		clones = append(clones, clone)
	}
	return clones
}
