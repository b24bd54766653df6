package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"bilancio/internal/alert"
	"bilancio/internal/core"
	"bilancio/internal/ledger"
	"bilancio/internal/recur"
	"bilancio/internal/report"
	"bilancio/internal/storage"
)

// ConfirmFunc is asked before recurring clones are appended to the log.
// Returning false aborts the apply without touching anything.
type ConfirmFunc func(pending []core.Transaction) bool

// Ledger owns the in-memory transaction log and serializes all mutations.
// The log is loaded from the store once at startup; every mutation updates
// memory first and then commits the whole log back. A failed commit is
// logged and the in-memory state stays authoritative until the next commit
// retries persistence.
type Ledger struct {
	mu    sync.RWMutex
	store storage.Store
	log   []core.Transaction
	newID func() string
}

// NewLedger loads the stored snapshot and returns a ready service.
func NewLedger(ctx context.Context, store storage.Store) (*Ledger, error) {
	txs, err := store.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("load transaction log: %w", err)
	}

	slog.InfoContext(ctx, "Transaction log loaded", "count", len(txs))

	return &Ledger{
		store: store,
		log:   txs,
		newID: uuid.NewString,
	}, nil
}

// Transactions returns a copy of the full log, most recent date first.
func (l *Ledger) Transactions(ctx context.Context) []core.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return ledger.SortByDateDesc(l.log)
}

// Get returns the transaction with the given ID.
func (l *Ledger) Get(ctx context.Context, id string) (core.Transaction, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	for _, tx := range l.log {
		if tx.ID == id {
			return tx, nil
		}
	}
	return core.Transaction{}, fmt.Errorf("transaction %s: %w", id, core.ErrNotFound)
}

// Add validates and appends a new transaction. An empty ID gets a generated
// one; a caller-supplied ID must not collide with an existing entry.
func (l *Ledger) Add(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if tx.ID == "" {
		tx.ID = l.newID()
	}
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("validate transaction: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, existing := range l.log {
		if existing.ID == tx.ID {
			return core.Transaction{}, fmt.Errorf("transaction %s already exists", tx.ID)
		}
	}

	l.log = append(l.log, tx)
	l.commit(ctx)

	slog.InfoContext(ctx, "Transaction added",
		"id", tx.ID,
		"title", tx.Title,
		"amount_cents", tx.Amount.Cents,
		"type", tx.Type,
		"date", tx.Date)

	return tx, nil
}

// Update replaces the transaction whose ID matches tx.ID.
func (l *Ledger) Update(ctx context.Context, tx core.Transaction) (core.Transaction, error) {
	if err := tx.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("validate transaction: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for i, existing := range l.log {
		if existing.ID == tx.ID {
			l.log[i] = tx
			l.commit(ctx)
			slog.InfoContext(ctx, "Transaction updated", "id", tx.ID)
			return tx, nil
		}
	}
	return core.Transaction{}, fmt.Errorf("transaction %s: %w", tx.ID, core.ErrNotFound)
}

// Remove deletes the transaction with the given ID.
func (l *Ledger) Remove(ctx context.Context, id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, existing := range l.log {
		if existing.ID == id {
			l.log = append(l.log[:i], l.log[i+1:]...)
			l.commit(ctx)
			slog.InfoContext(ctx, "Transaction removed", "id", id)
			return nil
		}
	}
	return fmt.Errorf("transaction %s: %w", id, core.ErrNotFound)
}

// TogglePaid flips the settlement flag of the transaction with the given ID
// and returns the updated transaction.
func (l *Ledger) TogglePaid(ctx context.Context, id string) (core.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for i, existing := range l.log {
		if existing.ID == id {
			l.log[i].Paid = !l.log[i].Paid
			l.commit(ctx)
			slog.InfoContext(ctx, "Transaction settlement toggled",
				"id", id, "paid", l.log[i].Paid)
			return l.log[i], nil
		}
	}
	return core.Transaction{}, fmt.Errorf("transaction %s: %w", id, core.ErrNotFound)
}

// Month returns the transactions of the given period together with its
// summary, newest first.
func (l *Ledger) Month(ctx context.Context, period core.Period) ([]core.Transaction, report.Summary) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	txs := ledger.FilterByMonth(l.log, period)
	summary := report.Compute(txs)
	return ledger.SortByDateDesc(txs), summary
}

// Search returns the transactions matching the query, optionally restricted
// to a period, newest first.
func (l *Ledger) Search(ctx context.Context, query string, period core.Period) []core.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	txs := ledger.Search(l.log, query)
	if period != "" {
		txs = ledger.FilterByMonth(txs, period)
	}
	return ledger.SortByDateDesc(txs)
}

// CategoryBreakdown returns the per-category expense totals for a period.
func (l *Ledger) CategoryBreakdown(ctx context.Context, period core.Period) []report.CategoryAmount {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return report.CategoryBreakdown(ledger.FilterByMonth(l.log, period))
}

// AnnualReport returns the settled-only yearly rollup.
func (l *Ledger) AnnualReport(ctx context.Context, year int) report.AnnualReport {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return report.AnnualRollup(l.log, year)
}

// MonthlyFlow returns the month-by-month cash flow of a year, paid or not.
func (l *Ledger) MonthlyFlow(ctx context.Context, year int) [12]report.MonthFlow {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return report.MonthlyFlow(l.log, year)
}

// PendingRecurring returns the fixed transactions from the month before
// target that are still missing in target.
func (l *Ledger) PendingRecurring(ctx context.Context, target core.Period) []core.Transaction {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return recur.Pending(l.log, target)
}

// ApplyRecurring materializes the pending recurring transactions for target
// and appends them, gated by confirm. It returns the appended clones; a
// declined confirmation or an empty pending set returns nil.
func (l *Ledger) ApplyRecurring(ctx context.Context, target core.Period, confirm ConfirmFunc) ([]core.Transaction, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	pending := recur.Pending(l.log, target)
	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending recurring transactions", "period", target)
		return nil, nil
	}

	if confirm != nil && !confirm(pending) {
		slog.InfoContext(ctx, "Recurring apply declined", "period", target, "count", len(pending))
		return nil, nil
	}

	clones := recur.Materialize(pending, target, l.newID)
	l.log = append(l.log, clones...)
	l.commit(ctx)

	slog.InfoContext(ctx, "Recurring transactions applied",
		"period", target, "count", len(clones))

	return clones, nil
}

// Alerts returns up to max payment reminders relative to today.
func (l *Ledger) Alerts(ctx context.Context, today core.Date, horizonDays, max int) []alert.Alert {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return alert.Generate(l.log, today, horizonDays, max)
}

// commit persists the current log. Callers hold l.mu.
func (l *Ledger) commit(ctx context.Context) {
	snapshot := make([]core.Transaction, len(l.log))
	copy(snapshot, l.log)

	if err := l.store.Commit(ctx, snapshot); err != nil {
		slog.ErrorContext(ctx, "Failed to persist transaction log",
			"count", len(snapshot), "error", err)
	}
}
