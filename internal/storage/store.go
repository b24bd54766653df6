// Package storage persists the transaction log. The log is small enough to
// live fully in memory, so stores expose whole-log snapshot and commit
// operations instead of per-row CRUD.
package storage

import (
	"context"

	"bilancio/internal/core"
)

// Store loads and saves the complete transaction log.
type Store interface {
	// Snapshot returns every stored transaction. A fresh store returns an
	// empty log, not an error, and implementations recover from corrupt or
	// unreadable data by logging and returning an empty log.
	Snapshot(ctx context.Context) ([]core.Transaction, error)

	// Commit replaces the stored log with txs atomically.
	Commit(ctx context.Context, txs []core.Transaction) error
}
