package storage

import (
	"context"
	"sync"

	"bilancio/internal/core"
)

// MemoryStore keeps the log in process memory. Useful for tests and for
// running without a database file.
type MemoryStore struct {
	mu  sync.RWMutex
	txs []core.Transaction
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Snapshot(ctx context.Context) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]core.Transaction, len(s.txs))
	copy(out, s.txs)
	return out, nil
}

func (s *MemoryStore) Commit(ctx context.Context, txs []core.Transaction) error {
	in := make([]core.Transaction, len(txs))
	copy(in, txs)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.txs = in
	return nil
}
