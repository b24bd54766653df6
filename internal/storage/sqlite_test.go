package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "bilancio.db")
	store, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("create sqlite store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("close store: %v", err)
		}
	})
	return store
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	got, err := store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot of fresh store: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("fresh store returned %d transactions, want 0", len(got))
	}

	want := sampleTxs()
	if err := store.Commit(ctx, want); err != nil {
		t.Fatalf("commit: %v", err)
	}

	got, err = store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("got %d transactions, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("transaction %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestSQLiteStoreCommitReplaces(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	txs := sampleTxs()
	if err := store.Commit(ctx, txs); err != nil {
		t.Fatalf("first commit: %v", err)
	}

	txs[1].Paid = true
	txs = txs[:2]
	if err := store.Commit(ctx, txs); err != nil {
		t.Fatalf("second commit: %v", err)
	}

	got, err := store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d transactions, want 2", len(got))
	}
	if !got[1].Paid {
		t.Error("updated paid flag not persisted")
	}
}

func TestSQLiteStoreSnapshotRecoversFromCorruptData(t *testing.T) {
	ctx := context.Background()
	store := newTestSQLiteStore(t)

	if err := store.Commit(ctx, sampleTxs()); err != nil {
		t.Fatalf("commit: %v", err)
	}

	// A non-numeric amount makes row scanning fail
	if _, err := store.db.ExecContext(ctx, `UPDATE transactions SET amount_cents = 'garbage'`); err != nil {
		t.Fatalf("corrupt table: %v", err)
	}

	got, err := store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot of corrupt store: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d transactions from corrupt log, want 0", len(got))
	}
}

func TestSQLiteStoreReopen(t *testing.T) {
	ctx := context.Background()
	dbPath := filepath.Join(t.TempDir(), "bilancio.db")

	first, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("create store: %v", err)
	}
	if err := first.Commit(ctx, sampleTxs()); err != nil {
		t.Fatalf("commit: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	second, err := NewSQLiteStore(dbPath)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer second.Close()

	got, err := second.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot after reopen: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("got %d transactions after reopen, want 2", len(got))
	}
}
