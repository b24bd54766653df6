package services

import (
	"context"
	"errors"
	"testing"

	"bilancio/internal/core"
	"bilancio/internal/storage"
)

func newTestLedger(t *testing.T, seed ...core.Transaction) (*Ledger, *storage.MemoryStore) {
	t.Helper()
	ctx := context.Background()

	store := storage.NewMemoryStore()
	if len(seed) > 0 {
		if err := store.Commit(ctx, seed); err != nil {
			t.Fatalf("seed store: %v", err)
		}
	}

	l, err := NewLedger(ctx, store)
	if err != nil {
		t.Fatalf("create ledger: %v", err)
	}
	return l, store
}

func validTx(id, title string, cents int64, typ core.Type, date string) core.Transaction {
	return core.Transaction{
		ID:       id,
		Title:    title,
		Amount:   core.Money{Cents: cents},
		Type:     typ,
		Category: "Home",
		Date:     core.Date(date),
	}
}

func TestLedgerAddAndGet(t *testing.T) {
	ctx := context.Background()
	l, store := newTestLedger(t)

	added, err := l.Add(ctx, validTx("", "Rent", 80000, core.Expense, "2024-03-05"))
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if added.ID == "" {
		t.Fatal("add did not assign an ID")
	}

	got, err := l.Get(ctx, added.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Rent" {
		t.Errorf("got title %q, want Rent", got.Title)
	}

	// The add must have been persisted
	persisted, err := store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(persisted) != 1 || persisted[0].ID != added.ID {
		t.Errorf("persisted log = %+v, want the added transaction", persisted)
	}
}

func TestLedgerAddRejectsInvalid(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t)

	_, err := l.Add(ctx, validTx("", "", 80000, core.Expense, "2024-03-05"))
	if !errors.Is(err, core.ErrEmptyTitle) {
		t.Errorf("add error = %v, want ErrEmptyTitle", err)
	}

	_, err = l.Add(ctx, validTx("", "Rent", 0, core.Expense, "2024-03-05"))
	if !errors.Is(err, core.ErrInvalidAmount) {
		t.Errorf("add error = %v, want ErrInvalidAmount", err)
	}
}

func TestLedgerAddRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t, validTx("dup", "Rent", 80000, core.Expense, "2024-03-05"))

	if _, err := l.Add(ctx, validTx("dup", "Other", 100, core.Expense, "2024-03-06")); err == nil {
		t.Error("add with duplicate ID succeeded, want error")
	}
}

func TestLedgerUpdate(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t, validTx("1", "Rent", 80000, core.Expense, "2024-03-05"))

	updated := validTx("1", "Rent March", 82000, core.Expense, "2024-03-06")
	if _, err := l.Update(ctx, updated); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := l.Get(ctx, "1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Rent March" || got.Amount.Cents != 82000 {
		t.Errorf("got %+v, want updated fields", got)
	}

	_, err = l.Update(ctx, validTx("missing", "X", 100, core.Expense, "2024-03-05"))
	if !errors.Is(err, core.ErrNotFound) {
		t.Errorf("update missing = %v, want ErrNotFound", err)
	}
}

func TestLedgerRemove(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t, validTx("1", "Rent", 80000, core.Expense, "2024-03-05"))

	if err := l.Remove(ctx, "1"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, err := l.Get(ctx, "1"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("get after remove = %v, want ErrNotFound", err)
	}
	if err := l.Remove(ctx, "1"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("second remove = %v, want ErrNotFound", err)
	}
}

func TestLedgerTogglePaid(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t, validTx("1", "Rent", 80000, core.Expense, "2024-03-05"))

	got, err := l.TogglePaid(ctx, "1")
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !got.Paid {
		t.Error("first toggle: paid = false, want true")
	}

	got, err = l.TogglePaid(ctx, "1")
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if got.Paid {
		t.Error("second toggle: paid = true, want false")
	}

	if _, err := l.TogglePaid(ctx, "missing"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("toggle missing = %v, want ErrNotFound", err)
	}
}

func TestLedgerMonth(t *testing.T) {
	ctx := context.Background()
	salary := validTx("s", "Salary", 100000, core.Income, "2024-03-01")
	salary.Paid = true
	rent := validTx("r", "Rent", 40000, core.Expense, "2024-03-05")
	groceries := validTx("g", "Groceries", 20000, core.Expense, "2024-03-08")
	groceries.Paid = true
	other := validTx("o", "Old rent", 40000, core.Expense, "2024-02-05")

	l, _ := newTestLedger(t, salary, rent, groceries, other)

	txs, summary := l.Month(ctx, core.Period("2024-03"))
	if len(txs) != 3 {
		t.Fatalf("got %d transactions, want 3", len(txs))
	}
	if txs[0].ID != "g" {
		t.Errorf("first transaction = %s, want newest (g)", txs[0].ID)
	}
	if summary.Balance.Cents != 80000 {
		t.Errorf("balance = %d, want 80000", summary.Balance.Cents)
	}
	if summary.ForecastBalance.Cents != 40000 {
		t.Errorf("forecast = %d, want 40000", summary.ForecastBalance.Cents)
	}
}

func TestLedgerNewestFirstOrder(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t,
		validTx("early", "Rent", 80000, core.Expense, "2024-03-01"),
		validTx("late", "Rent", 80000, core.Expense, "2024-03-28"),
	)

	all := l.Transactions(ctx)
	if len(all) != 2 || all[0].ID != "late" {
		t.Errorf("Transactions first = %s, want late", all[0].ID)
	}

	month, _ := l.Month(ctx, core.Period("2024-03"))
	if len(month) != 2 || month[0].ID != "late" {
		t.Errorf("Month first = %s, want late", month[0].ID)
	}

	found := l.Search(ctx, "rent", "")
	if len(found) != 2 || found[0].ID != "late" {
		t.Errorf("Search first = %s, want late", found[0].ID)
	}
}

func TestLedgerApplyRecurring(t *testing.T) {
	ctx := context.Background()
	rent := validTx("rent-jan", "Rent", 80000, core.Expense, "2024-01-05")
	rent.Fixed = true
	rent.Paid = true

	l, store := newTestLedger(t, rent)

	pending := l.PendingRecurring(ctx, core.Period("2024-02"))
	if len(pending) != 1 {
		t.Fatalf("got %d pending, want 1", len(pending))
	}

	clones, err := l.ApplyRecurring(ctx, core.Period("2024-02"), func(p []core.Transaction) bool {
		return true
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if len(clones) != 1 {
		t.Fatalf("got %d clones, want 1", len(clones))
	}
	if clones[0].Date != core.Date("2024-02-05") || clones[0].Paid {
		t.Errorf("clone = %+v, want 2024-02-05 unpaid", clones[0])
	}

	// Idempotent: nothing pending after apply
	if again := l.PendingRecurring(ctx, core.Period("2024-02")); len(again) != 0 {
		t.Errorf("pending after apply = %+v, want none", again)
	}

	persisted, err := store.Snapshot(ctx)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(persisted) != 2 {
		t.Errorf("persisted %d transactions, want 2", len(persisted))
	}
}

func TestLedgerApplyRecurringDeclined(t *testing.T) {
	ctx := context.Background()
	rent := validTx("rent-jan", "Rent", 80000, core.Expense, "2024-01-05")
	rent.Fixed = true

	l, _ := newTestLedger(t, rent)

	clones, err := l.ApplyRecurring(ctx, core.Period("2024-02"), func(p []core.Transaction) bool {
		return false
	})
	if err != nil {
		t.Fatalf("apply: %v", err)
	}
	if clones != nil {
		t.Errorf("declined apply returned %+v, want nil", clones)
	}
	if len(l.Transactions(ctx)) != 1 {
		t.Error("declined apply changed the log")
	}
}

func TestLedgerAlerts(t *testing.T) {
	ctx := context.Background()
	late := validTx("late", "Electricity", 9000, core.Expense, "2024-03-09")
	soon := validTx("soon", "Water", 4000, core.Expense, "2024-03-12")

	l, _ := newTestLedger(t, late, soon)

	alerts := l.Alerts(ctx, core.Date("2024-03-10"), 3, 3)
	if len(alerts) != 2 {
		t.Fatalf("got %d alerts, want 2", len(alerts))
	}
	if alerts[0].TransactionID != "late" {
		t.Errorf("first alert = %s, want the overdue one", alerts[0].TransactionID)
	}
}

func TestLedgerSearch(t *testing.T) {
	ctx := context.Background()
	l, _ := newTestLedger(t,
		validTx("1", "Rent", 80000, core.Expense, "2024-03-05"),
		validTx("2", "Groceries", 20000, core.Expense, "2024-03-08"),
		validTx("3", "Rent", 80000, core.Expense, "2024-02-05"),
	)

	got := l.Search(ctx, "rent", core.Period("2024-03"))
	if len(got) != 1 || got[0].ID != "1" {
		t.Errorf("search = %+v, want only March rent", got)
	}

	all := l.Search(ctx, "rent", "")
	if len(all) != 2 {
		t.Errorf("unscoped search returned %d, want 2", len(all))
	}
}
