package report

import (
	"reflect"
	"testing"

	"bilancio/internal/core"
)

func dated(tp core.Type, cents int64, date string, paid bool) core.Transaction {
	return core.Transaction{
		ID:       "x",
		Title:    "t",
		Amount:   core.Money{Cents: cents},
		Type:     tp,
		Category: "General",
		Date:     core.Date(date),
		Paid:     paid,
	}
}

func TestCategoryBreakdown(t *testing.T) {
	txs := []core.Transaction{
		{ID: "1", Title: "Rent", Amount: core.Money{Cents: 100000}, Type: core.Expense, Category: "Housing", Date: "2024-01-05"},
		{ID: "2", Title: "Bulb", Amount: core.Money{Cents: 500}, Type: core.Expense, Category: "Housing", Date: "2024-01-07"},
		{ID: "3", Title: "Bus", Amount: core.Money{Cents: 250}, Type: core.Expense, Category: "Transport", Date: "2024-01-08"},
		{ID: "4", Title: "Salary", Amount: core.Money{Cents: 300000}, Type: core.Income, Category: "Work", Date: "2024-01-25"},
	}
	got := CategoryBreakdown(txs)
	want := []CategoryAmount{
		{Name: "Housing", Amount: core.Money{Cents: 100500}},
		{Name: "Transport", Amount: core.Money{Cents: 250}},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CategoryBreakdown = %+v, want %+v", got, want)
	}
}

func TestCategoryBreakdownEmpty(t *testing.T) {
	if got := CategoryBreakdown(nil); len(got) != 0 {
		t.Errorf("expected empty breakdown, got %+v", got)
	}
}

// The annual rollup counts settled cash only; scheduled records are
// invisible to it.
func TestAnnualRollupSettledOnly(t *testing.T) {
	log := []core.Transaction{
		dated(core.Income, 100000, "2024-01-25", true),
		dated(core.Income, 100000, "2024-02-25", false), // scheduled, must not count
		dated(core.Expense, 40000, "2024-01-05", true),
		dated(core.Expense, 30000, "2024-03-05", true),
		dated(core.Expense, 99999, "2023-12-31", true), // prior year
	}
	r := AnnualRollup(log, 2024)

	if r.Year != 2024 {
		t.Fatalf("Year = %d", r.Year)
	}
	if r.Months[0].Income.Cents != 100000 || r.Months[0].Expense.Cents != 40000 {
		t.Errorf("January = %+v", r.Months[0])
	}
	if r.Months[1].Income.Cents != 0 {
		t.Errorf("unpaid February income counted: %+v", r.Months[1])
	}
	if r.Months[2].Expense.Cents != 30000 {
		t.Errorf("March = %+v", r.Months[2])
	}
	if r.TotalIncome.Cents != 100000 || r.TotalExpense.Cents != 70000 {
		t.Errorf("totals = %d / %d", r.TotalIncome.Cents, r.TotalExpense.Cents)
	}
	for i, m := range r.Months {
		if m.Month != i+1 {
			t.Errorf("month index %d labeled %d", i, m.Month)
		}
	}
}

// The flow view projects everything regardless of settlement.
func TestMonthlyFlowIgnoresPaid(t *testing.T) {
	log := []core.Transaction{
		dated(core.Income, 100000, "2024-02-25", false),
		dated(core.Expense, 60000, "2024-02-05", true),
	}
	flows := MonthlyFlow(log, 2024)

	feb := flows[1]
	if feb.Income.Cents != 100000 || feb.Expense.Cents != 60000 {
		t.Errorf("February = %+v", feb)
	}
	if feb.Balance.Cents != 40000 {
		t.Errorf("February balance = %d, want 40000", feb.Balance.Cents)
	}
	for _, m := range []int{0, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11} {
		if flows[m].Income.Cents != 0 || flows[m].Expense.Cents != 0 {
			t.Errorf("month %d unexpectedly non-zero: %+v", m+1, flows[m])
		}
	}
}
