package report

import (
	"sort"

	"bilancio/internal/core"
	"bilancio/internal/ledger"
)

// CategoryAmount is one row of the per-category expense breakdown.
type CategoryAmount struct {
	Name   string
	Amount core.Money
}

// MonthCash is one month of settled cash movement in an annual report.
type MonthCash struct {
	Month   int
	Income  core.Money
	Expense core.Money
}

// AnnualReport aggregates settled-only cash flow per month across a year.
type AnnualReport struct {
	Year         int
	Months       [12]MonthCash
	TotalIncome  core.Money
	TotalExpense core.Money
}

// MonthFlow is one month of projected flow, settled or not.
type MonthFlow struct {
	Month   int
	Income  core.Money
	Expense core.Money
	Balance core.Money
}

// CategoryBreakdown sums expense amounts per distinct category. Income
// records are ignored. The result is sorted by descending amount so callers
// get a deterministic display order.
func CategoryBreakdown(txs []core.Transaction) []CategoryAmount {
	totals := make(map[string]int64)
	for _, tx := range txs {
		if tx.Type == core.Expense {
			totals[tx.Category] += tx.Amount.Cents
		}
	}
	out := make([]CategoryAmount, 0, len(totals))
	for name, cents := range totals {
		out = append(out, CategoryAmount{Name: name, Amount: core.Money{Cents: cents}})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Amount.Cents != out[j].Amount.Cents {
			return out[i].Amount.Cents > out[j].Amount.Cents
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// AnnualRollup aggregates one year of REALIZED cash flow: only settled
// transactions count. This intentionally diverges from MonthlyFlow, which
// projects all scheduled activity; the two answer different questions and
// must not be merged.
func AnnualRollup(log []core.Transaction, year int) AnnualReport {
	r := AnnualReport{Year: year}
	for m := range r.Months {
		r.Months[m].Month = m + 1
	}
	for _, tx := range ledger.FilterByYear(log, year) {
		if !tx.Paid {
			continue
		}
		m := tx.Date.Month()
		if m < 1 || m > 12 {
			continue
		}
		switch tx.Type {
		case core.Income:
			r.Months[m-1].Income = r.Months[m-1].Income.Add(tx.Amount)
			r.TotalIncome = r.TotalIncome.Add(tx.Amount)
		case core.Expense:
			r.Months[m-1].Expense = r.Months[m-1].Expense.Add(tx.Amount)
			r.TotalExpense = r.TotalExpense.Add(tx.Amount)
		}
	}
	return r
}

// MonthlyFlow aggregates one year of PROJECTED flow per month, with no
// settlement restriction, for the multi-month bar and flow views.
func MonthlyFlow(log []core.Transaction, year int) [12]MonthFlow {
	var flows [12]MonthFlow
	for m := range flows {
		flows[m].Month = m + 1
	}
	for _, tx := range ledger.FilterByYear(log, year) {
		m := tx.Date.Month()
		if m < 1 || m > 12 {
			continue
		}
		switch tx.Type {
		case core.Income:
			flows[m-1].Income = flows[m-1].Income.Add(tx.Amount)
		case core.Expense:
			flows[m-1].Expense = flows[m-1].Expense.Add(tx.Amount)
		}
	}
	for m := range flows {
		flows[m].Balance = flows[m].Income.Sub(flows[m].Expense)
	}
	return flows
}
