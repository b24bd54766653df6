// Package report computes derived financial summaries from the flat
// transaction log. Nothing here is ever cached: every figure is recomputed
// from scratch on each call, one linear pass per operation.
package report

import "bilancio/internal/core"

// Summary holds the derived figures for one period's transactions.
//
// Balance counts settled records only (money that actually moved);
// ForecastBalance counts everything regardless of settlement. The two
// coincide exactly when every record in the period is settled.
type Summary struct {
	TotalIncome     core.Money
	TotalExpense    core.Money
	IncomeReceived  core.Money
	ExpensePaid     core.Money
	Balance         core.Money
	ForecastBalance core.Money
}

// Compute derives the summary for the given (already period-filtered)
// transactions.
func Compute(txs []core.Transaction) Summary {
	var s Summary
	for _, tx := range txs {
		switch tx.Type {
		case core.Income:
			s.TotalIncome = s.TotalIncome.Add(tx.Amount)
			if tx.Paid {
				s.IncomeReceived = s.IncomeReceived.Add(tx.Amount)
			}
		case core.Expense:
			s.TotalExpense = s.TotalExpense.Add(tx.Amount)
			if tx.Paid {
				s.ExpensePaid = s.ExpensePaid.Add(tx.Amount)
			}
		}
	}
	s.Balance = s.IncomeReceived.Sub(s.ExpensePaid)
	s.ForecastBalance = s.TotalIncome.Sub(s.TotalExpense)
	return s
}

// PercentReceived returns how much of the period's income has actually
// arrived, as a whole percentage.
func (s Summary) PercentReceived() int {
	return percent(s.IncomeReceived.Cents, s.TotalIncome.Cents)
}

// PercentPaid returns how much of the period's expenses have actually been
// disbursed, as a whole percentage.
func (s Summary) PercentPaid() int {
	return percent(s.ExpensePaid.Cents, s.TotalExpense.Cents)
}

// percent computes part/total as a rounded whole percentage. A zero total
// is treated as 1 so that zero-activity periods read as 0% instead of
// dividing by zero.
func percent(part, total int64) int {
	if total == 0 {
		total = 1
	}
	return int((part*100 + total/2) / total)
}
