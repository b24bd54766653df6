package http

import (
	"fmt"

	"bilancio/internal/alert"
	"bilancio/internal/core"
	"bilancio/internal/report"
)

// TransactionDTO is the wire form of a transaction. Amounts travel as
// decimal strings ("80.00") so clients never deal in cents.
type TransactionDTO struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Amount   string `json:"amount"`
	Type     string `json:"type"`
	Category string `json:"category,omitempty"`
	Date     string `json:"date"`
	Paid     bool   `json:"paid"`
	Fixed    bool   `json:"fixed"`
}

func toTransactionDTO(tx core.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:       tx.ID,
		Title:    tx.Title,
		Amount:   tx.Amount.String(),
		Type:     string(tx.Type),
		Category: tx.Category,
		Date:     string(tx.Date),
		Paid:     tx.Paid,
		Fixed:    tx.Fixed,
	}
}

func toTransactionDTOs(txs []core.Transaction) []TransactionDTO {
	out := make([]TransactionDTO, len(txs))
	for i, tx := range txs {
		out[i] = toTransactionDTO(tx)
	}
	return out
}

func (d TransactionDTO) toTransaction() (core.Transaction, error) {
	amount, err := core.ParseMoney(d.Amount)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("amount: %w", err)
	}
	txType, err := core.ParseType(d.Type)
	if err != nil {
		return core.Transaction{}, err
	}
	date, err := core.ParseDate(d.Date)
	if err != nil {
		return core.Transaction{}, err
	}

	return core.Transaction{
		ID:       d.ID,
		Title:    d.Title,
		Amount:   amount,
		Type:     txType,
		Category: d.Category,
		Date:     date,
		Paid:     d.Paid,
		Fixed:    d.Fixed,
	}, nil
}

// SummaryDTO is the wire form of a monthly summary.
type SummaryDTO struct {
	TotalIncome     string `json:"totalIncome"`
	TotalExpense    string `json:"totalExpense"`
	IncomeReceived  string `json:"incomeReceived"`
	ExpensePaid     string `json:"expensePaid"`
	Balance         string `json:"balance"`
	ForecastBalance string `json:"forecastBalance"`
	PercentReceived int    `json:"percentReceived"`
	PercentPaid     int    `json:"percentPaid"`
}

func toSummaryDTO(s report.Summary) SummaryDTO {
	return SummaryDTO{
		TotalIncome:     s.TotalIncome.String(),
		TotalExpense:    s.TotalExpense.String(),
		IncomeReceived:  s.IncomeReceived.String(),
		ExpensePaid:     s.ExpensePaid.String(),
		Balance:         s.Balance.String(),
		ForecastBalance: s.ForecastBalance.String(),
		PercentReceived: s.PercentReceived(),
		PercentPaid:     s.PercentPaid(),
	}
}

// CategoryAmountDTO is one row of a category breakdown.
type CategoryAmountDTO struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

func toCategoryAmountDTOs(rows []report.CategoryAmount) []CategoryAmountDTO {
	out := make([]CategoryAmountDTO, len(rows))
	for i, row := range rows {
		out[i] = CategoryAmountDTO{Name: row.Name, Amount: row.Amount.String()}
	}
	return out
}

// DashboardDTO bundles a month's transactions with its summary and the
// expense breakdown.
type DashboardDTO struct {
	Period       string              `json:"period"`
	Summary      SummaryDTO          `json:"summary"`
	ByCategory   []CategoryAmountDTO `json:"byCategory"`
	Transactions []TransactionDTO    `json:"transactions"`
}

// MonthCashDTO is one month of the settled-only annual report.
type MonthCashDTO struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
}

// AnnualReportDTO is the wire form of the settled-only yearly rollup.
type AnnualReportDTO struct {
	Year         int              `json:"year"`
	Months       [12]MonthCashDTO `json:"months"`
	TotalIncome  string           `json:"totalIncome"`
	TotalExpense string           `json:"totalExpense"`
}

func toAnnualReportDTO(r report.AnnualReport) AnnualReportDTO {
	dto := AnnualReportDTO{
		Year:         r.Year,
		TotalIncome:  r.TotalIncome.String(),
		TotalExpense: r.TotalExpense.String(),
	}
	for i, m := range r.Months {
		dto.Months[i] = MonthCashDTO{Income: m.Income.String(), Expense: m.Expense.String()}
	}
	return dto
}

// MonthFlowDTO is one month of the cash-flow report.
type MonthFlowDTO struct {
	Income  string `json:"income"`
	Expense string `json:"expense"`
	Balance string `json:"balance"`
}

func toMonthFlowDTOs(flow [12]report.MonthFlow) [12]MonthFlowDTO {
	var out [12]MonthFlowDTO
	for i, m := range flow {
		out[i] = MonthFlowDTO{
			Income:  m.Income.String(),
			Expense: m.Expense.String(),
			Balance: m.Balance.String(),
		}
	}
	return out
}

// AlertDTO is the wire form of a payment reminder.
type AlertDTO struct {
	TransactionID string `json:"transactionId"`
	Title         string `json:"title"`
	Amount        string `json:"amount"`
	Date          string `json:"date"`
	Severity      string `json:"severity"`
	Message       string `json:"message"`
}

func toAlertDTOs(alerts []alert.Alert) []AlertDTO {
	out := make([]AlertDTO, len(alerts))
	for i, a := range alerts {
		out[i] = AlertDTO{
			TransactionID: a.TransactionID,
			Title:         a.Title,
			Amount:        a.Amount.String(),
			Date:          string(a.Date),
			Severity:      string(a.Severity),
			Message:       a.Message,
		}
	}
	return out
}
