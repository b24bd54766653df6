package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"bilancio/internal/alert"
	"bilancio/internal/cli"
	"bilancio/internal/config"
	"bilancio/internal/core"
	"bilancio/internal/ledger"
	"bilancio/internal/report"
	"bilancio/internal/services"
)

type Params struct {
	Month  string `descr:"Month to report on (YYYY-MM), defaults to the current month" optional:"true"`
	Year   int    `descr:"Render the annual report for this year instead of a month" optional:"true"`
	Search string `descr:"Filter transactions by title or category" optional:"true"`
	JSON   bool   `descr:"Emit JSON instead of tables" optional:"true"`
}

func main() {
	boa.NewCmdT[Params]("bilancio-report").
		WithShort("Render monthly and annual reports from the transaction log").
		WithLong("Reads the configured store and prints the monthly dashboard (summary, category breakdown, transactions) or, with --year, the settled-only annual rollup.").
		WithRunFunc(func(params *Params) {
			logger := cli.SetupLogger()
			cli.LoadEnvFile()
			cfg := cli.LoadAndValidateConfig(logger)

			ctx := context.Background()
			svc, cleanup := cli.InitLedger(ctx, logger, cfg)
			defer func() { _ = cleanup() }()

			if params.Year != 0 {
				runAnnual(ctx, svc, params)
				return
			}
			runMonthly(ctx, svc, cfg, params)
		}).
		Run()
}

func runMonthly(ctx context.Context, svc *services.Ledger, cfg *config.Config, params *Params) {
	period := core.PeriodOf(time.Now())
	if params.Month != "" {
		p, err := core.ParsePeriod(params.Month)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid month %q: %v\n", params.Month, err)
			os.Exit(1)
		}
		period = p
	}

	txs, summary := svc.Month(ctx, period)
	if params.Search != "" {
		txs = ledger.Search(txs, params.Search)
	}
	breakdown := svc.CategoryBreakdown(ctx, period)
	alerts := svc.Alerts(ctx, core.DateOf(time.Now()), cfg.AlertHorizonDays, cfg.AlertMaxCount)

	if params.JSON {
		emitJSON(struct {
			Period       string                  `json:"period"`
			Summary      report.Summary          `json:"summary"`
			ByCategory   []report.CategoryAmount `json:"byCategory"`
			Transactions []core.Transaction      `json:"transactions"`
			Alerts       []alert.Alert           `json:"alerts"`
		}{string(period), summary, breakdown, txs, alerts})
		return
	}

	fmt.Printf("Report for %s\n\n", period)
	printTransactions(txs)
	printSummary(summary)
	printBreakdown(breakdown)
	printAlerts(alerts)
}

func runAnnual(ctx context.Context, svc *services.Ledger, params *Params) {
	annual := svc.AnnualReport(ctx, params.Year)
	flow := svc.MonthlyFlow(ctx, params.Year)

	if params.JSON {
		emitJSON(struct {
			Annual report.AnnualReport  `json:"annual"`
			Flow   [12]report.MonthFlow `json:"flow"`
		}{annual, flow})
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Month", "Settled In", "Settled Out", "Flow In", "Flow Out", "Flow Balance"})
	for i := 0; i < 12; i++ {
		t.AppendRow(table.Row{
			time.Month(i + 1).String(),
			annual.Months[i].Income,
			annual.Months[i].Expense,
			flow[i].Income,
			flow[i].Expense,
			flow[i].Balance,
		})
	}
	t.AppendSeparator()
	t.AppendFooter(table.Row{
		text.Bold.Sprint("Total"),
		text.Bold.Sprint(annual.TotalIncome),
		text.Bold.Sprint(annual.TotalExpense),
		"", "", "",
	})
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.Style().Format.Footer = text.FormatDefault
	t.Render()
}

func printTransactions(txs []core.Transaction) {
	if len(txs) == 0 {
		fmt.Println("No transactions.")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Date", "Title", "Category", "Type", "Amount", "Paid", "Fixed"})
	for _, tx := range txs {
		paid := ""
		if tx.Paid {
			paid = "yes"
		}
		fixed := ""
		if tx.Fixed {
			fixed = "yes"
		}
		t.AppendRow(table.Row{tx.Date, tx.Title, tx.Category, tx.Type, tx.Amount, paid, fixed})
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, Align: text.AlignRight},
	})
	t.Render()
}

func printSummary(s report.Summary) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendRows([]table.Row{
		{"Total income", s.TotalIncome, fmt.Sprintf("%d%% received", s.PercentReceived())},
		{"Total expense", s.TotalExpense, fmt.Sprintf("%d%% paid", s.PercentPaid())},
		{"Balance", s.Balance, ""},
		{"Forecast balance", s.ForecastBalance, ""},
	})
	t.SetStyle(table.StyleRounded)
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	t.Render()
}

func printBreakdown(rows []report.CategoryAmount) {
	if len(rows) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Category", "Spent"})
	for _, row := range rows {
		t.AppendRow(table.Row{row.Name, row.Amount})
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight},
	})
	t.Render()
}

func printAlerts(alerts []alert.Alert) {
	if len(alerts) == 0 {
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Due", "Title", "Amount", "Status"})
	for _, a := range alerts {
		t.AppendRow(table.Row{a.Date, a.Title, a.Amount, a.Severity})
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
	})
	t.Render()
}

func emitJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode output: %v\n", err)
		os.Exit(1)
	}
}
