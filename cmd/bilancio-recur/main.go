package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/GiGurra/boa/pkg/boa"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"bilancio/internal/cli"
	"bilancio/internal/core"
)

type Params struct {
	Month string `descr:"Target month (YYYY-MM), defaults to the current month" optional:"true"`
	Yes   bool   `descr:"Apply without asking for confirmation" optional:"true"`
}

func main() {
	boa.NewCmdT[Params]("bilancio-recur").
		WithShort("Roll fixed transactions forward into a target month").
		WithLong("Finds fixed transactions from the month before the target that have no counterpart in the target month and, after confirmation, appends unpaid copies dated in the target month.").
		WithRunFunc(func(params *Params) {
			logger := cli.SetupLogger()
			cli.LoadEnvFile()
			cfg := cli.LoadAndValidateConfig(logger)

			ctx := context.Background()
			svc, cleanup := cli.InitLedger(ctx, logger, cfg)
			defer func() { _ = cleanup() }()

			target := core.PeriodOf(time.Now())
			if params.Month != "" {
				p, err := core.ParsePeriod(params.Month)
				if err != nil {
					fmt.Fprintf(os.Stderr, "Invalid month %q: %v\n", params.Month, err)
					os.Exit(1)
				}
				target = p
			}

			confirm := confirmOnStdin
			if params.Yes {
				confirm = func(pending []core.Transaction) bool {
					printPending(pending)
					return true
				}
			}

			applied, err := svc.ApplyRecurring(ctx, target, confirm)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Apply failed: %v\n", err)
				os.Exit(1)
			}

			if len(applied) == 0 {
				fmt.Printf("Nothing applied for %s.\n", target)
				return
			}
			fmt.Printf("Applied %d recurring transaction(s) to %s.\n", len(applied), target)
		}).
		Run()
}

func printPending(pending []core.Transaction) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Title", "Category", "Type", "Amount", "Source Date"})
	for _, tx := range pending {
		t.AppendRow(table.Row{tx.Title, tx.Category, tx.Type, tx.Amount, tx.Date})
	}
	t.SetStyle(table.StyleRounded)
	t.Style().Format.Header = text.FormatDefault
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight},
	})
	t.Render()
}

func confirmOnStdin(pending []core.Transaction) bool {
	printPending(pending)
	fmt.Printf("Apply %d transaction(s)? [y/N]: ", len(pending))

	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}
