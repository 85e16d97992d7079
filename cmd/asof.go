package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/plbook"
	"github.com/etnz/plbook/date"
	"github.com/etnz/plbook/renderer"
	"github.com/google/subcommands"
)

type asofCmd struct {
	trades string
	date   string
	json   bool
}

func (*asofCmd) Name() string     { return "asof" }
func (*asofCmd) Synopsis() string { return "display the lots as they were on a given day" }
func (*asofCmd) Usage() string {
	return `plb asof [-d <date>] [-trades <file>] [-json]

  Displays every lot opened on or before the date, replayed with the fills
  contracted up to that date.
`
}

func (c *asofCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Date of the report (defaults to today)")
	f.StringVar(&c.trades, "trades", cfg.TradesFile, "Trade history (SBI csv or jsonl)")
	f.BoolVar(&c.json, "json", false, "Write lots as JSON lines")
}

func (c *asofCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	on, err := parseDay(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := c.run(os.Stdout, on); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *asofCmd) run(w io.Writer, on date.Date) error {
	txs, err := loadTransactions(c.trades)
	if err != nil {
		return err
	}
	lots := plbook.LotsAsOf(plbook.BuildLots(txs), on)
	if c.json {
		return plbook.EncodeLots(w, lots)
	}
	printMarkdown(w, renderer.AsOfMarkdown(lots, on, options()))
	return nil
}
