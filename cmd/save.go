package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/plbook/date"
	"github.com/etnz/plbook/store"
	"github.com/google/subcommands"
)

// saveCmd holds the flags for the 'save' subcommand.
type saveCmd struct {
	trades string
	cash   string
	end    string
	db     string
}

func (*saveCmd) Name() string     { return "save" }
func (*saveCmd) Synopsis() string { return "save the lots and the daily balances in a database" }
func (*saveCmd) Usage() string {
	return `plb save [-trades <file>] [-cash <file>] [-end <date>] [-db <file>]

  Computes the lots and the daily balance history, and replaces the content
  of the sqlite database with them.
`
}

func (c *saveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.trades, "trades", cfg.TradesFile, "Trade history (SBI csv or jsonl)")
	f.StringVar(&c.cash, "cash", cfg.CashFile, "Deposit and withdrawal history (SBI csv or jsonl)")
	f.StringVar(&c.end, "end", "", "Last day of the history (defaults to today)")
	f.StringVar(&c.db, "db", cfg.Database, "SQLite database file")
}

func (c *saveCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	end, err := parseDay(c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := c.run(ctx, end); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *saveCmd) run(ctx context.Context, end date.Date) error {
	book, err := computeBook(ctx, c.trades, c.cash, end)
	if err != nil {
		return err
	}

	db, err := store.Open(c.db)
	if err != nil {
		return err
	}
	defer db.Close()

	s := store.New(db, logger())
	if err := s.Migrate(ctx); err != nil {
		return err
	}
	return s.SaveBook(ctx, book)
}
