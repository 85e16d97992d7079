package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/plbook"
	"github.com/google/subcommands"
)

// importCmd converts SBI csv exports into JSON lines files.
type importCmd struct {
	trades  string
	cash    string
	out     string
	cashOut string
}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "convert SBI csv exports into jsonl files" }
func (*importCmd) Usage() string {
	return `plb import [-trades <csv>] [-cash <csv>] [-o <jsonl>] [-cash-o <jsonl>]

  Reads the SBI trade history, and the deposit and withdrawal history if
  any, and writes them as JSON lines. Every command accepts those files in
  place of the csv exports.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.trades, "trades", cfg.TradesFile, "SBI trade history csv")
	f.StringVar(&c.cash, "cash", cfg.CashFile, "SBI deposit and withdrawal history csv")
	f.StringVar(&c.out, "o", "trades.jsonl", "Output file for the transactions")
	f.StringVar(&c.cashOut, "cash-o", "cash.jsonl", "Output file for the cash events")
}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *importCmd) run() error {
	log := logger()
	txs, err := loadTransactions(c.trades)
	if err != nil {
		return err
	}
	if err := writeFile(c.out, func(w io.Writer) error { return plbook.EncodeTransactions(w, txs) }); err != nil {
		return err
	}
	log.Info().Int("count", len(txs)).Str("file", c.out).Msg("transactions written")

	if c.cash == "" {
		return nil
	}
	events, err := loadCashEvents(c.cash)
	if err != nil {
		return err
	}
	if err := writeFile(c.cashOut, func(w io.Writer) error { return plbook.EncodeCashEvents(w, events) }); err != nil {
		return err
	}
	log.Info().Int("count", len(events)).Str("file", c.cashOut).Msg("cash events written")
	return nil
}
