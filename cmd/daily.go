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

// dailyCmd holds the flags for the 'daily' subcommand.
type dailyCmd struct {
	trades string
	cash   string
	end    string
	period string
	json   bool
	sel    string
	csv    string
	html   string
}

func (*dailyCmd) Name() string     { return "daily" }
func (*dailyCmd) Synopsis() string { return "display the daily balance history of the account" }
func (*dailyCmd) Usage() string {
	return `plb daily [-trades <file>] [-cash <file>] [-end <date>] [-p <period>] [-json] [-select <jsonpath>] [-csv <file>] [-html <file>]

  Displays the principal, the open cost, the realized revenue and the cash
  balance of every day from the first cash movement to the end date.

  With -p the history keeps the last balance of each period.
`
}

func (c *dailyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.trades, "trades", cfg.TradesFile, "Trade history (SBI csv or jsonl)")
	f.StringVar(&c.cash, "cash", cfg.CashFile, "Deposit and withdrawal history (SBI csv or jsonl)")
	f.StringVar(&c.end, "end", "", "Last day of the history (defaults to today)")
	f.StringVar(&c.period, "p", "day", "Sampling period (day, week, month, quarter, year)")
	f.BoolVar(&c.json, "json", false, "Write balances as JSON lines")
	f.StringVar(&c.sel, "select", "", "Write the part of the balances JSON array selected by this jsonpath")
	f.StringVar(&c.csv, "csv", "", "Write balances into this csv file")
	f.StringVar(&c.html, "html", "", "Write the report into this html file")
}

func (c *dailyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	end, err := parseDay(c.end)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	period, err := date.ParsePeriod(c.period)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	if err := c.run(ctx, os.Stdout, end, period); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *dailyCmd) run(ctx context.Context, w io.Writer, end date.Date, period date.Period) error {
	book, err := computeBook(ctx, c.trades, c.cash, end)
	if err != nil {
		return err
	}
	series := plbook.SampleSeries(book.Daily, period)
	log := logger()

	if c.csv != "" {
		if err := writeFile(c.csv, func(w io.Writer) error { return renderer.WriteDailyCSV(w, series) }); err != nil {
			return err
		}
		log.Info().Str("file", c.csv).Msg("balances written")
	}
	if c.html != "" {
		page, err := renderer.HTML("Balance History", renderer.DailyMarkdown(series, period, options()))
		if err != nil {
			return err
		}
		if err := os.WriteFile(c.html, page, 0644); err != nil {
			return err
		}
		log.Info().Str("file", c.html).Msg("report written")
	}

	switch {
	case c.sel != "":
		return selectJSON(w, c.sel, series)
	case c.json:
		return plbook.EncodeDaily(w, series)
	case c.csv == "" && c.html == "":
		printMarkdown(w, renderer.DailyMarkdown(series, period, options()))
	}
	return nil
}
