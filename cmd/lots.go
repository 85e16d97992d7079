package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/etnz/plbook"
	"github.com/etnz/plbook/renderer"
	"github.com/google/subcommands"
)

// lotsCmd holds the flags for the 'lots' subcommand.
type lotsCmd struct {
	trades string
	open   bool
	json   bool
	sel    string
	csv    string
	html   string
}

func (*lotsCmd) Name() string     { return "lots" }
func (*lotsCmd) Synopsis() string { return "display the realized profit of every lot" }
func (*lotsCmd) Usage() string {
	return `plb lots [-trades <file>] [-open] [-json] [-select <jsonpath>] [-csv <file>] [-html <file>]

  Matches the trade history into lots, and displays open lots with their
  exposure and closed lots with their realized profit.

  -csv and -html write the report into a file, -json and -select write
  JSON on the standard output instead of the markdown report.
`
}

func (c *lotsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.trades, "trades", cfg.TradesFile, "Trade history (SBI csv or jsonl)")
	f.BoolVar(&c.open, "open", false, "Only display open lots")
	f.BoolVar(&c.json, "json", false, "Write lots as JSON lines")
	f.StringVar(&c.sel, "select", "", "Write the part of the lots JSON array selected by this jsonpath")
	f.StringVar(&c.csv, "csv", "", "Write lots into this csv file")
	f.StringVar(&c.html, "html", "", "Write the report into this html file")
}

func (c *lotsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if err := c.run(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *lotsCmd) run(w io.Writer) error {
	txs, err := loadTransactions(c.trades)
	if err != nil {
		return err
	}
	lots := plbook.BuildLots(txs)
	log := logger()
	log.Info().Int("count", len(lots)).Msg("lots built")
	if c.open {
		lots = plbook.OpenLots(lots)
	}

	if c.csv != "" {
		if err := writeFile(c.csv, func(w io.Writer) error { return renderer.WriteLotsCSV(w, lots) }); err != nil {
			return err
		}
		log.Info().Str("file", c.csv).Msg("lots written")
	}
	if c.html != "" {
		page, err := renderer.HTML("Lots", renderer.LotsMarkdown(lots, options()))
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
		return selectJSON(w, c.sel, lots)
	case c.json:
		return plbook.EncodeLots(w, lots)
	case c.csv == "" && c.html == "":
		printMarkdown(w, renderer.LotsMarkdown(lots, options()))
	}
	return nil
}
