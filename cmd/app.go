// Package cmd implements the plb command line application: it matches an SBI
// trade history into lots and reports the realized profit and the daily
// balances of the account.
package cmd

import (
	"flag"
	"os"

	"github.com/etnz/plbook/renderer"
	"github.com/etnz/plbook/sbi"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var cfg = Config{
	TradesFile: "trades.csv",
	Database:   "plbook.db",
	Currency:   "JPY",
	LogLevel:   "info",
	Encoding:   "sjis",
}

// Register the subcommands and the global flags, whose defaults are read
// from the environment.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	cfg = LoadConfig()
	flag.StringVar(&cfg.Currency, "currency", cfg.Currency, "Display currency")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	flag.StringVar(&cfg.Encoding, "encoding", cfg.Encoding, "Encoding of SBI csv exports (sjis, utf8)")

	c.Register(&lotsCmd{}, "reports")
	c.Register(&asofCmd{}, "reports")
	c.Register(&dailyCmd{}, "reports")

	c.Register(&saveCmd{}, "storage")
	c.Register(&importCmd{}, "storage")

	c.Register(&topicCmd{}, "help")
}

// logger returns the application logger, on stderr so that reports on
// stdout stay clean.
func logger() zerolog.Logger {
	return NewLogger(os.Stderr, cfg.LogLevel, isTerminal(os.Stderr))
}

// options returns the rendering options.
func options() renderer.Options {
	return renderer.Options{Currency: cfg.Currency}
}

// newParser returns the SBI parser for the configured encoding.
func newParser() (*sbi.Parser, error) {
	enc, err := sbi.ParseEncoding(cfg.Encoding)
	if err != nil {
		return nil, err
	}
	return sbi.NewParser(logger()).WithEncoding(enc), nil
}
