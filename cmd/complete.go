package cmd

import (
	"flag"

	"github.com/etnz/plbook/date"
	"github.com/etnz/plbook/docs"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

// predictors of the flag values by flag name, other flags take anything.
var predictors = map[string]complete.Predictor{
	"trades":    predict.Files("*"),
	"cash":      predict.Files("*"),
	"o":         predict.Files("*"),
	"cash-o":    predict.Files("*"),
	"csv":       predict.Files("*.csv"),
	"html":      predict.Files("*.html"),
	"db":        predict.Files("*.db"),
	"p":         predict.Set(date.PeriodNames),
	"encoding":  predict.Set{"sjis", "utf8"},
	"log-level": predict.Set{"debug", "info", "warn", "error"},
}

// Completion returns the shell completion of the commander's subcommands
// and of the global flags.
func Completion(c *subcommands.Commander, global *flag.FlagSet) *complete.Command {
	root := &complete.Command{
		Sub:   make(map[string]*complete.Command),
		Flags: flagPredictors(global),
	}
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		f := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
		cmd.SetFlags(f)
		sub := &complete.Command{Flags: flagPredictors(f)}
		if cmd.Name() == "topic" {
			sub.Args = predict.Set(append(docs.Names(), "*"))
		}
		root.Sub[cmd.Name()] = sub
	})
	return root
}

func flagPredictors(f *flag.FlagSet) map[string]complete.Predictor {
	flags := make(map[string]complete.Predictor)
	f.VisitAll(func(fl *flag.Flag) {
		if p, ok := predictors[fl.Name]; ok {
			flags[fl.Name] = p
			return
		}
		if b, ok := fl.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			flags[fl.Name] = predict.Nothing
			return
		}
		flags[fl.Name] = predict.Something
	})
	return flags
}
