// Command poi answers "pay cash or invest": it amortizes the loan, replays
// both strategies over historical S&P 500 windows, and reports the risk.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/etnz/payoff/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion: this exits early when invoked by the shell.
	complete.Complete("poi", completer())

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}

func completer() *complete.Command {
	loanFlags := map[string]complete.Predictor{
		"price":  predict.Something,
		"rate":   predict.Something,
		"months": predict.Something,
	}
	withLoan := func(extra map[string]complete.Predictor) map[string]complete.Predictor {
		flags := make(map[string]complete.Predictor, len(loanFlags)+len(extra))
		for k, v := range loanFlags {
			flags[k] = v
		}
		for k, v := range extra {
			flags[k] = v
		}
		return flags
	}

	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"returns-file": predict.Files("*.json"),
			"plain":        predict.Nothing,
		},
		Sub: map[string]*complete.Command{
			"amortize": {Flags: withLoan(map[string]complete.Predictor{"every": predict.Something})},
			"compare": {Flags: withLoan(map[string]complete.Predictor{
				"from":               predict.Something,
				"forced-liquidation": predict.Nothing,
			})},
			"scan": {Flags: withLoan(map[string]complete.Predictor{
				"bins":    predict.Something,
				"workers": predict.Something,
			})},
			"fetch": {Flags: map[string]complete.Predictor{
				"from":   predict.Something,
				"source": predict.Set{"yahoo", "eodhd"},
			}},
			"returns": {Flags: map[string]complete.Predictor{
				"from": predict.Something,
				"to":   predict.Something,
			}},
			"topic":  {Args: predict.Set{"readme", "strategies", "sequence-risk", "risk-metrics"}},
			"assist": {},
		},
	}
}
