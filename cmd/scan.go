package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/payoff"
	"github.com/etnz/payoff/renderer"
	"github.com/google/subcommands"
)

// scanCmd holds the flags for the 'scan' subcommand.
type scanCmd struct {
	loanFlags
	bins    int
	workers int
}

func (*scanCmd) Name() string { return "scan" }
func (*scanCmd) Synopsis() string {
	return "replay the decision at every historical starting month"
}
func (*scanCmd) Usage() string {
	return `poi scan [-price <amount>] [-rate <percent>] [-months <n>] [-bins <n>]

  Replays the pay-cash-or-finance decision at every starting month of the
  return series that leaves a full term of data, and reports who wins how
  often, the spread of outcomes, and the windows where financing was
  dangerous. This is where sequence-of-returns risk becomes visible: the
  same price, rate and term win or lose depending only on when you start.
`
}

func (c *scanCmd) SetFlags(f *flag.FlagSet) {
	c.loanFlags.register(f)
	f.IntVar(&c.bins, "bins", payoff.DefaultHistogramBins, "Number of histogram bins for the outcome distribution")
	f.IntVar(&c.workers, "workers", 0, "Number of parallel workers (0 for one per CPU)")
}

func (c *scanCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	series, err := LoadSeries()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading returns: %v\n", err)
		return subcommands.ExitFailure
	}

	result, err := payoff.ScanHistory(c.terms(), series, payoff.ScanOptions{
		Bins:    c.bins,
		Workers: c.workers,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ScanMarkdown(result))
	return subcommands.ExitSuccess
}
