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

// compareCmd holds the flags for the 'compare' subcommand.
type compareCmd struct {
	loanFlags
	from   string
	forced bool
}

func (*compareCmd) Name() string { return "compare" }
func (*compareCmd) Synopsis() string {
	return "replay every strategy over one historical window"
}
func (*compareCmd) Usage() string {
	return `poi compare [-from <month>] [-price <amount>] [-rate <percent>] [-months <n>]

  Replays paying cash (investing the freed-up payments) against financing
  (investing the lump sum) over the historical window starting at -from, and
  reports the final positions and the risk taken along the way.
`
}

func (c *compareCmd) SetFlags(f *flag.FlagSet) {
	c.loanFlags.register(f)
	f.StringVar(&c.from, "from", "", "Starting month of the window (e.g. 1990-01). Defaults to the first month of the series.")
	f.BoolVar(&c.forced, "forced-liquidation", false, "Also simulate financing with a forced liquidation the first month the investment cannot retire the debt")
}

func (c *compareCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	series, err := LoadSeries()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading returns: %v\n", err)
		return subcommands.ExitFailure
	}

	start := series.First()
	if c.from != "" {
		start, err = payoff.ParseMonth(c.from)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -from: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	terms := c.terms()
	sched, err := payoff.Amortize(terms)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error amortizing: %v\n", err)
		return subcommands.ExitUsageError
	}

	window, err := series.WindowAt(start, terms.TermMonths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error selecting window: %v\n", err)
		return subcommands.ExitFailure
	}

	strategies := append([]payoff.Strategy{}, payoff.Competitors...)
	if c.forced {
		strategies = append(strategies, payoff.FinanceForcedLiquidation)
	}

	trajectories := make(map[payoff.Strategy]payoff.Trajectory, len(strategies))
	for _, strategy := range strategies {
		traj, err := payoff.Simulate(strategy, sched, window, start)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error simulating %s: %v\n", strategy, err)
			return subcommands.ExitFailure
		}
		trajectories[strategy] = traj
	}

	risk, err := payoff.AnalyzeRisk(trajectories[payoff.FinanceInvestLump], sched)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error analyzing risk: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.CompareMarkdown(&renderer.Comparison{
		Schedule:     sched,
		Start:        start,
		Trajectories: trajectories,
		Risk:         risk,
	}))
	return subcommands.ExitSuccess
}
