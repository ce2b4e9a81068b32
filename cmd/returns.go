package cmd

import (
	"context"
	"flag"
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/etnz/payoff"
	"github.com/google/subcommands"
)

// returnsCmd holds the flags for the 'returns' subcommand.
type returnsCmd struct {
	from string
	to   string
}

func (*returnsCmd) Name() string { return "returns" }
func (*returnsCmd) Synopsis() string {
	return "describe the loaded monthly return series"
}
func (*returnsCmd) Usage() string {
	return `poi returns [-from <month>] [-to <month>]

  Validates the return series and prints its coverage and summary statistics.
`
}

func (c *returnsCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "", "Restrict the statistics to months from this one on")
	f.StringVar(&c.to, "to", "", "Restrict the statistics to months up to this one")
}

func (c *returnsCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	series, err := LoadSeries()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading returns: %v\n", err)
		return subcommands.ExitFailure
	}

	from, to := series.First(), series.Last()
	if c.from != "" {
		if from, err = payoff.ParseMonth(c.from); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -from: %v\n", err)
			return subcommands.ExitUsageError
		}
	}
	if c.to != "" {
		if to, err = payoff.ParseMonth(c.to); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing -to: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	var n, up int
	var sum, cumulative float64
	worst, best := math.Inf(1), math.Inf(-1)
	var worstOn, bestOn payoff.Month
	cumulative = 1
	for on, r := range series.Values() {
		if on.Before(from) || to.Before(on) {
			continue
		}
		n++
		sum += r
		cumulative *= 1 + r
		if r > 0 {
			up++
		}
		if r < worst {
			worst, worstOn = r, on
		}
		if r > best {
			best, bestOn = r, on
		}
	}
	if n == 0 {
		fmt.Fprintf(os.Stderr, "No data between %s and %s in %s\n", from, to, *returnsFile)
		return subcommands.ExitFailure
	}

	annualized := math.Pow(cumulative, 12/float64(n)) - 1

	var b strings.Builder
	fmt.Fprintf(&b, "# Monthly Returns %s to %s\n\n", from, to)
	fmt.Fprintln(&b, "| Statistic | Value |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Months | %d |\n", n)
	fmt.Fprintf(&b, "| Positive months | %d (%s) |\n", up, payoff.Percent(float64(up)/float64(n)))
	fmt.Fprintf(&b, "| Mean monthly return | %s |\n", payoff.Percent(sum/float64(n)).SignedString())
	fmt.Fprintf(&b, "| Annualized return | %s |\n", payoff.Percent(annualized).SignedString())
	fmt.Fprintf(&b, "| Best month | %s (%s) |\n", payoff.Percent(best).SignedString(), bestOn)
	fmt.Fprintf(&b, "| Worst month | %s (%s) |\n", payoff.Percent(worst).SignedString(), worstOn)

	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
