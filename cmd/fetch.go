package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/etnz/payoff"
	"github.com/google/subcommands"
)

// fetchCmd holds the flags for the 'fetch' subcommand.
type fetchCmd struct {
	from   string
	source string
}

func (*fetchCmd) Name() string { return "fetch" }
func (*fetchCmd) Synopsis() string {
	return "download the S&P 500 monthly return series"
}
func (*fetchCmd) Usage() string {
	return `poi fetch [-from <month>] [-source yahoo|eodhd]

  Downloads monthly closes for the S&P 500, converts them to monthly returns,
  and merges them into the returns file. Existing months are overwritten by
  the fresh data.
`
}

func (c *fetchCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.from, "from", "1950-01", "First month to fetch")
	f.StringVar(&c.source, "source", "yahoo", "Data source: yahoo or eodhd")
}

func (c *fetchCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	from, err := payoff.ParseMonth(c.from)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing -from: %v\n", err)
		return subcommands.ExitUsageError
	}

	var fresh *payoff.ReturnSeries
	switch c.source {
	case "yahoo":
		fresh, err = payoff.FetchSP500(from)
	case "eodhd":
		fresh, err = payoff.FetchSP500Eodhd(from)
	default:
		fmt.Fprintf(os.Stderr, "Unknown source %q: want yahoo or eodhd\n", c.source)
		return subcommands.ExitUsageError
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching: %v\n", err)
		return subcommands.ExitFailure
	}

	// The current month is still trading: its return would change every day.
	now := payoff.NewMonth(time.Now().Year(), time.Now().Month())
	series, err := LoadSeries()
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Error loading returns: %v\n", err)
			return subcommands.ExitFailure
		}
		log.Println("warning, returns file does not exist, creating a new one")
		series = new(payoff.ReturnSeries)
	}
	merged := 0
	for on, r := range fresh.Values() {
		if !on.Before(now) {
			continue
		}
		series.Append(on, r)
		merged++
	}

	if err := payoff.SaveReturns(*returnsFile, series); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving returns: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Merged %d months into %s (%s to %s, %d months total)\n",
		merged, *returnsFile, series.First(), series.Last(), series.Len())
	return subcommands.ExitSuccess
}
