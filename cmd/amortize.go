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

// amortizeCmd holds the flags for the 'amortize' subcommand.
type amortizeCmd struct {
	loanFlags
	every int
}

func (*amortizeCmd) Name() string     { return "amortize" }
func (*amortizeCmd) Synopsis() string { return "display the loan payment schedule" }
func (*amortizeCmd) Usage() string {
	return `poi amortize [-price <amount>] [-rate <percent>] [-months <n>] [-every <n>]

  Displays the fixed monthly payment, the total interest over the term, and
  the month-by-month split between interest and principal.
`
}

func (c *amortizeCmd) SetFlags(f *flag.FlagSet) {
	c.loanFlags.register(f)
	f.IntVar(&c.every, "every", 12, "Print one schedule row per this many months")
}

func (c *amortizeCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	sched, err := payoff.Amortize(c.terms())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error amortizing: %v\n", err)
		return subcommands.ExitUsageError
	}

	printMarkdown(renderer.AmortizationMarkdown(sched, c.every))
	return subcommands.ExitSuccess
}
