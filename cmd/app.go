// Package cmd implements the CLI application to weigh paying cash against
// financing, replayed over historical market returns.
package cmd

import (
	"flag"
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/payoff"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&amortizeCmd{}, "analysis")
	c.Register(&compareCmd{}, "analysis")
	c.Register(&scanCmd{}, "analysis")

	c.Register(&fetchCmd{}, "data")
	c.Register(&returnsCmd{}, "data")

	c.Register(&topicCmd{}, "documentation")
	c.Register(&assistCmd{}, "documentation")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var returnsFile = flag.String("returns-file", "sp500_monthly_returns.json", "Path to the monthly return series file (JSON)")
var plain = flag.Bool("plain", false, "Print reports as raw markdown instead of rendering for the terminal")

// LoadSeries loads the return series used by every analysis command.
func LoadSeries() (*payoff.ReturnSeries, error) {
	return payoff.LoadReturns(*returnsFile)
}

// printMarkdown renders a markdown report for the terminal, falling back to
// the raw text when rendering is not possible.
func printMarkdown(content string) {
	if !*plain {
		r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
		if err == nil {
			if out, err := r.Render(content); err == nil {
				fmt.Print(out)
				return
			}
		}
	}
	fmt.Println(content)
}

// loanFlags are the flags shared by every command that describes the loan.
type loanFlags struct {
	price  float64
	rate   float64
	months int
}

func (l *loanFlags) register(f *flag.FlagSet) {
	f.Float64Var(&l.price, "price", 500000, "Asset price: the amount to pay cash or to borrow")
	f.Float64Var(&l.rate, "rate", 7.0, "Annual loan rate, in percent")
	f.IntVar(&l.months, "months", 360, "Loan term in months")
}

// terms converts the human-facing flags (percent rate) to engine terms
// (fractional rate).
func (l *loanFlags) terms() payoff.LoanTerms {
	return payoff.LoanTerms{
		Principal:  l.price,
		AnnualRate: l.rate / 100,
		TermMonths: l.months,
	}
}
