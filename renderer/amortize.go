// Package renderer turns engine results into markdown reports.
//
// Reports are plain markdown strings: the caller decides whether to print
// them raw or through a terminal renderer.
package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/payoff"
)

// AmortizationMarkdown renders the payment schedule. With every > 1 only one
// row per that many months is printed (plus the final month), keeping a
// 30-year schedule readable.
func AmortizationMarkdown(sched *payoff.AmortizationSchedule, every int) string {
	if every < 1 {
		every = 1
	}
	var b strings.Builder
	terms := sched.Terms

	fmt.Fprintf(&b, "# Amortization of %s over %d months\n\n", payoff.Amount(terms.Principal), terms.TermMonths)
	fmt.Fprintf(&b, "Annual rate: %s\n\n", payoff.Percent(terms.AnnualRate))
	fmt.Fprintf(&b, "Monthly payment: %s\n\n", payoff.Amount(sched.Payment))
	fmt.Fprintf(&b, "Total interest: %s (%s of the principal)\n\n",
		payoff.Amount(sched.TotalInterest()),
		payoff.Percent(sched.TotalInterest()/terms.Principal),
	)

	fmt.Fprintln(&b, "| Month | Interest | Principal | Remaining |")
	fmt.Fprintln(&b, "|---:|---:|---:|---:|")
	last := len(sched.Installments) - 1
	for i, in := range sched.Installments {
		if i%every != 0 && i != last {
			continue
		}
		fmt.Fprintf(&b, "| %d | %s | %s | %s |\n",
			i+1,
			payoff.Amount(in.Interest),
			payoff.Amount(in.Principal),
			payoff.Amount(in.Remaining),
		)
	}
	return b.String()
}
