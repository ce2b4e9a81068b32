package renderer

import (
	"fmt"
	"strings"

	"github.com/etnz/payoff"
)

// Comparison bundles everything the compare report needs: one trajectory per
// strategy, all simulated over the same window, and the risk summary of the
// financed one.
type Comparison struct {
	Schedule     *payoff.AmortizationSchedule
	Start        payoff.Month
	Trajectories map[payoff.Strategy]payoff.Trajectory
	Risk         *payoff.RiskSummary
}

// CompareMarkdown renders the strategies side by side over one window.
func CompareMarkdown(c *Comparison) string {
	var b strings.Builder
	terms := c.Schedule.Terms
	end := c.Start.AddMonths(terms.TermMonths - 1)

	fmt.Fprintf(&b, "# Pay Cash or Finance: %s from %s to %s\n\n", payoff.Amount(terms.Principal), c.Start, end)
	fmt.Fprintf(&b, "Rate %s over %d months, payment %s, total interest %s.\n\n",
		payoff.Percent(terms.AnnualRate), terms.TermMonths,
		payoff.Amount(c.Schedule.Payment), payoff.Amount(c.Schedule.TotalInterest()))

	fmt.Fprint(&b, "## Final Position\n\n")
	fmt.Fprintln(&b, "| Strategy | Investment | Interest Paid | Net Worth |")
	fmt.Fprintln(&b, "|:---|---:|---:|---:|")
	var winner payoff.Strategy
	var best float64
	for _, strategy := range order(c.Trajectories) {
		final := c.Trajectories[strategy].Final()
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n",
			strategy,
			payoff.Amount(final.Investment),
			payoff.Amount(final.InterestPaid),
			payoff.Amount(final.NetWorth),
		)
		if final.NetWorth > best || best == 0 {
			winner, best = strategy, final.NetWorth
		}
	}
	fmt.Fprintf(&b, "\nBest over this window: **%s** at %s.\n", winner, payoff.Amount(best))

	if c.Risk != nil {
		fmt.Fprint(&b, "\n")
		riskSection(&b, c.Risk, c.Start)
	}
	return b.String()
}

// order keeps the report rows in the canonical strategy order whatever the
// map iteration does.
func order(trajectories map[payoff.Strategy]payoff.Trajectory) []payoff.Strategy {
	all := []payoff.Strategy{
		payoff.OwnOutright,
		payoff.CashInvestPayments,
		payoff.FinanceInvestLump,
		payoff.FinanceForcedLiquidation,
	}
	ordered := make([]payoff.Strategy, 0, len(trajectories))
	for _, s := range all {
		if _, ok := trajectories[s]; ok {
			ordered = append(ordered, s)
		}
	}
	return ordered
}
