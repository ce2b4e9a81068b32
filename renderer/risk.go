package renderer

import (
	"fmt"
	"io"
	"strings"

	"github.com/etnz/payoff"
)

// RiskMarkdown renders a standalone risk report for a financed trajectory.
// start anchors the zero-based month indices of the summary to calendar months.
func RiskMarkdown(sum *payoff.RiskSummary, start payoff.Month) string {
	var b strings.Builder
	fmt.Fprint(&b, "# Risk Report\n\n")
	riskSection(&b, sum, start)
	return b.String()
}

func riskSection(w io.Writer, sum *payoff.RiskSummary, start payoff.Month) {
	fmt.Fprintf(w, "## Risk (%s)\n\n", sum.Severity)

	fmt.Fprintln(w, "| Signal | Value |")
	fmt.Fprintln(w, "|:---|---:|")
	fmt.Fprintf(w, "| Max drawdown | %s%s |\n", payoff.Percent(sum.MaxDrawdown), month(start, sum.MaxDrawdownMonth))
	fmt.Fprintf(w, "| Peak investment | %s |\n", payoff.Amount(sum.PeakInvestment))
	fmt.Fprintf(w, "| Underwater months | %d (%s of the term) |\n", sum.UnderwaterMonths, payoff.Percent(sum.UnderwaterFraction))
	fmt.Fprintf(w, "| First underwater | %s |\n", monthOrNever(start, sum.FirstUnderwater))
	fmt.Fprintf(w, "| Recovered initial lump | %s |\n", monthOrNever(start, sum.RecoveryMonth))
	fmt.Fprintf(w, "| Min net worth | %s%s |\n", payoff.Amount(sum.MinNetWorth), month(start, sum.MinNetWorthMonth))
	fmt.Fprintf(w, "| Net worth negative | %s |\n", monthOrNever(start, sum.FirstNegativeNetWorth))
	fmt.Fprintf(w, "| Months below interest paid | %d |\n", sum.MonthsBelowInterest)
	fmt.Fprintf(w, "| Self-funded shortfall | %s |\n", monthOrNever(start, sum.FirstShortfall))

	if sum.Severity == payoff.SeverityCritical {
		fmt.Fprintf(w, "\nThe investment spent %s of the term unable to retire the debt: financing this window relied on income to carry the loan through the trough.\n",
			payoff.Percent(sum.UnderwaterFraction))
	}
}

// month renders " (on 1990-03)" for a valid index, nothing for -1.
func month(start payoff.Month, i int) string {
	if i < 0 {
		return ""
	}
	return fmt.Sprintf(" (on %s)", start.AddMonths(i))
}

// monthOrNever renders the calendar month of a zero-based index, or "never".
func monthOrNever(start payoff.Month, i int) string {
	if i < 0 {
		return "never"
	}
	return start.AddMonths(i).String()
}
