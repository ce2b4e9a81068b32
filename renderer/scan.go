package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/payoff"
	md "github.com/nao1215/markdown"
)

// ScanMarkdown renders the full historical scan: who wins how often, the
// spread of outcomes, and the distribution of the finance-minus-cash
// difference.
func ScanMarkdown(result *payoff.ScanResult) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Historical Scan: %s at %s over %d months",
		payoff.Amount(result.Terms.Principal),
		payoff.Percent(result.Terms.AnnualRate),
		result.Terms.TermMonths))

	if len(result.Outcomes) == 0 {
		doc.PlainText("The return series is shorter than the term: no window to replay.")
		return doc.String()
	}

	doc.PlainText(fmt.Sprintf("Replayed over %d starting months, %s to %s. Payment %s, total interest %s.",
		len(result.Outcomes),
		result.Outcomes[0].Start,
		result.Outcomes[len(result.Outcomes)-1].Start,
		payoff.Amount(result.Payment),
		payoff.Amount(result.TotalInterest)))

	doc.H2("Wins")
	wins := md.TableSet{
		Header: []string{"Strategy", "Windows", "Share"},
		Rows:   [][]string{},
	}
	total := len(result.Outcomes)
	for _, strategy := range payoff.Competitors {
		w := result.Wins[strategy]
		wins.Rows = append(wins.Rows, []string{
			strategy.String(),
			fmt.Sprintf("%d", w),
			payoff.Percent(float64(w) / float64(total)).String(),
		})
	}
	if result.Ties > 0 {
		wins.Rows = append(wins.Rows, []string{"(tie)", fmt.Sprintf("%d", result.Ties),
			payoff.Percent(float64(result.Ties) / float64(total)).String()})
	}
	doc.Table(wins)

	doc.H2("Finance minus Cash")
	stats := md.TableSet{
		Header: []string{"Statistic", "Difference", "Window"},
		Rows: [][]string{
			{"Mean", payoff.Amount(result.MeanDifference).SignedString(), ""},
			{"Median", payoff.Amount(result.MedianDifference).SignedString(), ""},
			{"Best", payoff.Amount(result.Best.Difference).SignedString(), result.Best.Start.String()},
			{"Worst", payoff.Amount(result.Worst.Difference).SignedString(), result.Worst.Start.String()},
		},
	}
	doc.Table(stats)

	doc.PlainText(fmt.Sprintf("The financed investment dipped below the outstanding principal in %d of %d windows (%s).",
		result.UnderwaterCount, total,
		payoff.Percent(float64(result.UnderwaterCount)/float64(total))))

	doc.H2("Distribution")
	doc.CodeBlocks(md.SyntaxHighlightText, histogramText(result.Histogram))

	return doc.String()
}

// histogramText draws the bins as horizontal bars, widest bin at barWidth
// characters.
func histogramText(bins []payoff.HistogramBin) string {
	const barWidth = 50
	max := 0
	for _, b := range bins {
		if b.Count > max {
			max = b.Count
		}
	}
	var b strings.Builder
	for _, bin := range bins {
		n := 0
		if max > 0 {
			n = bin.Count * barWidth / max
		}
		if bin.Count > 0 && n == 0 {
			n = 1
		}
		fmt.Fprintf(&b, "%14s .. %14s %-*s %d\n",
			payoff.Amount(bin.Low).SignedString(),
			payoff.Amount(bin.High).SignedString(),
			barWidth, strings.Repeat("#", n), bin.Count)
	}
	return strings.TrimSuffix(b.String(), "\n")
}
