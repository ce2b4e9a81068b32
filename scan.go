package payoff

import (
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
)

// DefaultHistogramBins is the bin count of the difference histogram.
const DefaultHistogramBins = 20

// ScanOptions tune a historical scan. The zero value is usable.
type ScanOptions struct {
	Strategies []Strategy // defaults to Competitors
	Bins       int        // defaults to DefaultHistogramBins
	Workers    int        // defaults to GOMAXPROCS
}

func (o ScanOptions) strategies() []Strategy {
	if len(o.Strategies) == 0 {
		return Competitors
	}
	return o.Strategies
}

func (o ScanOptions) bins() int {
	if o.Bins <= 0 {
		return DefaultHistogramBins
	}
	return o.Bins
}

func (o ScanOptions) workers() int {
	if o.Workers <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Workers
}

// Outcome is the result of replaying the decision at one starting month.
type Outcome struct {
	Offset int
	Start  Month
	// Final net worth at the end of the term, per strategy.
	Final map[Strategy]float64
	// Difference is finance-invest-lump minus pay-cash-invest-payments:
	// positive means financing won that window.
	Difference float64
	// Underwater is true if the financed investment ever dropped below the
	// outstanding principal during the window.
	Underwater bool
	// AnnualizedReturn is the geometric average annual market return of the
	// window, for context.
	AnnualizedReturn float64
}

// HistogramBin is one equal-width bin of the difference distribution.
type HistogramBin struct {
	Low, High float64
	Count     int
}

// ScanResult aggregates the outcome of every valid starting month.
type ScanResult struct {
	Terms         LoanTerms
	Payment       float64
	TotalInterest float64

	Outcomes []Outcome // one per valid offset, in chronological order

	Wins             map[Strategy]int
	Ties             int
	MeanDifference   float64
	MedianDifference float64
	Best             Outcome // largest difference: financing's best window
	Worst            Outcome // smallest difference: financing's worst window
	UnderwaterCount  int
	Histogram        []HistogramBin
}

// ScanHistory replays the decision at every starting month that leaves a full
// term of data, in parallel, and reduces the outcomes into summary statistics.
//
// Offsets whose window would overrun the series do not exist at all: they are
// a natural boundary, not failures. A malformed series aborts the whole scan.
func ScanHistory(terms LoanTerms, series *ReturnSeries, opts ScanOptions) (*ScanResult, error) {
	if err := series.Validate(); err != nil {
		return nil, err
	}
	sched, err := Amortize(terms)
	if err != nil {
		return nil, err
	}

	result := &ScanResult{
		Terms:         terms,
		Payment:       sched.Payment,
		TotalInterest: sched.TotalInterest(),
		Wins:          make(map[Strategy]int),
	}

	count := series.Windows(terms.TermMonths)
	if count == 0 {
		return result, nil
	}

	// Each worker owns disjoint slots of the preallocated slices, so the scan
	// needs no locks; aggregation happens single-threaded after the join.
	outcomes := make([]Outcome, count)
	errs := make([]error, count)
	offsets := make(chan int)
	var wg sync.WaitGroup
	for range opts.workers() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for s := range offsets {
				outcomes[s], errs[s] = scanOne(sched, series, s, opts.strategies())
			}
		}()
	}
	for s := range count {
		offsets <- s
	}
	close(offsets)
	wg.Wait()

	for s, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("scanning offset %d (%s): %w", s, series.StartAt(s), err)
		}
	}

	result.Outcomes = outcomes
	reduce(result, opts.bins())
	return result, nil
}

// scanOne runs every strategy over the window at one offset and the risk
// analyzer on the financed trajectory.
func scanOne(sched *AmortizationSchedule, series *ReturnSeries, offset int, strategies []Strategy) (Outcome, error) {
	n := sched.Terms.TermMonths
	window, err := series.Window(offset, n)
	if err != nil {
		return Outcome{}, err
	}
	start := series.StartAt(offset)

	out := Outcome{
		Offset: offset,
		Start:  start,
		Final:  make(map[Strategy]float64, len(strategies)),
	}
	for _, strategy := range strategies {
		traj, err := Simulate(strategy, sched, window, start)
		if err != nil {
			return Outcome{}, err
		}
		out.Final[strategy] = traj.Final().NetWorth
		if strategy == FinanceInvestLump {
			risk, err := AnalyzeRisk(traj, sched)
			if err != nil {
				return Outcome{}, err
			}
			out.Underwater = risk.UnderwaterMonths > 0
		}
	}
	out.Difference = out.Final[FinanceInvestLump] - out.Final[CashInvestPayments]

	cumulative := 1.0
	for _, r := range window {
		cumulative *= 1 + r
	}
	out.AnnualizedReturn = math.Pow(cumulative, 12/float64(n)) - 1
	return out, nil
}

// reduce folds the per-offset outcomes into the summary statistics.
func reduce(result *ScanResult, bins int) {
	diffs := make([]float64, 0, len(result.Outcomes))
	var sum float64
	for i, out := range result.Outcomes {
		if winner, tie := winnerOf(out); tie {
			result.Ties++
		} else {
			result.Wins[winner]++
		}
		if out.Underwater {
			result.UnderwaterCount++
		}
		diffs = append(diffs, out.Difference)
		sum += out.Difference
		if i == 0 || out.Difference > result.Best.Difference {
			result.Best = out
		}
		if i == 0 || out.Difference < result.Worst.Difference {
			result.Worst = out
		}
	}

	result.MeanDifference = sum / float64(len(diffs))
	sorted := make([]float64, len(diffs))
	copy(sorted, diffs)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		result.MedianDifference = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		result.MedianDifference = sorted[mid]
	}

	result.Histogram = histogram(diffs, sorted[0], sorted[len(sorted)-1], bins)
}

// winnerOf returns the strategy with the strictly greatest final net worth,
// or tie=true when the top value is shared.
func winnerOf(out Outcome) (winner Strategy, tie bool) {
	first := true
	for _, strategy := range Competitors {
		v, ok := out.Final[strategy]
		if !ok {
			continue
		}
		if first || v > out.Final[winner] {
			winner, first = strategy, false
			tie = false
		} else if v == out.Final[winner] {
			tie = true
		}
	}
	return winner, tie
}

// histogram bins the differences into equal-width bins over [min, max].
// Values on a boundary fall in the lower bin, except max which belongs to
// the last bin.
func histogram(diffs []float64, min, max float64, bins int) []HistogramBin {
	width := (max - min) / float64(bins)
	h := make([]HistogramBin, bins)
	for i := range h {
		h[i].Low = min + float64(i)*width
		h[i].High = h[i].Low + width
	}
	h[bins-1].High = max
	for _, d := range diffs {
		var idx int
		if width > 0 {
			// Boundary values land in the lower bin: an exact multiple of the
			// width is the High of the previous bin.
			idx = int(math.Ceil((d-min)/width)) - 1
		}
		if idx < 0 {
			idx = 0
		}
		if idx >= bins {
			idx = bins - 1
		}
		h[idx].Count++
	}
	return h
}
