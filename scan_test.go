package payoff

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"
)

func TestScanHistory_WindowCount(t *testing.T) {
	terms := LoanTerms{Principal: 12000, AnnualRate: 0.04, TermMonths: 12}
	series := new(ReturnSeries)
	for i := range 30 {
		series.Append(NewMonth(1990, time.January).AddMonths(i), 0.005*math.Sin(float64(i)))
	}

	result, err := ScanHistory(terms, series, ScanOptions{})
	if err != nil {
		t.Fatalf("ScanHistory() error = %v", err)
	}
	// 30 months of data, 12-month term: offsets 0 through 18.
	if len(result.Outcomes) != 19 {
		t.Fatalf("got %d outcomes, want 19", len(result.Outcomes))
	}
	var wins int
	for _, w := range result.Wins {
		wins += w
	}
	if wins+result.Ties != 19 {
		t.Errorf("wins (%d) + ties (%d) != 19", wins, result.Ties)
	}
	for i, out := range result.Outcomes {
		if out.Offset != i {
			t.Errorf("outcome %d has offset %d, order lost", i, out.Offset)
		}
		if out.Start != series.StartAt(i) {
			t.Errorf("outcome %d starts %v, want %v", i, out.Start, series.StartAt(i))
		}
	}
	if result.Best.Difference < result.Worst.Difference {
		t.Errorf("best difference %f below worst %f", result.Best.Difference, result.Worst.Difference)
	}
	var binned int
	for _, b := range result.Histogram {
		binned += b.Count
	}
	if binned != 19 {
		t.Errorf("histogram holds %d outcomes, want 19", binned)
	}
}

// With zero returns and a zero rate both competitors end at exactly twice the
// principal, so every window is a tie.
func TestScanHistory_AllTies(t *testing.T) {
	terms := LoanTerms{Principal: 12000, AnnualRate: 0, TermMonths: 12}
	series := seq(NewMonth(1990, time.January), make([]float64, 30)...)

	result, err := ScanHistory(terms, series, ScanOptions{})
	if err != nil {
		t.Fatalf("ScanHistory() error = %v", err)
	}
	if result.Ties != 19 || len(result.Wins) != 0 {
		t.Errorf("ties = %d, wins = %v; want 19 ties and no wins", result.Ties, result.Wins)
	}
	if result.MeanDifference != 0 || result.MedianDifference != 0 {
		t.Errorf("mean = %f, median = %f; want 0, 0", result.MeanDifference, result.MedianDifference)
	}
	if result.UnderwaterCount != 0 {
		t.Errorf("underwater count = %d, want 0", result.UnderwaterCount)
	}
}

// The scan is deterministic whatever the worker count: workers write disjoint
// slots and the reduction is single-threaded.
func TestScanHistory_Deterministic(t *testing.T) {
	terms := LoanTerms{Principal: 50000, AnnualRate: 0.06, TermMonths: 24}
	series := new(ReturnSeries)
	for i := range 60 {
		series.Append(NewMonth(1980, time.January).AddMonths(i), 0.01*math.Cos(float64(i))-0.002)
	}

	var results []*ScanResult
	for _, workers := range []int{1, 3, 16} {
		r, err := ScanHistory(terms, series, ScanOptions{Workers: workers})
		if err != nil {
			t.Fatalf("ScanHistory(workers=%d) error = %v", workers, err)
		}
		results = append(results, r)
	}
	for _, r := range results[1:] {
		if !reflect.DeepEqual(r, results[0]) {
			t.Error("scan results differ across worker counts")
		}
	}
}

func TestScanHistory_ShortSeries(t *testing.T) {
	terms := LoanTerms{Principal: 12000, AnnualRate: 0.04, TermMonths: 12}
	series := seq(NewMonth(1990, time.January), make([]float64, 5)...)

	result, err := ScanHistory(terms, series, ScanOptions{})
	if err != nil {
		t.Fatalf("ScanHistory() error = %v", err)
	}
	if len(result.Outcomes) != 0 {
		t.Errorf("got %d outcomes from a 5-month series, want 0", len(result.Outcomes))
	}
}

func TestScanHistory_MalformedSeriesAborts(t *testing.T) {
	terms := LoanTerms{Principal: 12000, AnnualRate: 0.04, TermMonths: 12}
	series := seq(NewMonth(1990, time.January), make([]float64, 30)...)
	series.Append(MustParseMonth("1991-01"), math.NaN())

	if _, err := ScanHistory(terms, series, ScanOptions{}); !errors.Is(err, ErrInvalidReturn) {
		t.Errorf("ScanHistory() on a corrupt series error = %v, want ErrInvalidReturn", err)
	}
}

func TestHistogram(t *testing.T) {
	h := histogram([]float64{0, 5, 10}, 0, 10, 2)
	if len(h) != 2 {
		t.Fatalf("got %d bins, want 2", len(h))
	}
	// A value on a boundary belongs to the lower bin.
	if h[0].Count != 2 || h[1].Count != 1 {
		t.Errorf("counts = %d, %d; want 2, 1", h[0].Count, h[1].Count)
	}
	if h[0].Low != 0 || h[1].High != 10 {
		t.Errorf("range = [%f, %f], want [0, 10]", h[0].Low, h[1].High)
	}

	// All-equal differences collapse the width to zero: one loaded bin.
	h = histogram([]float64{3, 3, 3}, 3, 3, 4)
	if h[0].Count != 3 {
		t.Errorf("zero-width histogram put %d in the first bin, want 3", h[0].Count)
	}
}
