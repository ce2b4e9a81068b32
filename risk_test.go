package payoff

import (
	"errors"
	"math"
	"testing"
)

func TestAnalyzeRisk_HandWorkedTrajectory(t *testing.T) {
	terms := LoanTerms{Principal: 1000, AnnualRate: 0, TermMonths: 4}
	sched := mustAmortize(t, terms) // payment 250
	window := []float64{0.10, -0.50, 0.25, 0.875}
	// Investment: 1100, 550, 687.5, 1289.0625.

	traj, err := Simulate(FinanceInvestLump, sched, window, simStart)
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	sum, err := AnalyzeRisk(traj, sched)
	if err != nil {
		t.Fatalf("AnalyzeRisk() error = %v", err)
	}

	if math.Abs(sum.MaxDrawdown-(-0.5)) > 1e-9 || sum.MaxDrawdownMonth != 1 {
		t.Errorf("drawdown = %f at month %d, want -0.5 at month 1", sum.MaxDrawdown, sum.MaxDrawdownMonth)
	}
	if math.Abs(sum.PeakInvestment-1289.0625) > 1e-9 {
		t.Errorf("peak = %f, want 1289.0625", sum.PeakInvestment)
	}
	// Dropped below the initial 1000 at month 1, back above at month 3.
	if sum.RecoveryMonth != 3 {
		t.Errorf("recovery month = %d, want 3", sum.RecoveryMonth)
	}
	// Outstanding principal runs 750, 500, 250, 0: the investment always
	// covers it, even at the trough (550 >= 500).
	if sum.UnderwaterMonths != 0 || sum.FirstUnderwater != -1 || sum.Severity != SeverityNone {
		t.Errorf("underwater = %d months (first %d, %v), want none",
			sum.UnderwaterMonths, sum.FirstUnderwater, sum.Severity)
	}
	if math.Abs(sum.MinNetWorth-1550) > 1e-9 || sum.MinNetWorthMonth != 1 {
		t.Errorf("min net worth = %f at month %d, want 1550 at month 1", sum.MinNetWorth, sum.MinNetWorthMonth)
	}
	if sum.FirstNegativeNetWorth != -1 {
		t.Errorf("first negative net worth = %d, want never", sum.FirstNegativeNetWorth)
	}
	// Self-funded turns negative at month 2 (175*1.25 - 250).
	if sum.FirstShortfall != 2 {
		t.Errorf("first shortfall = %d, want 2", sum.FirstShortfall)
	}
}

// Underwater and insolvency are independent signals: a crash puts the
// position underwater immediately, while net worth only turns negative much
// later, once cumulative interest exceeds what is left.
func TestAnalyzeRisk_UnderwaterBeforeInsolvency(t *testing.T) {
	terms := LoanTerms{Principal: 100000, AnnualRate: 0.12, TermMonths: 360}
	sched := mustAmortize(t, terms)
	window := make([]float64, terms.TermMonths)
	window[0] = -0.999

	traj, err := Simulate(FinanceInvestLump, sched, window, simStart)
	if err != nil {
		t.Fatalf("Simulate() error = %v", err)
	}
	sum, err := AnalyzeRisk(traj, sched)
	if err != nil {
		t.Fatalf("AnalyzeRisk() error = %v", err)
	}

	if sum.FirstUnderwater != 0 {
		t.Errorf("first underwater = %d, want 0", sum.FirstUnderwater)
	}
	if sum.FirstNegativeNetWorth < 0 {
		t.Fatal("net worth never went negative, fixture expects insolvency")
	}
	if sum.FirstNegativeNetWorth <= sum.FirstUnderwater {
		t.Errorf("insolvency at month %d not after underwater at month %d",
			sum.FirstNegativeNetWorth, sum.FirstUnderwater)
	}
	if sum.Severity != SeverityCritical {
		t.Errorf("severity = %v, want critical", sum.Severity)
	}
	if sum.RecoveryMonth != -1 {
		t.Errorf("recovery month = %d, want never", sum.RecoveryMonth)
	}
	if sum.MonthsBelowInterest == 0 {
		t.Error("months below cumulative interest = 0, want many")
	}
}

func TestAnalyzeRisk_SeverityThreshold(t *testing.T) {
	sched := mustAmortize(t, LoanTerms{Principal: 1000, AnnualRate: 0, TermMonths: 20})

	// A hand-built trajectory: 'underwater' months have the investment below
	// the outstanding principal.
	build := func(underwater int) Trajectory {
		traj := make(Trajectory, 20)
		for i := range traj {
			traj[i] = Snapshot{Investment: 2000, Principal: 500, NetWorth: 3000}
		}
		for i := range underwater {
			traj[i].Investment = 100
		}
		return traj
	}

	testCases := []struct {
		underwater int
		want       Severity
	}{
		{0, SeverityNone},
		{1, SeverityInfo},     // 5% of the term
		{2, SeverityCritical}, // exactly the 10% threshold
		{20, SeverityCritical},
	}
	for _, tc := range testCases {
		sum, err := AnalyzeRisk(build(tc.underwater), sched)
		if err != nil {
			t.Fatalf("AnalyzeRisk() error = %v", err)
		}
		if sum.Severity != tc.want {
			t.Errorf("%d underwater months of 20: severity = %v, want %v", tc.underwater, sum.Severity, tc.want)
		}
	}
}

func TestAnalyzeRisk_EmptyTrajectory(t *testing.T) {
	sched := mustAmortize(t, LoanTerms{Principal: 1000, AnnualRate: 0, TermMonths: 4})
	if _, err := AnalyzeRisk(nil, sched); !errors.Is(err, ErrEmptyTrajectory) {
		t.Errorf("AnalyzeRisk(nil) error = %v, want ErrEmptyTrajectory", err)
	}
}
