package payoff

import (
	"errors"
	"fmt"
)

// ErrEmptyTrajectory reports a risk analysis over nothing.
var ErrEmptyTrajectory = errors.New("empty trajectory")

// DefaultSeverityThreshold is the underwater fraction at which the risk
// summary flips from informational to critical.
const DefaultSeverityThreshold = 0.10

// Severity classifies how much of the term was spent underwater.
type Severity int

const (
	// SeverityNone means the investment always covered the debt.
	SeverityNone Severity = iota
	// SeverityInfo means some underwater months, below the threshold fraction.
	SeverityInfo
	// SeverityCritical means the underwater fraction reached the threshold.
	SeverityCritical
)

func (s Severity) String() string {
	switch s {
	case SeverityNone:
		return "none"
	case SeverityInfo:
		return "informational"
	case SeverityCritical:
		return "critical"
	default:
		panic(fmt.Sprintf("unknown severity %d", s))
	}
}

// RiskSummary is the danger report for one financed trajectory.
//
// Underwater (investment below outstanding principal) and net worth turning
// negative are deliberately independent signals: the first means the position
// can no longer self-liquidate the debt, the second means insolvency once
// home equity is counted. They trigger at different times and neither is
// declared primary here.
type RiskSummary struct {
	// MaxDrawdown is the worst peak-to-trough decline of the investment
	// value, in [-1, 0]. Zero-based month of the trough in
	// MaxDrawdownMonth, -1 if the value never declined.
	MaxDrawdown      float64
	MaxDrawdownMonth int
	PeakInvestment   float64

	// Underwater months: investment below outstanding principal, meaning a
	// full liquidation could not retire the debt.
	UnderwaterMonths   int
	UnderwaterFraction float64
	FirstUnderwater    int // zero-based month, -1 if never
	Severity           Severity

	// RecoveryMonth is the first month the investment climbs back to its
	// initial lump value after having dropped below it, -1 if it never does
	// (or never dropped).
	RecoveryMonth int

	// Net worth minimum, a secondary indicator.
	MinNetWorth           float64
	MinNetWorthMonth      int
	FirstNegativeNetWorth int // zero-based month, -1 if never

	// MonthsBelowInterest counts months the investment was worth less than
	// the interest paid so far: the financed strategy losing to pay-cash
	// even before market risk is considered.
	MonthsBelowInterest int

	// FirstShortfall is the first month the self-funded variant of the
	// position went negative (payments could no longer be withdrawn from
	// it), -1 if it never did.
	FirstShortfall int
}

// AnalyzeRisk inspects a FinanceInvestLump trajectory for danger conditions.
// The schedule must be the one the trajectory was simulated against.
func AnalyzeRisk(traj Trajectory, sched *AmortizationSchedule) (*RiskSummary, error) {
	if len(traj) == 0 {
		return nil, ErrEmptyTrajectory
	}

	initial := sched.Terms.Principal
	sum := &RiskSummary{
		MaxDrawdownMonth:      -1,
		FirstUnderwater:       -1,
		RecoveryMonth:         -1,
		FirstNegativeNetWorth: -1,
		FirstShortfall:        -1,
		PeakInvestment:        initial,
		MinNetWorth:           traj[0].NetWorth,
	}

	peak := initial
	droppedBelowInitial := false

	for i, snap := range traj {
		v := snap.Investment

		// Drawdown tracks the literal value against its running peak.
		if v > peak {
			peak = v
		}
		if peak > 0 {
			if drawdown := (v - peak) / peak; drawdown < sum.MaxDrawdown {
				sum.MaxDrawdown = drawdown
				sum.MaxDrawdownMonth = i
			}
		}

		// Recovery: back at the initial lump after having been below it.
		if v < initial {
			droppedBelowInitial = true
		} else if droppedBelowInitial && sum.RecoveryMonth < 0 {
			sum.RecoveryMonth = i
		}

		if v < snap.Principal {
			sum.UnderwaterMonths++
			if sum.FirstUnderwater < 0 {
				sum.FirstUnderwater = i
			}
		}

		if snap.NetWorth < sum.MinNetWorth || i == 0 {
			sum.MinNetWorth = snap.NetWorth
			sum.MinNetWorthMonth = i
		}
		if snap.NetWorth < 0 && sum.FirstNegativeNetWorth < 0 {
			sum.FirstNegativeNetWorth = i
		}

		if v < snap.InterestPaid {
			sum.MonthsBelowInterest++
		}
		if snap.SelfFunded < 0 && sum.FirstShortfall < 0 {
			sum.FirstShortfall = i
		}
	}

	sum.PeakInvestment = peak
	sum.UnderwaterFraction = float64(sum.UnderwaterMonths) / float64(len(traj))
	switch {
	case sum.UnderwaterMonths == 0:
		sum.Severity = SeverityNone
	case sum.UnderwaterFraction < DefaultSeverityThreshold:
		sum.Severity = SeverityInfo
	default:
		sum.Severity = SeverityCritical
	}
	return sum, nil
}
