package payoff

import (
	"fmt"
	"math"
	"strings"
)

// Strategy selects one of the competing ways to buy the asset.
type Strategy int

const (
	// OwnOutright pays cash and invests nothing: a flat reference line.
	OwnOutright Strategy = iota
	// CashInvestPayments pays cash and invests the would-be monthly payment.
	CashInvestPayments
	// FinanceInvestLump borrows, invests the full price immediately, and pays
	// the loan from income while the lump stays invested.
	FinanceInvestLump
	// FinanceForcedLiquidation is FinanceInvestLump with a stop-loss rule:
	// the first month the investment cannot retire the debt, it is liquidated
	// into the principal and the remaining schedule is paid from income.
	FinanceForcedLiquidation
)

func (s Strategy) String() string {
	switch s {
	case OwnOutright:
		return "own-outright"
	case CashInvestPayments:
		return "pay-cash-invest-payments"
	case FinanceInvestLump:
		return "finance-invest-lump"
	case FinanceForcedLiquidation:
		return "finance-forced-liquidation"
	default:
		panic(fmt.Sprintf("unknown strategy %d", s))
	}
}

// Competitors are the strategies with dynamics, scanned by default.
var Competitors = []Strategy{OwnOutright, CashInvestPayments, FinanceInvestLump}

func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "own", "own-outright":
		return OwnOutright, nil
	case "cash", "pay-cash", "pay-cash-invest-payments":
		return CashInvestPayments, nil
	case "lump", "finance", "finance-invest-lump":
		return FinanceInvestLump, nil
	case "liquidation", "finance-forced-liquidation":
		return FinanceForcedLiquidation, nil
	default:
		return OwnOutright, fmt.Errorf("unknown strategy %q", s)
	}
}

// Snapshot is the state of one strategy at the end of one month.
type Snapshot struct {
	Month    Month
	Invested float64 // cumulative contributions to the position
	// Investment is the mark-to-market value of the position. A position
	// cannot be worth less than a total loss, so it never goes negative.
	Investment float64
	// SelfFunded answers "could the position have funded its own loan
	// payments": the lump value with each month's payment withdrawn after
	// that month's return. It is a notional figure and goes negative the
	// month income would have had to step in. Zero for unfinanced strategies.
	SelfFunded float64
	// Liquidatable is SelfFunded clamped at zero: what a sale could actually
	// raise out of the self-funded variant.
	Liquidatable float64
	Principal    float64 // outstanding loan principal
	InterestPaid float64 // cumulative interest paid
	// NetWorth nets the asset price and position against interest cost.
	// It may go negative even though Investment cannot.
	NetWorth   float64
	Liquidated bool // FinanceForcedLiquidation only
}

// Trajectory is the month-by-month evolution of one strategy.
type Trajectory []Snapshot

// Final returns the last snapshot of the trajectory.
func (t Trajectory) Final() Snapshot { return t[len(t)-1] }

// Simulate advances one strategy over a window of monthly returns, one month
// per installment of the schedule. The window must cover the full term; a
// longer window is allowed and the excess ignored.
//
// start is the month of the first return in the window and is used only to
// label snapshots.
func Simulate(strategy Strategy, sched *AmortizationSchedule, window []float64, start Month) (Trajectory, error) {
	n := sched.Terms.TermMonths
	if len(window) < n {
		return nil, fmt.Errorf("%w: window has %d months, term needs %d", ErrInsufficientData, len(window), n)
	}
	switch strategy {
	case OwnOutright:
		return simulateOwn(sched, window[:n], start), nil
	case CashInvestPayments:
		return simulateCash(sched, window[:n], start), nil
	case FinanceInvestLump:
		return simulateLump(sched, window[:n], start, false), nil
	case FinanceForcedLiquidation:
		return simulateLump(sched, window[:n], start, true), nil
	default:
		panic(fmt.Sprintf("unknown strategy %d", strategy))
	}
}

// simulateOwn is the baseline: the asset is owned, nothing is invested, and
// net worth stays flat at the asset price.
func simulateOwn(sched *AmortizationSchedule, window []float64, start Month) Trajectory {
	price := sched.Terms.Principal
	traj := make(Trajectory, len(window))
	for i := range window {
		traj[i] = Snapshot{
			Month:    start.AddMonths(i),
			NetWorth: price,
		}
	}
	return traj
}

// simulateCash contributes the monthly payment and then applies the month's
// return, so a contribution made in month i participates in month i's return.
// This matches the closed form: each contribution grows by every return from
// its own month through the end of the window.
func simulateCash(sched *AmortizationSchedule, window []float64, start Month) Trajectory {
	price := sched.Terms.Principal
	traj := make(Trajectory, len(window))
	var value, invested float64
	for i, r := range window {
		invested += sched.Payment
		value = (value + sched.Payment) * (1 + r)
		traj[i] = Snapshot{
			Month:      start.AddMonths(i),
			Invested:   invested,
			Investment: value, // returns are >= -1 so value cannot go negative
			NetWorth:   price + value,
		}
	}
	return traj
}

// cashInvestClosedForm is the direct evaluation of the pay-cash strategy's
// final investment value: the sum over contributions of the contribution
// compounded by every return from its month onward. It exists as an
// independent cross-check of the incremental accumulation in simulateCash.
func cashInvestClosedForm(payment float64, window []float64) float64 {
	var total float64
	for i := range window {
		contribution := payment
		for j := i; j < len(window); j++ {
			contribution *= 1 + window[j]
		}
		total += contribution
	}
	return total
}

// simulateLump invests the full price up front and lets it ride while the
// loan is paid from income. Net worth nets the accumulating interest cost
// against the position.
//
// Alongside, the self-funded variant withdraws the payment from the position
// each month. The order matters there: the return applies first, then the
// withdrawal; withdrawing before the return would model a different (wrong)
// cash flow timing.
func simulateLump(sched *AmortizationSchedule, window []float64, start Month, forcedLiquidation bool) Trajectory {
	price := sched.Terms.Principal
	rate := sched.Terms.MonthlyRate()
	traj := make(Trajectory, len(window))
	value := price
	selfFunded := price
	remaining := price
	var interestPaid float64
	liquidated := false
	for i, r := range window {
		if !liquidated {
			value *= 1 + r
			selfFunded = selfFunded*(1+r) - sched.Payment
		}
		// The balance is re-amortized locally instead of read from the
		// schedule so that a forced liquidation, which pays the balance
		// down early, keeps charging interest on what is actually owed.
		in := nextInstallment(remaining, sched.Payment, rate)
		interestPaid += in.Interest
		remaining = in.Remaining

		if forcedLiquidation && !liquidated && value < remaining {
			// Sell everything into the debt; from here on the schedule is
			// paid from income and the position stays empty.
			remaining = math.Max(0, remaining-value)
			value = 0
			selfFunded = 0
			liquidated = true
		}

		traj[i] = Snapshot{
			Month:        start.AddMonths(i),
			Invested:     price,
			Investment:   value,
			SelfFunded:   selfFunded,
			Liquidatable: math.Max(0, selfFunded),
			Principal:    remaining,
			InterestPaid: interestPaid,
			NetWorth:     price + value - interestPaid,
			Liquidated:   liquidated,
		}
	}
	return traj
}
