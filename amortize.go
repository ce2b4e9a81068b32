package payoff

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidTerms reports loan terms the annuity formula cannot price.
var ErrInvalidTerms = errors.New("invalid loan terms")

// LoanTerms are the financing parameters of the asset purchase.
type LoanTerms struct {
	Principal  float64 // asset price, also the amount borrowed
	AnnualRate float64 // nominal annual rate, 0.07 for 7%
	TermMonths int
}

// Validate fails with ErrInvalidTerms when the terms cannot be amortized.
func (t LoanTerms) Validate() error {
	if t.Principal <= 0 {
		return fmt.Errorf("%w: principal %g must be positive", ErrInvalidTerms, t.Principal)
	}
	if t.TermMonths <= 0 {
		return fmt.Errorf("%w: term %d must be positive", ErrInvalidTerms, t.TermMonths)
	}
	if t.AnnualRate < 0 {
		return fmt.Errorf("%w: rate %g must not be negative", ErrInvalidTerms, t.AnnualRate)
	}
	return nil
}

// MonthlyRate returns the periodic rate, annual rate over 12.
func (t LoanTerms) MonthlyRate() float64 { return t.AnnualRate / 12 }

// Payment returns the fixed monthly payment for the terms, using the standard
// annuity formula payment = P * r(1+r)^n / ((1+r)^n - 1). The zero-rate case
// degenerates to straight-line repayment.
func (t LoanTerms) Payment() (float64, error) {
	if err := t.Validate(); err != nil {
		return 0, err
	}
	r := t.MonthlyRate()
	n := t.TermMonths
	if r == 0 {
		return t.Principal / float64(n), nil
	}
	// (1+r)^n is computed once and reused: over a 360-month term the repeated
	// exponentiation is where the floating error would otherwise accumulate.
	onePlusRtoN := math.Pow(1+r, float64(n))
	return t.Principal * (r * onePlusRtoN) / (onePlusRtoN - 1), nil
}

// TotalInterest returns the total interest paid over the full term.
func (t LoanTerms) TotalInterest() (float64, error) {
	payment, err := t.Payment()
	if err != nil {
		return 0, err
	}
	return payment*float64(t.TermMonths) - t.Principal, nil
}

// Installment is the breakdown of one monthly payment.
type Installment struct {
	Interest  float64 // interest portion of the payment
	Principal float64 // principal portion of the payment
	Remaining float64 // balance outstanding after the payment
}

// AmortizationSchedule is the full per-month breakdown of a loan.
type AmortizationSchedule struct {
	Terms        LoanTerms
	Payment      float64
	Installments []Installment
}

// TotalInterest returns the interest summed over the whole schedule.
func (s *AmortizationSchedule) TotalInterest() float64 {
	var total float64
	for _, in := range s.Installments {
		total += in.Interest
	}
	return total
}

// Remaining returns the balance outstanding after the given month (0-based).
func (s *AmortizationSchedule) Remaining(month int) float64 {
	return s.Installments[month].Remaining
}

// nextInstallment decomposes one payment given the current remaining balance.
// The balance is clamped at zero so the final month absorbs rounding residue.
func nextInstallment(remaining, payment, monthlyRate float64) Installment {
	interest := remaining * monthlyRate
	principal := payment - interest
	return Installment{
		Interest:  interest,
		Principal: principal,
		Remaining: math.Max(0, remaining-principal),
	}
}

// Amortize computes the fixed payment and the full schedule for the terms.
func Amortize(terms LoanTerms) (*AmortizationSchedule, error) {
	payment, err := terms.Payment()
	if err != nil {
		return nil, err
	}
	s := &AmortizationSchedule{
		Terms:        terms,
		Payment:      payment,
		Installments: make([]Installment, terms.TermMonths),
	}
	remaining := terms.Principal
	rate := terms.MonthlyRate()
	for i := range s.Installments {
		s.Installments[i] = nextInstallment(remaining, payment, rate)
		remaining = s.Installments[i].Remaining
	}
	return s, nil
}
