package payoff

import (
	"errors"
	"math"
	"testing"
)

func TestLoanTerms_Payment(t *testing.T) {
	testCases := []struct {
		name        string
		terms       LoanTerms
		wantPayment float64
		tolerance   float64
	}{
		{
			name:        "reference 30y mortgage",
			terms:       LoanTerms{Principal: 500000, AnnualRate: 0.07, TermMonths: 360},
			wantPayment: 3326.51,
			tolerance:   0.01,
		},
		{
			name:        "zero rate is straight-line",
			terms:       LoanTerms{Principal: 120000, AnnualRate: 0, TermMonths: 240},
			wantPayment: 500,
			tolerance:   1e-9,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := tc.terms.Payment()
			if err != nil {
				t.Fatalf("Payment() error = %v", err)
			}
			if math.Abs(got-tc.wantPayment) > tc.tolerance {
				t.Errorf("Payment() = %f, want %f", got, tc.wantPayment)
			}
		})
	}
}

func TestLoanTerms_TotalInterest(t *testing.T) {
	terms := LoanTerms{Principal: 500000, AnnualRate: 0.07, TermMonths: 360}
	got, err := terms.TotalInterest()
	if err != nil {
		t.Fatalf("TotalInterest() error = %v", err)
	}
	if math.Abs(got-697544.49) > 1 {
		t.Errorf("TotalInterest() = %f, want ~697544.49", got)
	}
}

func TestLoanTerms_PaymentExceedsPrincipal(t *testing.T) {
	// With a positive rate, interest is strictly positive.
	for _, terms := range []LoanTerms{
		{Principal: 1000, AnnualRate: 0.001, TermMonths: 12},
		{Principal: 500000, AnnualRate: 0.07, TermMonths: 360},
		{Principal: 250000, AnnualRate: 0.15, TermMonths: 60},
	} {
		payment, err := terms.Payment()
		if err != nil {
			t.Fatalf("Payment() error = %v", err)
		}
		if payment*float64(terms.TermMonths) <= terms.Principal {
			t.Errorf("terms %+v: total paid %f does not exceed principal", terms, payment*float64(terms.TermMonths))
		}
	}
}

func TestLoanTerms_Validate(t *testing.T) {
	testCases := []struct {
		name  string
		terms LoanTerms
	}{
		{"zero principal", LoanTerms{Principal: 0, AnnualRate: 0.05, TermMonths: 12}},
		{"negative principal", LoanTerms{Principal: -10, AnnualRate: 0.05, TermMonths: 12}},
		{"zero term", LoanTerms{Principal: 1000, AnnualRate: 0.05, TermMonths: 0}},
		{"negative rate", LoanTerms{Principal: 1000, AnnualRate: -0.05, TermMonths: 12}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Amortize(tc.terms); !errors.Is(err, ErrInvalidTerms) {
				t.Errorf("Amortize() error = %v, want ErrInvalidTerms", err)
			}
		})
	}
}

func TestAmortize_ScheduleInvariants(t *testing.T) {
	terms := LoanTerms{Principal: 500000, AnnualRate: 0.07, TermMonths: 360}
	sched, err := Amortize(terms)
	if err != nil {
		t.Fatalf("Amortize() error = %v", err)
	}
	if len(sched.Installments) != terms.TermMonths {
		t.Fatalf("got %d installments, want %d", len(sched.Installments), terms.TermMonths)
	}

	// The balance never increases and ends at zero.
	prev := terms.Principal
	var sumPrincipal float64
	for i, in := range sched.Installments {
		if in.Remaining > prev+1e-9 {
			t.Errorf("month %d: balance %f grew from %f", i, in.Remaining, prev)
		}
		prev = in.Remaining
		sumPrincipal += in.Principal
	}
	final := sched.Installments[len(sched.Installments)-1].Remaining
	if math.Abs(final)/terms.Principal > 1e-6 {
		t.Errorf("final balance = %f, want ~0", final)
	}
	if math.Abs(sumPrincipal-terms.Principal)/terms.Principal > 1e-6 {
		t.Errorf("sum of principal portions = %f, want %f", sumPrincipal, terms.Principal)
	}
	if math.Abs(sched.TotalInterest()-697544.49) > 1 {
		t.Errorf("schedule TotalInterest() = %f, want ~697544.49", sched.TotalInterest())
	}
}
