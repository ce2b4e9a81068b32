package payoff

import "testing"

func TestAmount_String(t *testing.T) {
	testCases := []struct {
		in   Amount
		want string
	}{
		{3326.51, "$3,326.51"},
		{500000, "$500,000.00"},
		{-25784.66, "-$25,784.66"},
		{0.005, "$0.01"}, // rounds to the cent
	}
	for _, tc := range testCases {
		if got := tc.in.String(); got != tc.want {
			t.Errorf("Amount(%v).String() = %q, want %q", float64(tc.in), got, tc.want)
		}
	}
}

func TestAmount_SignedString(t *testing.T) {
	if got := Amount(100).SignedString(); got != "+$100.00" {
		t.Errorf("SignedString() = %q, want +$100.00", got)
	}
	if got := Amount(0).SignedString(); got != "-" {
		t.Errorf("SignedString() = %q, want -", got)
	}
}

func TestPercent_String(t *testing.T) {
	if got := Percent(0.07).String(); got != "7.00%" {
		t.Errorf("Percent(0.07).String() = %q, want 7.00%%", got)
	}
	if got := Percent(-0.5).SignedString(); got != "-50.00%" {
		t.Errorf("Percent(-0.5).SignedString() = %q, want -50.00%%", got)
	}
	if got := Percent(0).SignedString(); got != "-" {
		t.Errorf("Percent(0).SignedString() = %q, want -", got)
	}
}

func TestPercent_Equal(t *testing.T) {
	if !Percent(0.07).Equal(0.07001) {
		t.Error("Equal() too strict for display precision")
	}
	if Percent(0.07).Equal(0.08) {
		t.Error("Equal() matched clearly different rates")
	}
}
