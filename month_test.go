package payoff

import (
	"testing"
	"time"
)

func TestParseMonth(t *testing.T) {
	testCases := []struct {
		in      string
		want    Month
		wantErr bool
	}{
		{in: "1990-01", want: NewMonth(1990, time.January)},
		{in: "1990-1", want: NewMonth(1990, time.January)},
		{in: "2008-10", want: NewMonth(2008, time.October)},
		{in: "1929", want: NewMonth(1929, time.January)},
		{in: "1990-13", wantErr: true},
		{in: "not-a-month", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParseMonth(tc.in)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("ParseMonth(%q) = %v, want error", tc.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMonth(%q) error = %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("ParseMonth(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestMonth_AddMonths(t *testing.T) {
	on := MustParseMonth("1990-11")
	if got := on.AddMonths(3); got != MustParseMonth("1991-02") {
		t.Errorf("AddMonths(3) = %v, want 1991-02", got)
	}
	if got := on.AddMonths(-11); got != MustParseMonth("1989-12") {
		t.Errorf("AddMonths(-11) = %v, want 1989-12", got)
	}
	if got := on.AddMonths(360); got != MustParseMonth("2020-11") {
		t.Errorf("AddMonths(360) = %v, want 2020-11", got)
	}
}

func TestMonth_Sub(t *testing.T) {
	a := MustParseMonth("1990-02")
	b := MustParseMonth("2020-01")
	if got := b.Sub(a); got != 359 {
		t.Errorf("Sub() = %d, want 359", got)
	}
	if got := a.Sub(b); got != -359 {
		t.Errorf("Sub() = %d, want -359", got)
	}
}

func TestMonth_Ordering(t *testing.T) {
	a := MustParseMonth("1990-01")
	b := MustParseMonth("1990-02")
	if !a.Before(b) || b.Before(a) || !b.After(a) {
		t.Errorf("ordering of %v and %v is wrong", a, b)
	}
	if a.String() != "1990-01" {
		t.Errorf("String() = %q, want %q", a.String(), "1990-01")
	}
}
