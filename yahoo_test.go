package payoff

import (
	"math"
	"testing"
	"time"
)

func TestMonthlyReturns(t *testing.T) {
	closes := map[Month]float64{
		NewMonth(1990, time.January):  100,
		NewMonth(1990, time.February): 110,
		NewMonth(1990, time.March):    99,
	}
	s := MonthlyReturns(closes)
	if s.Len() != 2 {
		t.Fatalf("got %d returns from 3 closes, want 2", s.Len())
	}
	if r, _ := s.Get(NewMonth(1990, time.February)); math.Abs(r-0.10) > 1e-9 {
		t.Errorf("February return = %f, want 0.10", r)
	}
	if r, _ := s.Get(NewMonth(1990, time.March)); math.Abs(r-(-0.10)) > 1e-9 {
		t.Errorf("March return = %f, want -0.10", r)
	}
	if _, ok := s.Get(NewMonth(1990, time.January)); ok {
		t.Error("base month produced a return")
	}
}

func TestJsonFloats(t *testing.T) {
	jobj := map[string]any{
		"chart": map[string]any{
			"result": []any{
				map[string]any{"timestamp": []any{1.0, nil, 3.0}},
			},
		},
	}
	vals, err := jsonFloats(jobj, "$.chart.result[0].timestamp")
	if err != nil {
		t.Fatalf("jsonFloats() error = %v", err)
	}
	// nulls are untraded months and are skipped.
	if len(vals) != 2 || vals[0] != 1 || vals[1] != 3 {
		t.Errorf("jsonFloats() = %v, want [1 3]", vals)
	}

	if _, err := jsonFloats(jobj, "$.chart.result[0].missing"); err == nil {
		t.Error("jsonFloats() on a missing path succeeded")
	}
}
