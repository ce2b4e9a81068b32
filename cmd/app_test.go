package cmd

import (
	"flag"
	"math"
	"testing"

	"github.com/google/subcommands"
)

func TestLoanFlags(t *testing.T) {
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	var l loanFlags
	l.register(f)

	if err := f.Parse([]string{"-price", "250000", "-rate", "5.5", "-months", "240"}); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	terms := l.terms()
	if terms.Principal != 250000 || terms.TermMonths != 240 {
		t.Errorf("terms = %+v", terms)
	}
	// The flag takes a percent, the engine a fraction.
	if math.Abs(terms.AnnualRate-0.055) > 1e-12 {
		t.Errorf("AnnualRate = %v, want 0.055", terms.AnnualRate)
	}
}

func TestLoanFlags_Defaults(t *testing.T) {
	f := flag.NewFlagSet("test", flag.ContinueOnError)
	var l loanFlags
	l.register(f)

	if err := f.Parse(nil); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	terms := l.terms()
	if terms.Principal != 500000 || terms.TermMonths != 360 || math.Abs(terms.AnnualRate-0.07) > 1e-12 {
		t.Errorf("default terms = %+v", terms)
	}
	if err := terms.Validate(); err != nil {
		t.Errorf("default terms do not validate: %v", err)
	}
}

func TestRegister(t *testing.T) {
	c := subcommands.NewCommander(flag.NewFlagSet("poi", flag.ContinueOnError), "poi")
	Register(c)
	// Every command must expose a name, a synopsis and a usage string.
	c.VisitCommands(func(_ *subcommands.CommandGroup, cmd subcommands.Command) {
		if cmd.Name() == "" || cmd.Synopsis() == "" || cmd.Usage() == "" {
			t.Errorf("command %q is missing its help text", cmd.Name())
		}
	})
}
