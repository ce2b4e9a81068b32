package payoff

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Amount is a display type for monetary quantities. The engine's arithmetic
// stays on float64 (returns compound multiplicatively and exactness is not
// the point of a historical replay); Amount only exists so that reports
// format dollars consistently.
type Amount float64

// amountCurrency is the currency of every amount in the engine: the original
// data set is the S&P 500, priced in USD.
const amountCurrency = money.USD

// String formats the amount as a currency string, e.g. "$3,326.51".
func (a Amount) String() string {
	cur := money.GetCurrency(amountCurrency)
	// decimal carries the float through the cent rounding so the formatter
	// receives an exact minor-unit integer.
	cents := decimal.NewFromFloat(float64(a)).Shift(int32(cur.Fraction)).Round(0)
	return money.New(cents.IntPart(), amountCurrency).Display()
}

// SignedString returns the amount with an explicit sign, "-" when zero.
func (a Amount) SignedString() string {
	if a == 0 {
		return "-"
	}
	if a > 0 {
		return "+" + a.String()
	}
	return a.String()
}
