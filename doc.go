// Package payoff answers a single financial question against history instead
// of against an assumed average return: when buying a large asset, is it
// better to pay cash and invest the freed-up monthly payment, or to finance
// the purchase and invest the lump sum?
//
// The package replays both strategies month by month over real historical
// S&P 500 return sequences, which exposes sequence-of-returns risk: two
// windows with the same average return can produce wildly different outcomes
// depending on the order the returns arrive in.
//
// The core functionalities include:
//   - Amortization: fixed-payment annuity math and the per-month
//     interest/principal breakdown of a loan.
//   - Simulation: advancing the competing strategies one month at a time over
//     a window of historical returns, producing a trajectory of snapshots.
//   - Risk analysis: drawdown, underwater months, forced-liquidation trigger
//     and recovery time for the financed strategy.
//   - Historical scan: replaying the simulation at every possible starting
//     month in the series and reducing the outcomes into a distribution.
//   - Return ingestion: fetching historical monthly index returns from market
//     data providers into a local, human-readable JSON file.
//
// This package serves as the foundational logic for the `poi` command-line
// tool; all reporting is layered on top of the structured records it returns.
package payoff
