package payoff

import (
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/PaesslerAG/jsonpath"
)

// This file fetches historical monthly closes for the S&P 500 index from the
// Yahoo Finance chart API and turns them into a monthly return series.

// SP500Ticker is the Yahoo Finance symbol of the S&P 500 index.
const SP500Ticker = "^GSPC"

// FetchSP500 downloads the S&P 500 monthly return series from the given
// month to today. Responses are cached on disk with a daily expiry.
func FetchSP500(from Month) (*ReturnSeries, error) {
	closes, err := yahooMonthlyCloses(SP500Ticker, from)
	if err != nil {
		return nil, err
	}
	return MonthlyReturns(closes), nil
}

// yahooMonthlyCloses returns the adjusted close of the last trading day of
// each month for a ticker.
func yahooMonthlyCloses(ticker string, from Month) (map[Month]float64, error) {
	// The chart endpoint takes unix-second bounds; interval=1mo makes Yahoo
	// do the monthly resampling server side.
	addr := fmt.Sprintf(
		"https://query1.finance.yahoo.com/v8/finance/chart/%s?interval=1mo&period1=%d&period2=%d",
		url.PathEscape(ticker), from.time().Unix(), time.Now().Unix())

	var jobj any
	if err := jwget(daily(), addr, &jobj); err != nil {
		return nil, fmt.Errorf("error in wget %q: %w", ticker, err)
	}

	timestamps, err := jsonFloats(jobj, "$.chart.result[0].timestamp")
	if err != nil {
		return nil, fmt.Errorf("error parsing %q: %w", ticker, err)
	}
	closes, err := jsonFloats(jobj, "$.chart.result[0].indicators.adjclose[0].adjclose")
	if err != nil {
		// Indexes have no adjusted close; the raw close is the fallback.
		closes, err = jsonFloats(jobj, "$.chart.result[0].indicators.quote[0].close")
		if err != nil {
			return nil, fmt.Errorf("error parsing %q: %w", ticker, err)
		}
	}
	if len(timestamps) != len(closes) {
		return nil, fmt.Errorf("error parsing %q: %d timestamps for %d closes", ticker, len(timestamps), len(closes))
	}

	prices := make(map[Month]float64, len(closes))
	for i, ts := range timestamps {
		on := time.Unix(int64(ts), 0).UTC()
		// Entries come in chronological order, so the last write for a month
		// is its last quote.
		prices[NewMonth(on.Year(), on.Month())] = closes[i]
	}
	return prices, nil
}

// jsonFloats extracts an array of numbers from a parsed JSON document.
// because jsonpath is never clear about whether it returns a list or a single
// answer, nulls (untraded months) are skipped rather than failed on.
func jsonFloats(jobj any, path string) ([]float64, error) {
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("%q: %w", path, err)
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, fmt.Errorf("%q: not a list: %v", path, jval)
	}
	vals := make([]float64, 0, len(jlist))
	for _, jv := range jlist {
		if v, ok := jv.(float64); ok {
			vals = append(vals, v)
		}
	}
	return vals, nil
}

// MonthlyReturns converts month-end closes into a fractional return series.
// The first month is consumed as the base and yields no return, mirroring a
// percentage change over the previous close.
func MonthlyReturns(closes map[Month]float64) *ReturnSeries {
	months := make([]Month, 0, len(closes))
	for on := range closes {
		months = append(months, on)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	s := new(ReturnSeries)
	for i := 1; i < len(months); i++ {
		prev, cur := closes[months[i-1]], closes[months[i]]
		if prev == 0 {
			continue
		}
		s.Append(months[i], cur/prev-1)
	}
	return s
}
