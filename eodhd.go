package payoff

import (
	"flag"
	"fmt"
	"os"
	"time"
)

// This file contains functions to access the EODHD API, an alternative source
// for the index series when Yahoo is unavailable.

const eodhd_api_key = "EODHD_API_KEY"

var eodhdApiFlag = flag.String("eodhd-api-key", "", "EODHD API key to use for fetching prices from EODHD.com.\n If missing it will read for the environment variable \""+eodhd_api_key+"\". You can get one at https://eodhd.com/")

func eodhdApiKey() string {
	// If the flag is not set, we try to read it from the environment variable.
	if *eodhdApiFlag == "" {
		*eodhdApiFlag = os.Getenv(eodhd_api_key)
	}
	return *eodhdApiFlag
}

// SP500EodhdTicker is the EODHD symbol of the S&P 500 index.
const SP500EodhdTicker = "GSPC.INDX"

// FetchSP500Eodhd downloads the S&P 500 monthly return series from EODHD,
// resampling daily closes to the last trading day of each month.
func FetchSP500Eodhd(from Month) (*ReturnSeries, error) {
	apiKey := eodhdApiKey()
	if apiKey == "" {
		return nil, fmt.Errorf("missing EODHD API key: set -eodhd-api-key or %s", eodhd_api_key)
	}
	closes, err := eodhdMonthlyCloses(apiKey, SP500EodhdTicker, from)
	if err != nil {
		return nil, err
	}
	return MonthlyReturns(closes), nil
}

// eodhdMonthlyCloses returns the split-adjusted close of the last trading day
// of each month for a ticker.
func eodhdMonthlyCloses(apiKey, ticker string, from Month) (map[Month]float64, error) {
	// https://eodhd.com/api/eod/GSPC.INDX?api_token=...&fmt=json
	// [
	//
	//	{
	//		"date": "2024-02-13",
	//		"open": 675.066,
	//		"high": 684.219,
	//		"low": 648.659,
	//		"close": 668.445,
	//		"adjusted_close": 67.705,
	//		"volume": 0
	//	  },

	// bounds are included in the response, and depth is limited by the
	// subscription plan; the free tier only reaches one year back.
	addr := fmt.Sprintf("https://eodhd.com/api/eod/%s?fmt=json&api_token=%s&from=%s-01&to=%s",
		ticker, apiKey, from, time.Now().Format("2006-01-02"))
	type Info struct {
		Date  string  `json:"date"`
		Close float64 `json:"adjusted_close"`
	}

	// that's the payload
	content := make([]Info, 0)
	if err := jwget(daily(), addr, &content); err != nil {
		return nil, err
	}

	prices := make(map[Month]float64, len(content))
	for _, info := range content {
		on, err := time.Parse("2006-01-02", info.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q from eodhd: %w", info.Date, err)
		}
		// Daily rows come in chronological order, so the last write for a
		// month is its last trading day.
		prices[NewMonth(on.Year(), on.Month())] = info.Close
	}
	return prices, nil
}
