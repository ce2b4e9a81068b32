package payoff

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"iter"
	"math"
	"os"
	"slices"
	"sort"
)

// ErrInvalidReturn reports a non-finite or out-of-range return in a series.
// A return below -1 would mean losing more than the whole position.
var ErrInvalidReturn = errors.New("invalid return")

// ErrInsufficientData reports a window that runs past the end of the series.
var ErrInsufficientData = errors.New("insufficient data")

// ReturnSeries stores a chronological series of monthly fractional returns
// (-0.05 for a 5% loss). Months are unique and the series is always sorted.
// Once decoded it is treated as read-only by the rest of the package.
type ReturnSeries struct {
	months  []Month
	returns []float64
}

// Len returns the number of months in the series.
func (s *ReturnSeries) Len() int { return len(s.months) }

// First returns the first month of the series, or the zero Month if empty.
func (s *ReturnSeries) First() Month {
	if len(s.months) == 0 {
		return Month{}
	}
	return s.months[0]
}

// Last returns the last month of the series, or the zero Month if empty.
func (s *ReturnSeries) Last() Month {
	if len(s.months) == 0 {
		return Month{}
	}
	return s.months[len(s.months)-1]
}

// chronological is a private implementation to make this series chronologically sorted.
type chronological struct{ *ReturnSeries }

func (s chronological) Len() int           { return len(s.months) }
func (s chronological) Less(i, j int) bool { return s.months[i].Before(s.months[j]) }
func (s chronological) Swap(i, j int) {
	s.months[i], s.months[j] = s.months[j], s.months[i]
	s.returns[i], s.returns[j] = s.returns[j], s.returns[i]
}

func (s *ReturnSeries) sort() { sort.Sort(chronological{s}) }

// Append adds a month's return to the series.
//
// An existing value at that month is overwritten.
func (s *ReturnSeries) Append(on Month, r float64) *ReturnSeries {
	if i := slices.Index(s.months, on); i >= 0 {
		// Found a point at that exact same month.
		// We choose to replace, because it gives higher priority to the last data.
		s.returns[i] = r
		return s
	}
	s.months, s.returns = append(s.months, on), append(s.returns, r)
	s.sort()
	return s
}

// Get returns the return at 'on' and true, or zero and false.
func (s *ReturnSeries) Get(on Month) (float64, bool) {
	if i := slices.Index(s.months, on); i >= 0 {
		return s.returns[i], true
	}
	return 0, false
}

// Values returns an iterator over all month/return pairs in chronological order.
func (s *ReturnSeries) Values() iter.Seq2[Month, float64] {
	return func(yield func(Month, float64) bool) {
		for i, on := range s.months {
			if !yield(on, s.returns[i]) {
				return
			}
		}
	}
}

// Index returns the offset of 'on' in the series, or -1.
func (s *ReturnSeries) Index(on Month) int { return slices.Index(s.months, on) }

// StartAt returns the month at the given offset.
func (s *ReturnSeries) StartAt(offset int) Month { return s.months[offset] }

// Validate checks every return in the series. A series that fails validation
// is corrupt and must not be scanned: callers should abort, not skip.
func (s *ReturnSeries) Validate() error {
	for i, r := range s.returns {
		if math.IsNaN(r) || math.IsInf(r, 0) {
			return fmt.Errorf("%w: non-finite return at %s", ErrInvalidReturn, s.months[i])
		}
		if r < -1 {
			return fmt.Errorf("%w: return %g at %s is below -100%%", ErrInvalidReturn, r, s.months[i])
		}
		if i > 0 && !s.months[i-1].Before(s.months[i]) {
			return fmt.Errorf("%w: months not strictly increasing at %s", ErrInvalidReturn, s.months[i])
		}
	}
	return nil
}

// Window returns the n-month slice of returns starting at the given offset.
// The slice aliases the series backing array and must not be mutated.
func (s *ReturnSeries) Window(offset, n int) ([]float64, error) {
	if offset < 0 || n <= 0 || offset+n > len(s.returns) {
		return nil, fmt.Errorf("%w: want %d months at offset %d, series has %d", ErrInsufficientData, n, offset, len(s.returns))
	}
	return s.returns[offset : offset+n], nil
}

// WindowAt is like Window but locates the offset from a starting month.
func (s *ReturnSeries) WindowAt(start Month, n int) ([]float64, error) {
	offset := s.Index(start)
	if offset < 0 {
		return nil, fmt.Errorf("%w: no data for %s", ErrInsufficientData, start)
	}
	return s.Window(offset, n)
}

// Windows returns the number of valid n-month windows in the series.
func (s *ReturnSeries) Windows(n int) int {
	if c := len(s.returns) - n + 1; c > 0 {
		return c
	}
	return 0
}

// This file also persists the series as a plain JSON object mapping
// "YYYY-MM" to the fractional return of that month. The format is
// deliberately simple so the file stays human-readable and git-friendly.

// DecodeReturns reads a return series from its JSON representation.
func DecodeReturns(r io.Reader) (*ReturnSeries, error) {
	raw := make(map[string]float64)
	dec := json.NewDecoder(r)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding return series: %w", err)
	}
	s := new(ReturnSeries)
	for label, v := range raw {
		on, err := ParseMonth(label)
		if err != nil {
			return nil, fmt.Errorf("decoding return series: %w", err)
		}
		s.Append(on, v)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// EncodeReturns writes the series as a JSON object with sorted keys.
func EncodeReturns(w io.Writer, s *ReturnSeries) error {
	raw := make(map[string]float64, s.Len())
	for on, v := range s.Values() {
		raw[on.String()] = v
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(raw)
}

// LoadReturns reads a return series from a JSON file.
func LoadReturns(filename string) (*ReturnSeries, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening return series file: %w", err)
	}
	defer f.Close()
	return DecodeReturns(f)
}

// SaveReturns writes a return series to a JSON file.
func SaveReturns(filename string, s *ReturnSeries) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating return series file: %w", err)
	}
	defer f.Close()
	return EncodeReturns(f, s)
}
