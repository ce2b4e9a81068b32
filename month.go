package payoff

import (
	"encoding/json"
	"fmt"
	"time"
)

// MonthFormat is the format used to represent months as strings, e.g. "1990-01".
const MonthFormat = "2006-01"

const readMonthFormat = "2006-1" // Permissive read format (allows single-digit month).

// Month represents a calendar month, the granularity of the return series.
type Month struct {
	y int
	m time.Month
}

// NewMonth returns a normalized Month for the given year and month.
func NewMonth(year int, month time.Month) Month {
	d := Month{year, month}
	d.y, d.m, _ = d.time().Date()
	return d
}

// time returns a time.Time that is a canonical representation of that month
// (first day, midnight UTC).
func (d Month) time() time.Time { return time.Date(d.y, d.m, 1, 0, 0, 0, 0, time.UTC) }

// Year returns the year of the month.
func (d Month) Year() int { return d.y }

// Month returns the month of the year.
func (d Month) Month() time.Month { return d.time().Month() }

// String formats the month as "2006-01".
func (d Month) String() string { return d.time().Format(MonthFormat) }

// IsZero returns true if the month is the zero value.
func (d Month) IsZero() bool { return d.y == 0 && d.m == 0 }

// Before reports whether the month d is before x.
func (d Month) Before(x Month) bool { return d.time().Before(x.time()) }

// After reports whether the month d is after x.
func (d Month) After(x Month) bool { return d.time().After(x.time()) }

// AddMonths returns a new Month with the given number of months added.
func (d Month) AddMonths(i int) Month { return NewMonth(d.y, d.m+time.Month(i)) }

// Sub returns the number of months from x to d.
func (d Month) Sub(x Month) int { return (d.y-x.y)*12 + int(d.m-x.m) }

// ThisMonth returns the current month.
func ThisMonth() Month {
	y, m, _ := time.Now().Date()
	return NewMonth(y, m)
}

// ParseMonth parses a Month from a string. It is lenient and accepts formats
// like "1990-1" in addition to "1990-01".
func ParseMonth(str string) (Month, error) {
	on, err := time.Parse(readMonthFormat, str)
	if err != nil {
		// A bare year means January of that year.
		on, err = time.Parse("2006", str)
	}
	if err != nil {
		return Month{}, fmt.Errorf("invalid month %q want format %q: %w", str, MonthFormat, err)
	}
	y, m, _ := on.Date()
	return NewMonth(y, m), nil
}

// MustParseMonth is like ParseMonth but panics on error.
func MustParseMonth(str string) Month {
	d, err := ParseMonth(str)
	if err != nil {
		panic(err.Error())
	}
	return d
}

// UnmarshalJSON implements the json specific way to unmarshal a month from a json string.
func (j *Month) UnmarshalJSON(bytes []byte) error {
	var str string
	if err := json.Unmarshal(bytes, &str); err != nil {
		return err
	}
	on, err := ParseMonth(str)
	if err != nil {
		return fmt.Errorf("invalid month %q in data file: %w", str, err)
	}
	*j = on
	return nil
}

func (j Month) MarshalJSON() ([]byte, error) {
	str := j.String()
	return json.Marshal(&str)
}

// check that a Month pointer is a valid json marshal/unmarshaller type.
var _ json.Marshaler = (*Month)(nil)
var _ json.Unmarshaler = (*Month)(nil)
