package filter

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidDateSpec = errors.New("invalid date filter")

type Granularity int

const (
	Day Granularity = iota + 1
	Month
	Year
	YearRange
	// MonthRange matches months across every year in the data.
	MonthRange
)

func (g Granularity) String() string {
	switch g {
	case Day:
		return "day"
	case Month:
		return "month"
	case Year:
		return "year"
	case YearRange:
		return "year-range"
	case MonthRange:
		return "month-range"
	default:
		return "unknown"
	}
}

// DateSpec is a date filter whose granularity is inferred from its shape:
//
//	2025-05-10  day
//	2025-05     month
//	2025        year
//	1975-2025   inclusive year range
//	05-09       inclusive month range, any year
type DateSpec struct {
	Granularity Granularity
	Raw         string

	year, month int
	day         time.Time
	lo, hi      int
}

func ParseDateSpec(s string) (DateSpec, error) {
	s = strings.TrimSpace(s)
	spec := DateSpec{Raw: s}

	switch {
	case hasShape(s, "dddd-dd-dd"):
		day, err := time.Parse(time.DateOnly, s)
		if err != nil {
			return DateSpec{}, fmt.Errorf("%w %q: %v", ErrInvalidDateSpec, s, err)
		}
		spec.Granularity, spec.day = Day, day
	case hasShape(s, "dddd-dd"):
		spec.Granularity = Month
		spec.year, spec.month = atoi(s[:4]), atoi(s[5:])
		if !validMonth(spec.month) {
			return DateSpec{}, fmt.Errorf("%w %q: month out of range", ErrInvalidDateSpec, s)
		}
	case hasShape(s, "dddd"):
		spec.Granularity, spec.year = Year, atoi(s)
	case hasShape(s, "dddd-dddd"):
		spec.Granularity = YearRange
		spec.lo, spec.hi = atoi(s[:4]), atoi(s[5:])
		if spec.lo > spec.hi {
			return DateSpec{}, fmt.Errorf("%w %q: range start after end", ErrInvalidDateSpec, s)
		}
	case hasShape(s, "dd-dd"):
		spec.Granularity = MonthRange
		spec.lo, spec.hi = atoi(s[:2]), atoi(s[3:])
		if !validMonth(spec.lo) || !validMonth(spec.hi) {
			return DateSpec{}, fmt.Errorf("%w %q: month out of range", ErrInvalidDateSpec, s)
		}
		if spec.lo > spec.hi {
			return DateSpec{}, fmt.Errorf("%w %q: range start after end", ErrInvalidDateSpec, s)
		}
	default:
		return DateSpec{}, fmt.Errorf("%w %q: expected YYYY-MM-DD, YYYY-MM, YYYY, YYYY-YYYY or MM-MM", ErrInvalidDateSpec, s)
	}

	return spec, nil
}

func (d DateSpec) Matches(t time.Time) bool {
	switch d.Granularity {
	case Day:
		y, m, dd := t.Date()
		return y == d.day.Year() && m == d.day.Month() && dd == d.day.Day()
	case Month:
		return t.Year() == d.year && int(t.Month()) == d.month
	case Year:
		return t.Year() == d.year
	case YearRange:
		return d.lo <= t.Year() && t.Year() <= d.hi
	case MonthRange:
		return d.lo <= int(t.Month()) && int(t.Month()) <= d.hi
	default:
		return false
	}
}

// Bounds returns the half-open interval [start, end) covered by a day, month
// or year spec. Ranges have no single interval and report false.
func (d DateSpec) Bounds() (time.Time, time.Time, bool) {
	switch d.Granularity {
	case Day:
		return d.day, d.day.AddDate(0, 0, 1), true
	case Month:
		start := time.Date(d.year, time.Month(d.month), 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, 0), true
	case Year:
		start := time.Date(d.year, time.January, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(1, 0, 0), true
	default:
		return time.Time{}, time.Time{}, false
	}
}

// hasShape reports whether s matches shape, where 'd' stands for one ASCII
// digit and every other byte must match literally.
func hasShape(s, shape string) bool {
	if len(s) != len(shape) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if shape[i] == 'd' {
			if s[i] < '0' || s[i] > '9' {
				return false
			}
			continue
		}
		if s[i] != shape[i] {
			return false
		}
	}
	return true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

func validMonth(m int) bool {
	return m >= 1 && m <= 12
}
