package domain

import "strings"

// Month is a calendar month in the rainfall normals, January = 0.
type Month int

const (
	Jan Month = iota
	Feb
	Mar
	Apr
	May
	Jun
	Jul
	Aug
	Sep
	Oct
	Nov
	Dec
)

// AnnualCode selects the annual total instead of a single month.
const AnnualCode = "ANNUAL"

// monthCodes is the month index: the ordered calendar used to resolve ranges.
var monthCodes = [12]string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}

// Months returns all twelve months in calendar order.
func Months() []Month {
	out := make([]Month, len(monthCodes))
	for i := range monthCodes {
		out[i] = Month(i)
	}
	return out
}

// String returns the upper-case month code, e.g. "JAN".
func (m Month) String() string {
	if !m.Valid() {
		return ""
	}
	return monthCodes[m]
}

// Valid reports whether m is one of the twelve calendar months.
func (m Month) Valid() bool {
	return m >= Jan && m <= Dec
}

// NormalizeMonthCode trims and upper-cases a month code from user input.
func NormalizeMonthCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// ParseMonth resolves a month code (case-insensitive, surrounding whitespace
// ignored). ANNUAL is not a month and is rejected.
func ParseMonth(code string) (Month, bool) {
	code = NormalizeMonthCode(code)
	for i, c := range monthCodes {
		if c == code {
			return Month(i), true
		}
	}
	return 0, false
}

// ResolveMonthRange returns the months from start to end inclusive. When
// start comes after end the range wraps across the year boundary, so
// NOV..FEB yields NOV, DEC, JAN, FEB. It returns an empty slice if either
// code is not a month.
func ResolveMonthRange(start, end string) []Month {
	s, ok := ParseMonth(start)
	if !ok {
		return []Month{}
	}
	e, ok := ParseMonth(end)
	if !ok {
		return []Month{}
	}

	n := int(e-s+12)%12 + 1
	out := make([]Month, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, Month((int(s)+i)%12))
	}
	return out
}

// MonthCodes converts months to their codes, preserving order.
func MonthCodes(months []Month) []string {
	out := make([]string, len(months))
	for i, m := range months {
		out[i] = m.String()
	}
	return out
}
