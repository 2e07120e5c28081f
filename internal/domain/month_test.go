package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveMonthRange(t *testing.T) {
	tests := []struct {
		name       string
		start, end string
		want       []string
	}{
		{"same month", "JAN", "JAN", []string{"JAN"}},
		{"forward range", "JUN", "SEP", []string{"JUN", "JUL", "AUG", "SEP"}},
		{"full year", "JAN", "DEC", []string{"JAN", "FEB", "MAR", "APR", "MAY", "JUN", "JUL", "AUG", "SEP", "OCT", "NOV", "DEC"}},
		{"wraps year boundary", "NOV", "FEB", []string{"NOV", "DEC", "JAN", "FEB"}},
		{"wraps one step", "DEC", "JAN", []string{"DEC", "JAN"}},
		{"lower case and whitespace", " nov ", "feb", []string{"NOV", "DEC", "JAN", "FEB"}},
		{"unknown start", "FOO", "JAN", []string{}},
		{"unknown end", "JAN", "FOO", []string{}},
		{"annual is not a month", "ANNUAL", "DEC", []string{}},
		{"empty", "", "", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveMonthRange(tt.start, tt.end)
			assert.Equal(t, tt.want, MonthCodes(got))
		})
	}
}

func TestResolveMonthRange_WrapLengthAlwaysInRange(t *testing.T) {
	for _, s := range Months() {
		for _, e := range Months() {
			got := ResolveMonthRange(s.String(), e.String())
			assert.NotEmpty(t, got)
			assert.LessOrEqual(t, len(got), 12)
			assert.Equal(t, s, got[0])
			assert.Equal(t, e, got[len(got)-1])
		}
	}
}

func TestParseMonth(t *testing.T) {
	m, ok := ParseMonth("mar")
	assert.True(t, ok)
	assert.Equal(t, Mar, m)

	_, ok = ParseMonth("MARCH")
	assert.False(t, ok)

	_, ok = ParseMonth(AnnualCode)
	assert.False(t, ok)
}

func TestMonthString(t *testing.T) {
	assert.Equal(t, "JAN", Jan.String())
	assert.Equal(t, "DEC", Dec.String())
	assert.Empty(t, Month(12).String())
	assert.False(t, Month(-1).Valid())
}
