package domain

import (
	"fmt"
	"math"
)

// RainfallRecord holds the rainfall normals of one district, in millimetres.
type RainfallRecord struct {
	State    string
	District string
	Monthly  [12]float64
	Annual   float64
}

// Month returns the normal for month m.
func (r RainfallRecord) Month(m Month) (float64, error) {
	if !m.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidMonth, int(m))
	}
	return checkValue(r.Monthly[m], m.String())
}

// Lookup returns the value for a month code or ANNUAL.
func (r RainfallRecord) Lookup(code string) (float64, error) {
	code = NormalizeMonthCode(code)
	if code == AnnualCode {
		return checkValue(r.Annual, AnnualCode)
	}
	m, ok := ParseMonth(code)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMonth, code)
	}
	return r.Month(m)
}

// Values returns the normals for months, in the given order.
func (r RainfallRecord) Values(months []Month) ([]float64, error) {
	out := make([]float64, 0, len(months))
	for _, m := range months {
		v, err := r.Month(m)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// checkValue rejects cells that were blank or unparsable in the source file.
func checkValue(v float64, field string) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: no numeric value for %s", ErrComputation, field)
	}
	return v, nil
}
