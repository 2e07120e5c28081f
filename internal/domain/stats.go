package domain

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarizes a numeric column.
type Stats struct {
	Min    float64
	Max    float64
	Mean   float64
	Median float64
}

// ColumnStats computes min, max, mean and median over values. NaN values
// (blank cells) are skipped. It returns ErrNotFound when nothing is left.
func ColumnStats(values []float64) (Stats, error) {
	xs := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			xs = append(xs, v)
		}
	}
	if len(xs) == 0 {
		return Stats{}, fmt.Errorf("%w: no values", ErrNotFound)
	}

	sort.Float64s(xs)
	return Stats{
		Min:    floats.Min(xs),
		Max:    floats.Max(xs),
		Mean:   stat.Mean(xs, nil),
		Median: median(xs),
	}, nil
}

// median expects sorted, non-empty input. Even counts average the two
// middle values.
func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
