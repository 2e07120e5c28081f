package domain

import (
	"fmt"
	"math"
)

// ThresholdResult is the binary threshold test of a single value.
type ThresholdResult struct {
	Value              float64
	Threshold          float64
	ProbabilityPercent float64 // always 0 or 100
	Difference         float64 // value - threshold, rounded to 2 decimals
}

// RangeResult aggregates threshold tests over several values.
type RangeResult struct {
	Elements              []ThresholdResult
	Average               float64
	ProbabilityPercent    float64
	AverageMinusThreshold float64
}

// ValidateThreshold rejects NaN and infinite thresholds.
func ValidateThreshold(threshold float64) error {
	if math.IsNaN(threshold) || math.IsInf(threshold, 0) {
		return fmt.Errorf("%w: threshold must be a finite number", ErrInvalidParameter)
	}
	return nil
}

// ThresholdProbability scores value against threshold: 100 when
// value >= threshold, else 0.
func ThresholdProbability(value, threshold float64) ThresholdResult {
	prob := 0.0
	if value >= threshold {
		prob = 100
	}
	return ThresholdResult{
		Value:              value,
		Threshold:          threshold,
		ProbabilityPercent: prob,
		Difference:         Round2(value - threshold),
	}
}

// RangeThresholdProbability scores each value and aggregates: the average
// value and the percentage of values meeting the threshold, both rounded to
// two decimals. Empty input yields an average and probability of 0.
func RangeThresholdProbability(values []float64, threshold float64) RangeResult {
	res := RangeResult{Elements: make([]ThresholdResult, 0, len(values))}

	var sum float64
	var met int
	for _, v := range values {
		r := ThresholdProbability(v, threshold)
		if r.ProbabilityPercent == 100 {
			met++
		}
		sum += v
		res.Elements = append(res.Elements, r)
	}

	var avg float64
	if len(values) > 0 {
		avg = sum / float64(len(values))
		res.ProbabilityPercent = Round2(100 * float64(met) / float64(len(values)))
	}
	res.Average = Round2(avg)
	res.AverageMinusThreshold = Round2(avg - threshold)
	return res
}

// Round2 rounds x to two decimal places, halves away from zero. Magnitudes
// too large to scale by 100 have no fractional part and are returned as is.
func Round2(x float64) float64 {
	scaled := x * 100
	if math.IsInf(scaled, 0) {
		return x
	}
	return math.Round(scaled) / 100
}
