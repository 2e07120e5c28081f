package domain

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThresholdProbability(t *testing.T) {
	t.Run("boundary is inclusive", func(t *testing.T) {
		r := ThresholdProbability(50, 50)
		assert.Equal(t, 100.0, r.ProbabilityPercent)
		assert.Equal(t, 0.0, r.Difference)
	})

	t.Run("just below threshold", func(t *testing.T) {
		r := ThresholdProbability(49.99, 50)
		assert.Equal(t, 0.0, r.ProbabilityPercent)
		assert.Equal(t, -0.01, r.Difference)
	})

	t.Run("above threshold", func(t *testing.T) {
		r := ThresholdProbability(120.456, 100)
		assert.Equal(t, 100.0, r.ProbabilityPercent)
		assert.Equal(t, 20.46, r.Difference)
		assert.Equal(t, 120.456, r.Value)
		assert.Equal(t, 100.0, r.Threshold)
	})
}

func TestThresholdProbability_HugeThreshold(t *testing.T) {
	r := ThresholdProbability(13.4, 1e307)
	assert.Equal(t, 0.0, r.ProbabilityPercent)
	assert.False(t, math.IsInf(r.Difference, 0))
	assert.InDelta(t, -1e307, r.Difference, 1e292)

	rr := RangeThresholdProbability([]float64{228.4, 42.9}, -1e307)
	assert.Equal(t, 100.0, rr.ProbabilityPercent)
	assert.False(t, math.IsInf(rr.AverageMinusThreshold, 0))
	assert.InDelta(t, 1e307, rr.AverageMinusThreshold, 1e292)
	for _, e := range rr.Elements {
		assert.False(t, math.IsInf(e.Difference, 0))
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1.005, 1.0},
		{20.456, 20.46},
		{-0.125, -0.13},
		{1e307, 1e307},
		{-math.MaxFloat64, -math.MaxFloat64},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round2(tt.in), "Round2(%v)", tt.in)
	}
}

func TestRangeThresholdProbability(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		for _, threshold := range []float64{0, 50, -10} {
			r := RangeThresholdProbability(nil, threshold)
			assert.Equal(t, 0.0, r.Average)
			assert.Equal(t, 0.0, r.ProbabilityPercent)
			assert.Empty(t, r.Elements)
		}
	})

	t.Run("aggregate and per element", func(t *testing.T) {
		got := RangeThresholdProbability([]float64{10, 20, 30, 40}, 25)
		want := RangeResult{
			Elements: []ThresholdResult{
				{Value: 10, Threshold: 25, ProbabilityPercent: 0, Difference: -15},
				{Value: 20, Threshold: 25, ProbabilityPercent: 0, Difference: -5},
				{Value: 30, Threshold: 25, ProbabilityPercent: 100, Difference: 5},
				{Value: 40, Threshold: 25, ProbabilityPercent: 100, Difference: 15},
			},
			Average:               25,
			ProbabilityPercent:    50,
			AverageMinusThreshold: 0,
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("RangeThresholdProbability mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("probability rounded to two decimals", func(t *testing.T) {
		r := RangeThresholdProbability([]float64{10, 20, 30}, 25)
		assert.Equal(t, 33.33, r.ProbabilityPercent)
		assert.Equal(t, 20.0, r.Average)
		assert.Equal(t, -5.0, r.AverageMinusThreshold)
	})

	t.Run("every element meets threshold", func(t *testing.T) {
		r := RangeThresholdProbability([]float64{5, 5}, 5)
		assert.Equal(t, 100.0, r.ProbabilityPercent)
	})
}

func TestValidateThreshold(t *testing.T) {
	require.NoError(t, ValidateThreshold(12.5))
	require.ErrorIs(t, ValidateThreshold(math.NaN()), ErrInvalidParameter)
	require.ErrorIs(t, ValidateThreshold(math.Inf(1)), ErrInvalidParameter)
}
