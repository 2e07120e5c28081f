package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColumnStats(t *testing.T) {
	t.Run("single value", func(t *testing.T) {
		s, err := ColumnStats([]float64{15.9})
		require.NoError(t, err)
		assert.Equal(t, Stats{Min: 15.9, Max: 15.9, Mean: 15.9, Median: 15.9}, s)
	})

	t.Run("odd count", func(t *testing.T) {
		s, err := ColumnStats([]float64{3, 1, 2})
		require.NoError(t, err)
		assert.Equal(t, 1.0, s.Min)
		assert.Equal(t, 3.0, s.Max)
		assert.Equal(t, 2.0, s.Mean)
		assert.Equal(t, 2.0, s.Median)
	})

	t.Run("even count averages middle values", func(t *testing.T) {
		s, err := ColumnStats([]float64{4, 1, 3, 2})
		require.NoError(t, err)
		assert.Equal(t, 2.5, s.Median)
		assert.Equal(t, 2.5, s.Mean)
	})

	t.Run("skips NaN", func(t *testing.T) {
		s, err := ColumnStats([]float64{math.NaN(), 10, 20})
		require.NoError(t, err)
		assert.Equal(t, 10.0, s.Min)
		assert.Equal(t, 15.0, s.Median)
	})

	t.Run("does not reorder input", func(t *testing.T) {
		in := []float64{3, 1, 2}
		_, err := ColumnStats(in)
		require.NoError(t, err)
		assert.Equal(t, []float64{3, 1, 2}, in)
	})

	t.Run("no values", func(t *testing.T) {
		_, err := ColumnStats([]float64{math.NaN()})
		require.ErrorIs(t, err, ErrNotFound)
	})
}
