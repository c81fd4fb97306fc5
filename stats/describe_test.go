package stats

import (
	"math"
	"testing"

	"github.com/ansel1/merry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	sample := []float64{5, 9, 1, -99, 3, 7, 2, -99, 8, 4, 6}
	s, err := Describe(sample, &Range{Lower: 0, Upper: 100})
	require.NoError(t, err)

	assert.Equal(t, 9, s.Count)
	assert.Equal(t, 1.0, s.Min)
	assert.Equal(t, 9.0, s.Max)
	assert.InDelta(t, 5.0, s.Mean, epsilon)
	assert.InDelta(t, math.Sqrt(7.5), s.Stddev, epsilon)
	assert.InDelta(t, 0.0, s.Skew, epsilon)
	assert.Less(t, s.Kurt, 0.0, "uniform-like sample should be platykurtic")

	// rank = p*(9+1): 0.5 clamps to the minimum, 9.5 to the maximum
	assert.Equal(t, 1.0, s.P05)
	assert.InDelta(t, 2.5, s.P25, epsilon)
	assert.Equal(t, 5.0, s.Median)
	assert.InDelta(t, 7.5, s.P75, epsilon)
	assert.Equal(t, 9.0, s.P95)
}

func TestDescribeNoFiltering(t *testing.T) {
	s, err := Describe([]float64{2, 4, 6, math.NaN()}, nil)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Count)
	assert.InDelta(t, 4.0, s.Mean, epsilon)
}

func TestDescribeErrors(t *testing.T) {
	_, err := Describe([]float64{1, 2}, nil)
	require.Error(t, err)
	assert.True(t, merry.Is(err, ErrInvalidArgument))

	_, err = Describe([]float64{1, 2, -99, -99}, &Range{Lower: 0, Upper: 10})
	require.Error(t, err)
	assert.True(t, merry.Is(err, ErrInsufficientData))
}
