package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKaplanMeierMedianE6(t *testing.T) {
	obs := []Observation{
		{Time: 10, IsCensored: false},
		{Time: 20, IsCensored: true},
		{Time: 30, IsCensored: false},
		{Time: 40, IsCensored: false},
	}
	median, ok := MedianSurvival(obs)
	assert.True(t, ok)
	assert.InDelta(t, 23.33, median, 0.01)
}

func TestKaplanMeierUndefinedWhenNeverCrosses(t *testing.T) {
	obs := []Observation{
		{Time: 10, IsCensored: true},
		{Time: 20, IsCensored: true},
	}
	_, ok := MedianSurvival(obs)
	assert.False(t, ok)
}

func TestMeanStdDevMinMaxMedian(t *testing.T) {
	xs := []float64{1, 2, 3, 4, 5}
	assert.Equal(t, 3.0, Mean(xs))
	assert.InDelta(t, 1.4142, StdDev(xs), 1e-3)
	assert.Equal(t, 1.0, Min(xs))
	assert.Equal(t, 5.0, Max(xs))
	assert.Equal(t, 3.0, Median(xs))
}

func TestPercentileNearestRank(t *testing.T) {
	sorted := []float64{10, 20, 30, 40, 50, 60, 70, 80, 90, 100}
	assert.Equal(t, 50.0, Percentile(sorted, 50))
	assert.Equal(t, 100.0, Percentile(sorted, 100))
	assert.Equal(t, 10.0, Percentile(sorted, 1))
}

func TestHistogramUnderflowOverflow(t *testing.T) {
	xs := make([]float64, 0, 100)
	for i := 0; i < 100; i++ {
		xs = append(xs, float64(i))
	}
	h := NewHistogram(xs, 10, 0)
	assert.Greater(t, h.Underflow, 0)
	assert.Greater(t, h.Overflow, 0)
	total := h.Underflow + h.Overflow
	for _, c := range h.Counts {
		total += c
	}
	assert.Equal(t, len(xs), total)
}

func TestAdaptiveBinningMergesSmallBins(t *testing.T) {
	samples := []KeyCount{
		{Key: 1, Count: 5}, {Key: 2, Count: 5}, {Key: 3, Count: 40},
		{Key: 4, Count: 5}, {Key: 5, Count: 5},
	}
	bins := AdaptiveBinning(samples, 0.1)
	var total int
	for _, b := range bins {
		total += b.Count
		assert.GreaterOrEqual(t, b.Count, 0)
	}
	assert.Equal(t, 60, total)
}
