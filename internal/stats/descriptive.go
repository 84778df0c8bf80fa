// Package stats implements the descriptive-statistics and Kaplan-Meier
// survival-analysis support used by the normalization parameter builder
// (internal/normparams) and by training-run diagnostics.
package stats

import (
	"math"
	"sort"
)

// Mean returns the arithmetic mean of xs, or 0 for an empty input.
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// StdDev returns the population standard deviation of xs (divides by N, not
// N-1: these vectors are treated as the full observed population of a
// training run, not a sample drawn from a larger one).
func StdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := Mean(xs)
	var sumSq float64
	for _, x := range xs {
		d := x - m
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(xs)))
}

// Min returns the smallest value in xs, or 0 for an empty input.
func Min(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x < m {
			m = x
		}
	}
	return m
}

// Max returns the largest value in xs, or 0 for an empty input.
func Max(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := xs[0]
	for _, x := range xs[1:] {
		if x > m {
			m = x
		}
	}
	return m
}

func sortedCopy(xs []float64) []float64 {
	cp := make([]float64, len(xs))
	copy(cp, xs)
	sort.Float64s(cp)
	return cp
}

// Median returns the nearest-rank 50th percentile of xs.
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return Percentile(sortedCopy(xs), 50)
}

// Percentile returns the nearest-rank p-th percentile (0..=100) of an
// already-sorted-ascending input. rank = ceil(p/100 * N), clamped to
// [1, N].
func Percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	rank := int(math.Ceil(p / 100 * float64(len(sorted))))
	if rank < 1 {
		rank = 1
	}
	if rank > len(sorted) {
		rank = len(sorted)
	}
	return sorted[rank-1]
}

// standardPercentiles is the fixed set the normalization builder computes
// per feature source (spec §4.11).
var standardPercentiles = []float64{1, 5, 10, 25, 50, 75, 90, 95, 99}

// PercentileSet holds the nine standard percentiles of a sample.
type PercentileSet struct {
	P01, P05, P10, P25, P50, P75, P90, P95, P99 float64
}

// ComputePercentileSet sorts xs once and computes all nine standard
// percentiles.
func ComputePercentileSet(xs []float64) PercentileSet {
	sorted := sortedCopy(xs)
	vals := make([]float64, len(standardPercentiles))
	for i, p := range standardPercentiles {
		vals[i] = Percentile(sorted, p)
	}
	return PercentileSet{
		P01: vals[0], P05: vals[1], P10: vals[2], P25: vals[3], P50: vals[4],
		P75: vals[5], P90: vals[6], P95: vals[7], P99: vals[8],
	}
}

// Histogram is a percentile-clipped histogram: values below P05 fall into
// Underflow, values above P95 fall into Overflow, and the main bins cover
// [P05, P95].
type Histogram struct {
	Low, High float64
	BinWidth  float64
	Counts    []int
	Underflow int
	Overflow  int
}

// NewHistogram builds a histogram over xs with numBins main bins spanning
// [P05, P95]. If unit > 0, the bin width is rounded up to the nearest
// multiple of unit (and the bin count adjusted to still cover the range).
func NewHistogram(xs []float64, numBins int, unit float64) Histogram {
	if numBins < 1 {
		numBins = 1
	}
	pct := ComputePercentileSet(xs)
	low, high := pct.P05, pct.P95
	width := (high - low) / float64(numBins)
	if unit > 0 && width > 0 {
		width = math.Ceil(width/unit) * unit
		numBins = int(math.Ceil((high - low) / width))
		if numBins < 1 {
			numBins = 1
		}
	}
	h := Histogram{Low: low, High: high, BinWidth: width, Counts: make([]int, numBins)}
	for _, x := range xs {
		switch {
		case x < low:
			h.Underflow++
		case x > high:
			h.Overflow++
		default:
			idx := 0
			if width > 0 {
				idx = int((x - low) / width)
			}
			if idx >= numBins {
				idx = numBins - 1
			}
			if idx < 0 {
				idx = 0
			}
			h.Counts[idx]++
		}
	}
	return h
}
