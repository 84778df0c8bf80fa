// Package normparams builds normalization windows for board features from
// recorded sessions: percentile statistics of each feature source's raw
// values, and an optional Kaplan-Meier survival-time table used by
// downstream tooling to inspect how raw values correlate with how long a
// session survived after that board was captured.
package normparams

import (
	"github.com/oxidris/tetrisai/internal/stats"
)

// SurvivalTable is the optional per-source artifact: for every raw value in
// [FeatureMinValue, FeatureMinValue+len(MedianSurvivalTurns)-1], the
// Kaplan-Meier median number of turns survived after a board with that raw
// value was captured, with gaps filled by linear interpolation between the
// nearest defined neighbors (flat-extended at the ends).
type SurvivalTable struct {
	FeatureMinValue     int
	NormalizeMin        float32
	NormalizeMax        float32
	MedianSurvivalTurns []float32
}

// Params is the full normalization artifact for one feature source.
type Params struct {
	Percentiles stats.PercentileSet
	Survival    *SurvivalTable
}

// BuildPercentiles computes the nine standard percentiles of raw values
// observed for a feature source across a corpus of recorded boards.
func BuildPercentiles(rawValues []float64) stats.PercentileSet {
	return stats.ComputePercentileSet(rawValues)
}

// BuildSurvivalTable groups observations by the raw feature value of the
// board they were captured from, computes the Kaplan-Meier median survival
// time per distinct value within [lowValue, highValue] (typically the P05
// and P95 raw-value percentiles), and fills any value with no observations
// by linearly interpolating between its nearest defined neighbors — or, at
// the ends of the range, by holding the nearest defined value flat.
func BuildSurvivalTable(byRawValue map[int][]stats.Observation, lowValue, highValue int) *SurvivalTable {
	if highValue < lowValue {
		lowValue, highValue = highValue, lowValue
	}
	n := highValue - lowValue + 1
	values := make([]float32, n)
	defined := make([]bool, n)
	anyDefined := false
	for raw, obs := range byRawValue {
		if raw < lowValue || raw > highValue {
			continue
		}
		median, ok := stats.MedianSurvival(obs)
		if !ok {
			continue
		}
		idx := raw - lowValue
		values[idx] = float32(median)
		defined[idx] = true
		anyDefined = true
	}
	if !anyDefined {
		return &SurvivalTable{FeatureMinValue: lowValue, MedianSurvivalTurns: values}
	}
	fillGaps(values, defined)

	mn, mx := values[0], values[0]
	for _, v := range values {
		if v < mn {
			mn = v
		}
		if v > mx {
			mx = v
		}
	}
	return &SurvivalTable{
		FeatureMinValue:     lowValue,
		NormalizeMin:        mn,
		NormalizeMax:        mx,
		MedianSurvivalTurns: values,
	}
}

// fillGaps linearly interpolates undefined entries between their nearest
// defined neighbors, and flat-extends the first/last defined value into any
// undefined run at either end.
func fillGaps(values []float32, defined []bool) {
	n := len(values)
	firstDefined := -1
	for i := 0; i < n; i++ {
		if defined[i] {
			firstDefined = i
			break
		}
	}
	if firstDefined == -1 {
		return
	}
	for i := 0; i < firstDefined; i++ {
		values[i] = values[firstDefined]
	}
	lastDefined := firstDefined
	for i := firstDefined + 1; i < n; i++ {
		if defined[i] {
			if i-lastDefined > 1 {
				span := i - lastDefined
				start, end := values[lastDefined], values[i]
				for k := lastDefined + 1; k < i; k++ {
					frac := float32(k-lastDefined) / float32(span)
					values[k] = start + frac*(end-start)
				}
			}
			lastDefined = i
		}
	}
	for i := lastDefined + 1; i < n; i++ {
		values[i] = values[lastDefined]
	}
}
