package stats

import (
	"math"
	"sort"
)

// KeyCount is one (integer key, sample count) pair used by adaptive
// binning — typically a raw feature value and the number of recorded
// boards that produced it.
type KeyCount struct {
	Key   int
	Count int
}

// AdaptiveBin is a merged run of adjacent keys: its representative is the
// median of the unique keys merged into it, and Count is their summed
// sample count.
type AdaptiveBin struct {
	Representative int
	Count          int
	Keys           []int
}

// AdaptiveBinning merges adjacent keys (by key order) until each resulting
// bin holds at least max(round(targetFraction * totalSamples), 30) samples,
// as used to build coarser histograms for analysis tooling over sparse
// integer-keyed data.
func AdaptiveBinning(samples []KeyCount, targetFraction float64) []AdaptiveBin {
	if len(samples) == 0 {
		return nil
	}
	sorted := make([]KeyCount, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })

	var total int
	for _, s := range sorted {
		total += s.Count
	}
	minBinSize := int(math.Round(targetFraction * float64(total)))
	if minBinSize < 30 {
		minBinSize = 30
	}

	var bins []AdaptiveBin
	var curKeys []int
	curCount := 0
	flush := func() {
		if len(curKeys) == 0 {
			return
		}
		bins = append(bins, AdaptiveBin{
			Representative: medianInt(curKeys),
			Count:          curCount,
			Keys:           curKeys,
		})
		curKeys = nil
		curCount = 0
	}
	for _, s := range sorted {
		curKeys = append(curKeys, s.Key)
		curCount += s.Count
		if curCount >= minBinSize {
			flush()
		}
	}
	if curCount > 0 {
		// Trailing remainder below the target: merge into the previous bin
		// rather than emit an undersized one, unless it's the only bin.
		if len(bins) > 0 {
			last := &bins[len(bins)-1]
			last.Keys = append(last.Keys, curKeys...)
			last.Count += curCount
			last.Representative = medianInt(last.Keys)
		} else {
			flush()
		}
	}
	return bins
}

func medianInt(keys []int) int {
	sorted := make([]int, len(keys))
	copy(sorted, keys)
	sort.Ints(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	// Even count: the spec defines the representative as "the median",
	// which for an even-sized integer key set we take as the lower of the
	// two central keys to keep the representative an observed key.
	return sorted[n/2-1]
}
