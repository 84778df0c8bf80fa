package stats

import "sort"

// Observation is one Kaplan-Meier input: a survival time and whether the
// subject was censored (session still running, or truncated) rather than
// observed to fail at that time.
type Observation struct {
	Time       float64
	IsCensored bool
}

// MedianSurvival computes the Kaplan-Meier median survival time from obs.
// ok is false if the survival curve never drops to or below 0.5.
func MedianSurvival(obs []Observation) (median float64, ok bool) {
	if len(obs) == 0 {
		return 0, false
	}
	sorted := make([]Observation, len(obs))
	copy(sorted, obs)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Time < sorted[j].Time })

	type point struct {
		time float64
		s    float64
	}
	var curve []point
	atRisk := len(sorted)
	s := 1.0
	i := 0
	for i < len(sorted) {
		t := sorted[i].Time
		events := 0
		n := 0
		for i < len(sorted) && sorted[i].Time == t {
			n++
			if !sorted[i].IsCensored {
				events++
			}
			i++
		}
		if events > 0 {
			s *= 1 - float64(events)/float64(atRisk)
			// Only record points where the curve actually drops: a
			// censoring-only time leaves S unchanged, and including it
			// would interpolate the median crossing against the wrong
			// bracketing time.
			curve = append(curve, point{time: t, s: s})
		}
		atRisk -= n
	}

	for idx, p := range curve {
		if p.s <= 0.5 {
			prev := point{time: 0, s: 1.0}
			if idx > 0 {
				prev = curve[idx-1]
			}
			if prev.s == p.s {
				return p.time, true
			}
			// Linear interpolation between the two bracketing points for
			// the time at which S crosses 0.5.
			frac := (0.5 - prev.s) / (p.s - prev.s)
			return prev.time + frac*(p.time-prev.time), true
		}
	}
	return 0, false
}
