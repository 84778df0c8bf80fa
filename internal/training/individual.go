// Package training implements the genetic trainer: Individuals carrying a
// board-feature weight vector, a Population of them, and the
// tournament-selection / BLX-alpha / Gaussian-mutation evolution step used
// to improve the weights against session fitness.
package training

import (
	"math"
	"math/rand/v2"

	"github.com/chewxy/math32"
)

// Individual is one candidate weight vector and its most recently measured
// fitness.
type Individual struct {
	Weights []float32
	Fitness float32
}

// clone returns a deep copy of ind (weights are not shared).
func (ind Individual) clone() Individual {
	w := make([]float32, len(ind.Weights))
	copy(w, ind.Weights)
	return Individual{Weights: w, Fitness: ind.Fitness}
}

// randomWeights draws n weights Uniform[0, maxWeight] and L1-normalizes
// them.
func randomWeights(n int, maxWeight float32, rng *rand.Rand) []float32 {
	w := make([]float32, n)
	for i := range w {
		w[i] = rng.Float32() * maxWeight
	}
	normalizeL1(w)
	return w
}

// normalizeL1 divides every weight by their sum, leaving w unchanged if the
// sum is not positive.
func normalizeL1(w []float32) {
	var sum float32
	for _, v := range w {
		sum += v
	}
	if sum <= 0 {
		return
	}
	for i := range w {
		w[i] /= sum
	}
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// blxAlpha performs BLX-α crossover gene-by-gene between parents p1 and p2,
// clamping each child gene to [0, maxWeight].
func blxAlpha(p1, p2 []float32, alpha, maxWeight float32, rng *rand.Rand) []float32 {
	child := make([]float32, len(p1))
	for i := range child {
		a, b := p1[i], p2[i]
		if a > b {
			a, b = b, a
		}
		d := b - a
		lo := a - alpha*d
		hi := b + alpha*d
		v := lo + rng.Float32()*(hi-lo)
		child[i] = clamp(v, 0, maxWeight)
	}
	return child
}

// mutate perturbs each gene with independent probability rate by
// N(0, sigma^2), clamped to [0, maxWeight].
func mutate(w []float32, rate, sigma, maxWeight float32, rng *rand.Rand) {
	for i := range w {
		if rng.Float32() >= rate {
			continue
		}
		w[i] = clamp(w[i]+standardNormal(rng)*sigma, 0, maxWeight)
	}
}

// standardNormal draws one N(0,1) sample via the Box-Muller transform.
func standardNormal(rng *rand.Rand) float32 {
	u1 := rng.Float64()
	if u1 <= 0 {
		u1 = 1e-300
	}
	u2 := rng.Float64()
	return math32.Sqrt(-2*float32(math.Log(u1))) * math32.Cos(2*math32.Pi*float32(u2))
}
