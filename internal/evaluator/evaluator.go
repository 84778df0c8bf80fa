// Package evaluator scores candidate placements, enumerates the reachable
// landing positions for a falling piece, and selects and plays out whole
// turns and sessions against a GameField.
package evaluator

import (
	"fmt"
	"math/rand/v2"

	"github.com/oxidris/tetrisai/internal/analysis"
	"github.com/oxidris/tetrisai/internal/boardfeature"
)

// PlacementEvaluator scores a candidate placement; higher is better.
type PlacementEvaluator interface {
	Score(pa *analysis.PlacementAnalysis) float32
}

// WeightedSumEvaluator scores a PlacementAnalysis as the weighted sum of a
// fixed feature set's normalized values. Weights are expected (but not
// enforced here) to satisfy Σw=1, w≥0 — the genetic trainer is responsible
// for that invariant.
type WeightedSumEvaluator struct {
	features []*boardfeature.Feature
	windows  map[string]boardfeature.Window
	weights  []float32
}

// NewWeightedSumEvaluator pairs features[i] with weights[i]; windows maps a
// feature's id to its normalization window, as built by internal/normparams.
func NewWeightedSumEvaluator(features []*boardfeature.Feature, windows map[string]boardfeature.Window, weights []float32) *WeightedSumEvaluator {
	return &WeightedSumEvaluator{features: features, windows: windows, weights: weights}
}

// Score implements PlacementEvaluator.
func (e *WeightedSumEvaluator) Score(pa *analysis.PlacementAnalysis) float32 {
	var total float32
	for i, f := range e.features {
		total += e.weights[i] * f.Value(pa, e.windows[f.ID()])
	}
	return total
}

// Weights returns a copy of the evaluator's weight vector, in feature order.
func (e *WeightedSumEvaluator) Weights() []float32 {
	out := make([]float32, len(e.weights))
	copy(out, e.weights)
	return out
}

// RandomEvaluator scores every placement uniformly at random in [-1,1]; a
// bootstrap baseline used to seed early GA populations and sanity-check
// session plumbing.
type RandomEvaluator struct {
	rng *rand.Rand
}

func NewRandomEvaluator(rng *rand.Rand) *RandomEvaluator {
	return &RandomEvaluator{rng: rng}
}

func (e *RandomEvaluator) Score(_ *analysis.PlacementAnalysis) float32 {
	return e.rng.Float32()*2 - 1
}

// HeightOnlyEvaluator scores -max_height: a greedy "stay low" baseline.
type HeightOnlyEvaluator struct{}

func (HeightOnlyEvaluator) Score(pa *analysis.PlacementAnalysis) float32 {
	return -float32(pa.Board().MaxHeight())
}

// HeuristicEvaluator scores -max_height - num_holes.
type HeuristicEvaluator struct{}

func (HeuristicEvaluator) Score(pa *analysis.PlacementAnalysis) float32 {
	return -float32(pa.Board().MaxHeight()) - float32(pa.Board().NumHoles())
}

// NoisyHeuristicEvaluator adds U(-5,5) jitter to HeuristicEvaluator's score,
// used to diversify early GA bootstrap sessions.
type NoisyHeuristicEvaluator struct {
	rng *rand.Rand
}

func NewNoisyHeuristicEvaluator(rng *rand.Rand) *NoisyHeuristicEvaluator {
	return &NoisyHeuristicEvaluator{rng: rng}
}

func (e *NoisyHeuristicEvaluator) Score(pa *analysis.PlacementAnalysis) float32 {
	base := HeuristicEvaluator{}.Score(pa)
	jitter := e.rng.Float32()*10 - 5
	return base + jitter
}

// NewBootstrapEvaluator builds one of the non-trained bootstrap evaluators
// by kind; it returns an error for KindWeightedSum, which requires a
// feature set, window set, and weight vector instead of just an RNG.
func NewBootstrapEvaluator(kind Kind, rng *rand.Rand) (PlacementEvaluator, error) {
	switch kind {
	case KindRandom:
		return NewRandomEvaluator(rng), nil
	case KindHeightOnly:
		return HeightOnlyEvaluator{}, nil
	case KindHeuristic:
		return HeuristicEvaluator{}, nil
	case KindNoisyHeuristic:
		return NewNoisyHeuristicEvaluator(rng), nil
	default:
		return nil, fmt.Errorf("evaluator: %s is not a bootstrap evaluator kind", kind)
	}
}
