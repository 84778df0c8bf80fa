package training

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oxidris/tetrisai/internal/boardfeature"
)

func testRNG() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func assertWeightInvariants(t *testing.T, ind Individual) {
	t.Helper()
	var sum float32
	for _, w := range ind.Weights {
		assert.GreaterOrEqualf(t, w, float32(0), "weight must be non-negative")
		sum += w
	}
	assert.InDelta(t, 1.0, sum, 1e-5)
}

func TestNewPopulationSatisfiesWeightInvariants(t *testing.T) {
	features := boardfeature.AllBoardFeatures()
	pop := NewPopulation(features, nil, 20, 1.0, testRNG())
	for _, ind := range pop.Members {
		assertWeightInvariants(t, ind)
	}
}

func TestStepPreservesWeightInvariants(t *testing.T) {
	features := boardfeature.AllBoardFeatures()
	rng := testRNG()
	pop := NewPopulation(features, nil, 10, 1.0, rng)
	for i := range pop.Members {
		pop.Members[i].Fitness = float32(i)
	}
	params := Params{EliteCount: 2, TournamentSize: 3, MaxWeight: 1.0, MutationSigma: 0.05, BLXAlpha: 0.2, MutationRate: 0.3}
	pop.Step(params, rng)
	assert.Len(t, pop.Members, 10)
	for _, ind := range pop.Members {
		assertWeightInvariants(t, ind)
	}
}

func TestElitismCopiesTopIndividualsVerbatim(t *testing.T) {
	features := boardfeature.AllBoardFeatures()
	rng := testRNG()
	pop := NewPopulation(features, nil, 6, 1.0, rng)
	for i := range pop.Members {
		pop.Members[i].Fitness = float32(len(pop.Members) - i)
	}
	eliteBefore := pop.Members[0].clone()
	params := Params{EliteCount: 1, TournamentSize: 2, MaxWeight: 1.0, MutationSigma: 0.05, BLXAlpha: 0.2, MutationRate: 0.3}
	pop.Step(params, rng)
	assert.Equal(t, eliteBefore.Weights, pop.Members[0].Weights)
	assert.Equal(t, eliteBefore.Fitness, pop.Members[0].Fitness)
}

func TestBlxAlphaStaysWithinExpandedRange(t *testing.T) {
	rng := testRNG()
	p1 := []float32{0.2, 0.8}
	p2 := []float32{0.6, 0.1}
	child := blxAlpha(p1, p2, 0.5, 1.0, rng)
	assert.Len(t, child, 2)
	for _, v := range child {
		assert.GreaterOrEqual(t, v, float32(0))
		assert.LessOrEqual(t, v, float32(1))
	}
}

func TestNormalizeL1HandlesZeroSum(t *testing.T) {
	w := []float32{0, 0, 0}
	normalizeL1(w)
	assert.Equal(t, []float32{0, 0, 0}, w)
}
