package evaluator

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxidris/tetrisai/internal/boardfeature"
	"github.com/oxidris/tetrisai/internal/engine"
)

func uniformEvaluator(t *testing.T) *WeightedSumEvaluator {
	t.Helper()
	features := boardfeature.AllBoardFeatures()
	windows := make(map[string]boardfeature.Window, len(features))
	weights := make([]float32, len(features))
	for i, f := range features {
		windows[f.ID()] = boardfeature.Window{Min: 0, Max: 20}
		weights[i] = 1.0 / float32(len(features))
	}
	return NewWeightedSumEvaluator(features, windows, weights)
}

// TestSelectBestTurnDeterministic reproduces E5: selecting the best turn
// twice, from identical inputs, must yield identical plans and scores.
func TestSelectBestTurnDeterministic(t *testing.T) {
	seed := PieceSeedFor(t, 0x11)
	gf := engine.NewGameField(seed)
	evalr := uniformEvaluator(t)

	plan1, pa1, ok1 := SelectBestTurn(gf, evalr)
	require.True(t, ok1)

	gf2 := engine.NewGameField(seed)
	plan2, pa2, ok2 := SelectBestTurn(gf2, evalr)
	require.True(t, ok2)

	assert.Equal(t, plan1, plan2)
	assert.Equal(t, evalr.Score(pa1), evalr.Score(pa2))
}

func PieceSeedFor(t *testing.T, b byte) engine.PieceSeed {
	t.Helper()
	var s engine.PieceSeed
	for i := range s {
		s[i] = b
	}
	return s
}

func TestEnumerateProducesCandidatesForSpawnBoard(t *testing.T) {
	b := engine.NewBitBoard()
	falling := engine.NewSpawnPiece(engine.KindT)
	candidates := Enumerate(&b, falling, false, 0)
	assert.NotEmpty(t, candidates)
	for _, c := range candidates {
		assert.False(t, c.UseHold)
		assert.False(t, engine.Collides(&b, c.Placement))
	}
}

func TestAggroFitnessRewardsTetrisOverSingles(t *testing.T) {
	tetrisStats := SessionStats{
		GameStats:      statsWithClears(t, map[int]int{4: 1}, 4),
		WorstMaxHeight: 0,
	}
	singlesStats := SessionStats{
		GameStats:      statsWithClears(t, map[int]int{1: 4}, 4),
		WorstMaxHeight: 0,
	}
	assert.Greater(t, AggroFitness(tetrisStats, 4), AggroFitness(singlesStats, 4))
}

func TestDefensiveFitnessTreatsClearsEqually(t *testing.T) {
	tetrisStats := SessionStats{GameStats: statsWithClears(t, map[int]int{4: 1}, 4)}
	singlesStats := SessionStats{GameStats: statsWithClears(t, map[int]int{1: 4}, 4)}
	assert.Equal(t, DefensiveFitness(tetrisStats, 4), DefensiveFitness(singlesStats, 4))
}

func TestKindStringRoundTrip(t *testing.T) {
	for _, k := range []Kind{KindWeightedSum, KindRandom, KindHeightOnly, KindHeuristic, KindNoisyHeuristic} {
		parsed, ok := KindFromString(k.String())
		require.True(t, ok)
		assert.Equal(t, k, parsed)
	}
	_, ok := KindFromString("not_a_kind")
	assert.False(t, ok)
}

func TestNewBootstrapEvaluatorRejectsWeightedSum(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	_, err := NewBootstrapEvaluator(KindWeightedSum, rng)
	assert.Error(t, err)

	evalr, err := NewBootstrapEvaluator(KindHeightOnly, rng)
	require.NoError(t, err)
	assert.IsType(t, HeightOnlyEvaluator{}, evalr)
}

func statsWithClears(t *testing.T, byClearSize map[int]int, completedPieces int) engine.GameStats {
	t.Helper()
	s := engine.NewGameStats()
	remaining := completedPieces
	for size, count := range byClearSize {
		for i := 0; i < count; i++ {
			s.CompletePieceDrop(size)
			remaining--
		}
	}
	for ; remaining > 0; remaining-- {
		s.CompletePieceDrop(0)
	}
	return s
}
