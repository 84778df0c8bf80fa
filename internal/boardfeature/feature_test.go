package boardfeature

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oxidris/tetrisai/internal/analysis"
	"github.com/oxidris/tetrisai/internal/engine"
)

func featureByID(t *testing.T, id string) *Feature {
	t.Helper()
	for _, f := range AllBoardFeatures() {
		if f.ID() == id {
			return f
		}
	}
	t.Fatalf("no feature with id %q", id)
	return nil
}

// TestLineClearBonusTetris reproduces E2: a vertical I piece dropped into
// the one empty column of an otherwise full four-row stack clears all four
// lines, so line_clear_bonus raw=4, transformed=6, normalized=1.0.
func TestLineClearBonusTetris(t *testing.T) {
	b := engine.NewBitBoard()
	for _, y := range []int{16, 17, 18, 19} {
		for c := 0; c < 9; c++ {
			b.SetCell(c, y)
		}
	}
	p := engine.Piece{X: 9, Y: 0, Rotation: 1, Kind: engine.KindI}
	landed := engine.SimulateDropPosition(&b, p)
	pa := analysis.FromPlacement(&b, landed)
	require.Equal(t, 4, pa.ClearedLines())

	f := featureByID(t, "line_clear_bonus")
	assert.Equal(t, uint32(4), f.Raw(pa))
	assert.Equal(t, float32(6), f.Transformed(pa))
	assert.Equal(t, float32(1.0), f.Value(pa, Window{Min: 0, Max: 6}))
}

// TestIWellRewardAtOptimum reproduces E4: an edge well of depth exactly 4
// is the triangular peak's center, so the reward saturates at 1.0.
func TestIWellRewardAtOptimum(t *testing.T) {
	b := engine.NewBitBoard()
	p := engine.Piece{X: 1, Y: 0, Rotation: 1, Kind: engine.KindI}
	landed := engine.SimulateDropPosition(&b, p)
	b.Lock(landed)
	pa := analysis.FromRecordedBoard(&b, 0, engine.KindI)
	require.Equal(t, uint8(4), pa.Board().EdgeIWellDepth())

	f := featureByID(t, "i_well_reward")
	assert.Equal(t, uint32(4), f.Raw(pa))
	assert.Equal(t, float32(1.0), f.Transformed(pa))
	assert.Equal(t, float32(1.0), f.Value(pa, Window{Min: 0, Max: 1}))
}

func TestNegativeSignalBoundaries(t *testing.T) {
	f := featureByID(t, "max_height_penalty")
	assert.Equal(t, float32(0), f.negativeNormalize(10, Window{Min: 0, Max: 10}))
	assert.Equal(t, float32(1), f.negativeNormalize(0, Window{Min: 0, Max: 10}))
}
