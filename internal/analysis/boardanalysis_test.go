package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oxidris/tetrisai/internal/engine"
)

func TestMaxHeightAndTotalHeightInvariant(t *testing.T) {
	b := engine.NewBitBoard()
	a := New(&b)
	assert.LessOrEqual(t, a.MaxHeight(), uint8(a.TotalHeight()))
	assert.LessOrEqual(t, a.CenterColumnMaxHeight(), a.MaxHeight())
}

func TestEmptyBoardHasNoHolesOrWells(t *testing.T) {
	b := engine.NewBitBoard()
	a := New(&b)
	assert.Equal(t, uint32(0), a.NumHoles())
	assert.Equal(t, uint32(0), a.SumOfHoleDepth())
	assert.Equal(t, uint8(0), a.MaxHeight())
	wd := a.WellDepths()
	for c, d := range wd {
		assert.Equalf(t, uint8(0), d, "column %d: flat empty board has no wells", c)
	}
	assert.Equal(t, uint8(0), a.EdgeIWellDepth())
}

func TestMemoizationReturnsStableValue(t *testing.T) {
	b := engine.NewBitBoard()
	a := New(&b)
	first := a.NumHoles()
	second := a.NumHoles()
	assert.Equal(t, first, second)
	firstWell := a.SumOfWellDepth()
	secondWell := a.SumOfWellDepth()
	assert.Equal(t, firstWell, secondWell)
}

// TestHoleCountScenario reproduces E3. Row 18 has column 0 filled, column 1
// empty; row 19 has both columns filled: no hole. Then inverted (row 18
// column 1 filled, row 19 column 0 filled): column 1 has a covered empty
// cell below it at row 19 -> one hole, one deep.
func TestHoleCountScenario(t *testing.T) {
	b := engine.NewBitBoard()
	b.SetCell(0, 18)
	b.SetCell(0, 19)
	b.SetCell(1, 19)
	a := New(&b)
	assert.Equal(t, uint32(0), a.NumHoles())

	b2 := engine.NewBitBoard()
	b2.SetCell(1, 18)
	b2.SetCell(0, 19)
	a2 := New(&b2)
	assert.Equal(t, uint32(1), a2.NumHoles())
	assert.Equal(t, uint32(1), a2.SumOfHoleDepth())
}

// TestPlacementAnalysisNoClear verifies the zero-clear path and that
// ClearedLines/PlacedKind are threaded through correctly.
func TestPlacementAnalysisNoClear(t *testing.T) {
	b := engine.NewBitBoard()
	placement := engine.SimulateDropPosition(&b, engine.NewSpawnPiece(engine.KindT))
	pa := FromPlacement(&b, placement)
	assert.Equal(t, 0, pa.ClearedLines())
	assert.Equal(t, engine.KindT, pa.PlacedKind())
	assert.Greater(t, pa.Board().MaxHeight(), uint8(0))
}

func TestWellDepthEdgeColumnUsesVirtualNeighbor(t *testing.T) {
	b := engine.NewBitBoard()
	// Drop an I piece vertically (rotation 1) at playable column 1 so that
	// column rises to height 4 while column 0 (and the rest) stay empty,
	// forming an edge well at column 0 against the virtual neighbor outside
	// the board on its left.
	p := engine.Piece{X: 1, Y: 0, Rotation: 1, Kind: engine.KindI}
	landed := engine.SimulateDropPosition(&b, p)
	b.Lock(landed)
	a := New(&b)
	heights := a.ColumnHeights()
	assert.Equal(t, uint8(4), heights[1])
	assert.Equal(t, uint8(0), heights[0])
	// well_depth[0] = min(virtualMax, height[1]) - height[0] = min(255,4)-0 = 4
	wd := a.WellDepths()
	assert.Equal(t, uint8(4), wd[0])
	assert.Equal(t, uint8(4), a.EdgeIWellDepth())
}
