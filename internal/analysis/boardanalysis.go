// Package analysis derives lazily memoized geometric statistics from a
// bitboard (BoardAnalysis) and wraps them, together with the result of a
// hypothetical piece drop, into a PlacementAnalysis — the sole input to
// every board feature (see internal/boardfeature).
package analysis

import (
	"sync"

	"github.com/oxidris/tetrisai/internal/engine"
)

// BoardAnalysis is a read-only view over a bitboard exposing derived
// statistics. Column heights/occupancy are computed eagerly at
// construction (cheap, O(playable cells)); every other statistic is
// memoized lazily on first use via sync.Once, so repeated queries never
// recompute (spec §4.3, §8 invariant 5).
type BoardAnalysis struct {
	board *engine.BitBoard

	heights  [engine.PlayCols]uint8
	occupied [engine.PlayCols]uint8

	maxHeightOnce sync.Once
	maxHeight     uint8

	centerOnce      sync.Once
	centerMaxHeight uint8

	totalHeightOnce sync.Once
	totalHeight     uint32

	numHolesOnce sync.Once
	numHoles     uint32

	sumHoleDepthOnce sync.Once
	sumHoleDepth     uint32

	rowTransOnce   sync.Once
	rowTransitions uint32

	colTransOnce   sync.Once
	colTransitions uint32

	bumpinessOnce sync.Once
	bumpiness     uint32

	roughnessOnce sync.Once
	roughness     uint32

	wellDepthsOnce sync.Once
	wellDepths     [engine.PlayCols]uint8

	sumWellOnce  sync.Once
	sumWellDepth uint32

	sumWellSqOnce  sync.Once
	sumWellDepthSq uint32

	edgeIWellOnce  sync.Once
	edgeIWellDepth uint8
}

// New builds a BoardAnalysis over b. b is retained: most later statistics
// are derived from the cached heights and occupancy counts, while hole
// depth and transition counting re-read b directly.
func New(b *engine.BitBoard) *BoardAnalysis {
	a := &BoardAnalysis{board: b}
	for c := 0; c < engine.PlayCols; c++ {
		topY := -1
		var occCount uint8
		for y := 0; y < engine.PlayRows; y++ {
			if b.ColumnOccupied(c, y) {
				occCount++
				if topY == -1 {
					topY = y
				}
			}
		}
		a.occupied[c] = occCount
		if topY == -1 {
			a.heights[c] = 0
		} else {
			a.heights[c] = uint8(engine.PlayRows - topY)
		}
	}
	return a
}

// ColumnHeights returns height[c] for every playable column.
func (a *BoardAnalysis) ColumnHeights() [engine.PlayCols]uint8 {
	return a.heights
}

// ColumnOccupiedCells returns occupied[c] for every playable column.
func (a *BoardAnalysis) ColumnOccupiedCells() [engine.PlayCols]uint8 {
	return a.occupied
}

// MaxHeight returns the tallest column.
func (a *BoardAnalysis) MaxHeight() uint8 {
	a.maxHeightOnce.Do(func() {
		var m uint8
		for _, h := range a.heights {
			if h > m {
				m = h
			}
		}
		a.maxHeight = m
	})
	return a.maxHeight
}

// CenterColumnMaxHeight returns the tallest of the center four columns
// (playable indices 3..6).
func (a *BoardAnalysis) CenterColumnMaxHeight() uint8 {
	a.centerOnce.Do(func() {
		var m uint8
		for c := 3; c <= 6; c++ {
			if a.heights[c] > m {
				m = a.heights[c]
			}
		}
		a.centerMaxHeight = m
	})
	return a.centerMaxHeight
}

// TotalHeight returns the sum of all column heights.
func (a *BoardAnalysis) TotalHeight() uint32 {
	a.totalHeightOnce.Do(func() {
		var total uint32
		for _, h := range a.heights {
			total += uint32(h)
		}
		a.totalHeight = total
	})
	return a.totalHeight
}

// NumHoles returns Σ (height[c] - occupied[c]).
func (a *BoardAnalysis) NumHoles() uint32 {
	a.numHolesOnce.Do(func() {
		var total uint32
		for c := 0; c < engine.PlayCols; c++ {
			total += uint32(a.heights[c]) - uint32(a.occupied[c])
		}
		a.numHoles = total
	})
	return a.numHoles
}

// SumOfHoleDepth scans each column top-down, tracking a depth counter that
// increments on every occupied cell; whenever an empty cell is seen while
// depth > 0, the current depth is added to the running total and the
// counter increments once more (the hole itself adds to depth for cells
// below it).
func (a *BoardAnalysis) SumOfHoleDepth() uint32 {
	a.sumHoleDepthOnce.Do(func() {
		var total uint32
		for c := 0; c < engine.PlayCols; c++ {
			depth := 0
			for y := 0; y < engine.PlayRows; y++ {
				if a.board.ColumnOccupied(c, y) {
					depth++
				} else if depth > 0 {
					total += uint32(depth)
					depth++
				}
			}
		}
		a.sumHoleDepth = total
	})
	return a.sumHoleDepth
}

// RowTransitions counts adjacent-column occupancy changes within each
// playable row, summed over all rows. Sentinel columns are deliberately
// excluded (spec §9: this asymmetry avoids biasing toward center
// placement).
func (a *BoardAnalysis) RowTransitions() uint32 {
	a.rowTransOnce.Do(func() {
		var total uint32
		for y := 0; y < engine.PlayRows; y++ {
			for c := 0; c < engine.PlayCols-1; c++ {
				if a.board.ColumnOccupied(c, y) != a.board.ColumnOccupied(c+1, y) {
					total++
				}
			}
		}
		a.rowTransitions = total
	})
	return a.rowTransitions
}

// ColumnTransitions counts adjacent-row occupancy changes within each
// playable column, top to bottom, summed over all columns.
func (a *BoardAnalysis) ColumnTransitions() uint32 {
	a.colTransOnce.Do(func() {
		var total uint32
		for c := 0; c < engine.PlayCols; c++ {
			for y := 0; y < engine.PlayRows-1; y++ {
				if a.board.ColumnOccupied(c, y) != a.board.ColumnOccupied(c, y+1) {
					total++
				}
			}
		}
		a.colTransitions = total
	})
	return a.colTransitions
}

func absDiff(a, b uint8) uint32 {
	if a > b {
		return uint32(a - b)
	}
	return uint32(b - a)
}

// SurfaceBumpiness sums |height[c+1]-height[c]| over adjacent column pairs.
func (a *BoardAnalysis) SurfaceBumpiness() uint32 {
	a.bumpinessOnce.Do(func() {
		var total uint32
		for c := 0; c < engine.PlayCols-1; c++ {
			total += absDiff(a.heights[c+1], a.heights[c])
		}
		a.bumpiness = total
	})
	return a.bumpiness
}

// SurfaceRoughness sums the discrete Laplacian |(h[c+1]-h[c])-(h[c]-h[c-1])|
// over interior column triples.
func (a *BoardAnalysis) SurfaceRoughness() uint32 {
	a.roughnessOnce.Do(func() {
		var total uint32
		for c := 1; c < engine.PlayCols-1; c++ {
			d1 := int(a.heights[c+1]) - int(a.heights[c])
			d2 := int(a.heights[c]) - int(a.heights[c-1])
			diff := d1 - d2
			if diff < 0 {
				diff = -diff
			}
			total += uint32(diff)
		}
		a.roughness = total
	})
	return a.roughness
}

// virtualMaxHeight stands in for the height just outside the board when
// computing well depths at the edge columns.
const virtualMaxHeight = 255

// WellDepths returns well_depth[c] for every column: a well exists at c
// iff height[c] is strictly less than both neighbors (edge columns use a
// virtual max-height neighbor outside the board); depth is the gap to the
// shallower of the two neighbors.
func (a *BoardAnalysis) WellDepths() [engine.PlayCols]uint8 {
	a.wellDepthsOnce.Do(func() {
		for c := 0; c < engine.PlayCols; c++ {
			left := virtualMaxHeight
			if c > 0 {
				left = int(a.heights[c-1])
			}
			right := virtualMaxHeight
			if c < engine.PlayCols-1 {
				right = int(a.heights[c+1])
			}
			h := int(a.heights[c])
			if h < left && h < right {
				m := left
				if right < m {
					m = right
				}
				a.wellDepths[c] = uint8(m - h)
			} else {
				a.wellDepths[c] = 0
			}
		}
	})
	return a.wellDepths
}

// SumOfWellDepth is the threshold-1 linear well-depth penalty source:
// Σ max(well_depth[c]-1, 0). Shallow wells (depth <= 1) are not penalized
// to preserve freedom for controlled I-well construction.
func (a *BoardAnalysis) SumOfWellDepth() uint32 {
	a.sumWellOnce.Do(func() {
		wd := a.WellDepths()
		var total uint32
		for _, d := range wd {
			if int(d) > 1 {
				total += uint32(int(d) - 1)
			}
		}
		a.sumWellDepth = total
	})
	return a.sumWellDepth
}

// SumOfDeepWellDepthSquared is the threshold-2 squared well-depth source:
// Σ max(well_depth[c]-2, 0)^2, used by deep_well_risk_squared (see
// DESIGN.md for why both variants are preserved as distinct ids).
func (a *BoardAnalysis) SumOfDeepWellDepthSquared() uint32 {
	a.sumWellSqOnce.Do(func() {
		wd := a.WellDepths()
		var total uint32
		for _, d := range wd {
			if int(d) > 2 {
				excess := int(d) - 2
				total += uint32(excess * excess)
			}
		}
		a.sumWellDepthSq = total
	})
	return a.sumWellDepthSq
}

// EdgeIWellDepth returns max(well_depth[0], well_depth[last]).
func (a *BoardAnalysis) EdgeIWellDepth() uint8 {
	a.edgeIWellOnce.Do(func() {
		wd := a.WellDepths()
		m := wd[0]
		if wd[engine.PlayCols-1] > m {
			m = wd[engine.PlayCols-1]
		}
		a.edgeIWellDepth = m
	})
	return a.edgeIWellDepth
}
