package analysis

import "github.com/oxidris/tetrisai/internal/engine"

// PlacementAnalysis wraps the BoardAnalysis of the board that results from
// locking a candidate piece placement, together with the number of lines
// that placement cleared and the kind of piece placed. It is the single
// object board features read from (internal/boardfeature).
type PlacementAnalysis struct {
	analysis     *BoardAnalysis
	clearedLines int
	placedKind   engine.Kind
}

// FromPlacement locks placement onto a copy of board, clears any completed
// lines, and returns the resulting PlacementAnalysis. board itself is left
// untouched.
func FromPlacement(board *engine.BitBoard, placement engine.Piece) *PlacementAnalysis {
	result := *board
	result.Lock(placement)
	cleared := result.ClearLines()
	return &PlacementAnalysis{
		analysis:     New(&result),
		clearedLines: cleared,
		placedKind:   placement.Kind,
	}
}

// FromRecordedBoard builds a PlacementAnalysis directly from a board
// snapshot and its already-known cleared-line count and placed piece kind,
// as read back from a recorded session log (spec §6) rather than produced
// by simulating a live drop.
func FromRecordedBoard(board *engine.BitBoard, clearedLines int, placedKind engine.Kind) *PlacementAnalysis {
	b := *board
	return &PlacementAnalysis{
		analysis:     New(&b),
		clearedLines: clearedLines,
		placedKind:   placedKind,
	}
}

// Board returns the post-drop board's analysis.
func (p *PlacementAnalysis) Board() *BoardAnalysis {
	return p.analysis
}

// ClearedLines returns the number of lines the placement cleared (0..4).
func (p *PlacementAnalysis) ClearedLines() int {
	return p.clearedLines
}

// PlacedKind returns the kind of piece that was placed.
func (p *PlacementAnalysis) PlacedKind() engine.Kind {
	return p.placedKind
}
