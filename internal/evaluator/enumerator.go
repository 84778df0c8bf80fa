package evaluator

import "github.com/oxidris/tetrisai/internal/engine"

// Candidate is one reachable landing: the placed piece and whether hold
// was used to reach the piece kind being placed.
type Candidate struct {
	UseHold   bool
	Placement engine.Piece
}

// Enumerate produces the reachability envelope (spec §4.6) for the falling
// piece and, if canHold, for the piece that would result from holding. It
// deliberately omits tucks and spins: only landings reachable by rotating
// in place, then sliding horizontally, then hard-dropping are considered.
func Enumerate(board *engine.BitBoard, falling engine.Piece, canHold bool, holdResultKind engine.Kind) []Candidate {
	out := make([]Candidate, 0, 40)
	for _, landing := range reachableLandings(board, falling) {
		out = append(out, Candidate{UseHold: false, Placement: landing})
	}
	if canHold {
		held := engine.NewSpawnPiece(holdResultKind)
		for _, landing := range reachableLandings(board, held) {
			out = append(out, Candidate{UseHold: true, Placement: landing})
		}
	}
	return out
}

// reachableLandings enumerates every rotation via the simplified wall-kick
// applied iteratively, fans each reachable rotation horizontally by sliding
// left then right while non-colliding, and hard-drops every resulting
// (rotation, column) pair.
func reachableLandings(board *engine.BitBoard, piece engine.Piece) []engine.Piece {
	var out []engine.Piece
	for _, rotated := range piece.SuperRotations(board) {
		leftmost := rotated
		for {
			left, ok := leftmost.Left()
			if !ok || engine.Collides(board, left) {
				break
			}
			leftmost = left
		}
		for p := leftmost; ; {
			out = append(out, engine.SimulateDropPosition(board, p))
			right, ok := p.Right()
			if !ok || engine.Collides(board, right) {
				break
			}
			p = right
		}
	}
	return out
}
