package evaluator

import (
	"github.com/oxidris/tetrisai/internal/analysis"
	"github.com/oxidris/tetrisai/internal/engine"
)

// TurnPlan is the chosen candidate for one turn: whether to hold first, and
// where the (possibly post-hold) piece should land.
type TurnPlan struct {
	UseHold   bool
	Placement engine.Piece
}

// SelectBestTurn enumerates every reachable candidate for gf's current
// falling piece (and held-piece alternative, if hold is available), scores
// each with evalr, and returns the candidate with the strictly greatest
// score — first-seen wins ties, so candidate order from Enumerate is part
// of this function's observable behavior. ok is false only when gf is not
// in play or no candidate exists (game over).
func SelectBestTurn(gf *engine.GameField, evalr PlacementEvaluator) (plan TurnPlan, pa *analysis.PlacementAnalysis, ok bool) {
	if gf.State() != engine.Playing {
		return TurnPlan{}, nil, false
	}
	board := gf.Board()
	falling := gf.FallingPiece()
	canHold := gf.CanHold()
	var holdResultKind engine.Kind
	if canHold {
		holdResultKind = gf.PeekFallingPieceAfterHold().Kind
	}
	candidates := Enumerate(board, falling, canHold, holdResultKind)
	if len(candidates) == 0 {
		return TurnPlan{}, nil, false
	}

	var bestScore float32
	for i, c := range candidates {
		candidatePA := analysis.FromPlacement(board, c.Placement)
		score := evalr.Score(candidatePA)
		if i == 0 || score > bestScore {
			bestScore = score
			plan = TurnPlan{UseHold: c.UseHold, Placement: c.Placement}
			pa = candidatePA
		}
	}
	return plan, pa, true
}
