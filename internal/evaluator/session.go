package evaluator

import (
	"github.com/oxidris/tetrisai/internal/analysis"
	"github.com/oxidris/tetrisai/internal/engine"
)

// SessionStats accumulates across a played-out session: the underlying
// GameField's completed-piece/line-clear counters, plus the running max of
// BoardAnalysis.MaxHeight seen after each placement (spec §4.9).
type SessionStats struct {
	GameStats      engine.GameStats
	WorstMaxHeight uint8
}

// PlaySession repeatedly selects and applies the best turn (per evalr)
// against gf until turnLimit placements have been made or the game ends,
// updating session statistics after each successful placement.
func PlaySession(gf *engine.GameField, evalr PlacementEvaluator, turnLimit int) SessionStats {
	var worst uint8
	for i := 0; i < turnLimit; i++ {
		if gf.State() != engine.Playing {
			break
		}
		plan, _, ok := SelectBestTurn(gf, evalr)
		if !ok {
			break
		}
		if plan.UseHold {
			if err := gf.TryHold(); err != nil {
				break
			}
		}
		gf.SetFallingPieceUnchecked(plan.Placement)
		_, err := gf.CompletePieceDrop()
		if h := analysis.New(gf.Board()).MaxHeight(); h > worst {
			worst = h
		}
		if err != nil {
			break
		}
	}
	return SessionStats{GameStats: gf.Stats(), WorstMaxHeight: worst}
}

// lineClearWeights rewards higher-value clears disproportionately, in the
// spirit of the board-feature line-clear bonus table but with its own values
// and applied session-wide.
var lineClearWeights = [5]float32{0, 1, 3, 5, 8}

func survivalRatio(stats SessionStats, turnLimit int) float32 {
	if turnLimit <= 0 {
		return 0
	}
	return float32(stats.GameStats.CompletedPieces()) / float32(turnLimit)
}

func survivedDivisor(stats SessionStats) float32 {
	survived := float32(stats.GameStats.CompletedPieces())
	if survived < 1 {
		return 1
	}
	return survived
}

// AggroFitness rewards aggressive, high-value line clears while still
// penalizing stacks that grew dangerously tall.
func AggroFitness(stats SessionStats, turnLimit int) float32 {
	ratio := survivalRatio(stats, turnLimit)
	survivalBonus := 2 * ratio * ratio

	var weightedLines float32
	counters := stats.GameStats.LineClearedCounter()
	for k, count := range counters {
		weightedLines += lineClearWeights[k] * float32(count)
	}
	efficiency := weightedLines / survivedDivisor(stats)

	var heightPenalty float32
	if float32(stats.WorstMaxHeight) > 10 {
		heightPenalty = (float32(stats.WorstMaxHeight) - 10) / 5
	}
	return survivalBonus + efficiency*ratio - heightPenalty
}

// DefensiveFitness has the same shape as AggroFitness but treats every
// cleared line equally and penalizes height linearly from zero
// (WorstMaxHeight/20), at a shallower slope than AggroFitness's penalty
// above height 10.
func DefensiveFitness(stats SessionStats, turnLimit int) float32 {
	ratio := survivalRatio(stats, turnLimit)
	survivalBonus := 2 * ratio * ratio

	totalCleared := float32(stats.GameStats.TotalClearedLines())
	efficiency := totalCleared / survivedDivisor(stats)

	heightPenalty := float32(stats.WorstMaxHeight) / 20
	return survivalBonus + efficiency*ratio - heightPenalty
}
