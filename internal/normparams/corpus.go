package normparams

import (
	"github.com/oxidris/tetrisai/internal/analysis"
	"github.com/oxidris/tetrisai/internal/boardfeature"
	"github.com/oxidris/tetrisai/internal/stats"
)

// placementAnalysisOf reconstructs the PlacementAnalysis a live session
// would have produced for board b: the recorded format stores the board
// exactly as it was before the placement, plus the placed piece, so the
// logged placement is locked onto a copy of that board and completed lines
// are cleared with ClearLines before the analysis is built.
func placementAnalysisOf(b RecordedBoard) *analysis.PlacementAnalysis {
	board := b.BeforePlacement
	board.Lock(b.Placement)
	cleared := board.ClearLines()
	return analysis.FromRecordedBoard(&board, cleared, b.Placement.Kind)
}

// ExtractRawValues computes source's raw value for every recorded board
// across sessions, in traversal order.
func ExtractRawValues(sessions []RecordedSession, source boardfeature.Source) []float64 {
	var out []float64
	for _, session := range sessions {
		for _, b := range session.Boards {
			pa := placementAnalysisOf(b)
			out = append(out, float64(source.Raw(pa)))
		}
	}
	return out
}

// ExtractSurvivalObservations groups, by source's raw value, one
// observation per recorded board: the number of turns from that board's
// capture to the end of its session, censored when the session ended for a
// reason other than a game-over (e.g. a turn-limit cutoff rather than an
// observed piece-spawn collision).
func ExtractSurvivalObservations(sessions []RecordedSession, source boardfeature.Source) map[int][]stats.Observation {
	out := make(map[int][]stats.Observation)
	for _, session := range sessions {
		for _, b := range session.Boards {
			pa := placementAnalysisOf(b)
			raw := int(source.Raw(pa))
			turnsRemaining := session.SurvivedTurns - b.Turn
			if turnsRemaining < 0 {
				turnsRemaining = 0
			}
			out[raw] = append(out[raw], stats.Observation{
				Time:       float64(turnsRemaining),
				IsCensored: !session.IsGameOver,
			})
		}
	}
	return out
}

// BuildParamsForSource runs the full pipeline for one feature source:
// percentiles over every recorded raw value, and — when survival table
// construction is requested — a Kaplan-Meier survival table spanning the
// [P05, P95] raw-value range.
func BuildParamsForSource(sessions []RecordedSession, source boardfeature.Source, withSurvivalTable bool) Params {
	raw := ExtractRawValues(sessions, source)
	pct := BuildPercentiles(raw)
	params := Params{Percentiles: pct}
	if withSurvivalTable {
		byValue := ExtractSurvivalObservations(sessions, source)
		params.Survival = BuildSurvivalTable(byValue, int(pct.P05), int(pct.P95))
	}
	return params
}
