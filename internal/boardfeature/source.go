// Package boardfeature implements the three-stage feature pipeline (raw
// extraction, transform, normalization) over a PlacementAnalysis, and the
// default 16-feature catalog used by the placement evaluator and the
// genetic trainer.
package boardfeature

import (
	"github.com/chewxy/math32"

	"github.com/oxidris/tetrisai/internal/analysis"
)

// Source extracts a single raw u32 measurement from a PlacementAnalysis.
// Implementations must be stateless and safe for concurrent use; a
// PlacementAnalysis already memoizes its own underlying statistics, so a
// Source is typically a thin one-line adapter.
type Source interface {
	ID() string
	Raw(pa *analysis.PlacementAnalysis) uint32
}

type sourceFunc struct {
	id  string
	raw func(pa *analysis.PlacementAnalysis) uint32
}

func (s sourceFunc) ID() string                                  { return s.id }
func (s sourceFunc) Raw(pa *analysis.PlacementAnalysis) uint32 { return s.raw(pa) }

// The thirteen raw feature sources, each grounded directly on a
// BoardAnalysis/PlacementAnalysis accessor.
var (
	SourceNumHoles = sourceFunc{"num_holes", func(pa *analysis.PlacementAnalysis) uint32 {
		return pa.Board().NumHoles()
	}}
	SourceSumOfHoleDepth = sourceFunc{"sum_of_hole_depth", func(pa *analysis.PlacementAnalysis) uint32 {
		return pa.Board().SumOfHoleDepth()
	}}
	SourceMaxHeight = sourceFunc{"max_height", func(pa *analysis.PlacementAnalysis) uint32 {
		return uint32(pa.Board().MaxHeight())
	}}
	SourceCenterColumnMaxHeight = sourceFunc{"center_column_max_height", func(pa *analysis.PlacementAnalysis) uint32 {
		return uint32(pa.Board().CenterColumnMaxHeight())
	}}
	SourceTotalHeight = sourceFunc{"total_height", func(pa *analysis.PlacementAnalysis) uint32 {
		return pa.Board().TotalHeight()
	}}
	SourceRowTransitions = sourceFunc{"row_transitions", func(pa *analysis.PlacementAnalysis) uint32 {
		return pa.Board().RowTransitions()
	}}
	SourceColumnTransitions = sourceFunc{"column_transitions", func(pa *analysis.PlacementAnalysis) uint32 {
		return pa.Board().ColumnTransitions()
	}}
	SourceSurfaceBumpiness = sourceFunc{"surface_bumpiness", func(pa *analysis.PlacementAnalysis) uint32 {
		return pa.Board().SurfaceBumpiness()
	}}
	SourceSurfaceRoughness = sourceFunc{"surface_roughness", func(pa *analysis.PlacementAnalysis) uint32 {
		return pa.Board().SurfaceRoughness()
	}}
	SourceSumOfWellDepth = sourceFunc{"sum_of_well_depth", func(pa *analysis.PlacementAnalysis) uint32 {
		return pa.Board().SumOfWellDepth()
	}}
	SourceSumOfDeepWellDepthSq = sourceFunc{"sum_of_deep_well_depth_sq", func(pa *analysis.PlacementAnalysis) uint32 {
		return pa.Board().SumOfDeepWellDepthSquared()
	}}
	SourceNumClearedLines = sourceFunc{"num_cleared_lines", func(pa *analysis.PlacementAnalysis) uint32 {
		return uint32(pa.ClearedLines())
	}}
	SourceEdgeIWellDepth = sourceFunc{"edge_i_well_depth", func(pa *analysis.PlacementAnalysis) uint32 {
		return uint32(pa.Board().EdgeIWellDepth())
	}}
)

// identityTransform is the default raw->f32 cast.
func identityTransform(raw uint32) float32 {
	return float32(raw)
}

// lineClearTable rewards tetrises disproportionately over lesser clears;
// singles are deliberately unrewarded.
var lineClearTable = [5]float32{0, 0, 1, 2, 6}

func lineClearBonusTransform(raw uint32) float32 {
	if raw >= uint32(len(lineClearTable)) {
		raw = uint32(len(lineClearTable) - 1)
	}
	return lineClearTable[raw]
}

// iWellPeakCenter/iWellPeakHalfWidth define the triangular reward that
// peaks at an edge well exactly deep enough to accept a single I piece.
const (
	iWellPeakCenter    float32 = 4
	iWellPeakHalfWidth float32 = 4
)

// iWellRewardTransform is a triangular peak: 1.0 at depth==center, falling
// linearly to 0 at center±halfWidth, clamped to [0,1] beyond that.
func iWellRewardTransform(raw uint32) float32 {
	depth := float32(raw)
	dist := math32.Abs(depth - iWellPeakCenter)
	v := 1 - dist/iWellPeakHalfWidth
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v
}

// deepWellRiskTransform applies ln(1+x) to compress the squared well-depth
// source before normalization, so a handful of very deep wells don't
// saturate the window immediately.
func deepWellRiskTransform(raw uint32) float32 {
	return math32.Log1p(float32(raw))
}
