package boardfeature

import (
	"github.com/oxidris/tetrisai/internal/analysis"
)

// WindowKind selects which percentile band a feature's normalization
// window is built from (see internal/normparams). Penalty windows produce
// a smooth signal across the whole observed range; Risk windows are
// flat-zero below their lower percentile, producing a thresholded signal.
type WindowKind int

const (
	PenaltyWindow WindowKind = iota
	RiskWindow
	BonusWindow // positive-signal windows for line-clear bonus / I-well reward
)

// Window is a concrete [Min, Max] normalization range for one feature,
// built by internal/normparams from recorded-session percentile statistics.
type Window struct {
	Min, Max float32
}

func linearNormalize(x float32, w Window) float32 {
	if w.Max == w.Min {
		return 0
	}
	v := (x - w.Min) / (w.Max - w.Min)
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return v
}

// Feature is one entry of the board-feature catalog: a raw source, an
// optional transform, and whether its normalized signal is inverted
// (negative signal: smaller raw is better, so normalize-then-invert).
type Feature struct {
	id        string
	source    Source
	transform func(uint32) float32
	kind      WindowKind
	negative  bool
}

// ID returns the feature's catalog id (distinct from its source id when a
// source backs more than one feature, e.g. sum_of_well_depth backs both
// linear_well_depth_penalty and deep_well_risk).
func (f *Feature) ID() string { return f.id }

// SourceID returns the id of the raw feature source this feature reads.
func (f *Feature) SourceID() string { return f.source.ID() }

// WindowKind reports which percentile band builds this feature's window.
func (f *Feature) WindowKind() WindowKind { return f.kind }

// Negative reports whether this feature's normalized signal is inverted
// (smaller raw value is better).
func (f *Feature) Negative() bool { return f.negative }

// Raw extracts the unprocessed measurement.
func (f *Feature) Raw(pa *analysis.PlacementAnalysis) uint32 {
	return f.source.Raw(pa)
}

// Transformed applies this feature's transform (identity if none was set).
func (f *Feature) Transformed(pa *analysis.PlacementAnalysis) float32 {
	raw := f.Raw(pa)
	if f.transform != nil {
		return f.transform(raw)
	}
	return identityTransform(raw)
}

// Value computes the fully normalized [0,1] feature value given the
// normalization window built for this feature's corpus.
func (f *Feature) Value(pa *analysis.PlacementAnalysis, w Window) float32 {
	n := linearNormalize(f.Transformed(pa), w)
	if f.negative {
		n = 1 - n
	}
	return n
}

// negativeNormalize applies this feature's negative-signal inversion to an
// already-transformed value against window w; kept separate so in-package
// unit tests can probe the normalize stage directly without routing through
// a real board.
func (f *Feature) negativeNormalize(transformed float32, w Window) float32 {
	n := linearNormalize(transformed, w)
	if f.negative {
		n = 1 - n
	}
	return n
}

func newFeature(id string, source Source, transform func(uint32) float32, kind WindowKind, negative bool) *Feature {
	return &Feature{id: id, source: source, transform: transform, kind: kind, negative: negative}
}

// AllBoardFeatures returns the default catalog: fifteen features drawn
// directly from the spec's active feature set, plus a supplemental
// sixteenth (deep_well_risk_squared) carried over from the squared
// well-depth source that the linear one-threshold variant does not cover
// (see DESIGN.md).
func AllBoardFeatures() []*Feature {
	return []*Feature{
		newFeature("num_holes_penalty", SourceNumHoles, nil, PenaltyWindow, true),
		newFeature("hole_depth_penalty", SourceSumOfHoleDepth, nil, PenaltyWindow, true),
		newFeature("max_height_penalty", SourceMaxHeight, nil, PenaltyWindow, true),
		newFeature("max_height_risk", SourceMaxHeight, nil, RiskWindow, true),
		newFeature("center_height_penalty", SourceCenterColumnMaxHeight, nil, PenaltyWindow, true),
		newFeature("center_height_risk", SourceCenterColumnMaxHeight, nil, RiskWindow, true),
		newFeature("total_height_penalty", SourceTotalHeight, nil, PenaltyWindow, true),
		newFeature("bumpiness_penalty", SourceSurfaceBumpiness, nil, PenaltyWindow, true),
		newFeature("roughness_penalty", SourceSurfaceRoughness, nil, PenaltyWindow, true),
		newFeature("row_transitions_penalty", SourceRowTransitions, nil, PenaltyWindow, true),
		newFeature("column_transitions_penalty", SourceColumnTransitions, nil, PenaltyWindow, true),
		newFeature("linear_well_depth_penalty", SourceSumOfWellDepth, nil, PenaltyWindow, true),
		newFeature("deep_well_risk", SourceSumOfWellDepth, nil, RiskWindow, true),
		newFeature("line_clear_bonus", SourceNumClearedLines, lineClearBonusTransform, BonusWindow, false),
		newFeature("i_well_reward", SourceEdgeIWellDepth, iWellRewardTransform, BonusWindow, false),
		newFeature("deep_well_risk_squared", SourceSumOfDeepWellDepthSq, deepWellRiskTransform, RiskWindow, true),
	}
}
