package posterize

import "github.com/Fepozopo/vtrace/pkg/contour"

// FillStrategy picks how a tonal range's representative color is derived.
type FillStrategy int

const (
	// FillDominant colors each range by its most common luminance,
	// widened by a tolerance window proportional to the range's span.
	FillDominant FillStrategy = iota
	// FillSpread colors each range along a ramp spanning the full tonal
	// axis, rather than clustering around each range's own midpoint.
	FillSpread
	// FillMean colors each range by its average luminance.
	FillMean
	// FillMedian colors each range by its (pixel-count-weighted) median
	// luminance.
	FillMedian
)

// RangeDistribution picks how tonal range boundaries are chosen.
type RangeDistribution int

const (
	// DistributionAuto places boundaries via multilevel Otsu
	// thresholding, concentrating ranges where the histogram has mass.
	DistributionAuto RangeDistribution = iota
	// DistributionEqual splits the usable tonal span into equal-width
	// ranges.
	DistributionEqual
)

// StepsMode selects how the number of tonal ranges is determined.
type StepsMode int

const (
	// StepsAuto picks 4 ranges when the usable tonal span exceeds 200
	// levels, 3 otherwise.
	StepsAuto StepsMode = iota
	// StepsFixed uses StepCount, clamped to [2, usable span].
	StepsFixed
	// StepsExplicit uses ExplicitStops verbatim (deduplicated, sorted,
	// and widened to reach the effective threshold if it falls outside
	// the supplied stops).
	StepsExplicit
)

// ThresholdMode selects how the threshold separating the posterizer's
// foreground and background tonal halves is determined, mirroring
// trace.ThresholdMode.
type ThresholdMode int

const (
	// ThresholdAuto picks the threshold via single-level Otsu
	// thresholding over the luminance histogram.
	ThresholdAuto ThresholdMode = iota
	// ThresholdFixed uses the caller-supplied Cutoff verbatim.
	ThresholdFixed
)

// Options controls the posterizer's layering.
type Options struct {
	// Steps controls how many tonal ranges are produced.
	StepsMode     StepsMode
	StepCount     int   // used when StepsMode == StepsFixed
	ExplicitStops []int // used when StepsMode == StepsExplicit, each in [0,255]

	// Threshold marks the tonal split between the posterizer's two
	// halves; ranges are distributed within whichever half is the
	// foreground side under BlackOnWhite. Inherited from the same
	// Otsu/fixed semantics trace.Options uses.
	ThresholdMode ThresholdMode
	Cutoff        int // used when ThresholdMode == ThresholdFixed, in [0,255]

	Fill         FillStrategy
	Distribution RangeDistribution
	BlackOnWhite bool

	TurnPolicy     contour.TurnPolicy
	TurdSize       int
	AlphaMax       float64
	OptimizeCurves bool
	CurveTolerance float64

	Background string // "" means no background rect
}

// DefaultOptions mirrors a typical posterization run.
func DefaultOptions() Options {
	return Options{
		StepsMode:      StepsAuto,
		ThresholdMode:  ThresholdAuto,
		Fill:           FillDominant,
		Distribution:   DistributionAuto,
		BlackOnWhite:   true,
		TurnPolicy:     contour.TurnMinority,
		TurdSize:       2,
		AlphaMax:       1.0,
		OptimizeCurves: true,
		CurveTolerance: 0.2,
		Background:     "white",
	}
}

// Validate reports the first invalid field, if any.
func (o Options) Validate() error {
	switch o.StepsMode {
	case StepsFixed:
		if o.StepCount < 2 || o.StepCount > 255 {
			return &InvalidParameterError{Field: "StepCount", Reason: "must be within [2, 255]"}
		}
	case StepsExplicit:
		if len(o.ExplicitStops) == 0 {
			return &InvalidParameterError{Field: "ExplicitStops", Reason: "must be non-empty when StepsMode is StepsExplicit"}
		}
		for _, s := range o.ExplicitStops {
			if s < 0 || s > 255 {
				return &InvalidParameterError{Field: "ExplicitStops", Reason: "entries must be within [0, 255]"}
			}
		}
	case StepsAuto:
	default:
		return &InvalidParameterError{Field: "StepsMode", Reason: "unrecognized steps mode"}
	}
	if o.ThresholdMode == ThresholdFixed && (o.Cutoff < 0 || o.Cutoff > 255) {
		return &InvalidParameterError{Field: "Cutoff", Reason: "must be within [0, 255]"}
	}
	if !o.TurnPolicy.Valid() {
		return &InvalidParameterError{Field: "TurnPolicy", Reason: "unrecognized turn policy"}
	}
	if o.TurdSize < 0 {
		return &InvalidParameterError{Field: "TurdSize", Reason: "must be non-negative"}
	}
	if o.AlphaMax < 0 {
		return &InvalidParameterError{Field: "AlphaMax", Reason: "must be non-negative"}
	}
	if o.OptimizeCurves && o.CurveTolerance < 0 {
		return &InvalidParameterError{Field: "CurveTolerance", Reason: "must be non-negative when OptimizeCurves is set"}
	}
	return nil
}

// InvalidParameterError reports that a single Options field failed
// validation.
type InvalidParameterError struct {
	Field  string
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return "posterize: invalid parameter " + e.Field + ": " + e.Reason
}
