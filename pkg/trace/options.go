package trace

import "github.com/Fepozopo/vtrace/pkg/contour"

// ThresholdMode selects how the binarization cutoff is determined.
type ThresholdMode int

const (
	// ThresholdAuto picks the cutoff via single-level Otsu thresholding
	// over the luminance histogram.
	ThresholdAuto ThresholdMode = iota
	// ThresholdFixed uses the caller-supplied Cutoff verbatim.
	ThresholdFixed
)

// Options controls every stage of the tracing pipeline.
type Options struct {
	// Threshold controls binarization.
	ThresholdMode ThresholdMode
	Cutoff        int // used when ThresholdMode == ThresholdFixed, in [0,255]
	BlackOnWhite  bool

	// Contour decomposition.
	TurnPolicy contour.TurnPolicy
	TurdSize   int // contours with area <= TurdSize are discarded

	// Curve fitting.
	AlphaMax       float64
	OptimizeCurves bool
	CurveTolerance float64

	// Output.
	Color      string // CSS color, or "" / "AUTO" to mean the resolved default
	Background string // CSS color for a background <rect>, or "" / "transparent" for none
	Width      int    // overrides the output document width; 0 means use the source bitmap's
	Height     int    // overrides the output document height; 0 means use the source bitmap's
}

// DefaultOptions mirrors a typical tracing run's parameters.
func DefaultOptions() Options {
	return Options{
		ThresholdMode:  ThresholdAuto,
		BlackOnWhite:   true,
		TurnPolicy:     contour.TurnMinority,
		TurdSize:       2,
		AlphaMax:       1.0,
		OptimizeCurves: true,
		CurveTolerance: 0.2,
		Color:          "",
		Background:     "",
	}
}

// Validate checks every field for internal consistency, returning the
// first violation found as an *InvalidParameterError.
func (o Options) Validate() error {
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
	if o.Color == "transparent" {
		return &InvalidParameterError{Field: "Color", Reason: `"transparent" is reserved; use an explicit alpha-bearing color instead`}
	}
	if o.Width < 0 {
		return &InvalidParameterError{Field: "Width", Reason: "must be non-negative"}
	}
	if o.Height < 0 {
		return &InvalidParameterError{Field: "Height", Reason: "must be non-negative"}
	}
	return nil
}
