// Package trace implements the Tracer façade: it binarizes a bitmap,
// decomposes it into contours, fits smooth curves to each, and renders the
// result as an SVG document.
package trace

import (
	"fmt"

	"github.com/Fepozopo/vtrace/pkg/bitmap"
	"github.com/Fepozopo/vtrace/pkg/contour"
	"github.com/Fepozopo/vtrace/pkg/curve"
	"github.com/Fepozopo/vtrace/pkg/histogram"
	"github.com/Fepozopo/vtrace/pkg/svgrender"
)

type state int

const (
	stateUnloaded state = iota
	stateLoaded
	stateProcessed
)

// Tracer holds the pipeline state for a single source image: Load moves it
// from Unloaded to Loaded, Process moves it from Loaded to Processed, and
// a later Load resets back to Loaded, invalidating any prior Process
// results (accessors called after it run Process again on the new bitmap).
type Tracer struct {
	opts Options

	state state
	src   *bitmap.Bitmap // luminance bitmap built from the loaded source
	gen   int            // bumped on every Load; processed results stamp their gen

	hist    *histogram.Histogram
	curves  []*curve.Curve
	doc     svgrender.Document
	docGen  int
	histGen int
}

// NewTracer constructs a Tracer with the given options, already validated.
func NewTracer(opts Options) (*Tracer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Tracer{opts: opts}, nil
}

// Load builds the working luminance bitmap from src, discarding any
// previously processed result.
func (t *Tracer) Load(src bitmap.Source) {
	t.src = bitmap.FromRGBA(src)
	t.gen++
	t.state = stateLoaded
	t.hist = nil
	t.curves = nil
}

// Process runs binarization, decomposition, and curve fitting, caching the
// histogram, curves, and rendered document for the current generation.
func (t *Tracer) Process() error {
	if t.state == stateUnloaded {
		return ErrNotLoaded
	}

	t.hist = histogram.New(t.src)
	t.histGen = t.gen

	cutoff := t.opts.Cutoff
	if t.opts.ThresholdMode == ThresholdAuto {
		if auto, ok := t.hist.AutoThreshold(0, 255); ok {
			// AutoThreshold (like MultilevelThresholding) returns the last
			// level belonging to the darker class; Bitmap.Threshold's
			// cutoff is the first level of the lighter class, one higher.
			cutoff = auto + 1
		} else {
			cutoff = 128
		}
	}
	bin := t.src.Threshold(cutoff, t.opts.BlackOnWhite)

	decomposer := contour.NewDecomposer(bin, t.opts.TurnPolicy)
	paths := decomposer.Decompose(t.opts.TurdSize)

	curveOpts := curve.Options{
		AlphaMax:       t.opts.AlphaMax,
		OptimizeCurves: t.opts.OptimizeCurves,
		CurveTolerance: t.opts.CurveTolerance,
	}
	curves := make([]*curve.Curve, len(paths))
	for i, p := range paths {
		curves[i] = curve.Analyze(p, curveOpts)
	}
	t.curves = curves

	var layers []svgrender.Layer
	if len(curves) > 0 {
		layers = []svgrender.Layer{{Curves: curves, Fill: t.resolveColor()}}
	}
	doc := svgrender.Document{
		Width:      t.outputWidth(),
		Height:     t.outputHeight(),
		Background: t.opts.Background,
		Layers:     layers,
	}
	t.doc = doc
	t.docGen = t.gen
	t.state = stateProcessed
	return nil
}

// resolveColor substitutes the BlackOnWhite-appropriate default when
// Options.Color is left at its AUTO sentinel ("" or "AUTO").
func (t *Tracer) resolveColor() string {
	if t.opts.Color == "" || t.opts.Color == "AUTO" {
		if t.opts.BlackOnWhite {
			return "black"
		}
		return "white"
	}
	return t.opts.Color
}

func (t *Tracer) outputWidth() int {
	if t.opts.Width > 0 {
		return t.opts.Width
	}
	return t.src.Width
}

func (t *Tracer) outputHeight() int {
	if t.opts.Height > 0 {
		return t.opts.Height
	}
	return t.src.Height
}

// SVG renders the processed result as a complete SVG document.
func (t *Tracer) SVG() (string, error) {
	if t.state == stateUnloaded {
		return "", ErrNotLoaded
	}
	if t.state != stateProcessed || t.docGen != t.gen {
		if err := t.Process(); err != nil {
			return "", err
		}
	}
	return t.doc.Render(), nil
}

// Histogram returns the luminance histogram of the currently loaded
// bitmap, computing it lazily if Process has not yet run for this
// generation.
func (t *Tracer) Histogram() (*histogram.Histogram, error) {
	if t.state == stateUnloaded {
		return nil, ErrNotLoaded
	}
	if t.hist == nil || t.histGen != t.gen {
		t.hist = histogram.New(t.src)
		t.histGen = t.gen
	}
	return t.hist, nil
}

// Paths returns the fitted curves for the currently processed generation.
func (t *Tracer) Paths() ([]*curve.Curve, error) {
	if t.state == stateUnloaded {
		return nil, ErrNotLoaded
	}
	if t.state != stateProcessed || t.docGen != t.gen {
		if err := t.Process(); err != nil {
			return nil, err
		}
	}
	return t.curves, nil
}

// GetPathTag renders the SVG path data for the processed curves with an
// explicit fill, or the resolved Options.Color when optionalFill is empty.
func (t *Tracer) GetPathTag(optionalFill string) (string, error) {
	paths, err := t.Paths()
	if err != nil {
		return "", err
	}
	fill := optionalFill
	if fill == "" {
		fill = t.resolveColor()
	}
	layer := svgrender.Layer{Curves: paths, Fill: fill}
	return svgrender.PathElement(layer), nil
}

// GetSymbol renders the processed curves as a reusable <symbol>/<use>
// pair, for callers embedding the traced output into a larger document.
func (t *Tracer) GetSymbol(id string) (string, error) {
	paths, err := t.Paths()
	if err != nil {
		return "", err
	}
	var layers []svgrender.Layer
	if len(paths) > 0 {
		layers = []svgrender.Layer{{Curves: paths, Fill: t.resolveColor()}}
	}
	return svgrender.Symbol(id, t.outputWidth(), t.outputHeight(), layers), nil
}

// Trace is a convenience wrapper for the common case: load src, process
// it, and return the rendered SVG document.
func Trace(src bitmap.Source, opts Options) (string, error) {
	t, err := NewTracer(opts)
	if err != nil {
		return "", fmt.Errorf("trace: %w", err)
	}
	t.Load(src)
	return t.SVG()
}
