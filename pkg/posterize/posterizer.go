// Package posterize implements the Posterizer façade: it quantizes a
// bitmap's luminance into a small number of tonal ranges, traces each
// range's cumulative "foreground up to this threshold" mask, and stacks the
// resulting layers with per-range opacity so their composite reproduces a
// posterized rendition of the source image.
package posterize

import (
	"fmt"

	"github.com/Fepozopo/vtrace/pkg/bitmap"
	"github.com/Fepozopo/vtrace/pkg/contour"
	"github.com/Fepozopo/vtrace/pkg/curve"
	"github.com/Fepozopo/vtrace/pkg/histogram"
	"github.com/Fepozopo/vtrace/pkg/svgrender"
)

// Posterizer holds the pipeline state for a single source image.
type Posterizer struct {
	opts Options
	src  *bitmap.Bitmap
	hist *histogram.Histogram
}

// NewPosterizer constructs a Posterizer with the given options, already
// validated.
func NewPosterizer(opts Options) (*Posterizer, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Posterizer{opts: opts}, nil
}

// Load builds the working luminance bitmap from src.
func (p *Posterizer) Load(src bitmap.Source) {
	p.src = bitmap.FromRGBA(src)
	p.hist = nil
}

// Histogram returns the luminance histogram of the loaded bitmap.
func (p *Posterizer) Histogram() (*histogram.Histogram, error) {
	if p.src == nil {
		return nil, fmt.Errorf("posterize: no bitmap loaded")
	}
	if p.hist == nil {
		p.hist = histogram.New(p.src)
	}
	return p.hist, nil
}

// Ranges returns the resolved tonal ranges (threshold, fill color, and
// opacity) that SVG will trace, in draw order.
func (p *Posterizer) Ranges() ([]Range, error) {
	h, err := p.Histogram()
	if err != nil {
		return nil, err
	}
	return resolveRanges(h, p.opts), nil
}

// layers traces every tonal range into an svgrender.Layer, narrowest
// silhouette first. Threshold is an Otsu-derived boundary (the default
// path, for both AUTO steps and AUTO distribution) one level below the
// Bitmap.Threshold cutoff it needs, the same offset trace.Tracer applies;
// applying it uniformly, including to equal-distribution or explicit stops,
// keeps every range traced through one consistent conversion rather than
// branching the offset by where each stop came from.
func (p *Posterizer) layers(ranges []Range) ([]svgrender.Layer, error) {
	curveOpts := curve.Options{
		AlphaMax:       p.opts.AlphaMax,
		OptimizeCurves: p.opts.OptimizeCurves,
		CurveTolerance: p.opts.CurveTolerance,
	}

	layers := make([]svgrender.Layer, 0, len(ranges))
	for _, r := range ranges {
		// an opacity of 0 paints nothing; svgrender would draw it opaque
		if r.Opacity == 0 {
			continue
		}
		cutoff := r.Threshold + 1
		bin := p.src.Threshold(cutoff, p.opts.BlackOnWhite)
		decomposer := contour.NewDecomposer(bin, p.opts.TurnPolicy)
		paths := decomposer.Decompose(p.opts.TurdSize)
		if len(paths) == 0 {
			continue
		}
		curves := make([]*curve.Curve, len(paths))
		for i, pa := range paths {
			curves[i] = curve.Analyze(pa, curveOpts)
		}
		layers = append(layers, svgrender.Layer{
			Curves:  curves,
			Fill:    r.Color,
			Opacity: r.Opacity,
		})
	}
	return layers, nil
}

// SVG traces every tonal range and renders the stacked result as a
// complete SVG document, narrowest silhouette first (bottom of the stack).
func (p *Posterizer) SVG() (string, error) {
	if p.src == nil {
		return "", fmt.Errorf("posterize: no bitmap loaded")
	}
	ranges, err := p.Ranges()
	if err != nil {
		return "", err
	}
	layers, err := p.layers(ranges)
	if err != nil {
		return "", err
	}

	doc := svgrender.Document{
		Width:      p.src.Width,
		Height:     p.src.Height,
		Background: p.opts.Background,
		Layers:     layers,
	}
	return doc.Render(), nil
}

// GetSymbol renders the posterized layers as a reusable <symbol>/<use>
// pair, for callers embedding the posterized output into a larger document.
func (p *Posterizer) GetSymbol(id string) (string, error) {
	if p.src == nil {
		return "", fmt.Errorf("posterize: no bitmap loaded")
	}
	ranges, err := p.Ranges()
	if err != nil {
		return "", err
	}
	layers, err := p.layers(ranges)
	if err != nil {
		return "", err
	}
	return svgrender.Symbol(id, p.src.Width, p.src.Height, layers), nil
}

// Posterize is a convenience wrapper for the common case: load src,
// process it, and return the rendered SVG document.
func Posterize(src bitmap.Source, opts Options) (string, error) {
	p, err := NewPosterizer(opts)
	if err != nil {
		return "", fmt.Errorf("posterize: %w", err)
	}
	p.Load(src)
	return p.SVG()
}
