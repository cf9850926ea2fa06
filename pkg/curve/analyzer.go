// Package curve turns the integer contours produced by the contour
// decomposer into smooth vector outlines: it finds the longest straight
// run through each point, selects a minimal-penalty polygon bounded by
// those runs, nudges each polygon vertex to its least-squares optimum,
// classifies each vertex as a sharp corner or a smooth curve, and
// optionally merges consecutive smooth segments into longer Bezier curves.
package curve

import "github.com/Fepozopo/vtrace/pkg/contour"

// Options controls how aggressively the analyzer smooths and merges
// segments.
type Options struct {
	// AlphaMax is the corner-vs-curve threshold: vertices whose computed
	// alpha meets or exceeds this are rendered as sharp corners.
	AlphaMax float64
	// OptimizeCurves enables the second pass that merges consecutive
	// smooth segments into longer Beziers.
	OptimizeCurves bool
	// CurveTolerance bounds the maximum sampled deviation OptimizeCurves
	// will accept when merging segments.
	CurveTolerance float64
}

// DefaultOptions mirrors the parameters a typical tracing run uses absent
// explicit overrides.
func DefaultOptions() Options {
	return Options{
		AlphaMax:       1.0,
		OptimizeCurves: true,
		CurveTolerance: 0.2,
	}
}

// Analyze builds the smoothed Curve for a single traced contour.
func Analyze(path *contour.Path, opts Options) *Curve {
	pts := path.Points
	if len(pts) < 2 {
		return &Curve{Sign: path.Sign}
	}

	lon := calcLon(pts)
	poly := bestPolygon(pts, lon)
	vertices := adjustVertices(pts, poly)

	// A hole's boundary winds opposite to an outer boundary; reversing the
	// already-adjusted vertex order here (rather than the raw contour
	// points beforehand) keeps bestPolygon's tie-breaking — which runs in
	// traversal order and favors the lowest index — identical regardless
	// of sign, so a hole's polygon selection never silently diverges from
	// what the same contour would select if it had been wound the other
	// way.
	if path.Sign == '-' {
		vertices = reverseVertices(vertices)
	}

	c := smooth(vertices, opts.AlphaMax)
	c.Sign = path.Sign
	if opts.OptimizeCurves && opts.CurveTolerance > 0 {
		c = optimize(c, opts.CurveTolerance)
		c.Sign = path.Sign
	}
	return c
}

func reverseVertices(pts []Point) []Point {
	out := make([]Point, len(pts))
	for i, p := range pts {
		out[len(pts)-1-i] = p
	}
	return out
}
