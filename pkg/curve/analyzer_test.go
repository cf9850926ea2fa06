package curve

import (
	"math"
	"testing"

	"github.com/Fepozopo/vtrace/pkg/contour"
)

func squarePath(sign byte) *contour.Path {
	pts := []contour.Point{
		{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: 2}, {X: 0, Y: 3}, {X: 0, Y: 4},
		{X: 1, Y: 4}, {X: 2, Y: 4}, {X: 3, Y: 4}, {X: 4, Y: 4},
		{X: 4, Y: 3}, {X: 4, Y: 2}, {X: 4, Y: 1}, {X: 4, Y: 0},
		{X: 3, Y: 0}, {X: 2, Y: 0}, {X: 1, Y: 0},
	}
	return &contour.Path{
		Sign:   sign,
		Points: pts,
		Area:   16,
		MinX:   0, MinY: 0, MaxX: 4, MaxY: 4,
	}
}

func TestAnalyzeProducesNoNaNOrInf(t *testing.T) {
	c := Analyze(squarePath('+'), DefaultOptions())
	if len(c.Segments) == 0 {
		t.Fatal("expected at least one segment")
	}
	for i, seg := range c.Segments {
		pts := []Point{seg.Vertex, seg.ControlStart, seg.ControlEnd, seg.EndPoint}
		for _, p := range pts {
			if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
				t.Fatalf("segment %d has non-finite coordinate: %+v", i, seg)
			}
		}
	}
}

func TestAnalyzeSharpSquareYieldsCorners(t *testing.T) {
	c := Analyze(squarePath('+'), DefaultOptions())
	cornerCount := 0
	for _, seg := range c.Segments {
		if seg.Kind == Corner {
			cornerCount++
		}
	}
	if cornerCount == 0 {
		t.Error("a square's sharp turns should produce at least one corner segment")
	}
}

func TestAnalyzeShortPathReturnsEmptyCurve(t *testing.T) {
	c := Analyze(&contour.Path{Sign: '+', Points: []contour.Point{{X: 0, Y: 0}}}, DefaultOptions())
	if len(c.Segments) != 0 {
		t.Errorf("expected no segments for a degenerate path, got %d", len(c.Segments))
	}
}

func TestAnalyzeHoleSignPreserved(t *testing.T) {
	c := Analyze(squarePath('-'), DefaultOptions())
	if c.Sign != '-' {
		t.Errorf("Sign = %c, want -", c.Sign)
	}
}

func TestOptimizeNoOpBelowTwoSegments(t *testing.T) {
	c := &Curve{Segments: []Segment{{Kind: Smooth}}}
	got := optimize(c, 0.2)
	if len(got.Segments) != 1 {
		t.Errorf("expected single segment unchanged, got %d", len(got.Segments))
	}
}
