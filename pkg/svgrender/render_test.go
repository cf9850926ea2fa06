package svgrender

import (
	"strings"
	"testing"

	"github.com/Fepozopo/vtrace/pkg/curve"
)

func TestFormatNumberStripsTrailingZeros(t *testing.T) {
	cases := map[float64]string{
		1.0:     "1",
		1.5:     "1.5",
		0:       "0",
		-2.25:   "-2.25",
		3.14159: "3.142",
	}
	for in, want := range cases {
		if got := formatNumber(in); got != want {
			t.Errorf("formatNumber(%v) = %q, want %q", in, got, want)
		}
	}
}

func cornerCurve() *curve.Curve {
	return &curve.Curve{
		Sign: '+',
		Segments: []curve.Segment{
			{Kind: curve.Corner, Vertex: curve.Point{X: 0, Y: 0}, EndPoint: curve.Point{X: 10, Y: 0}},
			{Kind: curve.Corner, Vertex: curve.Point{X: 10, Y: 10}, EndPoint: curve.Point{X: 0, Y: 10}},
		},
	}
}

func TestPathDataStartsWithMAndEndsWithZ(t *testing.T) {
	d := PathData(cornerCurve())
	if !strings.HasPrefix(d, "M") {
		t.Errorf("path data should start with M, got %q", d)
	}
	if !strings.HasSuffix(d, "Z") {
		t.Errorf("path data should end with Z, got %q", d)
	}
	if strings.Count(d, "L") != 4 {
		t.Errorf("expected 4 line commands for 2 corner segments, got %q", d)
	}
}

func TestPathDataEmptyCurve(t *testing.T) {
	if got := PathData(&curve.Curve{}); got != "" {
		t.Errorf("expected empty path data for empty curve, got %q", got)
	}
}

func TestDocumentRenderIncludesBackgroundAndLayers(t *testing.T) {
	doc := Document{
		Width: 20, Height: 20, Background: "#fff",
		Layers: []Layer{{Curves: []*curve.Curve{cornerCurve()}, Fill: "#000"}},
	}
	out := doc.Render()
	if !strings.Contains(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Errorf("render should wrap in an <svg> root: %q", out)
	}
	if !strings.Contains(out, `fill="#fff"`) {
		t.Errorf("render should include the background rect: %q", out)
	}
	if !strings.Contains(out, `fill="#000"`) {
		t.Errorf("render should include the layer path: %q", out)
	}
	if !strings.Contains(out, `fill-rule="evenodd"`) {
		t.Errorf("path should use evenodd fill-rule: %q", out)
	}
}

func TestDocumentRenderNoBackground(t *testing.T) {
	doc := Document{Width: 5, Height: 5}
	out := doc.Render()
	if strings.Contains(out, "<rect") {
		t.Errorf("no background requested, should not emit a <rect>: %q", out)
	}
}

func TestSetAttrReplacesExisting(t *testing.T) {
	in := `<svg width="10" height="10"></svg>`
	out := SetAttr(in, "width", "20")
	if !strings.Contains(out, `width="20"`) {
		t.Errorf("expected width replaced, got %q", out)
	}
	if strings.Contains(out, `width="10"`) {
		t.Errorf("old width should be gone, got %q", out)
	}
	if !strings.Contains(out, `height="10"`) {
		t.Errorf("unrelated attribute should survive, got %q", out)
	}
}

func TestSetAttrAddsNewAttribute(t *testing.T) {
	in := `<svg height="10"></svg>`
	out := SetAttr(in, "width", "30")
	if !strings.Contains(out, `width="30"`) {
		t.Errorf("expected width added, got %q", out)
	}
}

func TestSymbolProducesSymbolAndUse(t *testing.T) {
	out := Symbol("trace", 10, 10, []Layer{{Curves: []*curve.Curve{cornerCurve()}, Fill: "#123"}})
	if !strings.Contains(out, `<symbol id="trace"`) {
		t.Errorf("expected symbol element: %q", out)
	}
	if !strings.Contains(out, `<use href="#trace"`) {
		t.Errorf("expected use element referencing the symbol: %q", out)
	}
}
