// Package svgrender serializes smoothed curves into SVG path data and
// assembles the surrounding document or symbol markup.
package svgrender

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Fepozopo/vtrace/pkg/curve"
)

// Decimals is the fixed-point precision used for every emitted coordinate.
const Decimals = 3

// formatNumber renders v to Decimals places, stripping a trailing ".000"
// (or any run of trailing zero-fraction) so whole-pixel coordinates stay
// short.
func formatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', Decimals, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "" || s == "-" {
		s = "0"
	}
	return s
}

func point(p curve.Point) string {
	return formatNumber(p.X) + "," + formatNumber(p.Y)
}

// PathData renders one closed Curve as an SVG path "d" attribute value:
// an absolute "M" to the last segment's end point (where the closed outline
// starts and ends), one "C" per Smooth
// segment, one "L" pair per Corner segment, and a trailing "Z".
func PathData(c *curve.Curve) string {
	if len(c.Segments) == 0 {
		return ""
	}
	var b strings.Builder
	start := c.Segments[len(c.Segments)-1].EndPoint
	b.WriteString("M")
	b.WriteString(point(start))

	for _, seg := range c.Segments {
		switch seg.Kind {
		case curve.Corner:
			b.WriteString("L")
			b.WriteString(point(seg.Vertex))
			b.WriteString("L")
			b.WriteString(point(seg.EndPoint))
		default:
			b.WriteString("C")
			b.WriteString(point(seg.ControlStart))
			b.WriteString(" ")
			b.WriteString(point(seg.ControlEnd))
			b.WriteString(" ")
			b.WriteString(point(seg.EndPoint))
		}
	}
	b.WriteString("Z")
	return b.String()
}

// Layer is a single filled region of the rendered output: one or more
// curves (an outer boundary plus any holes) sharing a fill color, combined
// under the SVG evenodd fill rule so oppositely-wound holes render as
// transparent.
type Layer struct {
	Curves []*curve.Curve
	Fill   string
	Opacity float64
}

// PathElement renders one <path> element for a Layer.
func PathElement(l Layer) string {
	var d strings.Builder
	for _, c := range l.Curves {
		d.WriteString(PathData(c))
	}
	attrs := map[string]string{
		"d":         d.String(),
		"stroke":    "none",
		"fill":      l.Fill,
		"fill-rule": "evenodd",
	}
	if l.Opacity > 0 && l.Opacity < 1 {
		attrs["fill-opacity"] = formatNumber(l.Opacity)
	}
	return element("path", attrs, "")
}

// Document assembles a complete standalone SVG document.
type Document struct {
	Width, Height int
	Background    string // empty or "transparent" means no background rect
	Layers        []Layer
}

func (doc Document) Render() string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" version="1.1">`,
		doc.Width, doc.Height, doc.Width, doc.Height,
	))
	b.WriteString("\n")
	if doc.Background != "" && doc.Background != "transparent" {
		b.WriteString(element("rect", map[string]string{
			"x": "0", "y": "0",
			"width":  strconv.Itoa(doc.Width),
			"height": strconv.Itoa(doc.Height),
			"fill":   doc.Background,
		}, ""))
		b.WriteString("\n")
	}
	for _, l := range doc.Layers {
		b.WriteString(PathElement(l))
		b.WriteString("\n")
	}
	b.WriteString("</svg>\n")
	return b.String()
}

// Symbol assembles a reusable <symbol> definition plus a <use> reference,
// for callers embedding the traced output into a larger document.
func Symbol(id string, width, height int, layers []Layer) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf(`<symbol id="%s" viewBox="0 0 %d %d">`, escapeAttr(id), width, height))
	b.WriteString("\n")
	for _, l := range layers {
		b.WriteString(PathElement(l))
		b.WriteString("\n")
	}
	b.WriteString("</symbol>\n")
	b.WriteString(fmt.Sprintf(`<use href="#%s" width="%d" height="%d"/>`, escapeAttr(id), width, height))
	b.WriteString("\n")
	return b.String()
}
