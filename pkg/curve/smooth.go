package curve

import "math"

// dpara returns twice the signed area of the triangle p0,p1,p2 — the cross
// product of (p1-p0) and (p2-p0).
func dpara(p0, p1, p2 Point) float64 {
	x1, y1 := p1.X-p0.X, p1.Y-p0.Y
	x2, y2 := p2.X-p0.X, p2.Y-p0.Y
	return x1*y2 - x2*y1
}

// ddenom normalizes dpara into a dimensionless curvature-like ratio: minus
// the squared length of the p0-p2 baseline.
func ddenom(p0, p2 Point) float64 {
	dx, dy := p2.X-p0.X, p2.Y-p0.Y
	return -(dx*dx + dy*dy)
}

// smooth converts adjusted polygon vertices into tagged Bezier segments.
// For each vertex j (with neighbors i, k), it measures how far the midpoint
// of the k-j and i-j chords deviates from the straight i-k baseline; a
// large deviation (alpha above alphaMax) marks a sharp Corner, otherwise
// the vertex becomes a Smooth segment with control points pulled toward
// its neighbors in proportion to alpha.
func smooth(vertices []Point, alphaMax float64) *Curve {
	m := len(vertices)
	segs := make([]Segment, m)
	for j := 0; j < m; j++ {
		i := mod(j-1, m)
		k := mod(j+1, m)
		p4 := vertices[k].Interp(vertices[j], 0.5)

		var alpha float64
		denom := ddenom(vertices[i], vertices[k])
		if denom != 0 {
			dd := math.Abs(dpara(vertices[i], vertices[j], vertices[k]) / denom)
			if dd > 1 {
				alpha = 1 - 1.0/dd
			}
			alpha /= 0.75
		} else {
			alpha = 4.0 / 3.0
		}
		alpha0 := alpha

		if alpha >= alphaMax {
			segs[j] = Segment{
				Kind:         Corner,
				Vertex:       vertices[j],
				ControlStart: vertices[j],
				ControlEnd:   p4,
				EndPoint:     p4,
				Alpha:        alpha,
				Alpha0:       alpha0,
				Beta:         0.5,
			}
			continue
		}

		if alpha < 0.55 {
			alpha = 0.55
		} else if alpha > 1 {
			alpha = 1
		}
		p2 := vertices[i].Interp(vertices[j], 0.5+0.5*alpha)
		p3 := vertices[k].Interp(vertices[j], 0.5+0.5*alpha)
		segs[j] = Segment{
			Kind:         Smooth,
			Vertex:       vertices[j],
			ControlStart: p2,
			ControlEnd:   p3,
			EndPoint:     p4,
			Alpha:        alpha,
			Alpha0:       alpha0,
			Beta:         0.5,
		}
	}
	return &Curve{Segments: segs}
}
