package curve

import (
	"math"

	"github.com/Fepozopo/vtrace/pkg/contour"
)

// bestPolygon selects, via dynamic programming, the minimal-penalty closed
// polygon whose vertices are a subset of the path's points, constrained so
// that no edge of the chosen polygon extends past the straight-subpath
// reach computed by calcLon. pen[i] holds the cost of the best polygon
// covering the path from point 0 up to point i; prev[i] is the polygon
// vertex preceding i in that optimum.
func bestPolygon(pts []contour.Point, lon []int) []int {
	n := len(pts)
	if n == 0 {
		return nil
	}
	sums := calcSums(n, func(i int) (int, int) { return pts[i].X, pts[i].Y })

	pen := make([]float64, n+1)
	prev := make([]int, n+1)
	for i := 1; i <= n; i++ {
		pen[i] = math.Inf(1)
	}

	for i := 0; i < n; i++ {
		if i != 0 && math.IsInf(pen[i], 1) {
			continue
		}
		limit := lon[i]
		if limit <= i {
			limit += n
		}
		for je := i + 1; je <= limit && je <= n; je++ {
			j := je % n
			cost := pen[i] + penalty(pts, sums, i, j, n, je >= n)
			if cost < pen[je] {
				pen[je] = cost
				prev[je] = i
			}
		}
	}

	if math.IsInf(pen[n], 1) {
		// Degenerate path (shouldn't happen for a well-formed closed
		// contour); fall back to using every point as a vertex.
		idx := make([]int, n)
		for i := range idx {
			idx[i] = i
		}
		return idx
	}

	var rev []int
	for i := n; ; {
		p := prev[i]
		rev = append(rev, p)
		if p == 0 {
			break
		}
		i = p
	}
	poly := make([]int, len(rev))
	for i, v := range rev {
		poly[len(rev)-1-i] = v
	}
	return poly
}

// penalty estimates the least-squares deviation of replacing path points
// i..j (inclusive, possibly wrapping past n when wrap is true) with a
// single straight edge.
func penalty(pts []contour.Point, sums *pointSums, i, j, n int, wrap bool) float64 {
	var x, y, x2, xy, y2 float64
	var k int
	if !wrap {
		x = sums.x[j+1] - sums.x[i]
		y = sums.y[j+1] - sums.y[i]
		x2 = sums.x2[j+1] - sums.x2[i]
		xy = sums.xy[j+1] - sums.xy[i]
		y2 = sums.y2[j+1] - sums.y2[i]
		k = j + 1 - i
	} else {
		x = sums.x[j+1] - sums.x[i] + sums.x[n]
		y = sums.y[j+1] - sums.y[i] + sums.y[n]
		x2 = sums.x2[j+1] - sums.x2[i] + sums.x2[n]
		xy = sums.xy[j+1] - sums.xy[i] + sums.xy[n]
		y2 = sums.y2[j+1] - sums.y2[i] + sums.y2[n]
		k = j + 1 - i + n
	}
	if k == 0 {
		return 0
	}

	px := float64(pts[i].X+pts[j].X)/2.0 - float64(pts[0].X)
	py := float64(pts[i].Y+pts[j].Y)/2.0 - float64(pts[0].Y)
	nyv := float64(pts[j].X - pts[i].X)
	nxv := -float64(pts[j].Y - pts[i].Y)

	kf := float64(k)
	a := (x2-2*x*px)/kf + px*px
	b := (xy-x*py-y*px)/kf + px*py
	c := (y2-2*y*py)/kf + py*py

	s := nxv*nxv*a + 2*nxv*nyv*b + nyv*nyv*c
	if s < 0 {
		s = 0
	}
	return math.Sqrt(s)
}
