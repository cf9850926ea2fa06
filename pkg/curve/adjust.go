package curve

import (
	"math"

	"github.com/Fepozopo/vtrace/pkg/contour"
)

// quad is a symmetric 3x3 matrix (flattened row-major) representing the
// quadratic form a vertex is fit against: each polygon edge contributes a
// rank-1 quadratic penalizing distance from its best-fit line, and a
// vertex's position is chosen to minimize the sum of its two adjacent
// edges' penalties.
type quad struct {
	data [9]float64
}

func (q *quad) at(r, c int) float64 { return q.data[r*3+c] }

func (q *quad) add(v [3]float64, scale float64) {
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			q.data[r*3+c] += v[r] * v[c] * scale
		}
	}
}

func quadform(q *quad, w Point) float64 {
	v := [3]float64{w.X, w.Y, 1}
	var sum float64
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			sum += v[r] * q.at(r, c) * v[c]
		}
	}
	return sum
}

// edgeLine computes a best-fit line (a point on it, ctr, and its direction,
// dir) through the path points spanning [i, j] via least squares over the
// path's cumulative sums, returning the eigenvector of the larger
// eigenvalue of the scatter matrix (the direction the points are most
// spread along).
func edgeLine(pts []contour.Point, sums *pointSums, i, j, n int) (ctr, dir Point) {
	r := 0
	for j >= n {
		j -= n
		r++
	}
	for i >= n {
		i -= n
		r--
	}
	for j < 0 {
		j += n
		r--
	}
	for i < 0 {
		i += n
		r++
	}

	x := sums.x[j+1] - sums.x[i] + float64(r)*sums.x[n]
	y := sums.y[j+1] - sums.y[i] + float64(r)*sums.y[n]
	x2 := sums.x2[j+1] - sums.x2[i] + float64(r)*sums.x2[n]
	xy := sums.xy[j+1] - sums.xy[i] + float64(r)*sums.xy[n]
	y2 := sums.y2[j+1] - sums.y2[i] + float64(r)*sums.y2[n]
	k := float64(j + 1 - i + r*n)

	ctr = Point{X: x / k, Y: y / k}

	a := (x2 - x*x/k) / k
	b := (xy - x*y/k) / k
	c := (y2 - y*y/k) / k

	lambda2 := (a + c + math.Sqrt((a-c)*(a-c)+4*b*b)) / 2
	a -= lambda2
	c -= lambda2

	var l float64
	if math.Abs(a) >= math.Abs(c) {
		l = math.Sqrt(a*a + b*b)
		if l != 0 {
			dir = Point{X: -b / l, Y: a / l}
		}
	} else {
		l = math.Sqrt(c*c + b*b)
		if l != 0 {
			dir = Point{X: -c / l, Y: b / l}
		}
	}
	if l == 0 {
		dir = Point{}
	}
	return ctr, dir
}

// adjustVertices moves each selected polygon vertex to the point that best
// satisfies both its incoming and outgoing edge lines simultaneously
// (minimizing the sum of the two edges' quadratic penalties), preferring a
// point within half a pixel of the original polygon vertex and falling back
// to a constrained search of the surrounding unit square otherwise.
func adjustVertices(pts []contour.Point, poly []int) []Point {
	m := len(poly)
	n := len(pts)
	if m == 0 {
		return nil
	}
	sums := calcSums(n, func(i int) (int, int) { return pts[i].X, pts[i].Y })
	x0, y0 := float64(pts[0].X), float64(pts[0].Y)

	ctrs := make([]Point, m)
	dirs := make([]Point, m)
	for i := 0; i < m; i++ {
		jEnd := poly[(i+1)%m]
		jEnd = mod(jEnd-poly[i], n) + poly[i]
		ctrs[i], dirs[i] = edgeLine(pts, sums, poly[i], jEnd, n)
	}

	quads := make([]*quad, m)
	for i := 0; i < m; i++ {
		q := &quad{}
		d := dirs[i].X*dirs[i].X + dirs[i].Y*dirs[i].Y
		if d != 0 {
			v := [3]float64{dirs[i].Y, -dirs[i].X, 0}
			v[2] = -v[1]*ctrs[i].Y - v[0]*ctrs[i].X
			q.add(v, 1/d)
		}
		quads[i] = q
	}

	vertices := make([]Point, m)
	for i := 0; i < m; i++ {
		s := Point{X: float64(pts[poly[i]].X) - x0, Y: float64(pts[poly[i]].Y) - y0}
		j := mod(i-1, m)

		q := &quad{}
		for k := 0; k < 9; k++ {
			q.data[k] = quads[j].data[k] + quads[i].data[k]
		}

		var w Point
		solved := false
		for attempt := 0; attempt < 8; attempt++ {
			det := q.at(0, 0)*q.at(1, 1) - q.at(0, 1)*q.at(1, 0)
			if det != 0 {
				w.X = (-q.at(0, 2)*q.at(1, 1) + q.at(1, 2)*q.at(0, 1)) / det
				w.Y = (q.at(0, 2)*q.at(1, 0) - q.at(1, 2)*q.at(0, 0)) / det
				solved = true
				break
			}
			var v [3]float64
			if q.at(0, 0) > q.at(1, 1) {
				v[0], v[1] = -q.at(0, 1), q.at(0, 0)
			} else if q.at(1, 1) != 0 {
				v[0], v[1] = -q.at(1, 1), q.at(1, 0)
			} else {
				v[0], v[1] = 1, 0
			}
			d := v[0]*v[0] + v[1]*v[1]
			if d == 0 {
				break
			}
			v[2] = -v[1]*s.Y - v[0]*s.X
			q.add(v, 1/d)
		}

		dx := math.Abs(w.X - s.X)
		dy := math.Abs(w.Y - s.Y)
		if solved && dx <= 0.5 && dy <= 0.5 {
			vertices[i] = Point{X: w.X + x0, Y: w.Y + y0}
			continue
		}

		min := quadform(q, s)
		xmin, ymin := s.X, s.Y

		if q.at(0, 0) != 0 {
			for z := 0; z < 2; z++ {
				cy := s.Y - 0.5 + float64(z)
				cx := -(q.at(0, 1)*cy + q.at(0, 2)) / q.at(0, 0)
				if math.Abs(cx-s.X) <= 0.5 {
					cand := quadform(q, Point{cx, cy})
					if cand < min {
						min, xmin, ymin = cand, cx, cy
					}
				}
			}
		}
		if q.at(1, 1) != 0 {
			for z := 0; z < 2; z++ {
				cx := s.X - 0.5 + float64(z)
				cy := -(q.at(1, 0)*cx + q.at(1, 2)) / q.at(1, 1)
				if math.Abs(cy-s.Y) <= 0.5 {
					cand := quadform(q, Point{cx, cy})
					if cand < min {
						min, xmin, ymin = cand, cx, cy
					}
				}
			}
		}
		for l := 0; l < 2; l++ {
			for k := 0; k < 2; k++ {
				cx := s.X - 0.5 + float64(l)
				cy := s.Y - 0.5 + float64(k)
				cand := quadform(q, Point{cx, cy})
				if cand < min {
					min, xmin, ymin = cand, cx, cy
				}
			}
		}
		vertices[i] = Point{X: xmin + x0, Y: ymin + y0}
	}
	return vertices
}
