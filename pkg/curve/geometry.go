package curve

// Point is a real-valued 2D coordinate used throughout polygon fitting and
// curve construction, as opposed to the integer lattice points the contour
// decomposer works with.
type Point struct {
	X, Y float64
}

func (p Point) Add(q Point) Point      { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) Sub(q Point) Point      { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) Scale(s float64) Point  { return Point{p.X * s, p.Y * s} }
func (p Point) Dot(q Point) float64    { return p.X*q.X + p.Y*q.Y }
func (p Point) Cross(q Point) float64  { return p.X*q.Y - p.Y*q.X }
func (p Point) Interp(q Point, t float64) Point {
	return Point{p.X + t*(q.X-p.X), p.Y + t*(q.Y-p.Y)}
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// mod is Euclidean modulo: it never returns a negative result, which plain
// % does for negative a in Go.
func mod(a, n int) int {
	if n == 0 {
		return 0
	}
	a = a % n
	if a < 0 {
		a += n
	}
	return a
}

// cyclic reports whether b lies in the half-open cyclic interval [a, c) walking
// forward from a, wrapping at the path length. Used throughout the
// polygon-fitting passes, which all operate on indices modulo path length.
func cyclic(a, b, c int) bool {
	if a <= c {
		return a <= b && b < c
	}
	return a <= b || b < c
}
