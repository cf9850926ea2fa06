// Package contour extracts signed closed integer contours from a binary
// bitmap via edge-following along pixel corners (Selinger's method, as used
// by potrace): scan for the next foreground pixel, trace the boundary that
// touches it by keeping foreground on a fixed side and resolving ambiguous
// corners with a turn policy, then erase the traced region so the next scan
// can surface any holes it contains.
package contour

import "github.com/Fepozopo/vtrace/pkg/bitmap"

// Point is a lattice-corner coordinate — contours are traced along the grid
// lines between pixels, not through pixel centers.
type Point struct {
	X, Y int
}

// Path is one closed contour: an ordered sequence of corner points, the
// winding sign used by the downstream fill rule, the unsigned enclosed
// area (for turdSize culling), and its bounding box.
type Path struct {
	Sign                    byte // '+' for an outer boundary, '-' for a hole
	Points                  []Point
	Area                    int
	MinX, MinY, MaxX, MaxY int
}

// Decomposer walks a binary Bitmap and extracts its contours. It holds the
// original bitmap (read for sign determination) and a working copy that
// gets erased path by path as tracing proceeds.
type Decomposer struct {
	orig    *bitmap.Bitmap
	work    *bitmap.Bitmap
	policy  TurnPolicy
	scanPos int
}

// NewDecomposer prepares a Decomposer over bin. bin is not modified; the
// Decomposer clones it for the working copy it mutates during Decompose.
func NewDecomposer(bin *bitmap.Bitmap, policy TurnPolicy) *Decomposer {
	return &Decomposer{
		orig:   bin,
		work:   bin.Clone(),
		policy: policy,
	}
}

// Decompose extracts every contour from the bitmap, discarding any whose
// unsigned enclosed area does not exceed turdSize.
func (d *Decomposer) Decompose(turdSize int) []*Path {
	var paths []*Path
	for {
		start, ok := d.findNext()
		if !ok {
			break
		}
		p := d.findPath(start)
		d.xorPath(p)
		if p.Area > turdSize {
			paths = append(paths, p)
		}
	}
	return paths
}

// findNext scans the working bitmap in row-major order, starting from the
// index left off at by the previous call, for the next foreground pixel.
func (d *Decomposer) findNext() (Point, bool) {
	w := d.work.Width
	n := w * d.work.Height
	i := d.scanPos
	for i < n && d.work.Data[i] == 0 {
		i++
	}
	d.scanPos = i
	if i >= n {
		return Point{}, false
	}
	return Point{X: i % w, Y: i / w}, true
}

// findPath traces the single closed boundary touching start. The sign is
// fixed from the pixel's value in the original (un-eroded) bitmap: outer
// boundaries start on genuine foreground, holes are only discovered once
// an earlier xorPath has exposed them as foreground in the working copy.
func (d *Decomposer) findPath(start Point) *Path {
	sign := byte('+')
	if d.orig.At(start.X, start.Y) == 0 {
		sign = '-'
	}

	x, y := start.X, start.Y
	dirx, diry := 0, 1
	minX, minY, maxX, maxY := x, y, x, y
	var pts []Point
	rawArea := 0

	for {
		pts = append(pts, Point{x, y})
		if x < minX {
			minX = x
		}
		if x > maxX {
			maxX = x
		}
		if y < minY {
			minY = y
		}
		if y > maxY {
			maxY = y
		}

		x += dirx
		y += diry
		rawArea -= x * diry

		if x == start.X && y == start.Y {
			break
		}

		l := d.work.At(x+(dirx+diry-1)/2, y+(diry-dirx-1)/2) == 1
		r := d.work.At(x+(dirx-diry-1)/2, y+(diry+dirx-1)/2) == 1

		switch {
		case r && !l:
			if d.shouldTurnRight(x, y, sign) {
				dirx, diry = -diry, dirx
			} else {
				dirx, diry = diry, -dirx
			}
		case r:
			dirx, diry = -diry, dirx
		case !l:
			dirx, diry = diry, -dirx
		}
	}

	area := rawArea
	if area < 0 {
		area = -area
	}
	return &Path{
		Sign:   sign,
		Points: pts,
		Area:   area,
		MinX:   minX, MinY: minY, MaxX: maxX, MaxY: maxY,
	}
}

// shouldTurnRight resolves an ambiguous corner (foreground on the
// ahead-right pixel but not ahead-left) into a concrete turn direction.
func (d *Decomposer) shouldTurnRight(x, y int, sign byte) bool {
	switch d.policy {
	case TurnRight:
		return true
	case TurnLeft:
		return false
	case TurnBlack:
		return sign == '+'
	case TurnWhite:
		return sign != '+'
	case TurnMajority:
		foreground, found := d.majority(x, y)
		if !found {
			return false
		}
		return foreground
	case TurnMinority:
		foreground, found := d.majority(x, y)
		if !found {
			return false
		}
		return !foreground
	default:
		return false
	}
}

// majority inspects expanding square rings around (x, y) in the working
// bitmap, reporting as soon as a ring has more foreground than background
// samples (or the reverse). found is false when every ring up to radius 4
// is perfectly tied, leaving both majority and minority to default to
// left per the turn policy's own fallback rather than one silently
// inheriting the other's tie-break.
func (d *Decomposer) majority(x, y int) (foreground, found bool) {
	for i := 2; i <= 4; i++ {
		ct := 0
		for a := -i + 1; a <= i-1; a++ {
			ct += d.sample(x+a, y+i)
			ct += d.sample(x+i, y+a-1)
			ct += d.sample(x+a-1, y-i)
			ct += d.sample(x-i, y+a)
		}
		if ct > 0 {
			return true, true
		}
		if ct < 0 {
			return false, true
		}
	}
	return false, false
}

func (d *Decomposer) sample(x, y int) int {
	if d.work.At(x, y) == 1 {
		return 1
	}
	return -1
}

// xorPath erases p's interior from the working bitmap: for every vertical
// edge in the path (a step where y changes), it flips every pixel from that
// edge's x to the path's own maxX. Run once per traced path, this flips
// exactly the cells enclosed by that single boundary — including any holes
// it contains, which is what lets the next findNext discover them as
// foreground in their own right.
func (d *Decomposer) xorPath(p *Path) {
	if len(p.Points) == 0 {
		return
	}
	y1 := p.Points[0].Y
	maxX := p.MaxX
	for i := 1; i < len(p.Points); i++ {
		pt := p.Points[i]
		if pt.Y != y1 {
			minY := y1
			if pt.Y < minY {
				minY = pt.Y
			}
			for j := pt.X; j < maxX; j++ {
				d.work.Set(j, minY, d.work.At(j, minY)^1)
			}
			y1 = pt.Y
		}
	}
}
