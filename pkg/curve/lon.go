package curve

import "github.com/Fepozopo/vtrace/pkg/contour"

// calcLon computes, for each point i on the closed path pts, the furthest
// point lon[i] such that the sub-path from i to lon[i] can be represented by
// a single straight line without violating the path's own turn structure.
//
// It works by tracking, for each start point i, a narrowing "constraint
// cone" (two bounding vectors) that every subsequent candidate point's
// offset from i must stay within; the cone only widens enough to admit
// integer-lattice slack of one unit each step. The walk stops either when
// all four compass-ish direction buckets have been visited (a full turn has
// occurred, so no longer straight) or when a candidate point falls outside
// the current cone, in which case the furthest admissible point is found by
// intersecting the cone boundary with the candidate's direction.
func calcLon(pts []contour.Point) []int {
	n := len(pts)
	pivk := make([]int, n)
	nc := make([]int, n)

	// nc[i]: the next point index whose coordinates differ from pts[i] on
	// both axes, walking backward lets every i reuse the scan already done
	// for later indices.
	k := 0
	for i := n - 1; i >= 0; i-- {
		if pts[i].X != pts[k].X && pts[i].Y != pts[k].Y {
			k = i + 1
		}
		nc[i] = k
	}

	for i := n - 1; i >= 0; i-- {
		var ct [4]int
		dir := (3 + 3*sign(pts[mod(i+1, n)].X-pts[i].X) + sign(pts[mod(i+1, n)].Y-pts[i].Y)) / 2
		ct[dir]++

		var c0, c1 Point
		kk := nc[i]
		k1 := i
		found := false

		for {
			dir = (3 + 3*sign(pts[kk].X-pts[k1].X) + sign(pts[kk].Y-pts[k1].Y)) / 2
			ct[dir]++
			if ct[0] != 0 && ct[1] != 0 && ct[2] != 0 && ct[3] != 0 {
				pivk[i] = k1
				found = true
				break
			}

			cur := Point{
				X: float64(pts[kk].X - pts[i].X),
				Y: float64(pts[kk].Y - pts[i].Y),
			}
			if c0.Cross(cur) < 0 || c1.Cross(cur) > 0 {
				break
			}

			if absF(cur.X) > 1 || absF(cur.Y) > 1 {
				var off Point
				if cur.Y >= 0 && (cur.Y > 0 || cur.X < 0) {
					off.X = cur.X + 1
				} else {
					off.X = cur.X - 1
				}
				if cur.X <= 0 && (cur.X < 0 || cur.Y < 0) {
					off.Y = cur.Y + 1
				} else {
					off.Y = cur.Y - 1
				}
				if c0.Cross(off) >= 0 {
					c0 = off
				}

				if cur.Y <= 0 && (cur.Y < 0 || cur.X < 0) {
					off.X = cur.X + 1
				} else {
					off.X = cur.X - 1
				}
				if cur.X >= 0 && (cur.X > 0 || cur.Y < 0) {
					off.Y = cur.Y + 1
				} else {
					off.Y = cur.Y - 1
				}
				if c1.Cross(off) <= 0 {
					c1 = off
				}
			}

			k1 = kk
			kk = nc[k1]
			if !cyclic(kk, i, k1) {
				break
			}
		}

		if !found {
			dk := Point{
				X: float64(sign(pts[kk].X - pts[k1].X)),
				Y: float64(sign(pts[kk].Y - pts[k1].Y)),
			}
			cur := Point{
				X: float64(pts[k1].X - pts[i].X),
				Y: float64(pts[k1].Y - pts[i].Y),
			}
			a := c0.Cross(cur)
			b := c0.Cross(dk)
			c := c1.Cross(cur)
			d := c1.Cross(dk)

			j := 10000000.0
			if b < 0 {
				j = floorDiv(a, -b)
			}
			if d > 0 {
				j = minF(j, floorDiv(-c, d))
			}
			pivk[i] = mod(k1+int(j), n)
		}
	}

	lon := make([]int, n)
	j := pivk[n-1]
	lon[n-1] = j
	for i := n - 2; i >= 0; i-- {
		if cyclic(i+1, pivk[i], j) {
			j = pivk[i]
		}
		lon[i] = j
	}
	for i := n - 1; i >= 0 && cyclic(mod(i+1, n), j, lon[i]); i-- {
		lon[i] = j
	}
	return lon
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func minF(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}

func floorDiv(a, b float64) float64 {
	q := a / b
	if q < 0 {
		return q - 1
	}
	return float64(int(q))
}
