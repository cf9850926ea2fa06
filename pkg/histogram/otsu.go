package histogram

import "math"

// lookupTable holds the prefix sums that make the classical Otsu P/S/H
// between-class-variance tables an O(1) query:
//
//	P[i,j] = sum_{l=i..j} count_l        (segment pixel count)
//	S[i,j] = sum_{l=i..j} l*count_l      (segment first moment)
//	H[i,j] = S[i,j]^2 / P[i,j]           (0 when P == 0)
//
// Built once per Histogram on first use of MultilevelThresholding and
// cached for its lifetime.
type lookupTable struct {
	prefixP [bins + 1]float64 // prefixP[i] = sum_{l=0..i-1} count_l
	prefixS [bins + 1]float64 // prefixS[i] = sum_{l=0..i-1} l*count_l
}

func (h *Histogram) ensureLUT() {
	if h.lut != nil {
		return
	}
	lut := &lookupTable{}
	for l := 0; l < bins; l++ {
		c := float64(h.counts[l])
		lut.prefixP[l+1] = lut.prefixP[l] + c
		lut.prefixS[l+1] = lut.prefixS[l] + float64(l)*c
	}
	h.lut = lut
}

// segP returns P[i,j] for the inclusive range [i, j].
func (lut *lookupTable) segP(i, j int) float64 {
	if j < i {
		return 0
	}
	return lut.prefixP[j+1] - lut.prefixP[i]
}

func (lut *lookupTable) segS(i, j int) float64 {
	if j < i {
		return 0
	}
	return lut.prefixS[j+1] - lut.prefixS[i]
}

// segH returns H[i,j], the between-class variance contribution of treating
// [i,j] as a single class.
func (lut *lookupTable) segH(i, j int) float64 {
	p := lut.segP(i, j)
	if p == 0 {
		return 0
	}
	s := lut.segS(i, j)
	return s * s / p
}

const otsuEps = 1e-6

// bestThresholds finds the k thresholds in (min, max) maximizing the sum of
// H across the k+1 induced segments, using a suffix DP so the final
// reconstruction walks left to right and always picks the smallest index
// achieving the optimum — i.e. the lexicographically smallest tuple.
func (lut *lookupTable) bestThresholds(k, min, max int) []int {
	segments := k + 1

	// suffix[r][start] = best achievable sum of H partitioning [start, max]
	// into r contiguous segments. Indexed by start-min for compactness.
	n := max - min + 1
	suffix := make([][]float64, segments+1)
	for r := 1; r <= segments; r++ {
		suffix[r] = make([]float64, n+1)
		for idx := n; idx >= 0; idx-- {
			start := min + idx
			if r == 1 {
				if start > max {
					suffix[r][idx] = math.Inf(-1)
					continue
				}
				suffix[r][idx] = lut.segH(start, max)
				continue
			}
			// need at least r levels remaining to form r non-empty... actually
			// segments may be empty-free but here each segment must contain
			// at least 1 level since thresholds are distinct within (min,max).
			if start > max-(r-1) {
				suffix[r][idx] = math.Inf(-1)
				continue
			}
			lo := start
			if r == segments {
				// the first threshold lies strictly above min
				lo = start + 1
			}
			best := math.Inf(-1)
			for j := lo; j <= max-(r-1); j++ {
				v := lut.segH(start, j) + suffix[r-1][j+1-min]
				if v > best {
					best = v
				}
			}
			suffix[r][idx] = best
		}
	}

	target := suffix[segments][0]
	if math.IsInf(target, -1) {
		return nil
	}

	thresholds := make([]int, 0, k)
	start := min
	remaining := segments
	for s := 1; s <= k; s++ {
		lo := start
		if s == 1 {
			lo = min + 1
		}
		for j := lo; j <= max-(remaining-1); j++ {
			v := lut.segH(start, j) + suffix[remaining-1][j+1-min]
			if math.Abs(v-target) < otsuEps*math.Max(1, math.Abs(target)) {
				thresholds = append(thresholds, j)
				target = suffix[remaining-1][j+1-min]
				start = j + 1
				remaining--
				break
			}
		}
	}
	return thresholds
}
