// Package histogram builds the 256-bin luminance distribution the tracer
// and posterizer use for automatic thresholding and range statistics.
package histogram

import (
	"fmt"
	"math"
	"sort"

	"github.com/Fepozopo/vtrace/pkg/bitmap"
)

const bins = 256

// RangeError is returned when a caller passes min > max to a range-based
// query.
type RangeError struct {
	Min, Max int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("histogram: invalid range [%d, %d]", e.Min, e.Max)
}

// LevelStats describes the distribution of luminance levels within a range.
type LevelStats struct {
	Mean, Median, StdDev float64
	Unique               int
}

// PixelStats describes the distribution of per-level pixel counts within a
// range.
type PixelStats struct {
	Mean, Median float64
	Peak         int
}

// Stats is the result of a ranged query over the histogram.
type Stats struct {
	Pixels         int
	Levels         LevelStats
	PixelsPerLevel PixelStats
}

// Histogram is a read-only 256-bin luminance distribution built once from a
// Bitmap. Its Otsu lookup table is computed lazily on first use and cached
// for the lifetime of the Histogram; callers who need a fresh view must
// build a new Histogram over a new (or re-binarized) Bitmap.
type Histogram struct {
	counts [bins]int
	total  int

	lut *lookupTable
}

// New builds a Histogram over the luminance values of bmp.
func New(bmp *bitmap.Bitmap) *Histogram {
	h := &Histogram{}
	for _, v := range bmp.Data {
		h.counts[v]++
	}
	h.total = len(bmp.Data)
	return h
}

// Stats computes pixel/level statistics over the inclusive range [min, max].
func (h *Histogram) Stats(min, max int) (Stats, error) {
	if min > max {
		return Stats{}, &RangeError{min, max}
	}
	min, max = clampRange(min, max)

	var pixels int
	var unique int
	var sum float64
	var peak int
	var levelsWithPixels int
	for l := min; l <= max; l++ {
		c := h.counts[l]
		pixels += c
		if c > 0 {
			unique++
			levelsWithPixels++
		}
		if c > peak {
			peak = c
		}
		sum += float64(l) * float64(c)
	}
	if pixels == 0 {
		return Stats{Pixels: 0}, nil
	}
	mean := sum / float64(pixels)

	var variance float64
	for l := min; l <= max; l++ {
		c := h.counts[l]
		if c == 0 {
			continue
		}
		d := float64(l) - mean
		variance += d * d * float64(c)
	}
	variance /= float64(pixels)
	stdDev := math.Sqrt(variance)

	levelMedian := weightedMedian(h.counts[:], min, max, pixels, func(l int) int { return l })

	levelCount := max - min + 1
	pixelMean := float64(pixels) / float64(levelCount)
	pixelMedian := medianOfCounts(h.counts[:], min, max)

	return Stats{
		Pixels: pixels,
		Levels: LevelStats{
			Mean:    mean,
			Median:  levelMedian,
			StdDev:  stdDev,
			Unique:  unique,
		},
		PixelsPerLevel: PixelStats{
			Mean:   pixelMean,
			Median: pixelMedian,
			Peak:   peak,
		},
	}, nil
}

// weightedMedian returns the median luminance level, weighting each level by
// its pixel count.
func weightedMedian(counts []int, min, max, total int, level func(int) int) float64 {
	if total == 0 {
		return 0
	}
	half := float64(total) / 2.0
	var cum int
	prevLevel := min
	for l := min; l <= max; l++ {
		c := counts[l]
		if c == 0 {
			continue
		}
		next := cum + c
		if float64(next) >= half {
			if float64(cum) == half && l > min {
				return (float64(prevLevel) + float64(l)) / 2.0
			}
			return float64(level(l))
		}
		cum = next
		prevLevel = l
	}
	return float64(max)
}

// medianOfCounts returns the median of the per-level pixel counts
// (not the median luminance — the median of the histogram bar heights).
func medianOfCounts(counts []int, min, max int) float64 {
	n := max - min + 1
	if n <= 0 {
		return 0
	}
	vals := make([]int, n)
	for i := 0; i < n; i++ {
		vals[i] = counts[min+i]
	}
	sort.Ints(vals)
	if n%2 == 1 {
		return float64(vals[n/2])
	}
	return float64(vals[n/2-1]+vals[n/2]) / 2.0
}

// DominantColor returns the bin within [min, max] whose tolerance-window sum
// of counts is largest. Ties favor the larger own-bin count, then the lowest
// index. Returns -1 when the range contains no pixels.
func DominantColor(h *Histogram, min, max int, tolerance int) int {
	min, max = clampRange(min, max)
	if tolerance < 1 {
		tolerance = 1
	}

	best := -1
	bestWindow := -1
	bestOwn := -1
	for c := min; c <= max; c++ {
		if h.counts[c] == 0 {
			continue
		}
		lo := c - tolerance
		if lo < min {
			lo = min
		}
		hi := c + tolerance
		if hi > max {
			hi = max
		}
		window := 0
		for l := lo; l <= hi; l++ {
			window += h.counts[l]
		}
		own := h.counts[c]
		switch {
		case window > bestWindow:
			best, bestWindow, bestOwn = c, window, own
		case window == bestWindow && own > bestOwn:
			best, bestWindow, bestOwn = c, window, own
		}
	}
	return best
}

// DominantColor is the receiver form of the package function, defaulting
// tolerance to 1.
func (h *Histogram) DominantColor(min, max int, tolerance ...int) int {
	tol := 1
	if len(tolerance) > 0 {
		tol = tolerance[0]
	}
	return DominantColor(h, min, max, tol)
}

// AutoThreshold returns the single Otsu threshold over [min, max], or
// (0, false) if no threshold can be computed (empty range, no pixels, or
// a single luminance level).
func (h *Histogram) AutoThreshold(min, max int) (int, bool) {
	t := h.MultilevelThresholding(1, min, max)
	if len(t) == 0 {
		return 0, false
	}
	return t[0], true
}

// MultilevelThresholding returns k' = min(k, max-min-2) thresholds in
// (min, max) maximizing the between-class variance of the luminance
// histogram (classical Otsu extended to multiple classes via the P/S/H
// lookup tables). Ties are broken by the lexicographically smallest tuple
// of thresholds. Returns an empty slice when k' < 1 or the range holds
// fewer than two distinct luminance levels (no pixels, or a single color).
func (h *Histogram) MultilevelThresholding(k, min, max int) []int {
	min, max = clampRange(min, max)
	kPrime := k
	if cap := max - min - 2; cap < kPrime {
		kPrime = cap
	}
	if kPrime < 1 {
		return nil
	}
	if h.rangeEmpty(min, max) {
		return nil
	}
	levels := 0
	for l := min; l <= max; l++ {
		if h.counts[l] > 0 {
			levels++
		}
	}
	if levels < 2 {
		return nil
	}

	h.ensureLUT()
	return h.lut.bestThresholds(kPrime, min, max)
}

func (h *Histogram) rangeEmpty(min, max int) bool {
	for l := min; l <= max; l++ {
		if h.counts[l] > 0 {
			return false
		}
	}
	return true
}

func clampRange(min, max int) (int, int) {
	if min < 0 {
		min = 0
	}
	if max > bins-1 {
		max = bins - 1
	}
	return min, max
}
