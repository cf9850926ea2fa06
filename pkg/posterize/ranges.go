package posterize

import (
	"fmt"
	"math"
	"sort"

	"github.com/Fepozopo/vtrace/pkg/histogram"
)

// Range is one tonal layer of a posterized image. Threshold is the
// cumulative luminance cutoff it traces (every range shares the [0,255]
// axis, growing outward in draw order so each successive layer's silhouette
// is a superset of the one before it); Min and Max describe the luminance
// interval this range alone is responsible for when sampling a fill color;
// Color and Opacity are what gets drawn; Intensity is the pre-compositing
// value Opacity is derived from.
type Range struct {
	Threshold int
	Min, Max  int
	Color     string
	Intensity float64
	Opacity   float64
}

// extraStopMinRanges is the range count (10 or more) from which the most-saturated
// range otherwise ends up oversized: Otsu's variance objective concentrates
// boundaries around the histogram's main mass, leaving the tail thin.
const extraStopMinRanges = 10

// extraStopMinSpan is the minimum luminance span (and the cap on how far
// the injected stop is pulled from the tonal extreme) the extra-stop
// heuristic requires before it fires.
const extraStopMinSpan = 25

// guardBandFraction is the minimum fraction of a range's own span that its
// sampled fill level is kept away from the range's less-saturated boundary,
// so adjacent ranges don't resolve to visually identical colors.
const guardBandFraction = 0.10

// resolveRanges computes the ordered tonal ranges for h under opts, in the
// order they should be drawn: each range's Threshold cutoff traces a
// strictly larger silhouette than the range before it, so stacking them in
// this order with per-range opacity reproduces the posterized image.
func resolveRanges(h *histogram.Histogram, opts Options) []Range {
	threshold := effectiveThreshold(h, opts)
	stops := resolveStops(h, opts, threshold)
	ranges := buildRanges(stops, opts.BlackOnWhite)
	for i := range ranges {
		resolveFill(h, &ranges[i], opts, i, len(ranges))
	}
	ranges = applyExtraStop(h, ranges, opts)
	ranges = dropEmptyRanges(ranges)
	assignOpacity(ranges)
	return ranges
}

// effectiveThreshold mirrors trace.Tracer's AUTO/Fixed threshold
// resolution: an Otsu-derived value marks the last level of its darker
// class, one below the cutoff Bitmap.Threshold actually expects.
func effectiveThreshold(h *histogram.Histogram, opts Options) int {
	if opts.ThresholdMode == ThresholdFixed {
		return opts.Cutoff
	}
	if auto, ok := h.AutoThreshold(0, 255); ok {
		return auto
	}
	return 127
}

// usableRange is the span of the tonal axis on the foreground side of
// threshold: [0, threshold] under BlackOnWhite, [threshold, 255] otherwise.
func usableRange(threshold int, blackOnWhite bool) int {
	if blackOnWhite {
		return threshold
	}
	return 255 - threshold
}

// resolveStops returns the sorted ascending interior luminance boundaries
// (excluding 255, which buildRanges always appends as the outermost bound)
// dividing the image into tonal ranges.
func resolveStops(h *histogram.Histogram, opts Options, threshold int) []int {
	if opts.StepsMode == StepsExplicit {
		return explicitStops(opts.ExplicitStops, threshold, opts.BlackOnWhite)
	}
	n := resolveStepCount(opts, threshold)
	return distributionStops(h, opts, threshold, n)
}

// explicitStops deduplicates and sorts the caller-supplied stops, widening
// them to include the effective threshold if none of the supplied stops
// reach as far as it does on the foreground side.
func explicitStops(raw []int, threshold int, blackOnWhite bool) []int {
	seen := make(map[int]bool, len(raw))
	stops := make([]int, 0, len(raw)+1)
	for _, v := range raw {
		if v < 0 || v > 255 || seen[v] {
			continue
		}
		seen[v] = true
		stops = append(stops, v)
	}
	sort.Ints(stops)

	reaches := false
	if blackOnWhite {
		reaches = len(stops) > 0 && stops[len(stops)-1] >= threshold
	} else {
		reaches = len(stops) > 0 && stops[0] <= threshold
	}
	if !reaches && !seen[threshold] {
		stops = append(stops, threshold)
		sort.Ints(stops)
	}
	return stops
}

// resolveStepCount implements the Steps resolution table: StepsAuto picks 4
// when the usable span exceeds 200, else 3; StepsFixed clamps StepCount to
// [2, usable span].
func resolveStepCount(opts Options, threshold int) int {
	usable := usableRange(threshold, opts.BlackOnWhite)
	switch opts.StepsMode {
	case StepsFixed:
		n := opts.StepCount
		if n > usable {
			n = usable
		}
		if n < 2 {
			n = 2
		}
		return n
	default: // StepsAuto
		if usable > 200 {
			return 4
		}
		return 3
	}
}

// distributionStops places the n-1 interior boundaries for n ranges. AUTO
// distribution with an AUTO threshold spreads them over the whole [0, 255]
// axis; the other cases keep them within the usable half of the tonal axis.
func distributionStops(h *histogram.Histogram, opts Options, threshold, n int) []int {
	if n < 2 {
		return nil
	}
	k := n - 1

	var stops []int
	switch opts.Distribution {
	case DistributionEqual:
		stops = equalStops(threshold, opts.BlackOnWhite, k)
	default:
		if opts.ThresholdMode == ThresholdAuto {
			stops = h.MultilevelThresholding(k, 0, 255)
		} else if opts.BlackOnWhite {
			stops = append(h.MultilevelThresholding(k-1, 0, threshold), threshold)
		} else {
			stops = append(h.MultilevelThresholding(k-1, threshold, 255), threshold)
		}
		if len(stops) == 0 {
			stops = equalStops(threshold, opts.BlackOnWhite, k)
		}
	}

	sort.Ints(stops)
	return dedupInts(stops)
}

func equalStops(threshold int, blackOnWhite bool, k int) []int {
	lo, hi := 0, threshold
	if !blackOnWhite {
		lo, hi = threshold, 255
	}
	span := hi - lo
	stops := make([]int, 0, k)
	for i := 1; i <= k; i++ {
		v := lo + int(float64(span)*float64(i)/float64(k+1))
		stops = append(stops, clampInt(v, 0, 255))
	}
	return stops
}

func dedupInts(vs []int) []int {
	out := vs[:0:0]
	var prev int
	for i, v := range vs {
		if i == 0 || v != prev {
			out = append(out, v)
		}
		prev = v
	}
	return out
}

// buildRanges turns the sorted ascending interior stops (plus 255, always
// appended as the outermost bound) into the full Range list, ordered for
// drawing: BlackOnWhite's foreground mask (v < cutoff) grows monotonically
// with the cutoff, so ascending Threshold order already nests correctly;
// the opposite color mode's mask (v >= cutoff) shrinks as the cutoff grows,
// so that ordering is reversed to keep the draw sequence nested smallest
// silhouette first.
func buildRanges(stops []int, blackOnWhite bool) []Range {
	bounds := append(append([]int{}, stops...), 255)
	ranges := make([]Range, 0, len(bounds))
	prev := 0
	for _, b := range bounds {
		ranges = append(ranges, Range{Threshold: b, Min: prev, Max: b})
		prev = b + 1
	}
	if !blackOnWhite {
		for l, r := 0, len(ranges)-1; l < r; l, r = l+1, r-1 {
			ranges[l], ranges[r] = ranges[r], ranges[l]
		}
	}
	return ranges
}

// resolveFill picks r's fill color and pre-compositing intensity from the
// chosen FillStrategy, then pulls the sampled level away from the range's
// less-saturated boundary by at least guardBandFraction of its own span
// (skipped for the first range in draw order, which has no darker/lighter
// neighbor already claiming that tone).
func resolveFill(h *histogram.Histogram, r *Range, opts Options, index, total int) {
	stats, err := h.Stats(r.Min, r.Max)
	if err != nil || stats.Pixels == 0 {
		r.Intensity = 0
		r.Color = grayColor(midpoint(r.Min, r.Max))
		return
	}

	var level int
	switch opts.Fill {
	case FillSpread:
		factor := 0.0
		if total > 1 {
			factor = float64(index) / float64(total-1)
		}
		level = spreadLevel(*r, opts.BlackOnWhite, factor)
	case FillMean:
		level = int(stats.Levels.Mean + 0.5)
	case FillMedian:
		level = int(stats.Levels.Median + 0.5)
	default: // FillDominant
		tol := clampInt(r.Max-r.Min, 1, 5)
		level = h.DominantColor(r.Min, r.Max, tol)
		if level < 0 {
			level = midpoint(r.Min, r.Max)
		}
	}

	level = applyGuardBand(level, r.Min, r.Max, opts.BlackOnWhite, index == 0)
	level = clampInt(level, 0, 255)

	r.Color = grayColor(level)
	if opts.BlackOnWhite {
		r.Intensity = float64(255-level) / 255.0
	} else {
		r.Intensity = float64(level) / 255.0
	}
}

// spreadLevel ramps the fill level across the full tonal axis rather than
// clustering it at each range's own midpoint, scaled by whichever is
// larger: half the axis, or the range's own span relative to it.
func spreadLevel(r Range, blackOnWhite bool, factor float64) int {
	scale := math.Max(0.5, float64(r.Max-r.Min)/255.0)
	span := factor * scale * 255.0
	if blackOnWhite {
		return clampInt(int(255-span), r.Min, r.Max)
	}
	return clampInt(int(span), r.Min, r.Max)
}

func applyGuardBand(level, min, max int, blackOnWhite, isFirst bool) int {
	if isFirst || max <= min {
		return level
	}
	band := clampInt(int(math.Round(guardBandFraction*float64(max-min))), 1, max-min)
	if blackOnWhite {
		// the less-saturated boundary is Max (lighter, toward background)
		if level > max-band {
			level = max - band
		}
	} else {
		if level < min+band {
			level = min + band
		}
	}
	return level
}

// applyExtraStop injects one additional boundary when the most-saturated
// range — the one nearest the foreground extreme — has grown too coarse
// relative to the rest: splitting it at mean±stdDev of its own luminance
// distribution (minus for BlackOnWhite, plus otherwise), clamped to within
// extraStopMinSpan of the extreme so the new range stays meaningfully
// narrow.
func applyExtraStop(h *histogram.Histogram, ranges []Range, opts Options) []Range {
	if len(ranges) < extraStopMinRanges {
		return ranges
	}
	// buildRanges puts the range nearest the foreground extreme first in
	// both color modes.
	target := ranges[0]
	if target.Max-target.Min <= extraStopMinSpan || target.Intensity >= 1 {
		return ranges
	}

	stats, err := h.Stats(target.Min, target.Max)
	if err != nil || stats.Pixels == 0 {
		return ranges
	}

	var stop int
	if opts.BlackOnWhite {
		stop = clampInt(int(stats.Levels.Mean-stats.Levels.StdDev), target.Min, target.Min+extraStopMinSpan)
	} else {
		stop = clampInt(int(stats.Levels.Mean+stats.Levels.StdDev), target.Max-extraStopMinSpan, target.Max)
	}
	stop = clampInt(stop, 0, 255)

	interior := make([]int, 0, len(ranges)+1)
	for _, r := range ranges {
		if r.Threshold != 255 {
			interior = append(interior, r.Threshold)
		}
	}
	interior = append(interior, stop)
	sort.Ints(interior)
	interior = dedupInts(interior)

	rebuilt := buildRanges(interior, opts.BlackOnWhite)
	for i := range rebuilt {
		resolveFill(h, &rebuilt[i], opts, i, len(rebuilt))
	}
	return rebuilt
}

func dropEmptyRanges(ranges []Range) []Range {
	out := ranges[:0]
	for _, r := range ranges {
		if r.Intensity > 0 {
			out = append(out, r)
		}
	}
	if len(out) == 0 && len(ranges) > 0 {
		return ranges[len(ranges)-1:]
	}
	return out
}

// assignOpacity computes, for each range drawn in order from narrowest
// silhouette to broadest, the opacity that makes the cumulative rendered
// intensity match the range's own target intensity. actualPrev tracks the
// stack's accumulated intensity so far, starting from 0 (nothing drawn
// yet): opacity_k equals I_k outright whenever the stack is still empty or
// I_k is saturated, otherwise it's solved from how far the stack has
// already drifted toward I_k.
func assignOpacity(ranges []Range) {
	actualPrev := 0.0
	for i := range ranges {
		intensity := ranges[i].Intensity
		var opacity float64
		if actualPrev == 0 || intensity == 1 {
			opacity = intensity
		} else {
			opacity = (actualPrev - intensity) / (actualPrev - 1)
		}
		opacity = clampFloat(opacity, 0, 1)
		opacity = math.Round(opacity*1000) / 1000
		ranges[i].Opacity = opacity
		actualPrev = actualPrev + (1-actualPrev)*opacity
	}
}

func grayColor(level int) string {
	level = clampInt(level, 0, 255)
	return fmt.Sprintf("#%02x%02x%02x", level, level, level)
}

func midpoint(min, max int) int {
	return (min + max) / 2
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
