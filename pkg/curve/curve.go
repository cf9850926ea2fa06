package curve

// SegmentKind distinguishes a sharp corner (two line segments meeting at a
// vertex) from a smooth cubic Bezier segment.
type SegmentKind int

const (
	Corner SegmentKind = iota
	Smooth
)

// Segment is one piece of a Curve, expressed as a cubic Bezier regardless
// of kind: a Corner segment's ControlStart is its Vertex and its
// ControlEnd is its EndPoint, and it renders as two straight lines
// through the vertex, while a Smooth
// segment's control points are pulled off the chord to approximate the
// local curvature.
type Segment struct {
	Kind                 SegmentKind
	Vertex               Point // the corner/anchor this segment smooths through
	ControlStart, ControlEnd Point
	EndPoint             Point
	Alpha, Alpha0, Beta  float64
}

// Curve is the smoothed, optionally Bezier-optimized outline of a single
// traced contour, ready for SVG path serialization.
type Curve struct {
	Sign     byte
	Segments []Segment
}
