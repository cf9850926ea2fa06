package curve

import (
	"testing"
)

func TestCalcLonTerminatesAndStaysInRange(t *testing.T) {
	sq := squarePath('+')
	lon := calcLon(sq.Points)
	if len(lon) != len(sq.Points) {
		t.Fatalf("lon length = %d, want %d", len(lon), len(sq.Points))
	}
	for i, v := range lon {
		if v < 0 || v >= len(sq.Points) {
			t.Errorf("lon[%d] = %d out of range [0,%d)", i, v, len(sq.Points))
		}
	}
}

func TestBestPolygonClosesTheLoop(t *testing.T) {
	sq := squarePath('+')
	lon := calcLon(sq.Points)
	poly := bestPolygon(sq.Points, lon)
	if len(poly) == 0 {
		t.Fatal("expected a non-empty polygon")
	}
	for _, idx := range poly {
		if idx < 0 || idx >= len(sq.Points) {
			t.Errorf("polygon index %d out of range", idx)
		}
	}
}

func TestCyclicHelper(t *testing.T) {
	cases := []struct {
		a, b, c int
		want    bool
	}{
		{0, 2, 5, true},
		{0, 6, 5, false},
		{5, 1, 2, true}, // wraps
		{5, 6, 2, false},
	}
	for _, c := range cases {
		if got := cyclic(c.a, c.b, c.c); got != c.want {
			t.Errorf("cyclic(%d,%d,%d) = %v, want %v", c.a, c.b, c.c, got, c.want)
		}
	}
}
