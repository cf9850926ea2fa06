package bitmap

import "testing"

type fakeSource struct {
	w, h int
	pix  [][4]uint8 // r,g,b,a row-major
}

func (f *fakeSource) Width() int  { return f.w }
func (f *fakeSource) Height() int { return f.h }
func (f *fakeSource) RGBAAt(x, y int) (r, g, b, a uint8) {
	p := f.pix[y*f.w+x]
	return p[0], p[1], p[2], p[3]
}

func solid(w, h int, r, g, b, a uint8) *fakeSource {
	pix := make([][4]uint8, w*h)
	for i := range pix {
		pix[i] = [4]uint8{r, g, b, a}
	}
	return &fakeSource{w: w, h: h, pix: pix}
}

func TestAtOutOfRangeReturnsZero(t *testing.T) {
	b := New(3, 3)
	b.Set(0, 0, 9)
	cases := [][2]int{{-1, 0}, {0, -1}, {3, 0}, {0, 3}, {5, 5}}
	for _, c := range cases {
		if got := b.At(c[0], c[1]); got != 0 {
			t.Errorf("At(%d,%d) = %d, want 0", c[0], c[1], got)
		}
	}
	if got := b.At(0, 0); got != 9 {
		t.Errorf("At(0,0) = %d, want 9", got)
	}
}

func TestFromRGBABlack(t *testing.T) {
	src := solid(2, 2, 0, 0, 0, 255)
	bmp := FromRGBA(src)
	for _, v := range bmp.Data {
		if v != 0 {
			t.Fatalf("expected luminance 0 for opaque black, got %d", v)
		}
	}
}

func TestFromRGBAWhite(t *testing.T) {
	src := solid(2, 2, 255, 255, 255, 255)
	bmp := FromRGBA(src)
	for _, v := range bmp.Data {
		if v != 255 {
			t.Fatalf("expected luminance 255 for opaque white, got %d", v)
		}
	}
}

func TestFromRGBATransparentBecomesWhite(t *testing.T) {
	src := solid(1, 1, 0, 0, 0, 0)
	bmp := FromRGBA(src)
	if bmp.Data[0] != 255 {
		t.Fatalf("fully transparent pixel should composite to white, got %d", bmp.Data[0])
	}
}

func TestThresholdBlackOnWhite(t *testing.T) {
	bmp := New(2, 1)
	bmp.Set(0, 0, 50)  // dark
	bmp.Set(1, 0, 200) // light
	bin := bmp.Threshold(128, true)
	if bin.At(0, 0) != 1 {
		t.Errorf("dark pixel should be foreground under blackOnWhite")
	}
	if bin.At(1, 0) != 0 {
		t.Errorf("light pixel should be background under blackOnWhite")
	}
}

func TestThresholdWhiteOnBlack(t *testing.T) {
	bmp := New(2, 1)
	bmp.Set(0, 0, 50)
	bmp.Set(1, 0, 200)
	bin := bmp.Threshold(128, false)
	if bin.At(0, 0) != 0 {
		t.Errorf("dark pixel should be background under whiteOnBlack")
	}
	if bin.At(1, 0) != 1 {
		t.Errorf("light pixel should be foreground under whiteOnBlack")
	}
}

func TestCopyPreservesDimensions(t *testing.T) {
	b := New(4, 5)
	c := b.Copy(func(v byte) byte { return v + 1 })
	if c.Width != 4 || c.Height != 5 {
		t.Fatalf("Copy changed dimensions: %dx%d", c.Width, c.Height)
	}
}
