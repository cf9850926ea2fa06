package imgsrc

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestFromImageDimensions(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	a := FromImage(img)
	if a.Width() != 3 || a.Height() != 2 {
		t.Errorf("Width/Height = %d/%d, want 3/2", a.Width(), a.Height())
	}
}

func TestRGBAAtOpaque(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 10, G: 20, B: 30, A: 255})
	a := FromImage(img)
	r, g, b, al := a.RGBAAt(0, 0)
	if r != 10 || g != 20 || b != 30 || al != 255 {
		t.Errorf("RGBAAt = %d,%d,%d,%d, want 10,20,30,255", r, g, b, al)
	}
}

func TestRGBAAtFullyTransparent(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 1, 1))
	img.Set(0, 0, color.RGBA{R: 255, G: 0, B: 0, A: 0})
	a := FromImage(img)
	_, _, _, al := a.RGBAAt(0, 0)
	if al != 0 {
		t.Errorf("alpha = %d, want 0", al)
	}
}

func TestDecodePNG(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("encode: %v", err)
	}
	a, format, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
	if a.Width() != 2 || a.Height() != 2 {
		t.Errorf("Width/Height = %d/%d, want 2/2", a.Width(), a.Height())
	}
}
