// Package imgsrc adapts decoded images to the bitmap.Source interface the
// tracing pipeline consumes, and registers the extended format decoders
// needed to accept more than the three formats image/... covers natively.
package imgsrc

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// adapter wraps a decoded image.Image to satisfy bitmap.Source.
type adapter struct {
	img image.Image
	b   image.Rectangle
}

// FromImage wraps an already-decoded image.Image.
func FromImage(img image.Image) *adapter {
	return &adapter{img: img, b: img.Bounds()}
}

// Decode reads and decodes an image from r, recognizing any format whose
// decoder has been registered via image.RegisterFormat — PNG, JPEG and GIF
// from the standard library, plus BMP, TIFF and WebP via golang.org/x/image.
func Decode(r io.Reader) (*adapter, string, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, "", fmt.Errorf("imgsrc: decode: %w", err)
	}
	return FromImage(img), format, nil
}

func (a *adapter) Width() int  { return a.b.Dx() }
func (a *adapter) Height() int { return a.b.Dy() }

func (a *adapter) RGBAAt(x, y int) (r, g, b, al uint8) {
	c := a.img.At(a.b.Min.X+x, a.b.Min.Y+y)
	rr, gg, bb, aa := c.RGBA()
	if aa == 0 {
		return 0, 0, 0, 0
	}
	// image.Color.RGBA returns alpha-premultiplied 16-bit channels;
	// un-premultiply and downscale to 8 bits.
	return uint8(rr * 0xff / aa), uint8(gg * 0xff / aa), uint8(bb * 0xff / aa), uint8(aa >> 8)
}
