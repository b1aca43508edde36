package pixel

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
)

// BytesPerPixel is the number of channel bytes stored for each pixel (R, G, B, A).
const BytesPerPixel = 4

var (
	// ErrEmpty is returned when a buffer would have zero width or height.
	ErrEmpty = errors.New("pixel buffer has no pixels")

	// ErrLocked is returned by Lock while another view is still held.
	ErrLocked = errors.New("pixel buffer is already locked")
)

// Buffer is a width×height grid of NRGBA pixels.
type Buffer struct {
	img      *image.NRGBA
	diagonal float64

	locked   bool
	revision uint64
}

// New creates a zero-filled buffer of the given size.
func New(width, height int) (*Buffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmpty, width, height)
	}
	return wrap(image.NewNRGBA(image.Rect(0, 0, width, height))), nil
}

// FromImage copies img into a new buffer. The source bounds are translated so
// the buffer always starts at (0,0).
func FromImage(img image.Image) (*Buffer, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrEmpty)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrEmpty, b.Dx(), b.Dy())
	}
	return wrap(imaging.Clone(img)), nil
}

func wrap(img *image.NRGBA) *Buffer {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	return &Buffer{
		img:      img,
		diagonal: math.Sqrt(float64(w*w + h*h)),
	}
}

// Width returns the buffer width in pixels.
func (b *Buffer) Width() int { return b.img.Rect.Dx() }

// Height returns the buffer height in pixels.
func (b *Buffer) Height() int { return b.img.Rect.Dy() }

// PixelCount returns Width*Height.
func (b *Buffer) PixelCount() int { return b.Width() * b.Height() }

// Diagonal returns the euclidean distance from (0,0) to (Width,Height).
func (b *Buffer) Diagonal() float64 { return b.diagonal }

// Bounds returns the buffer rectangle, always anchored at (0,0).
func (b *Buffer) Bounds() image.Rectangle { return b.img.Rect }

// Contains reports whether p addresses a pixel inside the buffer.
func (b *Buffer) Contains(p image.Point) bool { return p.In(b.img.Rect) }

// Revision advances on every Set and every release of a writable view.
func (b *Buffer) Revision() uint64 { return b.revision }

// At returns the pixel at (x,y), or the zero color when out of bounds.
func (b *Buffer) At(x, y int) color.NRGBA {
	if !(image.Point{x, y}).In(b.img.Rect) {
		return color.NRGBA{}
	}
	return b.img.NRGBAAt(x, y)
}

// Set writes the pixel at (x,y). Out of bounds writes are ignored.
func (b *Buffer) Set(x, y int, c color.NRGBA) {
	if !(image.Point{x, y}).In(b.img.Rect) {
		return
	}
	b.img.SetNRGBA(x, y, c)
	b.revision++
}

// Clone returns a deep copy of the buffer. The copy is unlocked and starts
// with the same revision.
func (b *Buffer) Clone() *Buffer {
	pix := make([]uint8, len(b.img.Pix))
	copy(pix, b.img.Pix)
	return &Buffer{
		img: &image.NRGBA{
			Pix:    pix,
			Stride: b.img.Stride,
			Rect:   b.img.Rect,
		},
		diagonal: b.diagonal,
		revision: b.revision,
	}
}

// Image returns an independent snapshot of the buffer contents.
func (b *Buffer) Image() *image.NRGBA {
	return imaging.Clone(b.img)
}
