package pixel

import (
	"errors"
	"image"
	"image/color"
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	b, err := New(4, 3)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if b.Width() != 4 || b.Height() != 3 {
		t.Errorf("size: got %dx%d, want 4x3", b.Width(), b.Height())
	}
	if b.PixelCount() != 12 {
		t.Errorf("PixelCount: got %d, want 12", b.PixelCount())
	}
	if b.Diagonal() != 5 {
		t.Errorf("Diagonal: got %f, want 5", b.Diagonal())
	}
}

func TestNew_Empty(t *testing.T) {
	tests := []struct {
		name string
		w, h int
	}{
		{"zero width", 0, 10},
		{"zero height", 10, 0},
		{"negative", -1, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.w, tt.h)
			if !errors.Is(err, ErrEmpty) {
				t.Errorf("New(%d,%d): got %v, want ErrEmpty", tt.w, tt.h, err)
			}
		})
	}
}

func TestFromImage_TranslatesBounds(t *testing.T) {
	src := image.NewRGBA(image.Rect(10, 20, 13, 22))
	src.Set(10, 20, color.RGBA{255, 0, 0, 255})
	src.Set(12, 21, color.RGBA{0, 0, 255, 255})

	b, err := FromImage(src)
	if err != nil {
		t.Fatalf("FromImage failed: %v", err)
	}

	if b.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Errorf("Bounds: got %v, want (0,0)-(3,2)", b.Bounds())
	}
	if got := b.At(0, 0); got != (color.NRGBA{255, 0, 0, 255}) {
		t.Errorf("At(0,0): got %v, want red", got)
	}
	if got := b.At(2, 1); got != (color.NRGBA{0, 0, 255, 255}) {
		t.Errorf("At(2,1): got %v, want blue", got)
	}
}

func TestFromImage_Nil(t *testing.T) {
	if _, err := FromImage(nil); !errors.Is(err, ErrEmpty) {
		t.Errorf("FromImage(nil): got %v, want ErrEmpty", err)
	}
}

func TestAtSet_OutOfBounds(t *testing.T) {
	b, _ := New(2, 2)
	rev := b.Revision()

	b.Set(-1, 0, color.NRGBA{1, 2, 3, 4})
	b.Set(2, 0, color.NRGBA{1, 2, 3, 4})

	if b.Revision() != rev {
		t.Error("out of bounds Set should not count as a write")
	}
	if got := b.At(5, 5); got != (color.NRGBA{}) {
		t.Errorf("At out of bounds: got %v, want zero color", got)
	}
}

func TestClone_NoAliasing(t *testing.T) {
	b, _ := New(2, 2)
	b.Set(0, 0, color.NRGBA{10, 20, 30, 255})

	c := b.Clone()
	c.Set(0, 0, color.NRGBA{99, 99, 99, 255})

	if got := b.At(0, 0); got != (color.NRGBA{10, 20, 30, 255}) {
		t.Errorf("original modified through clone: got %v", got)
	}
	if c.Diagonal() != b.Diagonal() || c.PixelCount() != b.PixelCount() {
		t.Error("clone lost derived metadata")
	}
}

func TestImage_Snapshot(t *testing.T) {
	b, _ := New(2, 1)
	b.Set(1, 0, color.NRGBA{1, 2, 3, 255})

	snap := b.Image()
	b.Set(1, 0, color.NRGBA{4, 5, 6, 255})

	if got := snap.NRGBAAt(1, 0); got != (color.NRGBA{1, 2, 3, 255}) {
		t.Errorf("snapshot changed with buffer: got %v", got)
	}
}

func TestLock_Exclusive(t *testing.T) {
	b, _ := New(3, 3)

	v, err := b.Lock(ReadOnly)
	if err != nil {
		t.Fatalf("Lock failed: %v", err)
	}
	if len(v.Pix()) != 3*3*BytesPerPixel {
		t.Errorf("Pix length: got %d, want %d", len(v.Pix()), 3*3*BytesPerPixel)
	}

	if _, err := b.Lock(WriteOnly); !errors.Is(err, ErrLocked) {
		t.Errorf("second Lock: got %v, want ErrLocked", err)
	}

	v.Unlock()
	v.Unlock()

	v2, err := b.Lock(ReadWrite)
	if err != nil {
		t.Fatalf("Lock after Unlock failed: %v", err)
	}
	v2.Unlock()
}

func TestLock_ReleasedOnError(t *testing.T) {
	b, _ := New(2, 2)

	pass := func() error {
		v, err := b.Lock(ReadWrite)
		if err != nil {
			return err
		}
		defer v.Unlock()
		return errors.New("pass failed")
	}

	if err := pass(); err == nil {
		t.Fatal("expected pass error")
	}
	if _, err := b.Lock(ReadOnly); err != nil {
		t.Errorf("buffer still locked after failed pass: %v", err)
	}
}

func TestLock_Revision(t *testing.T) {
	b, _ := New(2, 2)
	start := b.Revision()

	v, _ := b.Lock(ReadOnly)
	v.Unlock()
	if b.Revision() != start {
		t.Errorf("read-only view advanced revision: %d -> %d", start, b.Revision())
	}

	v, _ = b.Lock(WriteOnly)
	v.Pix()[0] = 7
	v.Unlock()
	if b.Revision() != start+1 {
		t.Errorf("write view: revision got %d, want %d", b.Revision(), start+1)
	}
	if got := b.At(0, 0).R; got != 7 {
		t.Errorf("write through view not visible: R=%d", got)
	}
}

func TestDiagonal_Large(t *testing.T) {
	b, _ := New(3000, 4000)
	if math.Abs(b.Diagonal()-5000) > 1e-9 {
		t.Errorf("Diagonal: got %f, want 5000", b.Diagonal())
	}
}

func TestLockMode_String(t *testing.T) {
	if ReadWrite.String() != "read-write" {
		t.Errorf("ReadWrite.String(): got %s", ReadWrite.String())
	}
	if LockMode(9).String() != "LockMode(9)" {
		t.Errorf("unknown mode: got %s", LockMode(9).String())
	}
}
