package pixel

import "fmt"

// LockMode selects how a View may be used.
type LockMode int

const (
	ReadOnly LockMode = iota
	WriteOnly
	ReadWrite
)

func (m LockMode) String() string {
	switch m {
	case ReadOnly:
		return "read-only"
	case WriteOnly:
		return "write-only"
	case ReadWrite:
		return "read-write"
	default:
		return fmt.Sprintf("LockMode(%d)", int(m))
	}
}

func (m LockMode) writable() bool { return m == WriteOnly || m == ReadWrite }

// View grants raw sequential access to a buffer's channel data until Unlock.
type View struct {
	buf  *Buffer
	mode LockMode
	pix  []uint8
}

// Lock acquires the buffer's only view.
func (b *Buffer) Lock(mode LockMode) (*View, error) {
	if b.locked {
		return nil, ErrLocked
	}
	n := b.PixelCount() * BytesPerPixel
	if len(b.img.Pix) < n || b.img.Stride != b.Width()*BytesPerPixel {
		return nil, fmt.Errorf("pixel data is not tightly packed: %d bytes, stride %d", len(b.img.Pix), b.img.Stride)
	}
	b.locked = true
	return &View{buf: b, mode: mode, pix: b.img.Pix[:n:n]}, nil
}

// Pix returns the locked channel data: 4 bytes per pixel in R, G, B, A order,
// row-major. The slice must not be retained after Unlock.
func (v *View) Pix() []uint8 { return v.pix }

// Mode returns the mode the view was acquired with.
func (v *View) Mode() LockMode { return v.mode }

// Unlock releases the view. Calling it more than once is harmless.
func (v *View) Unlock() {
	if v.pix == nil {
		return
	}
	v.pix = nil
	v.buf.locked = false
	if v.mode.writable() {
		v.buf.revision++
	}
}
