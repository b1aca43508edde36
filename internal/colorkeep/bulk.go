package colorkeep

import (
	"errors"
	"fmt"

	"github.com/ironsheep/makepure-mcp/internal/pixel"
)

// ErrSizeMismatch is returned when base and display dimensions differ.
var ErrSizeMismatch = errors.New("base and display sizes differ")

// BulkMode restricts which display pixels a bulk pass revisits.
type BulkMode int

const (
	// BulkFull reclassifies every pixel.
	BulkFull BulkMode = iota
	// BulkAdd only reclassifies pixels that are currently gray.
	BulkAdd
	// BulkRevert only reclassifies pixels that are currently colored.
	BulkRevert
)

func (m BulkMode) String() string {
	switch m {
	case BulkFull:
		return "full"
	case BulkAdd:
		return "add"
	case BulkRevert:
		return "revert"
	default:
		return fmt.Sprintf("BulkMode(%d)", int(m))
	}
}

// ParseBulkMode maps "full", "add" and "revert" to a BulkMode.
func ParseBulkMode(s string) (BulkMode, error) {
	switch s {
	case "", "full":
		return BulkFull, nil
	case "add":
		return BulkAdd, nil
	case "revert":
		return BulkRevert, nil
	}
	return BulkFull, fmt.Errorf("unknown bulk mode: %s", s)
}

// Reference is a color and allowance used by the bulk pass. Spatial range is
// not considered.
type Reference struct {
	Color     RGB
	Allowance int
}

// BulkClassify rebuilds display from base without caches: a pixel keeps its
// base color when it is within the allowance of at least one reference and is
// grayed otherwise. It costs one color comparison per pixel per reference, so
// it is meant for initial renders and full rebuilds, not threshold dragging.
//
// A display pixel counts as gray when its three channels are equal, which
// includes base pixels that were already neutral.
func BulkClassify(base, display *pixel.Buffer, refs []Reference, mode BulkMode) error {
	if base.Bounds() != display.Bounds() {
		return fmt.Errorf("%w: %v vs %v", ErrSizeMismatch, base.Bounds().Size(), display.Bounds().Size())
	}

	bv, err := base.Lock(pixel.ReadOnly)
	if err != nil {
		return err
	}
	defer bv.Unlock()
	dv, err := display.Lock(pixel.ReadWrite)
	if err != nil {
		return err
	}
	defer dv.Unlock()

	src, dst := bv.Pix(), dv.Pix()
	kept := 0
	for o := 0; o < len(src); o += pixel.BytesPerPixel {
		d := dst[o : o+4]
		gray := d[0] == d[1] && d[1] == d[2]
		if (mode == BulkAdd && !gray) || (mode == BulkRevert && gray) {
			continue
		}

		s := src[o : o+4]
		d[3] = s[3]
		c := RGB{s[0], s[1], s[2]}
		match := false
		for _, r := range refs {
			if ColorDistance(r.Color, c) <= clampAllowance(r.Allowance) {
				match = true
				break
			}
		}
		if match {
			keepInto(d, s)
			kept++
		} else {
			grayInto(d, s)
		}
	}

	Logger().Debug("bulk pass",
		"mode", mode.String(),
		"references", len(refs),
		"pixels", base.PixelCount(),
		"kept", kept)
	return nil
}
