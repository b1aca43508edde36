package colorkeep

import (
	"errors"
	"fmt"
	"image"
	"slices"

	"github.com/bits-and-blooms/bitset"

	"github.com/ironsheep/makepure-mcp/internal/pixel"
)

var (
	// ErrNilBuffer is returned when a session is created without a base buffer.
	ErrNilBuffer = errors.New("base buffer is nil")

	// ErrInvalidIndex is returned for a pick index outside [0, PickCount).
	ErrInvalidIndex = errors.New("invalid pick index")

	// ErrNoActivePick is returned by threshold edits when no pick is active.
	ErrNoActivePick = errors.New("no active pick")

	// ErrPointOutOfBounds is returned when a sample point lies outside the base buffer.
	ErrPointOutOfBounds = errors.New("sample point outside image bounds")
)

// Session keeps a display buffer consistent with an ordered list of picks
// classified against a base buffer.
type Session struct {
	base    *pixel.Buffer
	display *pixel.Buffer
	picks   []*Pick
	active  *Pick
	cache   *classificationCache
}

// NewSession copies base and starts with no picks and a fully gray display.
func NewSession(base *pixel.Buffer) (*Session, error) {
	if base == nil {
		return nil, ErrNilBuffer
	}
	s := &Session{
		base:    base.Clone(),
		display: base.Clone(),
		cache:   newClassificationCache(base.PixelCount()),
	}
	if err := BulkClassify(s.base, s.display, nil, BulkFull); err != nil {
		return nil, fmt.Errorf("failed to initialize display: %w", err)
	}
	return s, nil
}

// Width returns the image width.
func (s *Session) Width() int { return s.base.Width() }

// Height returns the image height.
func (s *Session) Height() int { return s.base.Height() }

// PickCount returns the number of picks.
func (s *Session) PickCount() int { return len(s.picks) }

// ActiveIndex returns the index of the active pick, or -1.
func (s *Session) ActiveIndex() int {
	if s.active == nil {
		return -1
	}
	return slices.Index(s.picks, s.active)
}

// Pick returns a read-only view of the pick at index.
func (s *Session) Pick(index int) (PickView, error) {
	if index < 0 || index >= len(s.picks) {
		return PickView{}, fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	return s.picks[index].View(), nil
}

// Picks returns views of every pick in order.
func (s *Session) Picks() []PickView {
	views := make([]PickView, len(s.picks))
	for i, p := range s.picks {
		views[i] = p.View()
	}
	return views
}

// Claims returns a copy of the claim bitset of the pick at index.
func (s *Session) Claims(index int) (*bitset.BitSet, error) {
	if index < 0 || index >= len(s.picks) {
		return nil, fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	return s.picks[index].claims.Clone(), nil
}

// Display returns a snapshot of the display buffer.
func (s *Session) Display() *image.NRGBA { return s.display.Image() }

// Base returns a snapshot of the base buffer.
func (s *Session) Base() *image.NRGBA { return s.base.Image() }

// BaseColor returns the base color at pt.
func (s *Session) BaseColor(pt image.Point) (RGB, error) {
	if !s.base.Contains(pt) {
		return RGB{}, fmt.Errorf("%w: (%d,%d)", ErrPointOutOfBounds, pt.X, pt.Y)
	}
	return RGBOf(s.base.At(pt.X, pt.Y)), nil
}

// DisplayRevision advances whenever the display buffer is written.
func (s *Session) DisplayRevision() uint64 { return s.display.Revision() }

// AddPick adds a pick with allowance 0 and DefaultRange.
func (s *Session) AddPick(c RGB, pt image.Point) error {
	return s.AddPickWithThresholds(c, pt, 0, DefaultRange)
}

// AddPickWithThresholds classifies every base pixel against a new pick and
// colors the pixels it claims. Thresholds are clamped.
func (s *Session) AddPickWithThresholds(c RGB, pt image.Point, allowance, rng int) error {
	if !s.base.Contains(pt) {
		return fmt.Errorf("%w: (%d,%d)", ErrPointOutOfBounds, pt.X, pt.Y)
	}
	p := newPick(c, pt, allowance, rng, s.base.PixelCount())

	bv, err := s.base.Lock(pixel.ReadOnly)
	if err != nil {
		return err
	}
	defer bv.Unlock()
	dv, err := s.display.Lock(pixel.WriteOnly)
	if err != nil {
		return err
	}
	defer dv.Unlock()

	src, dst := bv.Pix(), dv.Pix()
	w, h := s.base.Width(), s.base.Height()
	scale := rangeScale(s.base.Diagonal())

	i := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := i * pixel.BytesPerPixel
			if ColorDistance(p.color, RGB{src[o], src[o+1], src[o+2]}) <= p.allowance &&
				int(scaleDistance(SpatialDistance(image.Pt(x, y), pt), scale)) <= p.rng {
				p.claims.Set(uint(i))
				keepInto(dst[o:o+3], src[o:o+3])
			}
			i++
		}
	}

	s.picks = append(s.picks, p)
	if s.active != nil {
		s.cache.others.InPlaceUnion(p.claims)
	}

	Logger().Debug("pick added",
		"index", len(s.picks)-1,
		"pixels", s.base.PixelCount(),
		"claimed", p.claims.Count())
	return nil
}

// SetActive makes the pick at index the active pick and precomputes its
// per-pixel distances and the union of every other pick's claims. Call it
// once before a series of threshold edits.
func (s *Session) SetActive(index int) error {
	if index < 0 || index >= len(s.picks) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	p := s.picks[index]
	if err := s.cache.load(s.base, p); err != nil {
		return fmt.Errorf("failed to load distances: %w", err)
	}
	s.cache.rebuildOthers(s.picks, p)
	s.active = p

	Logger().Debug("pick activated",
		"index", index,
		"pixels", s.base.PixelCount(),
		"others", s.cache.others.Count())
	return nil
}

// AdjustActive shifts the active pick's thresholds by the given deltas.
func (s *Session) AdjustActive(dAllowance, dRange int) error {
	if s.active == nil {
		return ErrNoActivePick
	}
	return s.SetActiveThresholds(s.active.allowance+dAllowance, s.active.rng+dRange)
}

// SetActiveThresholds reclassifies the active pick from the cached distances.
// Values are clamped; when both equal the current thresholds nothing is
// written.
func (s *Session) SetActiveThresholds(allowance, rng int) error {
	p := s.active
	if p == nil {
		return ErrNoActivePick
	}
	allowance, rng = clampAllowance(allowance), clampRange(rng)
	if allowance == p.allowance && rng == p.rng {
		return nil
	}

	bv, err := s.base.Lock(pixel.ReadOnly)
	if err != nil {
		return err
	}
	defer bv.Unlock()
	dv, err := s.display.Lock(pixel.WriteOnly)
	if err != nil {
		return err
	}
	defer dv.Unlock()

	src, dst := bv.Pix(), dv.Pix()
	others := s.cache.others
	n := s.base.PixelCount()
	for i := 0; i < n; i++ {
		u := uint(i)
		qualifies := s.cache.qualifies(i, allowance, rng)
		if qualifies != p.claims.Test(u) && !others.Test(u) {
			o := i * pixel.BytesPerPixel
			if qualifies {
				keepInto(dst[o:o+3], src[o:o+3])
			} else {
				grayInto(dst[o:o+3], src[o:o+3])
			}
		}
		p.claims.SetTo(u, qualifies)
	}
	p.allowance, p.rng = allowance, rng

	Logger().Debug("thresholds set",
		"allowance", allowance,
		"range", rng,
		"pixels", n,
		"claimed", p.claims.Count())
	return nil
}

// RemovePick deletes the pick at index and grays every pixel no remaining
// pick claims. The active designation is cleared.
func (s *Session) RemovePick(index int) error {
	if index < 0 || index >= len(s.picks) {
		return fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	bv, err := s.base.Lock(pixel.ReadOnly)
	if err != nil {
		return err
	}
	defer bv.Unlock()
	dv, err := s.display.Lock(pixel.WriteOnly)
	if err != nil {
		return err
	}
	defer dv.Unlock()

	removed := s.picks[index]
	s.picks = slices.Delete(s.picks, index, index+1)
	s.active = nil

	remaining := unionClaims(s.picks, nil, s.base.PixelCount())

	src, dst := bv.Pix(), dv.Pix()
	grayed := 0
	for i, ok := removed.claims.NextSet(0); ok; i, ok = removed.claims.NextSet(i + 1) {
		if remaining.Test(i) {
			continue
		}
		o := int(i) * pixel.BytesPerPixel
		grayInto(dst[o:o+3], src[o:o+3])
		grayed++
	}

	Logger().Debug("pick removed", "index", index, "grayed", grayed, "remaining", len(s.picks))
	return nil
}

// ClearPicks removes every pick and resets the display to full grayscale.
func (s *Session) ClearPicks() error {
	s.picks = nil
	s.active = nil
	s.cache.others.ClearAll()
	if err := BulkClassify(s.base, s.display, nil, BulkFull); err != nil {
		return fmt.Errorf("failed to reset display: %w", err)
	}
	Logger().Debug("picks cleared", "pixels", s.base.PixelCount())
	return nil
}

// Restore replaces the pick list with views, in order. Every point is
// validated before the current picks are discarded.
func (s *Session) Restore(views []PickView) error {
	for i, v := range views {
		if !s.base.Contains(v.Point()) {
			return fmt.Errorf("pick %d: %w: (%d,%d)", i, ErrPointOutOfBounds, v.X, v.Y)
		}
	}
	if err := s.ClearPicks(); err != nil {
		return err
	}
	for i, v := range views {
		if err := s.AddPickWithThresholds(v.Color, v.Point(), v.Allowance, v.Range); err != nil {
			return fmt.Errorf("failed to restore pick %d: %w", i, err)
		}
	}
	return nil
}
