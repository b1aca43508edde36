package colorkeep

import (
	"image"

	"github.com/bits-and-blooms/bitset"
)

// Pick is one reference sample. Its claims bitset has one bit per base pixel
// and is only ever written by the pick's own classification passes.
type Pick struct {
	point     image.Point
	color     RGB
	allowance int
	rng       int
	claims    *bitset.BitSet
}

func newPick(c RGB, pt image.Point, allowance, rng, pixels int) *Pick {
	return &Pick{
		point:     pt,
		color:     c,
		allowance: clampAllowance(allowance),
		rng:       clampRange(rng),
		claims:    bitset.New(uint(pixels)),
	}
}

// View returns a read-only copy of the pick's parameters.
func (p *Pick) View() PickView {
	return PickView{
		X:         p.point.X,
		Y:         p.point.Y,
		Color:     p.color,
		Allowance: p.allowance,
		Range:     p.rng,
	}
}

// PickView is the externally visible, persistable form of a pick. Replaying a
// list of views through AddPickWithThresholds reproduces the same claims.
type PickView struct {
	X         int `json:"x"`
	Y         int `json:"y"`
	Color     RGB `json:"color"`
	Allowance int `json:"allowance"`
	Range     int `json:"range"`
}

// Point returns the sample point.
func (v PickView) Point() image.Point { return image.Pt(v.X, v.Y) }

// unionClaims ORs the claims of every pick except skip into a fresh bitset.
func unionClaims(picks []*Pick, skip *Pick, pixels int) *bitset.BitSet {
	u := bitset.New(uint(pixels))
	for _, p := range picks {
		if p == skip {
			continue
		}
		u.InPlaceUnion(p.claims)
	}
	return u
}
