package colorkeep

import (
	"image"

	"github.com/bits-and-blooms/bitset"

	"github.com/ironsheep/makepure-mcp/internal/pixel"
)

// classificationCache holds per-pixel distances for the active pick and the
// union of every other pick's claims. It is only meaningful while the pick it
// was loaded for is active.
type classificationCache struct {
	colorDist   []uint8
	spatialDist []int16
	others      *bitset.BitSet
}

func newClassificationCache(pixels int) *classificationCache {
	return &classificationCache{
		colorDist:   make([]uint8, pixels),
		spatialDist: make([]int16, pixels),
		others:      bitset.New(uint(pixels)),
	}
}

// load computes the color and scaled spatial distance from p to every base
// pixel. This is the expensive pass that threshold edits reuse.
func (c *classificationCache) load(base *pixel.Buffer, p *Pick) error {
	v, err := base.Lock(pixel.ReadOnly)
	if err != nil {
		return err
	}
	defer v.Unlock()

	src := v.Pix()
	w, h := base.Width(), base.Height()
	scale := rangeScale(base.Diagonal())

	i := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			o := i * pixel.BytesPerPixel
			c.colorDist[i] = uint8(ColorDistance(p.color, RGB{src[o], src[o+1], src[o+2]}))
			c.spatialDist[i] = scaleDistance(SpatialDistance(image.Pt(x, y), p.point), scale)
			i++
		}
	}
	return nil
}

// rebuildOthers replaces the aggregate with the union of every pick's claims
// except active.
func (c *classificationCache) rebuildOthers(picks []*Pick, active *Pick) {
	c.others = unionClaims(picks, active, len(c.colorDist))
}

// qualifies reports whether pixel i passes the given thresholds.
func (c *classificationCache) qualifies(i, allowance, rng int) bool {
	return int(c.colorDist[i]) <= allowance && int(c.spatialDist[i]) <= rng
}
