package imaging

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"github.com/disintegration/imaging"

	"github.com/ironsheep/makepure-mcp/internal/colorkeep"
)

const (
	// markerHalfWidth bounds the crosshair drawn around each sample point.
	markerHalfWidth = 20
	// markerCenterWidth is the half size of the filled center square.
	markerCenterWidth = 4
)

var (
	overlayDark  = color.NRGBA{0, 0, 0, 255}
	overlayLight = color.NRGBA{255, 255, 255, 255}
	activeLabel  = color.NRGBA{200, 0, 0, 255}
)

// Overlay returns a copy of img with a marker for every pick:
//
//   - a black and white circle whose radius is the pick's range in pixels
//   - a crosshair in the pick color; the vertical bar grows with allowance
//     and the horizontal bar with range
//   - the pick index, on a red tag for the active pick
//
// active is the index of the active pick, or -1.
func Overlay(img image.Image, picks []colorkeep.PickView, active int) *image.NRGBA {
	dst := imaging.Clone(img)
	b := dst.Bounds()
	diagonal := math.Sqrt(float64(b.Dx()*b.Dx() + b.Dy()*b.Dy()))

	for i, p := range picks {
		pc := color.NRGBA{p.Color.R, p.Color.G, p.Color.B, 255}

		radius := int(math.Round(diagonal * float64(p.Range) / colorkeep.MaxRange))
		drawCircle(dst, p.X, p.Y, radius, overlayDark)
		if radius > 1 {
			drawCircle(dst, p.X, p.Y, radius-1, overlayLight)
		}

		span := markerHalfWidth - markerCenterWidth
		lenV := span*p.Allowance/colorkeep.MaxAllowance + markerCenterWidth
		lenH := span*p.Range/colorkeep.MaxRange + markerCenterWidth
		fillRect(dst, image.Rect(p.X-1, p.Y-lenV, p.X+1, p.Y+lenV+1), pc)
		fillRect(dst, image.Rect(p.X-lenH, p.Y-1, p.X+lenH+1, p.Y+1), pc)

		c := markerCenterWidth / 2
		fillRect(dst, image.Rect(p.X-c-1, p.Y-c-1, p.X+c+2, p.Y+c+2), overlayDark)
		fillRect(dst, image.Rect(p.X-c, p.Y-c, p.X+c+1, p.Y+c+1), pc)

		bg := overlayDark
		if i == active {
			bg = activeLabel
		}
		drawLabel(dst, p.X+markerCenterWidth+2, p.Y+markerCenterWidth+2, strconv.Itoa(i), overlayLight, bg)
	}
	return dst
}

// fillRect paints r clipped to img.
func fillRect(img *image.NRGBA, r image.Rectangle, c color.NRGBA) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
}

// drawCircle plots a one pixel circle outline, clipped to img.
func drawCircle(img *image.NRGBA, cx, cy, r int, c color.NRGBA) {
	if r <= 0 {
		return
	}
	b := img.Bounds()
	steps := int(2*math.Pi*float64(r)) + 8
	for s := 0; s < steps; s++ {
		a := 2 * math.Pi * float64(s) / float64(steps)
		p := image.Pt(cx+int(math.Round(float64(r)*math.Cos(a))), cy+int(math.Round(float64(r)*math.Sin(a))))
		if p.In(b) {
			img.SetNRGBA(p.X, p.Y, c)
		}
	}
}

// drawLabel draws digits in a 3x5 pixel font on a background box.
func drawLabel(img *image.NRGBA, x, y int, text string, fg, bg color.NRGBA) {
	glyphs := map[rune][]string{
		'0': {"111", "101", "101", "101", "111"},
		'1': {"010", "110", "010", "010", "111"},
		'2': {"111", "001", "111", "100", "111"},
		'3': {"111", "001", "111", "001", "111"},
		'4': {"101", "101", "111", "001", "001"},
		'5': {"111", "100", "111", "001", "111"},
		'6': {"111", "100", "111", "101", "111"},
		'7': {"111", "001", "001", "001", "001"},
		'8': {"111", "101", "111", "101", "111"},
		'9': {"111", "101", "111", "001", "111"},
	}

	const charWidth = 4
	fillRect(img, image.Rect(x-1, y-1, x+len(text)*charWidth, y+6), bg)

	b := img.Bounds()
	cx := x
	for _, ch := range text {
		for row, line := range glyphs[ch] {
			for col, bit := range line {
				if bit != '1' {
					continue
				}
				if p := image.Pt(cx+col, y+row); p.In(b) {
					img.SetNRGBA(p.X, p.Y, fg)
				}
			}
		}
		cx += charWidth
	}
}
