package colorkeep

import (
	"image"
	"image/color"
	"math"
)

const (
	// MaxAllowance is the largest color allowance; it admits every color.
	MaxAllowance = 255

	// MaxRange is the scaled spatial distance of the full image diagonal.
	MaxRange = 10000

	// DefaultRange is the range given to picks added without explicit thresholds.
	DefaultRange = MaxRange / 5
)

// RGB is an 8-bit reference color.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// RGBOf converts any color to RGB, dropping alpha.
func RGBOf(c color.Color) RGB {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGB{R: n.R, G: n.G, B: n.B}
}

// ColorDistance returns the Chebyshev distance between a and b: the largest
// single channel difference. One dominant channel is enough to reject a match.
func ColorDistance(a, b RGB) int {
	return max(absDiff(a.R, b.R), absDiff(a.G, b.G), absDiff(a.B, b.B))
}

func absDiff(a, b uint8) int {
	if a > b {
		return int(a - b)
	}
	return int(b - a)
}

// SpatialDistance returns the euclidean distance between p and q.
func SpatialDistance(p, q image.Point) float64 {
	dx := float64(p.X - q.X)
	dy := float64(p.Y - q.Y)
	return math.Sqrt(dx*dx + dy*dy)
}

// ScaledSpatialDistance expresses the distance between p and q in range
// units, where diagonal maps to MaxRange. The result is rounded and saturates
// at math.MaxInt16 instead of wrapping.
func ScaledSpatialDistance(p, q image.Point, diagonal float64) int16 {
	return scaleDistance(SpatialDistance(p, q), rangeScale(diagonal))
}

// rangeScale is the factor that turns a pixel distance into range units.
func rangeScale(diagonal float64) float64 {
	if diagonal <= 0 {
		return 0
	}
	return MaxRange / diagonal
}

func scaleDistance(d, scale float64) int16 {
	v := math.Round(d * scale)
	switch {
	case v >= math.MaxInt16:
		return math.MaxInt16
	case v <= 0:
		return 0
	}
	return int16(v)
}

// Grayscale returns the unweighted channel mean of c on all three channels.
// Alpha is carried through.
func Grayscale(c color.NRGBA) color.NRGBA {
	v := uint8((int(c.R) + int(c.G) + int(c.B)) / 3)
	return color.NRGBA{R: v, G: v, B: v, A: c.A}
}

// grayInto writes the gray value of src's RGB into dst's RGB.
func grayInto(dst, src []uint8) {
	v := uint8((int(src[0]) + int(src[1]) + int(src[2])) / 3)
	dst[0], dst[1], dst[2] = v, v, v
}

// keepInto copies src's RGB into dst's RGB.
func keepInto(dst, src []uint8) {
	dst[0], dst[1], dst[2] = src[0], src[1], src[2]
}

func clampAllowance(v int) int { return min(max(v, 0), MaxAllowance) }

func clampRange(v int) int { return min(max(v, 0), MaxRange) }
