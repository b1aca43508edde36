package imaging

import (
	"fmt"
	"image"
	"math"

	"github.com/ironsheep/makepure-mcp/internal/colorkeep"
)

// RangeMeasurement relates two points to the range threshold scale.
type RangeMeasurement struct {
	DistancePixels float64 `json:"distance_pixels"`
	DeltaX         int     `json:"delta_x"`
	DeltaY         int     `json:"delta_y"`

	// RangeUnits is the smallest range at which a pick at From reaches To.
	RangeUnits int `json:"range_units"`

	// PercentOfDiagonal is RangeUnits as a percentage of the image diagonal.
	PercentOfDiagonal float64 `json:"percent_of_diagonal"`
}

// MeasureRange measures from one point to another inside a width×height image
// and converts the distance to range units.
func MeasureRange(width, height int, from, to image.Point) (*RangeMeasurement, error) {
	bounds := image.Rect(0, 0, width, height)
	if bounds.Empty() {
		return nil, fmt.Errorf("invalid image size %dx%d", width, height)
	}
	if !from.In(bounds) || !to.In(bounds) {
		return nil, fmt.Errorf("points (%d,%d) and (%d,%d) must lie inside %dx%d",
			from.X, from.Y, to.X, to.Y, width, height)
	}

	diagonal := math.Sqrt(float64(width*width + height*height))
	units := int(colorkeep.ScaledSpatialDistance(from, to, diagonal))

	return &RangeMeasurement{
		DistancePixels:    math.Round(colorkeep.SpatialDistance(from, to)*100) / 100,
		DeltaX:            to.X - from.X,
		DeltaY:            to.Y - from.Y,
		RangeUnits:        units,
		PercentOfDiagonal: math.Round(float64(units)/colorkeep.MaxRange*1000) / 10,
	}, nil
}
