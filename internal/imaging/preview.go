package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
)

// DefaultPreviewMax is the longest side of the working preview.
const DefaultPreviewMax = 500

// PreviewResult is a source image scaled for use as a session base.
type PreviewResult struct {
	Image *image.NRGBA

	// Scale is source size divided by preview size. Multiply a preview
	// coordinate by Scale to get the source coordinate.
	Scale float64
}

// Preview scales img so that its longer side equals maxSide, up or down, and
// returns the result with the scale factor. A maxSide of 0 or less returns an
// unscaled copy.
func Preview(img image.Image, maxSide int) (*PreviewResult, error) {
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("cannot preview empty image %dx%d", b.Dx(), b.Dy())
	}
	if maxSide <= 0 {
		return &PreviewResult{Image: imaging.Clone(img), Scale: 1}, nil
	}

	w, h := maxSide, max(1, b.Dy()*maxSide/b.Dx())
	if b.Dy() > b.Dx() {
		w, h = max(1, b.Dx()*maxSide/b.Dy()), maxSide
	}
	if w == b.Dx() && h == b.Dy() {
		return &PreviewResult{Image: imaging.Clone(img), Scale: 1}, nil
	}

	return &PreviewResult{
		Image: imaging.Resize(img, w, h, imaging.Lanczos),
		Scale: math.Max(float64(b.Dx())/float64(w), float64(b.Dy())/float64(h)),
	}, nil
}

// EncodedImage is a PNG ready to send over the wire.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG encodes img as base64 PNG, optionally resized by scale first.
// A scale of 1 or less than or equal to 0 leaves the size unchanged.
func EncodePNG(img image.Image, scale float64) (*EncodedImage, error) {
	if scale > 0 && scale != 1.0 {
		w := max(1, int(float64(img.Bounds().Dx())*scale))
		h := max(1, int(float64(img.Bounds().Dy())*scale))
		img = imaging.Resize(img, w, h, imaging.NearestNeighbor)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &EncodedImage{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}
