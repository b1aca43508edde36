package imaging

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
)

// DefaultJPEGQuality is used when saving .jpg/.jpeg files.
const DefaultJPEGQuality = 95

// SaveResult reports what SaveImage wrote.
type SaveResult struct {
	Path   string `json:"path"`
	Format string `json:"format"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// SaveImage writes img to path in the format named by its extension: .png,
// .jpg/.jpeg or .bmp.
func SaveImage(path string, img image.Image) (*SaveResult, error) {
	var enc imgio.Encoder
	format := formatFromPath(path)
	switch format {
	case "png":
		enc = imgio.PNGEncoder()
	case "jpeg":
		enc = imgio.JPEGEncoder(DefaultJPEGQuality)
	case "bmp":
		enc = imgio.BMPEncoder()
	default:
		return nil, fmt.Errorf("unsupported output format %q", strings.TrimPrefix(filepath.Ext(path), "."))
	}

	if err := imgio.Save(path, img, enc); err != nil {
		return nil, fmt.Errorf("failed to save image: %w", err)
	}

	return &SaveResult{
		Path:   path,
		Format: format,
		Width:  img.Bounds().Dx(),
		Height: img.Bounds().Dy(),
	}, nil
}
