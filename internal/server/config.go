package server

import (
	"log"
	"os"
	"strconv"

	"github.com/ironsheep/makepure-mcp/internal/imaging"
)

// Version is reported in the initialize handshake. The binary overrides it
// with the ldflags build version.
var Version = "dev"

// Environment variables read by ConfigFromEnv.
const (
	EnvPreviewMax = "MAKEPURE_PREVIEW_MAX"
	EnvLogLevel   = "MAKEPURE_LOG_LEVEL"
)

// Config holds server settings.
type Config struct {
	// PreviewMax is the longest side, in pixels, of the working copy made by
	// image_load. 0 works on the full resolution image.
	PreviewMax int

	// LogDebug enables per-request logging to stderr.
	LogDebug bool
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{PreviewMax: imaging.DefaultPreviewMax}
}

// ConfigFromEnv builds a Config from the process environment.
func ConfigFromEnv() Config {
	return configFrom(os.Getenv)
}

func configFrom(getenv func(string) string) Config {
	cfg := DefaultConfig()

	if v := getenv(EnvPreviewMax); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("Ignoring %s=%q: %v", EnvPreviewMax, v, err)
		} else {
			cfg.PreviewMax = max(n, 0)
		}
	}

	cfg.LogDebug = getenv(EnvLogLevel) == "debug"
	return cfg
}
