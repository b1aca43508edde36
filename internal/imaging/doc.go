// Package imaging is the file and pixel-format side of the color keeping
// server: it decodes source images, scales them to a working preview, samples
// reference colors, renders pick overlays, encodes results for transport and
// writes them back to disk.
//
// The conversion engine itself lives in package colorkeep and never touches
// files or encoders; this package converts between image.Image values and
// what the engine consumes and produces.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner, X
// increasing rightward and Y increasing downward. Points handed to the engine
// are in working-image coordinates, after preview scaling. Preview reports the
// scale factor so callers can convert source-image points themselves.
//
// # Formats
//
// Decoding supports PNG, JPEG, GIF and BMP. Saving supports PNG, JPEG and BMP,
// chosen by file extension.
//
// # Thread Safety
//
// ImageCache is safe for concurrent use. The remaining functions are stateless.
package imaging
