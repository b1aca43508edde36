// Package pixel provides the flat RGBA pixel grid the conversion engine works on.
//
// A Buffer stores non-premultiplied 8-bit RGBA samples, 4 bytes per pixel,
// row-major, anchored at (0,0). Per-pixel access goes through At and Set, which
// are bounds-checked. Full passes over the grid acquire a View with Lock and
// read or write the raw channel slice directly for the duration of the pass.
//
// # Lock Discipline
//
// A buffer hands out at most one View at a time. Callers must release it with
// View.Unlock on every exit path, normally with defer:
//
//	v, err := buf.Lock(pixel.ReadWrite)
//	if err != nil {
//	    return err
//	}
//	defer v.Unlock()
//
// Locking is a resource discipline, not a synchronization primitive. A Buffer
// is not safe for concurrent use.
package pixel
