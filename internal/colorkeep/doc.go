// Package colorkeep implements the incremental pixel-classification engine that
// keeps picked colors and desaturates everything else.
//
// A Session owns an immutable base buffer, a derived display buffer and an
// ordered list of picks. Each Pick is a reference color sampled at a point
// together with two thresholds:
//
//   - Allowance: maximum Chebyshev distance between the reference color and a
//     pixel color (0-255).
//   - Range: maximum distance from the sample point, scaled so that the image
//     diagonal equals MaxRange (0-10000).
//
// A pixel is claimed by a pick when it satisfies both thresholds. After every
// mutating Session call the display buffer holds the base color for every
// pixel claimed by at least one pick and the gray value (R+G+B)/3 otherwise.
//
// # Interactive Tuning
//
// Threshold changes go through the active pick. SetActive pays for the
// per-pixel color and spatial distances once; AdjustActive and
// SetActiveThresholds then only compare cached values against the new
// thresholds, so dragging a slider costs one cheap pass per call.
//
// # Errors
//
// Precondition violations (bad index, no active pick, point outside the image)
// return one of the sentinel errors below and leave the session untouched.
// Callers that want a tolerant UI can ignore them.
//
// # Thread Safety
//
// A Session is not safe for concurrent use. Every call runs its pass to
// completion before returning.
package colorkeep
