// Package rectify warps a perspective-skewed document quadrilateral into a
// flat, axis-aligned image.
//
// The rectifier computes target dimensions from the ordered corners using
// the max-of-opposite-edges rule (so perspective foreshortening never
// underestimates the true document size), solves the 8-degree-of-freedom
// planar homography mapping the destination rectangle onto the source
// quadrilateral, and resamples the full-resolution source with bilinear
// interpolation. Destination pixels whose source position falls outside the
// image are filled with a configurable border color.
//
// Degenerate inputs (collinear corners, duplicate corners, zero target
// dimensions) are rejected with ErrDegenerateQuad before the linear solve
// runs; a near-singular system surfaced by the solver maps to the same
// error. The output never contains NaN or Inf pixel mappings.
//
// Both automatic detection and manual corner entry funnel through Rectify —
// there is exactly one homography code path.
package rectify
