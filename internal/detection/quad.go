package detection

import (
	"errors"

	"github.com/papertrim/docscan/internal/geometry"
)

// ErrNoDocument indicates that no candidate polygon qualified as a document
// quadrilateral. Recoverable: callers should fall back to manual corner
// input rather than treating this as fatal.
var ErrNoDocument = errors.New("no document detected")

// SelectQuadrilateral picks the document boundary from candidate polygons.
//
// Candidates must arrive in area-descending order (as produced by
// FindCandidatePolygons). The first candidate passing every gate wins:
//
//   - exactly 4 vertices after approximation
//   - convex and non-self-intersecting
//   - enclosed area at least minAreaFraction of imageArea
//   - bounding width/height ratio within [minAspect, maxAspect], rejecting
//     extreme slivers that no real document produces
//
// Because the input is area-sorted, the greedy policy selects the largest
// valid quadrilateral, not a best-fit by any other metric.
//
// Returns ErrNoDocument when no candidate qualifies, including when the
// candidate list is empty.
func SelectQuadrilateral(candidates []geometry.Contour, imageArea float64, minAreaFraction, minAspect, maxAspect float64) (geometry.Contour, error) {
	for _, poly := range candidates {
		if len(poly) != 4 {
			continue
		}
		if !poly.IsConvex() {
			continue
		}
		if poly.Area() < minAreaFraction*imageArea {
			continue
		}
		w, h := poly.BoundingSize()
		if w <= 0 || h <= 0 {
			continue
		}
		ratio := w / h
		if ratio < minAspect || ratio > maxAspect {
			continue
		}
		return poly, nil
	}
	return nil, ErrNoDocument
}
