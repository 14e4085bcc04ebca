// Package detection locates document boundary candidates in a binary edge
// map and selects the single best quadrilateral.
//
// # Pipeline
//
//  1. One dilation closes the small breaks edge thinning leaves at corners
//  2. Connected components group edge pixels into closed boundary chains
//  3. Moore-neighbour tracing orders each chain into a closed contour
//  4. Contours are sorted by enclosed area, largest first, and capped to a
//     small candidate set
//  5. Douglas-Peucker approximation reduces each candidate to a simplified
//     polygon, with tolerance proportional to its perimeter
//  6. The first candidate that is a convex 4-gon, large enough relative to
//     the image, and plausibly document-shaped wins
//
// The greedy largest-first, first-valid-wins policy is deliberate: the
// target document is assumed to be the dominant foreground object, so the
// largest valid quadrilateral is chosen rather than a best-fit by any other
// metric.
//
// # Limitations
//
// Only the largest few contours are examined; a document smaller than the
// candidate cap's last contour will not be found. Torn or curled pages that
// do not approximate to four vertices are out of scope.
package detection
