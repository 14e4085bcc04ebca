package geometry

import (
	"math"
	"sort"
)

// Corners is a quadrilateral with its vertices in canonical order:
// top-left, top-right, bottom-right, bottom-left.
//
// The four points are always a permutation of the points the ordering was
// computed from; ordering changes enumeration only, never geometry.
type Corners struct {
	TL Point `json:"top_left"`
	TR Point `json:"top_right"`
	BR Point `json:"bottom_right"`
	BL Point `json:"bottom_left"`
}

// Contour returns the corners as a closed contour in TL, TR, BR, BL order.
func (c Corners) Contour() Contour {
	return Contour{c.TL, c.TR, c.BR, c.BL}
}

// Area returns the enclosed area of the ordered quadrilateral.
func (c Corners) Area() float64 {
	return c.Contour().Area()
}

// Scale returns the corners with every coordinate multiplied by the given
// per-axis factors.
func (c Corners) Scale(sx, sy float64) Corners {
	return Corners{
		TL: Point{X: c.TL.X * sx, Y: c.TL.Y * sy},
		TR: Point{X: c.TR.X * sx, Y: c.TR.Y * sy},
		BR: Point{X: c.BR.X * sx, Y: c.BR.Y * sy},
		BL: Point{X: c.BL.X * sx, Y: c.BL.Y * sy},
	}
}

// OrderCorners labels four unordered points as top-left, top-right,
// bottom-right, bottom-left.
//
// # Algorithm
//
// For each point compute sum = x + y and diff = y - x. In image coordinates
// (origin top-left, Y down):
//
//   - Top-left has the minimum sum
//   - Bottom-right has the maximum sum
//   - Top-right has the minimum diff
//   - Bottom-left has the maximum diff
//
// This single-pass heuristic is exact for convex quadrilaterals. When two
// points tie on sum or diff (near-degenerate or perfectly axis-aligned
// inputs can make the argmin/argmax ambiguous, or assign one point two
// labels), the function falls back to sorting the points by angle around
// their centroid, which is unambiguous for any four distinct points.
func OrderCorners(pts [4]Point) Corners {
	const eps = 1e-9

	var sums, diffs [4]float64
	for i, p := range pts {
		sums[i] = p.X + p.Y
		diffs[i] = p.Y - p.X
	}

	minSum, sumLoTie := extremum(sums, true, eps)
	maxSum, sumHiTie := extremum(sums, false, eps)
	minDiff, diffLoTie := extremum(diffs, true, eps)
	maxDiff, diffHiTie := extremum(diffs, false, eps)

	distinct := minSum != maxSum && minDiff != maxDiff &&
		minSum != minDiff && minSum != maxDiff &&
		maxSum != minDiff && maxSum != maxDiff
	if sumLoTie || sumHiTie || diffLoTie || diffHiTie || !distinct {
		return orderByCentroidAngle(pts)
	}

	return Corners{
		TL: pts[minSum],
		TR: pts[minDiff],
		BR: pts[maxSum],
		BL: pts[maxDiff],
	}
}

// extremum returns the index of the minimum (or maximum) value and whether
// another entry lies within eps of it, which makes the label ambiguous.
func extremum(vals [4]float64, min bool, eps float64) (idx int, tie bool) {
	for i := 1; i < 4; i++ {
		if (min && vals[i] < vals[idx]) || (!min && vals[i] > vals[idx]) {
			idx = i
		}
	}
	for i := 0; i < 4; i++ {
		if i != idx && math.Abs(vals[i]-vals[idx]) <= eps {
			return idx, true
		}
	}
	return idx, false
}

// orderByCentroidAngle orders four points clockwise (in screen terms) by
// their angle around the centroid, then rotates the cycle so the point
// closest to the top-left leads.
//
// With Y increasing downward, ascending atan2 enumerates the points
// clockwise as seen on screen, which is exactly TL, TR, BR, BL once the
// cycle starts at the top-left.
func orderByCentroidAngle(pts [4]Point) Corners {
	var cx, cy float64
	for _, p := range pts {
		cx += p.X
		cy += p.Y
	}
	cx /= 4
	cy /= 4

	ordered := pts[:]
	sort.Slice(ordered, func(i, j int) bool {
		ai := math.Atan2(ordered[i].Y-cy, ordered[i].X-cx)
		aj := math.Atan2(ordered[j].Y-cy, ordered[j].X-cx)
		if ai != aj {
			return ai < aj
		}
		// Identical angles only happen for coincident directions; fall back
		// to distance from the centroid for a deterministic order.
		return Dist(ordered[i], Point{X: cx, Y: cy}) < Dist(ordered[j], Point{X: cx, Y: cy})
	})

	// Rotate so the smallest x+y (deterministically tie-broken by y, then x)
	// becomes the top-left.
	lead := 0
	for i := 1; i < 4; i++ {
		si, sl := ordered[i].X+ordered[i].Y, ordered[lead].X+ordered[lead].Y
		if si < sl || (si == sl && (ordered[i].Y < ordered[lead].Y ||
			(ordered[i].Y == ordered[lead].Y && ordered[i].X < ordered[lead].X))) {
			lead = i
		}
	}

	return Corners{
		TL: ordered[lead],
		TR: ordered[(lead+1)%4],
		BR: ordered[(lead+2)%4],
		BL: ordered[(lead+3)%4],
	}
}
