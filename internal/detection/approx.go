package detection

import (
	"math"

	"github.com/papertrim/docscan/internal/geometry"
)

// approxPolygon simplifies a closed contour with the Douglas-Peucker
// algorithm, keeping only vertices that deviate from the simplified shape
// by more than epsilon pixels.
//
// Douglas-Peucker operates on open polylines, so the closed contour is
// split at its two mutually farthest anchor points, each half is
// simplified independently, and the halves are rejoined. A traced
// rectangle ring collapses to its four corner vertices this way.
func approxPolygon(c geometry.Contour, epsilon float64) geometry.Contour {
	if len(c) < 3 {
		return append(geometry.Contour(nil), c...)
	}

	// Anchor the split at index 0 and the point farthest from it; both are
	// guaranteed to survive simplification.
	far := 0
	farDist := 0.0
	for i, p := range c {
		if d := geometry.Dist(c[0], p); d > farDist {
			farDist = d
			far = i
		}
	}
	if far == 0 {
		// All points coincide.
		return geometry.Contour{c[0]}
	}

	first := simplifyOpen(c[:far+1], epsilon)
	second := simplifyOpen(append(append(geometry.Contour(nil), c[far:]...), c[0]), epsilon)

	// Join, dropping the duplicated anchors at each seam.
	out := append(geometry.Contour(nil), first...)
	if len(second) > 2 {
		out = append(out, second[1:len(second)-1]...)
	}
	return out
}

// simplifyOpen applies Douglas-Peucker to an open polyline, returning a
// subsequence that always includes both endpoints.
func simplifyOpen(line geometry.Contour, epsilon float64) geometry.Contour {
	if len(line) < 3 {
		return append(geometry.Contour(nil), line...)
	}

	maxDist := 0.0
	maxIdx := 0
	for i := 1; i < len(line)-1; i++ {
		if d := perpendicularDistance(line[i], line[0], line[len(line)-1]); d > maxDist {
			maxDist = d
			maxIdx = i
		}
	}

	if maxDist <= epsilon {
		return geometry.Contour{line[0], line[len(line)-1]}
	}

	left := simplifyOpen(line[:maxIdx+1], epsilon)
	right := simplifyOpen(line[maxIdx:], epsilon)
	return append(left[:len(left)-1], right...)
}

// perpendicularDistance returns the distance from p to the line through a
// and b, or the distance to a when the segment is degenerate.
func perpendicularDistance(p, a, b geometry.Point) float64 {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return geometry.Dist(p, a)
	}
	return math.Abs(dy*p.X-dx*p.Y+b.X*a.Y-b.Y*a.X) / length
}
