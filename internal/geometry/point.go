package geometry

import "math"

// Point represents a 2D coordinate in pixel space.
//
// Unlike integer pixel indices, points are floating point: polygon
// approximation and scale mapping between detection and full resolution
// produce sub-pixel positions.
type Point struct {
	X float64 `json:"x"` // Horizontal position (0 = leftmost)
	Y float64 `json:"y"` // Vertical position (0 = topmost)
}

// Dist returns the Euclidean distance between two points.
func Dist(a, b Point) float64 {
	return math.Hypot(a.X-b.X, a.Y-b.Y)
}

// Contour is an ordered sequence of points forming a closed polygon.
// The closing edge from the last point back to the first is implicit.
type Contour []Point

// SignedArea returns the shoelace area of the contour. The sign encodes
// winding direction: positive for clockwise in image coordinates (Y down).
func (c Contour) SignedArea() float64 {
	if len(c) < 3 {
		return 0
	}
	var sum float64
	for i, p := range c {
		q := c[(i+1)%len(c)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

// Area returns the absolute enclosed area of the contour in square pixels.
func (c Contour) Area() float64 {
	return math.Abs(c.SignedArea())
}

// Perimeter returns the total arc length of the closed contour, including
// the implicit closing edge.
func (c Contour) Perimeter() float64 {
	if len(c) < 2 {
		return 0
	}
	var sum float64
	for i, p := range c {
		sum += Dist(p, c[(i+1)%len(c)])
	}
	return sum
}

// IsConvex reports whether the closed polygon is convex and
// non-self-intersecting. All cross products of consecutive edge pairs must
// share a sign; a zero cross product (three collinear vertices) is tolerated
// as long as the remaining turns agree.
func (c Contour) IsConvex() bool {
	n := len(c)
	if n < 3 {
		return false
	}
	var sign float64
	for i := 0; i < n; i++ {
		a, b, d := c[i], c[(i+1)%n], c[(i+2)%n]
		cross := (b.X-a.X)*(d.Y-b.Y) - (b.Y-a.Y)*(d.X-b.X)
		if cross == 0 {
			continue
		}
		if sign == 0 {
			sign = cross
		} else if sign*cross < 0 {
			return false
		}
	}
	return sign != 0
}

// BoundingSize returns the width and height of the contour's axis-aligned
// bounding box.
func (c Contour) BoundingSize() (width, height float64) {
	if len(c) == 0 {
		return 0, 0
	}
	minX, maxX := c[0].X, c[0].X
	minY, maxY := c[0].Y, c[0].Y
	for _, p := range c[1:] {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}
	return maxX - minX, maxY - minY
}

// Scale returns a new contour with every coordinate multiplied by the given
// per-axis factors. The receiver is not modified.
func (c Contour) Scale(sx, sy float64) Contour {
	out := make(Contour, len(c))
	for i, p := range c {
		out[i] = Point{X: p.X * sx, Y: p.Y * sy}
	}
	return out
}
