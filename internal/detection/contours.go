package detection

import (
	"sort"

	"github.com/papertrim/docscan/internal/geometry"
	"github.com/papertrim/docscan/internal/imaging"
)

// minComponentSize discards connected components smaller than this many
// pixels as noise before tracing.
const minComponentSize = 10

// pixel is an integer edge-map coordinate.
type pixel struct {
	x, y int
}

// FindCandidatePolygons traces the closed boundaries in an edge map and
// reduces them to simplified polygons, largest enclosed area first.
//
// Parameters:
//   - em: Binary edge map from imaging.Preprocess.
//   - epsilonFraction: Douglas-Peucker tolerance as a fraction of each
//     contour's perimeter. Typical: 0.02.
//   - maxCandidates: Cap on the number of contours kept after area sorting.
//     Bounds the cost of later validation. Typical: 5.
//
// Returns the simplified polygons in area-descending order. The order is
// significant: quadrilateral selection is greedy and takes the first
// acceptable candidate, which by this ordering is the largest.
func FindCandidatePolygons(em *imaging.EdgeMap, epsilonFraction float64, maxCandidates int) []geometry.Contour {
	// Non-maximum suppression knocks out edge pixels where the gradient
	// direction turns, so a document outline usually arrives as four open
	// chains broken at the corners. One dilation reconnects them into a
	// single closed ring before labeling.
	edges := dilate(em.Edges, em.Width, em.Height)
	comps := connectedComponents(edges, em.Width, em.Height)

	type traced struct {
		boundary geometry.Contour
		area     float64
	}
	candidates := make([]traced, 0, len(comps))
	for _, comp := range comps {
		boundary := traceBoundary(comp)
		if len(boundary) < 3 {
			continue
		}
		candidates = append(candidates, traced{boundary: boundary, area: boundary.Area()})
	}

	// Largest first. Stable so equal-area contours keep scan order.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].area > candidates[j].area
	})
	if maxCandidates > 0 && len(candidates) > maxCandidates {
		candidates = candidates[:maxCandidates]
	}

	polys := make([]geometry.Contour, 0, len(candidates))
	for _, c := range candidates {
		eps := epsilonFraction * c.boundary.Perimeter()
		polys = append(polys, approxPolygon(c.boundary, eps))
	}
	return polys
}

// dilate grows the edge set by one pixel in every direction, closing the
// small breaks non-maximum suppression leaves at sharp corners. The input
// is not modified.
func dilate(edges [][]bool, w, h int) [][]bool {
	out := make([][]bool, h)
	for y := range out {
		out[y] = make([]bool, w)
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !edges[y][x] {
				continue
			}
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					px, py := x+dx, y+dy
					if px >= 0 && px < w && py >= 0 && py < h {
						out[py][px] = true
					}
				}
			}
		}
	}
	return out
}

// connectedComponents groups edge pixels into 8-connected components using
// an iterative flood fill, discarding components below minComponentSize.
func connectedComponents(edges [][]bool, w, h int) [][]pixel {
	visited := make([][]bool, h)
	for y := range visited {
		visited[y] = make([]bool, w)
	}

	var comps [][]pixel
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if !edges[y][x] || visited[y][x] {
				continue
			}
			comp := floodFill(edges, visited, w, h, x, y)
			if len(comp) >= minComponentSize {
				comps = append(comps, comp)
			}
		}
	}
	return comps
}

// floodFill collects the 8-connected component containing (startX, startY).
// Stack-based rather than recursive so large boundaries cannot overflow the
// goroutine stack.
func floodFill(edges [][]bool, visited [][]bool, w, h, startX, startY int) []pixel {
	var comp []pixel
	stack := []pixel{{x: startX, y: startY}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.x < 0 || p.x >= w || p.y < 0 || p.y >= h {
			continue
		}
		if visited[p.y][p.x] || !edges[p.y][p.x] {
			continue
		}
		visited[p.y][p.x] = true
		comp = append(comp, p)

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				stack = append(stack, pixel{x: p.x + dx, y: p.y + dy})
			}
		}
	}
	return comp
}

// moore lists the 8-neighbourhood in clockwise screen order (Y down),
// starting from west.
var moore = [8]pixel{
	{-1, 0},  // W
	{-1, -1}, // NW
	{0, -1},  // N
	{1, -1},  // NE
	{1, 0},   // E
	{1, 1},   // SE
	{0, 1},   // S
	{-1, 1},  // SW
}

// traceBoundary orders a component's pixels into a closed boundary contour
// using Moore-neighbour (radial sweep) tracing.
//
// Starting from the topmost-leftmost pixel, the tracer repeatedly scans the
// current pixel's neighbourhood clockwise, beginning just past the direction
// it came from, and steps to the first component pixel found. The walk ends
// when it returns to the start. An edge ring traced this way encloses the
// region it bounds, so the shoelace area of the result approximates the
// enclosed area.
func traceBoundary(comp []pixel) geometry.Contour {
	member := make(map[pixel]bool, len(comp))
	for _, p := range comp {
		member[p] = true
	}

	start := comp[0]
	for _, p := range comp[1:] {
		if p.y < start.y || (p.y == start.y && p.x < start.x) {
			start = p
		}
	}

	contour := geometry.Contour{{X: float64(start.x), Y: float64(start.y)}}
	cur := start
	// The start pixel has no component neighbour to its west (it is the
	// leftmost pixel of the topmost row), so west is a valid backtrack.
	backDir := 0

	maxSteps := 4 * len(comp)
	for step := 0; step < maxSteps; step++ {
		moved := false
		for i := 1; i <= 8; i++ {
			d := (backDir + i) % 8
			next := pixel{x: cur.x + moore[d].x, y: cur.y + moore[d].y}
			if !member[next] {
				continue
			}
			cur = next
			backDir = (d + 4) % 8
			moved = true
			break
		}
		if !moved || cur == start {
			break
		}
		contour = append(contour, geometry.Point{X: float64(cur.x), Y: float64(cur.y)})
	}
	return contour
}
