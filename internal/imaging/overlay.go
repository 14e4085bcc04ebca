package imaging

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/papertrim/docscan/internal/geometry"
)

// Detection overlay styling, matching the conventional scanner preview:
// green quadrilateral outline with red corner markers.
var (
	outlineColor = color.RGBA{0, 255, 0, 255}
	markerColor  = color.RGBA{255, 0, 0, 255}
)

// DrawDetection returns a copy of the image with the detected quadrilateral
// outlined and its corners marked, for preview display. The source image is
// not modified.
//
// Corners are expected in full-resolution coordinates, the same space
// returned to callers of the scan pipeline.
func DrawDetection(img image.Image, corners geometry.Corners) *image.RGBA {
	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)

	quad := corners.Contour()
	for i, p := range quad {
		q := quad[(i+1)%len(quad)]
		drawLine(out, p, q, outlineColor, 3)
	}
	for _, p := range quad {
		drawDisc(out, p, 10, markerColor)
	}
	return out
}

// drawLine draws a straight segment of the given thickness by stamping a
// square brush along the line at sub-pixel steps.
func drawLine(img *image.RGBA, a, b geometry.Point, c color.RGBA, thickness int) {
	steps := int(math.Ceil(geometry.Dist(a, b)))
	if steps < 1 {
		steps = 1
	}
	half := thickness / 2
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := int(math.Round(a.X + (b.X-a.X)*t))
		y := int(math.Round(a.Y + (b.Y-a.Y)*t))
		for dy := -half; dy <= half; dy++ {
			for dx := -half; dx <= half; dx++ {
				setIfInside(img, x+dx, y+dy, c)
			}
		}
	}
}

// drawDisc fills a circle of the given radius centered on p.
func drawDisc(img *image.RGBA, p geometry.Point, radius int, c color.RGBA) {
	cx := int(math.Round(p.X))
	cy := int(math.Round(p.Y))
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= radius*radius {
				setIfInside(img, cx+dx, cy+dy, c)
			}
		}
	}
}

func setIfInside(img *image.RGBA, x, y int, c color.RGBA) {
	if (image.Point{X: x, Y: y}).In(img.Bounds()) {
		img.SetRGBA(x, y, c)
	}
}
