package rectify

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/papertrim/docscan/internal/geometry"
)

// ErrDegenerateQuad indicates the ordered corners cannot define a
// perspective transform: collinear or coincident points, or zero target
// dimensions. Recoverable by requesting corrected manual input.
var ErrDegenerateQuad = errors.New("degenerate quadrilateral")

// Options configures the rectification output.
type Options struct {
	// OutputWidth and OutputHeight force a fixed output size (for standard
	// document formats such as A4 at 300 DPI). When zero, dimensions are
	// derived from the corner geometry by the max-of-opposite-edges rule.
	OutputWidth  int
	OutputHeight int

	// BorderHex is the fill color, as "#RRGGBB", for destination pixels
	// whose source position falls outside the image. Empty means white.
	BorderHex string
}

// Result owns a rectified image together with the ordered corners that
// produced it, so a visualization layer can overlay the detection and an
// undo layer can replay the corners without re-detecting.
//
// Results are created whole and replaced whole; they are never partially
// mutated.
type Result struct {
	// Image is the rectified, axis-aligned document.
	Image *image.NRGBA

	// Corners are the full-resolution ordered corners used for the warp.
	Corners geometry.Corners
}

// Rectify warps the quadrilateral described by corners into an axis-aligned
// rectangle.
//
// Parameters:
//   - src: Full-resolution source image. Never modified.
//   - corners: Ordered corners in source pixel coordinates.
//   - opts: Output sizing and border fill, see Options.
//
// Returns:
//   - *Result: The rectified image plus the corners used.
//   - error: ErrDegenerateQuad when the corners cannot define a transform.
//
// # Algorithm
//
//  1. Target width = max(top edge length, bottom edge length); target
//     height = max(left edge length, right edge length). Using either edge
//     alone would underestimate the foreshortened dimension.
//  2. Degeneracy gates: duplicate corners, any three collinear corners,
//     zero-area quadrilateral, or empty target rectangle all fail before
//     any linear algebra runs.
//  3. Solve the destination-to-source homography directly, so resampling
//     needs no matrix inversion.
//  4. For every destination pixel, map through the homography and sample
//     the source bilinearly; out-of-bounds samples take the border color.
func Rectify(src image.Image, corners geometry.Corners, opts Options) (*Result, error) {
	if src == nil || src.Bounds().Dx() <= 0 || src.Bounds().Dy() <= 0 {
		return nil, fmt.Errorf("%w: empty source image", ErrDegenerateQuad)
	}

	if err := validateCorners(corners); err != nil {
		return nil, err
	}

	topW := geometry.Dist(corners.TR, corners.TL)
	bottomW := geometry.Dist(corners.BR, corners.BL)
	leftH := geometry.Dist(corners.BL, corners.TL)
	rightH := geometry.Dist(corners.BR, corners.TR)

	outW := int(math.Max(topW, bottomW))
	outH := int(math.Max(leftH, rightH))
	if opts.OutputWidth > 0 && opts.OutputHeight > 0 {
		outW, outH = opts.OutputWidth, opts.OutputHeight
	}
	if outW < 1 || outH < 1 {
		return nil, fmt.Errorf("%w: zero target dimensions (%dx%d)", ErrDegenerateQuad, outW, outH)
	}

	dst := [4]geometry.Point{
		{X: 0, Y: 0},
		{X: float64(outW - 1), Y: 0},
		{X: float64(outW - 1), Y: float64(outH - 1)},
		{X: 0, Y: float64(outH - 1)},
	}
	srcQuad := [4]geometry.Point{corners.TL, corners.TR, corners.BR, corners.BL}

	h, err := solveHomography(dst, srcQuad)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDegenerateQuad, err)
	}

	border := parseBorder(opts.BorderHex)

	// Clone normalizes any source format to NRGBA with origin bounds, which
	// keeps the sampling inner loop on direct pixel access.
	plane := imaging.Clone(src)
	out := image.NewNRGBA(image.Rect(0, 0, outW, outH))
	for dy := 0; dy < outH; dy++ {
		for dx := 0; dx < outW; dx++ {
			sx, sy, ok := h.apply(float64(dx), float64(dy))
			var c color.NRGBA
			if ok {
				c = sampleBilinear(plane, sx, sy, border)
			} else {
				c = border
			}
			out.SetNRGBA(dx, dy, c)
		}
	}

	return &Result{Image: out, Corners: corners}, nil
}

// validateCorners rejects corner sets that cannot bound a document: any
// coincident pair or any collinear triple collapses the quadrilateral.
func validateCorners(c geometry.Corners) error {
	pts := [4]geometry.Point{c.TL, c.TR, c.BR, c.BL}

	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if geometry.Dist(pts[i], pts[j]) < 1e-9 {
				return fmt.Errorf("%w: coincident corners %v", ErrDegenerateQuad, pts[i])
			}
		}
	}

	// Scale-aware collinearity: compare each triangle's area against the
	// square of the quadrilateral's span so tolerance does not depend on
	// pixel units.
	span := 0.0
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			span = math.Max(span, geometry.Dist(pts[i], pts[j]))
		}
	}
	minTriangle := 1e-6 * span * span
	for i := 0; i < 4; i++ {
		a, b, d := pts[i], pts[(i+1)%4], pts[(i+2)%4]
		area := math.Abs((b.X-a.X)*(d.Y-a.Y)-(b.Y-a.Y)*(d.X-a.X)) / 2
		if area <= minTriangle {
			return fmt.Errorf("%w: corners %v, %v, %v are collinear", ErrDegenerateQuad, a, b, d)
		}
	}
	return nil
}

// parseBorder converts a hex fill color to NRGBA, defaulting to white for
// empty or malformed input.
func parseBorder(hex string) color.NRGBA {
	if hex == "" {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}
}

// sampleBilinear interpolates the four pixels surrounding (x, y). Samples
// outside the image take the border color, including the partial weights of
// edge-straddling positions.
func sampleBilinear(img *image.NRGBA, x, y float64, border color.NRGBA) color.NRGBA {
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()

	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	fx := x - float64(x0)
	fy := y - float64(y0)

	pick := func(px, py int) color.NRGBA {
		if px < 0 || px >= w || py < 0 || py >= h {
			return border
		}
		i := img.PixOffset(px, py)
		return color.NRGBA{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2], A: img.Pix[i+3]}
	}

	c00 := pick(x0, y0)
	c10 := pick(x0+1, y0)
	c01 := pick(x0, y0+1)
	c11 := pick(x0+1, y0+1)

	lerp2 := func(a, b, c, d uint8) uint8 {
		top := float64(a) + (float64(b)-float64(a))*fx
		bot := float64(c) + (float64(d)-float64(c))*fx
		return uint8(math.Round(top + (bot-top)*fy))
	}

	return color.NRGBA{
		R: lerp2(c00.R, c10.R, c01.R, c11.R),
		G: lerp2(c00.G, c10.G, c01.G, c11.G),
		B: lerp2(c00.B, c10.B, c01.B, c11.B),
		A: lerp2(c00.A, c10.A, c01.A, c11.A),
	}
}
