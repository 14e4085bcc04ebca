package imaging

import (
	"errors"
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/blur"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/transform"
)

// ErrInvalidImage indicates the input image is nil or has zero area and
// cannot be processed.
var ErrInvalidImage = errors.New("invalid image")

// EdgeMap is a binary image marking likely object-boundary pixels, produced
// at detection resolution.
//
// Coordinates found on the edge map live in detection space; divide by
// ScaleX/ScaleY to map them back to the full-resolution source.
type EdgeMap struct {
	// Width and Height of the edge map in pixels (detection resolution).
	Width  int
	Height int

	// Edges marks boundary pixels, indexed as Edges[y][x].
	Edges [][]bool

	// ScaleX and ScaleY are the factors the source was multiplied by to
	// reach detection resolution. Both are 1.0 when no downscale happened.
	ScaleX float64
	ScaleY float64
}

// Preprocess normalizes an image into an edge map suitable for contour
// search.
//
// Parameters:
//   - img: Source image (color or grayscale). Never modified.
//   - maxDimension: Longest side of the working image. Larger inputs are
//     downscaled, preserving aspect ratio, purely for performance.
//     Typical: 1500.
//   - blurRadius: Gaussian blur radius applied before edge extraction to
//     suppress high-frequency sensor noise. Typical: 2 (a 5x5 kernel).
//   - thresholdLow, thresholdHigh: Canny hysteresis thresholds (0-255).
//     Gradients above thresholdHigh are always edges; gradients between the
//     two survive only when connected to a strong edge. Typical: 50/150.
//
// Returns:
//   - *EdgeMap: Binary edge map plus the scale factors needed to map
//     detection-space coordinates back to full resolution.
//   - error: ErrInvalidImage for nil or zero-area input.
//
// # Algorithm
//
//  1. Downscale so the longer side fits maxDimension (bilinear)
//  2. Grayscale conversion (luminance)
//  3. Gaussian blur with the given radius
//  4. Sobel gradients, non-maximum suppression, hysteresis thresholding
func Preprocess(img image.Image, maxDimension int, blurRadius float64, thresholdLow, thresholdHigh int) (*EdgeMap, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidImage)
	}
	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW <= 0 || srcH <= 0 {
		return nil, fmt.Errorf("%w: zero-area image (%dx%d)", ErrInvalidImage, srcW, srcH)
	}

	// Downscale only; small inputs are processed as-is.
	scaleX, scaleY := 1.0, 1.0
	work := img
	longer := srcW
	if srcH > longer {
		longer = srcH
	}
	if maxDimension > 0 && longer > maxDimension {
		factor := float64(maxDimension) / float64(longer)
		newW := int(float64(srcW) * factor)
		newH := int(float64(srcH) * factor)
		if newW < 1 {
			newW = 1
		}
		if newH < 1 {
			newH = 1
		}
		work = transform.Resize(img, newW, newH, transform.Linear)
		scaleX = float64(newW) / float64(srcW)
		scaleY = float64(newH) / float64(srcH)
	}

	gray := effect.Grayscale(work)
	if blurRadius > 0 {
		gray = blur.Gaussian(gray, blurRadius)
	}

	w := gray.Bounds().Dx()
	h := gray.Bounds().Dy()

	// After Grayscale all channels are equal; lift the red channel into a
	// normalized luminance plane for the gradient stages.
	lum := make([][]float64, h)
	for y := 0; y < h; y++ {
		lum[y] = make([]float64, w)
		row := gray.Pix[y*gray.Stride : y*gray.Stride+w*4]
		for x := 0; x < w; x++ {
			lum[y][x] = float64(row[x*4]) / 255.0
		}
	}

	edges := cannyEdges(lum, w, h, thresholdLow, thresholdHigh)

	return &EdgeMap{
		Width:  w,
		Height: h,
		Edges:  edges,
		ScaleX: scaleX,
		ScaleY: scaleY,
	}, nil
}
