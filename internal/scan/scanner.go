package scan

import (
	"context"
	"image"

	"github.com/papertrim/docscan/internal/detection"
	"github.com/papertrim/docscan/internal/geometry"
	"github.com/papertrim/docscan/internal/imaging"
	"github.com/papertrim/docscan/internal/rectify"
)

// Scanner runs the detection and rectification pipeline. It holds only
// configuration and is safe for concurrent use; every invocation works on
// its own buffers.
type Scanner struct {
	cfg Config
}

// New returns a Scanner using the given configuration. Zero-valued fields
// fall back to DefaultConfig.
func New(cfg Config) *Scanner {
	return &Scanner{cfg: cfg.withDefaults()}
}

// Detect locates the document quadrilateral in an image and returns its
// corners, canonically ordered, in full-resolution coordinates.
//
// Pipeline: preprocess to an edge map, trace and approximate contour
// candidates (largest first), greedily select the first valid
// quadrilateral, order its corners, and undo the detection downscale.
//
// Errors:
//   - imaging.ErrInvalidImage: nil or zero-area input
//   - detection.ErrNoDocument: no qualifying quadrilateral; callers should
//     fall back to manual corners or treat the whole image as the document
//   - ctx.Err(): the context was canceled between stages
func (s *Scanner) Detect(ctx context.Context, img image.Image) (geometry.Corners, error) {
	em, err := imaging.Preprocess(img, s.cfg.MaxDimension, s.cfg.BlurRadius, s.cfg.ThresholdLow, s.cfg.ThresholdHigh)
	if err != nil {
		return geometry.Corners{}, err
	}
	if err := ctx.Err(); err != nil {
		return geometry.Corners{}, err
	}

	polys := detection.FindCandidatePolygons(em, s.cfg.ApproxEpsilonFraction, s.cfg.MaxCandidates)
	if err := ctx.Err(); err != nil {
		return geometry.Corners{}, err
	}

	imageArea := float64(em.Width) * float64(em.Height)
	quad, err := detection.SelectQuadrilateral(polys, imageArea, s.cfg.MinAreaFraction, s.cfg.MinAspectRatio, s.cfg.MaxAspectRatio)
	if err != nil {
		return geometry.Corners{}, err
	}

	ordered := geometry.OrderCorners([4]geometry.Point{quad[0], quad[1], quad[2], quad[3]})
	// Detection ran on the downscaled image; map back to source pixels.
	return ordered.Scale(1/em.ScaleX, 1/em.ScaleY), nil
}

// Scan detects the document in an image and rectifies it.
//
// The returned result owns the rectified image and the ordered corners
// used, so callers can overlay the detection or replay the corners later.
// A failed detection is reported, never silently replaced by the
// unrectified input.
func (s *Scanner) Scan(ctx context.Context, img image.Image) (*rectify.Result, error) {
	corners, err := s.Detect(ctx, img)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return rectify.Rectify(img, corners, s.rectifyOptions())
}

// Rectify warps an image using four manually supplied corner points in
// full-resolution coordinates, in any order. Detection is bypassed
// entirely; ordering and rectification use the exact code path of Scan.
func (s *Scanner) Rectify(ctx context.Context, img image.Image, pts [4]geometry.Point) (*rectify.Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ordered := geometry.OrderCorners(pts)
	return rectify.Rectify(img, ordered, s.rectifyOptions())
}

// Preview returns a copy of the image with the given corners overlaid, for
// display while the user confirms or adjusts the detection.
func (s *Scanner) Preview(img image.Image, corners geometry.Corners) *image.RGBA {
	return imaging.DrawDetection(img, corners)
}

func (s *Scanner) rectifyOptions() rectify.Options {
	return rectify.Options{
		OutputWidth:  s.cfg.OutputWidth,
		OutputHeight: s.cfg.OutputHeight,
		BorderHex:    s.cfg.BorderHex,
	}
}
