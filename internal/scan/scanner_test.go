package scan

import (
	"context"
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/papertrim/docscan/internal/detection"
	"github.com/papertrim/docscan/internal/geometry"
	"github.com/papertrim/docscan/internal/imaging"
	"github.com/papertrim/docscan/internal/rectify"
)

// documentImage returns a black image with the convex quadrilateral filled
// white, the synthetic stand-in for a photographed document.
func documentImage(w, h int, quad geometry.Contour) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.RGBA{0, 0, 0, 255}
			if insideConvex(quad, float64(x), float64(y)) {
				c = color.RGBA{255, 255, 255, 255}
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func insideConvex(poly geometry.Contour, x, y float64) bool {
	sign := 0.0
	for i, a := range poly {
		b := poly[(i+1)%len(poly)]
		cross := (b.X-a.X)*(y-a.Y) - (b.Y-a.Y)*(x-a.X)
		if cross == 0 {
			continue
		}
		if sign == 0 {
			sign = cross
		} else if sign*cross < 0 {
			return false
		}
	}
	return true
}

func assertNear(t *testing.T, label string, got, want geometry.Point, tol float64) {
	t.Helper()
	if d := geometry.Dist(got, want); d > tol {
		t.Errorf("%s = %+v, want within %gpx of %+v (off by %.1f)", label, got, tol, want, d)
	}
}

func TestScanner_DetectSkewedDocument(t *testing.T) {
	quad := geometry.Contour{
		{X: 100, Y: 100}, {X: 700, Y: 150}, {X: 680, Y: 650}, {X: 120, Y: 600},
	}
	img := documentImage(1000, 800, quad)

	s := New(DefaultConfig())
	corners, err := s.Detect(context.Background(), img)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	const tol = 8
	assertNear(t, "TL", corners.TL, geometry.Point{X: 100, Y: 100}, tol)
	assertNear(t, "TR", corners.TR, geometry.Point{X: 700, Y: 150}, tol)
	assertNear(t, "BR", corners.BR, geometry.Point{X: 680, Y: 650}, tol)
	assertNear(t, "BL", corners.BL, geometry.Point{X: 120, Y: 600}, tol)
}

func TestScanner_DetectMapsBackAfterDownscale(t *testing.T) {
	quad := geometry.Contour{
		{X: 200, Y: 200}, {X: 1400, Y: 300}, {X: 1360, Y: 1300}, {X: 240, Y: 1200},
	}
	img := documentImage(2000, 1600, quad)

	s := New(DefaultConfig())
	corners, err := s.Detect(context.Background(), img)
	if err != nil {
		t.Fatalf("Detect failed: %v", err)
	}

	// Detection ran at 1500px; corner positions must come back in source
	// coordinates. Tolerance widened by the downscale factor.
	const tol = 14
	assertNear(t, "TL", corners.TL, geometry.Point{X: 200, Y: 200}, tol)
	assertNear(t, "TR", corners.TR, geometry.Point{X: 1400, Y: 300}, tol)
	assertNear(t, "BR", corners.BR, geometry.Point{X: 1360, Y: 1300}, tol)
	assertNear(t, "BL", corners.BL, geometry.Point{X: 240, Y: 1200}, tol)
}

func TestScanner_ScanRoundTrip(t *testing.T) {
	quad := geometry.Contour{
		{X: 100, Y: 100}, {X: 700, Y: 150}, {X: 680, Y: 650}, {X: 120, Y: 600},
	}
	img := documentImage(1000, 800, quad)

	s := New(DefaultConfig())
	res, err := s.Scan(context.Background(), img)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}

	// Expected output size from the true corner geometry, allowing for
	// detection tolerance.
	wantW := math.Max(geometry.Dist(quad[1], quad[0]), geometry.Dist(quad[2], quad[3]))
	wantH := math.Max(geometry.Dist(quad[3], quad[0]), geometry.Dist(quad[2], quad[1]))
	gotW := float64(res.Image.Bounds().Dx())
	gotH := float64(res.Image.Bounds().Dy())
	if math.Abs(gotW-wantW) > 16 || math.Abs(gotH-wantH) > 16 {
		t.Errorf("rectified size = %gx%g, want ~%.0fx%.0f", gotW, gotH, wantW, wantH)
	}

	// Interior must be the document, not background.
	c := res.Image.NRGBAAt(res.Image.Bounds().Dx()/2, res.Image.Bounds().Dy()/2)
	if c.R < 200 || c.G < 200 || c.B < 200 {
		t.Errorf("rectified center = %+v, want white document", c)
	}
}

func TestScanner_AllBlackImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 300))
	for y := 0; y < 300; y++ {
		for x := 0; x < 400; x++ {
			img.SetRGBA(x, y, color.RGBA{0, 0, 0, 255})
		}
	}

	s := New(DefaultConfig())
	_, err := s.Scan(context.Background(), img)
	if !errors.Is(err, detection.ErrNoDocument) {
		t.Errorf("err = %v, want ErrNoDocument", err)
	}
}

func TestScanner_InvalidImage(t *testing.T) {
	s := New(DefaultConfig())
	_, err := s.Scan(context.Background(), nil)
	if !errors.Is(err, imaging.ErrInvalidImage) {
		t.Errorf("err = %v, want ErrInvalidImage", err)
	}
}

func TestScanner_Cancellation(t *testing.T) {
	quad := geometry.Contour{
		{X: 50, Y: 50}, {X: 350, Y: 60}, {X: 340, Y: 250}, {X: 60, Y: 240},
	}
	img := documentImage(400, 300, quad)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(DefaultConfig())
	if _, err := s.Scan(ctx, img); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestScanner_ManualRectify(t *testing.T) {
	quad := geometry.Contour{
		{X: 100, Y: 100}, {X: 700, Y: 150}, {X: 680, Y: 650}, {X: 120, Y: 600},
	}
	img := documentImage(1000, 800, quad)

	// Manual corners arrive unordered; the pipeline must order them.
	pts := [4]geometry.Point{
		{X: 680, Y: 650}, {X: 100, Y: 100}, {X: 120, Y: 600}, {X: 700, Y: 150},
	}

	s := New(DefaultConfig())
	res, err := s.Rectify(context.Background(), img, pts)
	if err != nil {
		t.Fatalf("Rectify failed: %v", err)
	}

	want := geometry.Corners{
		TL: geometry.Point{X: 100, Y: 100},
		TR: geometry.Point{X: 700, Y: 150},
		BR: geometry.Point{X: 680, Y: 650},
		BL: geometry.Point{X: 120, Y: 600},
	}
	if res.Corners != want {
		t.Errorf("corners = %+v, want %+v", res.Corners, want)
	}

	c := res.Image.NRGBAAt(res.Image.Bounds().Dx()/2, res.Image.Bounds().Dy()/2)
	if c.R < 200 {
		t.Errorf("center = %+v, want white document", c)
	}
}

func TestScanner_ManualRectifyDegenerate(t *testing.T) {
	img := documentImage(200, 200, geometry.Contour{
		{X: 20, Y: 20}, {X: 180, Y: 20}, {X: 180, Y: 180}, {X: 20, Y: 180},
	})
	pts := [4]geometry.Point{
		{X: 0, Y: 0}, {X: 50, Y: 50}, {X: 100, Y: 100}, {X: 150, Y: 150},
	}

	s := New(DefaultConfig())
	if _, err := s.Rectify(context.Background(), img, pts); !errors.Is(err, rectify.ErrDegenerateQuad) {
		t.Errorf("err = %v, want ErrDegenerateQuad", err)
	}
}

func TestScanner_FixedOutputSize(t *testing.T) {
	quad := geometry.Contour{
		{X: 100, Y: 100}, {X: 700, Y: 150}, {X: 680, Y: 650}, {X: 120, Y: 600},
	}
	img := documentImage(1000, 800, quad)

	cfg := DefaultConfig()
	size := StandardSizes["A4"]
	cfg.OutputWidth, cfg.OutputHeight = size[0], size[1]

	s := New(cfg)
	res, err := s.Scan(context.Background(), img)
	if err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if res.Image.Bounds().Dx() != size[0] || res.Image.Bounds().Dy() != size[1] {
		t.Errorf("output = %dx%d, want %dx%d",
			res.Image.Bounds().Dx(), res.Image.Bounds().Dy(), size[0], size[1])
	}
}

func TestConfigWithDefaults(t *testing.T) {
	cfg := Config{ThresholdLow: 30}.withDefaults()
	if cfg.ThresholdLow != 30 {
		t.Errorf("explicit value overridden: %d", cfg.ThresholdLow)
	}
	if cfg.ThresholdHigh != 150 || cfg.MaxDimension != 1500 || cfg.MinAreaFraction != 0.20 {
		t.Errorf("defaults not applied: %+v", cfg)
	}
}
