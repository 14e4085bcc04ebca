package imaging

import (
	"errors"
	"image"
	"image/color"
	"testing"

	"github.com/papertrim/docscan/internal/geometry"
)

// fillRect paints an axis-aligned rectangle onto img.
func fillRect(img *image.RGBA, x1, y1, x2, y2 int, c color.RGBA) {
	for y := y1; y < y2; y++ {
		for x := x1; x < x2; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

// newDocumentImage returns a black image with a white rectangle, the
// canonical synthetic scanner input.
func newDocumentImage(w, h, x1, y1, x2, y2 int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fillRect(img, 0, 0, w, h, color.RGBA{0, 0, 0, 255})
	fillRect(img, x1, y1, x2, y2, color.RGBA{255, 255, 255, 255})
	return img
}

func TestPreprocess_FindsRectangleEdges(t *testing.T) {
	img := newDocumentImage(200, 160, 40, 30, 160, 130)

	em, err := Preprocess(img, 1500, 2, 50, 150)
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	if em.Width != 200 || em.Height != 160 {
		t.Fatalf("edge map size = %dx%d, want 200x160", em.Width, em.Height)
	}
	if em.ScaleX != 1 || em.ScaleY != 1 {
		t.Errorf("no downscale expected, got scale %g,%g", em.ScaleX, em.ScaleY)
	}

	// Edges must appear near the rectangle border...
	nearTop := 0
	for x := 50; x < 150; x++ {
		for y := 26; y <= 34; y++ {
			if em.Edges[y][x] {
				nearTop++
			}
		}
	}
	if nearTop == 0 {
		t.Error("no edges found along the rectangle's top border")
	}

	// ...and nowhere deep inside the uniform regions.
	for _, p := range []struct{ x, y int }{{100, 80}, {10, 10}, {190, 150}} {
		if em.Edges[p.y][p.x] {
			t.Errorf("unexpected edge in uniform region at (%d,%d)", p.x, p.y)
		}
	}
}

func TestPreprocess_UniformImageHasNoEdges(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 80, 80))
	fillRect(img, 0, 0, 80, 80, color.RGBA{128, 128, 128, 255})

	em, err := Preprocess(img, 1500, 2, 50, 150)
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	for y := 0; y < em.Height; y++ {
		for x := 0; x < em.Width; x++ {
			if em.Edges[y][x] {
				t.Fatalf("uniform image produced edge at (%d,%d)", x, y)
			}
		}
	}
}

func TestPreprocess_Downscales(t *testing.T) {
	img := newDocumentImage(3000, 1500, 500, 300, 2500, 1200)

	em, err := Preprocess(img, 1500, 2, 50, 150)
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	if em.Width != 1500 || em.Height != 750 {
		t.Errorf("edge map size = %dx%d, want 1500x750", em.Width, em.Height)
	}
	if em.ScaleX != 0.5 || em.ScaleY != 0.5 {
		t.Errorf("scale = %g,%g, want 0.5,0.5", em.ScaleX, em.ScaleY)
	}
}

func TestPreprocess_SmallImageNotUpscaled(t *testing.T) {
	img := newDocumentImage(100, 60, 20, 10, 80, 50)

	em, err := Preprocess(img, 1500, 2, 50, 150)
	if err != nil {
		t.Fatalf("Preprocess failed: %v", err)
	}
	if em.Width != 100 || em.Height != 60 {
		t.Errorf("edge map size = %dx%d, want 100x60", em.Width, em.Height)
	}
}

func TestPreprocess_InvalidImage(t *testing.T) {
	tests := []struct {
		name string
		img  image.Image
	}{
		{"nil image", nil},
		{"zero area", image.NewRGBA(image.Rect(0, 0, 0, 0))},
		{"zero height", image.NewRGBA(image.Rect(0, 0, 10, 0))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Preprocess(tt.img, 1500, 2, 50, 150)
			if !errors.Is(err, ErrInvalidImage) {
				t.Errorf("err = %v, want ErrInvalidImage", err)
			}
		})
	}
}

func TestDrawDetection(t *testing.T) {
	img := newDocumentImage(200, 160, 40, 30, 160, 130)
	corners := geometry.Corners{
		TL: geometry.Point{X: 40, Y: 30},
		TR: geometry.Point{X: 160, Y: 30},
		BR: geometry.Point{X: 160, Y: 130},
		BL: geometry.Point{X: 40, Y: 130},
	}

	out := DrawDetection(img, corners)

	// Corner markers are red discs.
	r, g, b, _ := out.At(40, 30).RGBA()
	if r>>8 != 255 || g>>8 != 0 || b>>8 != 0 {
		t.Errorf("corner marker color = (%d,%d,%d), want red", r>>8, g>>8, b>>8)
	}

	// Outline midpoints are green.
	r, g, b, _ = out.At(100, 30).RGBA()
	if r>>8 != 0 || g>>8 != 255 || b>>8 != 0 {
		t.Errorf("outline color = (%d,%d,%d), want green", r>>8, g>>8, b>>8)
	}

	// Source image untouched.
	r, g, b, _ = img.At(40, 30).RGBA()
	if r>>8 != 255 || g>>8 != 255 || b>>8 != 255 {
		t.Error("DrawDetection modified the source image")
	}
}
