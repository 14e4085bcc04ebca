package enhance

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	"github.com/lucasb-eyer/go-colorful"
)

// WhiteBalance removes a uniform color cast, the usual artifact of
// photographing paper under warm indoor light.
//
// The cast is estimated as the mean chroma (a*, b* in Lab space) over a
// sparse sample grid, then subtracted from every pixel. Neutral paper ends
// up neutral; saturated content shifts by the same small offset, which is
// acceptable for document output.
func WhiteBalance(img image.Image) *image.RGBA {
	src := imaging.Clone(img)
	w := src.Bounds().Dx()
	h := src.Bounds().Dy()
	if w == 0 || h == 0 {
		return &image.RGBA{Rect: src.Bounds()}
	}

	step := w * h / 10000
	if step < 1 {
		step = 1
	}
	var sumA, sumB float64
	n := 0
	for i := 0; i < w*h; i += step {
		x, y := i%w, i/w
		c, ok := colorful.MakeColor(src.NRGBAAt(x, y))
		if !ok {
			continue
		}
		_, a, b := c.Lab()
		sumA += a
		sumB += b
		n++
	}
	if n == 0 {
		return rgbaFromNRGBA(src)
	}
	castA := sumA / float64(n)
	castB := sumB / float64(n)

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c, ok := colorful.MakeColor(src.NRGBAAt(x, y))
			if !ok {
				continue
			}
			l, a, b := c.Lab()
			corrected := colorful.Lab(l, a-castA, b-castB).Clamped()
			r, g, bl := corrected.RGB255()
			out.SetRGBA(x, y, color.RGBA{R: r, G: g, B: bl, A: src.NRGBAAt(x, y).A})
		}
	}
	return out
}

func rgbaFromNRGBA(src *image.NRGBA) *image.RGBA {
	out := image.NewRGBA(src.Bounds())
	for y := src.Bounds().Min.Y; y < src.Bounds().Max.Y; y++ {
		for x := src.Bounds().Min.X; x < src.Bounds().Max.X; x++ {
			out.Set(x, y, src.NRGBAAt(x, y))
		}
	}
	return out
}
