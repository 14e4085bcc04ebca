package enhance

import (
	"fmt"
	"image"

	"github.com/anthonynsimon/bild/adjust"
	"github.com/anthonynsimon/bild/effect"
	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
)

// Color modes accepted by ApplyColorMode.
const (
	ModeColor     = "color"
	ModeGrayscale = "grayscale"
	ModeBW        = "bw"
)

// AdjustBrightnessContrast applies brightness and contrast changes, each in
// the range -100 to 100, where 0 leaves the image unchanged.
func AdjustBrightnessContrast(img image.Image, brightness, contrast float64) *image.RGBA {
	out := adjust.Brightness(img, brightness/100)
	return adjust.Contrast(out, contrast/100)
}

// Sharpen applies an unsharp mask. Strength 1.0 is a moderate document
// sharpening; 0 returns a plain copy.
func Sharpen(img image.Image, strength float64) *image.RGBA {
	if strength <= 0 {
		return effect.UnsharpMask(img, 0, 0)
	}
	return effect.UnsharpMask(img, 1.5, strength)
}

// Grayscale converts the image to single-channel luminance (stored as RGBA
// with equal channels).
func Grayscale(img image.Image) *image.RGBA {
	return effect.Grayscale(img)
}

// BlackWhite binarizes the image for crisp text documents. A threshold of 0
// selects one automatically using Otsu's method on the luminance histogram.
func BlackWhite(img image.Image, threshold uint8) *image.Gray {
	if threshold == 0 {
		threshold = otsuThreshold(effect.Grayscale(img))
	}
	return segment.Threshold(img, threshold)
}

// ApplyColorMode converts the image to the named output mode.
func ApplyColorMode(img image.Image, mode string) (image.Image, error) {
	switch mode {
	case ModeColor:
		return imaging.Clone(img), nil
	case ModeGrayscale:
		return Grayscale(img), nil
	case ModeBW:
		return BlackWhite(img, 0), nil
	default:
		return nil, fmt.Errorf("unknown color mode %q", mode)
	}
}

// Rotate turns the image clockwise by a multiple of 90 degrees. Other
// angles are rejected; arbitrary-angle deskew is not part of document
// output preparation.
func Rotate(img image.Image, degrees int) (image.Image, error) {
	switch ((degrees % 360) + 360) % 360 {
	case 0:
		return imaging.Clone(img), nil
	case 90:
		// disintegration's Rotate functions turn counter-clockwise.
		return imaging.Rotate270(img), nil
	case 180:
		return imaging.Rotate180(img), nil
	case 270:
		return imaging.Rotate90(img), nil
	default:
		return nil, fmt.Errorf("rotation must be a multiple of 90 degrees, got %d", degrees)
	}
}

// otsuThreshold picks the luminance level that minimizes intra-class
// variance between foreground and background, the classic choice for
// scanned text on paper.
//
// segment.Threshold paints pixels at or above the level white, so the
// returned level is the first bin of the bright class, one past the top of
// the dark class.
func otsuThreshold(gray *image.RGBA) uint8 {
	var hist [256]int
	bounds := gray.Bounds()
	total := bounds.Dx() * bounds.Dy()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := gray.Pix[(y-bounds.Min.Y)*gray.Stride:]
		for x := 0; x < bounds.Dx(); x++ {
			hist[row[x*4]]++
		}
	}

	var sum float64
	for i, n := range hist {
		sum += float64(i) * float64(n)
	}

	var sumB, wB float64
	bestVar := -1.0
	best := 128
	for t := 0; t < 256; t++ {
		wB += float64(hist[t])
		if wB == 0 {
			continue
		}
		wF := float64(total) - wB
		if wF == 0 {
			break
		}
		sumB += float64(t) * float64(hist[t])
		mB := sumB / wB
		mF := (sum - sumB) / wF
		between := wB * wF * (mB - mF) * (mB - mF)
		if between > bestVar {
			bestVar = between
			best = t
		}
	}
	if best >= 255 {
		return 255
	}
	return uint8(best + 1)
}
