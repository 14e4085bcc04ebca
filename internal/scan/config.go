package scan

// Config holds the tunable parameters of the scanning pipeline. The zero
// value of any field means "use the default"; construct via DefaultConfig
// and override selectively.
type Config struct {
	// MaxDimension bounds the longer side of the working image during
	// detection. Larger inputs are downscaled for performance; detected
	// corners are always mapped back to full resolution. Default 1500.
	MaxDimension int

	// BlurRadius is the Gaussian blur radius applied before edge
	// detection. Default 2 (a 5x5 kernel).
	BlurRadius float64

	// ThresholdLow and ThresholdHigh are the Canny hysteresis thresholds
	// (0-255). Defaults 50 and 150. Lower values find more edges at the
	// cost of noise.
	ThresholdLow  int
	ThresholdHigh int

	// ApproxEpsilonFraction scales the polygon approximation tolerance by
	// each contour's perimeter. Default 0.02.
	ApproxEpsilonFraction float64

	// MaxCandidates caps how many area-sorted contours are examined.
	// Documents smaller than the last retained contour are not found; this
	// is a deliberate cost bound. Default 5.
	MaxCandidates int

	// MinAreaFraction is the minimum document area relative to the image.
	// Default 0.20.
	MinAreaFraction float64

	// MinAspectRatio and MaxAspectRatio bound the plausible document
	// width/height ratio, rejecting extreme slivers. Defaults 0.2 and 8.
	MinAspectRatio float64
	MaxAspectRatio float64

	// BorderHex fills destination pixels that map outside the source
	// during rectification, as "#RRGGBB". Default white.
	BorderHex string

	// OutputWidth and OutputHeight force a fixed rectified size, for
	// standard document formats. Zero derives the size from the corner
	// geometry.
	OutputWidth  int
	OutputHeight int
}

// DefaultConfig returns the pipeline defaults.
func DefaultConfig() Config {
	return Config{
		MaxDimension:          1500,
		BlurRadius:            2,
		ThresholdLow:          50,
		ThresholdHigh:         150,
		ApproxEpsilonFraction: 0.02,
		MaxCandidates:         5,
		MinAreaFraction:       0.20,
		MinAspectRatio:        0.2,
		MaxAspectRatio:        8.0,
		BorderHex:             "#FFFFFF",
	}
}

// withDefaults fills zero-valued fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.MaxDimension == 0 {
		c.MaxDimension = def.MaxDimension
	}
	if c.BlurRadius == 0 {
		c.BlurRadius = def.BlurRadius
	}
	if c.ThresholdLow == 0 {
		c.ThresholdLow = def.ThresholdLow
	}
	if c.ThresholdHigh == 0 {
		c.ThresholdHigh = def.ThresholdHigh
	}
	if c.ApproxEpsilonFraction == 0 {
		c.ApproxEpsilonFraction = def.ApproxEpsilonFraction
	}
	if c.MaxCandidates == 0 {
		c.MaxCandidates = def.MaxCandidates
	}
	if c.MinAreaFraction == 0 {
		c.MinAreaFraction = def.MinAreaFraction
	}
	if c.MinAspectRatio == 0 {
		c.MinAspectRatio = def.MinAspectRatio
	}
	if c.MaxAspectRatio == 0 {
		c.MaxAspectRatio = def.MaxAspectRatio
	}
	if c.BorderHex == "" {
		c.BorderHex = def.BorderHex
	}
	return c
}

// StandardSizes maps document format names to pixel dimensions at 300 DPI,
// usable as fixed rectification output sizes.
var StandardSizes = map[string][2]int{
	"A4":     {2480, 3508},
	"LETTER": {2550, 3300},
	"LEGAL":  {2550, 4200},
	"A3":     {3508, 4961},
}
