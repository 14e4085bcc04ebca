package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/papertrim/docscan/internal/detection"
	"github.com/papertrim/docscan/internal/geometry"
	"github.com/papertrim/docscan/internal/rectify"
	"github.com/papertrim/docscan/internal/scan"
)

func scanCommand() *cobra.Command {
	var (
		output       string
		preview      string
		corners      string
		size         string
		border       string
		maxDimension int
		lowThresh    int
		highThresh   int
		epsilon      float64
		minArea      float64
	)

	cmd := &cobra.Command{
		Use:   "scan <input>",
		Short: "Detect a document in a photo and output the straightened page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := imaging.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}

			cfg := scan.DefaultConfig()
			cfg.MaxDimension = maxDimension
			cfg.ThresholdLow = lowThresh
			cfg.ThresholdHigh = highThresh
			cfg.ApproxEpsilonFraction = epsilon
			cfg.MinAreaFraction = minArea
			cfg.BorderHex = border
			if size != "" {
				dims, ok := scan.StandardSizes[strings.ToUpper(size)]
				if !ok {
					return fmt.Errorf("unknown size %q (available: %s)", size, strings.Join(sizeNames(), ", "))
				}
				cfg.OutputWidth, cfg.OutputHeight = dims[0], dims[1]
			}
			s := scan.New(cfg)
			ctx := context.Background()

			var res *rectify.Result
			if corners != "" {
				pts, err := parseCorners(corners)
				if err != nil {
					return err
				}
				res, err = s.Rectify(ctx, img, pts)
				if err != nil {
					return decorateScanError(err)
				}
			} else {
				res, err = s.Scan(ctx, img)
				if err != nil {
					return decorateScanError(err)
				}
			}

			log.Printf("document corners: TL=%.0f,%.0f TR=%.0f,%.0f BR=%.0f,%.0f BL=%.0f,%.0f",
				res.Corners.TL.X, res.Corners.TL.Y, res.Corners.TR.X, res.Corners.TR.Y,
				res.Corners.BR.X, res.Corners.BR.Y, res.Corners.BL.X, res.Corners.BL.Y)

			if preview != "" {
				if err := imaging.Save(s.Preview(img, res.Corners), preview); err != nil {
					return fmt.Errorf("save preview %s: %w", preview, err)
				}
				log.Printf("wrote detection preview to %s", preview)
			}

			if err := imaging.Save(res.Image, output); err != nil {
				return fmt.Errorf("save %s: %w", output, err)
			}
			log.Printf("wrote %dx%d rectified document to %s",
				res.Image.Bounds().Dx(), res.Image.Bounds().Dy(), output)
			return nil
		},
	}

	def := scan.DefaultConfig()
	cmd.Flags().StringVarP(&output, "output", "o", "scan.png", "Output image path")
	cmd.Flags().StringVar(&preview, "preview", "", "Also write the source image with the detected outline drawn on it")
	cmd.Flags().StringVar(&corners, "corners", "", "Manual corner override as \"x,y;x,y;x,y;x,y\" (skips detection)")
	cmd.Flags().StringVar(&size, "size", "", "Fixed output format: "+strings.Join(sizeNames(), ", "))
	cmd.Flags().StringVar(&border, "border", def.BorderHex, "Fill color for pixels outside the source, as #RRGGBB")
	cmd.Flags().IntVar(&maxDimension, "max-dimension", def.MaxDimension, "Longest side of the working image during detection")
	cmd.Flags().IntVar(&lowThresh, "low", def.ThresholdLow, "Canny low hysteresis threshold (0-255)")
	cmd.Flags().IntVar(&highThresh, "high", def.ThresholdHigh, "Canny high hysteresis threshold (0-255)")
	cmd.Flags().Float64Var(&epsilon, "epsilon", def.ApproxEpsilonFraction, "Polygon approximation tolerance as a fraction of contour perimeter")
	cmd.Flags().Float64Var(&minArea, "min-area", def.MinAreaFraction, "Minimum document area as a fraction of the image")

	return cmd
}

// decorateScanError appends the recovery step to the recoverable pipeline
// errors, whichever path (automatic or manual corners) produced them.
func decorateScanError(err error) error {
	switch {
	case errors.Is(err, detection.ErrNoDocument):
		return fmt.Errorf("%w; pass --corners \"x,y;x,y;x,y;x,y\" to set them manually", err)
	case errors.Is(err, rectify.ErrDegenerateQuad):
		return fmt.Errorf("%w; adjust the corners and retry", err)
	default:
		return err
	}
}

// parseCorners parses "x,y;x,y;x,y;x,y" into four points. Order does not
// matter; the pipeline orders them.
func parseCorners(s string) ([4]geometry.Point, error) {
	var pts [4]geometry.Point
	parts := strings.Split(s, ";")
	if len(parts) != 4 {
		return pts, fmt.Errorf("corners: want 4 points separated by ';', got %d", len(parts))
	}
	for i, part := range parts {
		xy := strings.Split(strings.TrimSpace(part), ",")
		if len(xy) != 2 {
			return pts, fmt.Errorf("corners: point %d must be \"x,y\", got %q", i+1, part)
		}
		x, err := strconv.ParseFloat(strings.TrimSpace(xy[0]), 64)
		if err != nil {
			return pts, fmt.Errorf("corners: point %d: %w", i+1, err)
		}
		y, err := strconv.ParseFloat(strings.TrimSpace(xy[1]), 64)
		if err != nil {
			return pts, fmt.Errorf("corners: point %d: %w", i+1, err)
		}
		pts[i] = geometry.Point{X: x, Y: y}
	}
	return pts, nil
}

func sizeNames() []string {
	names := make([]string, 0, len(scan.StandardSizes))
	for name := range scan.StandardSizes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
