package main

import (
	"fmt"
	"image"
	"log"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/papertrim/docscan/internal/enhance"
)

func enhanceCommand() *cobra.Command {
	var (
		output       string
		mode         string
		brightness   float64
		contrast     float64
		sharpen      float64
		rotate       int
		whiteBalance bool
	)

	cmd := &cobra.Command{
		Use:   "enhance <input>",
		Short: "Clean up a scanned document for reading or printing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			img, err := imaging.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}

			var out image.Image = img
			if rotate != 0 {
				out, err = enhance.Rotate(out, rotate)
				if err != nil {
					return err
				}
			}
			if whiteBalance {
				out = enhance.WhiteBalance(out)
			}
			if brightness != 0 || contrast != 0 {
				out = enhance.AdjustBrightnessContrast(out, brightness, contrast)
			}
			if sharpen > 0 {
				out = enhance.Sharpen(out, sharpen)
			}
			out, err = enhance.ApplyColorMode(out, mode)
			if err != nil {
				return err
			}

			if err := imaging.Save(out, output); err != nil {
				return fmt.Errorf("save %s: %w", output, err)
			}
			log.Printf("wrote enhanced document to %s", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "enhanced.png", "Output image path")
	cmd.Flags().StringVar(&mode, "mode", enhance.ModeColor, "Output color mode: color, grayscale, or bw")
	cmd.Flags().Float64Var(&brightness, "brightness", 0, "Brightness adjustment, -100 to 100")
	cmd.Flags().Float64Var(&contrast, "contrast", 0, "Contrast adjustment, -100 to 100")
	cmd.Flags().Float64Var(&sharpen, "sharpen", 0, "Unsharp mask strength, 0 disables")
	cmd.Flags().IntVar(&rotate, "rotate", 0, "Clockwise rotation in multiples of 90 degrees")
	cmd.Flags().BoolVar(&whiteBalance, "white-balance", false, "Remove a uniform color cast")

	return cmd
}
