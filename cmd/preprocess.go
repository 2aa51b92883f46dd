package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scholarly-tools/paperverify/internal/imageprep"
)

func newPreprocessCmd() *cobra.Command {
	var (
		output  string
		denoise bool
	)

	cmd := &cobra.Command{
		Use:   "preprocess <image>",
		Short: "Prepare a scanned page image for OCR",
		Long: `Applies grayscale conversion, contrast stretching, and Otsu
binarization to a page image. Output is always PNG. If processing
fails, the original image bytes are passed through unchanged.`,
		Example: `  # Clean up a scanned page before OCR
  paperverify preprocess scan.jpg -o scan-clean.png

  # Also remove salt-and-pepper noise on small images
  paperverify preprocess scan.jpg -o scan-clean.png --denoise`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := imageprep.DefaultOptions()
			opts.Denoise = denoise

			data, err := imageprep.ProcessFile(cmd.Context(), args[0], opts)
			if err != nil {
				return fmt.Errorf("preprocessing %s: %w", args[0], err)
			}

			if output == "" {
				output = args[0] + ".png"
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", output, err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default <image>.png)")
	cmd.Flags().BoolVar(&denoise, "denoise", false, "apply 3x3 median denoising")

	return cmd
}
