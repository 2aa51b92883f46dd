package cmd

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/scholarly-tools/paperverify/internal/ocr"
	"github.com/scholarly-tools/paperverify/internal/pipeline"
)

func newExtractCmd(cfgFile *string) *cobra.Command {
	var pageImages []string

	cmd := &cobra.Command{
		Use:   "extract <pdf>",
		Short: "Extract title, first author, and key dates from a PDF",
		Long: `Classifies the PDF, picks the extraction strategy for its type, and
prints the extracted metadata as JSON. For scanned documents, pass
pre-rendered page images with --image to enable OCR.`,
		Example: `  # Extract metadata from a paper with a text layer
  paperverify extract paper.pdf

  # Extract from a scanned proof using OCR
  paperverify extract proof.pdf --image p1.png --image p2.png`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgFile)
			if err != nil {
				return err
			}

			opts := []pipeline.Option{}
			if len(pageImages) > 0 {
				opts = append(opts, pipeline.WithRecognizer(ocr.NewService(), cfg.OCR.Provider, cfg.OCR.Model))
			}

			analysis, err := pipeline.New(opts...).Analyze(cmd.Context(), args[0], pageImages)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(analysis)
		},
	}

	cmd.Flags().StringArrayVar(&pageImages, "image", nil, "pre-rendered page image (repeatable)")

	return cmd
}
