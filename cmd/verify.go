package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scholarly-tools/paperverify/internal/ocr"
	"github.com/scholarly-tools/paperverify/internal/pipeline"
	"github.com/scholarly-tools/paperverify/internal/store"
	"github.com/scholarly-tools/paperverify/internal/webmeta"
)

func newVerifyCmd(cfgFile *string) *cobra.Command {
	var (
		sourceURL  string
		pageImages []string
		noHistory  bool
	)

	cmd := &cobra.Command{
		Use:   "verify <pdf>",
		Short: "Verify a downloaded PDF against its source web page",
		Long: `Fetches bibliographic metadata from the page the PDF was downloaded
from, extracts metadata from the PDF itself, and reports per-field
matches. Earlier verifications of the same title are reported as
duplicates.`,
		Example: `  # Verify a download against its landing page
  paperverify verify paper.pdf --url https://journal.example.org/article/42`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if sourceURL == "" {
				return fmt.Errorf("--url is required")
			}

			cfg, err := loadConfig(cfgFile)
			if err != nil {
				return err
			}

			opts := []pipeline.Option{
				pipeline.WithFetcher(webmeta.NewWithTimeout(cfg.FetchTimeout)),
				pipeline.WithRecognizer(ocr.NewService(), cfg.OCR.Provider, cfg.OCR.Model),
			}
			if !noHistory {
				history, err := store.Open(cfg.DBPath)
				if err != nil {
					return fmt.Errorf("opening history database: %w", err)
				}
				defer history.Close()
				opts = append(opts, pipeline.WithRecorder(history))
			}

			report, err := pipeline.New(opts...).VerifyAgainstURL(cmd.Context(), args[0], sourceURL, pageImages)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			if err := enc.Encode(report); err != nil {
				return err
			}

			if !report.Result.Pass() {
				cmd.SilenceUsage = true
				return fmt.Errorf("verification failed: one or more fields did not match")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&sourceURL, "url", "u", "", "URL of the page the PDF was downloaded from")
	cmd.Flags().StringArrayVar(&pageImages, "image", nil, "pre-rendered page image for OCR (repeatable)")
	cmd.Flags().BoolVar(&noHistory, "no-history", false, "skip duplicate detection and history persistence")

	return cmd
}
