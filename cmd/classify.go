package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scholarly-tools/paperverify/internal/classify"
	"github.com/scholarly-tools/paperverify/internal/pdfinfo"
)

func newClassifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <pdf>",
		Short: "Classify a PDF as paper, acceptance email, or proof document",
		Example: `  # Classify a downloaded PDF
  paperverify classify ~/Downloads/paper.pdf`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := pdfinfo.Read(args[0])
			if err != nil {
				return fmt.Errorf("reading PDF: %w", err)
			}

			result := classify.Classify(info.Text, classify.Metadata{
				Title:  info.Title,
				Author: info.Author,
			})

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		},
	}
	return cmd
}
