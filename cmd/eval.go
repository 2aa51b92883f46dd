package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scholarly-tools/paperverify/internal/eval"
)

func newEvalCmd(cfgFile *string) *cobra.Command {
	var (
		datasetPath string
		sampleSize  int
		noSave      bool
	)

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Measure classification and extraction accuracy",
		Long: `Runs the classification and extraction pipeline over a labeled
dataset (.parquet or .jsonl) and reports per-field accuracy. Field
matches are judged with the same fuzzy rules used for verification.`,
		Example: `  # Evaluate against the configured dataset
  paperverify eval

  # Evaluate a 100-record sample of another dataset
  paperverify eval --dataset labeled.jsonl --sample 100`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgFile)
			if err != nil {
				return err
			}
			if datasetPath == "" {
				datasetPath = cfg.Eval.DatasetPath
			}
			if datasetPath == "" {
				return fmt.Errorf("no dataset: pass --dataset or set eval.dataset_path")
			}

			records, err := eval.NewLoader(datasetPath).LoadSample(sampleSize)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return fmt.Errorf("dataset %s contains no records", datasetPath)
			}

			summary, err := eval.NewRunner().Run(cmd.Context(), records, datasetPath)
			if err != nil {
				return err
			}

			summary.PrintSummary(cmd.OutOrStdout())

			if !noSave {
				path, err := eval.SaveToYAML(summary, cfg.Eval.ResultsDir)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), "Results saved to:", path)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&datasetPath, "dataset", "d", "", "labeled dataset file (.parquet or .jsonl)")
	cmd.Flags().IntVarP(&sampleSize, "sample", "s", 0, "evaluate only the first N records (0 = all)")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "print the summary without writing a results file")

	return cmd
}
