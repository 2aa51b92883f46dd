// Package cmd wires the paperverify CLI.
package cmd

import (
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/scholarly-tools/paperverify/internal/config"
)

func NewRootCmd() *cobra.Command {
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "paperverify",
		Short: "Verify downloaded academic PDFs against their source pages",
		Long: `Paperverify classifies downloaded PDFs (papers, acceptance emails,
proof documents), extracts their bibliographic metadata, and fuzzily
compares it against the metadata of the web page they were downloaded
from, flagging mismatched or duplicate downloads.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
			setupLogging()
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default paperverify.yaml)")

	cmd.AddCommand(newClassifyCmd())
	cmd.AddCommand(newExtractCmd(&cfgFile))
	cmd.AddCommand(newVerifyCmd(&cfgFile))
	cmd.AddCommand(newPreprocessCmd())
	cmd.AddCommand(newServeCmd(&cfgFile))
	cmd.AddCommand(newEvalCmd(&cfgFile))

	return cmd
}

func setupLogging() {
	level := slog.LevelInfo
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func loadConfig(cfgFile *string) (config.Config, error) {
	path := ""
	if cfgFile != nil {
		path = *cfgFile
	}
	return config.Load(path)
}
