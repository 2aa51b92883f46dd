package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/scholarly-tools/paperverify/internal/handlers"
	"github.com/scholarly-tools/paperverify/internal/ocr"
	"github.com/scholarly-tools/paperverify/internal/pipeline"
	"github.com/scholarly-tools/paperverify/internal/store"
	"github.com/scholarly-tools/paperverify/internal/webmeta"
)

func newServeCmd(cfgFile *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the verification API server",
		Long: `Starts the JSON API for classifying and verifying documents.

Routes:
  POST /api/classify   classify raw document text
  POST /api/verify     verify a PDF against its source page
  GET  /api/history    list recent verification records
  GET  /healthcheck    liveness probe`,
		Example: `  # Start on the configured address
  paperverify serve

  # Start on a custom address
  paperverify serve --addr :3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cfgFile)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.HTTPAddr = addr
			}

			history, err := store.Open(cfg.DBPath)
			if err != nil {
				return err
			}
			defer history.Close()

			p := pipeline.New(
				pipeline.WithFetcher(webmeta.NewWithTimeout(cfg.FetchTimeout)),
				pipeline.WithRecognizer(ocr.NewService(), cfg.OCR.Provider, cfg.OCR.Model),
				pipeline.WithRecorder(history),
			)

			mux := http.NewServeMux()
			handlers.New(p, history).Register(mux)

			server := &http.Server{
				Addr:    cfg.HTTPAddr,
				Handler: mux,
			}

			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Paperverify API listening", "addr", cfg.HTTPAddr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")

	return cmd
}
