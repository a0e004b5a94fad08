package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/nguyentantai21042004/clipnamer/internal/httpapi"
)

const shutdownTimeout = 15 * time.Second

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			proc, err := ctx.processor()
			if err != nil {
				return err
			}
			log := ctx.log()

			handler := httpapi.NewHandler(proc, sessionProviders(cfg), cfg.Naming, log)

			srv := &http.Server{
				Addr:              cfg.Server.Addr,
				Handler:           httpapi.NewRouter(handler),
				ReadHeaderTimeout: 10 * time.Second,
			}

			runCtx := cmd.Context()
			errChan := make(chan error, 1)
			go func() {
				log.Info(runCtx, "HTTP API listening on %s (storage: %s, transcriber: %s)",
					cfg.Server.Addr, cfg.Storage.Backend, cfg.Transcriber.Backend)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errChan <- err
				}
				close(errChan)
			}()

			select {
			case err := <-errChan:
				return err
			case <-runCtx.Done():
				log.Info(runCtx, "Shutdown signal received")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return err
			}
			log.Info(shutdownCtx, "HTTP API stopped")
			return nil
		},
	}
}
