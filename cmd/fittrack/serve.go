package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	adapthttp "fittrack/internal/adapter/http"
	"fittrack/internal/seed"
)

func newServeCmd(load loader) *cobra.Command {
	var addr string
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the local HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return withEnv(ctx, load, func(e *env) error {
				if _, err := seed.Run(ctx, e.db, e.logger); err != nil {
					return err
				}
				if addr == "" {
					addr = e.cfg.HTTPAddress
				}
				srv := adapthttp.New(adapthttp.Deps{
					Store:         e.store,
					Programs:      e.db,
					ExerciseTypes: e.db,
					Sessions:      e.db,
					Achievements:  e.db,
					Progress:      e.progress,
					Measurements:  e.measurements,
					Profiles:      e.profiles,
					Engine:        e.engine(),
					TickInterval:  e.cfg.TickInterval,
					Logger:        e.logger,
				})
				defer srv.Close()

				httpSrv := &http.Server{
					Addr:              addr,
					Handler:           srv.Handler(),
					ReadHeaderTimeout: 5 * time.Second,
				}
				errCh := make(chan error, 1)
				go func() {
					e.logger.Printf("listening on %s", addr)
					errCh <- httpSrv.ListenAndServe()
				}()

				select {
				case err := <-errCh:
					if !errors.Is(err, http.ErrServerClosed) {
						return err
					}
					return nil
				case <-ctx.Done():
				}
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return httpSrv.Shutdown(shutdownCtx)
			})
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (env HTTP_ADDRESS)")
	return cmd
}
