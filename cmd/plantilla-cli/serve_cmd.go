package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	plantilla "github.com/goliatone/go-plantilla"
	"github.com/goliatone/go-plantilla/components/personas"
)

func newServeCmd(flags *rootFlags) *cobra.Command {
	var (
		addr    string
		timeout time.Duration
	)
	cmd := &cobra.Command{
		Use:   "servir",
		Short: "Sirve la vista de personas por HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := flags.load(cmd)
			if err != nil {
				return err
			}
			defer app.Close()
			if addr == "" {
				addr = app.Config.Server.Addr
			}

			handler, mount := newRouter(app, timeout)
			srv := &http.Server{
				Addr:              addr,
				Handler:           handler,
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				app.Logger.Info("serving personas", zap.String("addr", addr), zap.String("mount", mount))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			app.Logger.Info("shutting down")
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (defaults to server.addr)")
	cmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "per-request timeout")
	return cmd
}

// newRouter mounts the persona component under the configured base path
// next to a health probe.
func newRouter(app *plantilla.App, timeout time.Duration) (http.Handler, string) {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if timeout > 0 {
		r.Use(middleware.Timeout(timeout))
	}
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	comp := app.Component(personas.WithTimeout(timeout))
	mount := personas.MountPath(app.Config.Server.BasePath)
	prefix := strings.TrimSuffix(mount, "/")
	if prefix == "" {
		prefix = "/"
	}
	r.Mount(prefix, comp.Handler())
	return r, mount
}
