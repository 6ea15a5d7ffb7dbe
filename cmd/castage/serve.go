package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	gojson "github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/reoring/castage"
	"github.com/reoring/castage/internal/registry"
	"github.com/reoring/castage/middleware"
)

func newServeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve POST /check/{type} over HTTP",
		Long: `Starts an HTTP server that casts JSON request bodies with the named caster.
Valid bodies are echoed back as {"ok": true, "value": ...}; invalid ones get 422
with the casting errors. Prometheus metrics are exposed on /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			reg := prometheus.NewRegistry()
			srv := &http.Server{
				Addr:              a.cfg.Addr,
				Handler:           newHandler(a.registry, a.logger, reg, !a.cfg.Exhaustive),
				ReadHeaderTimeout: 10 * time.Second,
			}

			serverErrors := make(chan error, 1)
			go func() {
				a.logger.Info("starting server", "addr", srv.Addr)
				serverErrors <- srv.ListenAndServe()
			}()

			select {
			case err := <-serverErrors:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return fmt.Errorf("server: %w", err)
			case <-ctx.Done():
				a.logger.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}
	cmd.Flags().String("addr", ":8080", "listen address")
	cmd.Flags().Bool("all", false, "report every error instead of the first")
	return cmd
}

// newHandler builds the router. failFast selects Cast over Parse for
// requests that do not pass ?all.
func newHandler(types *registry.Registry, logger *slog.Logger, reg *prometheus.Registry, failFast bool) http.Handler {
	metrics := middleware.NewMetrics(reg)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte("ok\n"))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Get("/types", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"types": types.Names()})
	})
	r.Post("/check/{type}", func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, "type")
		c, err := types.Lookup(name)
		if err != nil {
			logger.Warn("check: unknown type", "type", name, "error", err)
			writeJSON(w, http.StatusNotFound, map[string]any{"error": err.Error()})
			return
		}
		opts := []middleware.Option{
			middleware.WithLogger(logger.With("request_id", chimw.GetReqID(req.Context()))),
			middleware.WithMetrics(metrics),
		}
		fast := failFast
		if all := req.URL.Query().Get("all"); all != "" {
			fast = all == "false" || all == "0"
		}
		if fast {
			opts = append(opts, middleware.WithFailFast())
		}
		middleware.Validate(castage.Erase(c), opts...)(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			v, _ := middleware.FromContext[any](req.Context())
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "value": v})
		})).ServeHTTP(w, req)
	})
	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := gojson.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
