// Package middleware validates JSON request bodies with a castage caster
// before they reach a net/http handler.
package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	gojson "github.com/goccy/go-json"

	"github.com/reoring/castage"
	"github.com/reoring/castage/codec"
)

// DefaultMaxBodyBytes caps the request body read by Validate.
const DefaultMaxBodyBytes = 1 << 20

// ctxKeyValue is a typed context key for storing the cast value.
// Using a generic struct type ensures uniqueness per T.
type ctxKeyValue[T any] struct{}

// NewContext attaches a validated value to the context.
func NewContext[T any](ctx context.Context, v T) context.Context {
	return context.WithValue(ctx, ctxKeyValue[T]{}, v)
}

// FromContext retrieves the value stored by Validate[T].
func FromContext[T any](ctx context.Context) (T, bool) {
	v, ok := ctx.Value(ctxKeyValue[T]{}).(T)
	return v, ok
}

type config struct {
	logger       *slog.Logger
	metrics      *Metrics
	failFast     bool
	maxBodyBytes int64
}

// Option configures Validate.
type Option func(*config)

// WithLogger logs rejected requests at Info and malformed bodies at Warn.
func WithLogger(l *slog.Logger) Option { return func(c *config) { c.logger = l } }

// WithMetrics counts requests and validation failures.
func WithMetrics(m *Metrics) Option { return func(c *config) { c.metrics = m } }

// WithFailFast reports only the first error (Cast instead of Parse).
func WithFailFast() Option { return func(c *config) { c.failFast = true } }

// WithMaxBodyBytes overrides DefaultMaxBodyBytes.
func WithMaxBodyBytes(n int64) Option { return func(c *config) { c.maxBodyBytes = n } }

// ErrorPayload shapes casting errors for JSON responses.
func ErrorPayload(errs castage.Errors) map[string]any {
	return map[string]any{"errors": errs}
}

// Validate decodes the JSON body and casts it with c. On success the typed
// value is stored in the request context (see FromContext). Invalid
// documents get 422 with ErrorPayload; bodies that are not JSON get 400.
func Validate[T any](c castage.Caster[T], opts ...Option) func(http.Handler) http.Handler {
	cfg := config{maxBodyBytes: DefaultMaxBodyBytes}
	for _, o := range opts {
		o(&cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.New(slog.DiscardHandler)
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, cfg.maxBodyBytes))
			if err != nil {
				status := http.StatusBadRequest
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					status = http.StatusRequestEntityTooLarge
				}
				cfg.metrics.request(outcomeBadRequest)
				cfg.logger.Warn("Validate: cannot read body", "error", err, "caster", c.Name())
				writeJSON(w, status, map[string]any{"error": err.Error()})
				return
			}
			doc, err := codec.DecodeJSON(body)
			if err != nil {
				cfg.metrics.request(outcomeBadRequest)
				cfg.logger.Warn("Validate: invalid JSON body", "error", err, "caster", c.Name())
				writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid JSON: " + err.Error()})
				return
			}
			v, errs := run(c, doc, cfg.failFast)
			if len(errs) > 0 {
				cfg.metrics.failed(errs)
				cfg.logger.Info("Validate: rejected", "caster", c.Name(), "errors", len(errs), "first", errs[0].Path.String())
				writeJSON(w, http.StatusUnprocessableEntity, ErrorPayload(errs))
				return
			}
			cfg.metrics.request(outcomeOK)
			next.ServeHTTP(w, r.WithContext(NewContext(r.Context(), v)))
		})
	}
}

func run[T any](c castage.Caster[T], doc any, failFast bool) (T, castage.Errors) {
	if failFast {
		r := c.Cast(doc)
		if r.IsErr() {
			var zero T
			return zero, castage.Errors{r.Error()}
		}
		return r.Value(), nil
	}
	r := c.Parse(doc)
	if r.IsErr() {
		var zero T
		return zero, r.Error()
	}
	return r.Value(), nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := gojson.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}
