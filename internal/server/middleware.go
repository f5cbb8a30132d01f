package server

import (
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/freelancehub/brief-service/internal/apperr"
	"github.com/freelancehub/brief-service/internal/ratelimit"
	"github.com/freelancehub/brief-service/pkg/config"
	"github.com/freelancehub/brief-service/pkg/logger"
	"github.com/freelancehub/brief-service/pkg/metrics"
)

func newStructuredLogger(log *slog.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				log.Info("http request",
					"method", r.Method,
					"path", r.URL.Path,
					"status", ww.Status(),
					"bytes", ww.BytesWritten(),
					"duration_ms", time.Since(start).Milliseconds(),
					"correlation_id", logger.CorrelationIDFromContext(r.Context()),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}

func metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := chi.RouteContext(r.Context()).RoutePattern()
		metrics.ObserveHTTPRequest(r.Method, route, ww.Status(), time.Since(start))
	})
}

// rateLimitMiddleware enforces the per-client submission allowance. The
// settings are read from the runtime view on every request so config reloads
// take effect without a restart. Limiter failures fail open: a broken Redis
// must not block lead capture.
func rateLimitMiddleware(limiter ratelimit.Limiter, runtime *config.Runtime, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter == nil || runtime == nil {
				next.ServeHTTP(w, r)
				return
			}

			cfg := runtime.RateLimit()
			if cfg.SubmitLimit <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			key := "submit:" + clientIP(r)
			result, err := limiter.Check(r.Context(), key, cfg.SubmitLimit, cfg.SubmitWindow)
			if err != nil {
				log.Warn("rate limiter error", "key", key, "error", err)
				next.ServeHTTP(w, r)
				return
			}

			if !result.Allowed {
				retryAfter := int(time.Until(result.ResetAt).Seconds()) + 1
				appErr := apperr.NewRateLimitError(retryAfter)
				log.Warn("rate limit exceeded", "key", key)
				writeError(w, http.StatusTooManyRequests, appErr.UserMessage)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
