package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/unclebandit/campaign-scheduler/internal/logx"
	"github.com/unclebandit/campaign-scheduler/internal/metrics"
)

// Observability tags each request with an id, records metrics and writes
// one http_access line.
func Observability(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rid := r.Header.Get("X-Request-ID")
		if rid == "" {
			rid = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", rid)
		ctx := logx.WithRequestID(r.Context(), rid)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(ctx))

		lat := time.Since(start).Seconds()
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		route := "unmatched"
		if rctx := chi.RouteContext(ctx); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}

		metrics.APIRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		metrics.APIRequestDuration.WithLabelValues(r.Method, route).Observe(lat)

		logx.FromContext(ctx).Infow("http_access",
			"method", r.Method,
			"route", route,
			"path", r.URL.Path,
			"status", status,
			"duration", lat,
			"bytes", ww.BytesWritten(),
		)
	})
}
