package api

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/wgomg/kwextract/internal/metrics"
	"github.com/wgomg/kwextract/internal/utils"
)

// RequestID keeps the caller's X-Request-Id or assigns a new UUID, and
// echoes it in the response.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reqID := r.Header.Get(chimiddleware.RequestIDHeader)
		if reqID == "" {
			reqID = uuid.NewString()
		}

		w.Header().Set(chimiddleware.RequestIDHeader, reqID)
		ctx := context.WithValue(r.Context(), chimiddleware.RequestIDKey, reqID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Logging logs every completed request and counts it by route and status.
func Logging(logger *utils.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				route := r.URL.Path
				if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
					route = rctx.RoutePattern()
				}
				metrics.ObserveRequest(route, strconv.Itoa(ww.Status()))

				logger.Info(
					"[%s] %s %s -> %d (%d bytes, %s)",
					chimiddleware.GetReqID(r.Context()),
					r.Method,
					r.URL.Path,
					ww.Status(),
					ww.BytesWritten(),
					time.Since(start),
				)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
