package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/jh125486/versiongate/pkg/contextlog"
)

// ResponseWriter wraps http.ResponseWriter to capture the status code
type ResponseWriter struct {
	http.ResponseWriter
	Status int
}

// WriteHeader captures the status code and writes it to the underlying ResponseWriter
func (rw *ResponseWriter) WriteHeader(code int) {
	rw.Status = code
	rw.ResponseWriter.WriteHeader(code)
}

// AccessLog logs one line per request once it completes. Besides method, path,
// status, duration and client IP it records the version the client asked for
// (requestedHeader) and the version the server answered with (versionHeader).
func AccessLog(requestedHeader, versionHeader string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := &ResponseWriter{ResponseWriter: w, Status: http.StatusOK}

			next.ServeHTTP(rw, r)

			ctx := r.Context()
			clientIP := r.RemoteAddr
			if realIP, ok := ctx.Value(RealIPKey).(string); ok && realIP != "" {
				clientIP = realIP
			}

			attrs := []any{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rw.Status),
				slog.Duration("duration", time.Since(start)),
				slog.String("client_ip", clientIP),
			}
			if v := r.Header.Get(requestedHeader); v != "" {
				attrs = append(attrs, slog.String("requested_version", v))
			}
			if v := rw.Header().Get(versionHeader); v != "" {
				attrs = append(attrs, slog.String("api_version", v))
			}
			contextlog.From(ctx).InfoContext(ctx, "HTTP request", attrs...)
		})
	}
}
