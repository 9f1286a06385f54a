package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/jh125486/versiongate/pkg/contextlog"
)

const (
	RequestIDHeader = "X-Request-ID"
	// RequestIDKey is the context key for storing the request ID
	RequestIDKey contextKey = "request-id"

	maxRequestIDLen = 128
)

// RequestID reuses a well-formed X-Request-ID from upstream or generates a UUID.
// The ID is echoed in the response and added to the request-scoped logger, so
// version rejections logged further down the chain can be correlated.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get(RequestIDHeader)
		if !validRequestID(requestID) {
			requestID = uuid.New().String()
		}

		ctx := context.WithValue(r.Context(), RequestIDKey, requestID)
		ctx = contextlog.WithAttrs(ctx, slog.String("request_id", requestID))

		w.Header().Set(RequestIDHeader, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// validRequestID accepts printable ASCII up to maxRequestIDLen bytes.
func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLen {
		return false
	}
	for i := range len(id) {
		if c := id[i]; c < 0x21 || c > 0x7e {
			return false
		}
	}
	return true
}
