package middleware

import (
	"log/slog"
	"net/http"

	"github.com/jh125486/versiongate/pkg/contextlog"
	"github.com/jh125486/versiongate/pkg/versioning"
)

type (
	// VersionErrorHandler writes the response for a rejected version.
	// Staged version headers are already set on w when it is called.
	VersionErrorHandler func(w http.ResponseWriter, r *http.Request, err *versioning.UnsupportedVersionError)

	// VersioningOption configures the Versioning middleware.
	VersioningOption func(*versioningConfig)

	versioningConfig struct {
		errorHandler VersionErrorHandler
	}
)

// WithErrorHandler replaces the default JSON error response.
func WithErrorHandler(h VersionErrorHandler) VersioningOption {
	return func(c *versioningConfig) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

// Versioning returns a middleware that negotiates the requested API version.
// The current version header is set on every response; requests the negotiator
// rejects never reach next.
func Versioning(n *versioning.Negotiator, opts ...VersioningOption) func(http.Handler) http.Handler {
	cfg := versioningConfig{errorHandler: WriteVersionError}
	for _, opt := range opts {
		opt(&cfg)
	}
	requestedHeader := n.RequestedHeader()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			d := n.Negotiate(r.Header.Get(requestedHeader))
			d.Apply(w.Header())
			w.Header().Add("Vary", requestedHeader)

			if d.Rejected() {
				cfg.errorHandler(w, r, d.Err)
				return
			}
			if recommended, ok := d.Recommended(); ok {
				ctx := r.Context()
				contextlog.From(ctx).DebugContext(ctx, "Client is below the recommended API version",
					slog.String("requested", r.Header.Get(requestedHeader)),
					slog.String("recommended", recommended),
				)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// WriteVersionError is the default VersionErrorHandler.
// It writes a 400 ErrorBody whose details carry the current version.
func WriteVersionError(w http.ResponseWriter, r *http.Request, err *versioning.UnsupportedVersionError) {
	ctx := r.Context()
	contextlog.From(ctx).DebugContext(ctx, "Rejected requested API version",
		slog.String("requested", err.Requested),
		slog.String("current", err.Current),
		slog.String("reason", err.Reason.String()),
	)

	WriteError(w, err.StatusCode(), err.Error(), err.Payload())
}
