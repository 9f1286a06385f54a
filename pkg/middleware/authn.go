package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/jh125486/versiongate/pkg/contextlog"
)

const bearerPrefix = "Bearer "

// AuthMiddleware returns a middleware that requires "Authorization: Bearer {token}".
// Failures end the request with a 401 ErrorBody and a Bearer challenge.
func AuthMiddleware(token string) func(http.Handler) http.Handler {
	want := []byte(token)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			reason := checkBearer(r.Header.Get("Authorization"), want)
			if reason == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			contextlog.From(ctx).WarnContext(ctx, "Authentication failed: "+reason)
			w.Header().Set("WWW-Authenticate", `Bearer realm="api"`)
			WriteError(w, http.StatusUnauthorized, reason, nil)
		})
	}
}

// checkBearer returns why header does not carry the wanted token, or "" when it does.
func checkBearer(header string, want []byte) string {
	switch {
	case header == "":
		return "missing authorization header"
	case !strings.HasPrefix(header, bearerPrefix):
		return "invalid authorization header format"
	case subtle.ConstantTimeCompare([]byte(header[len(bearerPrefix):]), want) != 1:
		return "invalid token"
	default:
		return ""
	}
}
