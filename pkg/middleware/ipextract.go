package middleware

import (
	"context"
	"net"
	"net/http"
	"strings"

	"connectrpc.com/connect"
	"github.com/tomasen/realip"
)

type contextKey string

// RealIPKey is the context key for storing the real client IP address
const RealIPKey contextKey = "real-ip"

const (
	UnknownIP            = "unknown"
	XFFHeader            = "X-Forwarded-For"
	XRealIPHeader        = "X-Real-IP"
	CFConnectingIPHeader = "CF-Connecting-IP"
)

// StoreRealIP stores the client IP resolved by tomasen/realip in the request context.
func StoreRealIP(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), RealIPKey, realip.RealIP(r))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// IPExtractable is satisfied by connect requests.
type IPExtractable interface {
	Header() http.Header
	Peer() connect.Peer
}

// ClientIP resolves the caller of a Connect request, for log lines.
// The context value set by StoreRealIP wins, then proxy headers, then the peer address.
func ClientIP(ctx context.Context, req IPExtractable) string {
	if ip, ok := ctx.Value(RealIPKey).(string); ok && known(ip) {
		return ip
	}

	headers := req.Header()
	if xff := headers.Get(XFFHeader); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := strings.TrimSpace(first); known(ip) {
			return ip
		}
	}
	for _, h := range []string{XRealIPHeader, CFConnectingIPHeader} {
		if ip := headers.Get(h); known(ip) {
			return ip
		}
	}

	if addr := req.Peer().Addr; addr != "" {
		if ip, _, err := net.SplitHostPort(addr); err == nil {
			return ip
		}
		return addr
	}
	return UnknownIP
}

func known(ip string) bool {
	return ip != "" && ip != UnknownIP
}
