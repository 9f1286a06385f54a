package client

import (
	"crypto/tls"
	"log/slog"
	"net/http"

	"github.com/jh125486/versiongate/pkg/contextlog"
	"github.com/jh125486/versiongate/pkg/versioning"
)

// AuthTransport injects an Authorization header for every outgoing request.
type AuthTransport struct {
	base  http.RoundTripper
	token string
}

// NewAuthTransport creates a new AuthTransport with the given token.
// If base is nil, defaultTLSTransport() is used.
func NewAuthTransport(token string, base http.RoundTripper) *AuthTransport {
	if base == nil {
		base = defaultTLSTransport()
	}
	return &AuthTransport{
		base:  base,
		token: token,
	}
}

// RoundTrip implements http.RoundTripper by adding an Authorization header to each request.
func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clone request to avoid mutating the original
	clone := req.Clone(req.Context())
	clone.Header.Set("Authorization", "Bearer "+t.token)
	return t.base.RoundTrip(clone)
}

// VersionTransport declares the client's API version on every outgoing request
// and warns when the server recommends an upgrade.
type VersionTransport struct {
	base              http.RoundTripper
	version           string
	requestedHeader   string
	recommendedHeader string
}

// NewVersionTransport creates a VersionTransport declaring version.
// Empty header names use the versioning defaults; a nil base uses defaultTLSTransport().
func NewVersionTransport(version string, base http.RoundTripper, requestedHeader, recommendedHeader string) *VersionTransport {
	if base == nil {
		base = defaultTLSTransport()
	}
	if requestedHeader == "" {
		requestedHeader = versioning.DefaultRequestedHeader
	}
	if recommendedHeader == "" {
		recommendedHeader = versioning.DefaultRecommendedHeader
	}
	return &VersionTransport{
		base:              base,
		version:           version,
		requestedHeader:   requestedHeader,
		recommendedHeader: recommendedHeader,
	}
}

// RoundTrip implements http.RoundTripper.
func (t *VersionTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if t.version != "" {
		clone.Header.Set(t.requestedHeader, t.version)
	}

	resp, err := t.base.RoundTrip(clone)
	if err != nil {
		return nil, err
	}

	if recommended := resp.Header.Get(t.recommendedHeader); recommended != "" {
		ctx := req.Context()
		contextlog.From(ctx).WarnContext(ctx, "Server recommends a newer API version",
			slog.String("requested", t.version),
			slog.String("recommended", recommended),
			slog.String("url", req.URL.Redacted()),
		)
	}
	return resp, nil
}

// defaultTLSTransport clones http.DefaultTransport with a TLS config that mirrors the
// server's downgraded TLS settings so clients can communicate through strict proxies.
func defaultTLSTransport() *http.Transport {
	if transport, ok := http.DefaultTransport.(*http.Transport); ok {
		clone := transport.Clone()
		clone.TLSClientConfig = clientTLSConfig()
		return clone
	}
	return &http.Transport{TLSClientConfig: clientTLSConfig()}
}

// clientTLSConfig matches the server TLS policy (TLS 1.2 + modern cipher suites) to keep
// HTTP and Connect requests compatible with corporate middleboxes that block TLS 1.3.
func clientTLSConfig() *tls.Config {
	return &tls.Config{
		MinVersion: tls.VersionTLS12,
		CipherSuites: []uint16{
			tls.TLS_ECDHE_RSA_WITH_AES_128_GCM_SHA256,
			tls.TLS_ECDHE_RSA_WITH_AES_256_GCM_SHA384,
			tls.TLS_ECDHE_ECDSA_WITH_AES_128_GCM_SHA256,
			tls.TLS_ECDHE_ECDSA_WITH_AES_256_GCM_SHA384,
		},
	}
}
