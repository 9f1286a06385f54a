package cli

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/jh125486/versiongate/pkg/client"
)

// Service holds global dependencies that can be injected into commands.
// It separates runtime dependencies from configuration (args).
type Service struct {
	Client *http.Client
	Stdout io.Writer
}

// NewService creates a new Service with default implementations.
// The HTTP client declares requested on every call and, when token is set,
// authenticates with it. Empty header names use the versioning defaults.
func NewService(token, requested, requestedHeader, recommendedHeader string) *Service {
	var transport http.RoundTripper = client.NewVersionTransport(requested, nil, requestedHeader, recommendedHeader)
	if token != "" {
		transport = client.NewAuthTransport(token, transport)
	}
	return &Service{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		Stdout: os.Stdout,
	}
}
