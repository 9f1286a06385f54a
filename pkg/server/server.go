package server

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jh125486/versiongate/pkg/contextlog"
	"github.com/jh125486/versiongate/pkg/middleware"
	"github.com/jh125486/versiongate/pkg/rpc"
	"github.com/jh125486/versiongate/pkg/versioning"
)

const (
	contentTypeHeader = "Content-Type"
	jsonContentType   = "application/json"
	shutdownTimeout   = 5 * time.Second
)

type (
	// Config contains the configuration required to start the server.
	Config struct {
		Port       string
		Token      string
		Negotiator *versioning.Negotiator
	}

	// PolicyResponse is the body of GET /api/policy.
	PolicyResponse struct {
		Current           string `json:"current"`
		Minimum           string `json:"minimum,omitempty"`
		Recommended       string `json:"recommended,omitempty"`
		Compatible        string `json:"compatible"`
		VersionHeader     string `json:"versionHeader"`
		RequestedHeader   string `json:"requestedHeader"`
		RecommendedHeader string `json:"recommendedHeader"`
	}
)

// tlsConfig configures TLS 1.2 with ciphers compatible with corporate proxies.
// This ensures compatibility with older corporate proxy infrastructure that may not support TLS 1.3.
func tlsConfig() *tls.Config {
	//#nosec:G402 // This is needed to get around proxies that don't support TLS 1.3
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

// NewHandler builds the server's routes.
//
//	GET /health        never version-gated
//	GET /api/policy    version-gated, optionally bearer-authenticated
//	Connect GetVersion version-gated by the Connect interceptor
func NewHandler(cfg Config) http.Handler {
	n := cfg.Negotiator
	policy := n.Config()
	accessLog := middleware.AccessLog(policy.RequestedHeader, policy.VersionHeader)
	mux := http.NewServeMux()

	api := http.NewServeMux()
	api.HandleFunc("GET /api/policy", policyHandler(policy))

	var gated http.Handler = api
	if cfg.Token != "" {
		gated = middleware.AuthMiddleware(cfg.Token)(gated)
	}
	gated = middleware.Versioning(n)(gated)
	mux.Handle("/api/", middleware.RequestID(accessLog(middleware.StoreRealIP(gated))))

	rpcPath, rpcHandler := rpc.NewVersionService(n)
	mux.Handle(rpcPath, middleware.RequestID(accessLog(middleware.StoreRealIP(rpcHandler))))

	// Health check endpoint for load balancers and monitoring
	mux.Handle("GET /health", middleware.RequestID(accessLog(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set(contentTypeHeader, jsonContentType)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"healthy","timestamp":"` + time.Now().Format(time.RFC3339) + `"}`))
	}))))

	return mux
}

func policyHandler(cfg versioning.Config) http.HandlerFunc {
	body := PolicyResponse{
		Current:           cfg.Current,
		Minimum:           cfg.Minimum,
		Recommended:       cfg.Recommended,
		Compatible:        cfg.Compatible,
		VersionHeader:     cfg.VersionHeader,
		RequestedHeader:   cfg.RequestedHeader,
		RecommendedHeader: cfg.RecommendedHeader,
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(contentTypeHeader, jsonContentType)
		if err := json.NewEncoder(w).Encode(body); err != nil {
			ctx := r.Context()
			contextlog.From(ctx).ErrorContext(ctx, "Failed to encode policy", slog.Any("error", err))
		}
	}
}

// Start initializes and runs the HTTP server on the configured port.
// It gracefully shuts down on context cancellation or when the listener returns an error.
func Start(ctx context.Context, cfg Config) error {
	if cfg.Negotiator == nil {
		return errors.New("server: negotiator is required")
	}
	contextlog.From(ctx).InfoContext(ctx, "Server will start on port", slog.String("port", cfg.Port))
	var lc net.ListenConfig
	lis, err := lc.Listen(ctx, "tcp", ":"+cfg.Port)
	if err != nil {
		return err
	}
	return Serve(ctx, lis, cfg)
}

// Serve runs the server on lis until ctx is cancelled.
func Serve(ctx context.Context, lis net.Listener, cfg Config) error {
	srv := &http.Server{
		Handler:           NewHandler(cfg),
		ReadHeaderTimeout: 10 * time.Second, // Prevent Slowloris attacks
		TLSConfig:         tlsConfig(),
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}
	contextlog.From(ctx).InfoContext(ctx, "HTTP server listening",
		slog.String("addr", lis.Addr().String()),
		slog.String("current_version", cfg.Negotiator.Config().Current),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(lis); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		// Use a fresh context for shutdown since the original is already cancelled
		shutCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}
