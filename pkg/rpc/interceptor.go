// Package rpc exposes API version negotiation over Connect.
package rpc

import (
	"context"
	"errors"
	"log/slog"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/jh125486/versiongate/pkg/contextlog"
	"github.com/jh125486/versiongate/pkg/middleware"
	"github.com/jh125486/versiongate/pkg/versioning"
)

// NewVersionInterceptor negotiates the requested API version on every unary
// handler call. Rejections become CodeInvalidArgument errors whose metadata
// carries the version headers and whose detail carries the current version.
func NewVersionInterceptor(n *versioning.Negotiator) connect.UnaryInterceptorFunc {
	requestedHeader := n.RequestedHeader()

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().IsClient {
				return next(ctx, req)
			}

			d := n.Negotiate(req.Header().Get(requestedHeader))
			if d.Rejected() {
				contextlog.From(ctx).DebugContext(ctx, "Rejected requested API version",
					slog.String("procedure", req.Spec().Procedure),
					slog.String("client_ip", middleware.ClientIP(ctx, req)),
					slog.String("requested", d.Err.Requested),
					slog.String("reason", d.Err.Reason.String()),
				)
				return nil, versionError(d)
			}

			resp, err := next(ctx, req)
			if err != nil {
				var connectErr *connect.Error
				if !errors.As(err, &connectErr) {
					connectErr = connect.NewError(connect.CodeOf(err), err)
				}
				d.Apply(connectErr.Meta())
				return nil, connectErr
			}
			d.Apply(resp.Header())
			return resp, nil
		}
	}
}

func versionError(d versioning.Decision) *connect.Error {
	connectErr := connect.NewError(connect.CodeInvalidArgument, d.Err)
	d.Apply(connectErr.Meta())
	if detail, err := connect.NewErrorDetail(wrapperspb.String(d.Err.Current)); err == nil {
		connectErr.AddDetail(detail)
	}
	return connectErr
}

// CurrentFromError extracts the server's current version from a rejection
// returned by NewVersionInterceptor.
func CurrentFromError(err error) (string, bool) {
	var connectErr *connect.Error
	if !errors.As(err, &connectErr) || connectErr.Code() != connect.CodeInvalidArgument {
		return "", false
	}
	for _, detail := range connectErr.Details() {
		msg, derr := detail.Value()
		if derr != nil {
			continue
		}
		if s, ok := msg.(*wrapperspb.StringValue); ok {
			return s.GetValue(), true
		}
	}
	return "", false
}

// SetRequested returns a client interceptor that declares version on every call.
func SetRequested(header, version string) connect.UnaryInterceptorFunc {
	if header == "" {
		header = versioning.DefaultRequestedHeader
	}
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if req.Spec().IsClient && version != "" {
				req.Header().Set(header, version)
			}
			return next(ctx, req)
		}
	}
}
