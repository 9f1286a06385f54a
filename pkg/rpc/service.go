package rpc

import (
	"context"
	"net/http"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/jh125486/versiongate/pkg/versioning"
)

// GetVersionProcedure is the Connect procedure served by NewVersionService.
const GetVersionProcedure = "/versiongate.v1.VersionService/GetVersion"

// NewVersionService builds the handler for GetVersionProcedure. It answers with
// the server's current version and is gated by NewVersionInterceptor.
func NewVersionService(n *versioning.Negotiator, opts ...connect.HandlerOption) (string, http.Handler) {
	current := n.Config().Current
	opts = append([]connect.HandlerOption{connect.WithInterceptors(NewVersionInterceptor(n))}, opts...)

	return GetVersionProcedure, connect.NewUnaryHandler(
		GetVersionProcedure,
		func(_ context.Context, _ *connect.Request[emptypb.Empty]) (*connect.Response[wrapperspb.StringValue], error) {
			return connect.NewResponse(wrapperspb.String(current)), nil
		},
		opts...,
	)
}

// NewVersionClient returns a client for GetVersionProcedure on baseURL.
func NewVersionClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *connect.Client[emptypb.Empty, wrapperspb.StringValue] {
	return connect.NewClient[emptypb.Empty, wrapperspb.StringValue](httpClient, baseURL+GetVersionProcedure, opts...)
}
