package rpc_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/jh125486/versiongate/pkg/rpc"
	"github.com/jh125486/versiongate/pkg/versioning"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	n, err := versioning.New(versioning.Config{
		Current:     "1.2.3",
		Minimum:     "1.2.0",
		Recommended: "1.2.1",
	})
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.Handle(rpc.NewVersionService(n))
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestVersionInterceptor(t *testing.T) {
	t.Parallel()

	srv := newTestServer(t)

	tests := []struct {
		name              string
		requested         string
		wantErr           bool
		wantMessage       string
		wantRecommended   string
		wantCurrentDetail bool
	}{
		{
			name:      "no_requested_version",
			requested: "",
		},
		{
			name:      "current_version",
			requested: "1.2.3",
		},
		{
			name:            "below_recommended_is_advisory",
			requested:       "1.2.0",
			wantRecommended: "1.2.1",
		},
		{
			name:              "invalid_requested_version",
			requested:         "nope",
			wantErr:           true,
			wantMessage:       "Invalid requested version: nope",
			wantCurrentDetail: true,
		},
		{
			name:              "server_older_than_requested",
			requested:         "2.0.0",
			wantErr:           true,
			wantMessage:       "Unsupported version: 2.0.0",
			wantCurrentDetail: true,
		},
		{
			name:              "below_minimum",
			requested:         "1.1.0",
			wantErr:           true,
			wantMessage:       "Unsupported version: 1.1.0",
			wantRecommended:   "1.2.1",
			wantCurrentDetail: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			client := rpc.NewVersionClient(srv.Client(), srv.URL,
				connect.WithInterceptors(rpc.SetRequested("", tt.requested)))

			resp, err := client.CallUnary(t.Context(), connect.NewRequest(&emptypb.Empty{}))
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, connect.CodeInvalidArgument, connect.CodeOf(err))

				var connectErr *connect.Error
				require.ErrorAs(t, err, &connectErr)
				assert.Equal(t, tt.wantMessage, connectErr.Message())
				assert.Equal(t, "1.2.3", connectErr.Meta().Get(versioning.DefaultVersionHeader))
				assert.Equal(t, tt.wantRecommended, connectErr.Meta().Get(versioning.DefaultRecommendedHeader))

				current, ok := rpc.CurrentFromError(err)
				assert.Equal(t, tt.wantCurrentDetail, ok)
				assert.Equal(t, "1.2.3", current)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, "1.2.3", resp.Msg.GetValue())
			assert.Equal(t, "1.2.3", resp.Header().Get(versioning.DefaultVersionHeader))
			assert.Equal(t, tt.wantRecommended, resp.Header().Get(versioning.DefaultRecommendedHeader))
		})
	}
}

func TestCurrentFromError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil", err: nil, want: false},
		{name: "plain_error", err: assert.AnError, want: false},
		{name: "other_code", err: connect.NewError(connect.CodeInternal, assert.AnError), want: false},
		{name: "no_detail", err: connect.NewError(connect.CodeInvalidArgument, assert.AnError), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, ok := rpc.CurrentFromError(tt.err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestVersionInterceptorHandlerErrorKeepsHeaders(t *testing.T) {
	t.Parallel()

	n, err := versioning.New(versioning.Config{
		Current:     "1.2.3",
		Minimum:     "1.2.0",
		Recommended: "1.2.1",
	})
	require.NoError(t, err)

	const procedure = "/versiongate.test.v1.FailingService/Fail"

	tests := []struct {
		name            string
		handlerErr      error
		requested       string
		wantCode        connect.Code
		wantRecommended string
	}{
		{
			name:       "plain_error",
			handlerErr: errors.New("boom"),
			requested:  "1.2.3",
			wantCode:   connect.CodeUnknown,
		},
		{
			name:            "plain_error_with_advisory",
			handlerErr:      errors.New("boom"),
			requested:       "1.2.0",
			wantCode:        connect.CodeUnknown,
			wantRecommended: "1.2.1",
		},
		{
			name:       "connect_error",
			handlerErr: connect.NewError(connect.CodeUnavailable, errors.New("down")),
			requested:  "1.2.3",
			wantCode:   connect.CodeUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mux := http.NewServeMux()
			mux.Handle(procedure, connect.NewUnaryHandler(
				procedure,
				func(context.Context, *connect.Request[emptypb.Empty]) (*connect.Response[wrapperspb.StringValue], error) {
					return nil, tt.handlerErr
				},
				connect.WithInterceptors(rpc.NewVersionInterceptor(n)),
			))
			srv := httptest.NewServer(mux)
			t.Cleanup(srv.Close)

			client := connect.NewClient[emptypb.Empty, wrapperspb.StringValue](srv.Client(), srv.URL+procedure,
				connect.WithInterceptors(rpc.SetRequested("", tt.requested)))
			_, err := client.CallUnary(t.Context(), connect.NewRequest(&emptypb.Empty{}))

			var connectErr *connect.Error
			require.ErrorAs(t, err, &connectErr)
			assert.Equal(t, tt.wantCode, connectErr.Code())
			assert.Equal(t, "1.2.3", connectErr.Meta().Get(versioning.DefaultVersionHeader))
			assert.Equal(t, tt.wantRecommended, connectErr.Meta().Get(versioning.DefaultRecommendedHeader))
		})
	}
}
