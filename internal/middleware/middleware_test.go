package middleware

import (
	"context"
	"errors"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/receipts/internal/auth"
	"github.com/mmynk/receipts/internal/metrics"
	"github.com/mmynk/receipts/pkg/api"
)

func okHandler(seen *context.Context) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		*seen = ctx
		return connect.NewResponse(&api.GetProfileResponse{}), nil
	}
}

func TestRequireAdmin(t *testing.T) {
	hash, err := auth.HashPassword("correct horse")
	if err != nil {
		t.Fatal(err)
	}
	authenticator, err := auth.NewPasswordAuthenticator(hash)
	if err != nil {
		t.Fatal(err)
	}
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	adminToken, _, err := jwtManager.Generate(auth.AdminSubject, auth.RoleAdmin)
	if err != nil {
		t.Fatal(err)
	}
	otherToken, _, err := jwtManager.Generate("guest", "viewer")
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		header   string
		wantCode connect.Code
	}{
		{name: "missing token", wantCode: connect.CodeUnauthenticated},
		{name: "not bearer", header: "Basic abc", wantCode: connect.CodeUnauthenticated},
		{name: "garbage token", header: "Bearer abc", wantCode: connect.CodeUnauthenticated},
		{name: "wrong role", header: "Bearer " + otherToken, wantCode: connect.CodePermissionDenied},
		{name: "admin", header: "Bearer " + adminToken},
	}

	interceptor := RequireAdmin(jwtManager, authenticator)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := connect.NewRequest(&api.GetProfileRequest{})
			if tt.header != "" {
				req.Header().Set("Authorization", tt.header)
			}

			var seen context.Context
			_, err := interceptor(okHandler(&seen))(context.Background(), req)
			if tt.wantCode != 0 {
				if connect.CodeOf(err) != tt.wantCode {
					t.Fatalf("code = %v, want %v (err %v)", connect.CodeOf(err), tt.wantCode, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if GetSubject(seen) != auth.AdminSubject {
				t.Errorf("subject = %q", GetSubject(seen))
			}
		})
	}
}

func TestRequireAdminDisabled(t *testing.T) {
	authenticator, err := auth.NewPasswordAuthenticator("")
	if err != nil {
		t.Fatal(err)
	}
	interceptor := RequireAdmin(auth.NewJWTManager("s", time.Hour), authenticator)

	var seen context.Context
	if _, err := interceptor(okHandler(&seen))(context.Background(), connect.NewRequest(&api.GetProfileRequest{})); err != nil {
		t.Fatalf("expected open access, got %v", err)
	}
}

func TestLoggingInterceptor(t *testing.T) {
	m := metrics.New(prometheus.NewRegistry())
	interceptor := LoggingInterceptor(m)

	t.Run("propagates request id", func(t *testing.T) {
		req := connect.NewRequest(&api.GetProfileRequest{})
		req.Header().Set(RequestIDHeader, "req-123")

		var seen context.Context
		resp, err := interceptor(okHandler(&seen))(context.Background(), req)
		if err != nil {
			t.Fatal(err)
		}
		if GetRequestID(seen) != "req-123" {
			t.Errorf("request id = %q", GetRequestID(seen))
		}
		if resp.Header().Get(RequestIDHeader) != "req-123" {
			t.Errorf("response header = %q", resp.Header().Get(RequestIDHeader))
		}
	})

	t.Run("generates request id", func(t *testing.T) {
		var seen context.Context
		if _, err := interceptor(okHandler(&seen))(context.Background(), connect.NewRequest(&api.GetProfileRequest{})); err != nil {
			t.Fatal(err)
		}
		if GetRequestID(seen) == "" {
			t.Error("expected a generated request id")
		}
	})

	t.Run("passes errors through", func(t *testing.T) {
		failing := func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			return nil, connect.NewError(connect.CodeNotFound, errors.New("missing"))
		}
		_, err := interceptor(failing)(context.Background(), connect.NewRequest(&api.GetProfileRequest{}))
		if connect.CodeOf(err) != connect.CodeNotFound {
			t.Errorf("code = %v", connect.CodeOf(err))
		}
	})
}
