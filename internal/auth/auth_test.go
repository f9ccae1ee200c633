package auth

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestPasswordAuthenticator(t *testing.T) {
	ctx := context.Background()

	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	a, err := NewPasswordAuthenticator(hash)
	if err != nil {
		t.Fatalf("NewPasswordAuthenticator failed: %v", err)
	}
	if !a.Enabled() {
		t.Fatal("expected authentication to be enabled")
	}

	t.Run("correct password", func(t *testing.T) {
		subject, err := a.Authenticate(ctx, "correct horse")
		if err != nil {
			t.Fatalf("Authenticate failed: %v", err)
		}
		if subject != AdminSubject {
			t.Errorf("subject = %q, want %q", subject, AdminSubject)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		if _, err := a.Authenticate(ctx, "battery staple"); !errors.Is(err, ErrInvalidCredentials) {
			t.Errorf("expected ErrInvalidCredentials, got %v", err)
		}
	})

	t.Run("weak password", func(t *testing.T) {
		if _, err := HashPassword("short"); !errors.Is(err, ErrWeakPassword) {
			t.Errorf("expected ErrWeakPassword, got %v", err)
		}
	})

	t.Run("bad hash", func(t *testing.T) {
		if _, err := NewPasswordAuthenticator("not-a-hash"); err == nil {
			t.Error("expected an error")
		}
	})

	t.Run("disabled", func(t *testing.T) {
		open, _ := NewPasswordAuthenticator("")
		if open.Enabled() {
			t.Error("expected authentication to be disabled")
		}
		if _, err := open.Authenticate(ctx, ""); err != nil {
			t.Errorf("expected open access, got %v", err)
		}
	})
}

func TestJWTManager(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, expires, err := m.Generate(AdminSubject, RoleAdmin)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if time.Until(expires) <= 0 {
		t.Errorf("expiry %v is in the past", expires)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.Subject != AdminSubject || claims.Role != RoleAdmin {
		t.Errorf("unexpected claims: %+v", claims)
	}

	t.Run("wrong secret", func(t *testing.T) {
		other := NewJWTManager("other-secret", time.Hour)
		if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("expired", func(t *testing.T) {
		expired := NewJWTManager("test-secret", -time.Minute)
		token, _, err := expired.Generate(AdminSubject, RoleAdmin)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}
