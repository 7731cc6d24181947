package token

import (
	"errors"
	"testing"
	"time"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(&Config{
		Secret:        "this-is-a-32-character-secret!!!",
		SigningMethod: "HS256",
		TTL:           30 * time.Minute,
		ClockSkew:     30 * time.Second,
	})
}

func TestNewServiceSigningMethods(t *testing.T) {
	tests := []struct {
		name          string
		signingMethod string
	}{
		{"HS256", "HS256"},
		{"HS384", "HS384"},
		{"HS512", "HS512"},
		{"default", "unknown"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(&Config{
				Secret:        "this-is-a-32-character-secret!!!",
				SigningMethod: tt.signingMethod,
				TTL:           time.Minute,
			})
			if svc.jwtSigningMethod == nil {
				t.Fatal("expected a resolved signing method")
			}
		})
	}
}

func TestIssueAndVerify(t *testing.T) {
	svc := newTestService(t)

	signed, expiresAt, err := svc.Issue("alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if signed == "" {
		t.Fatal("expected a non-empty token")
	}
	if !expiresAt.After(time.Now()) {
		t.Error("expected expiry in the future")
	}

	subject, err := svc.Verify(signed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if subject != "alice" {
		t.Errorf("expected subject alice, got %s", subject)
	}
}

func TestVerifyExpired(t *testing.T) {
	svc := newTestService(t)

	// Issue in the past, far beyond TTL plus clock skew.
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	signed, _, err := svc.Issue("alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.Verify(signed); !errors.Is(err, ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestVerifyWithinClockSkew(t *testing.T) {
	svc := newTestService(t)

	// Expired 10 seconds ago with 30 seconds of allowed skew.
	svc.now = func() time.Time { return time.Now().Add(-svc.config.TTL - 10*time.Second) }
	signed, _, err := svc.Issue("alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	svc.now = time.Now
	if _, err := svc.Verify(signed); err != nil {
		t.Errorf("expected token within skew to verify, got %v", err)
	}
}

func TestVerifyWrongSecret(t *testing.T) {
	svc := newTestService(t)
	signed, _, err := svc.Issue("alice")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	other := NewService(&Config{
		Secret:        "a-completely-different-32-char-key!",
		SigningMethod: "HS256",
		TTL:           30 * time.Minute,
	})
	if _, err := other.Verify(signed); !errors.Is(err, ErrTokenInvalidSig) {
		t.Errorf("expected ErrTokenInvalidSig, got %v", err)
	}
}

func TestVerifyMalformed(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"truncated", "eyJhbGciOiJIUzI1NiJ9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Verify(tt.token)
			if !IsInvalid(err) {
				t.Errorf("expected a token error, got %v", err)
			}
		})
	}
}
