package service

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/simplesdental/product-api/internal/core/domain"
)

const testSecret = "test-secret"

func issueFor(t *testing.T, email string, ttl time.Duration) string {
	t.Helper()
	svc := NewTokenService(testSecret, ttl)
	token, err := svc.Issue(&domain.User{Email: email})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)

	token, err := svc.Issue(&domain.User{Email: "u@example.com"})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	claims, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("validate returned error: %v", err)
	}
	if claims.Subject != "u@example.com" {
		t.Fatalf("subject changed in round trip: %q", claims.Subject)
	}
	if got := claims.ExpiresAt.Sub(claims.IssuedAt); got != time.Hour {
		t.Fatalf("expected expiry exactly issuedAt+1h, got %v", got)
	}
	if !claims.ExpiresAt.After(time.Now()) {
		t.Fatalf("freshly issued token already expired")
	}
}

func TestTokenService_Expired(t *testing.T) {
	now := time.Now().UTC()
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "u@example.com",
		IssuedAt:  jwt.NewNumericDate(now.Add(-2 * time.Hour)),
		ExpiresAt: jwt.NewNumericDate(now.Add(-time.Hour)),
	})
	token, err := raw.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	svc := NewTokenService(testSecret, time.Hour)
	if _, err := svc.Validate(token); !errors.Is(err, domain.ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestTokenService_SignatureBitFlip(t *testing.T) {
	token := issueFor(t, "u@example.com", time.Hour)

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(parts))
	}

	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	if err != nil {
		t.Fatalf("decode signature: %v", err)
	}
	sig[0] ^= 0x01
	parts[2] = base64.RawURLEncoding.EncodeToString(sig)

	svc := NewTokenService(testSecret, time.Hour)
	if _, err := svc.Validate(strings.Join(parts, ".")); !errors.Is(err, domain.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestTokenService_WrongKey(t *testing.T) {
	token := issueFor(t, "u@example.com", time.Hour)

	svc := NewTokenService("other-secret", time.Hour)
	if _, err := svc.Validate(token); !errors.Is(err, domain.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestTokenService_Malformed(t *testing.T) {
	svc := NewTokenService(testSecret, time.Hour)

	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"one segment", "abc"},
		{"two segments", "abc.def"},
		{"four segments", "a.b.c.d"},
		{"empty segments", ".."},
		{"garbage segments", "!!!.???.***"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Validate(tc.token); !errors.Is(err, domain.ErrMalformedToken) {
				t.Fatalf("expected ErrMalformedToken, got %v", err)
			}
		})
	}
}

func TestTokenService_RejectsUnsignedAlgorithm(t *testing.T) {
	raw := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "u@example.com",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	token, err := raw.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	svc := NewTokenService(testSecret, time.Hour)
	if _, err := svc.Validate(token); !errors.Is(err, domain.ErrInvalidSignature) {
		t.Fatalf("expected ErrInvalidSignature, got %v", err)
	}
}

func TestTokenService_MissingExpiry(t *testing.T) {
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "u@example.com",
	})
	token, err := raw.SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	svc := NewTokenService(testSecret, time.Hour)
	if _, err := svc.Validate(token); !errors.Is(err, domain.ErrMalformedToken) {
		t.Fatalf("expected ErrMalformedToken, got %v", err)
	}
}
