package credentials

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signedToken(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   sub,
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("orchestrator-secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func TestInspect_ReadsClaimsWithoutKey(t *testing.T) {
	exp := time.Unix(1700003600, 0).UTC()
	info, err := Inspect(signedToken(t, "user-1", exp))
	if err != nil {
		t.Fatalf("inspect: %v", err)
	}
	if info.Subject != "user-1" || !info.ExpiresAt.Equal(exp) {
		t.Fatalf("unexpected info: %+v", info)
	}
	if ttl := info.TTL(exp.Add(-time.Minute)); ttl != time.Minute {
		t.Fatalf("expected 1m ttl, got %v", ttl)
	}
	if ttl := info.TTL(exp.Add(time.Second)); ttl >= 0 {
		t.Fatalf("expected expired ttl, got %v", ttl)
	}
}

func TestInspect_OpaqueToken(t *testing.T) {
	if _, err := Inspect("not-a-jwt"); err != ErrOpaqueToken {
		t.Fatalf("expected ErrOpaqueToken, got %v", err)
	}
	if _, err := Inspect(""); err != ErrEmptyToken {
		t.Fatalf("expected ErrEmptyToken, got %v", err)
	}
}

func TestMemoryStore_SaveTokenClear(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if tok, _ := s.Token(ctx); tok != "" {
		t.Fatalf("expected empty store")
	}
	if err := s.Save(ctx, ""); err != ErrEmptyToken {
		t.Fatalf("expected ErrEmptyToken, got %v", err)
	}
	if err := s.Save(ctx, "opaque"); err != nil {
		t.Fatalf("save: %v", err)
	}
	if tok, _ := s.Token(ctx); tok != "opaque" {
		t.Fatalf("expected stored token, got %q", tok)
	}
	if err := s.Clear(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if tok, _ := s.Token(ctx); tok != "" {
		t.Fatalf("expected cleared token, got %q", tok)
	}
}

func TestMemoryStore_ExpiredTokenReadsAsAbsent(t *testing.T) {
	ctx := context.Background()
	now := time.Unix(1700000000, 0).UTC()
	s := NewMemoryStore()
	s.clock = func() time.Time { return now }

	if err := s.Save(ctx, signedToken(t, "u", now.Add(time.Minute))); err != nil {
		t.Fatalf("save: %v", err)
	}
	if tok, _ := s.Token(ctx); tok == "" {
		t.Fatalf("expected live token")
	}

	now = now.Add(2 * time.Minute)
	if tok, _ := s.Token(ctx); tok != "" {
		t.Fatalf("expected expired token to read as absent")
	}
}

func TestSessionKey(t *testing.T) {
	if got := SessionKey("ops"); got != "console:session:ops:token" {
		t.Fatalf("unexpected key %q", got)
	}
}
