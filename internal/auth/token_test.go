package auth_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/skillsenselab/quizapi/internal/auth"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func newTokenService(t *testing.T, ttl time.Duration) *auth.TokenService {
	t.Helper()
	svc, err := auth.NewTokenService(auth.TokenConfig{Secret: testSecret, TTL: ttl})
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return svc
}

func TestNewTokenService_RequiresSecret(t *testing.T) {
	if _, err := auth.NewTokenService(auth.TokenConfig{}); err == nil {
		t.Fatal("expected error for empty secret")
	}
	if _, err := auth.NewTokenService(auth.TokenConfig{Secret: "short"}); err == nil {
		t.Fatal("expected error for short secret")
	}
}

func TestTokenService_RoundTrip(t *testing.T) {
	svc := newTokenService(t, time.Hour)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	identity := auth.Identity{Subject: "alice", Roles: []string{auth.RoleAdmin, auth.RoleUser}}
	token, err := svc.IssueAt(identity, now)
	if err != nil {
		t.Fatalf("IssueAt: %v", err)
	}
	if parts := strings.Split(token, "."); len(parts) != 3 {
		t.Fatalf("expected three dot-separated segments, got %d", len(parts))
	}

	parsed, err := svc.ParseAt(token, now)
	if err != nil {
		t.Fatalf("ParseAt: %v", err)
	}
	if parsed.Subject != "alice" {
		t.Errorf("subject = %q, want alice", parsed.Subject)
	}
	if len(parsed.Roles) != 2 || !parsed.HasRole(auth.RoleAdmin) || !parsed.HasRole(auth.RoleUser) {
		t.Errorf("roles = %v, want [ADMIN USER]", parsed.Roles)
	}
}

func TestTokenService_DifferentInstantsDifferentTokens(t *testing.T) {
	svc := newTokenService(t, time.Hour)
	identity := auth.Identity{Subject: "alice", Roles: []string{auth.RoleUser}}

	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	tok1, err := svc.IssueAt(identity, t0)
	if err != nil {
		t.Fatalf("IssueAt: %v", err)
	}
	tok2, err := svc.IssueAt(identity, t0.Add(time.Second))
	if err != nil {
		t.Fatalf("IssueAt: %v", err)
	}
	if tok1 == tok2 {
		t.Error("tokens issued at different instants must differ")
	}
}

func TestTokenService_Expired(t *testing.T) {
	ttl := 30 * time.Minute
	svc := newTokenService(t, ttl)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	token, err := svc.IssueAt(auth.Identity{Subject: "alice"}, now)
	if err != nil {
		t.Fatalf("IssueAt: %v", err)
	}

	if _, err := svc.ParseAt(token, now.Add(ttl+time.Second)); !errors.Is(err, auth.ErrTokenExpired) {
		t.Fatalf("expected ErrTokenExpired, got %v", err)
	}
	// Still valid just inside the window.
	if _, err := svc.ParseAt(token, now.Add(ttl-time.Second)); err != nil {
		t.Fatalf("token should still be valid before expiry, got %v", err)
	}
}

func TestTokenService_TamperedSignature(t *testing.T) {
	svc := newTokenService(t, time.Hour)
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	token, err := svc.IssueAt(auth.Identity{Subject: "alice"}, now)
	if err != nil {
		t.Fatalf("IssueAt: %v", err)
	}

	idx := strings.LastIndex(token, ".")
	sig := []byte(token[idx+1:])
	for i := range sig {
		tampered := []byte(token[idx+1:])
		if tampered[i] == 'A' {
			tampered[i] = 'B'
		} else {
			tampered[i] = 'A'
		}
		forged := token[:idx+1] + string(tampered)
		if forged == token {
			continue
		}
		if _, err := svc.ParseAt(forged, now); !errors.Is(err, auth.ErrTokenBadSignature) && !errors.Is(err, auth.ErrTokenMalformed) {
			t.Fatalf("byte %d: expected signature or malformed error, got %v", i, err)
		}
	}
}

func TestTokenService_WrongKey(t *testing.T) {
	svc := newTokenService(t, time.Hour)
	other, err := auth.NewTokenService(auth.TokenConfig{Secret: "ffffffffffffffffffffffffffffffff"})
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	token, err := other.IssueAt(auth.Identity{Subject: "alice"}, now)
	if err != nil {
		t.Fatalf("IssueAt: %v", err)
	}
	if _, err := svc.ParseAt(token, now); !errors.Is(err, auth.ErrTokenBadSignature) {
		t.Fatalf("expected ErrTokenBadSignature, got %v", err)
	}
}

func TestTokenService_Malformed(t *testing.T) {
	svc := newTokenService(t, time.Hour)
	now := time.Now()

	for _, tok := range []string{"", "garbage", "a.b", "a.b.c.d", "header.payload"} {
		if _, err := svc.ParseAt(tok, now); !errors.Is(err, auth.ErrTokenMalformed) {
			t.Errorf("token %q: expected ErrTokenMalformed, got %v", tok, err)
		}
	}
}
