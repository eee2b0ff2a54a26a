package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/skillsenselab/quizapi/internal/auth"
)

// credentialMap is an in-memory CredentialSource for tests.
type credentialMap map[string]*auth.StoredCredential

func (m credentialMap) FindCredential(_ context.Context, username string) (*auth.StoredCredential, error) {
	return m[username], nil
}

func TestVerifier_Verify(t *testing.T) {
	hasher := auth.NewPasswordHasher(auth.WithCost(4))
	hash, err := hasher.Hash("correctpw1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}

	source := credentialMap{
		"alice": {Username: "alice", PasswordHash: hash, Roles: []string{auth.RoleAdmin}},
	}
	verifier := auth.NewVerifier(source, hasher)

	t.Run("success", func(t *testing.T) {
		identity, err := verifier.Verify(context.Background(), "alice", "correctpw1")
		if err != nil {
			t.Fatalf("Verify: %v", err)
		}
		if identity.Subject != "alice" || !identity.HasRole(auth.RoleAdmin) {
			t.Errorf("identity = %+v", identity)
		}
	})

	t.Run("bad password", func(t *testing.T) {
		if _, err := verifier.Verify(context.Background(), "alice", "wrong"); !errors.Is(err, auth.ErrBadPassword) {
			t.Fatalf("expected ErrBadPassword, got %v", err)
		}
	})

	t.Run("no such user", func(t *testing.T) {
		if _, err := verifier.Verify(context.Background(), "mallory", "whatever"); !errors.Is(err, auth.ErrNoSuchUser) {
			t.Fatalf("expected ErrNoSuchUser, got %v", err)
		}
	})
}
