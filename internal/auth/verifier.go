package auth

import (
	"context"
	"errors"
	"fmt"
)

// ErrNoSuchUser is returned when no credential record exists for a username.
// Callers must not leak the distinction between ErrNoSuchUser and
// ErrBadPassword to clients.
var ErrNoSuchUser = errors.New("auth: no such user")

// StoredCredential is the persisted credential record the verifier checks
// against. The password is a bcrypt hash, never plaintext.
type StoredCredential struct {
	Username     string
	PasswordHash string
	Roles        []string
}

// CredentialSource is the user-lookup capability owned by the persistence
// layer. A nil record with a nil error means the username is unknown.
type CredentialSource interface {
	FindCredential(ctx context.Context, username string) (*StoredCredential, error)
}

// Verifier checks submitted credentials against stored records. Read-only;
// safe for concurrent use.
type Verifier struct {
	source CredentialSource
	hasher *PasswordHasher
}

// NewVerifier creates a credential verifier.
func NewVerifier(source CredentialSource, hasher *PasswordHasher) *Verifier {
	return &Verifier{source: source, hasher: hasher}
}

// Verify checks the username/password pair and returns the Identity built
// from the stored record. Fails with ErrNoSuchUser or ErrBadPassword.
func (v *Verifier) Verify(ctx context.Context, username, password string) (Identity, error) {
	cred, err := v.source.FindCredential(ctx, username)
	if err != nil {
		return Identity{}, fmt.Errorf("auth: credential lookup: %w", err)
	}
	if cred == nil {
		return Identity{}, ErrNoSuchUser
	}
	if err := v.hasher.Verify(password, cred.PasswordHash); err != nil {
		return Identity{}, err
	}
	return Identity{Subject: cred.Username, Roles: cred.Roles}, nil
}
