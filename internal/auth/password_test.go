package auth_test

import (
	"errors"
	"testing"

	"github.com/skillsenselab/quizapi/internal/auth"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	// Low cost keeps the test fast; production default is 12.
	hasher := auth.NewPasswordHasher(auth.WithCost(4))

	hash, err := hasher.Hash("correctpw1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if hash == "correctpw1" {
		t.Fatal("hash must not equal the plaintext password")
	}

	if err := hasher.Verify("correctpw1", hash); err != nil {
		t.Errorf("Verify with correct password: %v", err)
	}
	if err := hasher.Verify("wrong", hash); !errors.Is(err, auth.ErrBadPassword) {
		t.Errorf("expected ErrBadPassword, got %v", err)
	}
}

func TestPasswordHasher_HashesDiffer(t *testing.T) {
	hasher := auth.NewPasswordHasher(auth.WithCost(4))

	h1, err := hasher.Hash("samepassword1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	h2, err := hasher.Hash("samepassword1")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if h1 == h2 {
		t.Error("bcrypt hashes of the same password should differ (random salt)")
	}
}

func TestPasswordHasher_RejectsOverlongPassword(t *testing.T) {
	hasher := auth.NewPasswordHasher(auth.WithCost(4))
	long := make([]byte, 80)
	for i := range long {
		long[i] = 'a'
	}
	if _, err := hasher.Hash(string(long)); err == nil {
		t.Fatal("expected error for password over bcrypt's 72-byte limit")
	}
}
