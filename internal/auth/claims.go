// Package auth implements the stateless authentication pipeline: password
// hashing and verification, signed token issuance and parsing, and identity
// propagation through the request context.
package auth

import (
	gojwt "github.com/golang-jwt/jwt/v5"
)

// Role names assigned to users. Stored on the user record and embedded in
// token claims.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// Identity is the authenticated subject and role set derived from a valid
// token. It is immutable once attached to a request and rebuilt from claims
// on every request.
type Identity struct {
	Subject string
	Roles   []string
}

// HasRole reports whether the identity carries the given role.
func (i Identity) HasRole(role string) bool {
	for _, r := range i.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Claims is the claims set embedded in issued tokens: the registered
// sub/iat/exp fields plus the subject's roles.
type Claims struct {
	gojwt.RegisteredClaims
	Roles []string `json:"roles"`
}

// Identity reconstructs the Identity carried by the claims.
func (c *Claims) Identity() Identity {
	return Identity{Subject: c.Subject, Roles: c.Roles}
}
