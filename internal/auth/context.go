package auth

import (
	"context"

	"github.com/gin-gonic/gin"
)

// contextKey is an unexported type to prevent collisions with other packages.
type contextKey struct{}

var identityKey = contextKey{}

// ginIdentityKey is the gin context key mirroring the request-context value.
const ginIdentityKey = "auth.identity"

// WithIdentity stores the identity in the context.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

// IdentityFrom retrieves the identity from the context. The second return is
// false for anonymous requests.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}

// SetIdentity attaches the identity to a gin context and to the underlying
// request context, so both gin handlers and plain code can read it.
func SetIdentity(c *gin.Context, identity Identity) {
	c.Set(ginIdentityKey, identity)
	c.Request = c.Request.WithContext(WithIdentity(c.Request.Context(), identity))
}

// IdentityFromGin retrieves the identity from a gin context.
func IdentityFromGin(c *gin.Context) (Identity, bool) {
	if v, exists := c.Get(ginIdentityKey); exists {
		if identity, ok := v.(Identity); ok {
			return identity, true
		}
	}
	return Identity{}, false
}
