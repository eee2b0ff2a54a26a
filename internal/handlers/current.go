package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/quizapi/internal/apperr"
	"github.com/skillsenselab/quizapi/internal/auth"
	"github.com/skillsenselab/quizapi/internal/store"
)

// currentIdentity returns the authenticated identity or an Unauthorized
// error. Access control runs before handlers, so a missing identity here
// means the route was left open by mistake.
func currentIdentity(c *gin.Context) (auth.Identity, error) {
	identity, ok := auth.IdentityFromGin(c)
	if !ok {
		return auth.Identity{}, apperr.Unauthorized("")
	}
	return identity, nil
}

// currentUser resolves the authenticated identity to its account record.
func currentUser(c *gin.Context, users *store.UserRepository) (*store.User, error) {
	identity, err := currentIdentity(c)
	if err != nil {
		return nil, err
	}
	u, err := users.ByUsername(c.Request.Context(), identity.Subject)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.Unauthorized("")
	}
	return u, nil
}

// isAdmin reports whether the request identity carries the ADMIN role.
func isAdmin(c *gin.Context) bool {
	identity, ok := auth.IdentityFromGin(c)
	return ok && identity.HasRole(auth.RoleAdmin)
}
