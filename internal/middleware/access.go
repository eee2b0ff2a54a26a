package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/quizapi/internal/apperr"
	"github.com/skillsenselab/quizapi/internal/auth"
	"github.com/skillsenselab/quizapi/internal/logger"
)

// policyKind enumerates the per-route access requirements.
type policyKind int

const (
	policyPublic policyKind = iota
	policyAuthenticated
	policyRole
)

// Policy is a per-route access requirement. Policies are configured once at
// startup and read-only thereafter.
type Policy struct {
	kind policyKind
	role string
}

// Public permits every request.
func Public() Policy { return Policy{kind: policyPublic} }

// Authenticated permits any request with an identity attached.
func Authenticated() Policy { return Policy{kind: policyAuthenticated} }

// RequireRole permits requests whose identity carries the given role.
func RequireRole(role string) Policy { return Policy{kind: policyRole, role: role} }

// PolicyTable maps "METHOD /route/pattern" to a Policy. Routes without an
// entry fall back to Authenticated: nothing is reachable anonymously unless
// explicitly made public.
type PolicyTable struct {
	rules    map[string]Policy
	fallback Policy
}

// NewPolicyTable creates an empty table with an Authenticated fallback.
func NewPolicyTable() *PolicyTable {
	return &PolicyTable{rules: make(map[string]Policy), fallback: Authenticated()}
}

// Add registers a policy for a method and gin route pattern
// (e.g. "GET", "/api/users/:id").
func (t *PolicyTable) Add(method, pattern string, p Policy) *PolicyTable {
	t.rules[method+" "+pattern] = p
	return t
}

// Lookup returns the policy for a method and route pattern, or the fallback.
func (t *PolicyTable) Lookup(method, pattern string) Policy {
	if p, ok := t.rules[method+" "+pattern]; ok {
		return p
	}
	return t.fallback
}

// AccessControl returns the access decision middleware. It runs after
// Authenticate and is the only place unauthenticated or under-privileged
// requests are rejected. OPTIONS requests always pass for CORS preflight.
func AccessControl(table *PolicyTable, log *logger.Logger) gin.HandlerFunc {
	log = log.WithComponent("access")
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		policy := table.Lookup(c.Request.Method, c.FullPath())
		if policy.kind == policyPublic {
			c.Next()
			return
		}

		identity, authenticated := auth.IdentityFromGin(c)
		if !authenticated {
			log.Warn("Unauthenticated request rejected", map[string]interface{}{
				logger.FieldMethod:   c.Request.Method,
				logger.FieldPath:     c.Request.URL.Path,
				logger.FieldClientIP: ClientID(c),
			})
			c.AbortWithStatusJSON(http.StatusUnauthorized, apperr.RejectBody{
				Error:   "Unauthorized",
				Message: "Authentication required",
			})
			return
		}

		if policy.kind == policyRole && !identity.HasRole(policy.role) {
			log.Warn("Under-privileged request rejected", map[string]interface{}{
				logger.FieldMethod: c.Request.Method,
				logger.FieldPath:   c.Request.URL.Path,
				logger.FieldUserID: identity.Subject,
				"required_role":    policy.role,
			})
			c.AbortWithStatusJSON(http.StatusForbidden, apperr.RejectBody{
				Error:   "Forbidden",
				Message: "Access denied",
			})
			return
		}

		c.Next()
	}
}
