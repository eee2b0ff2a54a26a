package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/quizapi/internal/apperr"
	"github.com/skillsenselab/quizapi/internal/auth"
	"github.com/skillsenselab/quizapi/internal/logger"
	"github.com/skillsenselab/quizapi/internal/store"
	"github.com/skillsenselab/quizapi/internal/validation"
)

// AuthHandler serves login, registration, token refresh, and profile lookup.
type AuthHandler struct {
	verifier *auth.Verifier
	tokens   *auth.TokenService
	hasher   *auth.PasswordHasher
	users    *store.UserRepository
	log      *logger.Logger
}

// NewAuthHandler wires the auth endpoints.
func NewAuthHandler(verifier *auth.Verifier, tokens *auth.TokenService, hasher *auth.PasswordHasher, users *store.UserRepository, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		verifier: verifier,
		tokens:   tokens,
		hasher:   hasher,
		users:    users,
		log:      log.WithComponent("auth"),
	}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,username"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,password"`
}

// Login verifies credentials and issues a bearer token. Requests missing a
// username or password are rejected with 400 before the verifier runs.
// Unknown usernames and wrong passwords produce the identical 401 response
// so the endpoint cannot be used to enumerate accounts.
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, apperr.MessageBody{
			Message: "Username and password are required",
		})
		return
	}
	if err := validation.Validate(req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, apperr.MessageBody{
			Message: "Username and password are required",
		})
		return
	}

	// Screen the username for injection patterns before any credential
	// work; an unsafe username can never match a stored account.
	if !validation.IsSafeString(req.Username) {
		h.rejectLogin(c, "unsafe username")
		return
	}

	identity, err := h.verifier.Verify(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.rejectLogin(c, req.Username)
		return
	}

	token, err := h.tokens.Issue(identity)
	if err != nil {
		respondError(c, h.log, apperr.Internal(err))
		return
	}

	user, err := h.users.ByUsername(c.Request.Context(), identity.Subject)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.log.Info("User logged in", map[string]interface{}{
		logger.FieldUserID: identity.Subject,
	})
	c.JSON(http.StatusOK, gin.H{
		"token":   token,
		"type":    "Bearer",
		"user":    user,
		"message": "Login successful",
	})
}

// rejectLogin answers every failed login identically.
func (h *AuthHandler) rejectLogin(c *gin.Context, detail string) {
	h.log.Warn("Login rejected", map[string]interface{}{
		"detail":             detail,
		logger.FieldClientIP: c.ClientIP(),
	})
	c.AbortWithStatusJSON(http.StatusUnauthorized, apperr.MessageBody{
		Message: "Invalid username or password",
	})
}

// Register creates a new USER account after validating username shape,
// email, password strength, and uniqueness.
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}

	req.Username = validation.SanitizeString(req.Username)
	req.Email = strings.ToLower(validation.SanitizeString(req.Email))

	if err := validation.Validate(req); err != nil {
		respondError(c, h.log, err)
		return
	}

	ctx := c.Request.Context()
	if existing, err := h.users.ByUsername(ctx, req.Username); err != nil {
		respondError(c, h.log, err)
		return
	} else if existing != nil {
		respondError(c, h.log, apperr.Validation("Username already exists"))
		return
	}
	if existing, err := h.users.ByEmail(ctx, req.Email); err != nil {
		respondError(c, h.log, err)
		return
	} else if existing != nil {
		respondError(c, h.log, apperr.Validation("Email already exists"))
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		respondError(c, h.log, apperr.Internal(err))
		return
	}

	user := &store.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
		Role:         auth.RoleUser,
	}
	if err := h.users.Create(ctx, user); err != nil {
		respondError(c, h.log, err)
		return
	}

	h.log.Info("User registered", map[string]interface{}{
		logger.FieldUserID: user.Username,
	})
	c.JSON(http.StatusOK, gin.H{
		"message": "User registered successfully",
		"user":    user,
	})
}

// Refresh re-issues a token for the caller, resetting its expiry. The route
// is authenticated, so the middleware has already validated the old token.
func (h *AuthHandler) Refresh(c *gin.Context) {
	user, err := currentUser(c, h.users)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	token, err := h.tokens.Issue(auth.Identity{Subject: user.Username, Roles: []string{user.Role}})
	if err != nil {
		respondError(c, h.log, apperr.Internal(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"token": token,
		"type":  "Bearer",
	})
}

// Me returns the profile behind the bearer token.
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := currentUser(c, h.users)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
