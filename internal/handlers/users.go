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

// UserHandler serves account management. Listing, creating, and deleting are
// ADMIN operations (enforced by the access table); reads and updates of a
// single account additionally allow the owner.
type UserHandler struct {
	users  *store.UserRepository
	hasher *auth.PasswordHasher
	log    *logger.Logger
}

// NewUserHandler wires the user endpoints.
func NewUserHandler(users *store.UserRepository, hasher *auth.PasswordHasher, log *logger.Logger) *UserHandler {
	return &UserHandler{users: users, hasher: hasher, log: log.WithComponent("users")}
}

type userUpsertRequest struct {
	Username string `json:"username" validate:"omitempty,username"`
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,password"`
	Role     string `json:"role" validate:"omitempty,oneof=ADMIN USER"`
}

// List returns all users.
func (h *UserHandler) List(c *gin.Context) {
	users, err := h.users.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// Me returns the caller's own account.
func (h *UserHandler) Me(c *gin.Context) {
	user, err := currentUser(c, h.users)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

// UpdateMe updates the caller's own account. The role is immutable here.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	user, err := currentUser(c, h.users)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	h.applyUpdate(c, user, false)
}

// Get returns one account; only the owner or an ADMIN may read it.
func (h *UserHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	target, err := h.users.ByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if !h.ownsOrAdmin(c, target) {
		respondError(c, h.log, apperr.Forbidden(""))
		return
	}
	c.JSON(http.StatusOK, target)
}

// Update modifies one account; only the owner or an ADMIN, and only an ADMIN
// may change the role.
func (h *UserHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	target, err := h.users.ByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if !h.ownsOrAdmin(c, target) {
		respondError(c, h.log, apperr.Forbidden(""))
		return
	}
	h.applyUpdate(c, target, isAdmin(c))
}

// Create inserts an account with an explicit role. ADMIN only.
func (h *UserHandler) Create(c *gin.Context) {
	var req userUpsertRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	if req.Username == "" || req.Email == "" || req.Password == "" {
		respondError(c, h.log, apperr.Validation("username, email, and password are required"))
		return
	}
	req.Email = strings.ToLower(req.Email)
	if err := validation.Validate(req); err != nil {
		respondError(c, h.log, err)
		return
	}

	hash, err := h.hasher.Hash(req.Password)
	if err != nil {
		respondError(c, h.log, apperr.Internal(err))
		return
	}
	role := req.Role
	if role == "" {
		role = auth.RoleUser
	}
	user := &store.User{Username: req.Username, Email: req.Email, PasswordHash: hash, Role: role}
	if err := h.users.Create(c.Request.Context(), user); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, user)
}

// Delete removes an account. ADMIN only.
func (h *UserHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if err := h.users.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	h.log.Info("User deleted", map[string]interface{}{"id": id})
	c.JSON(http.StatusOK, apperr.MessageBody{Message: "User deleted successfully"})
}

// ownsOrAdmin reports whether the caller is the target account or an ADMIN.
func (h *UserHandler) ownsOrAdmin(c *gin.Context, target *store.User) bool {
	if isAdmin(c) {
		return true
	}
	identity, ok := auth.IdentityFromGin(c)
	return ok && identity.Subject == target.Username
}

// applyUpdate binds the patch body onto target and saves it. Role changes
// require allowRole; uniqueness is re-checked when username or email change.
func (h *UserHandler) applyUpdate(c *gin.Context, target *store.User, allowRole bool) {
	var req userUpsertRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	req.Email = strings.ToLower(req.Email)
	if err := validation.Validate(req); err != nil {
		respondError(c, h.log, err)
		return
	}

	ctx := c.Request.Context()
	if req.Username != "" && req.Username != target.Username {
		if existing, err := h.users.ByUsername(ctx, req.Username); err != nil {
			respondError(c, h.log, err)
			return
		} else if existing != nil {
			respondError(c, h.log, apperr.Conflict("Username is already taken"))
			return
		}
		target.Username = req.Username
	}
	if req.Email != "" && req.Email != target.Email {
		if existing, err := h.users.ByEmail(ctx, req.Email); err != nil {
			respondError(c, h.log, err)
			return
		} else if existing != nil {
			respondError(c, h.log, apperr.Conflict("Email is already registered"))
			return
		}
		target.Email = req.Email
	}
	if req.Password != "" {
		hash, err := h.hasher.Hash(req.Password)
		if err != nil {
			respondError(c, h.log, apperr.Internal(err))
			return
		}
		target.PasswordHash = hash
	}
	if req.Role != "" && req.Role != target.Role {
		if !allowRole {
			respondError(c, h.log, apperr.Forbidden("Only admins may change roles"))
			return
		}
		target.Role = req.Role
	}

	if err := h.users.Update(ctx, target); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, target)
}
