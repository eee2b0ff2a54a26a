package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/quizapi/internal/apperr"
	"github.com/skillsenselab/quizapi/internal/logger"
	"github.com/skillsenselab/quizapi/internal/store"
	"github.com/skillsenselab/quizapi/internal/validation"
)

// AttemptHandler serves quiz attempts. Results are scoped to the owner
// unless the caller is an ADMIN.
type AttemptHandler struct {
	attempts *store.AttemptRepository
	users    *store.UserRepository
	log      *logger.Logger
}

// NewAttemptHandler wires the quiz attempt endpoints.
func NewAttemptHandler(attempts *store.AttemptRepository, users *store.UserRepository, log *logger.Logger) *AttemptHandler {
	return &AttemptHandler{attempts: attempts, users: users, log: log.WithComponent("attempts")}
}

type attemptRequest struct {
	QuizID uint `json:"quizId" validate:"required"`
	Score  int  `json:"score" validate:"min=0,max=100"`
}

// List returns the caller's attempts, or every attempt for an ADMIN.
func (h *AttemptHandler) List(c *gin.Context) {
	if isAdmin(c) {
		attempts, err := h.attempts.List(c.Request.Context())
		if err != nil {
			respondError(c, h.log, err)
			return
		}
		c.JSON(http.StatusOK, attempts)
		return
	}

	user, err := currentUser(c, h.users)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	attempts, err := h.attempts.ByUser(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, attempts)
}

// Get returns one attempt if the caller owns it or is an ADMIN. Foreign
// attempts read as 404 rather than 403 so IDs cannot be probed.
func (h *AttemptHandler) Get(c *gin.Context) {
	attempt, err := h.ownedAttempt(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, attempt)
}

// Create records an attempt for the caller, stamping user and date
// server-side regardless of the body.
func (h *AttemptHandler) Create(c *gin.Context) {
	user, err := currentUser(c, h.users)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req attemptRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	if err := validation.Validate(req); err != nil {
		respondError(c, h.log, err)
		return
	}

	attempt := &store.QuizAttempt{
		UserID: user.ID,
		QuizID: req.QuizID,
		Score:  req.Score,
		Date:   time.Now().UTC(),
	}
	if err := h.attempts.Create(c.Request.Context(), attempt); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, attempt)
}

// Delete removes an attempt the caller owns, or any attempt for an ADMIN.
func (h *AttemptHandler) Delete(c *gin.Context) {
	attempt, err := h.ownedAttempt(c)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if err := h.attempts.Delete(c.Request.Context(), attempt.ID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, apperr.MessageBody{Message: "Quiz attempt deleted successfully"})
}

// ownedAttempt loads the attempt in the path and enforces ownership.
func (h *AttemptHandler) ownedAttempt(c *gin.Context) (*store.QuizAttempt, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	attempt, err := h.attempts.ByID(c.Request.Context(), id)
	if err != nil {
		return nil, err
	}
	if isAdmin(c) {
		return attempt, nil
	}
	user, err := currentUser(c, h.users)
	if err != nil {
		return nil, err
	}
	if attempt.UserID != user.ID {
		return nil, apperr.NotFound("quiz attempt")
	}
	return attempt, nil
}
