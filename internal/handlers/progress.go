package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/quizapi/internal/apperr"
	"github.com/skillsenselab/quizapi/internal/logger"
	"github.com/skillsenselab/quizapi/internal/store"
	"github.com/skillsenselab/quizapi/internal/validation"
)

// ProgressHandler serves per-question progress records. Access is scoped
// through attempt ownership: a record is visible only to the owner of its
// attempt, or to an ADMIN.
type ProgressHandler struct {
	progress *store.ProgressRepository
	attempts *store.AttemptRepository
	users    *store.UserRepository
	log      *logger.Logger
}

// NewProgressHandler wires the quiz progress endpoints.
func NewProgressHandler(progress *store.ProgressRepository, attempts *store.AttemptRepository, users *store.UserRepository, log *logger.Logger) *ProgressHandler {
	return &ProgressHandler{progress: progress, attempts: attempts, users: users, log: log.WithComponent("progress")}
}

type progressRequest struct {
	AttemptID  uint `json:"attemptId" validate:"required"`
	QuizID     uint `json:"quizId" validate:"required"`
	QuestionID uint `json:"questionId" validate:"required"`
	IsCorrect  bool `json:"isCorrect"`
}

// List returns the caller's progress records, or all records for an ADMIN.
func (h *ProgressHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	records, err := h.progress.List(ctx)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if isAdmin(c) {
		c.JSON(http.StatusOK, records)
		return
	}

	user, err := currentUser(c, h.users)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	attempts, err := h.attempts.ByUser(ctx, user.ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	owned := make(map[uint]bool, len(attempts))
	for _, a := range attempts {
		owned[a.ID] = true
	}
	mine := make([]store.QuizProgress, 0, len(records))
	for _, p := range records {
		if owned[p.AttemptID] {
			mine = append(mine, p)
		}
	}
	c.JSON(http.StatusOK, mine)
}

// Get returns one progress record if the caller owns the attempt behind it.
func (h *ProgressHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	record, err := h.progress.ByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if err := h.authorize(c, record.AttemptID); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

// ByAttempt returns all progress records of one attempt.
func (h *ProgressHandler) ByAttempt(c *gin.Context) {
	attemptID, err := pathID(c, "attemptId")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if err := h.authorize(c, attemptID); err != nil {
		respondError(c, h.log, err)
		return
	}
	records, err := h.progress.ByAttempt(c.Request.Context(), attemptID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// Create records progress against an attempt the caller owns.
func (h *ProgressHandler) Create(c *gin.Context) {
	var req progressRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	if err := validation.Validate(req); err != nil {
		respondError(c, h.log, err)
		return
	}
	if err := h.authorize(c, req.AttemptID); err != nil {
		respondError(c, h.log, err)
		return
	}

	record := &store.QuizProgress{
		AttemptID:  req.AttemptID,
		QuizID:     req.QuizID,
		QuestionID: req.QuestionID,
		IsCorrect:  req.IsCorrect,
	}
	if err := h.progress.Create(c.Request.Context(), record); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, record)
}

// Delete removes one progress record, subject to attempt ownership.
func (h *ProgressHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	record, err := h.progress.ByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if err := h.authorize(c, record.AttemptID); err != nil {
		respondError(c, h.log, err)
		return
	}
	if err := h.progress.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, apperr.MessageBody{Message: "Quiz progress deleted successfully"})
}

// authorize verifies the caller owns the attempt, or is an ADMIN. Foreign
// attempts read as 404 so IDs cannot be probed.
func (h *ProgressHandler) authorize(c *gin.Context, attemptID uint) error {
	if isAdmin(c) {
		return nil
	}
	attempt, err := h.attempts.ByID(c.Request.Context(), attemptID)
	if err != nil {
		return err
	}
	user, err := currentUser(c, h.users)
	if err != nil {
		return err
	}
	if attempt.UserID != user.ID {
		return apperr.NotFound("quiz progress")
	}
	return nil
}
