package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/quizapi/internal/apperr"
	"github.com/skillsenselab/quizapi/internal/logger"
	"github.com/skillsenselab/quizapi/internal/store"
	"github.com/skillsenselab/quizapi/internal/validation"
)

// AnswerHandler serves answer CRUD. Everything is ADMIN except the
// per-question listing, which any authenticated user may read.
type AnswerHandler struct {
	answers *store.AnswerRepository
	log     *logger.Logger
}

// NewAnswerHandler wires the answer endpoints.
func NewAnswerHandler(answers *store.AnswerRepository, log *logger.Logger) *AnswerHandler {
	return &AnswerHandler{answers: answers, log: log.WithComponent("answers")}
}

type answerRequest struct {
	QuestionID uint   `json:"questionId" validate:"required"`
	Text       string `json:"text" validate:"required"`
	IsCorrect  bool   `json:"isCorrect"`
}

func (h *AnswerHandler) List(c *gin.Context) {
	answers, err := h.answers.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, answers)
}

func (h *AnswerHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	answer, err := h.answers.ByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}

// ByQuestion returns all answer options of a question.
func (h *AnswerHandler) ByQuestion(c *gin.Context) {
	questionID, err := pathID(c, "questionId")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	answers, err := h.answers.ByQuestion(c.Request.Context(), questionID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, answers)
}

func (h *AnswerHandler) Create(c *gin.Context) {
	var req answerRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	req.Text = validation.SanitizeString(req.Text)
	if err := validation.Validate(req); err != nil {
		respondError(c, h.log, err)
		return
	}

	answer := &store.Answer{QuestionID: req.QuestionID, Text: req.Text, IsCorrect: req.IsCorrect}
	if err := h.answers.Create(c.Request.Context(), answer); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, answer)
}

func (h *AnswerHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	answer, err := h.answers.ByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req answerRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	req.Text = validation.SanitizeString(req.Text)
	if err := validation.Validate(req); err != nil {
		respondError(c, h.log, err)
		return
	}

	answer.QuestionID = req.QuestionID
	answer.Text = req.Text
	answer.IsCorrect = req.IsCorrect
	if err := h.answers.Update(c.Request.Context(), answer); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, answer)
}

func (h *AnswerHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if err := h.answers.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, apperr.MessageBody{Message: "Answer deleted successfully"})
}
