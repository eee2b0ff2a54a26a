package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/quizapi/internal/apperr"
	"github.com/skillsenselab/quizapi/internal/logger"
	"github.com/skillsenselab/quizapi/internal/store"
	"github.com/skillsenselab/quizapi/internal/validation"
)

// QuestionHandler serves question CRUD. Writes are ADMIN.
type QuestionHandler struct {
	questions *store.QuestionRepository
	log       *logger.Logger
}

// NewQuestionHandler wires the question endpoints.
func NewQuestionHandler(questions *store.QuestionRepository, log *logger.Logger) *QuestionHandler {
	return &QuestionHandler{questions: questions, log: log.WithComponent("questions")}
}

type questionRequest struct {
	QuizID uint   `json:"quizId" validate:"required"`
	Text   string `json:"text" validate:"required"`
	Type   string `json:"type" validate:"omitempty,max=32"`
}

func (h *QuestionHandler) List(c *gin.Context) {
	questions, err := h.questions.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

func (h *QuestionHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	question, err := h.questions.ByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

// ByQuiz returns all questions of a quiz.
func (h *QuestionHandler) ByQuiz(c *gin.Context) {
	quizID, err := pathID(c, "quizId")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	questions, err := h.questions.ByQuiz(c.Request.Context(), quizID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, questions)
}

func (h *QuestionHandler) Create(c *gin.Context) {
	var req questionRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	req.Text = validation.SanitizeString(req.Text)
	if err := validation.Validate(req); err != nil {
		respondError(c, h.log, err)
		return
	}

	question := &store.Question{QuizID: req.QuizID, Text: req.Text, Type: req.Type}
	if err := h.questions.Create(c.Request.Context(), question); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, question)
}

func (h *QuestionHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	question, err := h.questions.ByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req questionRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	req.Text = validation.SanitizeString(req.Text)
	if err := validation.Validate(req); err != nil {
		respondError(c, h.log, err)
		return
	}

	question.QuizID = req.QuizID
	question.Text = req.Text
	question.Type = req.Type
	if err := h.questions.Update(c.Request.Context(), question); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, question)
}

func (h *QuestionHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if err := h.questions.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, apperr.MessageBody{Message: "Question deleted successfully"})
}
