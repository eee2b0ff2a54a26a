package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/quizapi/internal/apperr"
	"github.com/skillsenselab/quizapi/internal/logger"
	"github.com/skillsenselab/quizapi/internal/store"
	"github.com/skillsenselab/quizapi/internal/validation"
)

// QuizHandler serves quiz CRUD. Reads are open to any authenticated user;
// writes are ADMIN (enforced by the access table).
type QuizHandler struct {
	quizzes *store.QuizRepository
	log     *logger.Logger
}

// NewQuizHandler wires the quiz endpoints.
func NewQuizHandler(quizzes *store.QuizRepository, log *logger.Logger) *QuizHandler {
	return &QuizHandler{quizzes: quizzes, log: log.WithComponent("quizzes")}
}

type quizRequest struct {
	Title           string `json:"title" validate:"required,max=255"`
	DifficultyLevel string `json:"difficultyLevel" validate:"omitempty,max=32"`
}

func (h *QuizHandler) List(c *gin.Context) {
	quizzes, err := h.quizzes.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, quizzes)
}

func (h *QuizHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	quiz, err := h.quizzes.ByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (h *QuizHandler) Create(c *gin.Context) {
	var req quizRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	req.Title = validation.SanitizeString(req.Title)
	if err := validation.Validate(req); err != nil {
		respondError(c, h.log, err)
		return
	}

	quiz := &store.Quiz{Title: req.Title, DifficultyLevel: req.DifficultyLevel}
	if err := h.quizzes.Create(c.Request.Context(), quiz); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, quiz)
}

func (h *QuizHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	quiz, err := h.quizzes.ByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req quizRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	req.Title = validation.SanitizeString(req.Title)
	if err := validation.Validate(req); err != nil {
		respondError(c, h.log, err)
		return
	}

	quiz.Title = req.Title
	quiz.DifficultyLevel = req.DifficultyLevel
	if err := h.quizzes.Update(c.Request.Context(), quiz); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, quiz)
}

func (h *QuizHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if err := h.quizzes.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, apperr.MessageBody{Message: "Quiz deleted successfully"})
}
