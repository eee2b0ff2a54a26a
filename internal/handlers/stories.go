package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/quizapi/internal/apperr"
	"github.com/skillsenselab/quizapi/internal/logger"
	"github.com/skillsenselab/quizapi/internal/store"
	"github.com/skillsenselab/quizapi/internal/validation"
)

// StoryHandler serves story CRUD. Writes are ADMIN.
type StoryHandler struct {
	stories *store.StoryRepository
	log     *logger.Logger
}

// NewStoryHandler wires the story endpoints.
func NewStoryHandler(stories *store.StoryRepository, log *logger.Logger) *StoryHandler {
	return &StoryHandler{stories: stories, log: log.WithComponent("stories")}
}

type storyRequest struct {
	QuizID  uint   `json:"quizId" validate:"required"`
	Title   string `json:"title" validate:"required,max=255"`
	Author  string `json:"author" validate:"omitempty,max=255"`
	Content string `json:"content" validate:"required"`
}

func (h *StoryHandler) List(c *gin.Context) {
	stories, err := h.stories.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, stories)
}

func (h *StoryHandler) Get(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	story, err := h.stories.ByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, story)
}

// ByQuiz returns all stories attached to a quiz.
func (h *StoryHandler) ByQuiz(c *gin.Context) {
	quizID, err := pathID(c, "quizId")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	stories, err := h.stories.ByQuiz(c.Request.Context(), quizID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, stories)
}

func (h *StoryHandler) Create(c *gin.Context) {
	var req storyRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	req.Title = validation.SanitizeString(req.Title)
	if err := validation.Validate(req); err != nil {
		respondError(c, h.log, err)
		return
	}

	story := &store.Story{QuizID: req.QuizID, Title: req.Title, Author: req.Author, Content: req.Content}
	if err := h.stories.Create(c.Request.Context(), story); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, story)
}

func (h *StoryHandler) Update(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	story, err := h.stories.ByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	var req storyRequest
	if err := bindJSON(c, &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	req.Title = validation.SanitizeString(req.Title)
	if err := validation.Validate(req); err != nil {
		respondError(c, h.log, err)
		return
	}

	story.QuizID = req.QuizID
	story.Title = req.Title
	story.Author = req.Author
	story.Content = req.Content
	if err := h.stories.Update(c.Request.Context(), story); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, story)
}

func (h *StoryHandler) Delete(c *gin.Context) {
	id, err := pathID(c, "id")
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if err := h.stories.Delete(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, apperr.MessageBody{Message: "Story deleted successfully"})
}
