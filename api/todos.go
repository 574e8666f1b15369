package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/minazuki-dev/todo-list/db"
	"github.com/minazuki-dev/todo-list/log"
	"github.com/minazuki-dev/todo-list/model"
)

// maxTitleLen is the server-side limit on a trimmed title. It is the
// authoritative one; clients may impose a lower input limit.
const maxTitleLen = 500

// Handler carries the storage handle for the todo endpoints
type Handler struct {
	db *db.DB
}

// NewHandler creates a handler backed by the given database
func NewHandler(database *db.DB) *Handler {
	return &Handler{db: database}
}

// Request bodies use json.RawMessage so an absent field (nil) is
// distinguishable from a present-but-wrong-type value. On PATCH, absent
// means unchanged.

type createTodoRequest struct {
	Title json.RawMessage `json:"title"`
}

type updateTodoRequest struct {
	Title     json.RawMessage `json:"title"`
	Completed json.RawMessage `json:"completed"`
}

// parseTitle validates a raw title value and returns the trimmed title, or
// a validation message for the caller. The same rules apply to create and
// update.
func parseTitle(raw json.RawMessage) (string, string) {
	var title string
	if len(raw) == 0 || string(raw) == "null" {
		return "", "title is required and must be a string"
	}
	if err := json.Unmarshal(raw, &title); err != nil {
		return "", "title is required and must be a string"
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return "", "title must not be empty"
	}
	if utf8.RuneCountInString(title) > maxTitleLen {
		return "", fmt.Sprintf("title must not exceed %d characters", maxTitleLen)
	}
	return title, ""
}

// ListTodos handles GET /api/todos
func (h *Handler) ListTodos(c *gin.Context) {
	todos, err := h.db.ListTodos()
	if err != nil {
		log.Error().Err(err).Msg("failed to list todos")
		respondError(c, http.StatusInternalServerError, "Failed to retrieve todos")
		return
	}

	if todos == nil {
		todos = []model.Todo{}
	}

	c.JSON(http.StatusOK, todos)
}

// CreateTodo handles POST /api/todos
func (h *Handler) CreateTodo(c *gin.Context) {
	var body createTodoRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, http.StatusBadRequest, "title is required and must be a string")
		return
	}

	title, msg := parseTitle(body.Title)
	if msg != "" {
		respondError(c, http.StatusBadRequest, msg)
		return
	}

	todo := model.Todo{
		ID:        uuid.New().String(),
		Title:     title,
		Completed: false,
		CreatedAt: db.NowUTC(),
	}

	if err := h.db.InsertTodo(todo); err != nil {
		log.Error().Err(err).Msg("failed to create todo")
		respondError(c, http.StatusInternalServerError, "Failed to create todo")
		return
	}

	c.JSON(http.StatusCreated, todo)
}

// UpdateTodo handles PATCH /api/todos/:id
// Body fields are optional; omitted fields are left unchanged.
func (h *Handler) UpdateTodo(c *gin.Context) {
	id := c.Param("id")

	existing, err := h.db.GetTodo(id)
	if err != nil {
		log.Error().Err(err).Msg("failed to load todo")
		respondError(c, http.StatusInternalServerError, "Failed to update todo")
		return
	}
	if existing == nil {
		respondError(c, http.StatusNotFound, fmt.Sprintf("Todo with id %q not found", id))
		return
	}

	// An empty body is a valid no-field update
	var body updateTodoRequest
	if err := c.ShouldBindJSON(&body); err != nil && err != io.EOF {
		respondError(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	title := existing.Title
	completed := existing.Completed

	if body.Title != nil {
		t, msg := parseTitle(body.Title)
		if msg != "" {
			respondError(c, http.StatusBadRequest, msg)
			return
		}
		title = t
	}

	if body.Completed != nil {
		var b bool
		if string(body.Completed) == "null" || json.Unmarshal(body.Completed, &b) != nil {
			respondError(c, http.StatusBadRequest, "completed must be a boolean")
			return
		}
		completed = b
	}

	if err := h.db.UpdateTodo(id, title, completed); err != nil {
		log.Error().Err(err).Msg("failed to update todo")
		respondError(c, http.StatusInternalServerError, "Failed to update todo")
		return
	}

	c.JSON(http.StatusOK, model.Todo{
		ID:        id,
		Title:     title,
		Completed: completed,
		CreatedAt: existing.CreatedAt,
	})
}

// DeleteTodo handles DELETE /api/todos/:id
func (h *Handler) DeleteTodo(c *gin.Context) {
	id := c.Param("id")

	deleted, err := h.db.DeleteTodo(id)
	if err != nil {
		log.Error().Err(err).Msg("failed to delete todo")
		respondError(c, http.StatusInternalServerError, "Failed to delete todo")
		return
	}
	if !deleted {
		respondError(c, http.StatusNotFound, fmt.Sprintf("Todo with id %q not found", id))
		return
	}

	c.Status(http.StatusNoContent)
}
