// Package client is a typed REST client for the todo API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/minazuki-dev/todo-list/model"
)

// DefaultBaseURL points at a locally running todod
const DefaultBaseURL = "http://localhost:3001"

// Client talks to the todo API server
type Client struct {
	baseURL string
	http    *http.Client
}

// New creates a client for the given server base URL
func New(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// APIError carries the server's error message and HTTP status
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// Patch carries only the fields to change; nil fields are omitted from the
// request body and left unchanged by the server.
type Patch struct {
	Title     *string `json:"title,omitempty"`
	Completed *bool   `json:"completed,omitempty"`
}

// FetchTodos retrieves all todos, ordered oldest first
func (c *Client) FetchTodos(ctx context.Context) ([]model.Todo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/todos", nil)
	if err != nil {
		return nil, err
	}

	var todos []model.Todo
	if err := c.do(req, http.StatusOK, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

// CreateTodo creates a new todo with the given title
func (c *Client) CreateTodo(ctx context.Context, title string) (model.Todo, error) {
	body, err := json.Marshal(map[string]string{"title": title})
	if err != nil {
		return model.Todo{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/todos", bytes.NewReader(body))
	if err != nil {
		return model.Todo{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var todo model.Todo
	if err := c.do(req, http.StatusCreated, &todo); err != nil {
		return model.Todo{}, err
	}
	return todo, nil
}

// UpdateTodo applies a partial update and returns the updated record
func (c *Client) UpdateTodo(ctx context.Context, id string, patch Patch) (model.Todo, error) {
	body, err := json.Marshal(patch)
	if err != nil {
		return model.Todo{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.baseURL+"/api/todos/"+id, bytes.NewReader(body))
	if err != nil {
		return model.Todo{}, err
	}
	req.Header.Set("Content-Type", "application/json")

	var todo model.Todo
	if err := c.do(req, http.StatusOK, &todo); err != nil {
		return model.Todo{}, err
	}
	return todo, nil
}

// DeleteTodo removes a todo by id
func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+"/api/todos/"+id, nil)
	if err != nil {
		return err
	}
	return c.do(req, http.StatusNoContent, nil)
}

// do executes the request, decoding either the expected success body or
// the server's {"error": ...} shape into an *APIError.
func (c *Client) do(req *http.Request, wantStatus int, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		return decodeError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	body, err := io.ReadAll(resp.Body)
	if err == nil {
		var payload struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &payload) == nil && payload.Error != "" {
			apiErr.Message = payload.Error
			return apiErr
		}
	}

	apiErr.Message = fmt.Sprintf("request failed: %s", resp.Status)
	return apiErr
}
