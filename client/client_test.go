package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/minazuki-dev/todo-list/api"
	"github.com/minazuki-dev/todo-list/db"
)

// newTestServer runs the real router over httptest so the client is
// exercised against actual handler behavior.
func newTestServer(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := db.Open(db.Config{Path: filepath.Join(t.TempDir(), "test.db")})
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { database.Close() })

	r := gin.New()
	api.SetupRoutes(r, database)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return New(srv.URL)
}

func TestClientLifecycle(t *testing.T) {
	c := newTestServer(t)
	ctx := context.Background()

	todo, err := c.CreateTodo(ctx, "  Buy milk  ")
	if err != nil {
		t.Fatalf("CreateTodo: %v", err)
	}
	if todo.Title != "Buy milk" || todo.Completed {
		t.Fatalf("created = %+v", todo)
	}

	todos, err := c.FetchTodos(ctx)
	if err != nil {
		t.Fatalf("FetchTodos: %v", err)
	}
	if len(todos) != 1 || todos[0] != todo {
		t.Fatalf("list = %+v, want [%+v]", todos, todo)
	}

	completed := true
	updated, err := c.UpdateTodo(ctx, todo.ID, Patch{Completed: &completed})
	if err != nil {
		t.Fatalf("UpdateTodo: %v", err)
	}
	if !updated.Completed || updated.Title != todo.Title || updated.CreatedAt != todo.CreatedAt {
		t.Fatalf("updated = %+v", updated)
	}

	if err := c.DeleteTodo(ctx, todo.ID); err != nil {
		t.Fatalf("DeleteTodo: %v", err)
	}

	todos, err = c.FetchTodos(ctx)
	if err != nil {
		t.Fatalf("FetchTodos: %v", err)
	}
	if len(todos) != 0 {
		t.Fatalf("list after delete = %+v", todos)
	}
}

func TestClientSurfacesServerMessages(t *testing.T) {
	c := newTestServer(t)
	ctx := context.Background()

	_, err := c.CreateTodo(ctx, "   ")
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type = %T (%v), want *APIError", err, err)
	}
	if apiErr.Status != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", apiErr.Status)
	}
	if apiErr.Message != "title must not be empty" {
		t.Errorf("Message = %q", apiErr.Message)
	}

	err = c.DeleteTodo(ctx, "missing")
	apiErr, ok = err.(*APIError)
	if !ok {
		t.Fatalf("error type = %T (%v), want *APIError", err, err)
	}
	if apiErr.Status != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", apiErr.Status)
	}
	if apiErr.Message != `Todo with id "missing" not found` {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestPatchOmitsNilFields(t *testing.T) {
	received := make(chan []byte, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		received <- body
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"x","title":"t","completed":true,"created_at":"2026-01-01T00:00:00.000Z"}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	completed := true
	if _, err := c.UpdateTodo(context.Background(), "x", Patch{Completed: &completed}); err != nil {
		t.Fatalf("UpdateTodo: %v", err)
	}

	if got, want := string(<-received), `{"completed":true}`; got != want {
		t.Errorf("request body = %s, want %s", got, want)
	}
}
