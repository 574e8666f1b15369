package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/minazuki-dev/todo-list/client"
)

// Each user intent issues exactly one API call, wrapped in a tea.Cmd that
// resolves to one of the messages in messages.go.

func loadTodosCmd(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		todos, err := c.FetchTodos(context.Background())
		return todosLoadedMsg{Todos: todos, Err: err}
	}
}

func createTodoCmd(c *client.Client, title string) tea.Cmd {
	return func() tea.Msg {
		todo, err := c.CreateTodo(context.Background(), title)
		return todoCreatedMsg{Todo: todo, Err: err}
	}
}

func toggleTodoCmd(c *client.Client, id string, completed bool) tea.Cmd {
	return func() tea.Msg {
		todo, err := c.UpdateTodo(context.Background(), id, client.Patch{Completed: &completed})
		return todoUpdatedMsg{ID: id, Todo: todo, Err: err}
	}
}

func deleteTodoCmd(c *client.Client, id string) tea.Cmd {
	return func() tea.Msg {
		err := c.DeleteTodo(context.Background(), id)
		return todoDeletedMsg{ID: id, Err: err}
	}
}
