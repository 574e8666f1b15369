package tui

import (
	"github.com/minazuki-dev/todo-list/model"
)

// Messages delivered by API commands. Every message carries Err so a
// failed call surfaces in the error banner without touching list state.

// todosLoadedMsg contains the full list from the server
type todosLoadedMsg struct {
	Todos []model.Todo
	Err   error
}

// todoCreatedMsg indicates a todo was created
type todoCreatedMsg struct {
	Todo model.Todo
	Err  error
}

// todoUpdatedMsg indicates a todo's completed flag was toggled
type todoUpdatedMsg struct {
	ID   string
	Todo model.Todo
	Err  error
}

// todoDeletedMsg indicates a todo was deleted
type todoDeletedMsg struct {
	ID  string
	Err error
}
