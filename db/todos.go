package db

import (
	"database/sql"
	"time"

	"github.com/minazuki-dev/todo-list/model"
)

// SQLite stores the completed flag as an integer (0/1). The conversion to
// and from bool happens here and nowhere else; no other package ever sees
// the raw stored representation.

// NowUTC returns the current time as an ISO-8601 UTC string with
// millisecond precision. The fixed width keeps lexicographic order equal
// to chronological order, which ListTodos relies on.
func NowUTC() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
}

// ListTodos returns all todos ordered by creation time, oldest first
func (db *DB) ListTodos() ([]model.Todo, error) {
	rows, err := db.conn.Query(`
		SELECT id, title, completed, created_at
		FROM todos
		ORDER BY created_at ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var todos []model.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

// GetTodo returns a single todo by ID, or nil when no such row exists
func (db *DB) GetTodo(id string) (*model.Todo, error) {
	row := db.conn.QueryRow(`
		SELECT id, title, completed, created_at
		FROM todos
		WHERE id = ?
	`, id)

	t, err := scanTodo(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// InsertTodo persists a new todo
func (db *DB) InsertTodo(t model.Todo) error {
	_, err := db.conn.Exec(`
		INSERT INTO todos (id, title, completed, created_at)
		VALUES (?, ?, ?, ?)
	`, t.ID, t.Title, boolToInt(t.Completed), t.CreatedAt)
	return err
}

// UpdateTodo writes the merged title and completed flag in one statement.
// id and created_at are never altered.
func (db *DB) UpdateTodo(id, title string, completed bool) error {
	_, err := db.conn.Exec(`
		UPDATE todos SET title = ?, completed = ? WHERE id = ?
	`, title, boolToInt(completed), id)
	return err
}

// DeleteTodo removes a todo and reports whether a row was deleted
func (db *DB) DeleteTodo(id string) (bool, error) {
	result, err := db.conn.Exec("DELETE FROM todos WHERE id = ?", id)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// scanner covers both *sql.Row and *sql.Rows
type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(s scanner) (model.Todo, error) {
	var t model.Todo
	var completed int
	if err := s.Scan(&t.ID, &t.Title, &completed, &t.CreatedAt); err != nil {
		return model.Todo{}, err
	}
	t.Completed = completed == 1
	return t, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
