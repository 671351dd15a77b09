package todos

import (
	"context"
	"database/sql"
	"fmt"
)

// TodoRepository defines read access to todos.
type TodoRepository interface {
	List(ctx context.Context) ([]Todo, error)
}

type todoRepository struct {
	db *sql.DB
}

// NewTodoRepository creates a new todo repository.
func NewTodoRepository(db *sql.DB) TodoRepository {
	return &todoRepository{db: db}
}

// List returns every todo.
func (r *todoRepository) List(ctx context.Context) ([]Todo, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, title, done FROM todos`)
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	defer rows.Close()

	result := []Todo{}
	for rows.Next() {
		var t Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.Done); err != nil {
			return nil, fmt.Errorf("scanning todo: %w", err)
		}
		result = append(result, t)
	}
	return result, rows.Err()
}
