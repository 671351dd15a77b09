package todos

import (
	"context"

	"github.com/keyxmakerx/sessiondesk/internal/apperror"
)

// TodoService defines the business logic contract for todos.
type TodoService interface {
	ListTodos(ctx context.Context) ([]Todo, error)
}

type todoService struct {
	repo TodoRepository
}

// NewTodoService creates a new todo service.
func NewTodoService(repo TodoRepository) TodoService {
	return &todoService{repo: repo}
}

// ListTodos returns every todo, never nil.
func (s *todoService) ListTodos(ctx context.Context) ([]Todo, error) {
	list, err := s.repo.List(ctx)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	if list == nil {
		list = []Todo{}
	}
	return list, nil
}
