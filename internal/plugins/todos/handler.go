package todos

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// Handler processes HTTP requests for the todos plugin.
type Handler struct {
	svc TodoService
}

// NewHandler creates a new todos Handler.
func NewHandler(svc TodoService) *Handler {
	return &Handler{svc: svc}
}

// List returns all todos. Authentication is not checked.
// GET /todos
func (h *Handler) List(c echo.Context) error {
	list, err := h.svc.ListTodos(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ListResponse{Todos: list})
}
