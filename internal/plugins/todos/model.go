// Package todos serves the public, read-only todo list.
package todos

// Todo is a seeded todo row.
type Todo struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
	Done  bool   `json:"done"`
}

// ListResponse is the body of GET /todos.
type ListResponse struct {
	Todos []Todo `json:"todos"`
}
