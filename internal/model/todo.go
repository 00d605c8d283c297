package model

import "time"

// TodoItem is a single task embedded in exactly one Account. The JSON tags
// double as the wire shape and the persisted document shape.
type TodoItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateTodoRequest represents a todo creation request.
type CreateTodoRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateTodoRequest represents a partial patch of a todo. Pointer fields
// distinguish "absent, leave untouched" (nil) from an explicit new value.
type UpdateTodoRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}
