package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tasknest/tasknest-go/internal/model"
	"github.com/tasknest/tasknest-go/internal/repository"
)

var (
	ErrTitleRequired = errors.New("title is required")
	ErrTodoNotFound  = errors.New("todo not found")
)

// writeRetries bounds how often a mutation is replayed after losing a
// version-guarded write to a concurrent request.
const writeRetries = 3

// TodoService manages the todo collection embedded in an account. Every
// operation is scoped to the account id resolved from the caller's token;
// there is no path to a todo that bypasses its owner.
type TodoService struct {
	store AccountStore
}

// NewTodoService creates a new TodoService.
func NewTodoService(store AccountStore) *TodoService {
	return &TodoService{store: store}
}

// List returns the account's todos in insertion order.
func (s *TodoService) List(ctx context.Context, accountID string) ([]model.TodoItem, error) {
	acc, err := s.store.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	if acc.Todos == nil {
		return []model.TodoItem{}, nil
	}
	return acc.Todos, nil
}

// Add appends a new todo to the end of the account's collection and returns
// the created item with its assigned id.
func (s *TodoService) Add(ctx context.Context, accountID string, req model.CreateTodoRequest) (model.TodoItem, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return model.TodoItem{}, ErrTitleRequired
	}

	item := model.TodoItem{
		ID:          uuid.NewString(),
		Title:       title,
		Description: strings.TrimSpace(req.Description),
		Completed:   false,
		CreatedAt:   time.Now().UTC(),
	}

	err := s.mutate(ctx, accountID, func(acc *model.Account) error {
		acc.Todos = append(acc.Todos, item)
		return nil
	})
	if err != nil {
		return model.TodoItem{}, err
	}

	return item, nil
}

// Update applies a partial patch to a todo: only fields present in the
// request overwrite existing values. Returns the updated item.
func (s *TodoService) Update(ctx context.Context, accountID, todoID string, req model.UpdateTodoRequest) (model.TodoItem, error) {
	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		return model.TodoItem{}, ErrTitleRequired
	}

	var updated model.TodoItem
	err := s.mutate(ctx, accountID, func(acc *model.Account) error {
		i := findTodo(acc.Todos, todoID)
		if i < 0 {
			return ErrTodoNotFound
		}

		todo := &acc.Todos[i]
		if req.Title != nil {
			todo.Title = strings.TrimSpace(*req.Title)
		}
		if req.Description != nil {
			todo.Description = strings.TrimSpace(*req.Description)
		}
		if req.Completed != nil {
			todo.Completed = *req.Completed
		}

		updated = *todo
		return nil
	})
	if err != nil {
		return model.TodoItem{}, err
	}

	return updated, nil
}

// Delete removes a todo from the account's collection, preserving the
// relative order of the remaining items.
func (s *TodoService) Delete(ctx context.Context, accountID, todoID string) error {
	return s.mutate(ctx, accountID, func(acc *model.Account) error {
		i := findTodo(acc.Todos, todoID)
		if i < 0 {
			return ErrTodoNotFound
		}
		acc.Todos = append(acc.Todos[:i], acc.Todos[i+1:]...)
		return nil
	})
}

// mutate runs the load → modify → write-back cycle for the account's
// document. A version conflict means another request committed between our
// read and write; reload and replay rather than overwrite its change.
func (s *TodoService) mutate(ctx context.Context, accountID string, fn func(*model.Account) error) error {
	for attempt := 0; attempt < writeRetries; attempt++ {
		acc, err := s.store.GetByID(ctx, accountID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return ErrAccountNotFound
			}
			return err
		}

		if err := fn(acc); err != nil {
			return err
		}

		err = s.store.Update(ctx, acc)
		if err == nil {
			return nil
		}
		if errors.Is(err, repository.ErrAccountNotFound) {
			return ErrAccountNotFound
		}
		if !errors.Is(err, repository.ErrVersionConflict) {
			return err
		}
	}

	return fmt.Errorf("account %s: write contention persisted after %d attempts", accountID, writeRetries)
}

func findTodo(todos []model.TodoItem, id string) int {
	for i := range todos {
		if todos[i].ID == id {
			return i
		}
	}
	return -1
}
