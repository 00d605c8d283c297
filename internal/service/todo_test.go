package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/tasknest/tasknest-go/internal/model"
	"github.com/tasknest/tasknest-go/internal/repository"
)

func newTestTodoService(t *testing.T) (*TodoService, string) {
	t.Helper()

	store := repository.NewMemoryStore()
	svc := NewTodoService(store)
	return svc, seedAccount(t, store, "alice", "alice@example.com")
}

func seedAccount(t *testing.T, store AccountStore, username, email string) string {
	t.Helper()

	acc := &model.Account{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		AuthHash:  "unused",
		Todos:     []model.TodoItem{},
		CreatedAt: time.Now().UTC(),
	}
	if err := store.Create(context.Background(), acc); err != nil {
		t.Fatalf("seeding account: %v", err)
	}
	return acc.ID
}

func TestAddAndListRoundTrip(t *testing.T) {
	svc, accountID := newTestTodoService(t)

	created, err := svc.Add(context.Background(), accountID, model.CreateTodoRequest{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("Add() unexpected error: %v", err)
	}
	if created.ID == "" {
		t.Error("Add() returned todo without id")
	}
	if created.Completed {
		t.Error("Add() returned completed todo; new todos must start incomplete")
	}

	todos, err := svc.List(context.Background(), accountID)
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(todos) != 1 {
		t.Fatalf("List() returned %d todos, want 1", len(todos))
	}
	if todos[0].Title != "Buy milk" {
		t.Errorf("List() title = %q, want %q", todos[0].Title, "Buy milk")
	}

	second, err := svc.Add(context.Background(), accountID, model.CreateTodoRequest{Title: "Walk dog"})
	if err != nil {
		t.Fatalf("Add() unexpected error: %v", err)
	}
	if second.ID == created.ID {
		t.Error("Add() reused an id; every todo needs a fresh one")
	}
}

func TestListPreservesInsertionOrder(t *testing.T) {
	svc, accountID := newTestTodoService(t)

	titles := []string{"first", "second", "third"}
	for _, title := range titles {
		if _, err := svc.Add(context.Background(), accountID, model.CreateTodoRequest{Title: title}); err != nil {
			t.Fatalf("Add(%q) unexpected error: %v", title, err)
		}
	}

	todos, err := svc.List(context.Background(), accountID)
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	for i, title := range titles {
		if todos[i].Title != title {
			t.Errorf("List()[%d] = %q, want %q", i, todos[i].Title, title)
		}
	}
}

func TestAddEmptyTitle(t *testing.T) {
	svc, accountID := newTestTodoService(t)

	for _, title := range []string{"", "   "} {
		if _, err := svc.Add(context.Background(), accountID, model.CreateTodoRequest{Title: title}); !errors.Is(err, ErrTitleRequired) {
			t.Errorf("Add(title=%q) error = %v, want ErrTitleRequired", title, err)
		}
	}
}

func TestAddUnknownAccount(t *testing.T) {
	svc, _ := newTestTodoService(t)

	if _, err := svc.Add(context.Background(), "no-such-account", model.CreateTodoRequest{Title: "x"}); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("Add() error = %v, want ErrAccountNotFound", err)
	}
}

func TestUpdatePartialPatch(t *testing.T) {
	svc, accountID := newTestTodoService(t)

	created, err := svc.Add(context.Background(), accountID, model.CreateTodoRequest{
		Title:       "Buy milk",
		Description: "two liters",
	})
	if err != nil {
		t.Fatalf("Add() unexpected error: %v", err)
	}

	completed := true
	updated, err := svc.Update(context.Background(), accountID, created.ID, model.UpdateTodoRequest{
		Completed: &completed,
	})
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}

	if !updated.Completed {
		t.Error("Update() did not apply completed")
	}
	if updated.Title != "Buy milk" {
		t.Errorf("Update() changed title to %q; absent fields must stay untouched", updated.Title)
	}
	if updated.Description != "two liters" {
		t.Errorf("Update() changed description to %q; absent fields must stay untouched", updated.Description)
	}
	if !updated.CreatedAt.Equal(created.CreatedAt) {
		t.Error("Update() changed createdAt")
	}
}

func TestUpdateTitleOnly(t *testing.T) {
	svc, accountID := newTestTodoService(t)

	created, err := svc.Add(context.Background(), accountID, model.CreateTodoRequest{
		Title:       "Buy milk",
		Description: "two liters",
	})
	if err != nil {
		t.Fatalf("Add() unexpected error: %v", err)
	}

	title := "Buy oat milk"
	updated, err := svc.Update(context.Background(), accountID, created.ID, model.UpdateTodoRequest{
		Title: &title,
	})
	if err != nil {
		t.Fatalf("Update() unexpected error: %v", err)
	}

	if updated.Title != "Buy oat milk" {
		t.Errorf("Update() title = %q, want %q", updated.Title, "Buy oat milk")
	}
	if updated.Description != "two liters" || updated.Completed {
		t.Error("Update() touched fields absent from the patch")
	}
}

func TestUpdateEmptyTitleRejected(t *testing.T) {
	svc, accountID := newTestTodoService(t)

	created, err := svc.Add(context.Background(), accountID, model.CreateTodoRequest{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("Add() unexpected error: %v", err)
	}

	empty := "  "
	if _, err := svc.Update(context.Background(), accountID, created.ID, model.UpdateTodoRequest{Title: &empty}); !errors.Is(err, ErrTitleRequired) {
		t.Errorf("Update() error = %v, want ErrTitleRequired", err)
	}
}

func TestUpdateUnknownTodo(t *testing.T) {
	svc, accountID := newTestTodoService(t)

	completed := true
	if _, err := svc.Update(context.Background(), accountID, "no-such-todo", model.UpdateTodoRequest{Completed: &completed}); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("Update() error = %v, want ErrTodoNotFound", err)
	}
}

func TestDeletePreservesOrder(t *testing.T) {
	svc, accountID := newTestTodoService(t)

	var ids []string
	for _, title := range []string{"first", "second", "third"} {
		todo, err := svc.Add(context.Background(), accountID, model.CreateTodoRequest{Title: title})
		if err != nil {
			t.Fatalf("Add(%q) unexpected error: %v", title, err)
		}
		ids = append(ids, todo.ID)
	}

	if err := svc.Delete(context.Background(), accountID, ids[1]); err != nil {
		t.Fatalf("Delete() unexpected error: %v", err)
	}

	todos, err := svc.List(context.Background(), accountID)
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(todos) != 2 {
		t.Fatalf("List() returned %d todos, want 2", len(todos))
	}
	if todos[0].Title != "first" || todos[1].Title != "third" {
		t.Errorf("Delete() disturbed order: got [%q, %q]", todos[0].Title, todos[1].Title)
	}
}

func TestDeleteAbsentTodo(t *testing.T) {
	svc, accountID := newTestTodoService(t)

	created, err := svc.Add(context.Background(), accountID, model.CreateTodoRequest{Title: "Buy milk"})
	if err != nil {
		t.Fatalf("Add() unexpected error: %v", err)
	}

	if err := svc.Delete(context.Background(), accountID, "no-such-todo"); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("Delete() error = %v, want ErrTodoNotFound", err)
	}

	// The failed delete must not have touched the collection.
	todos, err := svc.List(context.Background(), accountID)
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(todos) != 1 || todos[0].ID != created.ID {
		t.Error("failed Delete() modified the remaining todos")
	}
}

func TestCrossAccountIsolation(t *testing.T) {
	store := repository.NewMemoryStore()
	svc := NewTodoService(store)

	aliceID := seedAccount(t, store, "alice", "alice@example.com")
	bobID := seedAccount(t, store, "bob", "bob@example.com")

	bobsTodo, err := svc.Add(context.Background(), bobID, model.CreateTodoRequest{Title: "Bob's secret"})
	if err != nil {
		t.Fatalf("Add() unexpected error: %v", err)
	}

	// Alice holds a valid account and Bob's real todo id; every path must
	// come back not-found rather than leak or mutate Bob's data.
	completed := true
	if _, err := svc.Update(context.Background(), aliceID, bobsTodo.ID, model.UpdateTodoRequest{Completed: &completed}); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("Update() across accounts error = %v, want ErrTodoNotFound", err)
	}
	if err := svc.Delete(context.Background(), aliceID, bobsTodo.ID); !errors.Is(err, ErrTodoNotFound) {
		t.Errorf("Delete() across accounts error = %v, want ErrTodoNotFound", err)
	}

	aliceTodos, err := svc.List(context.Background(), aliceID)
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(aliceTodos) != 0 {
		t.Errorf("List() for alice returned %d todos, want 0", len(aliceTodos))
	}

	bobTodos, err := svc.List(context.Background(), bobID)
	if err != nil {
		t.Fatalf("List() unexpected error: %v", err)
	}
	if len(bobTodos) != 1 || bobTodos[0].Completed {
		t.Error("cross-account calls modified bob's todos")
	}
}

func TestListUnknownAccount(t *testing.T) {
	svc, _ := newTestTodoService(t)

	if _, err := svc.List(context.Background(), "no-such-account"); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("List() error = %v, want ErrAccountNotFound", err)
	}
}
