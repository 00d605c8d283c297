package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/tasknest/tasknest-go/internal/middleware"
	"github.com/tasknest/tasknest-go/internal/model"
	"github.com/tasknest/tasknest-go/internal/service"
)

// TodoHandler handles HTTP requests for the account's todo collection.
type TodoHandler struct {
	service *service.TodoService
}

// NewTodoHandler creates a new TodoHandler.
func NewTodoHandler(svc *service.TodoService) *TodoHandler {
	return &TodoHandler{service: svc}
}

// HandleList handles GET /api/todos requests.
func (h *TodoHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	todos, err := h.service.List(r.Context(), accountID)
	if err != nil {
		h.writeTodoError(w, err, "listing todos")
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"todos":   todos,
	})
}

// HandleCreate handles POST /api/todos requests.
func (h *TodoHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.CreateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	todo, err := h.service.Add(r.Context(), accountID, req)
	if err != nil {
		h.writeTodoError(w, err, "creating todo")
		return
	}

	writeJSON(w, http.StatusCreated, envelope{
		"success": true,
		"message": "Todo created successfully",
		"todo":    todo,
	})
}

// HandleUpdate handles PUT /api/todos/{id} requests.
func (h *TodoHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	todoID := chi.URLParam(r, "id")
	if todoID == "" || len(todoID) > 36 {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid todo id"))
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.UpdateTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	todo, err := h.service.Update(r.Context(), accountID, todoID, req)
	if err != nil {
		h.writeTodoError(w, err, "updating todo")
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Todo updated successfully",
		"todo":    todo,
	})
}

// HandleDelete handles DELETE /api/todos/{id} requests.
func (h *TodoHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	todoID := chi.URLParam(r, "id")
	if todoID == "" || len(todoID) > 36 {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid todo id"))
		return
	}

	if err := h.service.Delete(r.Context(), accountID, todoID); err != nil {
		h.writeTodoError(w, err, "deleting todo")
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Todo deleted successfully",
	})
}

func (h *TodoHandler) writeTodoError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, service.ErrTitleRequired):
		writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
	case errors.Is(err, service.ErrAccountNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse("user not found"))
	case errors.Is(err, service.ErrTodoNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse(err.Error()))
	default:
		slog.Error(op+" failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("server error"))
	}
}
