package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tasknest/tasknest-go/internal/middleware"
	"github.com/tasknest/tasknest-go/internal/model"
	"github.com/tasknest/tasknest-go/internal/service"
)

// AuthHandler handles HTTP requests for registration, login, and profile.
type AuthHandler struct {
	service *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{service: svc}
}

// HandleRegister handles POST /api/auth/register requests.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	resp, err := h.service.Register(r.Context(), req)
	if err != nil {
		switch {
		case isRegisterValidationError(err), errors.Is(err, service.ErrAccountExists):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			slog.Error("registration failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse("server error during registration"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, envelope{
		"success": true,
		"message": "User registered successfully",
		"token":   resp.Token,
		"user":    resp.User,
	})
}

// HandleLogin handles POST /api/auth/login requests.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	resp, err := h.service.Login(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingFields):
			writeJSON(w, http.StatusBadRequest, errorResponse("please provide email and password"))
		case errors.Is(err, service.ErrInvalidCredentials):
			writeJSON(w, http.StatusUnauthorized, errorResponse(err.Error()))
		default:
			slog.Error("login failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, errorResponse("server error during login"))
		}
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"message": "Login successful",
		"token":   resp.Token,
		"user":    resp.User,
	})
}

// HandleProfile handles GET /api/auth/profile requests.
func (h *AuthHandler) HandleProfile(w http.ResponseWriter, r *http.Request) {
	accountID, ok := middleware.AccountIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("unauthorized"))
		return
	}

	user, err := h.service.Profile(r.Context(), accountID)
	if err != nil {
		if errors.Is(err, service.ErrAccountNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse("user not found"))
			return
		}
		slog.Error("profile lookup failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse("server error"))
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"user":    user,
	})
}

func isRegisterValidationError(err error) bool {
	return errors.Is(err, service.ErrMissingFields) ||
		errors.Is(err, service.ErrUsernameTooShort) ||
		errors.Is(err, service.ErrPasswordTooShort) ||
		errors.Is(err, service.ErrInvalidEmail)
}
