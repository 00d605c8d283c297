package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/tasknest/tasknest-go/internal/config"
	"github.com/tasknest/tasknest-go/internal/crypto"
	"github.com/tasknest/tasknest-go/internal/handler"
	"github.com/tasknest/tasknest-go/internal/middleware"
	"github.com/tasknest/tasknest-go/internal/repository"
	"github.com/tasknest/tasknest-go/internal/service"
)

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}

	cfg := config.Load()

	var store service.AccountStore
	db, err := repository.NewDB(cfg.DatabaseDSN)
	if err != nil {
		slog.Warn("database unavailable — falling back to in-memory store, data will not survive restarts", "error", err)
		store = repository.NewMemoryStore()
	} else {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		if err := repository.EnsureSchema(ctx, db); err != nil {
			cancel()
			slog.Error("schema setup failed", "error", err)
			os.Exit(1)
		}
		cancel()
		store = repository.NewAccountRepository(db)
	}

	tokens := crypto.NewTokens(cfg.JWTSecret, cfg.JWTExpiry)

	authService := service.NewAuthService(store, tokens, cfg.MinUsernameLen, cfg.MinPasswordLen)
	authHandler := handler.NewAuthHandler(authService)

	todoService := service.NewTodoService(store)
	todoHandler := handler.NewTodoHandler(todoService)

	r := chi.NewRouter()
	r.Use(middleware.Logger)

	r.Get("/api/health", handler.HandleHealth)
	r.Post("/api/auth/register", authHandler.HandleRegister)
	r.Post("/api/auth/login", authHandler.HandleLogin)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(tokens))
		r.Get("/api/auth/profile", authHandler.HandleProfile)

		r.Get("/api/todos", todoHandler.HandleList)
		r.Post("/api/todos", todoHandler.HandleCreate)
		r.Put("/api/todos/{id}", todoHandler.HandleUpdate)
		r.Delete("/api/todos/{id}", todoHandler.HandleDelete)
	})

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("server forced shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped")
}
