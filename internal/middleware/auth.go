package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tasknest/tasknest-go/internal/crypto"
)

type contextKey string

const (
	accountIDKey contextKey = "accountID"
	emailKey     contextKey = "email"
)

// Auth returns middleware that verifies the Bearer token from the
// Authorization header and puts the resolved identity claim on the request
// context. Verification never touches the store.
func Auth(tokens *crypto.Tokens) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeAuthError(w, "no authentication token, access denied")
				return
			}

			token, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found || token == "" {
				writeAuthError(w, "no authentication token, access denied")
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				writeAuthError(w, "token is invalid or expired")
				return
			}

			ctx := context.WithValue(r.Context(), accountIDKey, claims.AccountID)
			ctx = context.WithValue(ctx, emailKey, claims.Email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AccountIDFromContext extracts the authenticated account id from the request context.
func AccountIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(accountIDKey).(string)
	return id, ok
}

// EmailFromContext extracts the authenticated email claim from the request context.
func EmailFromContext(ctx context.Context) (string, bool) {
	email, ok := ctx.Value(emailKey).(string)
	return email, ok
}

func writeAuthError(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]any{"success": false, "message": msg})
}
