package model

import "time"

// Account represents a registered user and the todo collection it owns.
// Todos are embedded: they live and die with the account and are only
// reachable through it.
type Account struct {
	ID        string
	Username  string
	Email     string
	AuthHash  string
	Todos     []TodoItem
	CreatedAt time.Time

	// Version guards whole-document writes. Incremented by the store on
	// every successful update; a stale version means a concurrent writer won.
	Version int64
}

// Clone returns a deep copy of the account. Stores hand out clones so that
// in-place mutation by a caller never aliases stored state.
func (a *Account) Clone() *Account {
	c := *a
	c.Todos = make([]TodoItem, len(a.Todos))
	copy(c.Todos, a.Todos)
	return &c
}

// RegisterRequest represents an account registration request.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AccountResponse represents account data safe for API responses (no credential).
type AccountResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthResponse carries a freshly issued token and the public account view.
type AuthResponse struct {
	Token string
	User  AccountResponse
}

// PublicView returns the account fields that may leave the server.
func (a *Account) PublicView() AccountResponse {
	return AccountResponse{
		ID:       a.ID,
		Username: a.Username,
		Email:    a.Email,
	}
}
