package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tasknest/tasknest-go/internal/crypto"
	"github.com/tasknest/tasknest-go/internal/model"
	"github.com/tasknest/tasknest-go/internal/repository"
)

var (
	ErrMissingFields      = errors.New("please provide all required fields")
	ErrUsernameTooShort   = errors.New("username is too short")
	ErrPasswordTooShort   = errors.New("password is too short")
	ErrInvalidEmail       = errors.New("please enter a valid email")
	ErrAccountExists      = errors.New("account already exists with this email or username")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// Loose local@domain.tld shape. Deliberately not RFC-strict.
var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,})+$`)

// AuthService handles registration, login, and profile lookup.
type AuthService struct {
	store          AccountStore
	tokens         *crypto.Tokens
	minUsernameLen int
	minPasswordLen int
}

// NewAuthService creates a new AuthService.
func NewAuthService(store AccountStore, tokens *crypto.Tokens, minUsernameLen, minPasswordLen int) *AuthService {
	return &AuthService{
		store:          store,
		tokens:         tokens,
		minUsernameLen: minUsernameLen,
		minPasswordLen: minPasswordLen,
	}
}

// Register validates the input, creates the account with a hashed credential,
// and returns a fresh token plus the public account view.
func (s *AuthService) Register(ctx context.Context, req model.RegisterRequest) (model.AuthResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if username == "" || email == "" || req.Password == "" {
		return model.AuthResponse{}, ErrMissingFields
	}
	if len(username) < s.minUsernameLen {
		return model.AuthResponse{}, ErrUsernameTooShort
	}
	if len(req.Password) < s.minPasswordLen {
		return model.AuthResponse{}, ErrPasswordTooShort
	}
	if !emailPattern.MatchString(email) {
		return model.AuthResponse{}, ErrInvalidEmail
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return model.AuthResponse{}, fmt.Errorf("hashing password: %w", err)
	}

	acc := &model.Account{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		AuthHash:  hash,
		Todos:     []model.TodoItem{},
		CreatedAt: time.Now().UTC(),
	}

	if err := s.store.Create(ctx, acc); err != nil {
		if errors.Is(err, repository.ErrDuplicateAccount) {
			return model.AuthResponse{}, ErrAccountExists
		}
		return model.AuthResponse{}, err
	}

	token, err := s.tokens.Issue(acc.ID, acc.Email)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{Token: token, User: acc.PublicView()}, nil
}

// Login authenticates by email and password and returns a fresh token.
// Unknown email and wrong password collapse into one error so responses
// cannot be used to enumerate accounts.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		return model.AuthResponse{}, ErrMissingFields
	}

	acc, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	match, err := crypto.VerifyPassword(req.Password, acc.AuthHash)
	if err != nil {
		return model.AuthResponse{}, err
	}
	if !match {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(acc.ID, acc.Email)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{Token: token, User: acc.PublicView()}, nil
}

// Profile returns the public view of an account. The token layer does not
// check existence, so this is where a stale token meets a missing account.
func (s *AuthService) Profile(ctx context.Context, accountID string) (model.AccountResponse, error) {
	acc, err := s.store.GetByID(ctx, accountID)
	if err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return model.AccountResponse{}, ErrAccountNotFound
		}
		return model.AccountResponse{}, err
	}

	return acc.PublicView(), nil
}
