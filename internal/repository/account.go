package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tasknest/tasknest-go/internal/model"
)

var (
	ErrAccountNotFound  = errors.New("account not found")
	ErrDuplicateAccount = errors.New("account already exists")
	ErrVersionConflict  = errors.New("account version conflict")
)

// AccountRepository persists accounts as whole documents: the embedded todo
// list is serialized into a single JSON column and always read and written
// in full, never per item.
type AccountRepository struct {
	db *sql.DB
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create inserts a new account at version 1.
func (r *AccountRepository) Create(ctx context.Context, acc *model.Account) error {
	todos, err := marshalTodos(acc.Todos)
	if err != nil {
		return err
	}

	query := `INSERT INTO accounts (id, username, email, auth_hash, todos, version, created_at)
		VALUES (?, ?, ?, ?, ?, 1, ?)`

	_, err = r.db.ExecContext(ctx, query, acc.ID, acc.Username, acc.Email, acc.AuthHash, todos, acc.CreatedAt)
	if err != nil {
		if isDuplicateEntryError(err) {
			return ErrDuplicateAccount
		}
		return err
	}

	acc.Version = 1
	return nil
}

// GetByEmail retrieves an account by its email address.
func (r *AccountRepository) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	query := `SELECT id, username, email, auth_hash, todos, version, created_at
		FROM accounts WHERE email = ?`
	return r.scanAccount(r.db.QueryRowContext(ctx, query, email))
}

// GetByID retrieves an account by its id.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*model.Account, error) {
	query := `SELECT id, username, email, auth_hash, todos, version, created_at
		FROM accounts WHERE id = ?`
	return r.scanAccount(r.db.QueryRowContext(ctx, query, id))
}

// Update writes the account's todo collection back as a whole document. The
// write only lands if the caller's version is still current; a concurrent
// writer surfaces as ErrVersionConflict so the caller can reload and retry
// instead of silently losing the other write.
func (r *AccountRepository) Update(ctx context.Context, acc *model.Account) error {
	todos, err := marshalTodos(acc.Todos)
	if err != nil {
		return err
	}

	query := `UPDATE accounts SET todos = ?, version = version + 1
		WHERE id = ? AND version = ?`

	result, err := r.db.ExecContext(ctx, query, todos, acc.ID, acc.Version)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Either the account is gone or someone else moved the version.
		var v int64
		err := r.db.QueryRowContext(ctx, `SELECT version FROM accounts WHERE id = ?`, acc.ID).Scan(&v)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrAccountNotFound
		}
		if err != nil {
			return err
		}
		return ErrVersionConflict
	}

	acc.Version++
	return nil
}

func (r *AccountRepository) scanAccount(row *sql.Row) (*model.Account, error) {
	acc := &model.Account{}
	var todos []byte
	err := row.Scan(&acc.ID, &acc.Username, &acc.Email, &acc.AuthHash, &todos, &acc.Version, &acc.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAccountNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(todos, &acc.Todos); err != nil {
		return nil, fmt.Errorf("decoding todos for account %s: %w", acc.ID, err)
	}

	return acc, nil
}

func marshalTodos(todos []model.TodoItem) ([]byte, error) {
	if todos == nil {
		todos = []model.TodoItem{}
	}
	b, err := json.Marshal(todos)
	if err != nil {
		return nil, fmt.Errorf("encoding todos: %w", err)
	}
	return b, nil
}

// isDuplicateEntryError checks if a MySQL error is a duplicate entry error (code 1062).
func isDuplicateEntryError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}
