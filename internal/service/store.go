package service

import (
	"context"
	"errors"

	"github.com/tasknest/tasknest-go/internal/model"
)

// ErrAccountNotFound is returned when an operation's account id no longer
// resolves to an account. A verified token does not guarantee existence.
var ErrAccountNotFound = errors.New("account not found")

// AccountStore is the persistence surface the services work against.
// Accounts are documents: reads return the whole account including its
// embedded todos, and Update writes the whole account back. Update must
// reject a stale Version with the store's version-conflict error.
//
// Implemented by repository.AccountRepository (MySQL) and
// repository.MemoryStore.
type AccountStore interface {
	Create(ctx context.Context, acc *model.Account) error
	GetByEmail(ctx context.Context, email string) (*model.Account, error)
	GetByID(ctx context.Context, id string) (*model.Account, error)
	Update(ctx context.Context, acc *model.Account) error
}
