package repository

import (
	"context"
	"sync"

	"github.com/tasknest/tasknest-go/internal/model"
)

// MemoryStore is an in-process account store with the same semantics as
// AccountRepository, including the version guard. It backs tests and lets the
// server come up without a database.
type MemoryStore struct {
	mu       sync.RWMutex
	accounts map[string]*model.Account
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{accounts: make(map[string]*model.Account)}
}

// Create inserts a new account, enforcing username and email uniqueness.
func (s *MemoryStore) Create(ctx context.Context, acc *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.accounts {
		if existing.Email == acc.Email || existing.Username == acc.Username {
			return ErrDuplicateAccount
		}
	}

	acc.Version = 1
	s.accounts[acc.ID] = acc.Clone()
	return nil
}

// GetByEmail retrieves an account by its email address.
func (s *MemoryStore) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, acc := range s.accounts {
		if acc.Email == email {
			return acc.Clone(), nil
		}
	}
	return nil, ErrAccountNotFound
}

// GetByID retrieves an account by its id.
func (s *MemoryStore) GetByID(ctx context.Context, id string) (*model.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	acc, ok := s.accounts[id]
	if !ok {
		return nil, ErrAccountNotFound
	}
	return acc.Clone(), nil
}

// Update writes the account back whole, guarded by its version.
func (s *MemoryStore) Update(ctx context.Context, acc *model.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.accounts[acc.ID]
	if !ok {
		return ErrAccountNotFound
	}
	if stored.Version != acc.Version {
		return ErrVersionConflict
	}

	acc.Version++
	s.accounts[acc.ID] = acc.Clone()
	return nil
}

// Delete removes an account outright. No API operation deletes accounts;
// tests use this to simulate a live token whose account has disappeared.
func (s *MemoryStore) Delete(ctx context.Context, id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.accounts, id)
}
