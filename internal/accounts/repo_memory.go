package accounts

import (
	"context"
	"sync"
)

// MemoryRepo is an in-memory Repo used when no database is configured and in tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	rows map[string]Account
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{rows: map[string]Account{}}
}

func (r *MemoryRepo) Create(ctx context.Context, account Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[account.ID] = account
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	account, ok := r.rows[id]
	if !ok {
		return Account{}, ErrNotFound
	}
	return account, nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rows, id)
	return nil
}

func (r *MemoryRepo) SetCompany(ctx context.Context, id, companyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.rows[id]
	if !ok {
		return ErrNotFound
	}
	account.CompanyID = companyID
	r.rows[id] = account
	return nil
}
