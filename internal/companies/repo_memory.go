package companies

import (
	"context"
	"sort"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory Repo used when no database is configured and in tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	rows map[string]Company
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{rows: map[string]Company{}}
}

func (r *MemoryRepo) Create(ctx context.Context, company Company) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rows[company.ID]; exists {
		return ErrCodeConflict
	}
	r.rows[company.ID] = company
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	company, ok := r.rows[id]
	if !ok {
		return Company{}, ErrNotFound
	}
	return company, nil
}

func (r *MemoryRepo) FindByName(ctx context.Context, name string) (Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, company := range r.rows {
		if strings.EqualFold(company.Name, name) {
			return company, nil
		}
	}
	return Company{}, ErrNotFound
}

func (r *MemoryRepo) List(ctx context.Context) ([]Company, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Company, 0, len(r.rows))
	for _, company := range r.rows {
		out = append(out, company)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}
