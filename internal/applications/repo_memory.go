package applications

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory Repo used when no database is configured and in tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	rows map[string]Application
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{rows: map[string]Application{}}
}

func (r *MemoryRepo) Create(ctx context.Context, app Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.rows {
		if existing.JobID == app.JobID && existing.CandidateID == app.CandidateID {
			return ErrAlreadyExists
		}
	}
	r.rows[app.ID] = app
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	app, ok := r.rows[id]
	if !ok {
		return Application{}, ErrNotFound
	}
	return app, nil
}

func (r *MemoryRepo) Update(ctx context.Context, app Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[app.ID]; !ok {
		return ErrNotFound
	}
	r.rows[app.ID] = app
	return nil
}

func (r *MemoryRepo) ListByCandidate(ctx context.Context, candidateID string) ([]Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Application
	for _, app := range r.rows {
		if app.CandidateID == candidateID {
			out = append(out, app)
		}
	}
	sortByCreated(out)
	return out, nil
}

func (r *MemoryRepo) ListByJobIDs(ctx context.Context, jobIDs []string) ([]Application, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idSet := make(map[string]struct{}, len(jobIDs))
	for _, id := range jobIDs {
		idSet[id] = struct{}{}
	}
	var out []Application
	for _, app := range r.rows {
		if _, ok := idSet[app.JobID]; ok {
			out = append(out, app)
		}
	}
	sortByCreated(out)
	return out, nil
}

func sortByCreated(list []Application) {
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
}
