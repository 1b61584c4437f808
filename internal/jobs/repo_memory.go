package jobs

import (
	"context"
	"sort"
	"sync"
)

// MemoryRepo is an in-memory Repo used when no database is configured and in tests.
type MemoryRepo struct {
	mu   sync.RWMutex
	rows map[string]Job
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{rows: map[string]Job{}}
}

func (r *MemoryRepo) Create(ctx context.Context, job Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[job.ID] = job
	return nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id string) (Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	job, ok := r.rows[id]
	if !ok {
		return Job{}, ErrNotFound
	}
	return job, nil
}

func (r *MemoryRepo) Update(ctx context.Context, job Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[job.ID]; !ok {
		return ErrNotFound
	}
	r.rows[job.ID] = job
	return nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.rows[id]; !ok {
		return ErrNotFound
	}
	delete(r.rows, id)
	return nil
}

func (r *MemoryRepo) ListByRecruiter(ctx context.Context, recruiterID string) ([]Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Job
	for _, job := range r.rows {
		if job.RecruiterID == recruiterID {
			out = append(out, job)
		}
	}
	sortByCreated(out)
	return out, nil
}

func (r *MemoryRepo) ListByIDs(ctx context.Context, ids []string) ([]Job, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Job
	for _, id := range ids {
		if job, ok := r.rows[id]; ok {
			out = append(out, job)
		}
	}
	sortByCreated(out)
	return out, nil
}

func sortByCreated(list []Job) {
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.After(list[j].CreatedAt) })
}
