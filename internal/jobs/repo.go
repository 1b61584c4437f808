package jobs

import (
	"context"

	"talenthub-backend/internal/shared/apperr"
)

var ErrNotFound = apperr.New(apperr.CodeNotFound, "job not found")

type Repo interface {
	Create(ctx context.Context, job Job) error
	GetByID(ctx context.Context, id string) (Job, error)
	Update(ctx context.Context, job Job) error
	Delete(ctx context.Context, id string) error
	ListByRecruiter(ctx context.Context, recruiterID string) ([]Job, error)
	// ListByIDs must only be called with a non-empty id set; callers guard
	// the empty case themselves.
	ListByIDs(ctx context.Context, ids []string) ([]Job, error)
}
