package applications

import (
	"context"

	"talenthub-backend/internal/shared/apperr"
)

var (
	ErrNotFound      = apperr.New(apperr.CodeNotFound, "application not found")
	ErrAlreadyExists = apperr.New(apperr.CodeAlreadyExists, "application already submitted for this job")
)

type Repo interface {
	Create(ctx context.Context, app Application) error
	GetByID(ctx context.Context, id string) (Application, error)
	Update(ctx context.Context, app Application) error
	ListByCandidate(ctx context.Context, candidateID string) ([]Application, error)
	// ListByJobIDs must only be called with a non-empty id set; callers
	// guard the empty case themselves.
	ListByJobIDs(ctx context.Context, jobIDs []string) ([]Application, error)
}
