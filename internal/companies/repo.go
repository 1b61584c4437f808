package companies

import (
	"context"

	"talenthub-backend/internal/shared/apperr"
)

var (
	ErrNotFound     = apperr.New(apperr.CodeNotFound, "company not found")
	ErrCodeConflict = apperr.New(apperr.CodeAlreadyExists, "company code already in use")
)

type Repo interface {
	Create(ctx context.Context, company Company) error
	GetByID(ctx context.Context, id string) (Company, error)
	// FindByName matches case-insensitively on the full name.
	FindByName(ctx context.Context, name string) (Company, error)
	List(ctx context.Context) ([]Company, error)
}
