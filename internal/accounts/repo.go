package accounts

import (
	"context"

	"talenthub-backend/internal/shared/apperr"
)

// ErrNotFound is returned when no account row exists for an id.
var ErrNotFound = apperr.New(apperr.CodeNotFound, "account not found")

type Repo interface {
	Create(ctx context.Context, account Account) error
	GetByID(ctx context.Context, id string) (Account, error)
	Delete(ctx context.Context, id string) error
	SetCompany(ctx context.Context, id, companyID string) error
}
