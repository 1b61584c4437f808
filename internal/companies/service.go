package companies

import (
	"context"
	"errors"
	"strings"
	"time"

	"talenthub-backend/internal/shared/apperr"
)

// Bounded because each retry regenerates half the code; running out means
// something is badly wrong with the repo, not the code space.
const maxCodeAttempts = 5

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// EnsureByName returns the existing company matching name case-insensitively,
// or creates one with a deterministically derived code. A code collision with
// a differently named company retries with a generated suffix, keeping the
// derived prefix human-legible.
func (s *Service) EnsureByName(ctx context.Context, name, createdBy string) (Company, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Company{}, apperr.New(apperr.CodeInvalidArgument, "company name is required")
	}

	existing, err := s.Repo.FindByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return Company{}, err
	}

	code := DeriveCode(name)
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		company := Company{
			ID:        code,
			Name:      name,
			CreatedBy: createdBy,
			CreatedAt: time.Now().UTC(),
		}
		err := s.Repo.Create(ctx, company)
		if err == nil {
			return company, nil
		}
		if !errors.Is(err, ErrCodeConflict) {
			return Company{}, err
		}
		code = codeWithSuffix(DeriveCode(name))
	}
	return Company{}, apperr.New(apperr.CodeDependency, "could not allocate a company code")
}

// Get returns one company by id.
func (s *Service) Get(ctx context.Context, id string) (Company, error) {
	if strings.TrimSpace(id) == "" {
		return Company{}, apperr.New(apperr.CodeInvalidArgument, "company id is required")
	}
	return s.Repo.GetByID(ctx, id)
}

// List returns all companies, newest first.
func (s *Service) List(ctx context.Context) ([]Company, error) {
	return s.Repo.List(ctx)
}
