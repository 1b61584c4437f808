package profiles

import (
	"context"

	"talenthub-backend/internal/shared/apperr"
)

var ErrNotFound = apperr.New(apperr.CodeNotFound, "profile not found")

// FormWrite is one atomic detailed-form save. Nil collection pointers mean
// "leave untouched"; non-nil pointers replace the collection wholesale, even
// when empty.
type FormWrite struct {
	Profile    *Profile
	Education  *[]Education
	Experience *[]Experience
	Skills     *[]Skill
}

type Repo interface {
	// SaveForm applies the whole write as one unit. The Postgres
	// implementation runs it in a single transaction so a failure never
	// leaves a half-replaced collection.
	SaveForm(ctx context.Context, candidateID string, form FormWrite) error

	GetProfile(ctx context.Context, candidateID string) (Profile, error)
	ListEducation(ctx context.Context, candidateID string) ([]Education, error)
	ListExperience(ctx context.Context, candidateID string) ([]Experience, error)
	ListSkills(ctx context.Context, candidateID string) ([]Skill, error)

	// SetResume records the storage key and extracted text for a new upload.
	SetResume(ctx context.Context, candidateID, resumeKey, resumeText string) error
}
