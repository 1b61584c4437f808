package profiles

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepo is an in-memory Repo used when no database is configured and in
// tests. The mutex makes the whole save atomic, mirroring the Postgres
// transaction.
type MemoryRepo struct {
	mu         sync.RWMutex
	profiles   map[string]Profile
	education  map[string][]Education
	experience map[string][]Experience
	skills     map[string][]Skill
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		profiles:   map[string]Profile{},
		education:  map[string][]Education{},
		experience: map[string][]Experience{},
		skills:     map[string][]Skill{},
	}
}

func (r *MemoryRepo) SaveForm(ctx context.Context, candidateID string, form FormWrite) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if form.Profile != nil {
		existing := r.profiles[candidateID]
		existing.CandidateID = candidateID
		existing.Bio = form.Profile.Bio
		existing.Headline = form.Profile.Headline
		existing.SalaryExpectation = form.Profile.SalaryExpectation
		existing.UpdatedAt = time.Now().UTC()
		r.profiles[candidateID] = existing
	}

	if form.Education != nil {
		rows := make([]Education, 0, len(*form.Education))
		for _, row := range *form.Education {
			row.ID = uuid.NewString()
			row.CandidateID = candidateID
			rows = append(rows, row)
		}
		r.education[candidateID] = rows
	}

	if form.Experience != nil {
		rows := make([]Experience, 0, len(*form.Experience))
		for _, row := range *form.Experience {
			row.ID = uuid.NewString()
			row.CandidateID = candidateID
			rows = append(rows, row)
		}
		r.experience[candidateID] = rows
	}

	if form.Skills != nil {
		rows := make([]Skill, 0, len(*form.Skills))
		for _, row := range *form.Skills {
			row.ID = uuid.NewString()
			row.CandidateID = candidateID
			rows = append(rows, row)
		}
		r.skills[candidateID] = rows
	}

	return nil
}

func (r *MemoryRepo) GetProfile(ctx context.Context, candidateID string) (Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	profile, ok := r.profiles[candidateID]
	if !ok {
		return Profile{}, ErrNotFound
	}
	return profile, nil
}

func (r *MemoryRepo) ListEducation(ctx context.Context, candidateID string) ([]Education, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Education(nil), r.education[candidateID]...), nil
}

func (r *MemoryRepo) ListExperience(ctx context.Context, candidateID string) ([]Experience, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Experience(nil), r.experience[candidateID]...), nil
}

func (r *MemoryRepo) ListSkills(ctx context.Context, candidateID string) ([]Skill, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]Skill(nil), r.skills[candidateID]...), nil
}

func (r *MemoryRepo) SetResume(ctx context.Context, candidateID, resumeKey, resumeText string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	profile := r.profiles[candidateID]
	profile.CandidateID = candidateID
	profile.ResumeKey = resumeKey
	profile.ResumeText = resumeText
	profile.UpdatedAt = time.Now().UTC()
	r.profiles[candidateID] = profile
	return nil
}
