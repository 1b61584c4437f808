package jobs

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"talenthub-backend/internal/shared/apperr"
)

type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// PostInput carries the mutable job fields.
type PostInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Location    string `json:"location"`
	SalaryRange string `json:"salary_range"`
	Status      string `json:"status"`
}

// Post creates a job owned by the recruiter.
func (s *Service) Post(ctx context.Context, recruiterID, companyID string, in PostInput) (Job, error) {
	if strings.TrimSpace(in.Title) == "" {
		return Job{}, apperr.New(apperr.CodeInvalidArgument, "title is required")
	}
	status := StatusOpen
	if in.Status != "" {
		parsed, err := ParseStatus(in.Status)
		if err != nil {
			return Job{}, err
		}
		status = parsed
	}

	now := time.Now().UTC()
	job := Job{
		ID:          uuid.NewString(),
		RecruiterID: recruiterID,
		CompanyID:   companyID,
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		SalaryRange: in.SalaryRange,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, job); err != nil {
		return Job{}, apperr.Wrap(apperr.CodeDependency, "could not create job", err)
	}
	return job, nil
}

// Get returns a job by id.
func (s *Service) Get(ctx context.Context, id string) (Job, error) {
	return s.Repo.GetByID(ctx, id)
}

// Update replaces the mutable fields of a job the recruiter owns.
func (s *Service) Update(ctx context.Context, recruiterID, id string, in PostInput) (Job, error) {
	job, err := s.ownedJob(ctx, recruiterID, id)
	if err != nil {
		return Job{}, err
	}
	if strings.TrimSpace(in.Title) == "" {
		return Job{}, apperr.New(apperr.CodeInvalidArgument, "title is required")
	}

	job.Title = in.Title
	job.Description = in.Description
	job.Location = in.Location
	job.SalaryRange = in.SalaryRange
	if in.Status != "" {
		parsed, err := ParseStatus(in.Status)
		if err != nil {
			return Job{}, err
		}
		job.Status = parsed
	}
	job.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Update(ctx, job); err != nil {
		return Job{}, err
	}
	return job, nil
}

// Delete removes a job the recruiter owns.
func (s *Service) Delete(ctx context.Context, recruiterID, id string) error {
	if _, err := s.ownedJob(ctx, recruiterID, id); err != nil {
		return err
	}
	return s.Repo.Delete(ctx, id)
}

func (s *Service) ownedJob(ctx context.Context, recruiterID, id string) (Job, error) {
	job, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Job{}, err
	}
	if job.RecruiterID != recruiterID {
		return Job{}, apperr.New(apperr.CodeForbidden, "job belongs to another recruiter")
	}
	return job, nil
}
