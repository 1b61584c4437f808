package profiles

import (
	"context"
	"errors"
	"strings"

	"talenthub-backend/internal/shared/apperr"
)

// Service implements the detailed-form orchestration: one save replaces each
// provided child collection in full and upserts the profile.
type Service struct {
	Repo Repo
}

func NewService(repo Repo) *Service {
	return &Service{Repo: repo}
}

// SaveDetailedForm translates the request's absent/empty/present semantics
// into a single repo write.
func (s *Service) SaveDetailedForm(ctx context.Context, candidateID string, req DetailedFormRequest) error {
	if strings.TrimSpace(candidateID) == "" {
		return apperr.New(apperr.CodeInvalidArgument, "candidate id is required")
	}

	var write FormWrite

	if req.Bio != nil || req.Headline != nil || req.SalaryExpectation != nil {
		profile := Profile{CandidateID: candidateID}
		if req.Bio != nil {
			profile.Bio = *req.Bio
		}
		if req.Headline != nil {
			profile.Headline = *req.Headline
		}
		if req.SalaryExpectation != nil {
			profile.SalaryExpectation = *req.SalaryExpectation
		}
		write.Profile = &profile
	}

	if req.Education != nil {
		rows := make([]Education, 0, len(*req.Education))
		for _, in := range *req.Education {
			if strings.TrimSpace(in.Institution) == "" {
				continue
			}
			rows = append(rows, Education{
				Institution:  in.Institution,
				Degree:       in.Degree,
				FieldOfStudy: in.FieldOfStudy,
				StartYear:    in.StartYear,
				EndYear:      in.EndYear,
			})
		}
		write.Education = &rows
	}

	if req.Experience != nil {
		rows := make([]Experience, 0, len(*req.Experience))
		for _, in := range *req.Experience {
			if strings.TrimSpace(in.CompanyName) == "" {
				continue
			}
			rows = append(rows, Experience{
				CompanyName: in.CompanyName,
				Title:       in.Title,
				Description: in.Description,
				StartYear:   in.StartYear,
				EndYear:     in.EndYear,
			})
		}
		write.Experience = &rows
	}

	if req.Skills != nil {
		rows := make([]Skill, 0, len(*req.Skills))
		for _, in := range *req.Skills {
			if skill, ok := in.normalize(); ok {
				rows = append(rows, skill)
			}
		}
		write.Skills = &rows
	}

	if err := s.Repo.SaveForm(ctx, candidateID, write); err != nil {
		return apperr.Wrap(apperr.CodeDependency, "could not save detailed form", err)
	}
	return nil
}

// GetDetailedForm composes the four reads into one view. An absent profile
// yields a null profile, not an error.
func (s *Service) GetDetailedForm(ctx context.Context, candidateID string) (DetailedFormView, error) {
	if strings.TrimSpace(candidateID) == "" {
		return DetailedFormView{}, apperr.New(apperr.CodeInvalidArgument, "candidate id is required")
	}

	view := DetailedFormView{
		Education:  []Education{},
		Experience: []Experience{},
		Skills:     []Skill{},
	}

	profile, err := s.Repo.GetProfile(ctx, candidateID)
	if err == nil {
		view.Profile = &profile
	} else if !errors.Is(err, ErrNotFound) {
		return DetailedFormView{}, err
	}

	if rows, err := s.Repo.ListEducation(ctx, candidateID); err != nil {
		return DetailedFormView{}, err
	} else if rows != nil {
		view.Education = rows
	}
	if rows, err := s.Repo.ListExperience(ctx, candidateID); err != nil {
		return DetailedFormView{}, err
	} else if rows != nil {
		view.Experience = rows
	}
	if rows, err := s.Repo.ListSkills(ctx, candidateID); err != nil {
		return DetailedFormView{}, err
	} else if rows != nil {
		view.Skills = rows
	}

	return view, nil
}
