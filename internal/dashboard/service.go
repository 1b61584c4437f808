package dashboard

import (
	"context"

	"talenthub-backend/internal/accounts"
	"talenthub-backend/internal/applications"
	"talenthub-backend/internal/identity"
	"talenthub-backend/internal/jobs"
	"talenthub-backend/internal/shared/apperr"
)

// Summary is the role-conditional read-side composition for one user.
type Summary struct {
	Role         identity.Role              `json:"role"`
	Jobs         []jobs.Job                 `json:"jobs"`
	Applications []applications.Application `json:"applications"`
}

// Service composes jobs and applications for a user. Pure read, no caching:
// every call reflects storage at call time.
type Service struct {
	Accounts     accounts.Repo
	Jobs         jobs.Repo
	Applications applications.Repo
}

// Build resolves the user's role and assembles the matching view. The
// second query is skipped whenever the first returns nothing, so no
// "in empty set" query is ever issued.
func (s *Service) Build(ctx context.Context, userID string) (Summary, error) {
	account, err := s.Accounts.GetByID(ctx, userID)
	if err != nil {
		return Summary{}, err
	}

	summary := Summary{
		Role:         account.Role,
		Jobs:         []jobs.Job{},
		Applications: []applications.Application{},
	}

	switch account.Role {
	case identity.RoleRecruiter:
		jobList, err := s.Jobs.ListByRecruiter(ctx, userID)
		if err != nil {
			return Summary{}, err
		}
		if len(jobList) == 0 {
			return summary, nil
		}
		summary.Jobs = jobList

		ids := make([]string, 0, len(jobList))
		for _, job := range jobList {
			ids = append(ids, job.ID)
		}
		appList, err := s.Applications.ListByJobIDs(ctx, ids)
		if err != nil {
			return Summary{}, err
		}
		if appList != nil {
			summary.Applications = appList
		}
		return summary, nil

	case identity.RoleCandidate:
		appList, err := s.Applications.ListByCandidate(ctx, userID)
		if err != nil {
			return Summary{}, err
		}
		if len(appList) == 0 {
			return summary, nil
		}
		summary.Applications = appList

		ids := make([]string, 0, len(appList))
		for _, app := range appList {
			ids = append(ids, app.JobID)
		}
		jobList, err := s.Jobs.ListByIDs(ctx, ids)
		if err != nil {
			return Summary{}, err
		}
		if jobList != nil {
			summary.Jobs = jobList
		}
		return summary, nil

	default:
		return Summary{}, apperr.New(apperr.CodeInternal, "account has an unknown role")
	}
}
