package applications

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"talenthub-backend/internal/jobs"
	"talenthub-backend/internal/shared/apperr"
	"talenthub-backend/internal/shared/storage/object"
)

type Service struct {
	Repo  Repo
	Jobs  jobs.Repo
	Store object.ObjectStore
}

// Apply submits a candidate's application for an open job. The video
// interview starts pending; completing it is a separate step.
func (s *Service) Apply(ctx context.Context, candidateID, jobID string) (Application, error) {
	if strings.TrimSpace(jobID) == "" {
		return Application{}, apperr.New(apperr.CodeInvalidArgument, "job_id is required")
	}

	job, err := s.Jobs.GetByID(ctx, jobID)
	if err != nil {
		return Application{}, err
	}
	if job.Status != jobs.StatusOpen {
		return Application{}, apperr.New(apperr.CodeInvalidState, "job is not accepting applications")
	}

	now := time.Now().UTC()
	app := Application{
		ID:          uuid.NewString(),
		JobID:       jobID,
		CandidateID: candidateID,
		Status:      StatusSubmitted,
		VideoStatus: VideoPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.Create(ctx, app); err != nil {
		return Application{}, err
	}
	return app, nil
}

// SetStatus moves an application along the review pipeline, enforcing legal
// transitions. The recruiter must own the underlying job.
func (s *Service) SetStatus(ctx context.Context, recruiterID, applicationID string, to Status) (Application, error) {
	app, err := s.Repo.GetByID(ctx, applicationID)
	if err != nil {
		return Application{}, err
	}

	job, err := s.Jobs.GetByID(ctx, app.JobID)
	if err != nil {
		return Application{}, err
	}
	if job.RecruiterID != recruiterID {
		return Application{}, apperr.New(apperr.CodeForbidden, "application belongs to another recruiter's job")
	}

	if !CanTransition(app.Status, to) {
		return Application{}, apperr.New(apperr.CodeInvalidState,
			fmt.Sprintf("cannot move application from %s to %s", app.Status, to))
	}

	app.Status = to
	app.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, app); err != nil {
		return Application{}, err
	}
	return app, nil
}

// AttachVideo stores the candidate's video interview and marks the
// application video_completed.
func (s *Service) AttachVideo(ctx context.Context, candidateID, applicationID, fileName string, r io.Reader) (Application, error) {
	app, err := s.Repo.GetByID(ctx, applicationID)
	if err != nil {
		return Application{}, err
	}
	if app.CandidateID != candidateID {
		return Application{}, apperr.New(apperr.CodeForbidden, "application belongs to another candidate")
	}
	if app.VideoStatus == VideoCompleted {
		return Application{}, apperr.New(apperr.CodeInvalidState, "video interview already submitted")
	}

	key, _, _, err := s.Store.Save(ctx, candidateID, fileName, r)
	if err != nil {
		return Application{}, apperr.Wrap(apperr.CodeDependency, "could not store video", err)
	}

	app.VideoKey = key
	app.VideoStatus = VideoCompleted
	app.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, app); err != nil {
		return Application{}, err
	}
	return app, nil
}
