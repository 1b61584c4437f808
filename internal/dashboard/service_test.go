package dashboard

import (
	"context"
	"testing"
	"time"

	"talenthub-backend/internal/accounts"
	"talenthub-backend/internal/applications"
	"talenthub-backend/internal/identity"
	"talenthub-backend/internal/jobs"
	"talenthub-backend/internal/shared/apperr"
)

// recordingJobs counts calls so tests can assert the empty-set guard.
type recordingJobs struct {
	*jobs.MemoryRepo
	listByIDsCalls int
}

func (r *recordingJobs) ListByIDs(ctx context.Context, ids []string) ([]jobs.Job, error) {
	r.listByIDsCalls++
	return r.MemoryRepo.ListByIDs(ctx, ids)
}

type recordingApplications struct {
	*applications.MemoryRepo
	listByJobIDsCalls int
}

func (r *recordingApplications) ListByJobIDs(ctx context.Context, jobIDs []string) ([]applications.Application, error) {
	r.listByJobIDsCalls++
	return r.MemoryRepo.ListByJobIDs(ctx, jobIDs)
}

func newTestDashboard(t *testing.T) (*Service, *accounts.MemoryRepo, *recordingJobs, *recordingApplications) {
	t.Helper()
	accountRepo := accounts.NewMemoryRepo()
	jobRepo := &recordingJobs{MemoryRepo: jobs.NewMemoryRepo()}
	appRepo := &recordingApplications{MemoryRepo: applications.NewMemoryRepo()}
	svc := &Service{Accounts: accountRepo, Jobs: jobRepo, Applications: appRepo}
	return svc, accountRepo, jobRepo, appRepo
}

func seedAccount(t *testing.T, repo *accounts.MemoryRepo, id string, role identity.Role) {
	t.Helper()
	err := repo.Create(context.Background(), accounts.Account{
		ID:        id,
		Email:     id + "@example.com",
		Role:      role,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}
}

func TestBuildRecruiterSkipsApplicationsWhenNoJobs(t *testing.T) {
	svc, accountRepo, _, appRepo := newTestDashboard(t)
	seedAccount(t, accountRepo, "rec-1", identity.RoleRecruiter)

	summary, err := svc.Build(context.Background(), "rec-1")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if appRepo.listByJobIDsCalls != 0 {
		t.Fatalf("ListByJobIDs called %d times, want 0", appRepo.listByJobIDsCalls)
	}
	if summary.Jobs == nil || summary.Applications == nil {
		t.Fatal("expected empty slices, not nil")
	}
	if len(summary.Jobs) != 0 || len(summary.Applications) != 0 {
		t.Fatalf("expected empty summary, got %+v", summary)
	}
}

func TestBuildRecruiterCollectsApplicationsAcrossJobs(t *testing.T) {
	svc, accountRepo, jobRepo, appRepo := newTestDashboard(t)
	seedAccount(t, accountRepo, "rec-1", identity.RoleRecruiter)

	ctx := context.Background()
	for _, id := range []string{"job-1", "job-2"} {
		if err := jobRepo.Create(ctx, jobs.Job{ID: id, RecruiterID: "rec-1", Title: "T", Status: jobs.StatusOpen}); err != nil {
			t.Fatalf("seed job: %v", err)
		}
	}
	if err := appRepo.Create(ctx, applications.Application{ID: "app-1", JobID: "job-1", CandidateID: "cand-1", Status: applications.StatusSubmitted}); err != nil {
		t.Fatalf("seed application: %v", err)
	}
	if err := appRepo.Create(ctx, applications.Application{ID: "app-2", JobID: "job-2", CandidateID: "cand-2", Status: applications.StatusSubmitted}); err != nil {
		t.Fatalf("seed application: %v", err)
	}

	summary, err := svc.Build(ctx, "rec-1")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if summary.Role != identity.RoleRecruiter {
		t.Fatalf("role = %s, want recruiter", summary.Role)
	}
	if len(summary.Jobs) != 2 || len(summary.Applications) != 2 {
		t.Fatalf("expected 2 jobs and 2 applications, got %d and %d", len(summary.Jobs), len(summary.Applications))
	}
	if appRepo.listByJobIDsCalls != 1 {
		t.Fatalf("ListByJobIDs called %d times, want 1", appRepo.listByJobIDsCalls)
	}
}

func TestBuildCandidateSkipsJobsWhenNoApplications(t *testing.T) {
	svc, accountRepo, jobRepo, _ := newTestDashboard(t)
	seedAccount(t, accountRepo, "cand-1", identity.RoleCandidate)

	summary, err := svc.Build(context.Background(), "cand-1")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if jobRepo.listByIDsCalls != 0 {
		t.Fatalf("ListByIDs called %d times, want 0", jobRepo.listByIDsCalls)
	}
	if len(summary.Applications) != 0 {
		t.Fatalf("expected no applications, got %d", len(summary.Applications))
	}
}

func TestBuildCandidateResolvesJobsForApplications(t *testing.T) {
	svc, accountRepo, jobRepo, appRepo := newTestDashboard(t)
	seedAccount(t, accountRepo, "cand-1", identity.RoleCandidate)

	ctx := context.Background()
	if err := jobRepo.Create(ctx, jobs.Job{ID: "job-1", RecruiterID: "rec-1", Title: "T", Status: jobs.StatusOpen}); err != nil {
		t.Fatalf("seed job: %v", err)
	}
	if err := appRepo.Create(ctx, applications.Application{ID: "app-1", JobID: "job-1", CandidateID: "cand-1", Status: applications.StatusSubmitted}); err != nil {
		t.Fatalf("seed application: %v", err)
	}

	summary, err := svc.Build(ctx, "cand-1")
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(summary.Applications) != 1 || len(summary.Jobs) != 1 {
		t.Fatalf("expected 1 application and 1 job, got %d and %d", len(summary.Applications), len(summary.Jobs))
	}
	if jobRepo.listByIDsCalls != 1 {
		t.Fatalf("ListByIDs called %d times, want 1", jobRepo.listByIDsCalls)
	}
}

func TestBuildUnknownAccountFails(t *testing.T) {
	svc, _, _, _ := newTestDashboard(t)
	_, err := svc.Build(context.Background(), "ghost")
	if apperr.CodeOf(err) != apperr.CodeNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}
