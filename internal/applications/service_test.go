package applications

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"talenthub-backend/internal/jobs"
	"talenthub-backend/internal/shared/apperr"
)

type fakeStore struct {
	saved  []string
	failed bool
}

func (f *fakeStore) Save(ctx context.Context, namespace, fileName string, r io.Reader) (string, int64, string, error) {
	if f.failed {
		return "", 0, "", errors.New("store down")
	}
	if _, err := io.Copy(io.Discard, r); err != nil {
		return "", 0, "", err
	}
	key := namespace + "/" + fileName
	f.saved = append(f.saved, key)
	return key, 42, "video/mp4", nil
}

func (f *fakeStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStore) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	return "https://signed.example/" + key, nil
}

func (f *fakeStore) List(ctx context.Context, prefix string) ([]string, error) {
	return nil, nil
}

func newTestService(t *testing.T) (*Service, *jobs.MemoryRepo, *fakeStore) {
	t.Helper()
	jobRepo := jobs.NewMemoryRepo()
	store := &fakeStore{}
	svc := &Service{Repo: NewMemoryRepo(), Jobs: jobRepo, Store: store}
	return svc, jobRepo, store
}

func seedJob(t *testing.T, repo *jobs.MemoryRepo, id, recruiterID, status string) {
	t.Helper()
	err := repo.Create(context.Background(), jobs.Job{
		ID:          id,
		RecruiterID: recruiterID,
		Title:       "Engineer",
		Status:      status,
		CreatedAt:   time.Now().UTC(),
	})
	if err != nil {
		t.Fatalf("seed job: %v", err)
	}
}

func TestApplyCreatesSubmittedApplication(t *testing.T) {
	svc, jobRepo, _ := newTestService(t)
	seedJob(t, jobRepo, "job-1", "rec-1", jobs.StatusOpen)

	app, err := svc.Apply(context.Background(), "cand-1", "job-1")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if app.Status != StatusSubmitted {
		t.Fatalf("status = %s, want %s", app.Status, StatusSubmitted)
	}
	if app.VideoStatus != VideoPending {
		t.Fatalf("video status = %s, want %s", app.VideoStatus, VideoPending)
	}
}

func TestApplyRejectsClosedJob(t *testing.T) {
	svc, jobRepo, _ := newTestService(t)
	seedJob(t, jobRepo, "job-1", "rec-1", jobs.StatusClosed)

	_, err := svc.Apply(context.Background(), "cand-1", "job-1")
	if apperr.CodeOf(err) != apperr.CodeInvalidState {
		t.Fatalf("expected invalid_state, got %v", err)
	}
}

func TestApplyRejectsDuplicate(t *testing.T) {
	svc, jobRepo, _ := newTestService(t)
	seedJob(t, jobRepo, "job-1", "rec-1", jobs.StatusOpen)

	if _, err := svc.Apply(context.Background(), "cand-1", "job-1"); err != nil {
		t.Fatalf("first Apply: %v", err)
	}
	_, err := svc.Apply(context.Background(), "cand-1", "job-1")
	if apperr.CodeOf(err) != apperr.CodeAlreadyExists {
		t.Fatalf("expected already_exists, got %v", err)
	}
}

func TestSetStatusEnforcesOwnershipAndTransitions(t *testing.T) {
	svc, jobRepo, _ := newTestService(t)
	seedJob(t, jobRepo, "job-1", "rec-1", jobs.StatusOpen)

	app, err := svc.Apply(context.Background(), "cand-1", "job-1")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	// Another recruiter cannot touch it.
	_, err = svc.SetStatus(context.Background(), "rec-2", app.ID, StatusUnderReview)
	if apperr.CodeOf(err) != apperr.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}

	// Skipping review is not a legal move.
	_, err = svc.SetStatus(context.Background(), "rec-1", app.ID, StatusHired)
	if apperr.CodeOf(err) != apperr.CodeInvalidState {
		t.Fatalf("expected invalid_state, got %v", err)
	}

	updated, err := svc.SetStatus(context.Background(), "rec-1", app.ID, StatusUnderReview)
	if err != nil {
		t.Fatalf("SetStatus: %v", err)
	}
	if updated.Status != StatusUnderReview {
		t.Fatalf("status = %s, want %s", updated.Status, StatusUnderReview)
	}
}

func TestAttachVideoMarksCompleted(t *testing.T) {
	svc, jobRepo, store := newTestService(t)
	seedJob(t, jobRepo, "job-1", "rec-1", jobs.StatusOpen)

	app, err := svc.Apply(context.Background(), "cand-1", "job-1")
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}

	// The owning candidate only.
	_, err = svc.AttachVideo(context.Background(), "cand-2", app.ID, "intro.mp4", strings.NewReader("xx"))
	if apperr.CodeOf(err) != apperr.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}

	updated, err := svc.AttachVideo(context.Background(), "cand-1", app.ID, "intro.mp4", strings.NewReader("xx"))
	if err != nil {
		t.Fatalf("AttachVideo: %v", err)
	}
	if updated.VideoStatus != VideoCompleted {
		t.Fatalf("video status = %s, want %s", updated.VideoStatus, VideoCompleted)
	}
	if len(store.saved) != 1 {
		t.Fatalf("expected 1 stored object, got %d", len(store.saved))
	}

	// A second submission is rejected.
	_, err = svc.AttachVideo(context.Background(), "cand-1", app.ID, "intro2.mp4", strings.NewReader("xx"))
	if apperr.CodeOf(err) != apperr.CodeInvalidState {
		t.Fatalf("expected invalid_state, got %v", err)
	}
}
