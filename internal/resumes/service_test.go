package resumes

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"talenthub-backend/internal/profiles"
	"talenthub-backend/internal/shared/apperr"
)

type fakeProfiles struct {
	byCandidate map[string]profiles.Profile
	resumeKey   string
	resumeText  string
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{byCandidate: map[string]profiles.Profile{}}
}

func (f *fakeProfiles) SaveForm(ctx context.Context, candidateID string, form profiles.FormWrite) error {
	return errors.New("not implemented")
}

func (f *fakeProfiles) GetProfile(ctx context.Context, candidateID string) (profiles.Profile, error) {
	profile, ok := f.byCandidate[candidateID]
	if !ok {
		return profiles.Profile{}, profiles.ErrNotFound
	}
	return profile, nil
}

func (f *fakeProfiles) ListEducation(ctx context.Context, candidateID string) ([]profiles.Education, error) {
	return nil, nil
}

func (f *fakeProfiles) ListExperience(ctx context.Context, candidateID string) ([]profiles.Experience, error) {
	return nil, nil
}

func (f *fakeProfiles) ListSkills(ctx context.Context, candidateID string) ([]profiles.Skill, error) {
	return nil, nil
}

func (f *fakeProfiles) SetResume(ctx context.Context, candidateID, resumeKey, resumeText string) error {
	f.resumeKey = resumeKey
	f.resumeText = resumeText
	return nil
}

type fakeStore struct {
	signErr error
}

func (f *fakeStore) Save(ctx context.Context, namespace, fileName string, r io.Reader) (string, int64, string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", 0, "", err
	}
	return namespace + "/" + fileName, int64(len(data)), "text/plain", nil
}

func (f *fakeStore) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeStore) SignedURL(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if f.signErr != nil {
		return "", f.signErr
	}
	return "https://signed.example/" + key, nil
}

func (f *fakeStore) List(ctx context.Context, prefix string) ([]string, error) {
	return nil, nil
}

func newTestService() (*Service, *fakeProfiles, *fakeStore) {
	repo := newFakeProfiles()
	store := &fakeStore{}
	svc := &Service{Store: store, Profiles: repo, SignedURLTTL: time.Minute}
	return svc, repo, store
}

func TestSignedURLFromStorageKey(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.byCandidate["cand-1"] = profiles.Profile{
		CandidateID: "cand-1",
		ResumeKey:   "resumes/cand-1/cv.pdf",
		ResumeURL:   "https://legacy.example/cv.pdf",
	}

	url, err := svc.SignedURL(context.Background(), "cand-1")
	if err != nil {
		t.Fatalf("SignedURL: %v", err)
	}
	// The storage key wins over the legacy plain URL.
	if url != "https://signed.example/resumes/cand-1/cv.pdf" {
		t.Fatalf("url = %q", url)
	}
}

func TestSignedURLFallsBackToLegacyURL(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.byCandidate["cand-1"] = profiles.Profile{
		CandidateID: "cand-1",
		ResumeURL:   "https://legacy.example/cv.pdf",
	}

	url, err := svc.SignedURL(context.Background(), "cand-1")
	if err != nil {
		t.Fatalf("SignedURL: %v", err)
	}
	if url != "https://legacy.example/cv.pdf" {
		t.Fatalf("url = %q", url)
	}
}

func TestSignedURLWithoutResumeIsNotFound(t *testing.T) {
	svc, repo, _ := newTestService()
	repo.byCandidate["cand-1"] = profiles.Profile{CandidateID: "cand-1"}

	_, err := svc.SignedURL(context.Background(), "cand-1")
	if apperr.CodeOf(err) != apperr.CodeNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestSignedURLWithoutProfileIsNotFound(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.SignedURL(context.Background(), "ghost")
	if apperr.CodeOf(err) != apperr.CodeNotFound {
		t.Fatalf("expected not_found, got %v", err)
	}
}

func TestSignedURLSigningFailureIsDependency(t *testing.T) {
	svc, repo, store := newTestService()
	repo.byCandidate["cand-1"] = profiles.Profile{CandidateID: "cand-1", ResumeKey: "resumes/cand-1/cv.pdf"}
	store.signErr = errors.New("bucket unreachable")

	_, err := svc.SignedURL(context.Background(), "cand-1")
	if apperr.CodeOf(err) != apperr.CodeDependency {
		t.Fatalf("expected dependency error, got %v", err)
	}
}

func TestUploadRecordsKeyAndSkipsUnsupportedText(t *testing.T) {
	svc, repo, _ := newTestService()

	result, err := svc.Upload(context.Background(), "cand-1", "cv.txt", strings.NewReader("plain text resume"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if result.ResumePath != "cand-1/cv.txt" || result.SizeBytes == 0 {
		t.Fatalf("unexpected result: %+v", result)
	}
	// Plain text has no extractor; the upload still succeeds.
	if result.TextExtracted {
		t.Fatal("expected no extracted text for text/plain")
	}
	if repo.resumeKey != "cand-1/cv.txt" || repo.resumeText != "" {
		t.Fatalf("recorded key %q text %q", repo.resumeKey, repo.resumeText)
	}
}

func TestUploadRequiresFileName(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.Upload(context.Background(), "cand-1", "   ", strings.NewReader("x"))
	if apperr.CodeOf(err) != apperr.CodeInvalidArgument {
		t.Fatalf("expected invalid_argument, got %v", err)
	}
}
