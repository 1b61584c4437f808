package resumes

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"talenthub-backend/internal/extract"
	"talenthub-backend/internal/profiles"
	"talenthub-backend/internal/shared/apperr"
	"talenthub-backend/internal/shared/storage/object"
	"talenthub-backend/internal/shared/telemetry"
)

// Service stores candidate resumes and hands out time-boxed signed URLs.
// Raw storage keys never leave the backend.
type Service struct {
	Store        object.ObjectStore
	Profiles     profiles.Repo
	SignedURLTTL time.Duration
}

// UploadResult reports the stored resume and whether text extraction worked.
type UploadResult struct {
	ResumePath    string `json:"resume_path"`
	SizeBytes     int64  `json:"size_bytes"`
	MimeType      string `json:"mime_type"`
	TextExtracted bool   `json:"text_extracted"`
}

// Upload saves the resume under the candidate's namespace and records the
// storage key on the profile. Text extraction is best-effort.
func (s *Service) Upload(ctx context.Context, candidateID, fileName string, r io.Reader) (UploadResult, error) {
	if strings.TrimSpace(fileName) == "" {
		return UploadResult{}, apperr.New(apperr.CodeInvalidArgument, "file name is required")
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return UploadResult{}, apperr.Wrap(apperr.CodeInvalidArgument, "unable to read resume file", err)
	}

	key, size, mimeType, err := s.Store.Save(ctx, candidateID, fileName, bytes.NewReader(raw))
	if err != nil {
		return UploadResult{}, apperr.Wrap(apperr.CodeDependency, "could not store resume", err)
	}

	text, err := extract.Text(raw, mimeType, fileName)
	if err != nil {
		if !errors.Is(err, extract.ErrUnsupported) {
			telemetry.Warn("resumes.extract_failed", map[string]any{
				"candidate_id": candidateID,
				"error":        err.Error(),
			})
		}
		text = ""
	}

	if err := s.Profiles.SetResume(ctx, candidateID, key, text); err != nil {
		return UploadResult{}, apperr.Wrap(apperr.CodeDependency, "could not record resume", err)
	}

	return UploadResult{
		ResumePath:    key,
		SizeBytes:     size,
		MimeType:      mimeType,
		TextExtracted: text != "",
	}, nil
}

// SignedURL returns a fresh signed URL for the candidate's stored resume.
// The legacy plain resume_url field is the fallback when no storage key
// exists; neither present means NotFound.
func (s *Service) SignedURL(ctx context.Context, candidateID string) (string, error) {
	profile, err := s.Profiles.GetProfile(ctx, candidateID)
	if err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			return "", apperr.New(apperr.CodeNotFound, "no resume on file")
		}
		return "", err
	}

	if profile.ResumeKey != "" {
		url, err := s.Store.SignedURL(ctx, profile.ResumeKey, s.ttl())
		if err != nil {
			return "", apperr.Wrap(apperr.CodeDependency, "could not sign resume url", err)
		}
		return url, nil
	}
	if profile.ResumeURL != "" {
		return profile.ResumeURL, nil
	}
	return "", apperr.New(apperr.CodeNotFound, "no resume on file")
}

func (s *Service) ttl() time.Duration {
	if s.SignedURLTTL > 0 {
		return s.SignedURLTTL
	}
	return time.Hour
}
