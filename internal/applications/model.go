package applications

import (
	"encoding/json"
	"time"

	"talenthub-backend/internal/shared/apperr"
)

// Status tracks the review pipeline. Video states run in parallel and gate
// final submission, not the review pipeline itself.
type Status string

const (
	StatusSubmitted          Status = "submitted"
	StatusUnderReview        Status = "under_review"
	StatusInterviewScheduled Status = "interview_scheduled"
	StatusRejected           Status = "rejected"
	StatusHired              Status = "hired"
)

type VideoStatus string

const (
	VideoPending   VideoStatus = "video_pending"
	VideoCompleted VideoStatus = "video_completed"
)

var transitions = map[Status][]Status{
	StatusSubmitted:          {StatusUnderReview},
	StatusUnderReview:        {StatusInterviewScheduled, StatusRejected},
	StatusInterviewScheduled: {StatusRejected, StatusHired},
}

// CanTransition reports whether moving from one review status to another is legal.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ParseStatus validates a raw status string at a trust boundary.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusSubmitted, StatusUnderReview, StatusInterviewScheduled, StatusRejected, StatusHired:
		return Status(raw), nil
	default:
		return "", apperr.New(apperr.CodeInvalidArgument, "unknown application status")
	}
}

// Application bundles a candidate's pursuit of one job.
type Application struct {
	ID          string          `json:"id"`
	JobID       string          `json:"job_id"`
	CandidateID string          `json:"candidate_id"`
	Status      Status          `json:"status"`
	VideoStatus VideoStatus     `json:"video_status"`
	VideoKey    string          `json:"-"`
	AIAnalysis  json.RawMessage `json:"ai_analysis,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
