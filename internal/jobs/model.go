package jobs

import (
	"time"

	"talenthub-backend/internal/shared/apperr"
)

// Job is a recruiter's posting.
type Job struct {
	ID          string    `json:"id"`
	RecruiterID string    `json:"recruiter_id"`
	CompanyID   string    `json:"company_id,omitempty"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	SalaryRange string    `json:"salary_range,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const (
	StatusOpen   = "open"
	StatusClosed = "closed"
)

// ParseStatus validates a raw posting status at a trust boundary.
func ParseStatus(raw string) (string, error) {
	switch raw {
	case StatusOpen, StatusClosed:
		return raw, nil
	default:
		return "", apperr.New(apperr.CodeInvalidArgument, "unknown job status")
	}
}
