package accounts

import (
	"time"

	"talenthub-backend/internal/identity"
)

// Account mirrors the identity locally for read-side joins (dashboard, profiles).
// The identity provider remains the source of truth for credentials.
type Account struct {
	ID        string        `json:"id"`
	Email     string        `json:"email"`
	FullName  string        `json:"full_name"`
	Role      identity.Role `json:"role"`
	CompanyID string        `json:"company_id,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}
