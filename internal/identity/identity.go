package identity

import (
	"strings"

	"talenthub-backend/internal/shared/apperr"
)

// Role is the platform role stored on the identity provider record.
type Role string

const (
	RoleCandidate Role = "candidate"
	RoleRecruiter Role = "recruiter"
)

// ParseRole validates a raw role string at a trust boundary.
func ParseRole(raw string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleCandidate:
		return RoleCandidate, nil
	case RoleRecruiter:
		return RoleRecruiter, nil
	default:
		return "", apperr.New(apperr.CodeInvalidArgument, "role must be candidate or recruiter")
	}
}

// Metadata is the mutable bag of per-identity fields the provider stores.
type Metadata struct {
	FullName    string `json:"full_name,omitempty"`
	Mobile      string `json:"mobile,omitempty"`
	Location    string `json:"location,omitempty"`
	Role        string `json:"role,omitempty"`
	Onboarded   bool   `json:"onboarded"`
	PasswordSet bool   `json:"password_set"`
	CompanyID   string `json:"company_id,omitempty"`
}

// Identity is a provider-backed user record.
type Identity struct {
	ID       string   `json:"id"`
	Email    string   `json:"email"`
	Role     Role     `json:"role"`
	Metadata Metadata `json:"metadata"`
}

// NewIdentity is the creation payload for the provider.
type NewIdentity struct {
	Email    string
	Password string
	Metadata Metadata
}

// Session is the result of a password sign-in.
type Session struct {
	AccessToken string   `json:"access_token"`
	Identity    Identity `json:"user"`
}
