package companies

import (
	"context"
	"errors"
	"strings"

	"talenthub-backend/internal/accounts"
	"talenthub-backend/internal/identity"
	"talenthub-backend/internal/shared/apperr"
	"talenthub-backend/internal/shared/telemetry"
)

// ProfileService completes recruiter onboarding after registration: it
// resolves (or provisions) the recruiter's company, links it on the local
// account, and pushes the contact details into the identity metadata.
type ProfileService struct {
	Companies *Service
	Accounts  accounts.Repo
	Identity  identity.Client
}

// ProfileInput carries the recruiter's onboarding form. CompanyID wins when
// both it and CompanyName are present.
type ProfileInput struct {
	CompanyID   string
	CompanyName string
	FullName    string
	Phone       string
	Position    string
	LinkedInURL string
}

// RecruiterProfile is the saved onboarding state returned to the client.
type RecruiterProfile struct {
	UserID      string `json:"user_id"`
	CompanyID   string `json:"company_id,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	FullName    string `json:"full_name,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Position    string `json:"position,omitempty"`
	LinkedInURL string `json:"linkedin_url,omitempty"`
	Onboarded   bool   `json:"onboarded"`
}

// SaveProfile upserts the recruiter's onboarding profile. A company named
// but not yet provisioned is created the same way registration creates one;
// an unknown company id is rejected. The company link on the account is a
// critical write, the metadata push is best-effort.
func (s *ProfileService) SaveProfile(ctx context.Context, recruiterID string, in ProfileInput) (RecruiterProfile, error) {
	if strings.TrimSpace(recruiterID) == "" {
		return RecruiterProfile{}, apperr.New(apperr.CodeInvalidArgument, "user id is required")
	}

	var company Company
	switch {
	case strings.TrimSpace(in.CompanyID) != "":
		found, err := s.Companies.Get(ctx, in.CompanyID)
		if err != nil {
			return RecruiterProfile{}, err
		}
		company = found
	case strings.TrimSpace(in.CompanyName) != "":
		created, err := s.Companies.EnsureByName(ctx, in.CompanyName, recruiterID)
		if err != nil {
			return RecruiterProfile{}, err
		}
		company = created
	}

	if company.ID != "" {
		if err := s.Accounts.SetCompany(ctx, recruiterID, company.ID); err != nil {
			if errors.Is(err, accounts.ErrNotFound) {
				return RecruiterProfile{}, err
			}
			return RecruiterProfile{}, apperr.Wrap(apperr.CodeDependency, "could not link company", err)
		}
	}

	fields := map[string]any{"onboarded": true}
	if company.ID != "" {
		fields["company_id"] = company.ID
	}
	if v := strings.TrimSpace(in.FullName); v != "" {
		fields["full_name"] = v
	}
	if v := strings.TrimSpace(in.Phone); v != "" {
		fields["mobile"] = v
	}
	if v := strings.TrimSpace(in.Position); v != "" {
		fields["position"] = v
	}
	if v := strings.TrimSpace(in.LinkedInURL); v != "" {
		fields["linkedin_url"] = v
	}
	if err := s.Identity.UpdateMetadata(ctx, recruiterID, fields); err != nil {
		// The local account already carries the company link; the provider
		// copy catches up on the next metadata write.
		telemetry.Warn("companies.profile_metadata_failed", map[string]any{
			"user_id": recruiterID,
			"error":   err.Error(),
		})
	}

	return RecruiterProfile{
		UserID:      recruiterID,
		CompanyID:   company.ID,
		CompanyName: company.Name,
		FullName:    strings.TrimSpace(in.FullName),
		Phone:       strings.TrimSpace(in.Phone),
		Position:    strings.TrimSpace(in.Position),
		LinkedInURL: strings.TrimSpace(in.LinkedInURL),
		Onboarded:   true,
	}, nil
}
