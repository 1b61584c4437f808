package registration

import (
	"context"
	"io"
	"strings"
	"time"

	"talenthub-backend/internal/accounts"
	"talenthub-backend/internal/companies"
	"talenthub-backend/internal/identity"
	"talenthub-backend/internal/notify"
	"talenthub-backend/internal/shared/apperr"
	"talenthub-backend/internal/shared/metrics"
	"talenthub-backend/internal/shared/storage/object"
	"talenthub-backend/internal/shared/telemetry"
)

// Input is everything the registration orchestrator needs for one attempt.
type Input struct {
	FullName    string
	Email       string
	Mobile      string
	Location    string
	Role        string
	CompanyID   string
	CompanyName string

	// Resume is optional; nil means no resume was attached.
	Resume         io.Reader
	ResumeFileName string
}

// Result reports the outcome with per-step flags so callers can retry
// non-critical side effects out-of-band.
type Result struct {
	IdentityID   string `json:"user_id"`
	ResumePath   string `json:"resume_path,omitempty"`
	ResumeStored bool   `json:"resume_stored"`
	CompanyID    string `json:"company_id,omitempty"`
	EmailSent    bool   `json:"email_sent"`
}

// Service orchestrates identity creation, the local account write, optional
// resume upload, optional company auto-provisioning and the welcome email as
// one logical unit with an explicit partial-failure policy.
type Service struct {
	Identity    identity.Client
	Accounts    accounts.Repo
	Companies   *companies.Service
	Store       object.ObjectStore
	Mailer      notify.Mailer
	FrontendURL string
}

// Register runs the orchestration. Identity creation and the account write
// are critical: their failure aborts (with a best-effort identity delete as
// compensation for the latter). Resume upload, company provisioning and the
// welcome email are best-effort and reported via Result flags.
//
// Not idempotent: a second call with the same email fails with AlreadyExists,
// and side effects of an earlier failed attempt are not cleaned up.
func (s *Service) Register(ctx context.Context, in Input) (Result, error) {
	metrics.IncRegistrationStarted()
	started := time.Now()

	result, err := s.register(ctx, in)
	if err != nil {
		metrics.IncRegistrationFailed()
		return Result{}, err
	}
	metrics.IncRegistrationCompleted()
	metrics.ObserveRegistrationDurationMs(float64(time.Since(started).Milliseconds()))
	return result, nil
}

func (s *Service) register(ctx context.Context, in Input) (Result, error) {
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.FullName = strings.TrimSpace(in.FullName)
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.CompanyID = strings.TrimSpace(in.CompanyID)

	if in.Email == "" {
		return Result{}, apperr.New(apperr.CodeInvalidArgument, "email is required")
	}
	if in.FullName == "" {
		return Result{}, apperr.New(apperr.CodeInvalidArgument, "full_name is required")
	}
	role, err := identity.ParseRole(in.Role)
	if err != nil {
		return Result{}, err
	}
	if role == identity.RoleRecruiter && in.CompanyID == "" && in.CompanyName == "" {
		return Result{}, apperr.New(apperr.CodeInvalidArgument, "recruiter registration requires company_id or company_name")
	}

	password, err := tempPassword()
	if err != nil {
		return Result{}, apperr.Wrap(apperr.CodeInternal, "could not generate credentials", err)
	}

	ident, err := s.Identity.CreateIdentity(ctx, identity.NewIdentity{
		Email:    in.Email,
		Password: password,
		Metadata: identity.Metadata{
			FullName:    in.FullName,
			Mobile:      in.Mobile,
			Location:    in.Location,
			Role:        string(role),
			Onboarded:   false,
			PasswordSet: false,
			CompanyID:   in.CompanyID,
		},
	})
	if err != nil {
		return Result{}, err
	}

	result := Result{IdentityID: ident.ID}

	account := accounts.Account{
		ID:        ident.ID,
		Email:     in.Email,
		FullName:  in.FullName,
		Role:      role,
		CompanyID: in.CompanyID,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.Accounts.Create(ctx, account); err != nil {
		// Compensate so no orphan identity is left behind.
		if delErr := s.Identity.DeleteIdentity(ctx, ident.ID); delErr != nil {
			telemetry.Error("registration.compensate_failed", map[string]any{
				"identity_id": ident.ID,
				"error":       delErr.Error(),
			})
		}
		return Result{}, apperr.Wrap(apperr.CodeDependency, "could not create account", err)
	}

	if in.Resume != nil {
		key, _, _, err := s.Store.Save(ctx, ident.ID, in.ResumeFileName, in.Resume)
		if err != nil {
			// Registration must not fail merely because resume upload failed.
			telemetry.Warn("registration.resume_upload_failed", map[string]any{
				"identity_id": ident.ID,
				"error":       err.Error(),
			})
		} else {
			result.ResumePath = key
			result.ResumeStored = true
		}
	}

	companyID := in.CompanyID
	if role == identity.RoleRecruiter && companyID == "" && in.CompanyName != "" {
		company, err := s.Companies.EnsureByName(ctx, in.CompanyName, ident.ID)
		if err != nil {
			// Non-fatal: the recruiter can attach a company later.
			telemetry.Warn("registration.company_provision_failed", map[string]any{
				"identity_id":  ident.ID,
				"company_name": in.CompanyName,
				"error":        err.Error(),
			})
		} else {
			companyID = company.ID
			if err := s.Accounts.SetCompany(ctx, ident.ID, companyID); err != nil {
				telemetry.Warn("registration.company_link_failed", map[string]any{
					"identity_id": ident.ID,
					"company_id":  companyID,
					"error":       err.Error(),
				})
			}
			if err := s.Identity.UpdateMetadata(ctx, ident.ID, map[string]any{"company_id": companyID}); err != nil {
				telemetry.Warn("registration.metadata_update_failed", map[string]any{
					"identity_id": ident.ID,
					"error":       err.Error(),
				})
			}
		}
	}
	result.CompanyID = companyID

	msg := notify.WelcomeEmail(in.Email, in.FullName, password, companyID, s.FrontendURL)
	if err := s.Mailer.Send(ctx, msg); err != nil {
		// Reported via email_sent so the caller can retry out-of-band.
		metrics.IncEmailFailed()
		telemetry.Warn("registration.welcome_email_failed", map[string]any{
			"identity_id": ident.ID,
			"error":       err.Error(),
		})
	} else {
		result.EmailSent = true
	}

	telemetry.Info("registration.complete", map[string]any{
		"identity_id":   ident.ID,
		"role":          string(role),
		"company_id":    companyID,
		"resume_stored": result.ResumeStored,
		"email_sent":    result.EmailSent,
	})
	return result, nil
}
