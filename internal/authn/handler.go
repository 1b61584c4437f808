package authn

import (
	"strings"

	"github.com/gin-gonic/gin"

	"talenthub-backend/internal/authgate"
	"talenthub-backend/internal/identity"
	"talenthub-backend/internal/notify"
	"talenthub-backend/internal/shared/apperr"
	"talenthub-backend/internal/shared/metrics"
	"talenthub-backend/internal/shared/server/respond"
	"talenthub-backend/internal/shared/telemetry"
)

// Handler serves the session endpoints: login, token validation and the
// best-effort password change notices.
type Handler struct {
	Identity    identity.Client
	Gate        *authgate.Gate
	Mailer      notify.Mailer
	FrontendURL string
}

func NewHandler(client identity.Client, gate *authgate.Gate, mailer notify.Mailer, frontendURL string) *Handler {
	return &Handler{Identity: client, Gate: gate, Mailer: mailer, FrontendURL: frontendURL}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	auth.POST("/login", h.login)
	auth.POST("/validate", h.validate)
	auth.POST("/password-changed", h.passwordChanged)
	auth.POST("/password-updated", h.passwordChanged)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Err(c, apperr.New(apperr.CodeInvalidArgument, "invalid request body"))
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		respond.Err(c, apperr.New(apperr.CodeInvalidArgument, "email and password are required"))
		return
	}

	session, err := h.Identity.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respond.Err(c, err)
		return
	}
	respond.OK(c, gin.H{
		"access_token": session.AccessToken,
		"user":         session.Identity,
	})
}

func (h *Handler) validate(c *gin.Context) {
	ident, err := h.Gate.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		respond.Err(c, err)
		return
	}
	respond.OK(c, gin.H{"user": ident})
}

// passwordChanged marks the identity's password as set and sends a
// best-effort notice. The response always succeeds; delivery is reported via
// email_sent.
func (h *Handler) passwordChanged(c *gin.Context) {
	ident, err := h.Gate.Authenticate(c.Request.Context(), c.GetHeader("Authorization"))
	if err != nil {
		respond.Err(c, err)
		return
	}

	if err := h.Identity.UpdateMetadata(c.Request.Context(), ident.ID, map[string]any{"password_set": true}); err != nil {
		telemetry.Warn("authn.password_set_flag_failed", map[string]any{
			"identity_id": ident.ID,
			"error":       err.Error(),
		})
	}

	emailSent := true
	if err := h.Mailer.Send(c.Request.Context(), notify.PasswordChangedEmail(ident.Email, h.FrontendURL)); err != nil {
		emailSent = false
		metrics.IncEmailFailed()
		telemetry.Warn("authn.password_notice_failed", map[string]any{
			"identity_id": ident.ID,
			"error":       err.Error(),
		})
	}
	respond.OK(c, gin.H{"email_sent": emailSent})
}
