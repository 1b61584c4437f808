package dashboard

import (
	"github.com/gin-gonic/gin"

	"talenthub-backend/internal/authgate"
	"talenthub-backend/internal/shared/apperr"
	"talenthub-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc  *Service
	Gate *authgate.Gate
}

func NewHandler(svc *Service, gate *authgate.Gate) *Handler {
	return &Handler{Svc: svc, Gate: gate}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard/summary/:user_id", h.Gate.RequireAuth(), h.summary)
}

// summary returns the caller's own dashboard. The path id must match the
// authenticated user; one user cannot read another's dashboard.
func (h *Handler) summary(c *gin.Context) {
	caller := authgate.IdentityFromContext(c)
	userID := c.Param("user_id")
	if userID != caller.ID {
		respond.Err(c, apperr.New(apperr.CodeForbidden, "cannot read another user's dashboard"))
		return
	}

	summary, err := h.Svc.Build(c.Request.Context(), userID)
	if err != nil {
		respond.Err(c, err)
		return
	}
	respond.OK(c, summary)
}
