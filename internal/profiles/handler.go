package profiles

import (
	"github.com/gin-gonic/gin"

	"talenthub-backend/internal/authgate"
	"talenthub-backend/internal/identity"
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
	rg.POST("/applicant/detailed-form", h.Gate.RequireRole(identity.RoleCandidate), h.save)
	rg.GET("/applicant/detailed-form/:candidate_id", h.Gate.RequireAuth(), h.get)
}

func (h *Handler) save(c *gin.Context) {
	var req DetailedFormRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Err(c, apperr.New(apperr.CodeInvalidArgument, "invalid request body"))
		return
	}

	caller := authgate.IdentityFromContext(c)
	if err := h.Svc.SaveDetailedForm(c.Request.Context(), caller.ID, req); err != nil {
		respond.Err(c, err)
		return
	}
	respond.OK(c, gin.H{"saved": true})
}

func (h *Handler) get(c *gin.Context) {
	candidateID := c.Param("candidate_id")

	view, err := h.Svc.GetDetailedForm(c.Request.Context(), candidateID)
	if err != nil {
		respond.Err(c, err)
		return
	}
	respond.OK(c, view)
}
