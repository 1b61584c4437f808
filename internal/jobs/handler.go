package jobs

import (
	"net/http"

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
	recruiter := rg.Group("/recruiter")
	recruiter.Use(h.Gate.RequireRole(identity.RoleRecruiter))
	recruiter.POST("/post-job", h.post)
	recruiter.GET("/job/:id", h.get)
	recruiter.PUT("/job/:id", h.update)
	recruiter.DELETE("/job/:id", h.remove)
}

func (h *Handler) post(c *gin.Context) {
	var in PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Err(c, apperr.New(apperr.CodeInvalidArgument, "invalid request body"))
		return
	}

	caller := authgate.IdentityFromContext(c)
	job, err := h.Svc.Post(c.Request.Context(), caller.ID, caller.Metadata.CompanyID, in)
	if err != nil {
		respond.Err(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, job)
}

func (h *Handler) get(c *gin.Context) {
	job, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respond.Err(c, err)
		return
	}
	respond.OK(c, job)
}

func (h *Handler) update(c *gin.Context) {
	var in PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Err(c, apperr.New(apperr.CodeInvalidArgument, "invalid request body"))
		return
	}

	caller := authgate.IdentityFromContext(c)
	job, err := h.Svc.Update(c.Request.Context(), caller.ID, c.Param("id"), in)
	if err != nil {
		respond.Err(c, err)
		return
	}
	respond.OK(c, job)
}

func (h *Handler) remove(c *gin.Context) {
	caller := authgate.IdentityFromContext(c)
	if err := h.Svc.Delete(c.Request.Context(), caller.ID, c.Param("id")); err != nil {
		respond.Err(c, err)
		return
	}
	respond.OK(c, gin.H{"deleted": true})
}
