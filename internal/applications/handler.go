package applications

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"talenthub-backend/internal/authgate"
	"talenthub-backend/internal/identity"
	"talenthub-backend/internal/shared/apperr"
	"talenthub-backend/internal/shared/server/respond"
)

const maxVideoBytes = 100 << 20 // 100MB

type Handler struct {
	Svc  *Service
	Gate *authgate.Gate
}

func NewHandler(svc *Service, gate *authgate.Gate) *Handler {
	return &Handler{Svc: svc, Gate: gate}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/applicant/apply", h.Gate.RequireRole(identity.RoleCandidate), h.apply)
	rg.POST("/applicant/application/:id/video", h.Gate.RequireRole(identity.RoleCandidate), h.uploadVideo)
	rg.PUT("/recruiter/application/:id/status", h.Gate.RequireRole(identity.RoleRecruiter), h.setStatus)
}

type applyRequest struct {
	JobID string `json:"job_id"`
}

func (h *Handler) apply(c *gin.Context) {
	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Err(c, apperr.New(apperr.CodeInvalidArgument, "invalid request body"))
		return
	}

	caller := authgate.IdentityFromContext(c)
	app, err := h.Svc.Apply(c.Request.Context(), caller.ID, req.JobID)
	if err != nil {
		respond.Err(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, app)
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) setStatus(c *gin.Context) {
	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Err(c, apperr.New(apperr.CodeInvalidArgument, "invalid request body"))
		return
	}
	to, err := ParseStatus(req.Status)
	if err != nil {
		respond.Err(c, err)
		return
	}

	caller := authgate.IdentityFromContext(c)
	app, err := h.Svc.SetStatus(c.Request.Context(), caller.ID, c.Param("id"), to)
	if err != nil {
		respond.Err(c, err)
		return
	}
	respond.OK(c, app)
}

func (h *Handler) uploadVideo(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxVideoBytes)

	fileHeader, err := c.FormFile("video")
	if err != nil {
		respond.Err(c, apperr.New(apperr.CodeInvalidArgument, "video file is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respond.Err(c, apperr.New(apperr.CodeInvalidArgument, "unable to read video file"))
		return
	}
	defer file.Close()

	caller := authgate.IdentityFromContext(c)
	app, err := h.Svc.AttachVideo(c.Request.Context(), caller.ID, c.Param("id"), fileHeader.Filename, file)
	if err != nil {
		respond.Err(c, err)
		return
	}
	respond.OK(c, app)
}
