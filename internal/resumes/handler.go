package resumes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"talenthub-backend/internal/authgate"
	"talenthub-backend/internal/identity"
	"talenthub-backend/internal/shared/apperr"
	"talenthub-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

type Handler struct {
	Svc  *Service
	Gate *authgate.Gate
}

func NewHandler(svc *Service, gate *authgate.Gate) *Handler {
	return &Handler{Svc: svc, Gate: gate}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/applicant/upload-resume", h.Gate.RequireRole(identity.RoleCandidate), h.upload)
	rg.GET("/applicant/resume-url/:candidate_id", h.Gate.RequireAuth(), h.signedURL)
}

func (h *Handler) upload(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		fileHeader, err = c.FormFile("file")
	}
	if err != nil {
		respond.Err(c, apperr.New(apperr.CodeInvalidArgument, "resume file is required"))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.Err(c, apperr.New(apperr.CodeInvalidArgument, "unable to read resume file"))
		return
	}
	defer file.Close()

	caller := authgate.IdentityFromContext(c)
	result, err := h.Svc.Upload(c.Request.Context(), caller.ID, fileHeader.Filename, file)
	if err != nil {
		respond.Err(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, result)
}

func (h *Handler) signedURL(c *gin.Context) {
	candidateID := c.Param("candidate_id")

	url, err := h.Svc.SignedURL(c.Request.Context(), candidateID)
	if err != nil {
		respond.Err(c, err)
		return
	}
	respond.OK(c, gin.H{"url": url, "expires_in_seconds": int(h.Svc.ttl().Seconds())})
}
