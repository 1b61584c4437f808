package registration

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"talenthub-backend/internal/shared/apperr"
	"talenthub-backend/internal/shared/server/respond"
)

const maxResumeBytes = 10 << 20 // 10MB

type Handler struct {
	Svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/auth/register", h.register)
}

func (h *Handler) register(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxResumeBytes)

	in := Input{
		FullName:    c.PostForm("full_name"),
		Email:       c.PostForm("email"),
		Mobile:      c.PostForm("mobile"),
		Location:    c.PostForm("location"),
		Role:        c.PostForm("role"),
		CompanyID:   c.PostForm("company_id"),
		CompanyName: c.PostForm("company_name"),
	}

	if fileHeader, err := c.FormFile("resume"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			respond.Err(c, apperr.New(apperr.CodeInvalidArgument, "unable to read resume file"))
			return
		}
		defer file.Close()
		in.Resume = file
		in.ResumeFileName = fileHeader.Filename
	}

	result, err := h.Svc.Register(c.Request.Context(), in)
	if err != nil {
		respond.Err(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, result)
}
