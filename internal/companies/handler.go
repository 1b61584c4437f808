package companies

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"talenthub-backend/internal/authgate"
	"talenthub-backend/internal/identity"
	"talenthub-backend/internal/shared/apperr"
	"talenthub-backend/internal/shared/server/respond"
)

type Handler struct {
	Svc     *Service
	Profile *ProfileService
	Gate    *authgate.Gate
}

func NewHandler(svc *Service, profile *ProfileService, gate *authgate.Gate) *Handler {
	return &Handler{Svc: svc, Profile: profile, Gate: gate}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	recruiter := rg.Group("/recruiter")
	recruiter.Use(h.Gate.RequireRole(identity.RoleRecruiter))
	recruiter.POST("/companies", h.create)
	recruiter.GET("/companies", h.list)
	recruiter.POST("/profile", h.saveProfile)
}

type createRequest struct {
	Name string `json:"name"`
}

func (h *Handler) create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Err(c, apperr.New(apperr.CodeInvalidArgument, "invalid request body"))
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respond.Err(c, apperr.New(apperr.CodeInvalidArgument, "name is required"))
		return
	}

	caller := authgate.IdentityFromContext(c)
	company, err := h.Svc.EnsureByName(c.Request.Context(), req.Name, caller.ID)
	if err != nil {
		respond.Err(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, company)
}

type profileRequest struct {
	CompanyID   string `json:"company_id"`
	CompanyName string `json:"company_name"`
	FullName    string `json:"full_name"`
	ContactName string `json:"contact_name"`
	Phone       string `json:"phone"`
	Position    string `json:"position"`
	LinkedInURL string `json:"linkedin_url"`
}

func (h *Handler) saveProfile(c *gin.Context) {
	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Err(c, apperr.New(apperr.CodeInvalidArgument, "invalid request body"))
		return
	}
	fullName := req.FullName
	if fullName == "" {
		fullName = req.ContactName
	}

	caller := authgate.IdentityFromContext(c)
	profile, err := h.Profile.SaveProfile(c.Request.Context(), caller.ID, ProfileInput{
		CompanyID:   req.CompanyID,
		CompanyName: req.CompanyName,
		FullName:    fullName,
		Phone:       req.Phone,
		Position:    req.Position,
		LinkedInURL: req.LinkedInURL,
	})
	if err != nil {
		respond.Err(c, err)
		return
	}
	respond.OK(c, profile)
}

func (h *Handler) list(c *gin.Context) {
	list, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Err(c, err)
		return
	}
	if list == nil {
		list = []Company{}
	}
	respond.OK(c, list)
}
