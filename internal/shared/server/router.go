package server

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"talenthub-backend/internal/applications"
	"talenthub-backend/internal/authn"
	"talenthub-backend/internal/companies"
	"talenthub-backend/internal/dashboard"
	"talenthub-backend/internal/jobs"
	"talenthub-backend/internal/profiles"
	"talenthub-backend/internal/registration"
	"talenthub-backend/internal/resumes"
	"talenthub-backend/internal/shared/config"
	"talenthub-backend/internal/shared/metrics"
	"talenthub-backend/internal/shared/server/middleware"
	"talenthub-backend/internal/shared/server/respond"
)

// RouterDeps carries the handlers the router mounts. Wiring happens in
// bootstrap; the router only attaches middleware and routes.
type RouterDeps struct {
	Config              config.Config
	RegistrationHandler *registration.Handler
	AuthnHandler        *authn.Handler
	ProfilesHandler     *profiles.Handler
	ResumesHandler      *resumes.Handler
	CompaniesHandler    *companies.Handler
	JobsHandler         *jobs.Handler
	ApplicationsHandler *applications.Handler
	DashboardHandler    *dashboard.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		cors.New(corsConfig(deps.Config)),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"status": "ok"})
	})

	deps.RegistrationHandler.RegisterRoutes(api)
	deps.AuthnHandler.RegisterRoutes(api)
	deps.ProfilesHandler.RegisterRoutes(api)
	deps.ResumesHandler.RegisterRoutes(api)
	deps.CompaniesHandler.RegisterRoutes(api)
	deps.JobsHandler.RegisterRoutes(api)
	deps.ApplicationsHandler.RegisterRoutes(api)
	deps.DashboardHandler.RegisterRoutes(api)

	return r
}

func corsConfig(cfg config.Config) cors.Config {
	c := cors.Config{
		AllowOrigins:     cfg.CORSAllowOrigin,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(c.AllowOrigins) == 0 {
		c.AllowOrigins = []string{"http://localhost:5173"}
	}
	return c
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
