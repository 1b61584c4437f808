package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"talenthub-backend/internal/accounts"
	"talenthub-backend/internal/applications"
	"talenthub-backend/internal/authgate"
	"talenthub-backend/internal/authn"
	"talenthub-backend/internal/companies"
	"talenthub-backend/internal/dashboard"
	"talenthub-backend/internal/identity"
	"talenthub-backend/internal/jobs"
	"talenthub-backend/internal/notify"
	"talenthub-backend/internal/profiles"
	"talenthub-backend/internal/registration"
	"talenthub-backend/internal/resumes"
	"talenthub-backend/internal/shared/config"
	"talenthub-backend/internal/shared/server"
	"talenthub-backend/internal/shared/storage/db"
	"talenthub-backend/internal/shared/storage/object"
	localstore "talenthub-backend/internal/shared/storage/object/local"
	s3store "talenthub-backend/internal/shared/storage/object/s3"
	"talenthub-backend/internal/shared/telemetry"
)

// App holds shared dependencies wired once at process start.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore

	Identity identity.Client
	Mailer   notify.Mailer
	Gate     *authgate.Gate

	AccountsRepo     accounts.Repo
	CompaniesRepo    companies.Repo
	ProfilesRepo     profiles.Repo
	JobsRepo         jobs.Repo
	ApplicationsRepo applications.Repo

	CompaniesService    *companies.Service
	RecruiterOnboarding *companies.ProfileService
	ProfilesService     *profiles.Service
	ResumesService      *resumes.Service
	JobsService         *jobs.Service
	ApplicationsService *applications.Service
	RegistrationService *registration.Service
	DashboardService    *dashboard.Service
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	identityClient, err := identity.NewHTTPClient(cfg.IdentityProviderURL, cfg.IdentityServiceKey)
	if err != nil {
		return nil, err
	}

	mailer, err := buildMailer(cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		DB:       sqlDB,
		Store:    store,
		Identity: identityClient,
		Mailer:   mailer,
		Gate:     authgate.New(identityClient),
	}

	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:              app.Config,
		RegistrationHandler: registration.NewHandler(app.RegistrationService),
		AuthnHandler:        authn.NewHandler(app.Identity, app.Gate, app.Mailer, cfg.FrontendBaseURL),
		ProfilesHandler:     profiles.NewHandler(app.ProfilesService, app.Gate),
		ResumesHandler:      resumes.NewHandler(app.ResumesService, app.Gate),
		CompaniesHandler:    companies.NewHandler(app.CompaniesService, app.RecruiterOnboarding, app.Gate),
		JobsHandler:         jobs.NewHandler(app.JobsService, app.Gate),
		ApplicationsHandler: applications.NewHandler(app.ApplicationsService, app.Gate),
		DashboardHandler:    dashboard.NewHandler(app.DashboardService, app.Gate),
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildMailer(cfg config.Config) (notify.Mailer, error) {
	if strings.TrimSpace(cfg.EmailAPIKey) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: EMAIL_API_KEY empty; emails will be logged, not sent")
			return notify.LogMailer{Log: telemetry.Info}, nil
		}
		return nil, fmt.Errorf("EMAIL_API_KEY is required")
	}
	return notify.NewHTTPMailer(cfg.EmailAPIURL, cfg.EmailAPIKey, notify.Senders{
		Auth:    cfg.EmailSenderAuth,
		Alerts:  cfg.EmailSenderAlerts,
		Reports: cfg.EmailSenderReports,
	})
}

func buildServices(app *App) {
	if app.DB != nil {
		app.AccountsRepo = &accounts.PGRepo{DB: app.DB}
		app.CompaniesRepo = &companies.PGRepo{DB: app.DB}
		app.ProfilesRepo = &profiles.PGRepo{DB: app.DB}
		app.JobsRepo = &jobs.PGRepo{DB: app.DB}
		app.ApplicationsRepo = &applications.PGRepo{DB: app.DB}
	} else {
		app.AccountsRepo = accounts.NewMemoryRepo()
		app.CompaniesRepo = companies.NewMemoryRepo()
		app.ProfilesRepo = profiles.NewMemoryRepo()
		app.JobsRepo = jobs.NewMemoryRepo()
		app.ApplicationsRepo = applications.NewMemoryRepo()
	}

	app.CompaniesService = companies.NewService(app.CompaniesRepo)
	app.RecruiterOnboarding = &companies.ProfileService{
		Companies: app.CompaniesService,
		Accounts:  app.AccountsRepo,
		Identity:  app.Identity,
	}
	app.ProfilesService = profiles.NewService(app.ProfilesRepo)
	app.ResumesService = &resumes.Service{
		Store:        app.Store,
		Profiles:     app.ProfilesRepo,
		SignedURLTTL: app.Config.SignedURLTTL,
	}
	app.JobsService = jobs.NewService(app.JobsRepo)
	app.ApplicationsService = &applications.Service{
		Repo:  app.ApplicationsRepo,
		Jobs:  app.JobsRepo,
		Store: app.Store,
	}
	app.RegistrationService = &registration.Service{
		Identity:    app.Identity,
		Accounts:    app.AccountsRepo,
		Companies:   app.CompaniesService,
		Store:       app.Store,
		Mailer:      app.Mailer,
		FrontendURL: app.Config.FrontendBaseURL,
	}
	app.DashboardService = &dashboard.Service{
		Accounts:     app.AccountsRepo,
		Jobs:         app.JobsRepo,
		Applications: app.ApplicationsRepo,
	}
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
