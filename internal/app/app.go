package app

import (
	"badabuilder-backend/internal/auth"
	"badabuilder-backend/internal/complaints"
	"badabuilder-backend/internal/config"
	"badabuilder-backend/internal/database"
	"badabuilder-backend/internal/health"
	"badabuilder-backend/internal/leads"
	"badabuilder-backend/internal/middleware"
	"badabuilder-backend/internal/payments"
	"badabuilder-backend/internal/projects"
	"badabuilder-backend/internal/properties"
	"badabuilder-backend/internal/subscriptions"
	"badabuilder-backend/internal/units"
	"badabuilder-backend/internal/uploads"
	"badabuilder-backend/internal/visits"
	"badabuilder-backend/internal/wizard"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// CreateApp builds the Fiber app with global middleware and all route groups.
// The returned DB and Redis client are handed back so main can verify
// connectivity before listening.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	// Stripe webhook is mounted before the session middleware; it
	// authenticates by signature, not cookie, and needs the raw body.
	stripeWebhook := &payments.WebhookHandler{WebhookSecret: cfg.StripeWebhookSecret}
	app.Post("/api/v1/stripe/webhook", stripeWebhook.HandleWebhook)

	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)

	app.Use(health.Track(rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
		stripeWebhook.DB = db
	}

	healthHandlers := &health.Handlers{Rdb: rdb}
	if db != nil {
		healthHandlers.DB = gormPinger{db}
	}
	app.Get("/health/json", healthHandlers.JSON)

	var userFinder auth.UserFinder
	if db != nil {
		userFinder = &auth.GormUserFinder{DB: db}
	}
	authHandlers := &auth.Handlers{DB: db, UserFinder: userFinder, Rdb: rdb, Config: sessionCfg}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/register", authHandlers.Register)
	authGroup.Post("/login", authHandlers.Login)
	authGroup.Get("/me", authHandlers.Me)
	authGroup.Delete("/logout", authHandlers.Logout)

	stripeCreator := &payments.RealStripeCreator{SecretKey: cfg.StripeSecretKey}

	cloudinary := &uploads.HTTPClient{
		BaseURL:      cfg.CloudinaryBaseURL,
		CloudName:    cfg.CloudinaryCloudName,
		UploadPreset: cfg.CloudinaryUploadPreset,
	}
	uploadService := &uploads.Service{Client: cloudinary}
	uploadHandlers := &uploads.Handlers{Service: uploadService}
	uploadGroup := app.Group("/api/v1/uploads", middleware.RequireAuth())
	uploadGroup.Post("/image", uploadHandlers.UploadImage)
	uploadGroup.Post("/brochure", uploadHandlers.UploadBrochure)

	if db != nil {
		projectService := &projects.Service{DB: db, Uploader: uploadService}
		projectHandlers := &projects.Handlers{Service: projectService}
		groupingGroup := app.Group("/api/v1/grouping", middleware.RequireAuth(), middleware.RequireAdmin())
		groupingGroup.Post("/create-project", projectHandlers.CreateProject)
		groupingGroup.Get("/get-all-projects", projectHandlers.ListProjects)
		groupingGroup.Get("/get-project/:project_id", projectHandlers.GetProject)
		groupingGroup.Patch("/update-status/:project_id", projectHandlers.UpdateStatus)
		groupingGroup.Delete("/delete-project/:project_id", projectHandlers.DeleteProject)

		wizardHandlers := &wizard.Handlers{
			Registry:  wizard.NewRegistry(),
			Persister: projectService,
			Uploader:  uploadService,
		}
		wizardGroup := app.Group("/api/v1/grouping/wizard", middleware.RequireAuth(), middleware.RequireAdmin())
		wizardGroup.Post("/start", wizardHandlers.Start)
		wizardGroup.Get("/draft", wizardHandlers.GetDraft)
		wizardGroup.Patch("/project-data", wizardHandlers.UpdateProjectData)
		wizardGroup.Post("/select-type", wizardHandlers.SelectType)
		wizardGroup.Post("/deselect-type", wizardHandlers.DeselectType)
		wizardGroup.Post("/add-tower", wizardHandlers.AddTower)
		wizardGroup.Post("/remove-tower", wizardHandlers.RemoveTower)
		wizardGroup.Patch("/update-tower", wizardHandlers.UpdateTower)
		wizardGroup.Post("/populate-tower", wizardHandlers.PopulateTower)
		wizardGroup.Post("/copy-floor", wizardHandlers.CopyFloor)
		wizardGroup.Post("/add-unit", wizardHandlers.AddUnit)
		wizardGroup.Post("/remove-unit", wizardHandlers.RemoveUnit)
		wizardGroup.Patch("/update-unit", wizardHandlers.UpdateUnit)
		wizardGroup.Patch("/defaults", wizardHandlers.UpdateDefaults)
		wizardGroup.Post("/next-step", wizardHandlers.NextStep)
		wizardGroup.Post("/prev-step", wizardHandlers.PrevStep)
		wizardGroup.Post("/confirm", wizardHandlers.Confirm)

		unitHandlers := &units.Handlers{Service: &units.Service{DB: db}}
		unitGroup := app.Group("/api/v1/units", middleware.RequireAuth(), middleware.RequireAdmin())
		unitGroup.Post("/lock-unit", unitHandlers.LockUnit)
		unitGroup.Post("/book-unit", unitHandlers.BookUnit)
		unitGroup.Post("/release-unit", unitHandlers.ReleaseUnit)
		unitGroup.Patch("/update-unit", unitHandlers.UpdateUnit)

		leadHandlers := &leads.Handlers{Service: &leads.Service{DB: db}}
		app.Post("/api/v1/leads", leadHandlers.CreateLead)
		app.Get("/api/v1/leads/get-all-leads", middleware.RequireAuth(), middleware.RequireAdmin(), leadHandlers.GetAllLeads)

		visitHandlers := &visits.Handlers{
			Service:       &visits.Service{DB: db},
			StripeCreator: stripeCreator,
		}
		visitGroup := app.Group("/api/v1/visits", middleware.RequireAuth())
		visitGroup.Post("/book-visit", visitHandlers.BookVisit)
		visitGroup.Post("/reschedule-visit", visitHandlers.RescheduleVisit)
		visitGroup.Post("/cancel-visit", visitHandlers.CancelVisit)
		visitGroup.Get("/get-my-visits", visitHandlers.GetMyVisits)

		propertyHandlers := &properties.Handlers{Service: &properties.Service{DB: db}}
		app.Get("/api/v1/properties/search", propertyHandlers.Search)
		app.Get("/api/v1/properties/get-property/:property_id", propertyHandlers.GetProperty)
		app.Post("/api/v1/properties/post-property", middleware.RequireAuth(), propertyHandlers.PostProperty)

		subscriptionHandlers := &subscriptions.Handlers{
			Service:       &subscriptions.Service{DB: db},
			StripeCreator: stripeCreator,
		}
		app.Get("/api/v1/subscriptions/plans", subscriptionHandlers.GetPlans)
		app.Post("/api/v1/subscriptions/subscribe", middleware.RequireAuth(), subscriptionHandlers.Subscribe)

		complaintHandlers := &complaints.Handlers{Service: &complaints.Service{DB: db}}
		complaintGroup := app.Group("/api/v1/complaints", middleware.RequireAuth())
		complaintGroup.Post("/create-complaint", complaintHandlers.CreateComplaint)
		complaintGroup.Get("/get-my-complaints", complaintHandlers.GetMyComplaints)
		complaintGroup.Patch("/update-status", middleware.RequireAdmin(), complaintHandlers.UpdateStatus)
	}

	return app, db, rdb, nil
}

// gormPinger adapts *gorm.DB to the health DBPinger.
type gormPinger struct {
	db *gorm.DB
}

func (p gormPinger) Ping() error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
