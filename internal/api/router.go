package api

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/youths4change/webgate/internal/app"
	"github.com/youths4change/webgate/internal/backend"
	"github.com/youths4change/webgate/internal/handlers"
	"github.com/youths4change/webgate/internal/middleware"
	"github.com/youths4change/webgate/internal/services"
)

// NewRouter builds the Gin engine, wires middleware and registers every
// public and back-office route against the shared backend client.
func NewRouter(cfg *app.Config, client *backend.Client) (*gin.Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must be provided")
	}
	if client == nil {
		return nil, fmt.Errorf("backend client must be provided")
	}

	wizards, err := services.NewWizardService(client)
	if err != nil {
		return nil, err
	}
	projects, err := services.NewProjectService(client)
	if err != nil {
		return nil, err
	}
	applications, err := services.NewApplicationService(client)
	if err != nil {
		return nil, err
	}
	content, err := services.NewContentService(client)
	if err != nil {
		return nil, err
	}
	analytics, err := services.NewAnalyticsService(client)
	if err != nil {
		return nil, err
	}
	donations, err := services.NewDonationAdminService(client)
	if err != nil {
		return nil, err
	}
	auth, err := services.NewAuthService(client)
	if err != nil {
		return nil, err
	}

	wizardHandler, err := handlers.NewWizardHandler(wizards)
	if err != nil {
		return nil, err
	}
	projectHandler, err := handlers.NewProjectHandler(projects)
	if err != nil {
		return nil, err
	}
	applicationHandler, err := handlers.NewApplicationHandler(applications)
	if err != nil {
		return nil, err
	}
	contentHandler, err := handlers.NewContentHandler(content)
	if err != nil {
		return nil, err
	}
	analyticsHandler, err := handlers.NewAnalyticsHandler(analytics)
	if err != nil {
		return nil, err
	}
	donationHandler, err := handlers.NewDonationAdminHandler(donations)
	if err != nil {
		return nil, err
	}
	authHandler, err := handlers.NewAuthHandler(auth)
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(middleware.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.Metrics())
	r.NoRoute(middleware.NotFoundHandler)

	r.GET("/health", handlers.Health())
	if cfg.Monitoring.Prometheus.Enabled {
		r.GET(cfg.Monitoring.Prometheus.Endpoint, gin.WrapH(promhttp.Handler()))
	}

	api := r.Group("/api")

	// Public site content
	api.GET("/projects", projectHandler.List)
	api.GET("/projects/:id", projectHandler.Show)
	api.GET("/settings", contentHandler.Settings)
	api.GET("/content/:page", contentHandler.PageContent)
	api.GET("/core-values", contentHandler.CoreValues)
	api.GET("/contact-info", contentHandler.ContactInfo)
	api.GET("/social-media", contentHandler.SocialMedia)
	api.GET("/regional-offices", contentHandler.RegionalOffices)
	api.GET("/team", contentHandler.TeamMembers)

	// Volunteer applications
	api.POST("/applications", applicationHandler.Submit)
	api.POST("/applications/word-count", applicationHandler.MotivationWordCount)

	// Donation wizard
	wizard := api.Group("/donate/wizard")
	{
		wizard.POST("", wizardHandler.Start)
		wizard.GET("/:id", wizardHandler.Show)
		wizard.PATCH("/:id", wizardHandler.Update)
		wizard.POST("/:id/validate", wizardHandler.ValidateField)
		wizard.POST("/:id/next", wizardHandler.Next)
		wizard.POST("/:id/back", wizardHandler.Back)
		wizard.POST("/:id/confirm", wizardHandler.Confirm)
		wizard.POST("/:id/submit", wizardHandler.Submit)
	}

	// Session lifecycle
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)

	// Back-office, gated by the backend session
	admin := api.Group("/admin", middleware.AdminSession(auth))
	{
		admin.GET("/profile", authHandler.Profile)
		admin.PUT("/profile", authHandler.UpdateProfile)
		admin.PUT("/password", authHandler.ChangePassword)

		admin.GET("/projects", projectHandler.AdminList)
		admin.POST("/projects", projectHandler.Create)
		admin.PUT("/projects/:id", projectHandler.Update)
		admin.DELETE("/projects/:id", projectHandler.Delete)

		admin.GET("/donations", donationHandler.List)
		admin.GET("/donations/:id", donationHandler.Show)
		admin.PUT("/donations/:id/verify", donationHandler.Verify)

		admin.GET("/applications", applicationHandler.List)
		admin.GET("/applications/:id", applicationHandler.Show)
		admin.PUT("/applications/:id", applicationHandler.Review)

		admin.GET("/analytics/overview", analyticsHandler.Overview)
		admin.GET("/analytics/projects-by-country", analyticsHandler.ProjectsByCountry)
		admin.GET("/analytics/donations", analyticsHandler.DonationStats)

		admin.PUT("/settings/:key", contentHandler.UpdateSetting)
		admin.PUT("/content/:page", contentHandler.UpdatePageContent)
		admin.PUT("/contact-info/:id", contentHandler.UpdateContactInfo)
		admin.PUT("/team/:id", contentHandler.UpdateTeamMember)
	}

	// Media uploads. The public route carries payment proofs, which are
	// attached before any session exists; batch uploads are back-office only.
	if cfg.Media.UploadURL != "" {
		media, err := services.NewMediaService(cfg.Media.UploadURL, cfg.Media.UploadPreset, cfg.Media.Folder)
		if err != nil {
			return nil, err
		}
		mediaHandler, err := handlers.NewMediaHandler(media)
		if err != nil {
			return nil, err
		}
		api.POST("/media/upload", mediaHandler.Upload)
		admin.POST("/media/upload-batch", mediaHandler.UploadBatch)
	}

	return r, nil
}
