package routes

import (
	"pulse-crm-backend/internal/api/handlers"
	"pulse-crm-backend/internal/api/middleware"
	"pulse-crm-backend/internal/auth"
	"pulse-crm-backend/internal/config"
	"pulse-crm-backend/internal/mailer"
	"pulse-crm-backend/internal/repository"
	"pulse-crm-backend/internal/service"
	"pulse-crm-backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(s *store.Store, m mailer.Mailer, cfg *config.Config) *gin.Engine {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg))

	// Initialize validator
	validate := validator.New()

	// Initialize repositories
	orgRepo := repository.NewOrganizationRepository(s)
	userRepo := repository.NewUserRepository(s)
	leadRepo := repository.NewLeadRepository(s)
	settingsRepo := repository.NewSettingsRepository(s)
	seedRepo := repository.NewSeedRepository(s)

	// Initialize auth service and middleware
	authService := auth.NewService(cfg.JWTSecret)
	authMiddleware := auth.NewMiddleware(authService)

	// Initialize services
	identityService := service.NewIdentityService(orgRepo, userRepo, authService, m, validate, cfg.ReleaseEmailLockOnDelete)
	leadService := service.NewLeadService(leadRepo)
	settingsService := service.NewSettingsService(settingsRepo)
	seedService := service.NewSeedService(seedRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(s)
	authHandler := handlers.NewAuthHandler(identityService)
	leadHandler := handlers.NewLeadHandler(leadService)
	userHandler := handlers.NewUserHandler(identityService)
	settingsHandler := handlers.NewSettingsHandler(settingsService)
	seedHandler := handlers.NewSeedHandler(seedService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Public auth routes
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/signup", authHandler.Signup)
		authGroup.POST("/login", authHandler.Login)
	}

	// Tenant-scoped resource routes; the token gate runs before any store
	// access.
	protected := router.Group("/")
	protected.Use(authMiddleware.RequireAuth())
	{
		leads := protected.Group("/leads")
		{
			leads.POST("", leadHandler.CreateLead)
			leads.GET("", leadHandler.GetLeads)
			leads.PUT("/:id", leadHandler.UpdateLead)
			leads.DELETE("/:id", leadHandler.DeleteLead)
			leads.POST("/:id/notes", leadHandler.AddNote)
		}

		settings := protected.Group("/settings")
		{
			settings.GET("/fields", settingsHandler.GetFields)
			settings.POST("/fields", settingsHandler.SaveFields)
		}

		users := protected.Group("/users")
		{
			users.GET("", userHandler.GetUsers)
			users.DELETE("/:email", authMiddleware.RequireAdmin(), userHandler.DeleteUser)
		}

		protected.POST("/seed", seedHandler.Seed)
	}

	return router
}
