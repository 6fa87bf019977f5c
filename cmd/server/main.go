package main

import (
	"context"
	"log"
	"os"

	"pulse-crm-backend/internal/api/routes"
	"pulse-crm-backend/internal/config"
	"pulse-crm-backend/internal/mailer"
	"pulse-crm-backend/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load environment variables from .env file in development
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Set up logging
	setupLogging(cfg.LogLevel)

	ctx := context.Background()

	// Initialize document store
	client, err := store.NewClient(ctx, store.ClientOptions{
		Region:   cfg.AWSRegion,
		Endpoint: cfg.DynamoEndpoint,
	})
	if err != nil {
		logrus.Fatal("Failed to initialize store client:", err)
	}
	s := store.New(client, cfg.TableName)

	// Initialize notification sink; delivery stays disabled without a
	// verified sender identity.
	var m mailer.Mailer = mailer.NoopMailer{}
	if cfg.SenderEmail != "" {
		sesMailer, err := mailer.NewSESMailer(ctx, cfg.AWSRegion, cfg.SenderEmail)
		if err != nil {
			logrus.Fatal("Failed to initialize mailer:", err)
		}
		m = sesMailer
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize router
	router := routes.SetupRoutes(s, m, cfg)

	// Start server
	port := cfg.Port
	if port == "" {
		port = "7010"
	}

	logrus.Infof("Starting server on port %s", port)
	if err := router.Run(":" + port); err != nil {
		logrus.Fatal("Failed to start server:", err)
	}
}

func setupLogging(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	switch level {
	case "debug":
		logrus.SetLevel(logrus.DebugLevel)
	case "info":
		logrus.SetLevel(logrus.InfoLevel)
	case "warn":
		logrus.SetLevel(logrus.WarnLevel)
	case "error":
		logrus.SetLevel(logrus.ErrorLevel)
	default:
		logrus.SetLevel(logrus.InfoLevel)
	}
}
