// File: /main.go
package main

import (
	"context"
	"log"
	"time"

	"aquaevents-api/config"
	"aquaevents-api/database"
	"aquaevents-api/jobs"
	"aquaevents-api/middleware"
	"aquaevents-api/repositories"
	"aquaevents-api/routes"
	"aquaevents-api/services"

	"github.com/gin-gonic/gin"
)

const worldTriathlonAPIURL = "https://api.triathlon.org/v1/events?country_id=68&per_page=100"

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Seed reference data and promote the owner account
	if err := database.SeedData(db, cfg.OwnerEmail); err != nil {
		log.Printf("Warning: Failed to seed database: %v", err)
	}

	// Public events live in MongoDB; the handle connects lazily so the API
	// still serves (degraded) when the store is down.
	mongoStore := database.NewMongo(cfg.MongoURI, "aquaevents")
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		mongoStore.Close(ctx)
	}()

	// Set Gin mode based on environment
	if cfg.Port == "8080" { // Development
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create router
	router := gin.Default()

	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.RateLimit(120, 30))

	// Email service for verification and welcome mail
	emailService := services.NewEmailService(cfg)

	// Setup routes
	routes.SetupRoutes(router, db, mongoStore, cfg, emailService)

	// Background sync of the external triathlon calendar
	eventRepo := repositories.NewEventRepository(mongoStore)
	llm := services.NewLLMClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
	translator := services.NewTranslationService(llm)
	syncJob := jobs.NewEventSyncJob(eventRepo, translator, worldTriathlonAPIURL, cfg.SiteURL, 12*time.Hour)
	syncJob.Start()
	defer syncJob.Stop()

	// Start server
	log.Printf("Starting AquaEvents API server on port %s", cfg.Port)
	log.Printf("Health check available at: http://localhost:%s/ping", cfg.Port)

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
