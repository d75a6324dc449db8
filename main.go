// File: festivo/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"festivo/config"
	"festivo/cron"
	"festivo/database"
	supplierRepo "festivo/database/repository/supplier"
	syncrunRepo "festivo/database/repository/syncrun"
	"festivo/handlers"
	"festivo/middleware"
	"festivo/models"
	"festivo/routes"
	"festivo/services/availability"
	"festivo/services/booking"
	"festivo/services/calendar"
	"festivo/services/calendar/providers"
	"festivo/services/supplier"
	"festivo/utils"

	"github.com/gin-gonic/gin"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	utils.InitAuthCache()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	supRepo := supplierRepo.NewMongoSupplierRepo()
	runRepo := syncrunRepo.NewMongoSyncRunRepo()

	// calendar provider clients.
	cfg := config.AppConfig
	clients := map[string]providers.Client{
		models.ProviderGoogle: providers.NewGoogleClient(
			cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL),
		models.ProviderOutlook: providers.NewOutlookClient(
			cfg.MicrosoftClientID, cfg.MicrosoftClientSecret, cfg.MicrosoftRedirectURL),
	}

	// services.
	syncService := &calendar.DefaultSyncService{
		Repo:            supRepo,
		Clients:         clients,
		WebhookURL:      cfg.WebhookBaseURL + "/api/calendar/webhook/google",
		WebhookSecret:   cfg.WebhookSecret,
		WindowDays:      cfg.SyncWindowDays,
		FirstWindowDays: cfg.FirstSyncWindowDays,
	}

	engine := &availability.DefaultEngine{}

	resolver := &booking.DefaultReplacementService{
		Directory: booking.NewRepoDirectory(supRepo),
		Engine:    engine,
	}

	supplierService := &supplier.DefaultSupplierService{
		Repo: supRepo,
	}

	// Background sync worker and queue.
	queue := cron.NewSyncQueueClient()
	cron.InitSyncWorker(syncService, runRepo, queue)

	// Assemble the handler bundle.
	handlerBundle := &routes.HandlerBundle{
		SupplierRepo: supRepo,
		Supplier:     handlers.NewSupplierHandler(supplierService),
		Calendar:     handlers.NewCalendarHandler(syncService, runRepo),
		Webhook:      handlers.NewWebhookHandler(supRepo, queue, utils.GetCacheClient(), cfg.WebhookSecret),
		Availability: handlers.NewAvailabilityHandler(supRepo, engine),
		Booking:      handlers.NewBookingHandler(resolver),
	}

	// Register routes with the assembled handler bundle.
	routes.RegisterRoutes(router, handlerBundle)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
