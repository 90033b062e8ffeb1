package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alimgiray/pessoas/internal/handlers"
	"github.com/alimgiray/pessoas/internal/middleware"
	"github.com/alimgiray/pessoas/internal/repositories"
	"github.com/alimgiray/pessoas/internal/services"
	"github.com/alimgiray/pessoas/pkg/config"
	"github.com/alimgiray/pessoas/pkg/database"
	"github.com/alimgiray/pessoas/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.AppConfig

	logger.Init(cfg.Log.Level)

	// Set Gin mode
	gin.SetMode(cfg.Server.Mode)

	// Initialize database
	if err := database.Init(cfg.Database.Path, cfg.Database.MigrationsDir); err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	// Initialize dependencies
	personRepo := repositories.NewPersonRepository(database.DB)
	importService := services.NewImportService(personRepo)
	exportService := services.NewExportService(personRepo)
	personService := services.NewPersonService(personRepo)

	personHandler := handlers.NewPersonHandler(importService, exportService, personService)
	healthHandler := handlers.NewHealthHandler(database.DB)

	// Initialize router
	router := gin.New()
	router.MaxMultipartMemory = int64(cfg.Upload.MaxSizeMB) << 20
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	// Setup routes
	handlers.SetupRoutes(router, personHandler, healthHandler)

	// Setup server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Infof("Server starting on :%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server forced to shutdown: %v", err)
	}

	logger.Info("Server stopped")
}
