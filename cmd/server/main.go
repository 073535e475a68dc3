package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alperakbas/emailscope/internal/handlers"
	"github.com/alperakbas/emailscope/internal/middleware"
	"github.com/alperakbas/emailscope/internal/services"
	"github.com/alperakbas/emailscope/pkg/config"
	"github.com/alperakbas/emailscope/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Set Gin mode
	gin.SetMode(config.AppConfig.Server.Mode)

	// Initialize logger
	logger.Init()

	// Initialize services
	resolverService := services.NewResolverService(
		config.AppConfig.GitHub.APIBaseURL,
		config.AppConfig.NPM.RegistryURL,
	)

	// Initialize router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())

	setupRoutes(router, resolverService)

	// Setup server
	server := &http.Server{
		Addr:         ":" + config.AppConfig.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(config.AppConfig.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(config.AppConfig.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Infof("Server starting on :%s", config.AppConfig.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Errorf("Server shutdown failed: %v", err)
	}
	logger.Info("Server stopped")
}

func setupRoutes(router *gin.Engine, resolverService *services.ResolverService) {
	// Initialize handlers
	lookupHandler := handlers.NewLookupHandler(resolverService, config.AppConfig.GitHub.Token)
	healthHandler := handlers.NewHealthHandler()
	notFoundHandler := handlers.NewNotFoundHandler()

	router.GET("/health", healthHandler.Health)

	api := router.Group("/api/v1")
	{
		api.GET("/lookup", lookupHandler.Lookup)
	}

	router.NoRoute(notFoundHandler.NotFound)
}
