package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/timmy/pixgallery/internal/api"
	"github.com/timmy/pixgallery/internal/api/middleware"
	"github.com/timmy/pixgallery/internal/config"
	"github.com/timmy/pixgallery/internal/logger"
	"github.com/timmy/pixgallery/internal/pixabay"
	"github.com/timmy/pixgallery/internal/service"
)

func main() {
	// Support CONFIG_PATH environment variable for production deployments
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.NewDefault()
	logger.SetDefaultLogger(appLogger)
	defer logger.Sync()

	client := pixabay.NewClient(&pixabay.Config{
		BaseURL:     cfg.Pixabay.BaseURL,
		APIKey:      cfg.Pixabay.APIKey,
		Timeout:     cfg.Pixabay.Timeout,
		ImageType:   cfg.Pixabay.ImageType,
		Orientation: cfg.Pixabay.Orientation,
	})

	galleryService := service.NewGalleryService(client, &service.GalleryConfig{
		PageSize:         client.PageSize(),
		IdleTTL:          cfg.Session.IdleTTL,
		LoadMoreInterval: cfg.Gallery.LoadMoreInterval,
		ScrollCards:      cfg.Gallery.ScrollCards,
	})

	router, err := api.SetupRouter(galleryService, &api.RouterConfig{
		Mode: cfg.Server.Mode,
		CORS: middleware.CORSConfig{
			AllowedOrigins:  cfg.Server.CORS.AllowedOrigins,
			AllowAllOrigins: cfg.Server.CORS.AllowAllOrigins,
		},
		SessionCookie: cfg.Session.CookieName,
		SessionTTL:    cfg.Session.IdleTTL,
	}, appLogger)
	if err != nil {
		logger.Fatal("Failed to set up router: %v", err)
	}

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		appLogger.WithFields(logger.Fields{
			"port": cfg.Server.Port,
			"mode": cfg.Server.Mode,
		}).Info("Starting gallery server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown: %v", err)
	}

	logger.Info("Server exited")
}
