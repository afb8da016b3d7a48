package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/timmy/pixgallery/internal/api/handler"
	"github.com/timmy/pixgallery/internal/api/middleware"
	"github.com/timmy/pixgallery/internal/logger"
	"github.com/timmy/pixgallery/internal/service"
	"github.com/timmy/pixgallery/internal/web"
)

// RouterConfig holds the HTTP settings the router needs.
type RouterConfig struct {
	Mode          string
	CORS          middleware.CORSConfig
	SessionCookie string
	SessionTTL    time.Duration
}

// SetupRouter configures the Gin router with all routes
func SetupRouter(
	gallery *service.GalleryService,
	cfg *RouterConfig,
	log *logger.Logger,
) (*gin.Engine, error) {
	if cfg == nil {
		cfg = &RouterConfig{}
	}

	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	tmpl, err := web.Templates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	r.SetHTMLTemplate(tmpl)

	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.Compress("/metrics"))

	healthHandler := handler.NewHealthHandler(gallery)
	galleryHandler := handler.NewGalleryHandler(gallery, cfg.SessionCookie, cfg.SessionTTL)

	r.GET("/health", healthHandler.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.GET("/", galleryHandler.Index)
	r.StaticFS("/static", web.Static())

	v1 := r.Group("/api/v1")
	{
		v1.POST("/search", galleryHandler.Search)
		v1.POST("/load-more", galleryHandler.LoadMore)
		v1.GET("/session", galleryHandler.Session)
	}

	return r, nil
}
