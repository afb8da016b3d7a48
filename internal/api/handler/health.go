package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timmy/pixgallery/internal/service"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	gallery *service.GalleryService
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(gallery *service.GalleryService) *HealthHandler {
	return &HealthHandler{gallery: gallery}
}

// Health returns the health status of the service
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"sessions": h.gallery.ActiveSessions(),
	})
}
