package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/timmy/pixgallery/internal/service"
)

// DefaultSessionCookie names the cookie carrying the browser session id.
const DefaultSessionCookie = "pixgallery_session"

// GalleryHandler serves the gallery page and its actions.
type GalleryHandler struct {
	gallery    *service.GalleryService
	cookieName string
	cookieTTL  time.Duration
}

// NewGalleryHandler creates a new gallery handler.
// Parameters:
//   - gallery: gallery service instance.
//   - cookieName: session cookie name; empty uses DefaultSessionCookie.
//   - cookieTTL: session cookie lifetime, matching the service idle TTL.
// Returns:
//   - *GalleryHandler: initialized handler.
func NewGalleryHandler(gallery *service.GalleryService, cookieName string, cookieTTL time.Duration) *GalleryHandler {
	if cookieName == "" {
		cookieName = DefaultSessionCookie
	}
	return &GalleryHandler{
		gallery:    gallery,
		cookieName: cookieName,
		cookieTTL:  cookieTTL,
	}
}

// SearchRequest is the body of POST /api/v1/search.
type SearchRequest struct {
	Query string `json:"query"`
}

// Index handles GET /.
func (h *GalleryHandler) Index(c *gin.Context) {
	snap := h.gallery.Snapshot(h.sessionID(c))
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Gallery":         snap.Gallery,
		"LoadMoreVisible": snap.LoadMoreVisible,
		"Query":           snap.Query,
	})
}

// Search handles POST /api/v1/search.
// Empty and duplicate queries are answered with 200 and the matching update.
func (h *GalleryHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	update := h.gallery.Submit(c.Request.Context(), h.sessionID(c), req.Query)
	c.JSON(http.StatusOK, update)
}

// LoadMore handles POST /api/v1/load-more.
func (h *GalleryHandler) LoadMore(c *gin.Context) {
	update := h.gallery.LoadMore(c.Request.Context(), h.sessionID(c))
	c.JSON(http.StatusOK, update)
}

// Session handles GET /api/v1/session.
func (h *GalleryHandler) Session(c *gin.Context) {
	s := h.gallery.Session(h.sessionID(c))
	c.JSON(http.StatusOK, gin.H{
		"state":     s.State,
		"query":     s.Query,
		"page":      s.Page,
		"page_size": s.PageSize,
		"shown":     s.Shown,
		"total":     s.Total,
		"has_more":  s.HasMore,
	})
}

// sessionID returns the browser session id, issuing a cookie for new browsers.
// The cookie is re-issued on every request so its lifetime slides with the
// server-side idle TTL.
func (h *GalleryHandler) sessionID(c *gin.Context) string {
	id, err := c.Cookie(h.cookieName)
	if err != nil || uuid.Validate(id) != nil {
		id = uuid.New().String()
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookieName, id, int(h.cookieTTL.Seconds()), "/", "", c.Request.TLS != nil, true)
	return id
}
