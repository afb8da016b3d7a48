package ui

import (
	"time"

	"github.com/timmy/pixgallery/internal/domain"
)

// DefaultScrollCards is how many card heights the viewport scrolls after a load-more append.
const DefaultScrollCards = 2

// Config holds configuration for the affordance controller.
type Config struct {
	LoadMoreInterval time.Duration
	ScrollCards      int
}

// Controller records affordance changes for one page until the transport drains them.
// Not safe for concurrent use; the owning page session serialises access.
type Controller struct {
	throttle        *Throttle
	scrollCards     int
	loadMoreVisible bool
	notifications   []domain.Notification
	pendingScroll   int
}

// Effects is the set of affordance changes accumulated since the last drain.
type Effects struct {
	Notifications   []domain.Notification `json:"notifications"`
	LoadMoreVisible bool                  `json:"load_more_visible"`
	ScrollCards     int                   `json:"scroll_cards"`
}

// NewController creates a controller with the load-more control hidden.
func NewController(cfg *Config) *Controller {
	if cfg == nil {
		cfg = &Config{}
	}
	scroll := cfg.ScrollCards
	if scroll <= 0 {
		scroll = DefaultScrollCards
	}
	return &Controller{
		throttle:    NewThrottle(cfg.LoadMoreInterval),
		scrollCards: scroll,
	}
}

// ShowLoadMore makes the load-more control visible.
func (c *Controller) ShowLoadMore() {
	c.loadMoreVisible = true
}

// HideLoadMore hides the load-more control.
func (c *Controller) HideLoadMore() {
	c.loadMoreVisible = false
}

// LoadMoreVisible reports the current visibility of the load-more control.
func (c *Controller) LoadMoreVisible() bool {
	return c.loadMoreVisible
}

// Notify queues a notification. It never blocks the caller.
func (c *Controller) Notify(n domain.Notification) {
	c.notifications = append(c.notifications, n)
}

// ScrollToNewContent requests a smooth scroll so the next cards are partially visible.
func (c *Controller) ScrollToNewContent() {
	c.pendingScroll = c.scrollCards
}

// AllowLoadMore applies the load-more throttle to an activation at now.
func (c *Controller) AllowLoadMore(now time.Time) bool {
	return c.throttle.AllowAt(now)
}

// Drain returns the accumulated effects and clears the one-shot ones.
// Visibility is state and is reported on every drain.
func (c *Controller) Drain() Effects {
	e := Effects{
		Notifications:   c.notifications,
		LoadMoreVisible: c.loadMoreVisible,
		ScrollCards:     c.pendingScroll,
	}
	if e.Notifications == nil {
		e.Notifications = []domain.Notification{}
	}
	c.notifications = nil
	c.pendingScroll = 0
	return e
}
