// Package ui holds the user-facing affordances of a gallery page: the load-more
// control, notifications, the scroll hint and the load-more throttle.
package ui

import (
	"time"

	"golang.org/x/time/rate"
)

// DefaultLoadMoreInterval is the minimum spacing between accepted load-more activations.
const DefaultLoadMoreInterval = 500 * time.Millisecond

// Throttle admits at most one activation per interval.
// It is a single-token bucket checked against an explicit timestamp.
type Throttle struct {
	limiter *rate.Limiter
}

// NewThrottle creates a throttle; a non-positive interval uses DefaultLoadMoreInterval.
func NewThrottle(interval time.Duration) *Throttle {
	if interval <= 0 {
		interval = DefaultLoadMoreInterval
	}
	return &Throttle{limiter: rate.NewLimiter(rate.Every(interval), 1)}
}

// AllowAt reports whether an activation at now is admitted, consuming the token if so.
func (t *Throttle) AllowAt(now time.Time) bool {
	return t.limiter.AllowN(now, 1)
}
