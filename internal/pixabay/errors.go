package pixabay

import (
	"fmt"

	"github.com/timmy/pixgallery/internal/domain"
)

// NetworkError describes a failed call to the image API.
// StatusCode is zero when the request never got a response.
type NetworkError struct {
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("pixabay request failed: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("pixabay request failed (status %d): %s", e.StatusCode, e.Message)
}

// Unwrap exposes the transport error when present.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is lets callers match any NetworkError against domain.ErrFetch.
func (e *NetworkError) Is(target error) bool {
	return target == domain.ErrFetch
}
