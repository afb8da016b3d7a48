package domain

import "errors"

// Outcomes of a session action. Every one of them leaves the session ready for
// the next submission; none is fatal.
var (
	// ErrEmptyQuery is returned when the submitted query is blank.
	ErrEmptyQuery = errors.New("empty query")

	// ErrDuplicateQuery is returned when the query equals the previously accepted one.
	ErrDuplicateQuery = errors.New("duplicate query")

	// ErrNoResults is returned when the first page of a query has no items.
	ErrNoResults = errors.New("no results")

	// ErrEndOfResults marks that every matching item has been displayed.
	ErrEndOfResults = errors.New("end of results")

	// ErrFetch is the root of all transport and remote-status failures.
	ErrFetch = errors.New("fetch failed")

	// ErrNothingToLoad is returned by load-more when no further page is available.
	ErrNothingToLoad = errors.New("nothing to load")

	// ErrThrottled is returned by load-more when activated within the throttle window.
	ErrThrottled = errors.New("load more throttled")

	// ErrStaleResponse is returned when a fetch completes for a superseded query.
	ErrStaleResponse = errors.New("stale response")
)
