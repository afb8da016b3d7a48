// Package session implements the search session state machine: it decides when
// pagination resets, advances or stops, and drives the gallery and the page
// affordances accordingly.
//
// Transitions are split in two phases so that the remote fetch can run without
// holding the page lock: Submit or LoadMore start a request, Complete applies
// its outcome. A completion is applied only if the session still waits for
// that exact request; anything else is reported as domain.ErrStaleResponse.
package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/timmy/pixgallery/internal/domain"
)

// Fetcher retrieves one page of results.
type Fetcher interface {
	FetchPage(ctx context.Context, query domain.Query, page int) (*domain.SearchResultPage, error)
}

// Display is the surface cards are appended to.
type Display interface {
	// Render appends cards for items and refreshes the lightbox.
	Render(items []domain.ImageItem) error
	// Clear removes every card.
	Clear()
}

// Affordances are the page controls the machine toggles.
type Affordances interface {
	ShowLoadMore()
	HideLoadMore()
	Notify(n domain.Notification)
	ScrollToNewContent()
}

// Request identifies a page fetch started by Submit or LoadMore.
type Request struct {
	Token uint64
	Query domain.Query
	Page  int
}

// Machine applies session transitions for one page.
type Machine struct {
	display Display
	ui      Affordances
}

// NewMachine creates a machine bound to a page's display and affordances.
func NewMachine(display Display, ui Affordances) *Machine {
	return &Machine{display: display, ui: ui}
}

// Submit handles a search form submission.
// Parameters:
//   - s: current session.
//   - raw: the text typed by the user.
// Returns:
//   - domain.SearchSession: the session to store; reset to page 1 when accepted.
//   - Request: the fetch to perform when accepted.
//   - error: domain.ErrEmptyQuery or domain.ErrDuplicateQuery when nothing must be fetched.
func (m *Machine) Submit(s domain.SearchSession, raw string) (domain.SearchSession, Request, error) {
	q, err := domain.NewQuery(raw)
	if err != nil {
		m.ui.Notify(domain.Warning(domain.MsgEmptyQuery))
		return s, Request{}, err
	}
	if q == s.PreviousQuery {
		return s, Request{}, domain.ErrDuplicateQuery
	}

	m.display.Clear()
	m.ui.HideLoadMore()
	next := s.Reset(q)
	return next, requestFor(next), nil
}

// LoadMore handles a load-more activation that already passed the throttle.
// The page counter is advanced before the fetch.
func (m *Machine) LoadMore(s domain.SearchSession) (domain.SearchSession, Request, error) {
	if !s.CanLoadMore() {
		return s, Request{}, domain.ErrNothingToLoad
	}
	s.Page++
	s.State = domain.StateLoading
	return s, requestFor(s), nil
}

// Complete applies the outcome of the fetch described by req.
// Parameters:
//   - s: current session.
//   - req: the request returned by Submit or LoadMore.
//   - page: fetched page; ignored when fetchErr is non-nil.
//   - fetchErr: transport or remote failure.
// Returns:
//   - domain.SearchSession: the session to store.
//   - error: nil when more pages remain, otherwise one of domain.ErrNoResults,
//     domain.ErrEndOfResults, domain.ErrFetch (wrapped) or domain.ErrStaleResponse.
func (m *Machine) Complete(s domain.SearchSession, req Request, page *domain.SearchResultPage, fetchErr error) (domain.SearchSession, error) {
	if s.State != domain.StateLoading || s.Token != req.Token || s.Page != req.Page {
		return s, domain.ErrStaleResponse
	}

	if fetchErr == nil && page == nil {
		fetchErr = errors.New("empty response")
	}
	if fetchErr != nil {
		return m.fail(s, req, fetchErr)
	}

	first := req.Page == 1
	if len(page.Items) == 0 {
		m.ui.HideLoadMore()
		s.Total = page.TotalMatches
		s.HasMore = false
		if first {
			m.ui.Notify(domain.Failure(domain.MsgNoResults))
			s.State = domain.StateFailed
			return s, domain.ErrNoResults
		}
		return m.exhaust(s)
	}

	if err := m.display.Render(page.Items); err != nil {
		return m.fail(s, req, err)
	}
	s.Shown += len(page.Items)
	s.Total = page.TotalMatches

	if first {
		m.ui.Notify(domain.FoundImages(page.TotalMatches))
	} else {
		m.ui.ScrollToNewContent()
	}

	// Both end checks run before load-more is offered. The cumulative one
	// still holds if hasMore stops requiring Shown < Total.
	s.HasMore = hasMore(s, len(page.Items))
	if !s.HasMore || reachedEnd(s) {
		s.HasMore = false
		return m.exhaust(s)
	}
	m.ui.ShowLoadMore()
	s.State = domain.StateReady
	return s, nil
}

func (m *Machine) fail(s domain.SearchSession, req Request, err error) (domain.SearchSession, error) {
	m.ui.HideLoadMore()
	m.ui.Notify(domain.Failure(domain.MsgFetchFailed))
	s.State = domain.StateFailed
	s.HasMore = false
	if !errors.Is(err, domain.ErrFetch) {
		err = fmt.Errorf("%w: %w", domain.ErrFetch, err)
	}
	return s, fmt.Errorf("page %d of %q: %w", req.Page, req.Query, err)
}

// exhaust stops pagination. The end-of-results message is sent once per query.
func (m *Machine) exhaust(s domain.SearchSession) (domain.SearchSession, error) {
	m.ui.HideLoadMore()
	s.State = domain.StateExhausted
	s.Exhausted = true
	s.HasMore = false
	if !s.EndNotified {
		m.ui.Notify(domain.Failure(domain.MsgEndOfResults))
		s.EndNotified = true
	}
	return s, domain.ErrEndOfResults
}

func requestFor(s domain.SearchSession) Request {
	return Request{Token: s.Token, Query: s.Query, Page: s.Page}
}

// hasMore reports whether another page can follow the one just shown.
// A total that fits in one page never offers load-more.
func hasMore(s domain.SearchSession, fetched int) bool {
	return fetched > 0 && s.Shown < s.Total && s.Total > s.PageSize
}

// reachedEnd reports whether every reported match has been shown.
func reachedEnd(s domain.SearchSession) bool {
	return s.Shown >= s.Total
}
