package service

import (
	"context"
	"errors"
	"html/template"
	"sync"
	"time"

	"github.com/timmy/pixgallery/internal/domain"
	"github.com/timmy/pixgallery/internal/gallery"
	"github.com/timmy/pixgallery/internal/logger"
	"github.com/timmy/pixgallery/internal/metrics"
	"github.com/timmy/pixgallery/internal/session"
	"github.com/timmy/pixgallery/internal/ui"
)

// Action outcomes reported in updates and metrics.
const (
	OutcomeOK            = "ok"
	OutcomeEmptyQuery    = "empty_query"
	OutcomeDuplicate     = "duplicate_query"
	OutcomeNoResults     = "no_results"
	OutcomeEndOfResults  = "end_of_results"
	OutcomeFetchError    = "fetch_error"
	OutcomeThrottled     = "throttled"
	OutcomeNothingToLoad = "nothing_to_load"
	OutcomeStale         = "stale"
)

// GalleryConfig holds configuration for the gallery service.
type GalleryConfig struct {
	PageSize         int
	IdleTTL          time.Duration
	LoadMoreInterval time.Duration
	ScrollCards      int
}

// Update is what the browser applies after an action.
type Update struct {
	Outcome         string                `json:"outcome"`
	Reset           bool                  `json:"reset"`
	HTML            template.HTML         `json:"html"`
	Notifications   []domain.Notification `json:"notifications"`
	LoadMoreVisible bool                  `json:"load_more_visible"`
	ScrollCards     int                   `json:"scroll_cards"`
	State           domain.SessionState   `json:"state"`
	Query           string                `json:"query"`
	Page            int                   `json:"page"`
	Shown           int                   `json:"shown"`
	Total           int                   `json:"total"`
}

// Snapshot is the full state of a page, used to render it from scratch.
type Snapshot struct {
	Gallery         template.HTML       `json:"-"`
	LoadMoreVisible bool                `json:"load_more_visible"`
	State           domain.SessionState `json:"state"`
	Query           string              `json:"query"`
	Page            int                 `json:"page"`
	Shown           int                 `json:"shown"`
	Total           int                 `json:"total"`
}

// pageSession is the state of one browser page.
type pageSession struct {
	mu       sync.Mutex
	state    domain.SearchSession
	surface  *gallery.Surface
	controls *ui.Controller
	machine  *session.Machine
	lastSeen time.Time
}

// GalleryService owns one page session per browser session and runs the
// search session machine for it.
type GalleryService struct {
	fetcher  session.Fetcher
	renderer *gallery.Renderer
	cfg      GalleryConfig
	now      func() time.Time

	mu        sync.Mutex
	sessions  map[string]*pageSession
	lastSweep time.Time
}

// NewGalleryService creates a new gallery service.
// Parameters:
//   - fetcher: image search client.
//   - cfg: gallery configuration; nil uses defaults.
// Returns:
//   - *GalleryService: initialized service.
func NewGalleryService(fetcher session.Fetcher, cfg *GalleryConfig) *GalleryService {
	c := GalleryConfig{}
	if cfg != nil {
		c = *cfg
	}
	if c.PageSize <= 0 {
		c.PageSize = domain.DefaultPageSize
	}
	if c.IdleTTL <= 0 {
		c.IdleTTL = 30 * time.Minute
	}
	return &GalleryService{
		fetcher:  fetcher,
		renderer: gallery.NewRenderer(),
		cfg:      c,
		now:      time.Now,
		sessions: make(map[string]*pageSession),
	}
}

// Submit handles a search form submission for the browser session id.
// Parameters:
//   - ctx: request context, used for the remote fetch.
//   - id: browser session identifier.
//   - raw: query text as typed.
// Returns:
//   - *Update: changes for the browser; never nil.
func (s *GalleryService) Submit(ctx context.Context, id, raw string) *Update {
	ctx = logger.SetSessionID(ctx, id)
	ps := s.page(id)

	ps.mu.Lock()
	next, req, err := ps.machine.Submit(ps.state, raw)
	ps.state = next
	if err != nil {
		outcome := outcomeOf(err)
		s.record(ctx, "submit", outcome, err)
		update := ps.drain(outcome)
		ps.mu.Unlock()
		return update
	}
	ps.mu.Unlock()

	ctx = logger.WithField(ctx, logger.FieldQuery, req.Query.String())
	logger.CtxInfo(ctx, "Search accepted")
	return s.fetch(ctx, ps, req, "submit")
}

// LoadMore handles a load-more activation for the browser session id.
// Activations closer together than the load-more interval are dropped.
func (s *GalleryService) LoadMore(ctx context.Context, id string) *Update {
	ctx = logger.SetSessionID(ctx, id)
	ps := s.page(id)

	ps.mu.Lock()
	if !ps.controls.AllowLoadMore(s.now()) {
		s.record(ctx, "load_more", OutcomeThrottled, domain.ErrThrottled)
		update := ps.drain(OutcomeThrottled)
		ps.mu.Unlock()
		return update
	}
	next, req, err := ps.machine.LoadMore(ps.state)
	ps.state = next
	if err != nil {
		s.record(ctx, "load_more", OutcomeNothingToLoad, err)
		update := ps.drain(OutcomeNothingToLoad)
		ps.mu.Unlock()
		return update
	}
	ps.mu.Unlock()

	ctx = logger.WithField(ctx, logger.FieldQuery, req.Query.String())
	return s.fetch(ctx, ps, req, "load_more")
}

// fetch runs the remote call without holding the page lock and applies its outcome.
func (s *GalleryService) fetch(ctx context.Context, ps *pageSession, req session.Request, action string) *Update {
	start := s.now()
	page, fetchErr := s.fetcher.FetchPage(ctx, req.Query, req.Page)

	ps.mu.Lock()
	defer ps.mu.Unlock()

	next, err := ps.machine.Complete(ps.state, req, page, fetchErr)
	ps.state = next
	outcome := outcomeOf(err)

	logger.With(logger.Fields{
		logger.FieldDurationMs: s.now().Sub(start).Milliseconds(),
		logger.FieldPage:       req.Page,
		logger.FieldCount:      next.Shown,
		logger.FieldStatus:     outcome,
	}).Info(ctx, "Page applied: action=%s", action)
	s.record(ctx, action, outcome, err)

	if outcome == OutcomeStale {
		// Pending changes belong to the request that superseded this one.
		return ps.peek(outcome)
	}
	return ps.drain(outcome)
}

// Snapshot returns the current page content for the browser session id.
func (s *GalleryService) Snapshot(id string) *Snapshot {
	ps := s.page(id)
	ps.mu.Lock()
	defer ps.mu.Unlock()

	// A full render supersedes any pending incremental changes.
	ps.surface.Drain()
	ps.controls.Drain()

	return &Snapshot{
		Gallery:         ps.surface.HTML(),
		LoadMoreVisible: ps.controls.LoadMoreVisible(),
		State:           ps.state.State,
		Query:           ps.state.Query.String(),
		Page:            ps.state.Page,
		Shown:           ps.state.Shown,
		Total:           ps.state.Total,
	}
}

// Session returns a copy of the search session for the browser session id.
func (s *GalleryService) Session(id string) domain.SearchSession {
	ps := s.page(id)
	ps.mu.Lock()
	defer ps.mu.Unlock()
	return ps.state
}

// ActiveSessions returns the number of sessions held in memory.
func (s *GalleryService) ActiveSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// page returns the page session for id, creating it when unknown.
// Idle sessions are evicted at most once per minute.
func (s *GalleryService) page(id string) *pageSession {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	if now.Sub(s.lastSweep) >= time.Minute {
		s.sweep(now)
		s.lastSweep = now
	}

	ps, ok := s.sessions[id]
	if !ok {
		surface := gallery.NewSurface(s.renderer)
		controls := ui.NewController(&ui.Config{
			LoadMoreInterval: s.cfg.LoadMoreInterval,
			ScrollCards:      s.cfg.ScrollCards,
		})
		ps = &pageSession{
			state:    domain.NewSearchSession(s.cfg.PageSize),
			surface:  surface,
			controls: controls,
			machine:  session.NewMachine(surface, controls),
		}
		s.sessions[id] = ps
		metrics.ActiveSessions.Set(float64(len(s.sessions)))
	}
	ps.lastSeen = now
	return ps
}

// sweep drops sessions idle for longer than the TTL. Caller holds s.mu.
func (s *GalleryService) sweep(now time.Time) {
	for id, ps := range s.sessions {
		if now.Sub(ps.lastSeen) > s.cfg.IdleTTL {
			delete(s.sessions, id)
		}
	}
	metrics.ActiveSessions.Set(float64(len(s.sessions)))
}

func (s *GalleryService) record(ctx context.Context, action, outcome string, err error) {
	metrics.Actions.WithLabelValues(action, outcome).Inc()
	switch outcome {
	case OutcomeFetchError:
		logger.CtxWarn(ctx, "Action failed: action=%s, error=%v", action, err)
	case OutcomeOK:
	default:
		logger.CtxDebug(ctx, "Action outcome: action=%s, outcome=%s", action, outcome)
	}
}

// drain collects pending changes into an update. Caller holds ps.mu.
func (ps *pageSession) drain(outcome string) *Update {
	reset, fragment := ps.surface.Drain()
	effects := ps.controls.Drain()
	return &Update{
		Outcome:         outcome,
		Reset:           reset,
		HTML:            fragment,
		Notifications:   effects.Notifications,
		LoadMoreVisible: effects.LoadMoreVisible,
		ScrollCards:     effects.ScrollCards,
		State:           ps.state.State,
		Query:           ps.state.Query.String(),
		Page:            ps.state.Page,
		Shown:           ps.state.Shown,
		Total:           ps.state.Total,
	}
}

// peek reports the session state without consuming pending changes. Caller holds ps.mu.
func (ps *pageSession) peek(outcome string) *Update {
	return &Update{
		Outcome:         outcome,
		Notifications:   []domain.Notification{},
		LoadMoreVisible: ps.controls.LoadMoreVisible(),
		State:           ps.state.State,
		Query:           ps.state.Query.String(),
		Page:            ps.state.Page,
		Shown:           ps.state.Shown,
		Total:           ps.state.Total,
	}
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrEmptyQuery):
		return OutcomeEmptyQuery
	case errors.Is(err, domain.ErrDuplicateQuery):
		return OutcomeDuplicate
	case errors.Is(err, domain.ErrNoResults):
		return OutcomeNoResults
	case errors.Is(err, domain.ErrEndOfResults):
		return OutcomeEndOfResults
	case errors.Is(err, domain.ErrStaleResponse):
		return OutcomeStale
	case errors.Is(err, domain.ErrNothingToLoad):
		return OutcomeNothingToLoad
	case errors.Is(err, domain.ErrThrottled):
		return OutcomeThrottled
	default:
		return OutcomeFetchError
	}
}
