package session

import (
	"errors"
	"testing"

	"github.com/timmy/pixgallery/internal/domain"
)

type fakeDisplay struct {
	rendered int
	batches  int
	clears   int
}

func (d *fakeDisplay) Render(items []domain.ImageItem) error {
	d.rendered += len(items)
	d.batches++
	return nil
}

func (d *fakeDisplay) Clear() {
	d.clears++
	d.rendered = 0
	d.batches = 0
}

type fakeUI struct {
	visible       bool
	notifications []domain.Notification
	scrolls       int
}

func (u *fakeUI) ShowLoadMore()                { u.visible = true }
func (u *fakeUI) HideLoadMore()                { u.visible = false }
func (u *fakeUI) Notify(n domain.Notification) { u.notifications = append(u.notifications, n) }
func (u *fakeUI) ScrollToNewContent()          { u.scrolls++ }

func (u *fakeUI) count(msg string) int {
	n := 0
	for _, note := range u.notifications {
		if note.Message == msg {
			n++
		}
	}
	return n
}

func items(n int) []domain.ImageItem {
	out := make([]domain.ImageItem, n)
	for i := range out {
		out[i] = domain.ImageItem{ID: i + 1, Tags: "cat"}
	}
	return out
}

func newTestMachine() (*Machine, *fakeDisplay, *fakeUI) {
	d := &fakeDisplay{}
	u := &fakeUI{}
	return NewMachine(d, u), d, u
}

func TestMachine_SubmitEmptyQuery(t *testing.T) {
	inputs := []string{"", "   ", "\t\n"}

	for _, in := range inputs {
		m, d, u := newTestMachine()
		s := domain.NewSearchSession(domain.DefaultPageSize)

		next, req, err := m.Submit(s, in)
		if !errors.Is(err, domain.ErrEmptyQuery) {
			t.Fatalf("input %q: expected ErrEmptyQuery, got %v", in, err)
		}
		if next != s {
			t.Errorf("input %q: session changed: %+v", in, next)
		}
		if req != (Request{}) {
			t.Errorf("input %q: expected no request, got %+v", in, req)
		}
		if len(u.notifications) != 1 || u.notifications[0].Kind != domain.NotificationWarning {
			t.Errorf("input %q: expected one warning, got %+v", in, u.notifications)
		}
		if d.clears != 0 {
			t.Errorf("input %q: gallery should not be cleared", in)
		}
	}
}

func TestMachine_SubmitResetsSession(t *testing.T) {
	m, d, u := newTestMachine()
	s := domain.NewSearchSession(domain.DefaultPageSize)

	s, req, err := m.Submit(s, "  cats ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, err = m.Complete(s, req, &domain.SearchResultPage{Items: items(40), TotalMatches: 200}, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s, req, _ = m.LoadMore(s)
	s, _ = m.Complete(s, req, &domain.SearchResultPage{Items: items(40), TotalMatches: 200}, nil)
	if s.Page != 2 || s.Shown != 80 {
		t.Fatalf("expected page 2 with 80 shown, got page %d shown %d", s.Page, s.Shown)
	}

	s, req, err = m.Submit(s, "dogs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Page != 1 || s.Shown != 0 || s.Query != "dogs" {
		t.Errorf("expected reset session for dogs, got %+v", s)
	}
	if req.Page != 1 || req.Query != "dogs" || req.Token != s.Token {
		t.Errorf("unexpected request: %+v", req)
	}
	if d.clears != 2 || d.rendered != 0 {
		t.Errorf("expected gallery cleared, clears=%d rendered=%d", d.clears, d.rendered)
	}
	if u.visible {
		t.Error("load more should be hidden while loading a new query")
	}
	if s.State != domain.StateLoading {
		t.Errorf("expected loading state, got %s", s.State)
	}
}

func TestMachine_SubmitDuplicateQuery(t *testing.T) {
	m, d, u := newTestMachine()
	s := domain.NewSearchSession(domain.DefaultPageSize)

	s, req, _ := m.Submit(s, "cats")
	s, _ = m.Complete(s, req, &domain.SearchResultPage{Items: items(40), TotalMatches: 100}, nil)
	notes := len(u.notifications)

	next, req, err := m.Submit(s, " cats ")
	if !errors.Is(err, domain.ErrDuplicateQuery) {
		t.Fatalf("expected ErrDuplicateQuery, got %v", err)
	}
	if next != s || req != (Request{}) {
		t.Error("duplicate submission must not change the session")
	}
	if len(u.notifications) != notes {
		t.Error("duplicate submission must be silent")
	}
	if d.clears != 1 {
		t.Errorf("gallery cleared again: %d", d.clears)
	}
}

func TestMachine_NoResults(t *testing.T) {
	m, _, u := newTestMachine()
	s, req, _ := m.Submit(domain.NewSearchSession(domain.DefaultPageSize), "zzzz")

	s, err := m.Complete(s, req, &domain.SearchResultPage{TotalMatches: 0}, nil)
	if !errors.Is(err, domain.ErrNoResults) {
		t.Fatalf("expected ErrNoResults, got %v", err)
	}
	if s.State != domain.StateFailed {
		t.Errorf("expected failed state, got %s", s.State)
	}
	if u.visible {
		t.Error("load more should be hidden")
	}
	if u.count(domain.MsgNoResults) != 1 {
		t.Errorf("expected no-results notification, got %+v", u.notifications)
	}
	if _, _, err := m.LoadMore(s); !errors.Is(err, domain.ErrNothingToLoad) {
		t.Errorf("expected ErrNothingToLoad, got %v", err)
	}
}

func TestMachine_SinglePageTotal(t *testing.T) {
	m, d, u := newTestMachine()
	s, req, _ := m.Submit(domain.NewSearchSession(domain.DefaultPageSize), "sunset")

	s, err := m.Complete(s, req, &domain.SearchResultPage{Items: items(40), TotalMatches: 40}, nil)
	if !errors.Is(err, domain.ErrEndOfResults) {
		t.Fatalf("expected ErrEndOfResults, got %v", err)
	}
	if s.State != domain.StateExhausted || !s.Exhausted {
		t.Errorf("expected exhausted session, got %+v", s)
	}
	if u.visible {
		t.Error("load more should be hidden")
	}
	if d.rendered != 40 {
		t.Errorf("expected 40 rendered cards, got %d", d.rendered)
	}
	if len(u.notifications) != 2 {
		t.Fatalf("expected success and end notifications, got %+v", u.notifications)
	}
	if u.notifications[0].Kind != domain.NotificationSuccess || u.notifications[0].Message != "Hooray! We found 40 images." {
		t.Errorf("unexpected first notification: %+v", u.notifications[0])
	}
	if u.notifications[1].Message != domain.MsgEndOfResults {
		t.Errorf("unexpected second notification: %+v", u.notifications[1])
	}
}

func TestMachine_PaginatesUntilExhausted(t *testing.T) {
	m, d, u := newTestMachine()
	s, req, _ := m.Submit(domain.NewSearchSession(domain.DefaultPageSize), "forest")

	steps := []struct {
		fetched     int
		wantShown   int
		wantVisible bool
		wantState   domain.SessionState
		wantErr     error
	}{
		{fetched: 40, wantShown: 40, wantVisible: true, wantState: domain.StateReady},
		{fetched: 40, wantShown: 80, wantVisible: true, wantState: domain.StateReady},
		{fetched: 1, wantShown: 81, wantVisible: false, wantState: domain.StateExhausted, wantErr: domain.ErrEndOfResults},
	}

	for i, step := range steps {
		if i > 0 {
			var err error
			s, req, err = m.LoadMore(s)
			if err != nil {
				t.Fatalf("step %d: load more: %v", i, err)
			}
			if req.Page != i+1 {
				t.Fatalf("step %d: expected page %d, got %d", i, i+1, req.Page)
			}
		}
		var err error
		s, err = m.Complete(s, req, &domain.SearchResultPage{Items: items(step.fetched), TotalMatches: 81}, nil)
		if !errors.Is(err, step.wantErr) {
			t.Fatalf("step %d: expected %v, got %v", i, step.wantErr, err)
		}
		if s.Shown != step.wantShown {
			t.Errorf("step %d: expected %d shown, got %d", i, step.wantShown, s.Shown)
		}
		if u.visible != step.wantVisible {
			t.Errorf("step %d: expected load more visible=%v", i, step.wantVisible)
		}
		if s.State != step.wantState {
			t.Errorf("step %d: expected state %s, got %s", i, step.wantState, s.State)
		}
	}

	if got := u.count(domain.MsgEndOfResults); got != 1 {
		t.Errorf("expected end-of-results exactly once, got %d", got)
	}
	if d.rendered != 81 {
		t.Errorf("expected 81 cards, got %d", d.rendered)
	}
	if u.scrolls != 2 {
		t.Errorf("expected a scroll after each load more, got %d", u.scrolls)
	}
	if _, _, err := m.LoadMore(s); !errors.Is(err, domain.ErrNothingToLoad) {
		t.Errorf("expected ErrNothingToLoad after exhaustion, got %v", err)
	}
}

func TestMachine_FetchErrorKeepsGallery(t *testing.T) {
	m, d, u := newTestMachine()
	s, req, _ := m.Submit(domain.NewSearchSession(domain.DefaultPageSize), "river")
	s, _ = m.Complete(s, req, &domain.SearchResultPage{Items: items(40), TotalMatches: 120}, nil)

	s, req, _ = m.LoadMore(s)
	s, err := m.Complete(s, req, nil, errors.New("connection reset"))
	if !errors.Is(err, domain.ErrFetch) {
		t.Fatalf("expected ErrFetch, got %v", err)
	}
	if s.State != domain.StateFailed {
		t.Errorf("expected failed state, got %s", s.State)
	}
	if u.visible {
		t.Error("load more should be hidden after a fetch error")
	}
	if d.rendered != 40 || d.clears != 1 {
		t.Errorf("gallery must keep earlier pages, rendered=%d clears=%d", d.rendered, d.clears)
	}
	if u.count(domain.MsgFetchFailed) != 1 {
		t.Errorf("expected fetch failure notification, got %+v", u.notifications)
	}

	if _, _, err := m.Submit(s, "river"); !errors.Is(err, domain.ErrDuplicateQuery) {
		t.Errorf("expected the same query to stay a duplicate, got %v", err)
	}
	if _, _, err := m.Submit(s, "lake"); err != nil {
		t.Errorf("a new query must recover the session: %v", err)
	}
}

func TestMachine_EmptyLoadMorePage(t *testing.T) {
	m, _, u := newTestMachine()
	s, req, _ := m.Submit(domain.NewSearchSession(domain.DefaultPageSize), "bees")
	s, _ = m.Complete(s, req, &domain.SearchResultPage{Items: items(40), TotalMatches: 500}, nil)

	s, req, _ = m.LoadMore(s)
	s, err := m.Complete(s, req, &domain.SearchResultPage{TotalMatches: 500}, nil)
	if !errors.Is(err, domain.ErrEndOfResults) {
		t.Fatalf("expected ErrEndOfResults, got %v", err)
	}
	if !s.Exhausted || u.visible {
		t.Errorf("expected exhausted session with hidden load more, got %+v", s)
	}
	if u.count(domain.MsgEndOfResults) != 1 {
		t.Errorf("expected one end-of-results notification, got %+v", u.notifications)
	}
}

func TestMachine_StaleResponseIgnored(t *testing.T) {
	m, d, u := newTestMachine()
	s := domain.NewSearchSession(domain.DefaultPageSize)

	s, first, _ := m.Submit(s, "apples")
	s, second, _ := m.Submit(s, "pears")
	if second.Token <= first.Token {
		t.Fatalf("expected increasing tokens, got %d then %d", first.Token, second.Token)
	}

	before := len(u.notifications)
	next, err := m.Complete(s, first, &domain.SearchResultPage{Items: items(3), TotalMatches: 3}, nil)
	if !errors.Is(err, domain.ErrStaleResponse) {
		t.Fatalf("expected ErrStaleResponse, got %v", err)
	}
	if next != s || d.rendered != 0 || len(u.notifications) != before {
		t.Error("stale response must not change anything")
	}

	next, err = m.Complete(s, second, &domain.SearchResultPage{Items: items(3), TotalMatches: 3}, nil)
	if !errors.Is(err, domain.ErrEndOfResults) {
		t.Fatalf("expected current response to apply, got %v", err)
	}
	if next.Query != "pears" || d.rendered != 3 {
		t.Errorf("unexpected session after current response: %+v", next)
	}
}

func TestMachine_LoadMoreWhileLoading(t *testing.T) {
	m, _, _ := newTestMachine()
	s, req, _ := m.Submit(domain.NewSearchSession(domain.DefaultPageSize), "clouds")
	s, _ = m.Complete(s, req, &domain.SearchResultPage{Items: items(40), TotalMatches: 300}, nil)

	s, _, err := m.LoadMore(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, _, err := m.LoadMore(s); !errors.Is(err, domain.ErrNothingToLoad) {
		t.Errorf("expected second load more to be refused while loading, got %v", err)
	}
}

func TestEndChecks(t *testing.T) {
	tests := []struct {
		name       string
		shown      int
		total      int
		fetched    int
		wantMore   bool
		wantAtEnd  bool
	}{
		{name: "first of three pages", shown: 40, total: 81, fetched: 40, wantMore: true},
		{name: "last partial page", shown: 81, total: 81, fetched: 1, wantAtEnd: true},
		{name: "single page total", shown: 40, total: 40, fetched: 40, wantAtEnd: true},
		{name: "small total", shown: 12, total: 12, fetched: 12, wantAtEnd: true},
		{name: "empty page", shown: 40, total: 81, fetched: 0},
		{name: "total shrank below shown", shown: 80, total: 60, fetched: 40, wantAtEnd: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := domain.NewSearchSession(domain.DefaultPageSize)
			s.Shown, s.Total = tt.shown, tt.total
			if got := hasMore(s, tt.fetched); got != tt.wantMore {
				t.Errorf("hasMore() = %v, want %v", got, tt.wantMore)
			}
			if got := reachedEnd(s); got != tt.wantAtEnd {
				t.Errorf("reachedEnd() = %v, want %v", got, tt.wantAtEnd)
			}
		})
	}
}
