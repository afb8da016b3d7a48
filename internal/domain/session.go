package domain

// DefaultPageSize is the number of items requested per page.
const DefaultPageSize = 40

// SessionState represents the lifecycle state of a search session.
// Values include StateIdle, StateLoading, StateReady, StateExhausted, and StateFailed.
type SessionState string

const (
	StateIdle      SessionState = "idle"
	StateLoading   SessionState = "loading"
	StateReady     SessionState = "ready"
	StateExhausted SessionState = "exhausted"
	StateFailed    SessionState = "failed"
)

// SearchSession is the per-query pagination context.
// It is passed by value; the owner stores the value returned by each transition.
type SearchSession struct {
	Query         Query        `json:"query"`
	PreviousQuery Query        `json:"previous_query"`
	Page          int          `json:"page"`
	PageSize      int          `json:"page_size"`
	Shown         int          `json:"shown"`
	Total         int          `json:"total"`
	HasMore       bool         `json:"has_more"`
	Exhausted     bool         `json:"exhausted"`
	EndNotified   bool         `json:"-"`
	State         SessionState `json:"state"`
	Token         uint64       `json:"-"`
}

// NewSearchSession returns an idle session with the given page size.
// A non-positive size falls back to DefaultPageSize.
func NewSearchSession(pageSize int) SearchSession {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return SearchSession{PageSize: pageSize, State: StateIdle}
}

// Reset starts pagination for a newly accepted query.
// The token is advanced so responses for earlier queries can be recognised.
func (s SearchSession) Reset(q Query) SearchSession {
	return SearchSession{
		Query:         q,
		PreviousQuery: q,
		Page:          1,
		PageSize:      s.PageSize,
		State:         StateLoading,
		Token:         s.Token + 1,
	}
}

// CanLoadMore reports whether a load-more activation may start a fetch.
func (s SearchSession) CanLoadMore() bool {
	return s.State == StateReady && s.HasMore && !s.Exhausted
}
