package domain

import "strings"

// Query is a trimmed, non-empty search text.
type Query string

// NewQuery trims raw user input and validates it.
// Parameters:
//   - raw: text as typed by the user.
// Returns:
//   - Query: trimmed query.
//   - error: ErrEmptyQuery when nothing but whitespace was submitted.
func NewQuery(raw string) (Query, error) {
	q := strings.TrimSpace(raw)
	if q == "" {
		return "", ErrEmptyQuery
	}
	return Query(q), nil
}

// String returns the query text.
func (q Query) String() string {
	return string(q)
}
