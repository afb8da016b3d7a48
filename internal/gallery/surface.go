package gallery

import (
	"html/template"
	"strings"

	"github.com/timmy/pixgallery/internal/domain"
)

// Surface is the server-side mirror of the gallery element of one page.
// It records what has been appended since the browser last synced so that
// only new cards travel with each update. Not safe for concurrent use; the
// owning page session serialises access.
type Surface struct {
	renderer  *Renderer
	cards     []template.HTML
	pending   strings.Builder
	reset     bool
	refreshes int
}

// NewSurface creates an empty surface that renders with r.
func NewSurface(r *Renderer) *Surface {
	if r == nil {
		r = NewRenderer()
	}
	return &Surface{renderer: r}
}

// Render appends the cards for items and refreshes the lightbox.
// Existing cards are never replaced.
func (s *Surface) Render(items []domain.ImageItem) error {
	markup, err := s.renderer.Render(items)
	if err != nil {
		return err
	}
	if markup != "" {
		s.cards = append(s.cards, markup)
		s.pending.WriteString(string(markup))
	}
	s.refresh()
	return nil
}

// Clear removes every card. Only a new accepted query clears the gallery.
func (s *Surface) Clear() {
	s.cards = nil
	s.pending.Reset()
	s.reset = true
}

// refresh marks that the lightbox must rebind to newly appended links.
func (s *Surface) refresh() {
	s.refreshes++
}

// Refreshes returns how many times the lightbox was refreshed.
func (s *Surface) Refreshes() int {
	return s.refreshes
}

// Batches returns the number of rendered batches currently displayed.
func (s *Surface) Batches() int {
	return len(s.cards)
}

// HTML returns the whole gallery content, used for full page renders.
func (s *Surface) HTML() template.HTML {
	var b strings.Builder
	for _, c := range s.cards {
		b.WriteString(string(c))
	}
	return template.HTML(b.String())
}

// Drain returns the markup appended since the previous drain and whether the
// gallery was cleared in between, then forgets both.
func (s *Surface) Drain() (reset bool, fragment template.HTML) {
	reset, fragment = s.reset, template.HTML(s.pending.String())
	s.reset = false
	s.pending.Reset()
	return reset, fragment
}
