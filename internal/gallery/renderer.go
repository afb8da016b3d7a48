// Package gallery renders image cards and keeps the display surface they are appended to.
package gallery

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/timmy/pixgallery/internal/domain"
)

const cardMarkup = `<a class="gallery__link" href="{{.FullURL}}">
  <div class="photo-card">
    <img src="{{.PreviewURL}}" alt="{{.Tags}}" loading="lazy" />
    <div class="info">
      <p class="info-item"><b>Likes</b> {{.Likes}}</p>
      <p class="info-item"><b>Views</b> {{.Views}}</p>
      <p class="info-item"><b>Comments</b> {{.Comments}}</p>
      <p class="info-item"><b>Downloads</b> {{.Downloads}}</p>
    </div>
  </div>
</a>
`

// Renderer converts image items into card markup.
// Remote fields are escaped by html/template; unsafe URLs are neutralised.
type Renderer struct {
	card *template.Template
}

// NewRenderer creates a card renderer.
func NewRenderer() *Renderer {
	return &Renderer{card: template.Must(template.New("card").Parse(cardMarkup))}
}

// Render returns the markup for items in order.
// Parameters:
//   - items: image records of one page.
// Returns:
//   - template.HTML: concatenated card markup (empty for no items).
//   - error: non-nil if template execution fails.
func (r *Renderer) Render(items []domain.ImageItem) (template.HTML, error) {
	var buf bytes.Buffer
	for i := range items {
		if err := r.card.Execute(&buf, &items[i]); err != nil {
			return "", fmt.Errorf("failed to render card %d: %w", items[i].ID, err)
		}
	}
	return template.HTML(buf.String()), nil
}
