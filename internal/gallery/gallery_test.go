package gallery

import (
	"strings"
	"testing"

	"github.com/timmy/pixgallery/internal/domain"
)

func TestRenderer_Card(t *testing.T) {
	r := NewRenderer()
	html, err := r.Render([]domain.ImageItem{{
		ID:         1,
		PreviewURL: "https://cdn.example.com/p.jpg",
		FullURL:    "https://cdn.example.com/f.jpg",
		Tags:       "cat, kitten",
		Likes:      10,
		Views:      20,
		Comments:   30,
		Downloads:  40,
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := string(html)
	for _, want := range []string{
		`href="https://cdn.example.com/f.jpg"`,
		`src="https://cdn.example.com/p.jpg"`,
		`alt="cat, kitten"`,
		`loading="lazy"`,
		`<b>Likes</b> 10`,
		`<b>Views</b> 20`,
		`<b>Comments</b> 30`,
		`<b>Downloads</b> 40`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected markup to contain %q:\n%s", want, out)
		}
	}
}

func TestRenderer_EscapesRemoteFields(t *testing.T) {
	r := NewRenderer()
	html, err := r.Render([]domain.ImageItem{{
		FullURL: "javascript:alert(1)",
		Tags:    `"><script>alert(1)</script>`,
	}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := string(html)
	if strings.Contains(out, "<script>") {
		t.Error("tags must be escaped")
	}
	if strings.Contains(out, "javascript:") {
		t.Error("unsafe url must be neutralised")
	}
}

func TestSurface_AppendClearDrain(t *testing.T) {
	s := NewSurface(nil)
	page := []domain.ImageItem{{ID: 1}, {ID: 2}}

	if err := s.Render(page); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Render(page[:1]); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := strings.Count(string(s.HTML()), `class="photo-card"`); got != 3 {
		t.Errorf("expected cards to accumulate, got %d", got)
	}
	if s.Refreshes() != 2 {
		t.Errorf("expected a lightbox refresh per render, got %d", s.Refreshes())
	}

	reset, fragment := s.Drain()
	if reset || strings.Count(string(fragment), `class="photo-card"`) != 3 {
		t.Errorf("unexpected first drain: reset=%v", reset)
	}
	if _, fragment = s.Drain(); fragment != "" {
		t.Error("second drain must be empty")
	}

	s.Clear()
	s.Render(page[:1])
	reset, fragment = s.Drain()
	if !reset || strings.Count(string(fragment), `class="photo-card"`) != 1 {
		t.Errorf("expected reset with one new card, reset=%v", reset)
	}
	if s.Batches() != 1 {
		t.Errorf("expected one batch after clear, got %d", s.Batches())
	}
}
