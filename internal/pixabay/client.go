// Package pixabay implements the image search client for the Pixabay API.
package pixabay

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/timmy/pixgallery/internal/domain"
	"github.com/timmy/pixgallery/internal/logger"
	"github.com/timmy/pixgallery/internal/metrics"
)

// DefaultBaseURL is the public Pixabay search endpoint.
const DefaultBaseURL = "https://pixabay.com/api/"

// Config holds configuration for the Pixabay client.
type Config struct {
	BaseURL     string
	APIKey      string
	Timeout     time.Duration
	ImageType   string
	Orientation string
}

// Client issues single, uncached page requests with safe search always on.
// Failed attempts are not retried.
type Client struct {
	client      *resty.Client
	apiKey      string
	perPage     int
	imageType   string
	orientation string
}

type hit struct {
	ID            int    `json:"id"`
	Tags          string `json:"tags"`
	WebformatURL  string `json:"webformatURL"`
	LargeImageURL string `json:"largeImageURL"`
	Likes         int    `json:"likes"`
	Views         int    `json:"views"`
	Comments      int    `json:"comments"`
	Downloads     int    `json:"downloads"`
}

type searchResponse struct {
	Total     int   `json:"total"`
	TotalHits int   `json:"totalHits"`
	Hits      []hit `json:"hits"`
}

// NewClient creates a new Pixabay client.
// Parameters:
//   - cfg: client configuration; zero fields fall back to the fixed search filters.
// Returns:
//   - *Client: initialized client.
func NewClient(cfg *Config) *Client {
	if cfg == nil {
		cfg = &Config{}
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	imageType := cfg.ImageType
	if imageType == "" {
		imageType = "photo"
	}
	orientation := cfg.Orientation
	if orientation == "" {
		orientation = "horizontal"
	}

	client := resty.New()
	client.SetBaseURL(strings.TrimRight(baseURL, "/"))
	client.SetHeader("Accept", "application/json")
	client.SetTimeout(timeout)
	client.SetRetryCount(0)

	return &Client{
		client:      client,
		apiKey:      cfg.APIKey,
		perPage:     domain.DefaultPageSize,
		imageType:   imageType,
		orientation: orientation,
	}
}

// PageSize returns the number of items requested per page.
func (c *Client) PageSize() int {
	return c.perPage
}

// FetchPage retrieves one page of images for the query.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - query: trimmed search text.
//   - page: 1-based page number.
// Returns:
//   - *domain.SearchResultPage: items in API order and the total match count.
//   - error: *NetworkError (matching domain.ErrFetch) on transport or status failure.
func (c *Client) FetchPage(ctx context.Context, query domain.Query, page int) (*domain.SearchResultPage, error) {
	ctx = logger.SetComponent(ctx, "pixabay")
	start := time.Now()

	var result searchResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"key":         c.apiKey,
			"q":           query.String(),
			"image_type":  c.imageType,
			"orientation": c.orientation,
			"safesearch":  "true",
			"per_page":    strconv.Itoa(c.perPage),
			"page":        strconv.Itoa(page),
		}).
		SetResult(&result).
		Get("/")

	metrics.UpstreamDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.UpstreamRequests.WithLabelValues("error").Inc()
		logger.With(logger.Fields{
			logger.FieldDurationMs: time.Since(start).Milliseconds(),
			logger.FieldPage:       page,
		}).Warn(ctx, "Pixabay request failed: %v", err)
		return nil, &NetworkError{Message: "transport error", Err: err}
	}

	metrics.UpstreamRequests.WithLabelValues(strconv.Itoa(resp.StatusCode())).Inc()

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		msg := strings.TrimSpace(resp.String())
		if msg == "" {
			msg = resp.Status()
		}
		logger.With(logger.Fields{
			logger.FieldStatus: resp.StatusCode(),
			logger.FieldPage:   page,
		}).Warn(ctx, "Pixabay returned non-success status: %s", msg)
		return nil, &NetworkError{StatusCode: resp.StatusCode(), Message: msg}
	}

	items := make([]domain.ImageItem, len(result.Hits))
	for i, h := range result.Hits {
		items[i] = domain.ImageItem{
			ID:         h.ID,
			PreviewURL: h.WebformatURL,
			FullURL:    h.LargeImageURL,
			Tags:       h.Tags,
			Likes:      h.Likes,
			Views:      h.Views,
			Comments:   h.Comments,
			Downloads:  h.Downloads,
		}
	}

	logger.With(logger.Fields{
		logger.FieldCount: len(items),
		logger.FieldPage:  page,
	}).WithDuration(time.Since(start).Milliseconds()).Debug(ctx, "Pixabay page fetched: total_hits=%d", result.TotalHits)

	return &domain.SearchResultPage{Items: items, TotalMatches: result.TotalHits}, nil
}
