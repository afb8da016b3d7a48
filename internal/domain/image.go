package domain

// ImageItem represents a single image record returned by the image API.
// Items are immutable once fetched.
type ImageItem struct {
	ID         int    `json:"id"`
	PreviewURL string `json:"preview_url"`
	FullURL    string `json:"full_url"`
	Tags       string `json:"tags"`
	Likes      int    `json:"likes"`
	Views      int    `json:"views"`
	Comments   int    `json:"comments"`
	Downloads  int    `json:"downloads"`
}

// SearchResultPage is one page of results for a query.
// It is consumed once by the session machine and the renderer, then discarded.
type SearchResultPage struct {
	Items        []ImageItem `json:"items"`
	TotalMatches int         `json:"total_matches"`
}
