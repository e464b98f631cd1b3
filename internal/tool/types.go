// Package tool defines the agent's external collaborator tools: web search
// and HTML content extraction, plus a name-indexed registry used for
// discovery and status introspection.
package tool

// SearchResult is a single web-search hit.
type SearchResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

// ContentItem is the extraction result for one URL. A per-URL failure is
// embedded in Err rather than raised, so partial failure across a batch is
// expected and non-fatal.
type ContentItem struct {
	URL     string `json:"url"`
	Content string `json:"content"`
	Length  int    `json:"length"`
	Title   string `json:"title,omitempty"`
	Err     string `json:"error,omitempty"`
}
