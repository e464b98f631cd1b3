package tool

import "context"

// Tool is the minimal contract every registered tool satisfies, used by the
// registry for discovery and by status introspection.
type Tool interface {
	// Name returns the unique identifier for this tool
	Name() string

	// Description returns a human-readable description of what this tool does
	Description() string
}

// Searcher finds web content for a query. Implementations must honor ctx
// cancellation and apply a bounded per-call timeout.
type Searcher interface {
	Tool

	Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error)
}

// Extractor fetches URLs and extracts readable text. Per-URL failures are
// embedded in the returned items; the error return covers batch-level
// failures only (e.g. context cancelled before any fetch).
type Extractor interface {
	Tool

	Extract(ctx context.Context, urls []string, maxContentLength int) ([]ContentItem, error)
}
