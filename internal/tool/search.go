package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/Mr-XX23/quiz-agentic/internal/types"
)

// DefaultSearchEndpoint is the Tavily search API.
const DefaultSearchEndpoint = "https://api.tavily.com/search"

// WebSearch is a Searcher backed by a Tavily-style JSON search API.
type WebSearch struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewWebSearch creates a web search tool. An empty endpoint selects the
// default API; timeout bounds every search call.
func NewWebSearch(endpoint, apiKey string, timeout time.Duration) *WebSearch {
	if endpoint == "" {
		endpoint = DefaultSearchEndpoint
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &WebSearch{
		endpoint: endpoint,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: timeout},
	}
}

func (s *WebSearch) Name() string { return "quiz_web_search" }

func (s *WebSearch) Description() string {
	return "Search the web for content related to quiz topics"
}

type searchRequest struct {
	APIKey     string `json:"api_key"`
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type searchResponse struct {
	Results []SearchResult `json:"results"`
}

// Search issues the query and returns at most maxResults hits.
func (s *WebSearch) Search(ctx context.Context, query string, maxResults int) ([]SearchResult, error) {
	if s.apiKey == "" {
		return nil, types.NewError(types.SEARCH_FAILED, "search API key not configured")
	}
	if maxResults <= 0 {
		maxResults = 5
	}

	body, err := json.Marshal(searchRequest{APIKey: s.apiKey, Query: query, MaxResults: maxResults})
	if err != nil {
		return nil, types.WrapError(types.SEARCH_FAILED, "failed to encode search request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, types.WrapError(types.SEARCH_FAILED, "failed to build search request", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, types.WrapError(types.SEARCH_FAILED, "search request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, types.NewRetryableError(types.SEARCH_FAILED,
			fmt.Sprintf("search API returned status %d", resp.StatusCode))
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, types.WrapError(types.SEARCH_FAILED, "failed to decode search response", err)
	}

	if len(decoded.Results) > maxResults {
		decoded.Results = decoded.Results[:maxResults]
	}
	return decoded.Results, nil
}
