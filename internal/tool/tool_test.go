package tool

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Mr-XX23/quiz-agentic/internal/types"
)

func TestRegistry(t *testing.T) {
	r := NewRegistry()
	search := NewWebSearch("", "key", time.Second)
	extract := NewContentExtractor(time.Second)

	require.NoError(t, r.Register(search))
	require.NoError(t, r.Register(extract))

	assert.Equal(t, []string{"content_extraction", "quiz_web_search"}, r.Names())

	got, err := r.Get("quiz_web_search")
	require.NoError(t, err)
	assert.Equal(t, search, got)

	err = r.Register(NewWebSearch("", "other", time.Second))
	assert.ErrorIs(t, err, types.NewError(types.TOOL_ALREADY_REGISTERED, ""))

	_, err = r.Get("missing")
	assert.ErrorIs(t, err, types.NewError(types.TOOL_NOT_FOUND, ""))

	assert.Error(t, r.Register(nil))
}

func TestWebSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var req searchRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "machine learning tutorials", req.Query)
		assert.Equal(t, "test-key", req.APIKey)

		json.NewEncoder(w).Encode(searchResponse{Results: []SearchResult{
			{Title: "Intro to ML", URL: "https://example.com/ml", Content: "gradient descent", Score: 0.95},
			{Title: "Deep learning", URL: "https://example.com/dl", Content: "backprop", Score: 0.9},
			{Title: "Extra", URL: "https://example.com/extra", Content: "overflow", Score: 0.1},
		}})
	}))
	defer srv.Close()

	s := NewWebSearch(srv.URL, "test-key", time.Second)
	results, err := s.Search(context.Background(), "machine learning tutorials", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "Intro to ML", results[0].Title)
	assert.InDelta(t, 0.95, results[0].Score, 1e-9)
}

func TestWebSearchMissingKey(t *testing.T) {
	s := NewWebSearch("", "", time.Second)
	_, err := s.Search(context.Background(), "anything", 5)
	assert.ErrorIs(t, err, types.NewError(types.SEARCH_FAILED, ""))
}

func TestWebSearchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	s := NewWebSearch(srv.URL, "key", time.Second)
	_, err := s.Search(context.Background(), "q", 5)
	require.Error(t, err)
	assert.True(t, types.IsRetryable(err))
}

func TestContentExtractor(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head><title>Go Concurrency</title>
<script>ignore();</script><style>.x{}</style></head>
<body><h1>Goroutines</h1><p>A goroutine   is a lightweight thread.</p></body></html>`))
	}))
	defer srv.Close()

	e := NewContentExtractor(time.Second)
	items, err := e.Extract(context.Background(), []string{srv.URL}, 2000)
	require.NoError(t, err)
	require.Len(t, items, 1)

	item := items[0]
	assert.Empty(t, item.Err)
	assert.Equal(t, "Go Concurrency", item.Title)
	assert.Contains(t, item.Content, "Goroutines")
	assert.Contains(t, item.Content, "A goroutine is a lightweight thread.")
	assert.NotContains(t, item.Content, "ignore")
	assert.NotContains(t, item.Content, ".x{}")
	assert.Equal(t, len(item.Content), item.Length)
}

func TestContentExtractorTruncates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>" + longWord(500) + "</body></html>"))
	}))
	defer srv.Close()

	e := NewContentExtractor(time.Second)
	items, err := e.Extract(context.Background(), []string{srv.URL}, 100)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Len(t, items[0].Content, 103) // 100 chars + "..."
}

func TestContentExtractorPartialFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>ok</body></html>"))
	}))
	defer srv.Close()

	e := NewContentExtractor(time.Second)
	items, err := e.Extract(context.Background(), []string{srv.URL, "http://127.0.0.1:1/unreachable"}, 2000)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Empty(t, items[0].Err)
	assert.NotEmpty(t, items[1].Err)
	assert.Empty(t, items[1].Content)
}

func longWord(n int) string {
	b := make([]byte, n)
	for i := range b {
		b[i] = 'a'
	}
	return string(b)
}
