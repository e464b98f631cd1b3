package tool

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html"
)

// ContentExtractor is an Extractor that fetches pages over HTTP and strips
// them to readable text.
type ContentExtractor struct {
	client *http.Client
}

// NewContentExtractor creates an extractor; timeout bounds each fetch.
func NewContentExtractor(timeout time.Duration) *ContentExtractor {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ContentExtractor{client: &http.Client{Timeout: timeout}}
}

func (e *ContentExtractor) Name() string { return "content_extraction" }

func (e *ContentExtractor) Description() string {
	return "Extract text content from web URLs for quiz generation"
}

// Extract fetches every URL and extracts its text. Failures are embedded
// per item; the only batch-level error is a context cancelled before the
// batch completes.
func (e *ContentExtractor) Extract(ctx context.Context, urls []string, maxContentLength int) ([]ContentItem, error) {
	if maxContentLength <= 0 {
		maxContentLength = 2000
	}

	items := make([]ContentItem, 0, len(urls))
	for _, url := range urls {
		if err := ctx.Err(); err != nil {
			return items, err
		}
		items = append(items, e.extractOne(ctx, url, maxContentLength))
	}
	return items, nil
}

func (e *ContentExtractor) extractOne(ctx context.Context, url string, maxContentLength int) ContentItem {
	fail := func(err error) ContentItem {
		return ContentItem{URL: url, Err: fmt.Sprintf("failed to extract content: %v", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fail(err)
	}

	resp, err := e.client.Do(req)
	if err != nil {
		return fail(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fail(fmt.Errorf("status %d", resp.StatusCode))
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return fail(err)
	}

	title, text := flatten(doc)
	if len(text) > maxContentLength {
		text = text[:maxContentLength] + "..."
	}

	return ContentItem{
		URL:     url,
		Content: text,
		Length:  len(text),
		Title:   title,
	}
}

// flatten walks the parsed document collecting visible text, skipping
// script and style subtrees, and collapsing whitespace runs.
func flatten(doc *html.Node) (title, text string) {
	var sb strings.Builder

	var walk func(n *html.Node, inTitle bool)
	walk = func(n *html.Node, inTitle bool) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style":
				return
			case "title":
				inTitle = true
			}
		}
		if n.Type == html.TextNode {
			if inTitle && title == "" {
				title = strings.TrimSpace(n.Data)
			} else {
				sb.WriteString(n.Data)
				sb.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, inTitle)
		}
	}
	walk(doc, false)

	return title, strings.Join(strings.Fields(sb.String()), " ")
}
