// Package serper implements the web search capability against the
// Serper.dev API.
package serper

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/unikill066/resumeforge/internal/resilience"
)

// DefaultURL is the Serper search endpoint.
const DefaultURL = "https://google.serper.dev/search"

// maxResults limits how many organic results are returned to the agent.
const maxResults = 8

// Tool performs web searches through the Serper API.
type Tool struct {
	apiKey  string
	url     string
	client  *http.Client
	breaker *resilience.Breaker
}

// New creates the search tool. The API key must be non-empty; the
// registry enforces that precondition.
func New(apiKey, url string, b *resilience.Breaker) *Tool {
	if url == "" {
		url = DefaultURL
	}
	return &Tool{
		apiKey:  apiKey,
		url:     url,
		client:  &http.Client{Timeout: 15 * time.Second},
		breaker: b,
	}
}

func (t *Tool) Name() string { return "search" }

func (t *Tool) Description() string {
	return "Search the web and return titles, links and snippets for a query."
}

type organicResult struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

type searchResponse struct {
	Organic []organicResult `json:"organic"`
}

// Call runs the query in input and formats the organic results.
func (t *Tool) Call(ctx context.Context, input string) (string, error) {
	query := strings.TrimSpace(input)
	if query == "" {
		return "", fmt.Errorf("serper: empty query")
	}

	body, err := json.Marshal(map[string]string{"q": query})
	if err != nil {
		return "", fmt.Errorf("serper: marshal query: %w", err)
	}

	var parsed searchResponse
	call := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.url, bytes.NewReader(body))
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-API-KEY", t.apiKey)

		resp, err := t.client.Do(req)
		if err != nil {
			return fmt.Errorf("http request: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("read response: %w", err)
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("status %d: %s", resp.StatusCode, truncate(string(data), 200))
		}
		return json.Unmarshal(data, &parsed)
	}

	if err := t.breaker.Execute(call); err != nil {
		return "", fmt.Errorf("search %q: %w", query, err)
	}

	if len(parsed.Organic) == 0 {
		return "No results found for: " + query, nil
	}

	var sb strings.Builder
	for i, r := range parsed.Organic {
		if i == maxResults {
			break
		}
		fmt.Fprintf(&sb, "%d. %s\n%s\n%s\n\n", i+1, r.Title, r.Link, r.Snippet)
	}
	return strings.TrimSpace(sb.String()), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
