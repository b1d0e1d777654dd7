// Package scrape implements the website reading capability: fetch a URL
// and reduce it to the visible text an agent can reason about.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/unikill066/resumeforge/internal/port/cache"
	"github.com/unikill066/resumeforge/internal/resilience"
)

// maxBodyBytes caps how much of a page is downloaded.
const maxBodyBytes = 2 << 20

// maxTextRunes caps the extracted text handed back to the agent.
const maxTextRunes = 16000

// Tool fetches web pages and extracts their readable text.
type Tool struct {
	client  *http.Client
	cache   cache.Cache
	breaker *resilience.Breaker
	ttl     time.Duration
}

// New creates the scrape tool. Results are cached by URL.
func New(c cache.Cache, b *resilience.Breaker, ttl time.Duration) *Tool {
	return &Tool{
		client:  &http.Client{Timeout: 30 * time.Second},
		cache:   c,
		breaker: b,
		ttl:     ttl,
	}
}

func (t *Tool) Name() string { return "scrape" }

func (t *Tool) Description() string {
	return "Read the visible text content of a website given its URL."
}

// Call fetches the URL in input and returns the page's visible text.
func (t *Tool) Call(ctx context.Context, input string) (string, error) {
	target := strings.TrimSpace(input)
	u, err := url.Parse(target)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return "", fmt.Errorf("scrape: invalid url %q", target)
	}

	key := "scrape:" + target
	if data, ok, _ := t.cache.Get(ctx, key); ok {
		return string(data), nil
	}

	var text string
	call := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("User-Agent", "resumeforge/1.0")

		resp, err := t.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetch: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("fetch %s: status %d", target, resp.StatusCode)
		}

		body := io.LimitReader(resp.Body, maxBodyBytes)
		text, err = extractText(body)
		return err
	}

	if err := t.breaker.Execute(call); err != nil {
		return "", fmt.Errorf("scrape %s: %w", target, err)
	}

	_ = t.cache.Set(ctx, key, []byte(text), t.ttl)
	return text, nil
}

// extractText walks the HTML tree collecting text nodes, skipping
// script/style/head subtrees and collapsing whitespace.
func extractText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "head", "iframe":
				return
			}
		}
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				sb.WriteString(s)
				sb.WriteString(" ")
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	text := strings.Join(strings.Fields(sb.String()), " ")
	runes := []rune(text)
	if len(runes) > maxTextRunes {
		runes = runes[:maxTextRunes]
	}
	return string(runes), nil
}
