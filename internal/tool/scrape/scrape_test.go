package scrape_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/unikill066/resumeforge/internal/port/cache"
	"github.com/unikill066/resumeforge/internal/resilience"
	"github.com/unikill066/resumeforge/internal/tool/scrape"
)

type memCache struct {
	mu sync.Mutex
	m  map[string][]byte
}

func newMemCache() *memCache { return &memCache{m: make(map[string][]byte)} }

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.m[key]
	return v, ok, nil
}

func (c *memCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.m[key] = value
	return nil
}

func (c *memCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.m, key)
	return nil
}

func newTool(c cache.Cache) *scrape.Tool {
	return scrape.New(c, resilience.NewBreaker(3, time.Second), time.Minute)
}

func TestCallExtractsVisibleText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><head><title>x</title><style>body{}</style></head>
<body><script>var a=1;</script><h1>Senior  Engineer</h1><p>Go and   Postgres.</p></body></html>`))
	}))
	defer srv.Close()

	out, err := newTool(newMemCache()).Call(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("Call: %v", err)
	}

	if !strings.Contains(out, "Senior Engineer") || !strings.Contains(out, "Go and Postgres.") {
		t.Errorf("text not extracted: %q", out)
	}
	if strings.Contains(out, "var a=1") || strings.Contains(out, "body{}") {
		t.Errorf("script/style leaked into text: %q", out)
	}
}

func TestCallServesFromCache(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write([]byte("<html><body>once</body></html>"))
	}))
	defer srv.Close()

	tool := newTool(newMemCache())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := tool.Call(ctx, srv.URL); err != nil {
			t.Fatalf("Call %d: %v", i, err)
		}
	}
	if hits != 1 {
		t.Errorf("origin hits = %d, want 1 (cache miss only once)", hits)
	}
}

func TestCallRejectsBadURL(t *testing.T) {
	tool := newTool(newMemCache())
	for _, bad := range []string{"", "not a url", "ftp://host/file"} {
		if _, err := tool.Call(context.Background(), bad); err == nil {
			t.Errorf("Call(%q): expected error", bad)
		}
	}
}

func TestCallFailsOnHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	if _, err := newTool(newMemCache()).Call(context.Background(), srv.URL); err == nil {
		t.Fatal("expected error for status 502")
	}
}
