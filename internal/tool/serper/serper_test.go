package serper_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/unikill066/resumeforge/internal/resilience"
	"github.com/unikill066/resumeforge/internal/tool/serper"
)

func newBreaker() *resilience.Breaker {
	return resilience.NewBreaker(3, time.Second)
}

func TestCallFormatsOrganicResults(t *testing.T) {
	var gotKey, gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("X-API-KEY")
		var req map[string]string
		_ = json.NewDecoder(r.Body).Decode(&req)
		gotQuery = req["q"]

		_ = json.NewEncoder(w).Encode(map[string]any{
			"organic": []map[string]string{
				{"title": "Go Engineer at Acme", "link": "https://acme.test/jobs/1", "snippet": "Build services in Go."},
				{"title": "Backend roles", "link": "https://jobs.test", "snippet": "Many openings."},
			},
		})
	}))
	defer srv.Close()

	tool := serper.New("secret-key", srv.URL, newBreaker())
	out, err := tool.Call(context.Background(), "golang jobs")
	if err != nil {
		t.Fatalf("Call: %v", err)
	}

	if gotKey != "secret-key" {
		t.Errorf("X-API-KEY = %q", gotKey)
	}
	if gotQuery != "golang jobs" {
		t.Errorf("query = %q", gotQuery)
	}
	if !strings.Contains(out, "1. Go Engineer at Acme") || !strings.Contains(out, "https://acme.test/jobs/1") {
		t.Errorf("results not formatted:\n%s", out)
	}
}

func TestCallEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"organic": []}`))
	}))
	defer srv.Close()

	out, err := serper.New("k", srv.URL, newBreaker()).Call(context.Background(), "nothing")
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if !strings.Contains(out, "No results") {
		t.Errorf("out = %q", out)
	}
}

func TestCallRejectsEmptyQuery(t *testing.T) {
	if _, err := serper.New("k", "http://unused", newBreaker()).Call(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestCallSurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"message":"Unauthorized"}`, http.StatusForbidden)
	}))
	defer srv.Close()

	if _, err := serper.New("bad", srv.URL, newBreaker()).Call(context.Background(), "q"); err == nil {
		t.Fatal("expected error for 403")
	}
}
