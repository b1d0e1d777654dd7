// Package semantic implements the semantic search capability: retrieve
// the most relevant chunks of an indexed document for a query.
//
// Retrieval is lexical (term-overlap scoring over paragraph chunks).
package semantic

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"
)

const (
	chunkSize = 800 // max characters per chunk
	topK      = 4
)

// Tool answers queries against a single indexed file.
type Tool struct {
	path string
}

// New creates the semantic search tool bound to path. The registry only
// constructs it when the file exists on disk.
func New(path string) *Tool {
	return &Tool{path: path}
}

func (t *Tool) Name() string { return "semantic_search" }

func (t *Tool) Description() string {
	return "Search the indexed résumé for passages relevant to a query."
}

// Call scores document chunks against the query and returns the best ones.
func (t *Tool) Call(_ context.Context, input string) (string, error) {
	query := strings.TrimSpace(input)
	if query == "" {
		return "", fmt.Errorf("semantic: empty query")
	}

	data, err := os.ReadFile(t.path)
	if err != nil {
		return "", fmt.Errorf("semantic index %s: %w", t.path, err)
	}

	chunks := split(string(data))
	if len(chunks) == 0 {
		return "", nil
	}

	terms := queryTerms(query)
	type scored struct {
		idx   int
		score int
	}
	ranked := make([]scored, 0, len(chunks))
	for i, c := range chunks {
		lower := strings.ToLower(c)
		s := 0
		for term := range terms {
			s += strings.Count(lower, term)
		}
		if s > 0 {
			ranked = append(ranked, scored{idx: i, score: s})
		}
	}

	if len(ranked) == 0 {
		return "No relevant passages found for: " + query, nil
	}

	sort.SliceStable(ranked, func(a, b int) bool { return ranked[a].score > ranked[b].score })
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	// Present winning chunks in document order.
	sort.Slice(ranked, func(a, b int) bool { return ranked[a].idx < ranked[b].idx })

	parts := make([]string, len(ranked))
	for i, r := range ranked {
		parts[i] = chunks[r.idx]
	}
	return strings.Join(parts, "\n\n---\n\n"), nil
}

// split breaks text into paragraph chunks. Oversized paragraphs are cut
// at chunkSize so a single wall of text cannot dominate the results.
func split(text string) []string {
	var chunks []string
	for _, p := range strings.Split(text, "\n\n") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		for len(p) > chunkSize {
			chunks = append(chunks, p[:chunkSize])
			p = strings.TrimSpace(p[chunkSize:])
		}
		if p != "" {
			chunks = append(chunks, p)
		}
	}
	return chunks
}

// queryTerms lowercases the query and drops short stop-ish words.
func queryTerms(query string) map[string]struct{} {
	terms := make(map[string]struct{})
	for _, f := range strings.Fields(strings.ToLower(query)) {
		f = strings.Trim(f, ".,;:!?()[]\"'")
		if len(f) > 2 {
			terms[f] = struct{}{}
		}
	}
	return terms
}
