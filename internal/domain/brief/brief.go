// Package brief assembles token-budgeted briefings delivered to the
// language model alongside a task prompt.
package brief

import (
	"strings"
	"unicode/utf8"
)

// Kind classifies a briefing entry.
type Kind string

const (
	KindTool     Kind = "tool"     // output of a tool invocation
	KindUpstream Kind = "upstream" // output of a completed upstream task
)

// Entry is a single piece of context within a briefing.
type Entry struct {
	Kind    Kind
	Label   string // tool capability or upstream task name
	Content string
	Tokens  int
}

// Briefing bundles tool outputs and upstream task results for one task,
// constrained by a token budget.
type Briefing struct {
	budget  int
	used    int
	entries []Entry
}

// New creates an empty briefing with the given token budget.
func New(budget int) *Briefing {
	return &Briefing{budget: budget}
}

// Add appends an entry, truncating its content to whatever budget remains.
// Returns false if no budget is left and the entry was dropped entirely.
func (b *Briefing) Add(kind Kind, label, content string) bool {
	if content == "" {
		return false
	}
	remaining := b.budget - b.used
	if remaining <= 0 {
		return false
	}

	tokens := EstimateTokens(content)
	if tokens > remaining {
		cut := remaining * 4
		for cut > 0 && !utf8.RuneStart(content[cut]) {
			cut--
		}
		content = content[:cut]
		tokens = remaining
	}

	b.entries = append(b.entries, Entry{Kind: kind, Label: label, Content: content, Tokens: tokens})
	b.used += tokens
	return true
}

// TokensUsed returns the estimated token count of all entries.
func (b *Briefing) TokensUsed() int { return b.used }

// Entries returns the accepted entries in insertion order.
func (b *Briefing) Entries() []Entry { return b.entries }

// Render formats the briefing as a prompt section. Upstream results come
// first so the model sees task context before raw tool output.
func (b *Briefing) Render() string {
	if len(b.entries) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, kind := range []Kind{KindUpstream, KindTool} {
		for _, e := range b.entries {
			if e.Kind != kind {
				continue
			}
			sb.WriteString("### ")
			sb.WriteString(e.Label)
			sb.WriteString("\n")
			sb.WriteString(e.Content)
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// EstimateTokens returns an approximate token count for a string.
// Uses the heuristic 1 token ≈ 4 characters.
func EstimateTokens(s string) int {
	n := len(s) / 4
	if n == 0 && s != "" {
		return 1
	}
	return n
}
