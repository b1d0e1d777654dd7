// Package tool defines the capability interface and the registry that
// holds whichever capabilities could be constructed for this process.
package tool

import "context"

// Capability names. Agents reference these; the registry holds at most
// one tool per name.
const (
	CapScrape     = "scrape"
	CapSearch     = "search"
	CapReadResume = "read_resume"
	CapSemantic   = "semantic_search"
)

// Tool is a single capability an agent can invoke during a task.
type Tool interface {
	Name() string
	Description() string
	Call(ctx context.Context, input string) (string, error)
}

// Registry holds the constructed tools, keyed by capability name.
// A capability whose precondition failed is simply absent.
type Registry struct {
	names  []string
	byName map[string]Tool
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]Tool)}
}

// Add registers a tool under its name, replacing any previous entry.
func (r *Registry) Add(t Tool) {
	if _, exists := r.byName[t.Name()]; !exists {
		r.names = append(r.names, t.Name())
	}
	r.byName[t.Name()] = t
}

// Get returns the tool for the given capability name.
func (r *Registry) Get(name string) (Tool, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Has reports whether the capability is present.
func (r *Registry) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Names returns the present capability names in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.names))
	copy(out, r.names)
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int { return len(r.byName) }
