// Package agent defines the Agent role descriptor.
package agent

import "errors"

// Agent is a named role configuration consumed by the crew engine.
// Immutable once constructed; built once per process by the crew service.
type Agent struct {
	Role      string   `json:"role"`
	Goal      string   `json:"goal"`
	Backstory string   `json:"backstory"`
	Tools     []string `json:"tools"` // capability names, subset of the registry
}

// Validate checks that an Agent descriptor is well-formed.
func (a *Agent) Validate() error {
	if a.Role == "" {
		return errors.New("role is required")
	}
	if a.Goal == "" {
		return errors.New("goal is required")
	}
	return nil
}

// HasTool reports whether the agent is bound to the named capability.
func (a *Agent) HasTool(name string) bool {
	for _, t := range a.Tools {
		if t == name {
			return true
		}
	}
	return false
}
