// Package run defines the crew run entity tracked across a kickoff.
package run

import "time"

// Status represents the lifecycle state of a crew run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// IsTerminal returns true if the run is in a final state.
func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Run records one crew kickoff: its inputs, per-task outputs and the
// files written.
type Run struct {
	ID         string            `json:"id"`
	Status     Status            `json:"status"`
	Inputs     map[string]string `json:"inputs"`
	Outputs    map[string]string `json:"outputs,omitempty"` // task name -> output
	Files      []string          `json:"files,omitempty"`
	Error      string            `json:"error,omitempty"`
	StartedAt  time.Time         `json:"started_at"`
	FinishedAt time.Time         `json:"finished_at,omitzero"`
}
