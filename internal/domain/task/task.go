// Package task defines the Task descriptor and its dependency graph helpers.
package task

import "strings"

// Status represents the current state of a task.
type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusSkipped   Status = "skipped"
)

// IsTerminal returns true if the task is in a final state.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusSkipped:
		return true
	}
	return false
}

// Task is a unit of work with a description template, expected output and
// dependency list. Descriptions may contain {placeholder} keys substituted
// from the kickoff inputs.
type Task struct {
	Name           string   `json:"name"`
	Description    string   `json:"description"`
	ExpectedOutput string   `json:"expected_output"`
	OutputFile     string   `json:"output_file,omitempty"`
	AgentRole      string   `json:"agent_role"`
	ToolQuery      string   `json:"tool_query,omitempty"` // template for tool invocations
	DependsOn      []string `json:"depends_on,omitempty"` // upstream task names
	Async          bool     `json:"async"`                // eligible for parallel dispatch

	Status Status `json:"status"`
	Output string `json:"output,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Render substitutes {key} placeholders in s with values from inputs.
// Unknown placeholders are left intact.
func Render(s string, inputs map[string]string) string {
	for k, v := range inputs {
		s = strings.ReplaceAll(s, "{"+k+"}", v)
	}
	return s
}
