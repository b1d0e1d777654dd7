// Package engine defines the execution port the crew delegates to.
// The crew service assembles agents, tasks and tools; a Runner owns
// scheduling, model calls and partial-failure handling.
package engine

import (
	"context"

	"github.com/unikill066/resumeforge/internal/domain/agent"
	"github.com/unikill066/resumeforge/internal/domain/task"
	"github.com/unikill066/resumeforge/internal/tool"
)

// RunRequest carries one assembled crew and its kickoff inputs.
type RunRequest struct {
	RunID  string
	Agents []agent.Agent
	Tasks  []task.Task
	Tools  *tool.Registry
	Inputs map[string]string
}

// RunResult holds the per-task outputs and files written by a run.
type RunResult struct {
	RunID   string
	Outputs map[string]string // task name -> output
	Files   []string          // paths written to the output directory
	Failed  bool              // at least one task failed
}

// Runner executes a crew's task graph to completion.
type Runner interface {
	Run(ctx context.Context, req RunRequest) (*RunResult, error)
}
