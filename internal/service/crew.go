// Package service holds the application services between the transport
// adapters and the execution engine.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/unikill066/resumeforge/internal/crew"
	"github.com/unikill066/resumeforge/internal/domain"
	"github.com/unikill066/resumeforge/internal/domain/agent"
	"github.com/unikill066/resumeforge/internal/domain/run"
	"github.com/unikill066/resumeforge/internal/domain/task"
	"github.com/unikill066/resumeforge/internal/port/broadcast"
	"github.com/unikill066/resumeforge/internal/port/database"
	"github.com/unikill066/resumeforge/internal/port/engine"
	"github.com/unikill066/resumeforge/internal/tool"
)

// Bundle is one assembled crew: the agents, the task graph and the
// capabilities available to them.
type Bundle struct {
	Agents []agent.Agent
	Tasks  []task.Task
	Tools  *tool.Registry
}

// BuildFunc assembles the crew bundle. Called at most once per service.
type BuildFunc func() *Bundle

// DefaultBuild wires the standard four-agent résumé crew over the
// given tool registry.
func DefaultBuild(tools *tool.Registry) BuildFunc {
	return func() *Bundle {
		return &Bundle{
			Agents: crew.BuildAgents(tools.Names()),
			Tasks:  crew.BuildTasks(),
			Tools:  tools,
		}
	}
}

// CrewService owns crew assembly and kickoff. The bundle is built
// lazily on first use and memoized for the life of the process.
type CrewService struct {
	build  BuildFunc
	runner engine.Runner
	hub    broadcast.Broadcaster
	store  database.Store

	once   sync.Once
	bundle *Bundle

	mu   sync.RWMutex
	runs map[string]*run.Run
}

// NewCrewService creates the service. hub may be nil for no events.
func NewCrewService(build BuildFunc, runner engine.Runner, hub broadcast.Broadcaster, store database.Store) *CrewService {
	if hub == nil {
		hub = broadcast.Noop{}
	}
	return &CrewService{
		build:  build,
		runner: runner,
		hub:    hub,
		store:  store,
		runs:   make(map[string]*run.Run),
	}
}

// Crew returns the memoized bundle, building it on first call.
func (s *CrewService) Crew() *Bundle {
	s.once.Do(func() {
		s.bundle = s.build()
		slog.Info("crew assembled",
			"agents", len(s.bundle.Agents),
			"tasks", len(s.bundle.Tasks),
			"capabilities", s.bundle.Tools.Names(),
		)
	})
	return s.bundle
}

// Agents returns the crew's agent descriptors.
func (s *CrewService) Agents() []agent.Agent {
	return s.Crew().Agents
}

// Tasks returns the crew's task descriptors.
func (s *CrewService) Tasks() []task.Task {
	return s.Crew().Tasks
}

// Capabilities returns the available tool names.
func (s *CrewService) Capabilities() []string {
	return s.Crew().Tools.Names()
}

// Kickoff runs the crew to completion over the given inputs and
// returns the finished run. The tailored resume, when produced, is
// handed to the configured store.
func (s *CrewService) Kickoff(ctx context.Context, inputs map[string]string) (*run.Run, error) {
	r := s.newRun(ctx, inputs)
	if err := s.execute(ctx, r); err != nil {
		return nil, fmt.Errorf("kickoff %s: %w", r.ID, err)
	}
	return s.GetRun(r.ID)
}

// StartKickoff launches a kickoff in the background and returns the
// run ID immediately. The run detaches from the caller's context so a
// closed HTTP connection does not cancel it.
func (s *CrewService) StartKickoff(inputs map[string]string) string {
	ctx := context.Background()
	r := s.newRun(ctx, inputs)
	go func() {
		if err := s.execute(ctx, r); err != nil {
			slog.Error("background kickoff failed", "run_id", r.ID, "error", err)
		}
	}()
	return r.ID
}

// newRun creates and tracks a run in the running state.
func (s *CrewService) newRun(ctx context.Context, inputs map[string]string) *run.Run {
	r := &run.Run{
		ID:        uuid.NewString(),
		Status:    run.StatusRunning,
		Inputs:    inputs,
		StartedAt: time.Now().UTC(),
	}
	s.mu.Lock()
	s.runs[r.ID] = r
	s.mu.Unlock()

	s.hub.BroadcastEvent(ctx, broadcast.EventRunStatus, broadcast.RunStatusEvent{
		RunID: r.ID, Status: string(r.Status),
	})
	slog.Info("crew kickoff", "run_id", r.ID)
	return r
}

// execute drives the run through the engine and records the outcome.
func (s *CrewService) execute(ctx context.Context, r *run.Run) error {
	bundle := s.Crew()

	result, err := s.runner.Run(ctx, engine.RunRequest{
		RunID:  r.ID,
		Agents: bundle.Agents,
		Tasks:  bundle.Tasks,
		Tools:  bundle.Tools,
		Inputs: r.Inputs,
	})
	if err != nil {
		s.finish(ctx, r, run.StatusFailed, err.Error())
		return err
	}

	s.mu.Lock()
	r.Outputs = result.Outputs
	r.Files = result.Files
	s.mu.Unlock()

	status := run.StatusCompleted
	if result.Failed {
		status = run.StatusFailed
	}
	s.finish(ctx, r, status, "")

	if status == run.StatusCompleted {
		s.persistResume(ctx, r, result.Files)
	}
	return nil
}

// GetRun returns a copy of the tracked run.
func (s *CrewService) GetRun(id string) (*run.Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.runs[id]
	if !ok {
		return nil, fmt.Errorf("run %s: %w", id, domain.ErrNotFound)
	}
	cp := *r
	return &cp, nil
}

// ListRuns returns copies of all tracked runs, newest first.
func (s *CrewService) ListRuns() []run.Run {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]run.Run, 0, len(s.runs))
	for _, r := range s.runs {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.After(out[j].StartedAt) })
	return out
}

func (s *CrewService) finish(ctx context.Context, r *run.Run, status run.Status, errMsg string) {
	s.mu.Lock()
	r.Status = status
	r.Error = errMsg
	r.FinishedAt = time.Now().UTC()
	s.mu.Unlock()

	s.hub.BroadcastEvent(ctx, broadcast.EventRunStatus, broadcast.RunStatusEvent{
		RunID: r.ID, Status: string(status), Error: errMsg,
	})
}

// persistResume hands the tailored resume file to the store, if one
// was produced.
func (s *CrewService) persistResume(ctx context.Context, r *run.Run, files []string) {
	if s.store == nil {
		return
	}
	for _, path := range files {
		if filepath.Base(path) != crew.OutputResume {
			continue
		}
		content, err := os.ReadFile(path)
		if err != nil {
			slog.Error("read tailored resume", "path", path, "error", err)
			return
		}
		userID := r.Inputs["user_id"]
		if userID == "" {
			userID = "local"
		}
		if _, err := s.store.SaveResume(ctx, userID, content, crew.OutputResume); err != nil {
			slog.Error("save tailored resume", "run_id", r.ID, "error", err)
		}
		return
	}
}
