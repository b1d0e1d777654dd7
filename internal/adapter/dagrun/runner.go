// Package dagrun executes a crew's task graph: ready tasks are dispatched
// in rounds with bounded parallelism, each backed by one model completion
// over a token-budgeted briefing of tool output and upstream results.
package dagrun

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"

	"github.com/unikill066/resumeforge/internal/adapter/llm"
	rfotel "github.com/unikill066/resumeforge/internal/adapter/otel"
	"github.com/unikill066/resumeforge/internal/domain/agent"
	"github.com/unikill066/resumeforge/internal/domain/brief"
	"github.com/unikill066/resumeforge/internal/domain/task"
	"github.com/unikill066/resumeforge/internal/port/broadcast"
	"github.com/unikill066/resumeforge/internal/port/engine"
	"github.com/unikill066/resumeforge/internal/tool"
)

// maxScrapeTargets caps how many URLs the scrape capability visits per task.
const maxScrapeTargets = 4

// Completer is the slice of the LLM client the runner needs.
// Satisfied by *llm.Client.
type Completer interface {
	Complete(ctx context.Context, req llm.CompletionRequest) (*llm.Completion, error)
}

// Options configures a Runner.
type Options struct {
	Model         string
	MaxTokens     int
	MaxParallel   int
	TaskTimeout   time.Duration
	ContextBudget int
	PromptReserve int
	OutputDir     string
}

// Runner implements engine.Runner over an OpenAI-compatible completer.
type Runner struct {
	completer Completer
	hub       broadcast.Broadcaster
	metrics   *rfotel.Metrics
	opts      Options
}

// New creates a Runner. hub may be broadcast.Noop; metrics may be nil.
func New(completer Completer, hub broadcast.Broadcaster, metrics *rfotel.Metrics, opts Options) *Runner {
	if opts.MaxParallel < 1 {
		opts.MaxParallel = 1
	}
	if hub == nil {
		hub = broadcast.Noop{}
	}
	return &Runner{completer: completer, hub: hub, metrics: metrics, opts: opts}
}

// Run executes the task graph to completion. A failed task marks its
// dependents skipped; independent branches keep running. The returned
// result reports per-task outputs and whether anything failed.
func (r *Runner) Run(ctx context.Context, req engine.RunRequest) (*engine.RunResult, error) {
	if err := task.ValidateGraph(req.Tasks); err != nil {
		return nil, fmt.Errorf("task graph: %w", err)
	}

	ctx, span := rfotel.StartRunSpan(ctx, req.RunID)
	defer span.End()

	if r.metrics != nil {
		r.metrics.RunsStarted.Add(ctx, 1)
	}

	agents := make(map[string]agent.Agent, len(req.Agents))
	for _, a := range req.Agents {
		agents[a.Role] = a
	}

	tasks := make([]task.Task, len(req.Tasks))
	copy(tasks, req.Tasks)
	for i := range tasks {
		// Callers may hand over zero-valued descriptors.
		if tasks[i].Status == "" {
			tasks[i].Status = task.StatusPending
		}
	}

	outputs := make(map[string]string, len(tasks))
	var mu sync.Mutex // guards tasks and outputs between rounds
	sem := semaphore.NewWeighted(int64(r.opts.MaxParallel))

	for {
		mu.Lock()
		if task.AllTerminal(tasks) {
			mu.Unlock()
			break
		}
		ready := task.Ready(tasks)
		mu.Unlock()

		if len(ready) == 0 {
			// Validated DAG with pending tasks but nothing ready means a
			// scheduling bug; fail loudly instead of spinning.
			return nil, fmt.Errorf("run %s: no ready tasks with %d pending", req.RunID, pending(tasks))
		}

		var wg sync.WaitGroup
		for _, name := range ready {
			i := indexOf(tasks, name)
			tasks[i].Status = task.StatusRunning

			if err := sem.Acquire(ctx, 1); err != nil {
				return nil, fmt.Errorf("run %s: %w", req.RunID, err)
			}
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				defer sem.Release(1)

				t := tasks[i] // private copy for the worker
				mu.Lock()
				upstream := snapshot(outputs, t.DependsOn)
				mu.Unlock()

				out, err := r.executeTask(ctx, req, t, agents[t.AgentRole], upstream)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					tasks[i].Status = task.StatusFailed
					tasks[i].Error = err.Error()
					slog.Error("task failed", "run_id", req.RunID, "task", t.Name, "error", err)
					r.broadcastTask(ctx, req.RunID, &tasks[i])
					return
				}
				tasks[i].Status = task.StatusCompleted
				tasks[i].Output = out
				outputs[t.Name] = out
				r.broadcastTask(ctx, req.RunID, &tasks[i])
				r.hub.BroadcastEvent(ctx, broadcast.EventTaskOutput, broadcast.TaskOutputEvent{
					RunID:  req.RunID,
					Task:   t.Name,
					Output: out,
				})
			}(i)
		}
		wg.Wait()

		mu.Lock()
		for _, name := range task.SkipBlocked(tasks) {
			slog.Warn("task skipped, upstream failed", "run_id", req.RunID, "task", name)
			r.broadcastTask(ctx, req.RunID, &tasks[indexOf(tasks, name)])
		}
		mu.Unlock()
	}

	result := &engine.RunResult{
		RunID:   req.RunID,
		Outputs: outputs,
		Failed:  task.AnyFailed(tasks),
	}

	for i := range tasks {
		if tasks[i].Status == task.StatusCompleted && tasks[i].OutputFile != "" {
			path, err := r.writeOutput(tasks[i].OutputFile, tasks[i].Output)
			if err != nil {
				slog.Error("write output file", "task", tasks[i].Name, "error", err)
				result.Failed = true
				continue
			}
			result.Files = append(result.Files, path)
		}
	}

	if r.metrics != nil {
		if result.Failed {
			r.metrics.RunsFailed.Add(ctx, 1)
		} else {
			r.metrics.RunsCompleted.Add(ctx, 1)
		}
	}

	return result, nil
}

// executeTask renders the task, gathers its briefing and asks the model.
func (r *Runner) executeTask(ctx context.Context, req engine.RunRequest, t task.Task, ag agent.Agent, upstream map[string]string) (string, error) {
	if ag.Role == "" {
		return "", fmt.Errorf("no agent for role %q", t.AgentRole)
	}

	ctx, span := rfotel.StartTaskSpan(ctx, req.RunID, t.Name, ag.Role)
	defer span.End()

	if r.opts.TaskTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.opts.TaskTimeout)
		defer cancel()
	}

	r.broadcastStatus(ctx, req.RunID, t.Name, ag.Role, task.StatusRunning, "")
	started := time.Now()

	description := task.Render(t.Description, req.Inputs)
	query := task.Render(t.ToolQuery, req.Inputs)

	budget := r.opts.ContextBudget - r.opts.PromptReserve
	if budget < 256 {
		budget = 256
	}
	briefing := brief.New(budget)
	for _, dep := range t.DependsOn {
		briefing.Add(brief.KindUpstream, dep, upstream[dep])
	}
	r.gatherToolContext(ctx, briefing, t.Name, ag, description, query, req.Tools)

	prompt := fmt.Sprintf("%s\n\nExpected output: %s", description, t.ExpectedOutput)
	if section := briefing.Render(); section != "" {
		prompt += "\n\n## Context\n\n" + section
	}

	completion, err := r.completer.Complete(ctx, llm.CompletionRequest{
		Model: r.opts.Model,
		Messages: []llm.Message{
			{Role: "system", Content: fmt.Sprintf("You are %s. %s %s", ag.Role, ag.Goal, ag.Backstory)},
			{Role: "user", Content: prompt},
		},
		MaxTokens: r.opts.MaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("task %s: %w", t.Name, err)
	}

	if r.metrics != nil {
		r.metrics.TaskDuration.Record(ctx, time.Since(started).Seconds())
		r.metrics.TokensUsed.Add(ctx, int64(completion.Usage.TotalTokens))
	}

	slog.Info("task completed",
		"run_id", req.RunID,
		"task", t.Name,
		"agent", ag.Role,
		"tokens", completion.Usage.TotalTokens,
		"duration_ms", time.Since(started).Milliseconds(),
	)
	return completion.Content, nil
}

// gatherToolContext invokes each of the agent's bound capabilities and
// feeds their output into the briefing. Tool failures degrade the
// briefing, never the task.
func (r *Runner) gatherToolContext(ctx context.Context, briefing *brief.Briefing, taskName string, ag agent.Agent, description, query string, tools *tool.Registry) {
	if tools == nil {
		return
	}
	for _, cap := range ag.Tools {
		tl, ok := tools.Get(cap)
		if !ok {
			continue
		}

		inputs := []string{query}
		if cap == tool.CapScrape {
			inputs = extractURLs(description)
		}

		for _, in := range inputs {
			toolCtx, span := rfotel.StartToolSpan(ctx, taskName, cap)
			out, err := tl.Call(toolCtx, in)
			span.End()
			if r.metrics != nil {
				r.metrics.ToolCalls.Add(ctx, 1)
			}
			if err != nil {
				slog.Warn("tool call failed", "task", taskName, "capability", cap, "error", err)
				continue
			}

			label := cap
			if cap == tool.CapScrape {
				label = cap + " " + in
			}
			briefing.Add(brief.KindTool, label, out)
		}
	}
}

// writeOutput writes a task's output file under the configured directory.
func (r *Runner) writeOutput(name, content string) (string, error) {
	dir := r.opts.OutputDir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return "", err
	}
	slog.Info("output written", "path", path)
	return path, nil
}

func (r *Runner) broadcastTask(ctx context.Context, runID string, t *task.Task) {
	r.broadcastStatus(ctx, runID, t.Name, t.AgentRole, t.Status, t.Error)
}

func (r *Runner) broadcastStatus(ctx context.Context, runID, name, role string, status task.Status, errMsg string) {
	r.hub.BroadcastEvent(ctx, broadcast.EventTaskStatus, broadcast.TaskStatusEvent{
		RunID:  runID,
		Task:   name,
		Agent:  role,
		Status: string(status),
		Error:  errMsg,
	})
}

// extractURLs pulls http(s) URLs out of a rendered description, deduped
// and capped at maxScrapeTargets.
func extractURLs(s string) []string {
	seen := make(map[string]bool)
	var urls []string
	for _, f := range strings.Fields(s) {
		f = strings.Trim(f, "(),;\"'<>")
		if !strings.HasPrefix(f, "http://") && !strings.HasPrefix(f, "https://") {
			continue
		}
		if seen[f] {
			continue
		}
		seen[f] = true
		urls = append(urls, f)
		if len(urls) == maxScrapeTargets {
			break
		}
	}
	return urls
}

func indexOf(tasks []task.Task, name string) int {
	for i := range tasks {
		if tasks[i].Name == name {
			return i
		}
	}
	return -1
}

func pending(tasks []task.Task) int {
	n := 0
	for i := range tasks {
		if tasks[i].Status == task.StatusPending {
			n++
		}
	}
	return n
}

func snapshot(outputs map[string]string, keys []string) map[string]string {
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		if v, ok := outputs[k]; ok {
			out[k] = v
		}
	}
	return out
}
