package crew_test

import (
	"testing"

	"github.com/unikill066/resumeforge/internal/crew"
	"github.com/unikill066/resumeforge/internal/domain/task"
	"github.com/unikill066/resumeforge/internal/tool"
)

func TestBuildAgentsReflectsAvailableTools(t *testing.T) {
	// Only scrape is available: every agent gets exactly [scrape].
	agents := crew.BuildAgents([]string{tool.CapScrape})
	if len(agents) != 4 {
		t.Fatalf("agents = %d, want 4", len(agents))
	}
	for _, a := range agents {
		if len(a.Tools) != 1 || a.Tools[0] != tool.CapScrape {
			t.Errorf("agent %s tools = %v, want [scrape]", a.Role, a.Tools)
		}
	}

	// Full registry: researcher gets 2, the rest get 4.
	all := []string{tool.CapScrape, tool.CapSearch, tool.CapReadResume, tool.CapSemantic}
	agents = crew.BuildAgents(all)
	if got := len(agents[0].Tools); got != 2 {
		t.Errorf("researcher tools = %d, want 2", got)
	}
	for _, a := range agents[1:] {
		if len(a.Tools) != 4 {
			t.Errorf("agent %s tools = %d, want 4", a.Role, len(a.Tools))
		}
	}

	for _, a := range agents {
		if err := a.Validate(); err != nil {
			t.Errorf("agent %s: %v", a.Role, err)
		}
	}
}

func TestBuildAgentsEmptyRegistry(t *testing.T) {
	for _, a := range crew.BuildAgents(nil) {
		if len(a.Tools) != 0 {
			t.Errorf("agent %s tools = %v, want none", a.Role, a.Tools)
		}
	}
}

func TestBuildTasksGraph(t *testing.T) {
	tasks := crew.BuildTasks()
	if len(tasks) != 4 {
		t.Fatalf("tasks = %d, want 4", len(tasks))
	}

	if err := task.ValidateGraph(tasks); err != nil {
		t.Fatalf("ValidateGraph: %v", err)
	}

	byName := make(map[string]task.Task, len(tasks))
	for _, tk := range tasks {
		byName[tk.Name] = tk
	}

	if !byName[crew.TaskResearch].Async || !byName[crew.TaskProfile].Async {
		t.Error("research and profile must be async")
	}
	if byName[crew.TaskStrategy].OutputFile != crew.OutputResume {
		t.Errorf("strategy output = %q", byName[crew.TaskStrategy].OutputFile)
	}
	if byName[crew.TaskInterview].OutputFile != crew.OutputInterview {
		t.Errorf("interview output = %q", byName[crew.TaskInterview].OutputFile)
	}
	if got := len(byName[crew.TaskInterview].DependsOn); got != 3 {
		t.Errorf("interview deps = %d, want 3", got)
	}

	// First scheduling round must be exactly the two async tasks.
	ready := task.Ready(tasks)
	if len(ready) != 2 {
		t.Fatalf("initial ready = %v, want research and profile", ready)
	}
}
