package mcp_test

import (
	"context"
	"fmt"
	"testing"

	rfmcp "github.com/unikill066/resumeforge/internal/adapter/mcp"
	"github.com/unikill066/resumeforge/internal/domain"
	"github.com/unikill066/resumeforge/internal/domain/agent"
	"github.com/unikill066/resumeforge/internal/domain/run"
	"github.com/unikill066/resumeforge/internal/domain/task"
	"github.com/unikill066/resumeforge/internal/tool"
)

type mockCrew struct {
	agents []agent.Agent
	tasks  []task.Task
}

func (m *mockCrew) Agents() []agent.Agent  { return m.agents }
func (m *mockCrew) Tasks() []task.Task     { return m.tasks }
func (m *mockCrew) Capabilities() []string { return nil }

type mockKickoff struct {
	runs map[string]*run.Run
}

func (m *mockKickoff) StartKickoff(map[string]string) string { return "run-1" }

func (m *mockKickoff) GetRun(id string) (*run.Run, error) {
	if r, ok := m.runs[id]; ok {
		return r, nil
	}
	return nil, fmt.Errorf("run %s: %w", id, domain.ErrNotFound)
}

type echoTool struct{ name string }

func (e echoTool) Name() string        { return e.name }
func (e echoTool) Description() string { return "echo tool" }
func (e echoTool) Call(_ context.Context, input string) (string, error) {
	return "echo:" + input, nil
}

func TestNewServer(t *testing.T) {
	s := rfmcp.NewServer(rfmcp.ServerConfig{Name: "test", Version: "0.1.0"}, rfmcp.ServerDeps{})
	if s == nil {
		t.Fatal("NewServer returned nil")
	}
	if s.MCPServer() == nil {
		t.Fatal("MCPServer() returned nil")
	}
}

func TestToolRegistration(t *testing.T) {
	reg := tool.NewRegistry()
	reg.Add(echoTool{name: tool.CapScrape})
	reg.Add(echoTool{name: tool.CapSearch})

	deps := rfmcp.ServerDeps{
		Crew:     &mockCrew{},
		Kickoff:  &mockKickoff{},
		Registry: reg,
	}
	s := rfmcp.NewServer(rfmcp.ServerConfig{Name: "test", Version: "0.1.0"}, deps)

	tools := s.MCPServer().ListTools()
	expected := map[string]bool{
		"kickoff_crew":   false,
		"get_run_status": false,
		"list_agents":    false,
		"list_tasks":     false,
		tool.CapScrape:   false,
		tool.CapSearch:   false,
	}
	if len(tools) != len(expected) {
		t.Fatalf("expected %d tools, got %d", len(expected), len(tools))
	}
	for name := range tools {
		if _, ok := expected[name]; ok {
			expected[name] = true
		} else {
			t.Errorf("unexpected tool: %s", name)
		}
	}
	for name, found := range expected {
		if !found {
			t.Errorf("expected tool %q not registered", name)
		}
	}
}

func TestServerStartStop(t *testing.T) {
	s := rfmcp.NewServer(rfmcp.ServerConfig{Addr: ":0", Name: "test", Version: "0.1.0"}, rfmcp.ServerDeps{})
	if err := s.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := s.Stop(context.Background()); err != nil {
		t.Fatalf("Stop: %v", err)
	}
}
