package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/unikill066/resumeforge/internal/crew"
)

// registerTools registers the crew tools plus one MCP tool per
// available research capability.
func (s *Server) registerTools() {
	s.mcpServer.AddTools(
		s.kickoffTool(),
		s.getRunStatusTool(),
		s.listAgentsTool(),
		s.listTasksTool(),
	)

	if s.deps.Registry != nil {
		for _, name := range s.deps.Registry.Names() {
			s.mcpServer.AddTools(s.capabilityTool(name))
		}
	}
}

func (s *Server) kickoffTool() mcpserver.ServerTool {
	t := mcplib.NewTool("kickoff_crew",
		mcplib.WithDescription("Start a resume tailoring run for a job posting"),
		mcplib.WithString(crew.InputJobPostingURL,
			mcplib.Required(),
			mcplib.Description("URL of the job posting to tailor for"),
		),
		mcplib.WithString(crew.InputGitHubURL, mcplib.Description("Applicant GitHub profile URL")),
		mcplib.WithString(crew.InputLinkedInURL, mcplib.Description("Applicant LinkedIn profile URL")),
		mcplib.WithString(crew.InputScholarURL, mcplib.Description("Applicant Google Scholar URL")),
		mcplib.WithString(crew.InputPortfolioURL, mcplib.Description("Applicant portfolio URL")),
		mcplib.WithString(crew.InputPersonalWriteup, mcplib.Description("Free-form applicant write-up")),
	)
	return mcpserver.ServerTool{Tool: t, Handler: s.handleKickoff}
}

func (s *Server) getRunStatusTool() mcpserver.ServerTool {
	t := mcplib.NewTool("get_run_status",
		mcplib.WithDescription("Get the status and outputs of a crew run by run ID"),
		mcplib.WithString("run_id",
			mcplib.Required(),
			mcplib.Description("The run ID to check"),
		),
	)
	return mcpserver.ServerTool{Tool: t, Handler: s.handleGetRunStatus}
}

func (s *Server) listAgentsTool() mcpserver.ServerTool {
	t := mcplib.NewTool("list_agents",
		mcplib.WithDescription("List the crew's agents and their capabilities"),
	)
	return mcpserver.ServerTool{Tool: t, Handler: s.handleListAgents}
}

func (s *Server) listTasksTool() mcpserver.ServerTool {
	t := mcplib.NewTool("list_tasks",
		mcplib.WithDescription("List the crew's task graph"),
	)
	return mcpserver.ServerTool{Tool: t, Handler: s.handleListTasks}
}

// capabilityTool exposes a registry capability as a standalone MCP tool.
func (s *Server) capabilityTool(name string) mcpserver.ServerTool {
	tl, _ := s.deps.Registry.Get(name)
	t := mcplib.NewTool(name,
		mcplib.WithDescription(tl.Description()),
		mcplib.WithString("input",
			mcplib.Required(),
			mcplib.Description("Tool input: a URL for scrape, a query for search"),
		),
	)
	handler := func(ctx context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		input, _ := req.GetArguments()["input"].(string)
		out, err := tl.Call(ctx, input)
		if err != nil {
			return mcplib.NewToolResultErrorFromErr(fmt.Sprintf("%s failed", name), err), nil
		}
		return mcplib.NewToolResultText(out), nil
	}
	return mcpserver.ServerTool{Tool: t, Handler: handler}
}

func (s *Server) handleKickoff(_ context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	if s.deps.Kickoff == nil {
		return mcplib.NewToolResultError("kickoff not configured"), nil
	}

	inputs := make(map[string]string)
	for key, val := range req.GetArguments() {
		if str, ok := val.(string); ok {
			inputs[key] = str
		}
	}
	if inputs[crew.InputJobPostingURL] == "" {
		return mcplib.NewToolResultError(crew.InputJobPostingURL + " is required"), nil
	}

	id := s.deps.Kickoff.StartKickoff(inputs)
	return mcplib.NewToolResultText(fmt.Sprintf(`{"run_id":%q}`, id)), nil
}

func (s *Server) handleGetRunStatus(_ context.Context, req mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	if s.deps.Kickoff == nil {
		return mcplib.NewToolResultError("kickoff not configured"), nil
	}
	runID, ok := req.GetArguments()["run_id"].(string)
	if !ok || runID == "" {
		return mcplib.NewToolResultError("run_id is required"), nil
	}

	r, err := s.deps.Kickoff.GetRun(runID)
	if err != nil {
		return mcplib.NewToolResultErrorFromErr(fmt.Sprintf("failed to get run %s", runID), err), nil
	}
	data, err := json.Marshal(r)
	if err != nil {
		return mcplib.NewToolResultErrorFromErr("failed to marshal run", err), nil
	}
	return mcplib.NewToolResultText(string(data)), nil
}

func (s *Server) handleListAgents(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	if s.deps.Crew == nil {
		return mcplib.NewToolResultError("crew not configured"), nil
	}
	data, err := json.Marshal(s.deps.Crew.Agents())
	if err != nil {
		return mcplib.NewToolResultErrorFromErr("failed to marshal agents", err), nil
	}
	return mcplib.NewToolResultText(string(data)), nil
}

func (s *Server) handleListTasks(_ context.Context, _ mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
	if s.deps.Crew == nil {
		return mcplib.NewToolResultError("crew not configured"), nil
	}
	data, err := json.Marshal(s.deps.Crew.Tasks())
	if err != nil {
		return mcplib.NewToolResultErrorFromErr("failed to marshal tasks", err), nil
	}
	return mcplib.NewToolResultText(string(data)), nil
}
