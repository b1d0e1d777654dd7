// Package mcp exposes the crew and its tools over the Model Context
// Protocol, so other agents can kick off runs and reuse the research
// capabilities directly.
package mcp

import (
	"context"
	"log/slog"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/unikill066/resumeforge/internal/domain/agent"
	"github.com/unikill066/resumeforge/internal/domain/run"
	"github.com/unikill066/resumeforge/internal/domain/task"
	"github.com/unikill066/resumeforge/internal/tool"
)

// ServerConfig holds the MCP server settings.
type ServerConfig struct {
	Addr    string
	Name    string
	Version string
}

// CrewReader exposes the assembled crew to MCP clients.
type CrewReader interface {
	Agents() []agent.Agent
	Tasks() []task.Task
	Capabilities() []string
}

// Kickoffer starts crew runs and reads them back.
type Kickoffer interface {
	StartKickoff(inputs map[string]string) string
	GetRun(id string) (*run.Run, error)
}

// ServerDeps are the injected dependencies. Nil members disable the
// corresponding tools.
type ServerDeps struct {
	Crew     CrewReader
	Kickoff  Kickoffer
	Registry *tool.Registry
}

// Server wraps an mcp-go server with the ResumeForge tool set.
type Server struct {
	cfg       ServerConfig
	deps      ServerDeps
	mcpServer *mcpserver.MCPServer
	httpSrv   *mcpserver.StreamableHTTPServer
}

// NewServer creates the MCP server and registers all tools.
func NewServer(cfg ServerConfig, deps ServerDeps) *Server {
	s := &Server{
		cfg:  cfg,
		deps: deps,
		mcpServer: mcpserver.NewMCPServer(cfg.Name, cfg.Version,
			mcpserver.WithToolCapabilities(false),
		),
	}
	s.registerTools()
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcpServer
}

// Start serves MCP over streamable HTTP on the configured address.
func (s *Server) Start() error {
	s.httpSrv = mcpserver.NewStreamableHTTPServer(s.mcpServer)
	go func() {
		slog.Info("mcp server listening", "addr", s.cfg.Addr)
		if err := s.httpSrv.Start(s.cfg.Addr); err != nil {
			slog.Error("mcp server stopped", "error", err)
		}
	}()
	return nil
}

// ServeStdio serves MCP over stdin/stdout and blocks until EOF.
func (s *Server) ServeStdio() error {
	return mcpserver.ServeStdio(s.mcpServer)
}

// Stop shuts down the HTTP listener, if one was started.
func (s *Server) Stop(ctx context.Context) error {
	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}
