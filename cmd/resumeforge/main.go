// Command resumeforge tailors a resume to a job posting with a
// four-agent crew. It runs once from the command line by default, or
// serves the crew over HTTP and MCP.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"gopkg.in/yaml.v3"

	"github.com/unikill066/resumeforge/internal/adapter/dagrun"
	rfhttp "github.com/unikill066/resumeforge/internal/adapter/http"
	"github.com/unikill066/resumeforge/internal/adapter/llm"
	rfmcp "github.com/unikill066/resumeforge/internal/adapter/mcp"
	rfnats "github.com/unikill066/resumeforge/internal/adapter/nats"
	"github.com/unikill066/resumeforge/internal/adapter/natskv"
	rfotel "github.com/unikill066/resumeforge/internal/adapter/otel"
	"github.com/unikill066/resumeforge/internal/adapter/postgres"
	"github.com/unikill066/resumeforge/internal/adapter/ristretto"
	"github.com/unikill066/resumeforge/internal/adapter/stubstore"
	"github.com/unikill066/resumeforge/internal/adapter/tiered"
	"github.com/unikill066/resumeforge/internal/adapter/ws"
	"github.com/unikill066/resumeforge/internal/config"
	"github.com/unikill066/resumeforge/internal/crew"
	"github.com/unikill066/resumeforge/internal/domain/run"
	"github.com/unikill066/resumeforge/internal/logger"
	"github.com/unikill066/resumeforge/internal/port/broadcast"
	"github.com/unikill066/resumeforge/internal/port/cache"
	"github.com/unikill066/resumeforge/internal/port/database"
	"github.com/unikill066/resumeforge/internal/resilience"
	"github.com/unikill066/resumeforge/internal/service"
	"github.com/unikill066/resumeforge/internal/tool"
)

func main() {
	args := os.Args[1:]
	if len(args) > 0 && args[0] == "admin" {
		if err := runAdmin(args[1:]); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	mode := "run"
	if len(args) > 0 && (args[0] == "run" || args[0] == "serve" || args[0] == "mcp") {
		mode = args[0]
		args = args[1:]
	}

	fs := flag.NewFlagSet(mode, flag.ExitOnError)
	configPath := fs.String("config", "", "path to resumeforge.yaml (optional)")
	inputsPath := fs.String("inputs", "", "path to a YAML file of kickoff inputs (run mode)")
	mcpAddr := fs.String("mcp-addr", "", "also serve MCP over HTTP on this address (serve mode)")
	_ = fs.Parse(args)

	cfg, err := config.LoadFrom(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(logger.New(logger.Options{
		Level:   cfg.Logging.Level,
		Service: cfg.Logging.Service,
	}))

	var exec func() error
	switch mode {
	case "serve":
		exec = func() error { return runServe(cfg, *mcpAddr) }
	case "mcp":
		exec = func() error { return runMCPStdio(cfg) }
	default:
		exec = func() error { return runOnce(cfg, *inputsPath) }
	}

	if err := exec(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

// stack is the wired application core shared by all modes.
type stack struct {
	cfg      *config.Config
	llm      *llm.Client
	breaker  *resilience.Breaker
	registry *tool.Registry
	crews    *service.CrewService
	resumes  *service.ResumeService
	natsConn *rfnats.Conn
	shutdown []func()
}

func (s *stack) close() {
	for i := len(s.shutdown) - 1; i >= 0; i-- {
		s.shutdown[i]()
	}
}

// buildStack wires caches, tools, the engine and the services.
// extra broadcasters (the WebSocket hub in serve mode) are fanned in
// alongside NATS when it is configured.
func buildStack(ctx context.Context, cfg *config.Config, extra ...broadcast.Broadcaster) (*stack, error) {
	s := &stack{cfg: cfg}

	otelShutdown, err := rfotel.Init(ctx, cfg.Logging.Service, cfg.Otel.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("otel: %w", err)
	}
	s.shutdown = append(s.shutdown, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := otelShutdown(ctx); err != nil {
			slog.Warn("otel shutdown", "error", err)
		}
	})

	metrics, err := rfotel.NewMetrics()
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	// Tool result cache: L1 always, tiered over NATS KV when configured.
	l1, err := ristretto.New(int(cfg.Cache.L1MaxSizeMB))
	if err != nil {
		return nil, fmt.Errorf("l1 cache: %w", err)
	}
	s.shutdown = append(s.shutdown, l1.Close)
	var toolCache cache.Cache = l1

	broadcasters := broadcast.Multi{}
	for _, b := range extra {
		broadcasters = append(broadcasters, b)
	}

	if cfg.NATS.URL != "" {
		conn, err := rfnats.Connect(ctx, cfg.NATS.URL)
		if err != nil {
			return nil, fmt.Errorf("nats: %w", err)
		}
		s.natsConn = conn
		s.shutdown = append(s.shutdown, conn.Close)
		broadcasters = append(broadcasters, conn)

		l2, err := natskv.Open(ctx, conn.Raw(), cfg.NATS.CacheBucket, cfg.NATS.CacheTTL)
		if err != nil {
			return nil, fmt.Errorf("nats kv: %w", err)
		}
		toolCache = tiered.New(l1, l2, cfg.Cache.TTL)
	}

	s.registry = tool.Build(cfg, toolCache)

	s.breaker = resilience.NewBreaker(cfg.Breaker.MaxFailures, cfg.Breaker.Timeout)
	s.llm = llm.NewClient(cfg.LLM.URL, cfg.LLM.APIKey, cfg.LLM.Timeout)
	s.llm.SetBreaker(s.breaker)

	var hub broadcast.Broadcaster = broadcast.Noop{}
	if len(broadcasters) > 0 {
		hub = broadcasters
	}

	runner := dagrun.New(s.llm, hub, metrics, dagrun.Options{
		Model:         cfg.LLM.Model,
		MaxTokens:     cfg.LLM.MaxTokens,
		MaxParallel:   cfg.Crew.MaxParallel,
		TaskTimeout:   cfg.Crew.TaskTimeout,
		ContextBudget: cfg.Crew.ContextBudget,
		PromptReserve: cfg.Crew.PromptReserve,
		OutputDir:     cfg.Paths.OutputDir,
	})

	var store database.Store
	if cfg.Postgres.DSN != "" {
		pool, err := postgres.NewPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("postgres: %w", err)
		}
		s.shutdown = append(s.shutdown, pool.Close)
		if err := postgres.RunMigrations(ctx, cfg.Postgres.DSN); err != nil {
			return nil, fmt.Errorf("migrations: %w", err)
		}
		store = postgres.NewStore(pool)
		slog.Info("postgres connected")
	} else {
		store = stubstore.New()
	}

	s.crews = service.NewCrewService(service.DefaultBuild(s.registry), runner, hub, store)
	s.resumes = service.NewResumeService(store)
	return s, nil
}

// runOnce kicks off one crew run from the command line and reports the
// files it wrote.
func runOnce(cfg *config.Config, inputsPath string) error {
	ctx := context.Background()

	s, err := buildStack(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.close()

	inputs, err := loadInputs(inputsPath)
	if err != nil {
		return err
	}

	r, err := s.crews.Kickoff(ctx, inputs)
	if err != nil {
		return err
	}

	for name, out := range r.Outputs {
		slog.Info("task output", "task", name, "chars", len(out))
	}
	for _, f := range r.Files {
		fmt.Println(f)
	}
	if r.Status != run.StatusCompleted {
		return fmt.Errorf("run %s finished %s: %s", r.ID, r.Status, r.Error)
	}
	return nil
}

// loadInputs reads the kickoff inputs YAML, a flat string map.
func loadInputs(path string) (map[string]string, error) {
	inputs := map[string]string{}
	if path == "" {
		return inputs, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read inputs: %w", err)
	}
	if err := yaml.Unmarshal(data, &inputs); err != nil {
		return nil, fmt.Errorf("parse inputs: %w", err)
	}
	if inputs[crew.InputJobPostingURL] == "" {
		slog.Warn("no job_posting_url in inputs, research task will lack a target")
	}
	return inputs, nil
}

// runServe exposes the crew over HTTP, WebSocket and optionally MCP.
func runServe(cfg *config.Config, mcpAddr string) error {
	ctx := context.Background()

	hub := ws.NewHub()
	s, err := buildStack(ctx, cfg, hub)
	if err != nil {
		return err
	}
	defer s.close()

	baseURL := "http://localhost:" + cfg.Server.Port
	handlers := rfhttp.NewHandlers(s.crews, s.resumes, baseURL, func() map[string]string {
		components := map[string]string{"status": "ok", "llm": "ok", "breaker": s.breaker.State()}
		if ok, err := s.llm.Health(ctx); !ok || err != nil {
			components["llm"] = "unreachable"
			components["status"] = "degraded"
		}
		return components
	})

	r := chi.NewRouter()
	r.Use(rfhttp.CORS(cfg.Server.CORSOrigin))
	r.Use(rfhttp.Logger)
	r.Use(rfhttp.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	rfhttp.MountRoutes(r, handlers, cfg.Server.APIKeyHash, hub.HandleWS)

	if mcpAddr != "" {
		mcpSrv := rfmcp.NewServer(
			rfmcp.ServerConfig{Addr: mcpAddr, Name: "resumeforge", Version: "0.1.0"},
			rfmcp.ServerDeps{Crew: s.crews, Kickoff: s.crews, Registry: s.registry},
		)
		if err := mcpSrv.Start(); err != nil {
			return fmt.Errorf("mcp: %w", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = mcpSrv.Stop(ctx)
		}()
	}

	addr := ":" + cfg.Server.Port
	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		slog.Info("starting server", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-done
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// runMCPStdio serves the crew over MCP on stdin/stdout.
func runMCPStdio(cfg *config.Config) error {
	ctx := context.Background()

	s, err := buildStack(ctx, cfg)
	if err != nil {
		return err
	}
	defer s.close()

	mcpSrv := rfmcp.NewServer(
		rfmcp.ServerConfig{Name: "resumeforge", Version: "0.1.0"},
		rfmcp.ServerDeps{Crew: s.crews, Kickoff: s.crews, Registry: s.registry},
	)
	return mcpSrv.ServeStdio()
}
