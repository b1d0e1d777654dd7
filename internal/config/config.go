// Package config provides hierarchical configuration loading for ResumeForge.
// Precedence: defaults < YAML file < environment variables.
package config

import "time"

// Config holds all runtime configuration for the ResumeForge service.
type Config struct {
	Server   Server   `yaml:"server"`
	Logging  Logging  `yaml:"logging"`
	LLM      LLM      `yaml:"llm"`
	Serper   Serper   `yaml:"serper"`
	Paths    Paths    `yaml:"paths"`
	Crew     Crew     `yaml:"crew"`
	Postgres Postgres `yaml:"postgres"`
	NATS     NATS     `yaml:"nats"`
	Cache    Cache    `yaml:"cache"`
	Breaker  Breaker  `yaml:"breaker"`
	Otel     Otel     `yaml:"otel"`
}

// Server holds HTTP server configuration (serve mode only).
type Server struct {
	Port       string `yaml:"port"`
	CORSOrigin string `yaml:"cors_origin"`
	APIKeyHash string `yaml:"api_key_hash"` // bcrypt hash; empty disables auth
}

// Logging holds structured logging configuration.
type Logging struct {
	Level   string `yaml:"level"`
	Service string `yaml:"service"`
}

// LLM holds the OpenAI-compatible proxy configuration the crew runs against.
type LLM struct {
	URL       string        `yaml:"url"`
	APIKey    string        `yaml:"api_key"`
	Model     string        `yaml:"model"`
	MaxTokens int           `yaml:"max_tokens"`
	Timeout   time.Duration `yaml:"timeout"`
}

// Serper holds the Serper.dev web search configuration.
// An empty API key disables the search capability.
type Serper struct {
	APIKey string `yaml:"api_key"`
	URL    string `yaml:"url"`
}

// Paths holds filesystem inputs and the output directory.
// Resume and Index are optional; missing files disable their capabilities.
type Paths struct {
	Resume    string `yaml:"resume"`
	Index     string `yaml:"index"`
	OutputDir string `yaml:"output_dir"`
}

// Crew holds task graph execution configuration.
type Crew struct {
	MaxParallel   int           `yaml:"max_parallel"`
	TaskTimeout   time.Duration `yaml:"task_timeout"`
	ContextBudget int           `yaml:"context_budget"` // token budget per task briefing
	PromptReserve int           `yaml:"prompt_reserve"` // tokens reserved for prompt+output
}

// Postgres holds the optional resume store configuration.
// An empty DSN selects the stub store.
type Postgres struct {
	DSN             string        `yaml:"dsn"`
	MaxConns        int32         `yaml:"max_conns"`
	MinConns        int32         `yaml:"min_conns"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time"`
	HealthCheck     time.Duration `yaml:"health_check"`
}

// NATS holds the optional JetStream configuration for event publishing
// and the L2 result cache. An empty URL disables both.
type NATS struct {
	URL         string        `yaml:"url"`
	CacheBucket string        `yaml:"cache_bucket"`
	CacheTTL    time.Duration `yaml:"cache_ttl"`
}

// Cache holds the in-process tool result cache configuration.
type Cache struct {
	L1MaxSizeMB int64         `yaml:"l1_max_size_mb"`
	TTL         time.Duration `yaml:"ttl"`
}

// Breaker holds circuit breaker configuration for outbound HTTP calls.
type Breaker struct {
	MaxFailures int           `yaml:"max_failures"`
	Timeout     time.Duration `yaml:"timeout"`
}

// Otel holds OpenTelemetry export configuration.
// An empty endpoint disables the OTLP exporters.
type Otel struct {
	Endpoint string `yaml:"endpoint"`
}

// Defaults returns a Config with sensible default values for local use.
func Defaults() Config {
	return Config{
		Server: Server{
			Port:       "8080",
			CORSOrigin: "http://localhost:3000",
		},
		Logging: Logging{
			Level:   "info",
			Service: "resumeforge",
		},
		LLM: LLM{
			URL:       "http://localhost:4000",
			Model:     "openai/gpt-4o-mini",
			MaxTokens: 4096,
			Timeout:   2 * time.Minute,
		},
		Serper: Serper{
			URL: "https://google.serper.dev/search",
		},
		Paths: Paths{
			Resume:    "data/resume.md",
			Index:     "data/resume.md",
			OutputDir: ".",
		},
		Crew: Crew{
			MaxParallel:   2,
			TaskTimeout:   5 * time.Minute,
			ContextBudget: 4096,
			PromptReserve: 1024,
		},
		Postgres: Postgres{
			MaxConns:        10,
			MinConns:        1,
			MaxConnLifetime: time.Hour,
			MaxConnIdleTime: 10 * time.Minute,
			HealthCheck:     time.Minute,
		},
		NATS: NATS{
			CacheBucket: "resumeforge-cache",
			CacheTTL:    24 * time.Hour,
		},
		Cache: Cache{
			L1MaxSizeMB: 64,
			TTL:         time.Hour,
		},
		Breaker: Breaker{
			MaxFailures: 5,
			Timeout:     30 * time.Second,
		},
	}
}
