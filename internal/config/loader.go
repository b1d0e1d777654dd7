package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/unikill066/resumeforge/internal/domain"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "resumeforge.yaml"

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// The YAML file is optional; a missing file is not an error.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigFile)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. The YAML file is optional; an empty
// path falls back to DefaultConfigFile.
func LoadFrom(yamlPath string) (*Config, error) {
	if yamlPath == "" {
		yamlPath = DefaultConfigFile
	}
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

// loadYAML reads the YAML file and unmarshals it over cfg.
// Returns nil if the file does not exist.
func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is validated by caller
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}

	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "RESUMEFORGE_PORT")
	setString(&cfg.Server.CORSOrigin, "RESUMEFORGE_CORS_ORIGIN")
	setString(&cfg.Server.APIKeyHash, "RESUMEFORGE_API_KEY_HASH")
	setString(&cfg.Logging.Level, "RESUMEFORGE_LOG_LEVEL")
	setString(&cfg.Logging.Service, "RESUMEFORGE_LOG_SERVICE")
	setString(&cfg.LLM.URL, "LLM_URL")
	setString(&cfg.LLM.APIKey, "LLM_API_KEY")
	setString(&cfg.LLM.Model, "RESUMEFORGE_LLM_MODEL")
	setInt(&cfg.LLM.MaxTokens, "RESUMEFORGE_LLM_MAX_TOKENS")
	setDuration(&cfg.LLM.Timeout, "RESUMEFORGE_LLM_TIMEOUT")
	setString(&cfg.Serper.APIKey, "SERPER_API_KEY")
	setString(&cfg.Serper.URL, "RESUMEFORGE_SERPER_URL")
	setString(&cfg.Paths.Resume, "RESUMEFORGE_RESUME_PATH")
	setString(&cfg.Paths.Index, "RESUMEFORGE_INDEX_PATH")
	setString(&cfg.Paths.OutputDir, "RESUMEFORGE_OUTPUT_DIR")
	setInt(&cfg.Crew.MaxParallel, "RESUMEFORGE_MAX_PARALLEL")
	setDuration(&cfg.Crew.TaskTimeout, "RESUMEFORGE_TASK_TIMEOUT")
	setInt(&cfg.Crew.ContextBudget, "RESUMEFORGE_CONTEXT_BUDGET")
	setInt(&cfg.Crew.PromptReserve, "RESUMEFORGE_PROMPT_RESERVE")
	setString(&cfg.Postgres.DSN, "DATABASE_URL")
	setInt32(&cfg.Postgres.MaxConns, "RESUMEFORGE_PG_MAX_CONNS")
	setInt32(&cfg.Postgres.MinConns, "RESUMEFORGE_PG_MIN_CONNS")
	setDuration(&cfg.Postgres.MaxConnLifetime, "RESUMEFORGE_PG_MAX_CONN_LIFETIME")
	setDuration(&cfg.Postgres.MaxConnIdleTime, "RESUMEFORGE_PG_MAX_CONN_IDLE_TIME")
	setDuration(&cfg.Postgres.HealthCheck, "RESUMEFORGE_PG_HEALTH_CHECK")
	setString(&cfg.NATS.URL, "NATS_URL")
	setString(&cfg.NATS.CacheBucket, "RESUMEFORGE_CACHE_BUCKET")
	setDuration(&cfg.NATS.CacheTTL, "RESUMEFORGE_CACHE_L2_TTL")
	setInt64(&cfg.Cache.L1MaxSizeMB, "RESUMEFORGE_CACHE_L1_SIZE_MB")
	setDuration(&cfg.Cache.TTL, "RESUMEFORGE_CACHE_TTL")
	setInt(&cfg.Breaker.MaxFailures, "RESUMEFORGE_BREAKER_MAX_FAILURES")
	setDuration(&cfg.Breaker.Timeout, "RESUMEFORGE_BREAKER_TIMEOUT")
	setString(&cfg.Otel.Endpoint, "RESUMEFORGE_OTLP_ENDPOINT")
}

// validate checks that required fields are set.
func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.LLM.URL == "" {
		return fmt.Errorf("llm.url: %w", domain.ErrNoLLM)
	}
	if cfg.LLM.Model == "" {
		return errors.New("llm.model is required")
	}
	if cfg.Crew.MaxParallel < 1 {
		return errors.New("crew.max_parallel must be >= 1")
	}
	if cfg.Crew.ContextBudget < 1 {
		return errors.New("crew.context_budget must be >= 1")
	}
	if cfg.Cache.L1MaxSizeMB < 1 {
		return errors.New("cache.l1_max_size_mb must be >= 1")
	}
	if cfg.Breaker.MaxFailures < 1 {
		return errors.New("breaker.max_failures must be >= 1")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt32(dst *int32, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			*dst = int32(n)
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
