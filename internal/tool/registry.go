package tool

import (
	"log/slog"
	"os"

	"github.com/unikill066/resumeforge/internal/config"
	"github.com/unikill066/resumeforge/internal/port/cache"
	"github.com/unikill066/resumeforge/internal/resilience"
	"github.com/unikill066/resumeforge/internal/tool/fileread"
	"github.com/unikill066/resumeforge/internal/tool/scrape"
	"github.com/unikill066/resumeforge/internal/tool/semantic"
	"github.com/unikill066/resumeforge/internal/tool/serper"
)

// Build constructs the registry from config. Each optional capability is
// attempted; a missing precondition logs a warning and omits the
// capability. Nothing here returns an error: downstream agents simply
// receive a shorter tool list.
func Build(cfg *config.Config, c cache.Cache) *Registry {
	reg := NewRegistry()

	reg.Add(scrape.New(c,
		resilience.NewBreaker(cfg.Breaker.MaxFailures, cfg.Breaker.Timeout),
		cfg.Cache.TTL))

	if cfg.Serper.APIKey != "" {
		reg.Add(serper.New(cfg.Serper.APIKey, cfg.Serper.URL,
			resilience.NewBreaker(cfg.Breaker.MaxFailures, cfg.Breaker.Timeout)))
	} else {
		slog.Warn("SERPER_API_KEY not set, search capability disabled")
	}

	if fileExists(cfg.Paths.Resume) {
		reg.Add(fileread.New(cfg.Paths.Resume))
	} else {
		slog.Warn("resume path not provided or doesn't exist, read_resume disabled",
			"path", cfg.Paths.Resume)
	}

	if fileExists(cfg.Paths.Index) {
		reg.Add(semantic.New(cfg.Paths.Index))
	} else {
		slog.Warn("index path not provided or doesn't exist, semantic_search disabled",
			"path", cfg.Paths.Index)
	}

	slog.Info("tool registry built", "capabilities", reg.Names())
	return reg
}

func fileExists(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
