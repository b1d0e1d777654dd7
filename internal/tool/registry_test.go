package tool_test

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/unikill066/resumeforge/internal/config"
	"github.com/unikill066/resumeforge/internal/port/cache"
	"github.com/unikill066/resumeforge/internal/tool"
)

func baseConfig() *config.Config {
	cfg := config.Defaults()
	cfg.Serper.APIKey = ""
	cfg.Paths.Resume = ""
	cfg.Paths.Index = ""
	return &cfg
}

func tempFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume.md")
	if err := os.WriteFile(path, []byte("# Resume"), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func names(r *tool.Registry) []string {
	n := r.Names()
	sort.Strings(n)
	return n
}

func TestBuildAllPreconditionCombinations(t *testing.T) {
	existing := tempFile(t)
	missing := filepath.Join(t.TempDir(), "nope.pdf")

	cases := []struct {
		name   string
		apiKey string
		resume string
		index  string
		want   []string
	}{
		{"none", "", "", "", []string{tool.CapScrape}},
		{"search only", "key", "", "", []string{tool.CapScrape, tool.CapSearch}},
		{"resume only", "", existing, "", []string{tool.CapReadResume, tool.CapScrape}},
		{"index only", "", "", existing, []string{tool.CapScrape, tool.CapSemantic}},
		{"all", "key", existing, existing,
			[]string{tool.CapReadResume, tool.CapScrape, tool.CapSearch, tool.CapSemantic}},
		{"missing paths", "key", missing, missing, []string{tool.CapScrape, tool.CapSearch}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := baseConfig()
			cfg.Serper.APIKey = tc.apiKey
			cfg.Paths.Resume = tc.resume
			cfg.Paths.Index = tc.index

			reg := tool.Build(cfg, cache.Noop{})

			got := names(reg)
			if len(got) != len(tc.want) {
				t.Fatalf("capabilities = %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("capabilities = %v, want %v", got, tc.want)
				}
			}
		})
	}
}

func TestBuildMissingResumeDoesNotPanic(t *testing.T) {
	cfg := baseConfig()
	cfg.Paths.Resume = "/definitely/not/here.pdf"

	reg := tool.Build(cfg, cache.Noop{})
	if reg.Has(tool.CapReadResume) {
		t.Error("read_resume must be omitted when the file does not exist")
	}
	if !reg.Has(tool.CapScrape) {
		t.Error("scrape must always be present")
	}
}

func TestRegistryDirectoryIsNotAFile(t *testing.T) {
	cfg := baseConfig()
	cfg.Paths.Resume = t.TempDir() // a directory, not a readable resume

	reg := tool.Build(cfg, cache.Noop{})
	if reg.Has(tool.CapReadResume) {
		t.Error("read_resume must be omitted for a directory path")
	}
}
