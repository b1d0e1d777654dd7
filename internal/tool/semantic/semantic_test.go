package semantic_test

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/unikill066/resumeforge/internal/tool/semantic"
)

func writeIndex(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "resume.md")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCallReturnsRelevantChunks(t *testing.T) {
	doc := `# Experience

Led a team building Kubernetes operators in Go for a trading platform.

# Education

MSc in Applied Mathematics.

# Projects

Wrote a PyTorch pipeline for neuron segmentation and imaging analytics.`

	tool := semantic.New(writeIndex(t, doc))
	out, err := tool.Call(context.Background(), "Kubernetes Go experience")
	if err != nil {
		t.Fatalf("Call: %v", err)
	}

	if !strings.Contains(out, "Kubernetes operators in Go") {
		t.Errorf("relevant chunk missing:\n%s", out)
	}
	if strings.Contains(out, "Applied Mathematics") {
		t.Errorf("irrelevant chunk included:\n%s", out)
	}
}

func TestCallNoMatches(t *testing.T) {
	tool := semantic.New(writeIndex(t, "Plain text about gardening.\n\nMore gardening."))
	out, err := tool.Call(context.Background(), "quantum cryptography")
	if err != nil {
		t.Fatalf("Call: %v", err)
	}
	if !strings.Contains(out, "No relevant passages") {
		t.Errorf("out = %q", out)
	}
}

func TestCallEmptyQuery(t *testing.T) {
	tool := semantic.New(writeIndex(t, "anything"))
	if _, err := tool.Call(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty query")
	}
}

func TestCallMissingIndex(t *testing.T) {
	tool := semantic.New(filepath.Join(t.TempDir(), "gone.md"))
	if _, err := tool.Call(context.Background(), "query"); err == nil {
		t.Fatal("expected error for missing index file")
	}
}
