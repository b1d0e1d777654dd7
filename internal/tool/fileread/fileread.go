// Package fileread implements the résumé reading capability: return the
// contents of one configured file.
package fileread

import (
	"context"
	"fmt"
	"os"
)

// maxFileBytes caps how much of the file is handed to the agent.
const maxFileBytes = 1 << 20

// Tool reads the configured résumé file. The registry only constructs it
// when the file exists on disk.
type Tool struct {
	path string
}

// New creates the file reading tool bound to path.
func New(path string) *Tool {
	return &Tool{path: path}
}

func (t *Tool) Name() string { return "read_resume" }

func (t *Tool) Description() string {
	return "Read the applicant's résumé file."
}

// Call returns the file contents. The input is ignored; the tool is bound
// to a single path at construction time.
func (t *Tool) Call(_ context.Context, _ string) (string, error) {
	data, err := os.ReadFile(t.path)
	if err != nil {
		return "", fmt.Errorf("read resume %s: %w", t.path, err)
	}
	if len(data) > maxFileBytes {
		data = data[:maxFileBytes]
	}
	return string(data), nil
}
