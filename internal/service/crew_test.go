package service_test

import (
	"context"
	"errors"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/unikill066/resumeforge/internal/crew"
	"github.com/unikill066/resumeforge/internal/domain"
	"github.com/unikill066/resumeforge/internal/domain/resume"
	"github.com/unikill066/resumeforge/internal/domain/run"
	"github.com/unikill066/resumeforge/internal/port/engine"
	"github.com/unikill066/resumeforge/internal/service"
	"github.com/unikill066/resumeforge/internal/tool"
)

type fakeRunner struct {
	mu   sync.Mutex
	reqs []engine.RunRequest
	run  func(req engine.RunRequest) (*engine.RunResult, error)
}

func (f *fakeRunner) Run(_ context.Context, req engine.RunRequest) (*engine.RunResult, error) {
	f.mu.Lock()
	f.reqs = append(f.reqs, req)
	f.mu.Unlock()

	if f.run != nil {
		return f.run(req)
	}
	return &engine.RunResult{RunID: req.RunID, Outputs: map[string]string{"t": "out"}}, nil
}

type recordingStore struct {
	mu    sync.Mutex
	saved []resume.Record
}

func (s *recordingStore) SaveResume(_ context.Context, userID string, content []byte, filename string) (*resume.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec := resume.Record{ID: "rec-1", UserID: userID, Content: content, Filename: filename, CreatedAt: time.Now()}
	s.saved = append(s.saved, rec)
	return &rec, nil
}

func (s *recordingStore) DeleteResume(context.Context, string) error { return nil }

func (s *recordingStore) ListResumes(context.Context) ([]resume.Record, error) {
	return []resume.Record{}, nil
}

func (s *recordingStore) GetResumeHistory(context.Context, string, int) ([]resume.Record, error) {
	return []resume.Record{}, nil
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func countingBuild(n *atomic.Int32) service.BuildFunc {
	return func() *service.Bundle {
		n.Add(1)
		tools := tool.NewRegistry()
		return &service.Bundle{
			Agents: crew.BuildAgents(tools.Names()),
			Tasks:  crew.BuildTasks(),
			Tools:  tools,
		}
	}
}

func TestCrewBuiltAtMostOnce(t *testing.T) {
	var builds atomic.Int32
	svc := service.NewCrewService(countingBuild(&builds), &fakeRunner{}, nil, nil)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = svc.Agents()
			_ = svc.Tasks()
			_, _ = svc.Kickoff(context.Background(), map[string]string{})
		}()
	}
	wg.Wait()

	if got := builds.Load(); got != 1 {
		t.Fatalf("crew built %d times, want 1", got)
	}
}

func TestKickoffRecordsCompletedRun(t *testing.T) {
	var builds atomic.Int32
	runner := &fakeRunner{run: func(req engine.RunRequest) (*engine.RunResult, error) {
		return &engine.RunResult{
			RunID:   req.RunID,
			Outputs: map[string]string{crew.TaskStrategy: "# Resume"},
		}, nil
	}}
	svc := service.NewCrewService(countingBuild(&builds), runner, nil, nil)

	inputs := map[string]string{crew.InputJobPostingURL: "https://example.com/job"}
	r, err := svc.Kickoff(context.Background(), inputs)
	if err != nil {
		t.Fatalf("Kickoff: %v", err)
	}

	if r.Status != run.StatusCompleted {
		t.Errorf("Status = %s, want completed", r.Status)
	}
	if r.Outputs[crew.TaskStrategy] != "# Resume" {
		t.Errorf("Outputs = %v", r.Outputs)
	}
	if r.FinishedAt.IsZero() {
		t.Error("FinishedAt not set")
	}

	got, err := svc.GetRun(r.ID)
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if got.Status != run.StatusCompleted {
		t.Errorf("tracked status = %s", got.Status)
	}
}

func TestKickoffForwardsInputsToRunner(t *testing.T) {
	var builds atomic.Int32
	runner := &fakeRunner{}
	svc := service.NewCrewService(countingBuild(&builds), runner, nil, nil)

	inputs := map[string]string{crew.InputGitHubURL: "https://github.com/unikill066"}
	if _, err := svc.Kickoff(context.Background(), inputs); err != nil {
		t.Fatalf("Kickoff: %v", err)
	}

	if len(runner.reqs) != 1 {
		t.Fatalf("runner calls = %d, want 1", len(runner.reqs))
	}
	req := runner.reqs[0]
	if req.Inputs[crew.InputGitHubURL] != "https://github.com/unikill066" {
		t.Errorf("inputs not forwarded: %v", req.Inputs)
	}
	if len(req.Tasks) != 4 || len(req.Agents) != 4 {
		t.Errorf("bundle = %d tasks, %d agents; want 4 and 4", len(req.Tasks), len(req.Agents))
	}
}

func TestKickoffRunnerErrorMarksRunFailed(t *testing.T) {
	var builds atomic.Int32
	runner := &fakeRunner{run: func(engine.RunRequest) (*engine.RunResult, error) {
		return nil, errors.New("engine exploded")
	}}
	svc := service.NewCrewService(countingBuild(&builds), runner, nil, nil)

	_, err := svc.Kickoff(context.Background(), map[string]string{})
	if err == nil {
		t.Fatal("expected error")
	}

	runs := svc.ListRuns()
	if len(runs) != 1 {
		t.Fatalf("tracked runs = %d, want 1", len(runs))
	}
	if runs[0].Status != run.StatusFailed {
		t.Errorf("Status = %s, want failed", runs[0].Status)
	}
	if runs[0].Error == "" {
		t.Error("Error not recorded")
	}
}

func TestKickoffPersistsTailoredResume(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/" + crew.OutputResume
	writeFile(t, path, "# Tailored")

	var builds atomic.Int32
	runner := &fakeRunner{run: func(req engine.RunRequest) (*engine.RunResult, error) {
		return &engine.RunResult{RunID: req.RunID, Files: []string{path}}, nil
	}}
	store := &recordingStore{}
	svc := service.NewCrewService(countingBuild(&builds), runner, nil, store)

	if _, err := svc.Kickoff(context.Background(), map[string]string{"user_id": "u-9"}); err != nil {
		t.Fatalf("Kickoff: %v", err)
	}

	if len(store.saved) != 1 {
		t.Fatalf("saved = %d records, want 1", len(store.saved))
	}
	if store.saved[0].UserID != "u-9" || string(store.saved[0].Content) != "# Tailored" {
		t.Errorf("saved = %+v", store.saved[0])
	}
}

func TestGetRunUnknownID(t *testing.T) {
	var builds atomic.Int32
	svc := service.NewCrewService(countingBuild(&builds), &fakeRunner{}, nil, nil)

	_, err := svc.GetRun("nope")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}
