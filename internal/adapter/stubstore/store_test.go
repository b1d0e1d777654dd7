package stubstore_test

import (
	"context"
	"testing"

	"github.com/unikill066/resumeforge/internal/adapter/stubstore"
	"github.com/unikill066/resumeforge/internal/domain/resume"
)

func TestSaveResumeEchoesInputs(t *testing.T) {
	s := stubstore.New()

	rec, err := s.SaveResume(context.Background(), "user-1", []byte("# Resume"), "tailored_resume.md")
	if err != nil {
		t.Fatalf("SaveResume: %v", err)
	}
	if rec.UserID != "user-1" {
		t.Errorf("UserID = %q, want user-1", rec.UserID)
	}
	if string(rec.Content) != "# Resume" {
		t.Errorf("Content = %q", rec.Content)
	}
	if rec.Filename != "tailored_resume.md" {
		t.Errorf("Filename = %q", rec.Filename)
	}
	if rec.ID == "" {
		t.Error("ID is empty")
	}
	if rec.CreatedAt.IsZero() {
		t.Error("CreatedAt is zero")
	}
}

func TestSaveResumeDefaultsFilename(t *testing.T) {
	rec, err := stubstore.New().SaveResume(context.Background(), "u", nil, "")
	if err != nil {
		t.Fatalf("SaveResume: %v", err)
	}
	if rec.Filename != resume.DefaultFilename {
		t.Errorf("Filename = %q, want %q", rec.Filename, resume.DefaultFilename)
	}
}

func TestListResumesAlwaysEmpty(t *testing.T) {
	s := stubstore.New()
	ctx := context.Background()

	if _, err := s.SaveResume(ctx, "u", []byte("x"), "a.md"); err != nil {
		t.Fatalf("SaveResume: %v", err)
	}

	got, err := s.ListResumes(ctx)
	if err != nil {
		t.Fatalf("ListResumes: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("ListResumes returned %d records, want 0", len(got))
	}

	hist, err := s.GetResumeHistory(ctx, "u", 10)
	if err != nil {
		t.Fatalf("GetResumeHistory: %v", err)
	}
	if len(hist) != 0 {
		t.Errorf("GetResumeHistory returned %d records, want 0", len(hist))
	}
}

func TestDeleteResumeAlwaysSucceeds(t *testing.T) {
	if err := stubstore.New().DeleteResume(context.Background(), "no-such-id"); err != nil {
		t.Fatalf("DeleteResume: %v", err)
	}
}
