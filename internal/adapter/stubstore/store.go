// Package stubstore is the default persistence adapter, used when no
// database is configured. Saves echo their inputs back, listings are
// always empty and deletes always succeed. Nothing is retained.
package stubstore

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/unikill066/resumeforge/internal/domain/resume"
)

// Store implements database.Store without any backing storage.
type Store struct{}

// New creates the stub store and logs that persistence is disabled.
func New() *Store {
	slog.Warn("database not configured, resume persistence disabled")
	return &Store{}
}

// SaveResume echoes the inputs back as a record. Nothing is stored.
func (s *Store) SaveResume(_ context.Context, userID string, content []byte, filename string) (*resume.Record, error) {
	if filename == "" {
		filename = resume.DefaultFilename
	}
	rec := &resume.Record{
		ID:        uuid.NewString(),
		UserID:    userID,
		Content:   content,
		Filename:  filename,
		CreatedAt: time.Now().UTC(),
	}
	slog.Info("resume save skipped, no database", "user_id", userID, "filename", filename, "bytes", len(content))
	return rec, nil
}

// DeleteResume always succeeds.
func (s *Store) DeleteResume(_ context.Context, id string) error {
	slog.Info("resume delete skipped, no database", "id", id)
	return nil
}

// ListResumes always returns an empty list.
func (s *Store) ListResumes(context.Context) ([]resume.Record, error) {
	return []resume.Record{}, nil
}

// GetResumeHistory always returns an empty list.
func (s *Store) GetResumeHistory(context.Context, string, int) ([]resume.Record, error) {
	return []resume.Record{}, nil
}
