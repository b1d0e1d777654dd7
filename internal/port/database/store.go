// Package database defines the résumé store port (interface).
package database

import (
	"context"

	"github.com/unikill066/resumeforge/internal/domain/resume"
)

// Store is the port interface for résumé persistence.
type Store interface {
	// SaveResume stores a tailored résumé and returns the created record.
	SaveResume(ctx context.Context, userID string, content []byte, filename string) (*resume.Record, error)

	// DeleteResume removes a résumé by id.
	DeleteResume(ctx context.Context, id string) error

	// ListResumes returns all stored résumés.
	ListResumes(ctx context.Context) ([]resume.Record, error)

	// GetResumeHistory returns up to limit résumés for a user, newest first.
	GetResumeHistory(ctx context.Context, userID string, limit int) ([]resume.Record, error)
}
