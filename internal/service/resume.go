package service

import (
	"context"
	"fmt"

	"github.com/unikill066/resumeforge/internal/domain/resume"
	"github.com/unikill066/resumeforge/internal/port/database"
)

// ResumeService fronts the resume store for the transport adapters.
type ResumeService struct {
	store database.Store
}

// NewResumeService creates the service over the given store.
func NewResumeService(store database.Store) *ResumeService {
	return &ResumeService{store: store}
}

// Save persists a resume for the given user.
func (s *ResumeService) Save(ctx context.Context, userID string, content []byte, filename string) (*resume.Record, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("content is required")
	}
	return s.store.SaveResume(ctx, userID, content, filename)
}

// Delete removes a stored resume by ID.
func (s *ResumeService) Delete(ctx context.Context, id string) error {
	return s.store.DeleteResume(ctx, id)
}

// List returns all stored resumes.
func (s *ResumeService) List(ctx context.Context) ([]resume.Record, error) {
	return s.store.ListResumes(ctx)
}

// History returns the most recent resumes for a user.
func (s *ResumeService) History(ctx context.Context, userID string, limit int) ([]resume.Record, error) {
	if userID == "" {
		return nil, fmt.Errorf("user_id is required")
	}
	return s.store.GetResumeHistory(ctx, userID, limit)
}
