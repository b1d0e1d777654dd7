package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/unikill066/resumeforge/internal/domain"
	"github.com/unikill066/resumeforge/internal/domain/resume"
)

// Store implements database.Store using PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore creates a Store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// scannable abstracts pgx.Row and pgx.Rows for shared scan helpers.
type scannable interface {
	Scan(dest ...any) error
}

func scanResume(row scannable) (resume.Record, error) {
	var r resume.Record
	if err := row.Scan(&r.ID, &r.UserID, &r.Content, &r.Filename, &r.CreatedAt); err != nil {
		return resume.Record{}, err
	}
	return r, nil
}

func (s *Store) SaveResume(ctx context.Context, userID string, content []byte, filename string) (*resume.Record, error) {
	if filename == "" {
		filename = resume.DefaultFilename
	}
	row := s.pool.QueryRow(ctx,
		`INSERT INTO resumes (user_id, content, filename)
		 VALUES ($1, $2, $3)
		 RETURNING id, user_id, content, filename, created_at`,
		userID, content, filename)

	r, err := scanResume(row)
	if err != nil {
		return nil, fmt.Errorf("save resume: %w", err)
	}
	return &r, nil
}

func (s *Store) DeleteResume(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete resume %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("delete resume %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (s *Store) ListResumes(ctx context.Context) ([]resume.Record, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, content, filename, created_at
		 FROM resumes ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	defer rows.Close()

	records := []resume.Record{}
	for rows.Next() {
		r, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("scan resume: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

func (s *Store) GetResumeHistory(ctx context.Context, userID string, limit int) ([]resume.Record, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, user_id, content, filename, created_at
		 FROM resumes WHERE user_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("resume history for %s: %w", userID, err)
	}
	defer rows.Close()

	records := []resume.Record{}
	for rows.Next() {
		r, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("scan resume: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// GetResume fetches one record by ID.
func (s *Store) GetResume(ctx context.Context, id string) (*resume.Record, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, user_id, content, filename, created_at
		 FROM resumes WHERE id = $1`, id)

	r, err := scanResume(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("get resume %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get resume %s: %w", id, err)
	}
	return &r, nil
}
