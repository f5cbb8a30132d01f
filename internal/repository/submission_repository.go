// Package repository implements Postgres persistence for accepted briefs.
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/freelancehub/brief-service/internal/brief"
)

// ErrSubmissionNotFound indicates that no submission exists for the given id.
var ErrSubmissionNotFound = errors.New("submission not found")

// SubmissionRepository defines persistence operations for briefs.
type SubmissionRepository interface {
	Create(ctx context.Context, answers brief.Answers, clientIP string) (*brief.Submission, error)
	FindByID(ctx context.Context, id string) (*brief.Submission, error)
}

type submissionRepository struct {
	db  *sql.DB
	log *slog.Logger
}

// NewSubmissionRepository creates a new SQL-backed submission repository.
func NewSubmissionRepository(db *sql.DB, log *slog.Logger) SubmissionRepository {
	return &submissionRepository{
		db:  db,
		log: log,
	}
}

// Create persists a validated answer set and returns the stored submission
// with its generated identifier.
func (r *submissionRepository) Create(ctx context.Context, answers brief.Answers, clientIP string) (*brief.Submission, error) {
	const query = `
		INSERT INTO submissions (id, answers, client_ip, created_at)
		VALUES ($1, $2, $3, $4)
	`

	submission := &brief.Submission{
		ID:        uuid.NewString(),
		Answers:   answers,
		ClientIP:  clientIP,
		CreatedAt: time.Now().UTC(),
	}

	payload, err := json.Marshal(answers)
	if err != nil {
		return nil, fmt.Errorf("encode answers: %w", err)
	}

	if _, err := r.db.ExecContext(
		ctx,
		query,
		submission.ID,
		payload,
		submission.ClientIP,
		submission.CreatedAt,
	); err != nil {
		if r.log != nil {
			r.log.Error("failed to insert submission", slog.String("submission_id", submission.ID), slog.Any("error", err))
		}
		return nil, fmt.Errorf("insert submission: %w", err)
	}

	return submission, nil
}

// FindByID retrieves a stored submission by its identifier.
func (r *submissionRepository) FindByID(ctx context.Context, id string) (*brief.Submission, error) {
	const query = `
		SELECT id, answers, client_ip, created_at
		FROM submissions
		WHERE id = $1
	`

	row := r.db.QueryRowContext(ctx, query, id)

	var (
		submission brief.Submission
		payload    []byte
	)
	if err := row.Scan(&submission.ID, &payload, &submission.ClientIP, &submission.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}

		if r.log != nil {
			r.log.Error("failed to fetch submission", slog.String("submission_id", id), slog.Any("error", err))
		}
		return nil, fmt.Errorf("select submission: %w", err)
	}

	submission.Answers = brief.DefaultAnswers()
	if err := json.Unmarshal(payload, &submission.Answers); err != nil {
		return nil, fmt.Errorf("decode answers: %w", err)
	}

	return &submission, nil
}
