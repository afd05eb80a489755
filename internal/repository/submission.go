package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/emoscan/emoscan/internal/domain"
)

// MaxListLimit is the hard cap on rows returned by ListRecent.
const MaxListLimit = 100

// PgxPool is the subset of pgxpool.Pool the repositories use; pgxmock
// implements it for tests.
type PgxPool interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SubmissionRepository persists user submissions in an append-only relation.
// Rows are never updated or deleted by the pipeline.
type SubmissionRepository struct {
	pool PgxPool
}

func NewSubmissionRepository(pool PgxPool) *SubmissionRepository {
	return &SubmissionRepository{pool: pool}
}

// Append durably writes one submission as a single-row insert; the id and
// UTC timestamp are assigned by the store. Failures map to ErrStorage.
func (r *SubmissionRepository) Append(ctx context.Context, name string, emotion domain.EmotionLabel, confidence float64, imageData []byte, feedback string) (*domain.Submission, error) {
	query := `
		INSERT INTO submissions (name, detected_emotion, emotion_confidence, image_data, feedback_message)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, submitted_at
	`

	sub := domain.Submission{
		Name:       name,
		Emotion:    emotion,
		Confidence: &confidence,
		ImageData:  imageData,
		Feedback:   &feedback,
	}

	err := r.pool.QueryRow(ctx, query,
		name,
		string(emotion),
		confidence,
		imageData,
		feedback,
	).Scan(&sub.ID, &sub.SubmittedAt)

	if err != nil {
		return nil, domain.ErrStorage.WithError(fmt.Errorf("append submission: %w", err))
	}

	sub.SubmittedAt = sub.SubmittedAt.UTC()
	return &sub, nil
}

// ListRecent returns up to limit submissions, newest first, as a metadata
// projection: image bytes are never selected. A missing relation (fresh
// deployment before migrations) yields an empty list rather than an error.
func (r *SubmissionRepository) ListRecent(ctx context.Context, limit int) ([]domain.Submission, error) {
	if limit <= 0 || limit > MaxListLimit {
		limit = MaxListLimit
	}

	query := `
		SELECT id, name, email, age, detected_emotion, emotion_confidence, submitted_at, feedback_message
		FROM submissions
		ORDER BY submitted_at DESC, id DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		if isUndefinedTable(err) {
			return []domain.Submission{}, nil
		}
		return nil, domain.ErrStorage.WithError(fmt.Errorf("list submissions: %w", err))
	}
	defer rows.Close()

	submissions := make([]domain.Submission, 0, limit)
	for rows.Next() {
		var sub domain.Submission
		if err := rows.Scan(
			&sub.ID,
			&sub.Name,
			&sub.Email,
			&sub.Age,
			&sub.Emotion,
			&sub.Confidence,
			&sub.SubmittedAt,
			&sub.Feedback,
		); err != nil {
			return nil, domain.ErrStorage.WithError(fmt.Errorf("scan submission: %w", err))
		}
		sub.SubmittedAt = sub.SubmittedAt.UTC()
		submissions = append(submissions, sub)
	}

	if err := rows.Err(); err != nil {
		return nil, domain.ErrStorage.WithError(fmt.Errorf("list submissions: %w", err))
	}

	return submissions, nil
}

// isUndefinedTable reports whether the error is Postgres 42P01.
func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42P01"
}
