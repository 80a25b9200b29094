package generatedresumes

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const selectColumns = `id, user_id, variant_id, file_name, storage_key, mime_type, size_bytes, created_at`

// Create inserts a generated resume.
func (r *PGRepo) Create(ctx context.Context, resume GeneratedResume) error {
	const query = `
INSERT INTO generated_resumes (
    id, user_id, variant_id, file_name, storage_key, mime_type, size_bytes, created_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.DB.ExecContext(ctx, query,
		resume.ID,
		resume.UserID,
		resume.VariantID,
		resume.FileName,
		resume.StorageKey,
		resume.MimeType,
		resume.SizeBytes,
		resume.CreatedAt,
	)
	return err
}

// GetByID returns a generated resume by ID for a user. IDs that are not
// UUIDs cannot exist in the table and report ErrNotFound without a query.
func (r *PGRepo) GetByID(ctx context.Context, userID, generatedResumeID string) (GeneratedResume, error) {
	if _, err := uuid.Parse(generatedResumeID); err != nil {
		return GeneratedResume{}, ErrNotFound
	}
	const query = `
SELECT ` + selectColumns + `
FROM generated_resumes
WHERE id = $1 AND deleted_at IS NULL
LIMIT 1`
	resume, err := scanResume(r.DB.QueryRowContext(ctx, query, generatedResumeID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return GeneratedResume{}, ErrNotFound
		}
		return GeneratedResume{}, err
	}
	if resume.UserID != userID {
		return GeneratedResume{}, ErrForbidden
	}
	return resume, nil
}

// ListByUser lists generated resumes ordered newest-first.
func (r *PGRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]GeneratedResume, error) {
	limit, offset = clampPage(limit, offset)
	const query = `
SELECT ` + selectColumns + `
FROM generated_resumes
WHERE user_id = $1 AND deleted_at IS NULL
ORDER BY created_at DESC
LIMIT $2 OFFSET $3`

	rows, err := r.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []GeneratedResume{}
	for rows.Next() {
		resume, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, resume)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResume(row rowScanner) (GeneratedResume, error) {
	var resume GeneratedResume
	err := row.Scan(
		&resume.ID,
		&resume.UserID,
		&resume.VariantID,
		&resume.FileName,
		&resume.StorageKey,
		&resume.MimeType,
		&resume.SizeBytes,
		&resume.CreatedAt,
	)
	return resume, err
}

var _ Repo = (*PGRepo)(nil)
