package repository

import (
	"context"

	"tenderdesk-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BatchFileRepository handles database operations for batch files
type BatchFileRepository struct {
	db *pgxpool.Pool
}

// NewBatchFileRepository creates a new batch file repository
func NewBatchFileRepository(db *pgxpool.Pool) *BatchFileRepository {
	return &BatchFileRepository{db: db}
}

// Create creates a new batch file record
func (r *BatchFileRepository) Create(ctx context.Context, file *models.BatchFile) error {
	query := `
		INSERT INTO batch_files (
			batch_id, filename, size, status
		) VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		file.BatchID,
		file.Filename,
		file.Size,
		file.Status,
	).Scan(&file.ID, &file.CreatedAt, &file.UpdatedAt)

	return err
}

// ListByBatchID retrieves all files of a batch in upload order
func (r *BatchFileRepository) ListByBatchID(ctx context.Context, batchID uuid.UUID) ([]*models.BatchFile, error) {
	query := `
		SELECT id, batch_id, filename, size, status, error_message, created_at, updated_at
		FROM batch_files
		WHERE batch_id = $1
		ORDER BY created_at ASC, filename ASC`

	rows, err := r.db.Query(ctx, query, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var files []*models.BatchFile
	for rows.Next() {
		file := &models.BatchFile{}
		err := rows.Scan(
			&file.ID,
			&file.BatchID,
			&file.Filename,
			&file.Size,
			&file.Status,
			&file.ErrorMessage,
			&file.CreatedAt,
			&file.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	return files, rows.Err()
}

// UpdateStatus updates the status of a single batch file
func (r *BatchFileRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.BatchFileStatus, errorMessage *string) error {
	query := `
		UPDATE batch_files SET
			status = $2,
			error_message = $3,
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, status, errorMessage)
	return err
}

// Counts aggregates per-status file counts for a batch
func (r *BatchFileRepository) Counts(ctx context.Context, batchID uuid.UUID) (*models.BatchFileCounts, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'processing'),
			COUNT(*) FILTER (WHERE status = 'success'),
			COUNT(*) FILTER (WHERE status = 'failed')
		FROM batch_files
		WHERE batch_id = $1`

	counts := &models.BatchFileCounts{}
	err := r.db.QueryRow(ctx, query, batchID).Scan(
		&counts.Pending,
		&counts.Processing,
		&counts.Success,
		&counts.Failed,
	)

	if err != nil {
		return nil, err
	}

	return counts, nil
}
