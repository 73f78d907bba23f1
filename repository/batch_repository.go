package repository

import (
	"context"
	"time"

	"tenderdesk-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// BatchRepository handles database operations for extraction batches
type BatchRepository struct {
	db *pgxpool.Pool
}

// NewBatchRepository creates a new batch repository
func NewBatchRepository(db *pgxpool.Pool) *BatchRepository {
	return &BatchRepository{db: db}
}

// Create creates a new batch
func (r *BatchRepository) Create(ctx context.Context, batch *models.Batch) error {
	query := `
		INSERT INTO batches (
			run_id, status, filename, archive_path, total_files
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		batch.RunID,
		batch.Status,
		batch.Filename,
		batch.ArchivePath,
		batch.TotalFiles,
	).Scan(&batch.ID, &batch.CreatedAt, &batch.UpdatedAt)

	return err
}

// GetByID retrieves a batch by ID
func (r *BatchRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Batch, error) {
	batch := &models.Batch{}
	query := `
		SELECT id, run_id, status, filename, archive_path, total_files,
			ui_json, tender_id, error_message, created_at, updated_at, completed_at
		FROM batches
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&batch.ID,
		&batch.RunID,
		&batch.Status,
		&batch.Filename,
		&batch.ArchivePath,
		&batch.TotalFiles,
		&batch.UIJSON,
		&batch.TenderID,
		&batch.ErrorMessage,
		&batch.CreatedAt,
		&batch.UpdatedAt,
		&batch.CompletedAt,
	)

	if err != nil {
		return nil, err
	}

	if batch.UIJSON == nil {
		batch.UIJSON = make(models.RawBundle)
	}

	return batch, nil
}

// UpdateStatus updates the status of a batch
func (r *BatchRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.BatchStatus) error {
	query := `
		UPDATE batches SET
			status = $2,
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, status)
	return err
}

// Complete stores the merged extraction result and marks the batch with its
// terminal status.
func (r *BatchRepository) Complete(ctx context.Context, id uuid.UUID, status models.BatchStatus, uiJSON models.RawBundle, tenderID uuid.UUID) error {
	now := time.Now()
	query := `
		UPDATE batches SET
			status = $2,
			ui_json = $3,
			tender_id = $4,
			completed_at = $5,
			updated_at = $5
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, status, uiJSON, tenderID, now)
	return err
}

// Fail marks a batch as failed
func (r *BatchRepository) Fail(ctx context.Context, id uuid.UUID, errorMessage string) error {
	now := time.Now()
	query := `
		UPDATE batches SET
			status = $2,
			error_message = $3,
			completed_at = $4,
			updated_at = $4
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, models.BatchStatusFailed, errorMessage, now)
	return err
}
