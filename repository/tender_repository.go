package repository

import (
	"context"
	"fmt"

	"tenderdesk-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TenderRepository handles database operations for tenders
type TenderRepository struct {
	db *pgxpool.Pool
}

// NewTenderRepository creates a new tender repository
func NewTenderRepository(db *pgxpool.Pool) *TenderRepository {
	return &TenderRepository{db: db}
}

// Create creates a new tender
func (r *TenderRepository) Create(ctx context.Context, tender *models.Tender) error {
	query := `
		INSERT INTO tenders (
			title, buyer, region, deadline, score, project_duration_days,
			status, batch_id, view
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		tender.Title,
		tender.Buyer,
		tender.Region,
		tender.Deadline,
		tender.Score,
		tender.ProjectDurationDays,
		tender.Status,
		tender.BatchID,
		tender.View,
	).Scan(&tender.ID, &tender.CreatedAt, &tender.UpdatedAt)

	return err
}

// GetByID retrieves a tender by ID
func (r *TenderRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Tender, error) {
	tender := &models.Tender{}
	query := `
		SELECT id, title, buyer, region, deadline, score, project_duration_days,
			status, batch_id, view, created_at, updated_at
		FROM tenders
		WHERE id = $1`

	err := r.db.QueryRow(ctx, query, id).Scan(
		&tender.ID,
		&tender.Title,
		&tender.Buyer,
		&tender.Region,
		&tender.Deadline,
		&tender.Score,
		&tender.ProjectDurationDays,
		&tender.Status,
		&tender.BatchID,
		&tender.View,
		&tender.CreatedAt,
		&tender.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	return tender, nil
}

// List retrieves tender summaries sorted by deadline or score.
// sortBy must already be validated by the caller.
func (r *TenderRepository) List(ctx context.Context, sortBy string) ([]*models.Tender, error) {
	orderClause := "deadline ASC NULLS LAST"
	if sortBy == "score" {
		orderClause = "score DESC"
	}

	query := fmt.Sprintf(`
		SELECT id, title, buyer, region, deadline, score, project_duration_days,
			status, batch_id, created_at, updated_at
		FROM tenders
		ORDER BY %s, created_at DESC`, orderClause)

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tenders []*models.Tender
	for rows.Next() {
		tender := &models.Tender{}
		err := rows.Scan(
			&tender.ID,
			&tender.Title,
			&tender.Buyer,
			&tender.Region,
			&tender.Deadline,
			&tender.Score,
			&tender.ProjectDurationDays,
			&tender.Status,
			&tender.BatchID,
			&tender.CreatedAt,
			&tender.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		tenders = append(tenders, tender)
	}

	return tenders, rows.Err()
}

// UpdateView replaces the tender's normalized view and extraction link.
// Views are replaced wholesale, never patched.
func (r *TenderRepository) UpdateView(ctx context.Context, id uuid.UUID, batchID uuid.UUID, view *models.TenderView) error {
	query := `
		UPDATE tenders SET
			batch_id = $2,
			view = $3,
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, batchID, view)
	return err
}

// UpdateStatus updates the lifecycle status of a tender
func (r *TenderRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status models.TenderStatus) error {
	query := `
		UPDATE tenders SET
			status = $2,
			updated_at = NOW()
		WHERE id = $1`

	_, err := r.db.Exec(ctx, query, id, status)
	return err
}
