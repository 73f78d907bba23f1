package repository

import (
	"context"

	"tenderdesk-backend/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SubmissionRepository handles database operations for submissions
type SubmissionRepository struct {
	db *pgxpool.Pool
}

// NewSubmissionRepository creates a new submission repository
func NewSubmissionRepository(db *pgxpool.Pool) *SubmissionRepository {
	return &SubmissionRepository{db: db}
}

// Upsert creates or replaces the submission of a tender. One submission per
// tender; saving again overwrites the editable fields.
func (r *SubmissionRepository) Upsert(ctx context.Context, submission *models.Submission) error {
	query := `
		INSERT INTO submissions (
			tender_id, profile, answers, documents, must_criteria, pricing
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (tender_id) DO UPDATE SET
			profile = EXCLUDED.profile,
			answers = EXCLUDED.answers,
			documents = EXCLUDED.documents,
			must_criteria = EXCLUDED.must_criteria,
			pricing = EXCLUDED.pricing,
			updated_at = NOW()
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(
		ctx, query,
		submission.TenderID,
		submission.Profile,
		submission.Answers,
		submission.Documents,
		submission.MustCriteria,
		submission.Pricing,
	).Scan(&submission.ID, &submission.CreatedAt, &submission.UpdatedAt)

	return err
}

// GetByTenderID retrieves the submission of a tender
func (r *SubmissionRepository) GetByTenderID(ctx context.Context, tenderID uuid.UUID) (*models.Submission, error) {
	submission := &models.Submission{}
	query := `
		SELECT id, tender_id, profile, answers, documents, must_criteria,
			pricing, generated_document, created_at, updated_at
		FROM submissions
		WHERE tender_id = $1`

	err := r.db.QueryRow(ctx, query, tenderID).Scan(
		&submission.ID,
		&submission.TenderID,
		&submission.Profile,
		&submission.Answers,
		&submission.Documents,
		&submission.MustCriteria,
		&submission.Pricing,
		&submission.GeneratedDocument,
		&submission.CreatedAt,
		&submission.UpdatedAt,
	)

	if err != nil {
		return nil, err
	}

	if submission.Answers == nil {
		submission.Answers = make(models.AnswerList, 0)
	}
	if submission.Documents == nil {
		submission.Documents = make(models.DocItemList, 0)
	}
	if submission.MustCriteria == nil {
		submission.MustCriteria = make(models.CriterionCheckList, 0)
	}

	return submission, nil
}

// UpdateGeneratedDocument stores the assembled submission document
func (r *SubmissionRepository) UpdateGeneratedDocument(ctx context.Context, tenderID uuid.UUID, document string) error {
	query := `
		UPDATE submissions SET
			generated_document = $2,
			updated_at = NOW()
		WHERE tender_id = $1`

	_, err := r.db.Exec(ctx, query, tenderID, document)
	return err
}
