package service

import (
	"context"
	"errors"
	"fmt"

	"tenderdesk-backend/models"
	"tenderdesk-backend/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrTenderNotFound = errors.New("tender not found")
	ErrInvalidSort    = errors.New("invalid sort field")
)

// TenderService handles tender listing and retrieval
type TenderService struct {
	tenderRepo *repository.TenderRepository
}

// TenderServiceOption is a functional option for configuring TenderService
type TenderServiceOption func(*TenderService)

// WithTenderRepository sets the tender repository
func WithTenderRepository(repo *repository.TenderRepository) TenderServiceOption {
	return func(s *TenderService) {
		s.tenderRepo = repo
	}
}

// NewTenderService creates a new tender service with the given options
func NewTenderService(opts ...TenderServiceOption) *TenderService {
	s := &TenderService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListTenders returns tender summaries sorted by deadline (default) or score
func (s *TenderService) ListTenders(ctx context.Context, sortBy string) ([]*models.Tender, error) {
	if sortBy == "" {
		sortBy = "deadline"
	}
	if sortBy != "deadline" && sortBy != "score" {
		return nil, fmt.Errorf("%w: %s", ErrInvalidSort, sortBy)
	}

	return s.tenderRepo.List(ctx, sortBy)
}

// GetTender retrieves a single tender with its full normalized view
func (s *TenderService) GetTender(ctx context.Context, id uuid.UUID) (*models.Tender, error) {
	tender, err := s.tenderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTenderNotFound
		}
		return nil, fmt.Errorf("failed to get tender: %w", err)
	}
	return tender, nil
}
