package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"tenderdesk-backend/models"
	"tenderdesk-backend/repository"
	"tenderdesk-backend/scoring"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var ErrSubmissionNotFound = errors.New("submission not found")

// SubmissionService handles bid submissions: company profile, answers,
// document checklist, pricing and the assembled submission document.
type SubmissionService struct {
	submissionRepo *repository.SubmissionRepository
	tenderRepo     *repository.TenderRepository
}

// SubmissionServiceOption is a functional option for configuring SubmissionService
type SubmissionServiceOption func(*SubmissionService)

// WithSubmissionRepository sets the submission repository
func WithSubmissionRepository(repo *repository.SubmissionRepository) SubmissionServiceOption {
	return func(s *SubmissionService) {
		s.submissionRepo = repo
	}
}

// WithSubmissionTenderRepository sets the tender repository
func WithSubmissionTenderRepository(repo *repository.TenderRepository) SubmissionServiceOption {
	return func(s *SubmissionService) {
		s.tenderRepo = repo
	}
}

// NewSubmissionService creates a new submission service with the given options
func NewSubmissionService(opts ...SubmissionServiceOption) *SubmissionService {
	s := &SubmissionService{}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SubmissionScores are derived on every read, never stored
type SubmissionScores struct {
	WinProbability   int                   `json:"win_probability"`
	RouteFeasibility int                   `json:"route_feasibility"`
	MustCriteriaPct  int                   `json:"must_criteria_pct"`
	MissingDocuments int                   `json:"missing_documents"`
	Price            models.PriceBreakdown `json:"price"`
}

// SubmissionResult is a submission together with its derived scores
type SubmissionResult struct {
	Submission *models.Submission `json:"submission"`
	Scores     SubmissionScores   `json:"scores"`
}

// SaveSubmission upserts the submission of a tender and returns it with
// freshly derived scores.
func (s *SubmissionService) SaveSubmission(ctx context.Context, tenderID uuid.UUID, submission *models.Submission) (*SubmissionResult, error) {
	tender, err := s.getTender(ctx, tenderID)
	if err != nil {
		return nil, err
	}

	submission.TenderID = tenderID
	if err := s.submissionRepo.Upsert(ctx, submission); err != nil {
		return nil, fmt.Errorf("failed to save submission: %w", err)
	}

	return &SubmissionResult{
		Submission: submission,
		Scores:     deriveScores(tender, submission),
	}, nil
}

// GetSubmission returns the stored submission of a tender with derived scores
func (s *SubmissionService) GetSubmission(ctx context.Context, tenderID uuid.UUID) (*SubmissionResult, error) {
	tender, err := s.getTender(ctx, tenderID)
	if err != nil {
		return nil, err
	}

	submission, err := s.submissionRepo.GetByTenderID(ctx, tenderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSubmissionNotFound
		}
		return nil, fmt.Errorf("failed to get submission: %w", err)
	}

	return &SubmissionResult{
		Submission: submission,
		Scores:     deriveScores(tender, submission),
	}, nil
}

// ExportSubmission assembles the plain-text submission document, stores it
// on the submission and returns it.
func (s *SubmissionService) ExportSubmission(ctx context.Context, tenderID uuid.UUID) (string, error) {
	tender, err := s.getTender(ctx, tenderID)
	if err != nil {
		return "", err
	}

	submission, err := s.submissionRepo.GetByTenderID(ctx, tenderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", ErrSubmissionNotFound
		}
		return "", fmt.Errorf("failed to get submission: %w", err)
	}

	scores := deriveScores(tender, submission)
	document := assembleSubmissionDocument(tender, submission, scores)

	if err := s.submissionRepo.UpdateGeneratedDocument(ctx, tenderID, document); err != nil {
		return "", fmt.Errorf("failed to store generated document: %w", err)
	}

	return document, nil
}

func (s *SubmissionService) getTender(ctx context.Context, tenderID uuid.UUID) (*models.Tender, error) {
	tender, err := s.tenderRepo.GetByID(ctx, tenderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTenderNotFound
		}
		return nil, fmt.Errorf("failed to get tender: %w", err)
	}
	return tender, nil
}

// deriveScores computes the heuristic fit scores for a submission. All of
// them are recomputed from current inputs on every call.
func deriveScores(tender *models.Tender, submission *models.Submission) SubmissionScores {
	missingDocs := 0
	for _, doc := range submission.Documents {
		if doc.Required && !doc.Present {
			missingDocs++
		}
	}

	mustMet := 0
	for _, criterion := range submission.MustCriteria {
		if criterion.Met {
			mustMet++
		}
	}
	mustPct := scoring.PercentOf(mustMet, len(submission.MustCriteria))

	distanceKm := submission.Pricing.DistanceKm
	if distanceKm == 0 {
		distanceKm = submission.Profile.DistanceKm
	}
	projectDays := submission.Pricing.Days
	if projectDays == 0 && tender != nil {
		projectDays = tender.ProjectDurationDays
	}

	return SubmissionScores{
		WinProbability:   scoring.WinProbability(tender, missingDocs, submission.Answers, mustPct),
		RouteFeasibility: scoring.RouteFeasibility(distanceKm, projectDays, submission.Profile.FleetDescription),
		MustCriteriaPct:  mustPct,
		MissingDocuments: missingDocs,
		Price:            scoring.PriceRollup(submission.Pricing),
	}
}

// assembleSubmissionDocument builds the exportable plain-text submission
func assembleSubmissionDocument(tender *models.Tender, submission *models.Submission, scores SubmissionScores) string {
	var doc strings.Builder

	doc.WriteString("ANGEBOTSUNTERLAGE\n")
	doc.WriteString("=================\n\n")
	doc.WriteString(fmt.Sprintf("Erstellt am: %s\n\n", time.Now().Format("02.01.2006")))

	doc.WriteString("I. AUSSCHREIBUNG\n\n")
	doc.WriteString(fmt.Sprintf("Titel: %s\n", tender.Title))
	doc.WriteString(fmt.Sprintf("Auftraggeber: %s\n", tender.Buyer))
	if tender.Region != "" {
		doc.WriteString(fmt.Sprintf("Region: %s\n", tender.Region))
	}
	if tender.View != nil && tender.View.Deadline != "" {
		doc.WriteString(fmt.Sprintf("Abgabefrist: %s\n", tender.View.Deadline))
	}
	doc.WriteString("\n")

	doc.WriteString("II. BIETER\n\n")
	profile := submission.Profile
	doc.WriteString(fmt.Sprintf("Unternehmen: %s\n", profile.CompanyName))
	if profile.ContactPerson != "" {
		doc.WriteString(fmt.Sprintf("Ansprechpartner: %s\n", profile.ContactPerson))
	}
	if profile.Email != "" {
		doc.WriteString(fmt.Sprintf("E-Mail: %s\n", profile.Email))
	}
	if profile.Phone != "" {
		doc.WriteString(fmt.Sprintf("Telefon: %s\n", profile.Phone))
	}
	if profile.City != "" {
		doc.WriteString(fmt.Sprintf("Standort: %s\n", profile.City))
	}
	if profile.FleetDescription != "" {
		doc.WriteString(fmt.Sprintf("Geräte und Flotte: %s\n", profile.FleetDescription))
	}
	doc.WriteString("\n")

	doc.WriteString("III. EIGNUNGSEINSCHÄTZUNG\n\n")
	doc.WriteString(fmt.Sprintf("Gewinnwahrscheinlichkeit: %d%%\n", scores.WinProbability))
	doc.WriteString(fmt.Sprintf("Routen-Machbarkeit: %d%%\n", scores.RouteFeasibility))
	doc.WriteString(fmt.Sprintf("Erfüllte Muss-Kriterien: %d%%\n", scores.MustCriteriaPct))
	doc.WriteString(fmt.Sprintf("Fehlende Pflichtdokumente: %d\n\n", scores.MissingDocuments))

	if len(submission.Answers) > 0 {
		doc.WriteString("IV. FRAGEN UND ANTWORTEN\n\n")
		for i, answer := range submission.Answers {
			marker := ""
			if answer.Required {
				marker = " (Pflicht)"
			}
			doc.WriteString(fmt.Sprintf("%d. %s%s\n", i+1, answer.Question, marker))
			if strings.TrimSpace(answer.Answer) == "" {
				doc.WriteString("   -\n\n")
			} else {
				doc.WriteString(fmt.Sprintf("   %s\n\n", answer.Answer))
			}
		}
	}

	if len(submission.Documents) > 0 {
		doc.WriteString("V. DOKUMENTEN-CHECKLISTE\n\n")
		for _, item := range submission.Documents {
			check := "[ ]"
			if item.Present {
				check = "[x]"
			}
			marker := ""
			if item.Required {
				marker = " (Pflicht)"
			}
			doc.WriteString(fmt.Sprintf("%s %s%s\n", check, item.Name, marker))
		}
		doc.WriteString("\n")
	}

	doc.WriteString("VI. PREISKALKULATION\n\n")
	price := scores.Price
	doc.WriteString(fmt.Sprintf("Gerätekosten: %.2f EUR\n", price.EquipmentCost))
	doc.WriteString(fmt.Sprintf("Transportkosten: %.2f EUR\n", price.TransportCost))
	doc.WriteString(fmt.Sprintf("Betriebskosten: %.2f EUR\n", price.OperationCost))
	doc.WriteString(fmt.Sprintf("Einrichtungskosten: %.2f EUR\n", price.SetupCost))
	doc.WriteString(fmt.Sprintf("Zwischensumme: %.2f EUR\n", price.Subtotal))
	doc.WriteString(fmt.Sprintf("Marge (%s%%): %.2f EUR\n", trimFloat(submission.Pricing.MarginPct), price.Margin))
	doc.WriteString(fmt.Sprintf("Gesamtpreis: %.2f EUR\n", price.Total))

	return doc.String()
}

func trimFloat(v float64) string {
	s := fmt.Sprintf("%.2f", v)
	s = strings.TrimRight(s, "0")
	return strings.TrimSuffix(s, ".")
}
