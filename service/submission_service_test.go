package service

import (
	"strings"
	"testing"

	"tenderdesk-backend/models"
)

func sampleSubmission() *models.Submission {
	return &models.Submission{
		Profile: models.CompanyProfile{
			CompanyName:      "Kranbau Nord GmbH",
			ContactPerson:    "M. Weber",
			City:             "Hamburg",
			FleetDescription: "12 Mobilkrane am Standort Hamburg",
			DistanceKm:       40,
		},
		Answers: models.AnswerList{
			{Question: "Referenzen im Hafenbau?", Answer: "Drei Projekte seit 2021", Required: true},
			{Question: "Eigene Werkstatt?", Answer: "", Required: false},
		},
		Documents: models.DocItemList{
			{Name: "Referenzliste", Required: true, Present: true},
			{Name: "SCC-Zertifikat", Required: true, Present: false},
			{Name: "Imagebroschüre", Required: false, Present: false},
		},
		MustCriteria: models.CriterionCheckList{
			{Text: "ISO 9001", Met: true},
			{Text: "SCC**", Met: false},
		},
		Pricing: models.PricingInput{
			EquipmentDailyRate: 1000,
			Days:               10,
			DistanceKm:         60,
			TransportCostPerKm: 2,
			SetupCost:          500,
			MarginPct:          10,
		},
	}
}

func TestDeriveScores(t *testing.T) {
	tender := &models.Tender{Score: 72, ProjectDurationDays: 90}
	scores := deriveScores(tender, sampleSubmission())

	if scores.MissingDocuments != 1 {
		t.Errorf("Expected 1 missing required document, got %d", scores.MissingDocuments)
	}
	if scores.MustCriteriaPct != 50 {
		t.Errorf("Expected 50%% must-criteria fit, got %d", scores.MustCriteriaPct)
	}
	if scores.WinProbability < 1 || scores.WinProbability > 99 {
		t.Errorf("Expected win probability within [1, 99], got %d", scores.WinProbability)
	}
	// Pricing distance (60 km) takes precedence over the profile distance
	if scores.RouteFeasibility != 100 {
		t.Errorf("Expected 96 distance score plus depot bonus clamped to 100, got %d", scores.RouteFeasibility)
	}
	if scores.Price.Subtotal != 10740 {
		t.Errorf("Expected subtotal 10740, got %.2f", scores.Price.Subtotal)
	}
}

func TestDeriveScoresFallsBackToProfileDistance(t *testing.T) {
	submission := sampleSubmission()
	submission.Pricing.DistanceKm = 0
	submission.Profile.FleetDescription = "Kleine Flotte"

	scores := deriveScores(&models.Tender{}, submission)
	// 40 km profile distance, 10 project days, no depot bonus
	if scores.RouteFeasibility != 100 {
		t.Errorf("Expected 100 for the short profile route, got %d", scores.RouteFeasibility)
	}
}

func TestDeriveScoresNilTender(t *testing.T) {
	scores := deriveScores(nil, sampleSubmission())
	if scores.WinProbability != 0 {
		t.Errorf("Expected 0 win probability without a tender, got %d", scores.WinProbability)
	}
}

func TestAssembleSubmissionDocument(t *testing.T) {
	tender := &models.Tender{
		Title:  "Rahmenvertrag Mobilkranleistungen",
		Buyer:  "Hafenbehörde Hamburg",
		Region: "Hamburg",
		Score:  72,
		View:   &models.TenderView{Deadline: "15. Oktober 2025"},
	}
	submission := sampleSubmission()
	scores := deriveScores(tender, submission)

	document := assembleSubmissionDocument(tender, submission, scores)

	for _, want := range []string{
		"ANGEBOTSUNTERLAGE",
		"I. AUSSCHREIBUNG",
		"Titel: Rahmenvertrag Mobilkranleistungen",
		"Abgabefrist: 15. Oktober 2025",
		"II. BIETER",
		"Unternehmen: Kranbau Nord GmbH",
		"III. EIGNUNGSEINSCHÄTZUNG",
		"IV. FRAGEN UND ANTWORTEN",
		"1. Referenzen im Hafenbau? (Pflicht)",
		"V. DOKUMENTEN-CHECKLISTE",
		"[x] Referenzliste (Pflicht)",
		"[ ] SCC-Zertifikat (Pflicht)",
		"VI. PREISKALKULATION",
		"Marge (10%):",
	} {
		if !strings.Contains(document, want) {
			t.Errorf("Expected document to contain %q", want)
		}
	}

	// The unanswered optional question renders as a dash
	if !strings.Contains(document, "2. Eigene Werkstatt?\n   -\n") {
		t.Error("Expected unanswered question to render as a dash")
	}
}
