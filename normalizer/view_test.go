package normalizer

import (
	"testing"

	"tenderdesk-backend/models"
)

func sampleBundle() *models.ExtractionBundle {
	return models.BundleFromMap(map[string]any{
		"meta": map[string]any{
			"title":           "Rahmenvertrag Mobilkranleistungen",
			"organization":    "Hafenbehörde Hamburg",
			"region":          "Hamburg",
			"source_document": "ausschreibung.pdf",
		},
		"executive_summary": "Gestellung von Mobilkranen für die Hafenerweiterung.",
		"timeline": map[string]any{
			"submission_deadline_de": "15. Oktober 2025",
			"project_duration_de":    "24 Monate",
		},
		"mandatory_requirements": []any{
			map[string]any{"requirement_de": "Referenzprojekte Hafenbau", "source_document": "ausschreibung.pdf"},
		},
		"risks": []any{
			map[string]any{"risk_de": "Vertragsstrafe je Verzugstag", "severity": "high", "source_document": "vertrag.pdf"},
			map[string]any{"risk_de": "Kurze Mobilisierungsfrist", "severity": "medium"},
		},
		"evaluation_criteria": []any{
			map[string]any{"criterion_de": "Preis", "weight_percent": float64(60)},
			map[string]any{"criterion_de": "Qualität", "weight_percent": float64(40)},
		},
		"service_types": []any{"Mobilkrangestellung", "Schwerlasttransport"},
		"process_steps": []any{
			map[string]any{"title_de": "Bieterfragen", "days_de": "bis 05.10.2025"},
		},
		"missing_evidence_documents": []any{"Referenzliste"},
		"economic_analysis":          map[string]any{"score": float64(72)},
	})
}

func TestBuildTenderViewFullBundle(t *testing.T) {
	view := BuildTenderView(sampleBundle())

	if view.Title != "Rahmenvertrag Mobilkranleistungen" {
		t.Errorf("Expected title from meta, got %q", view.Title)
	}
	if view.Buyer != "Hafenbehörde Hamburg" {
		t.Errorf("Expected buyer from meta, got %q", view.Buyer)
	}
	if view.Deadline != "15. Oktober 2025" {
		t.Errorf("Expected deadline from timeline, got %q", view.Deadline)
	}
	if view.Score != 72 {
		t.Errorf("Expected score 72, got %d", view.Score)
	}

	if len(view.LegalRisks) != 2 {
		t.Fatalf("Expected 2 risks, got %d", len(view.LegalRisks))
	}
	if view.LegalRisks[0].Text != "Vertragsstrafe je Verzugstag" {
		t.Errorf("Expected high-severity risk first, got %q", view.LegalRisks[0].Text)
	}
	if view.LegalRisks[1].SourceDocument != "ausschreibung.pdf" {
		t.Errorf("Expected meta source fallback on second risk, got %q", view.LegalRisks[1].SourceDocument)
	}

	if len(view.EvaluationCriteria) != 2 || view.EvaluationCriteria[0].Text != "Preis (60%)" {
		t.Errorf("Expected weighted criteria, got %+v", view.EvaluationCriteria)
	}

	// Bieterfragen lands in clarifications; submission is synthesized after it
	if len(view.TimelineSteps) != 2 {
		t.Fatalf("Expected 2 timeline steps, got %d", len(view.TimelineSteps))
	}
	if view.TimelineSteps[1].Title != "Angebotsabgabe" {
		t.Errorf("Expected synthesized submission step last, got %q", view.TimelineSteps[1].Title)
	}

	if view.Sources["risks"] != "vertrag.pdf" {
		t.Errorf("Expected risks source from first risk, got %q", view.Sources["risks"])
	}
	if view.Sources["summary"] != "ausschreibung.pdf" {
		t.Errorf("Expected summary source from meta, got %q", view.Sources["summary"])
	}
}

func TestBuildTenderViewAllPlaceholders(t *testing.T) {
	bundle := models.BundleFromMap(map[string]any{
		"meta": map[string]any{
			"title":        "unbekannt",
			"organization": "unbekannt",
			"region":       "unbekannt",
		},
		"executive_summary": "unbekannt",
		"timeline": map[string]any{
			"submission_deadline_de": "unbekannt",
		},
		"risks": []any{
			map[string]any{"risk_de": "unbekannt", "severity": "high"},
		},
		"service_types": []any{"unbekannt", "n/a"},
	})

	view := BuildTenderView(bundle)

	if view.Title != "Missing Title" {
		t.Errorf("Expected default title, got %q", view.Title)
	}
	if view.Buyer != "Missing Organization" {
		t.Errorf("Expected default organization, got %q", view.Buyer)
	}
	if view.Region != "" || view.Deadline != "" || view.ExecutiveSummary != "" {
		t.Error("Expected placeholder scalars to default to empty")
	}
	if len(view.LegalRisks) != 0 {
		t.Errorf("Expected no risks, got %d", len(view.LegalRisks))
	}
	if len(view.ServiceTypes) != 0 {
		t.Errorf("Expected no service types, got %d", len(view.ServiceTypes))
	}
	if len(view.TimelineSteps) != 0 {
		t.Errorf("Expected no timeline steps, got %d", len(view.TimelineSteps))
	}
	if len(view.Sources) != 0 {
		t.Errorf("Expected no section sources, got %v", view.Sources)
	}
}

func TestBuildTenderViewNilBundle(t *testing.T) {
	view := BuildTenderView(nil)
	if view == nil {
		t.Fatal("Expected a view for a nil bundle")
	}
	if view.Title != "Missing Title" || view.Buyer != "Missing Organization" {
		t.Errorf("Expected defaults, got %q / %q", view.Title, view.Buyer)
	}
}
