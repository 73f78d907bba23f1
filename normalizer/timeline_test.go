package normalizer

import "testing"

func TestTimelineStepsBucketsInFixedOrder(t *testing.T) {
	steps := []map[string]any{
		{"title_de": "Zuschlagserteilung", "days_de": "KW 46"},
		{"title_de": "Vorbereitung der Unterlagen"},
		{"title_de": "Angebotsabgabe beim Auftraggeber"},
	}

	got := TimelineSteps(steps, nil, "meta.pdf")
	if len(got) != 3 {
		t.Fatalf("Expected 3 steps, got %d", len(got))
	}
	if got[0].Title != "Vorbereitung der Unterlagen" {
		t.Errorf("Expected preparation bucket first, got %q", got[0].Title)
	}
	if got[1].Title != "Angebotsabgabe beim Auftraggeber" {
		t.Errorf("Expected submission bucket second, got %q", got[1].Title)
	}
	if got[2].Title != "Zuschlagserteilung" {
		t.Errorf("Expected award bucket last, got %q", got[2].Title)
	}
	for i, step := range got {
		if step.Position != i+1 {
			t.Errorf("Expected position %d, got %d", i+1, step.Position)
		}
	}
}

func TestTimelineStepsFirstStepPerBucketWins(t *testing.T) {
	steps := []map[string]any{
		{"title_de": "Planung Phase 1"},
		{"title_de": "Planung Phase 2"},
	}

	got := TimelineSteps(steps, nil, "")
	if len(got) != 1 {
		t.Fatalf("Expected duplicate preparation bucket to keep one step, got %d", len(got))
	}
	if got[0].Title != "Planung Phase 1" {
		t.Errorf("Expected the first step to win, got %q", got[0].Title)
	}
}

func TestTimelineStepsFirstBucketWinsOnAmbiguousStep(t *testing.T) {
	// "Prüfung" (review) appears before "Zuschlag" (award) in bucket order
	steps := []map[string]any{
		{"title_de": "Prüfung vor Zuschlag"},
	}

	got := TimelineSteps(steps, nil, "")
	if len(got) != 1 {
		t.Fatalf("Expected 1 step, got %d", len(got))
	}

	steps = append(steps, map[string]any{"title_de": "Zuschlagserteilung"})
	got = TimelineSteps(steps, nil, "")
	if len(got) != 2 {
		t.Fatalf("Expected the award bucket to still be free, got %d steps", len(got))
	}
}

func TestTimelineStepsSynthesizesSubmissionStep(t *testing.T) {
	steps := []map[string]any{
		{"title_de": "Vorbereitung der Unterlagen"},
	}
	timeline := map[string]any{"submission_deadline_de": "15. Oktober 2025"}

	got := TimelineSteps(steps, timeline, "meta.pdf")
	if len(got) != 2 {
		t.Fatalf("Expected synthesized submission step, got %d steps", len(got))
	}
	last := got[len(got)-1]
	if last.Title != "Angebotsabgabe" {
		t.Errorf("Expected synthesized step last, got %q", last.Title)
	}
	if last.Description != "15. Oktober 2025" {
		t.Errorf("Expected deadline as description, got %q", last.Description)
	}
	if last.SourceDocument != "meta.pdf" {
		t.Errorf("Expected meta source on synthesized step, got %q", last.SourceDocument)
	}
}

func TestTimelineStepsNoSynthesisWithoutDeadline(t *testing.T) {
	got := TimelineSteps(nil, map[string]any{"submission_deadline_de": "unbekannt"}, "meta.pdf")
	if len(got) != 0 {
		t.Fatalf("Expected no steps for a placeholder deadline, got %d", len(got))
	}
}

func TestTimelineStepsNoSynthesisWhenSubmissionExtracted(t *testing.T) {
	steps := []map[string]any{
		{"title_de": "Abgabe des Angebots"},
	}
	timeline := map[string]any{"submission_deadline_de": "15. Oktober 2025"}

	got := TimelineSteps(steps, timeline, "")
	if len(got) != 1 {
		t.Fatalf("Expected no synthesized duplicate, got %d steps", len(got))
	}
	if got[0].Title != "Abgabe des Angebots" {
		t.Errorf("Expected the extracted submission step, got %q", got[0].Title)
	}
}

func TestTimelineStepsMatchesUmlautVariants(t *testing.T) {
	steps := []map[string]any{
		{"title_de": "Ausführungsbeginn"},
	}

	got := TimelineSteps(steps, nil, "")
	if len(got) != 1 {
		t.Fatalf("Expected umlaut title to match the execution bucket, got %d steps", len(got))
	}
}
