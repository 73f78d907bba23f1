package models

import (
	"errors"
	"testing"
)

func TestParseExtractionBundleRejectsNonObject(t *testing.T) {
	for _, raw := range []string{`[]`, `"text"`, `42`, `null`} {
		_, err := ParseExtractionBundle([]byte(raw))
		if !errors.Is(err, ErrMalformedBundle) {
			t.Errorf("Expected ErrMalformedBundle for %s, got %v", raw, err)
		}
	}
}

func TestParseExtractionBundleRejectsInvalidJSON(t *testing.T) {
	_, err := ParseExtractionBundle([]byte(`{"meta":`))
	if err == nil {
		t.Fatal("Expected an error for truncated JSON")
	}
}

func TestParseExtractionBundleDefaultsMissingSections(t *testing.T) {
	bundle, err := ParseExtractionBundle([]byte(`{}`))
	if err != nil {
		t.Fatalf("Expected empty object to parse, got %v", err)
	}
	if bundle.Meta.Title != "" || len(bundle.Risks) != 0 || bundle.ExecutiveSummary != "" {
		t.Errorf("Expected defaulted sections, got %+v", bundle)
	}
}

func TestParseExtractionBundleToleratesMalformedSections(t *testing.T) {
	raw := `{
		"meta": "not an object",
		"risks": {"not": "a list"},
		"service_types": ["Mobilkran", 7, {"text": "Autokran"}],
		"executive_summary": {"summary_de": "Zusammenfassung."}
	}`

	bundle, err := ParseExtractionBundle([]byte(raw))
	if err != nil {
		t.Fatalf("Expected malformed sections to be tolerated, got %v", err)
	}
	if len(bundle.Risks) != 0 {
		t.Errorf("Expected non-list risks to be dropped, got %d", len(bundle.Risks))
	}
	if len(bundle.ServiceTypes) != 3 {
		t.Errorf("Expected service types kept loosely typed, got %d", len(bundle.ServiceTypes))
	}
	if bundle.ExecutiveSummary != "Zusammenfassung." {
		t.Errorf("Expected object-shaped summary to be unwrapped, got %q", bundle.ExecutiveSummary)
	}
}

func TestAsStringCoercesNumbers(t *testing.T) {
	if got := AsString(float64(17)); got != "17" {
		t.Errorf("Expected numeric chunk id to render as 17, got %q", got)
	}
	if got := AsString(float64(2.5)); got != "2.5" {
		t.Errorf("Expected 2.5, got %q", got)
	}
	if got := AsString(true); got != "" {
		t.Errorf("Expected non-string non-number to yield empty, got %q", got)
	}
}

func TestAsMapListWrapsPlainStrings(t *testing.T) {
	items := AsMapList([]any{"Mobilkran", map[string]any{"text": "Autokran"}, 7})
	if len(items) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(items))
	}
	if AsString(items[0]["text"]) != "Mobilkran" {
		t.Errorf("Expected string wrapped as text record, got %v", items[0])
	}
}
