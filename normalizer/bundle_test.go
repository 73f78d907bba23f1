package normalizer

import (
	"testing"

	"tenderdesk-backend/models"
)

func TestMergeRawBundlesConcatenatesListsInFileOrder(t *testing.T) {
	parts := []map[string]any{
		{"risks": []any{map[string]any{"risk_de": "Risiko A", "severity": "low"}}},
		{"risks": []any{map[string]any{"risk_de": "Risiko B", "severity": "high"}}},
	}

	merged := MergeRawBundles(parts)
	risks := models.AsMapList(merged["risks"])
	if len(risks) != 2 {
		t.Fatalf("Expected 2 risks after merge, got %d", len(risks))
	}
	if models.AsString(risks[0]["risk_de"]) != "Risiko A" {
		t.Errorf("Expected file order preserved, got %q first", risks[0]["risk_de"])
	}
}

func TestMergeRawBundlesFirstRealValueWinsPerKey(t *testing.T) {
	parts := []map[string]any{
		{"meta": map[string]any{"title": "unbekannt", "region": "Hamburg"}},
		{"meta": map[string]any{"title": "Hafenerweiterung", "region": "Bremen"}},
	}

	merged := MergeRawBundles(parts)
	meta := models.AsMap(merged["meta"])
	if models.AsString(meta["title"]) != "Hafenerweiterung" {
		t.Errorf("Expected placeholder title to be replaced, got %q", meta["title"])
	}
	if models.AsString(meta["region"]) != "Hamburg" {
		t.Errorf("Expected first real region to be kept, got %q", meta["region"])
	}
}

func TestMergeRawBundlesExecutiveSummary(t *testing.T) {
	parts := []map[string]any{
		{"executive_summary": "n/a"},
		{"executive_summary": "Gestellung von Mobilkranen."},
		{"executive_summary": "Anderer Text."},
	}

	merged := MergeRawBundles(parts)
	if got := models.AsString(merged["executive_summary"]); got != "Gestellung von Mobilkranen." {
		t.Errorf("Expected first real summary, got %q", got)
	}
}

func TestMergeRawBundlesToleratesNilParts(t *testing.T) {
	merged := MergeRawBundles([]map[string]any{nil, {"service_types": []any{"Mobilkran"}}})
	if len(models.AsList(merged["service_types"])) != 1 {
		t.Error("Expected nil parts to be skipped")
	}
}
