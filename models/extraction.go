package models

import (
	"encoding/json"
	"errors"
	"strconv"
)

// ErrMalformedBundle is returned when the raw extraction payload is not a JSON object.
// Anything below the top level is tolerated and defaulted instead.
var ErrMalformedBundle = errors.New("extraction payload is not a JSON object")

// ExtractionMeta identifies the tender a bundle was extracted from.
type ExtractionMeta struct {
	TenderID       string `json:"tender_id"`
	Title          string `json:"title"`
	Organization   string `json:"organization"`
	Region         string `json:"region"`
	SourceDocument string `json:"source_document"`
}

// ExtractionBundle is the typed form of the raw `ui_json` produced by the
// document-AI extraction run. Every section is optional; list items stay
// loosely typed maps because the extraction output is not consistent about
// field names (risk_de vs text, and so on).
type ExtractionBundle struct {
	Meta                     ExtractionMeta   `json:"meta"`
	ExecutiveSummary         string           `json:"executive_summary"`
	Timeline                 map[string]any   `json:"timeline"`
	TimelineMilestones       []map[string]any `json:"timeline_milestones"`
	MandatoryRequirements    []map[string]any `json:"mandatory_requirements"`
	Risks                    []map[string]any `json:"risks"`
	ServiceTypes             []any            `json:"service_types"`
	EvaluationCriteria       []map[string]any `json:"evaluation_criteria"`
	SafetyRequirements       []any            `json:"safety_requirements"`
	ContractPenalties        []any            `json:"contract_penalties"`
	CertificationsRequired   []any            `json:"certifications_required"`
	ProcessSteps             []map[string]any `json:"process_steps"`
	MissingEvidenceDocuments []any            `json:"missing_evidence_documents"`
	EconomicAnalysis         map[string]any   `json:"economic_analysis"`
}

// ParseExtractionBundle decodes a raw extraction payload. Only the top-level
// shape is validated; malformed sections inside the object are dropped.
func ParseExtractionBundle(raw []byte) (*ExtractionBundle, error) {
	var top any
	if err := json.Unmarshal(raw, &top); err != nil {
		return nil, err
	}
	obj, ok := top.(map[string]any)
	if !ok {
		return nil, ErrMalformedBundle
	}
	return BundleFromMap(obj), nil
}

// BundleFromMap builds a typed bundle from an already-decoded JSON object.
// Every accessor defaults rather than errors.
func BundleFromMap(obj map[string]any) *ExtractionBundle {
	bundle := &ExtractionBundle{
		ExecutiveSummary:         summaryText(obj["executive_summary"]),
		Timeline:                 AsMap(obj["timeline"]),
		TimelineMilestones:       AsMapList(obj["timeline_milestones"]),
		MandatoryRequirements:    AsMapList(obj["mandatory_requirements"]),
		Risks:                    AsMapList(obj["risks"]),
		ServiceTypes:             AsList(obj["service_types"]),
		EvaluationCriteria:       AsMapList(obj["evaluation_criteria"]),
		SafetyRequirements:       AsList(obj["safety_requirements"]),
		ContractPenalties:        AsList(obj["contract_penalties"]),
		CertificationsRequired:   AsList(obj["certifications_required"]),
		ProcessSteps:             AsMapList(obj["process_steps"]),
		MissingEvidenceDocuments: AsList(obj["missing_evidence_documents"]),
		EconomicAnalysis:         AsMap(obj["economic_analysis"]),
	}

	meta := AsMap(obj["meta"])
	bundle.Meta = ExtractionMeta{
		TenderID:       AsString(meta["tender_id"]),
		Title:          AsString(meta["title"]),
		Organization:   AsString(meta["organization"]),
		Region:         AsString(meta["region"]),
		SourceDocument: AsString(meta["source_document"]),
	}

	return bundle
}

// summaryText accepts either a plain string or a {text}-shaped object.
func summaryText(v any) string {
	if s := AsString(v); s != "" {
		return s
	}
	m := AsMap(v)
	for _, key := range []string{"summary_de", "text_de", "text"} {
		if s := AsString(m[key]); s != "" {
			return s
		}
	}
	return ""
}

// AsString coerces a decoded JSON value to a string. Numbers are rendered so
// that numeric chunk ids survive; everything else becomes "".
func AsString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return ""
}

// AsMap returns the value as a JSON object, or an empty map.
func AsMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return map[string]any{}
}

// AsList returns the value as a JSON array, or nil.
func AsList(v any) []any {
	if l, ok := v.([]any); ok {
		return l
	}
	return nil
}

// AsMapList returns the value as a list of objects. Plain strings are wrapped
// as {text} records so string-only extraction output still flows through the
// record-shaped selectors.
func AsMapList(v any) []map[string]any {
	items := AsList(v)
	if items == nil {
		return nil
	}
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		switch t := item.(type) {
		case map[string]any:
			out = append(out, t)
		case string:
			out = append(out, map[string]any{"text": t})
		}
	}
	return out
}
