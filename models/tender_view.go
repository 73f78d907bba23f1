package models

import (
	"database/sql/driver"
	"encoding/json"
)

// SourceInfo is a display string plus its provenance. It is never built from
// placeholder text; the normalizer filters those out before construction.
type SourceInfo struct {
	Text           string `json:"text"`
	SourceDocument string `json:"source_document"`
	SourceChunkID  string `json:"source_chunk_id,omitempty"`
	PageNumber     int    `json:"page_number,omitempty"`
	Detail         string `json:"detail,omitempty"`
}

// TimelineStep is one bucketed step of the tender process, renumbered from 1.
type TimelineStep struct {
	Position       int    `json:"position"`
	Title          string `json:"title"`
	Description    string `json:"description,omitempty"`
	Days           string `json:"days,omitempty"`
	SourceDocument string `json:"source_document,omitempty"`
}

// TenderView is the canonical, de-duplicated projection of an extraction
// bundle consumed by the wizard UI. It is replaced wholesale whenever a
// fresher extraction is available, never patched.
type TenderView struct {
	Title            string `json:"title"`
	Buyer            string `json:"buyer"`
	Region           string `json:"region"`
	Deadline         string `json:"deadline"`
	Score            int    `json:"score"`
	ProjectDuration  string `json:"project_duration"`
	ExecutiveSummary string `json:"executive_summary"`

	LegalRisks             []SourceInfo   `json:"legal_risks_with_source"`
	SubmissionRequirements []SourceInfo   `json:"submission_requirements_with_source"`
	EvaluationCriteria     []SourceInfo   `json:"evaluation_criteria_with_source"`
	MissingEvidence        []SourceInfo   `json:"missing_evidence_with_source"`
	TimelineSteps          []TimelineStep `json:"timeline_steps"`

	ServiceTypes           []string `json:"service_types"`
	SafetyRequirements     []string `json:"safety_requirements"`
	ContractPenalties      []string `json:"contract_penalties"`
	CertificationsRequired []string `json:"certifications_required"`

	// Sources points each UI section at the document it came from.
	Sources map[string]string `json:"sources"`
}

// Value implements driver.Valuer for JSONB
func (v TenderView) Value() (driver.Value, error) {
	return json.Marshal(v)
}

// Scan implements sql.Scanner for JSONB
func (v *TenderView) Scan(value interface{}) error {
	if value == nil {
		return nil
	}

	var bytes []byte
	switch t := value.(type) {
	case []byte:
		bytes = t
	case string:
		bytes = []byte(t)
	default:
		return nil
	}

	if len(bytes) == 0 {
		return nil
	}

	return json.Unmarshal(bytes, v)
}
