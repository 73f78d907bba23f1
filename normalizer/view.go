package normalizer

import (
	"math"
	"strings"

	"tenderdesk-backend/models"
)

const (
	missingTitle        = "Missing Title"
	missingOrganization = "Missing Organization"
)

// BuildTenderView projects an extraction bundle into the canonical view the
// wizard renders. The bundle is read-only; a fresh view is built every time.
func BuildTenderView(bundle *models.ExtractionBundle) *models.TenderView {
	if bundle == nil {
		bundle = &models.ExtractionBundle{}
	}

	metaSource := strings.TrimSpace(bundle.Meta.SourceDocument)

	view := &models.TenderView{
		Title:            textOrDefault(bundle.Meta.Title, missingTitle),
		Buyer:            textOrDefault(bundle.Meta.Organization, missingOrganization),
		Region:           textOrDefault(bundle.Meta.Region, ""),
		Deadline:         textOrDefault(fieldText(bundle.Timeline, "submission_deadline_de", "submission_deadline"), ""),
		ProjectDuration:  textOrDefault(fieldText(bundle.Timeline, "project_duration_de", "project_duration"), ""),
		ExecutiveSummary: textOrDefault(bundle.ExecutiveSummary, ""),
		Score:            bundleScore(bundle.EconomicAnalysis),
	}

	view.LegalRisks = TopRisks(bundle.Risks, metaSource)
	view.SubmissionRequirements = TopRequirements(bundle.MandatoryRequirements, metaSource)
	view.EvaluationCriteria = TopCriteria(bundle.EvaluationCriteria)
	view.MissingEvidence = missingEvidence(bundle.MissingEvidenceDocuments, metaSource)

	timelineInput := append(append([]map[string]any{}, bundle.ProcessSteps...), bundle.TimelineMilestones...)
	view.TimelineSteps = TimelineSteps(timelineInput, bundle.Timeline, metaSource)

	view.ServiceTypes = TopStrings(bundle.ServiceTypes, 0)
	view.SafetyRequirements = TopStrings(bundle.SafetyRequirements, 0)
	view.ContractPenalties = TopStrings(bundle.ContractPenalties, 0)
	view.CertificationsRequired = TopStrings(bundle.CertificationsRequired, 0)

	view.Sources = sectionSources(view, metaSource)

	return view
}

// missingEvidence wraps the missing-evidence strings as SourceInfo records;
// their provenance is always the primary meta source.
func missingEvidence(items []any, metaSource string) []models.SourceInfo {
	texts := TopStrings(items, 0)
	results := make([]models.SourceInfo, 0, len(texts))
	for _, text := range texts {
		results = append(results, models.SourceInfo{
			Text:           text,
			SourceDocument: metaSource,
		})
	}
	return results
}

// sectionSources points each populated UI section at the document it was
// sourced from, falling back to the primary meta source.
func sectionSources(view *models.TenderView, metaSource string) map[string]string {
	sources := make(map[string]string)

	set := func(section string, items []models.SourceInfo) {
		if len(items) == 0 {
			return
		}
		if doc := items[0].SourceDocument; doc != "" {
			sources[section] = doc
		} else if metaSource != "" {
			sources[section] = metaSource
		}
	}

	set("risks", view.LegalRisks)
	set("requirements", view.SubmissionRequirements)
	set("criteria", view.EvaluationCriteria)
	set("missing_evidence", view.MissingEvidence)

	if len(view.TimelineSteps) > 0 {
		if doc := view.TimelineSteps[0].SourceDocument; doc != "" {
			sources["timeline"] = doc
		} else if metaSource != "" {
			sources["timeline"] = metaSource
		}
	}
	if view.ExecutiveSummary != "" && metaSource != "" {
		sources["summary"] = metaSource
	}

	return sources
}

func textOrDefault(text, fallback string) string {
	text = strings.TrimSpace(text)
	if IsPlaceholder(text) {
		return fallback
	}
	return text
}

func bundleScore(economic map[string]any) int {
	score, ok := fieldNumber(economic, "score")
	if !ok {
		return 0
	}
	return int(math.Round(score))
}
