package normalizer

import "tenderdesk-backend/models"

// listSections are the bundle sections merged by concatenation, in the order
// the files appeared in the batch.
var listSections = []string{
	"timeline_milestones",
	"mandatory_requirements",
	"risks",
	"service_types",
	"evaluation_criteria",
	"safety_requirements",
	"contract_penalties",
	"certifications_required",
	"process_steps",
	"missing_evidence_documents",
}

// objectSections are merged key-by-key, first non-placeholder value wins.
var objectSections = []string{"meta", "timeline", "economic_analysis"}

// MergeRawBundles folds the per-file extraction outputs of a batch into one
// raw bundle: lists are concatenated in file order (the selectors dedup
// later), object sections keep the first real value seen per key. Inputs are
// never mutated.
func MergeRawBundles(parts []map[string]any) map[string]any {
	merged := make(map[string]any)

	for _, part := range parts {
		if part == nil {
			continue
		}

		for _, section := range listSections {
			items := models.AsList(part[section])
			if len(items) == 0 {
				continue
			}
			existing := models.AsList(merged[section])
			combined := make([]any, 0, len(existing)+len(items))
			combined = append(combined, existing...)
			combined = append(combined, items...)
			merged[section] = combined
		}

		for _, section := range objectSections {
			fields := models.AsMap(part[section])
			if len(fields) == 0 {
				continue
			}
			target := models.AsMap(merged[section])
			for key, value := range fields {
				current := models.AsString(target[key])
				if current != "" && !IsPlaceholder(current) {
					continue
				}
				target[key] = value
			}
			merged[section] = target
		}

		if current := models.AsString(merged["executive_summary"]); current == "" || IsPlaceholder(current) {
			if candidate := models.AsString(part["executive_summary"]); !IsPlaceholder(candidate) {
				merged["executive_summary"] = candidate
			}
		}
	}

	return merged
}
