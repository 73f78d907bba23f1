package normalizer

import (
	"strings"

	"tenderdesk-backend/models"
)

// maxTimelineSteps caps the bucketed timeline. Redundant with the six fixed
// buckets, but kept as an explicit invariant.
const maxTimelineSteps = 6

// timelineBucket is one phase of a tender process. Buckets are matched in
// declaration order; the first bucket whose keyword set matches wins.
type timelineBucket struct {
	name     string
	keywords []string
}

// Keywords are stored in folded form (lowercase, diacritics stripped) and
// matched as substrings of the folded title+description.
var timelineBuckets = []timelineBucket{
	{"preparation", []string{"vorbereitung", "planung", "konzept", "erstellung", "bearbeitung der unterlagen", "preparation"}},
	{"review", []string{"prufung", "sichtung", "eignung", "bewertung", "review"}},
	{"submission", []string{"abgabe", "einreichung", "angebotsfrist", "frist", "submission"}},
	{"clarifications", []string{"ruckfrage", "aufklarung", "bieterfragen", "verhandlung", "clarification"}},
	{"award", []string{"zuschlag", "vergabe", "auftragserteilung", "award"}},
	{"execution", []string{"ausfuhrung", "umsetzung", "leistungsbeginn", "baubeginn", "execution"}},
}

const submissionBucket = "submission"

// TimelineSteps classifies process steps into the six fixed buckets and
// returns them in bucket order, renumbered from 1. Only the first step per
// bucket (by input order) is kept; steps matching no bucket are dropped. If
// no step lands in the submission bucket and the timeline carries a
// submission deadline, a submission step is synthesized from it, sorted
// after all genuinely-extracted steps so it fills the gap without displacing
// a real one.
func TimelineSteps(steps []map[string]any, timeline map[string]any, metaSource string) []models.TimelineStep {
	assigned := make([]*models.TimelineStep, len(timelineBuckets))

	for _, record := range steps {
		title := fieldText(record, "title_de", "title")
		if IsPlaceholder(title) {
			continue
		}
		description := fieldText(record, "description_de", "description")
		key := foldKey(title + " " + description)

		for i, bucket := range timelineBuckets {
			if !matchesBucket(bucket, key) {
				continue
			}
			if assigned[i] == nil {
				source := fieldText(record, "source_document")
				if source == "" {
					source = metaSource
				}
				assigned[i] = &models.TimelineStep{
					Title:          title,
					Description:    description,
					Days:           fieldText(record, "days_de", "days"),
					SourceDocument: source,
				}
			}
			break
		}
	}

	var synthesized *models.TimelineStep
	if assigned[bucketIndex(submissionBucket)] == nil {
		deadline := fieldText(timeline, "submission_deadline_de", "submission_deadline")
		if !IsPlaceholder(deadline) {
			synthesized = &models.TimelineStep{
				Title:          "Angebotsabgabe",
				Description:    deadline,
				SourceDocument: metaSource,
			}
		}
	}

	var results []models.TimelineStep
	for _, step := range assigned {
		if step != nil {
			results = append(results, *step)
		}
	}
	if synthesized != nil {
		results = append(results, *synthesized)
	}
	if len(results) > maxTimelineSteps {
		results = results[:maxTimelineSteps]
	}
	for i := range results {
		results[i].Position = i + 1
	}
	return results
}

func matchesBucket(bucket timelineBucket, foldedText string) bool {
	for _, keyword := range bucket.keywords {
		if strings.Contains(foldedText, keyword) {
			return true
		}
	}
	return false
}

func bucketIndex(name string) int {
	for i, bucket := range timelineBuckets {
		if bucket.name == name {
			return i
		}
	}
	return -1
}
