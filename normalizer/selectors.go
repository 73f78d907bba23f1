package normalizer

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"tenderdesk-backend/models"
)

// topLimit caps every Top-N list the UI renders.
const topLimit = 5

// severityRank orders risk severities; anything unrecognized ranks as low.
var severityRank = map[string]int{
	"high":   0,
	"medium": 1,
	"low":    2,
}

func severityTier(severity string) int {
	if tier, ok := severityRank[severity]; ok {
		return tier
	}
	return severityRank["low"]
}

// TopRisks picks at most five risks, ranked by severity tier with the
// original input order as a stable tie-break. Records with placeholder text
// or no severity at all are dropped; only survivors get the unknown-as-low
// default. Duplicates (by normalized text) keep the first record's fields
// and accumulate source-document labels.
func TopRisks(risks []map[string]any, metaSource string) []models.SourceInfo {
	type riskCandidate struct {
		index    int
		text     string
		severity string
		source   string
		chunkID  string
	}

	var candidates []riskCandidate
	seen := make(map[string]int)

	for i, record := range risks {
		text := fieldText(record, "risk_de", "text")
		severity := Normalize(fieldText(record, "severity"))
		if IsPlaceholder(text) || severity == "" {
			continue
		}

		key := Normalize(text)
		if at, dup := seen[key]; dup {
			candidates[at].source = MergeSourceDocuments(candidates[at].source, fieldText(record, "source_document"))
			continue
		}

		seen[key] = len(candidates)
		candidates = append(candidates, riskCandidate{
			index:    i,
			text:     text,
			severity: severity,
			source:   fieldText(record, "source_document"),
			chunkID:  fieldText(record, "source_chunk_id"),
		})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		ta, tb := severityTier(candidates[a].severity), severityTier(candidates[b].severity)
		if ta != tb {
			return ta < tb
		}
		return candidates[a].index < candidates[b].index
	})

	if len(candidates) > topLimit {
		candidates = candidates[:topLimit]
	}

	results := make([]models.SourceInfo, 0, len(candidates))
	for _, c := range candidates {
		source := c.source
		if source == "" {
			source = metaSource
		}
		results = append(results, models.SourceInfo{
			Text:           c.text,
			SourceDocument: source,
			SourceChunkID:  c.chunkID,
		})
	}
	return results
}

// TopRequirements picks at most five requirements. Records from the primary
// meta source sort first (stable by input order), so when duplicates collide
// the most authoritative document's wording wins. An explanation/description
// is attached as detail only when it is itself non-placeholder.
func TopRequirements(requirements []map[string]any, metaSource string) []models.SourceInfo {
	type reqCandidate struct {
		index  int
		text   string
		detail string
		source string
	}

	var candidates []reqCandidate
	for i, record := range requirements {
		text := fieldText(record, "requirement_de", "text")
		if IsPlaceholder(text) {
			continue
		}
		detail := fieldText(record, "explanation_de", "explanation", "description_de", "description")
		if IsPlaceholder(detail) {
			detail = ""
		}
		candidates = append(candidates, reqCandidate{
			index:  i,
			text:   text,
			detail: detail,
			source: fieldText(record, "source_document"),
		})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		fromMetaA := candidates[a].source == metaSource
		fromMetaB := candidates[b].source == metaSource
		if fromMetaA != fromMetaB {
			return fromMetaA
		}
		return candidates[a].index < candidates[b].index
	})

	var results []models.SourceInfo
	seen := make(map[string]bool)
	for _, c := range candidates {
		key := Normalize(c.text)
		if seen[key] {
			continue
		}
		seen[key] = true

		source := c.source
		if source == "" {
			source = metaSource
		}
		results = append(results, models.SourceInfo{
			Text:           c.text,
			SourceDocument: source,
			Detail:         c.detail,
		})
		if len(results) == topLimit {
			break
		}
	}
	return results
}

// TopCriteria picks at most five evaluation criteria sorted descending by
// weight. An explicitly zero weight excludes the criterion; a missing or
// non-numeric weight is treated as zero but keeps it. On duplicate text the
// higher weight wins outright (text, weight and source replaced); a losing
// duplicate still merges its source-document label in.
func TopCriteria(criteria []map[string]any) []models.SourceInfo {
	type criterionCandidate struct {
		text   string
		weight float64
		source string
	}

	var candidates []criterionCandidate
	seen := make(map[string]int)

	for _, record := range criteria {
		text := fieldText(record, "criterion_de", "text")
		if IsPlaceholder(text) {
			continue
		}

		weight, hasWeight := fieldNumber(record, "weight_percent")
		if hasWeight && weight == 0 {
			continue
		}
		if !hasWeight {
			weight = 0
		}
		source := fieldText(record, "source_document")

		key := Normalize(text)
		if at, dup := seen[key]; dup {
			if weight > candidates[at].weight {
				candidates[at] = criterionCandidate{text: text, weight: weight, source: source}
			} else {
				candidates[at].source = MergeSourceDocuments(candidates[at].source, source)
			}
			continue
		}

		seen[key] = len(candidates)
		candidates = append(candidates, criterionCandidate{text: text, weight: weight, source: source})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].weight > candidates[b].weight
	})

	if len(candidates) > topLimit {
		candidates = candidates[:topLimit]
	}

	results := make([]models.SourceInfo, 0, len(candidates))
	for _, c := range candidates {
		text := c.text
		if c.weight != 0 {
			text = fmt.Sprintf("%s (%s%%)", c.text, strconv.FormatFloat(c.weight, 'f', -1, 64))
		}
		results = append(results, models.SourceInfo{
			Text:           text,
			SourceDocument: c.source,
		})
	}
	return results
}

// TopStrings picks distinct non-placeholder display strings from items that
// are either plain strings or {text}-shaped objects. First occurrence wins;
// limit defaults to 5 when not positive.
func TopStrings(items []any, limit int) []string {
	if limit <= 0 {
		limit = topLimit
	}

	var results []string
	seen := make(map[string]bool)

	for _, item := range items {
		var text string
		switch t := item.(type) {
		case string:
			text = strings.TrimSpace(t)
		case map[string]any:
			text = fieldText(t, "text", "text_de", "name")
		}
		if IsPlaceholder(text) {
			continue
		}

		key := Normalize(text)
		if seen[key] {
			continue
		}
		seen[key] = true

		results = append(results, text)
		if len(results) == limit {
			break
		}
	}
	return results
}
