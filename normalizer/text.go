// Package normalizer turns heterogeneous, partially-missing extraction output
// into the clean, de-duplicated, source-annotated TenderView the wizard
// renders. All functions are total over arbitrary loosely-typed input: they
// filter and default, they never error.
package normalizer

import (
	"math"
	"strings"

	"tenderdesk-backend/models"
)

// placeholderVocabulary lists extraction output that signals "no real value
// present". Matched against the normalized form.
var placeholderVocabulary = map[string]bool{
	"unbekannt":       true,
	"unknown":         true,
	"tbd":             true,
	"n/a":             true,
	"nicht vorhanden": true,
	"keine angabe":    true,
	"unspecified":     true,
	"...":             true,
	"null":            true,
	"none":            true,
	"k.a.":            true,
}

// Normalize lowercases, trims, and collapses internal whitespace to single
// spaces. It is the canonical key for deduplication.
func Normalize(text string) string {
	return strings.Join(strings.Fields(strings.ToLower(text)), " ")
}

// IsPlaceholder reports whether text carries no real content: empty, shorter
// than 3 characters after normalization, or a known placeholder token.
// Every picker must call this before ranking or display.
func IsPlaceholder(text string) bool {
	normalized := Normalize(text)
	if len([]rune(normalized)) < 3 {
		return true
	}
	return placeholderVocabulary[normalized]
}

// MergeSourceDocuments joins two optional source-document labels into one
// semicolon-separated, deduplicated, order-stable list. Provenance
// accumulates when duplicates are merged; it is never silently dropped.
func MergeSourceDocuments(a, b string) string {
	var merged []string
	seen := make(map[string]bool)

	for _, label := range []string{a, b} {
		for _, part := range strings.Split(label, ";") {
			part = strings.TrimSpace(part)
			if part == "" || seen[part] {
				continue
			}
			seen[part] = true
			merged = append(merged, part)
		}
	}

	return strings.Join(merged, "; ")
}

// diacriticFolder maps German diacritics to their ASCII forms so keyword
// matching is insensitive to umlaut spelling variants.
var diacriticFolder = strings.NewReplacer(
	"ä", "a", "ö", "o", "ü", "u", "ß", "ss",
	"é", "e", "è", "e", "à", "a",
)

// foldKey normalizes and strips diacritics for keyword matching.
func foldKey(text string) string {
	return diacriticFolder.Replace(Normalize(text))
}

// fieldText picks the first non-empty value among keys and trims it.
func fieldText(record map[string]any, keys ...string) string {
	for _, key := range keys {
		if s := strings.TrimSpace(models.AsString(record[key])); s != "" {
			return s
		}
	}
	return ""
}

// fieldNumber reads a finite numeric field. The second return is false when
// the field is missing, non-numeric, or not finite.
func fieldNumber(record map[string]any, key string) (float64, bool) {
	n, ok := record[key].(float64)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, false
	}
	return n, true
}
