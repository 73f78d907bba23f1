package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"tenderdesk-backend/models"

	"github.com/google/generative-ai-go/genai"
)

// Extractor turns one tender document into a raw extraction bundle. The
// production implementation calls the Gemini API; tests substitute a fake.
type Extractor interface {
	Extract(ctx context.Context, filename string, content []byte) (map[string]any, error)
}

const (
	generationAPI  = "https://generativelanguage.googleapis.com/v1beta/models/gemini-3-pro-preview:generateContent"
	maxRetries     = 3
	initialBackoff = time.Second
	maxPromptChars = 30000
)

var ErrExtractionFailed = errors.New("failed to extract tender data")

// GeminiExtractor extracts tender data via the Gemini generation API
type GeminiExtractor struct {
	client *genai.Client
}

// NewGeminiExtractor creates a new Gemini-backed extractor
func NewGeminiExtractor(client *genai.Client) *GeminiExtractor {
	return &GeminiExtractor{client: client}
}

// Extract sends the document to the generation API and decodes the returned
// extraction bundle. Retries with doubling backoff; a malformed top-level
// shape is an error here, at the boundary, not deeper in the pipeline.
func (e *GeminiExtractor) Extract(ctx context.Context, filename string, content []byte) (map[string]any, error) {
	if e.client == nil {
		return nil, errors.New("gemini client not set")
	}

	prompt := buildExtractionPrompt(filename, string(content))

	var raw string
	var err error
	backoff := initialBackoff
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(backoff)
			backoff *= 2
		}

		raw, err = callGenerationAPI(ctx, prompt, 0.1)
		if err != nil {
			if attempt == maxRetries-1 {
				return nil, fmt.Errorf("extraction failed after %d attempts: %w", maxRetries, err)
			}
			continue
		}
		if raw != "" {
			break
		}
		if attempt == maxRetries-1 {
			return nil, ErrExtractionFailed
		}
	}

	raw = stripJSONFence(raw)

	var top any
	if err := json.Unmarshal([]byte(raw), &top); err != nil {
		return nil, fmt.Errorf("extraction output is not valid JSON: %w", err)
	}
	obj, ok := top.(map[string]any)
	if !ok {
		return nil, models.ErrMalformedBundle
	}

	return obj, nil
}

// buildExtractionPrompt asks the model for the fixed extraction bundle
// shape. The document text is truncated to stay inside context limits.
func buildExtractionPrompt(filename, document string) string {
	if len(document) > maxPromptChars {
		document = document[:maxPromptChars] + "\n\n[Content truncated due to length...]"
		log.Printf("Warning: Document %s too long, truncating to %d chars", filename, maxPromptChars)
	}

	return fmt.Sprintf(`You are a tender-document analyst for a construction-equipment rental company.

DOCUMENT (%s):
%s

TASK:
Extract the tender data from the document above into a single JSON object with
these optional sections: meta {tender_id, title, organization, region,
source_document}, executive_summary, timeline {submission_deadline_de,
project_duration_de}, mandatory_requirements[] {requirement_de,
explanation_de, source_document}, risks[] {risk_de, severity, source_document,
source_chunk_id}, service_types[], evaluation_criteria[] {criterion_de,
weight_percent, source_document}, safety_requirements[], contract_penalties[],
certifications_required[], process_steps[] {title_de, description_de, days_de,
source_document}, missing_evidence_documents[], economic_analysis {score}.

OUTPUT REQUIREMENTS:
- Output ONLY the JSON object, no markdown fences, no commentary
- Set meta.source_document to %q for every extracted section
- severity is one of "high", "medium", "low"
- Use "unbekannt" for values the document does not state
- Keep German field content in German; do not translate`, filename, document, filename)
}

// stripJSONFence removes a markdown code fence the model sometimes wraps
// around its JSON output.
func stripJSONFence(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}
	raw = strings.TrimPrefix(raw, "```json")
	raw = strings.TrimPrefix(raw, "```")
	raw = strings.TrimSuffix(strings.TrimSpace(raw), "```")
	return strings.TrimSpace(raw)
}

// callGenerationAPI calls the Gemini generation API directly via HTTP
func callGenerationAPI(ctx context.Context, prompt string, temperature float64) (string, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return "", fmt.Errorf("GEMINI_API_KEY not set")
	}

	reqBody := map[string]interface{}{
		"contents": []map[string]interface{}{
			{
				"parts": []map[string]interface{}{
					{"text": prompt},
				},
			},
		},
		"generationConfig": map[string]interface{}{
			"temperature":      temperature,
			"responseMimeType": "application/json",
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", generationAPI, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", apiKey)

	client := &http.Client{Timeout: 120 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		log.Printf("Gemini API error: Status %d, Body: %s", resp.StatusCode, string(bodyBytes))
		return "", fmt.Errorf("API error: %d", resp.StatusCode)
	}

	var apiResp struct {
		Candidates []struct {
			Content struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"content"`
			FinishReason string `json:"finishReason,omitempty"`
		} `json:"candidates"`
		PromptFeedback struct {
			BlockReason string `json:"blockReason,omitempty"`
		} `json:"promptFeedback,omitempty"`
	}

	if err := json.Unmarshal(bodyBytes, &apiResp); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if apiResp.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("API blocked prompt: %s", apiResp.PromptFeedback.BlockReason)
	}
	if len(apiResp.Candidates) == 0 {
		return "", fmt.Errorf("API returned no candidates")
	}

	var responseText strings.Builder
	for i, candidate := range apiResp.Candidates {
		if candidate.FinishReason != "" && candidate.FinishReason != "STOP" {
			log.Printf("Warning: Candidate %d finished with reason: %s", i, candidate.FinishReason)
		}
		for _, part := range candidate.Content.Parts {
			responseText.WriteString(part.Text)
		}
	}

	result := responseText.String()
	if result == "" {
		return "", fmt.Errorf("API returned empty content")
	}

	return result, nil
}
