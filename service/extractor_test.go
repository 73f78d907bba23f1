package service

import "testing"

func TestStripJSONFence(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"meta": {}}`, `{"meta": {}}`},
		{"json fence", "```json\n{\"meta\": {}}\n```", `{"meta": {}}`},
		{"bare fence", "```\n{\"meta\": {}}\n```", `{"meta": {}}`},
		{"surrounding whitespace", "  \n```json\n{}\n```\n  ", `{}`},
	}
	for _, tt := range tests {
		if got := stripJSONFence(tt.in); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.name, tt.want, got)
		}
	}
}

func TestBuildExtractionPromptTruncatesLongDocuments(t *testing.T) {
	long := make([]byte, maxPromptChars+500)
	for i := range long {
		long[i] = 'a'
	}

	prompt := buildExtractionPrompt("doc.pdf", string(long))
	if len(prompt) > maxPromptChars+2000 {
		t.Errorf("Expected document to be truncated, prompt has %d chars", len(prompt))
	}
}
