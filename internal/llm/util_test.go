package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain JSON untouched",
			input:    `{"score": 7}`,
			expected: `{"score": 7}`,
		},
		{
			name:     "json fence",
			input:    "```json\n{\"score\": 7}\n```",
			expected: `{"score": 7}`,
		},
		{
			name:     "generic fence",
			input:    "```\n{\"score\": 7}\n```",
			expected: `{"score": 7}`,
		},
		{
			name:     "fence with language identifier",
			input:    "```javascript\n{\"score\": 7}\n```",
			expected: `{"score": 7}`,
		},
		{
			name:     "surrounding whitespace",
			input:    "  \n```json\n{\"ok\": true}\n```\n  ",
			expected: `{"ok": true}`,
		},
		{
			name:     "embedded backticks preserved",
			input:    "```json\n{\"text\": \"use `go test`\"}\n```",
			expected: "{\"text\": \"use `go test`\"}",
		},
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}

func TestConfigModelFallback(t *testing.T) {
	cfg := &Config{
		Provider: ProviderGemini,
		Models:   map[ModelTier]string{TierStandard: "gemini-2.5-flash"},
	}

	assert.Equal(t, "gemini-2.5-flash", cfg.Model(TierStandard))
	// Unconfigured tier falls back to standard.
	assert.Equal(t, "gemini-2.5-flash", cfg.Model(TierDeep))

	empty := &Config{Provider: ProviderGemini}
	assert.Equal(t, "", empty.Model(TierFast))
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.NotEmpty(t, cfg.Model(TierFast))
	assert.NotEmpty(t, cfg.Model(TierStandard))
	assert.NotEmpty(t, cfg.Model(TierDeep))
}
