// Package llm provides centralized LLM configuration and client abstractions.
package llm

// ModelTier represents the capability level of a model.
type ModelTier string

const (
	// TierFast is for high-volume, low-latency calls: match scoring, extraction.
	TierFast ModelTier = "fast"
	// TierStandard is for structured parsing and evaluation.
	TierStandard ModelTier = "standard"
	// TierDeep is for open-ended generation: interview questions, feedback synthesis.
	TierDeep ModelTier = "deep"
)

// Provider represents an LLM provider.
type Provider string

// Supported providers.
const (
	ProviderGemini Provider = "gemini"
)

// Config holds the model configuration for the application.
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
}

// DefaultConfig returns the default Gemini configuration.
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierFast:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierDeep:     "gemini-2.5-pro",
		},
	}
}

// Model returns the model name for a tier, falling back to TierStandard
// and then TierFast when the requested tier is not configured.
func (c *Config) Model(tier ModelTier) string {
	if m, ok := c.Models[tier]; ok {
		return m
	}
	if m, ok := c.Models[TierStandard]; ok {
		return m
	}
	if m, ok := c.Models[TierFast]; ok {
		return m
	}
	return ""
}
