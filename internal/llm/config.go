// Package llm provides centralized LLM configuration and client abstractions,
// plus the shared rate limiter applied to every external generator call.
package llm

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: classification, extraction
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: structured analysis and content generation
	TierStandard ModelTier = "standard"
	// TierAdvanced is for complex reasoning: refinement with conversation context
	TierAdvanced ModelTier = "advanced"
)

// Temperatures used by the pipeline stages. Analysis leans deterministic;
// refinement tolerates slightly more variation.
const (
	TemperatureAnalysis   = 0.1
	TemperatureGeneration = 0.2
	TemperatureRefinement = 0.3
)

// Config holds the model configuration for the application
type Config struct {
	Models map[ModelTier]string
}

// DefaultConfig returns the default Gemini model configuration
func DefaultConfig() *Config {
	return &Config{
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return ""
}
