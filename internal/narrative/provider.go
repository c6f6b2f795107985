package narrative

import (
	"github.com/rs/zerolog"
)

// Provider names accepted by New
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderNone   = "none"
)

// Config selects and configures the narrative provider
type Config struct {
	Provider   string
	Gemini     GeminiOpts
	OpenAI     OpenAIOpts
	RatePerSec float64
	Burst      int
}

// New creates the configured provider, rate limited when RatePerSec is positive.
// Unknown providers and providers without credentials fall back to Disabled.
func New(cfg Config, logger zerolog.Logger) Generator {
	var gen Generator

	switch cfg.Provider {
	case ProviderGemini:
		if cfg.Gemini.APIKey == "" {
			logger.Warn().Msg("GEMINI_API_KEY not set, narrative generation disabled")
			return Disabled{}
		}
		gen = NewGeminiClient(cfg.Gemini, logger)
	case ProviderOpenAI:
		if cfg.OpenAI.APIKey == "" {
			logger.Warn().Msg("OPENAI_API_KEY not set, narrative generation disabled")
			return Disabled{}
		}
		gen = NewOpenAIClient(cfg.OpenAI, logger)
	default:
		logger.Info().Str("provider", cfg.Provider).Msg("narrative generation disabled, using fallback assessments")
		return Disabled{}
	}

	logger.Info().
		Str("provider", cfg.Provider).
		Float64("rate_per_sec", cfg.RatePerSec).
		Msg("narrative provider initialized")

	return NewLimited(gen, cfg.RatePerSec, cfg.Burst)
}
