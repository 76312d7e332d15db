package factory

import (
	"github.com/rs/zerolog"

	"github.com/tripweaver/tripweaver/internal/config"
	"github.com/tripweaver/tripweaver/internal/oracle"
	oracleopenai "github.com/tripweaver/tripweaver/internal/oracle/openai"
	"github.com/tripweaver/tripweaver/internal/oracle/rulebased"
)

// NewOracle selects the language-generation collaborator. Without an API key
// the deterministic rule-based oracle keeps the whole pipeline functional.
func NewOracle(cfg *config.Config, log zerolog.Logger) oracle.Oracle {
	if cfg.OpenAIAPIKey == "" {
		log.Warn().Msg("no OpenAI API key configured, using rule-based oracle")
		return rulebased.New()
	}
	log.Info().
		Str("itinerary_model", cfg.OpenAIItineraryModel).
		Str("chat_model", cfg.OpenAIChatModel).
		Msg("using OpenAI oracle")
	return oracleopenai.New(cfg.OpenAIAPIKey, cfg.OpenAIItineraryModel, cfg.OpenAIChatModel)
}
