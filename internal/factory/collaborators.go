package factory

import (
	"github.com/rs/zerolog"

	"github.com/tripweaver/tripweaver/internal/config"
	"github.com/tripweaver/tripweaver/internal/enrichment"
	"github.com/tripweaver/tripweaver/internal/enrichment/wiki"
	"github.com/tripweaver/tripweaver/internal/routing"
	"github.com/tripweaver/tripweaver/internal/routing/googleroutes"
)

// NewRouter returns the travel-time collaborator, or nil when no key is
// configured. A nil router puts the pipeline in degraded zero-leg mode.
func NewRouter(cfg *config.Config, log zerolog.Logger) routing.Router {
	if cfg.RoutesAPIKey == "" {
		log.Warn().Msg("no routes API key configured, travel legs will be zero-length")
		return nil
	}
	return googleroutes.New(cfg.RoutesAPIKey)
}

// NewEnricher returns the web-text grounding source, or nil when enrichment
// is disabled.
func NewEnricher(cfg *config.Config, log zerolog.Logger) enrichment.Source {
	if !cfg.EnrichmentEnabled {
		log.Info().Msg("candidate enrichment disabled")
		return nil
	}
	return wiki.New()
}
