package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/tripweaver/tripweaver/internal/geo"
	"github.com/tripweaver/tripweaver/internal/model"
)

// collectCandidates gathers unscored POI candidates for every trip city with
// bounded fan-out. An oracle failure for a city falls back to the canned
// candidate table; a city with neither source is the one fatal generation
// condition.
func (p *Pipeline) collectCandidates(ctx context.Context, req model.TripRequest) ([]model.Candidate, error) {
	perCity := make([][]model.Candidate, len(req.Cities))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.FanOutLimit)
	for i, city := range req.Cities {
		i, city := i, city
		g.Go(func() error {
			cands, err := p.oracle.SuggestCandidates(gctx, city, req)
			if err != nil {
				p.log.Warn().Err(err).Str("city", city).Msg("candidate oracle failed, trying fallback set")
				cands = fallbackCandidates(city)
				if len(cands) == 0 {
					return fmt.Errorf("%w: no candidate source for %q: %v", model.ErrUpstreamUnavailable, city, err)
				}
			}
			perCity[i] = cands
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Merge in city order so the pipeline stays deterministic, then collapse
	// duplicate (city, name) pairs keeping the first occurrence.
	flat := lo.Flatten(perCity)
	flat = lo.UniqBy(flat, func(c model.Candidate) string {
		return strings.ToLower(c.City + "|" + c.Name)
	})

	p.enrichCandidates(ctx, flat)
	return flat, nil
}

// enrichCandidates fetches supplementary text for the top candidates per
// city. Enrichment is advisory: fetch failures and misses leave the
// candidate untouched.
func (p *Pipeline) enrichCandidates(ctx context.Context, cands []model.Candidate) {
	if p.enricher == nil {
		return
	}

	seen := make(map[string]int)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.FanOutLimit)
	for i := range cands {
		city := strings.ToLower(cands[i].City)
		if seen[city] >= p.opts.EnrichTopN {
			continue
		}
		seen[city]++
		c := &cands[i]
		g.Go(func() error {
			text, err := p.enricher.FetchText(gctx, c.Name, c.City)
			if err != nil {
				p.log.Debug().Err(err).Str("name", c.Name).Msg("enrichment fetch failed")
				return nil
			}
			c.Enrichment = text
			return nil
		})
	}
	_ = g.Wait()
}

// fallbackSets holds canned candidates for the destinations the planner can
// serve without any oracle at all.
var fallbackSets = map[string][]struct {
	name     string
	category string
}{
	"paris": {
		{"Louvre Museum", "culture"},
		{"Eiffel Tower", "sightseeing"},
		{"Le Marais food walk", "food"},
		{"Seine riverside walk", "nature"},
	},
	"nice": {
		{"Promenade des Anglais", "sightseeing"},
		{"Vieux Nice old town", "culture"},
		{"Castle Hill viewpoint", "nature"},
		{"Cours Saleya market", "food"},
	},
	"london": {
		{"British Museum", "culture"},
		{"Borough Market", "food"},
		{"South Bank walk", "sightseeing"},
		{"Tower of London", "culture"},
	},
	"tokyo": {
		{"Senso-ji Temple", "culture"},
		{"Tsukiji outer market", "food"},
		{"Meiji Shrine", "culture"},
		{"Shibuya crossing", "sightseeing"},
	},
	"seoul": {
		{"Gyeongbokgung Palace", "culture"},
		{"Bukchon Hanok Village", "sightseeing"},
		{"Gwangjang Market", "food"},
		{"Namsan Seoul Tower", "sightseeing"},
	},
}

func fallbackCandidates(city string) []model.Candidate {
	set, ok := fallbackSets[strings.ToLower(city)]
	if !ok {
		return nil
	}
	lat, lng := geo.CoordsFor(city)
	cands := make([]model.Candidate, 0, len(set))
	for i, entry := range set {
		offset := float64(i) * 0.01
		cands = append(cands, model.Candidate{
			Name:       entry.name,
			City:       city,
			Category:   entry.category,
			Lat:        lat + offset,
			Lng:        lng + offset,
			StyleScore: 0.6,
		})
	}
	return cands
}
