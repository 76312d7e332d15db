// Package planner implements the itinerary generation pipeline: candidate
// collection, scoring, day scheduling, route enrichment, detail expansion and
// final assembly. Each stage is a pure function from typed input to typed
// output; the orchestrator composes them without shared mutable state.
package planner

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tripweaver/tripweaver/internal/enrichment"
	"github.com/tripweaver/tripweaver/internal/model"
	"github.com/tripweaver/tripweaver/internal/oracle"
	"github.com/tripweaver/tripweaver/internal/routing"
)

// Options tune the pipeline. Zero values are replaced by defaults.
type Options struct {
	MaxStopsPerDay int // per-day stop budget, clamped to 3..5 by config
	FanOutLimit    int // bound on concurrent collaborator calls
	EnrichTopN     int // candidates per city to ground with web text
}

func (o Options) withDefaults() Options {
	if o.MaxStopsPerDay == 0 {
		o.MaxStopsPerDay = 4
	}
	if o.FanOutLimit == 0 {
		o.FanOutLimit = 4
	}
	if o.EnrichTopN == 0 {
		o.EnrichTopN = 3
	}
	return o
}

// Pipeline runs the generation stages against the configured collaborators.
// router and enricher may be nil; both degrade per their contracts.
type Pipeline struct {
	oracle   oracle.Oracle
	router   routing.Router
	enricher enrichment.Source
	opts     Options
	log      zerolog.Logger
}

func New(o oracle.Oracle, r routing.Router, e enrichment.Source, opts Options, log zerolog.Logger) *Pipeline {
	return &Pipeline{oracle: o, router: r, enricher: e, opts: opts.withDefaults(), log: log}
}

// Generate runs the full pipeline for a validated trip request and returns
// the assembled snapshot plus any non-fatal warnings. Nothing is persisted
// here; abandoning the context discards all partial state.
func (p *Pipeline) Generate(ctx context.Context, req model.TripRequest) (*model.ItinerarySnapshot, []model.Warning, error) {
	dayCount := req.DayCount()
	if dayCount < 1 {
		return nil, nil, fmt.Errorf("%w: empty date range", model.ErrUnschedulableTrip)
	}
	if dayCount < len(req.Cities) {
		return nil, nil, fmt.Errorf("%w: %d days cannot cover %d cities",
			model.ErrUnschedulableTrip, dayCount, len(req.Cities))
	}

	candidates, err := p.collectCandidates(ctx, req)
	if err != nil {
		return nil, nil, err
	}

	byCity := scoreAndFilter(candidates, req, p.opts.MaxStopsPerDay)

	days := buildSchedule(req, byCity, p.opts.MaxStopsPerDay)

	var warnings []model.Warning
	for i := range days {
		stops, w := p.RecomputeStops(ctx, days[i].Summary.Day, days[i].Summary.Stops)
		days[i].Summary.Stops = stops
		warnings = append(warnings, w...)
	}

	activities := p.expandDetails(ctx, req, days)

	snap, err := assemble(req, days, activities)
	if err != nil {
		return nil, nil, err
	}
	return snap, warnings, nil
}

// ExpandActivity replaces the placeholder fields of a chat-added activity
// with oracle detail. Failures keep the placeholder; the add still succeeds.
func (p *Pipeline) ExpandActivity(ctx context.Context, act model.Activity, city string, styles []string) model.Activity {
	det, err := p.oracle.ExpandDetail(ctx, oracle.DetailRequest{
		Name:   act.Name,
		City:   city,
		Time:   act.Time,
		Styles: styles,
	})
	if err != nil {
		p.log.Warn().Err(err).Str("activity", act.Name).Msg("detail expansion for added activity failed")
		return act
	}
	return mergeDetail(act, det)
}
