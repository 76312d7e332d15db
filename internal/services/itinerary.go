// Package services contains the business logic between the HTTP handlers and
// the storage layer: itinerary generation, the diff apply engine, and the chat
// intent resolver orchestration.
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tripweaver/tripweaver/internal/model"
	"github.com/tripweaver/tripweaver/internal/planner"
	"github.com/tripweaver/tripweaver/internal/store"
	"github.com/tripweaver/tripweaver/internal/validate"
)

// ItineraryService owns snapshot lifecycle: generation, retrieval, and the
// apply path that turns an accepted change list into the next snapshot
// version. Applies to the same itinerary are serialized per ID.
type ItineraryService struct {
	store       store.Store
	pipeline    *planner.Pipeline
	locks       keyedMutex
	enrichOnAdd bool
	log         zerolog.Logger
}

// NewItineraryService creates a new itinerary service.
func NewItineraryService(s store.Store, p *planner.Pipeline, enrichOnAdd bool, log zerolog.Logger) *ItineraryService {
	return &ItineraryService{store: s, pipeline: p, enrichOnAdd: enrichOnAdd, log: log}
}

// CreateItinerary validates the trip request, runs the generation pipeline
// and persists the resulting snapshot. Warnings are non-fatal scheduling
// notes surfaced alongside the result.
func (s *ItineraryService) CreateItinerary(ctx context.Context, req model.TripRequest) (*model.ItinerarySnapshot, []model.Warning, error) {
	if err := validate.TripRequest(req); err != nil {
		return nil, nil, err
	}

	snap, warnings, err := s.pipeline.Generate(ctx, req)
	if err != nil {
		return nil, nil, err
	}
	if err := s.store.Itineraries().Save(ctx, snap); err != nil {
		return nil, nil, fmt.Errorf("persist itinerary: %w", err)
	}

	s.log.Info().
		Str("itineraryId", snap.ID).
		Int("days", len(snap.Overview)).
		Strs("cities", req.Cities).
		Msg("itinerary created")
	return snap, warnings, nil
}

// GetItinerary returns the current snapshot for id.
func (s *ItineraryService) GetItinerary(ctx context.Context, id string) (*model.ItinerarySnapshot, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: itinerary id is required", model.ErrValidation)
	}
	return s.store.Itineraries().Get(ctx, id)
}

// ApplyResult is the outcome of one apply call: the new snapshot version, any
// warnings raised while applying, and a system message describing what
// happened for the chat transcript.
type ApplyResult struct {
	Snapshot      *model.ItinerarySnapshot
	Warnings      []model.Warning
	SystemMessage model.ChatMessage
}

// ApplyChanges applies an accepted change list to the itinerary's current
// snapshot and persists the result as the next version. The whole list is
// validated up front; a rejected list leaves the stored snapshot untouched.
// An empty list still produces a new version whose content is identical but
// whose UpdatedAt has advanced.
func (s *ItineraryService) ApplyChanges(ctx context.Context, id string, changes []model.ChangeProposal) (*ApplyResult, error) {
	if id == "" {
		return nil, fmt.Errorf("%w: itinerary id is required", model.ErrValidation)
	}

	unlock := s.locks.Lock(id)
	defer unlock()

	cur, err := s.store.Itineraries().Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validate.Changes(changes, cur.Request.DayCount()); err != nil {
		return nil, err
	}

	next := cur.Clone()
	var warnings []model.Warning
	touched := make(map[int]bool)

	for _, change := range changes {
		w := s.applyChange(ctx, next, change, touched)
		warnings = append(warnings, w...)
	}

	for _, day := range sortedDays(touched) {
		w := s.recomputeDay(ctx, next, day)
		warnings = append(warnings, w...)
	}

	next.UpdatedAt = time.Now().UTC()

	if err := model.ValidateSnapshot(next); err != nil {
		return nil, err
	}
	if err := s.store.Itineraries().Replace(ctx, next); err != nil {
		return nil, fmt.Errorf("persist updated itinerary: %w", err)
	}

	s.log.Info().
		Str("itineraryId", id).
		Int("changes", len(changes)).
		Int("warnings", len(warnings)).
		Msg("changes applied")

	return &ApplyResult{
		Snapshot:      next,
		Warnings:      warnings,
		SystemMessage: applySystemMessage(changes, warnings, next.UpdatedAt),
	}, nil
}

func sortedDays(touched map[int]bool) []int {
	days := make([]int, 0, len(touched))
	for d := range touched {
		days = append(days, d)
	}
	for i := 1; i < len(days); i++ {
		for j := i; j > 0 && days[j] < days[j-1]; j-- {
			days[j], days[j-1] = days[j-1], days[j]
		}
	}
	return days
}

// applySystemMessage summarizes an apply for the chat transcript.
func applySystemMessage(changes []model.ChangeProposal, warnings []model.Warning, at time.Time) model.ChatMessage {
	text := "Your itinerary is up to date."
	switch {
	case len(changes) == 1:
		text = "Done! I've applied that change to your itinerary."
	case len(changes) > 1:
		text = fmt.Sprintf("Done! I've applied %d changes to your itinerary.", len(changes))
	}
	for _, w := range warnings {
		if w.Kind == model.WarnNoMatch {
			text += " " + w.Message
		}
	}
	return model.ChatMessage{
		ID:        model.NewMessageID(),
		Text:      text,
		Sender:    "assistant",
		Timestamp: at,
	}
}
