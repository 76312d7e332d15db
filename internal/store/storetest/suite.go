// Package storetest holds a compliance suite every store driver must pass.
package storetest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tripweaver/tripweaver/internal/model"
	"github.com/tripweaver/tripweaver/internal/store"
)

// Run exercises a minimal compliance suite against a store.Store
// implementation. makeStore must return a clean, isolated store.
func Run(t *testing.T, makeStore func(t *testing.T) store.Store) {
	t.Helper()

	s := makeStore(t)
	ctx := context.Background()

	snap := sampleSnapshot()

	// Save / Get round trip
	if err := s.Itineraries().Save(ctx, snap); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := s.Itineraries().Get(ctx, snap.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.ID != snap.ID || len(got.Overview) != len(snap.Overview) {
		t.Fatalf("Get returned a different snapshot: %+v", got)
	}

	// Duplicate Save conflicts
	if err := s.Itineraries().Save(ctx, snap); !errors.Is(err, model.ErrConflict) {
		t.Fatalf("duplicate Save: want ErrConflict, got %v", err)
	}

	// Get of unknown ID
	if _, err := s.Itineraries().Get(ctx, "itn_missing"); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Get missing: want ErrNotFound, got %v", err)
	}

	// Replace swaps the document
	next := snap.Clone()
	next.UpdatedAt = next.UpdatedAt.Add(time.Second)
	next.Overview[0].Title = "replaced"
	if err := s.Itineraries().Replace(ctx, next); err != nil {
		t.Fatalf("Replace: %v", err)
	}
	got, err = s.Itineraries().Get(ctx, snap.ID)
	if err != nil {
		t.Fatalf("Get after Replace: %v", err)
	}
	if got.Overview[0].Title != "replaced" {
		t.Fatalf("Replace did not persist: %+v", got.Overview[0])
	}

	// Replace of unknown ID
	missing := snap.Clone()
	missing.ID = "itn_other"
	if err := s.Itineraries().Replace(ctx, missing); !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("Replace missing: want ErrNotFound, got %v", err)
	}

	// Stored documents must not alias caller memory.
	got.Overview[0].Title = "mutated by caller"
	again, err := s.Itineraries().Get(ctx, snap.ID)
	if err != nil {
		t.Fatalf("Get after caller mutation: %v", err)
	}
	if again.Overview[0].Title != "replaced" {
		t.Fatalf("store aliased caller memory: %q", again.Overview[0].Title)
	}
}

func sampleSnapshot() *model.ItinerarySnapshot {
	now := time.Now().UTC().Truncate(time.Second)
	start := model.NewDate(2025, 6, 1)
	return &model.ItinerarySnapshot{
		ID: model.NewItineraryID(),
		Request: model.TripRequest{
			Country:   "France",
			Cities:    []string{"Paris"},
			DateRange: model.DateRange{Start: start, End: start},
			Travelers: model.Travelers{Adults: 2, Type: "couple"},
			Styles:    []string{"culture"},
		},
		Overview: []model.DaySummary{{
			Day:        1,
			Date:       start,
			Title:      "Day 1: Paris",
			Photo:      "/city-arrival.jpg",
			Activities: []string{"Louvre Museum"},
			Stops:      []model.Stop{{Name: "Louvre Museum", Time: "09:00", Lat: 48.86, Lng: 2.33}},
		}},
		ActivitiesByDay: map[string][]model.Activity{
			"1": {{ID: "1-1", Name: "Louvre Museum", Location: "Paris", Time: "09:00", Tips: []string{}, NearbyFood: []string{}}},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}
