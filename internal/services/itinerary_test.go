package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tripweaver/tripweaver/internal/model"
	"github.com/tripweaver/tripweaver/internal/oracle/rulebased"
	"github.com/tripweaver/tripweaver/internal/planner"
	"github.com/tripweaver/tripweaver/internal/store"
	"github.com/tripweaver/tripweaver/internal/store/memory"
)

func newTestService(t *testing.T) (*ItineraryService, store.Store) {
	t.Helper()
	st := memory.New()
	p := planner.New(rulebased.New(), nil, nil, planner.Options{}, zerolog.Nop())
	return NewItineraryService(st, p, false, zerolog.Nop()), st
}

// seedSnapshot stores a small two-day Paris itinerary with known activities.
func seedSnapshot(t *testing.T, st store.Store) *model.ItinerarySnapshot {
	t.Helper()
	now := time.Now().UTC().Add(-time.Hour)
	start := model.NewDate(2025, 6, 10)
	snap := &model.ItinerarySnapshot{
		ID: model.NewItineraryID(),
		Request: model.TripRequest{
			Country:   "France",
			Cities:    []string{"Paris"},
			DateRange: model.DateRange{Start: start, End: start.AddDays(1)},
			Travelers: model.Travelers{Adults: 2, Type: "couple"},
			Styles:    []string{"culture"},
		},
		Overview: []model.DaySummary{
			{
				Day: 1, Date: start, Title: "Day 1: Paris", Photo: "/city-arrival.jpg",
				Activities: []string{"Louvre Museum", "Eiffel Tower"},
				Stops: []model.Stop{
					{Name: "Louvre Museum", Time: "09:00", Lat: 48.8606, Lng: 2.3376},
					{Name: "Eiffel Tower", Time: "10:30", Lat: 48.8584, Lng: 2.2945},
				},
			},
			{
				Day: 2, Date: start.AddDays(1), Title: "Day 2: Paris", Photo: "/city-arrival.jpg",
				Activities: []string{"Musee d'Orsay"},
				Stops: []model.Stop{
					{Name: "Musee d'Orsay", Time: "09:00", Lat: 48.8600, Lng: 2.3266},
				},
			},
		},
		ActivitiesByDay: map[string][]model.Activity{
			"1": {
				{ID: "1-1", Name: "Louvre Museum", Location: "Paris", Time: "09:00", Description: "World-class art.", Tips: []string{}, NearbyFood: []string{}},
				{ID: "1-2", Name: "Eiffel Tower", Location: "Paris", Time: "10:30", Description: "Iconic views.", Tips: []string{}, NearbyFood: []string{}},
			},
			"2": {
				{ID: "2-1", Name: "Musee d'Orsay", Location: "Paris", Time: "09:00", Description: "Impressionists.", Tips: []string{}, NearbyFood: []string{}},
			},
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := st.Itineraries().Save(context.Background(), snap); err != nil {
		t.Fatalf("seed: %v", err)
	}
	return snap
}

func intp(v int) *int       { return &v }
func strp(v string) *string { return &v }

func TestCreateItinerary(t *testing.T) {
	svc, _ := newTestService(t)
	start := model.NewDate(2025, 6, 10)
	req := model.TripRequest{
		Country:   "France",
		Cities:    []string{"Paris", "Nice"},
		DateRange: model.DateRange{Start: start, End: start.AddDays(6)},
		Travelers: model.Travelers{Adults: 2, Type: "couple"},
		Styles:    []string{"culture", "food"},
	}

	snap, _, err := svc.CreateItinerary(context.Background(), req)
	if err != nil {
		t.Fatalf("CreateItinerary: %v", err)
	}
	got, err := svc.GetItinerary(context.Background(), snap.ID)
	if err != nil {
		t.Fatalf("GetItinerary: %v", err)
	}
	if got.ID != snap.ID || len(got.Overview) != 7 {
		t.Fatalf("persisted snapshot mismatch: %+v", got)
	}
}

func TestCreateItineraryRejectsInvalidRequest(t *testing.T) {
	svc, _ := newTestService(t)
	_, _, err := svc.CreateItinerary(context.Background(), model.TripRequest{})
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
}

func TestApplyEmptyChangeListAdvancesTimestampOnly(t *testing.T) {
	svc, st := newTestService(t)
	orig := seedSnapshot(t, st)

	out, err := svc.ApplyChanges(context.Background(), orig.ID, nil)
	if err != nil {
		t.Fatalf("ApplyChanges: %v", err)
	}
	if !out.Snapshot.UpdatedAt.After(orig.UpdatedAt) {
		t.Fatal("UpdatedAt did not advance")
	}
	if len(out.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", out.Warnings)
	}
	if len(out.Snapshot.ActivitiesByDay["1"]) != 2 || len(out.Snapshot.ActivitiesByDay["2"]) != 1 {
		t.Fatal("empty change list altered content")
	}
	if out.Snapshot.Overview[0].Stops[0].Time != "09:00" {
		t.Fatal("untouched day was recomputed")
	}
}

func TestApplyRemoveExactMatchIsCaseInsensitive(t *testing.T) {
	svc, st := newTestService(t)
	orig := seedSnapshot(t, st)

	out, err := svc.ApplyChanges(context.Background(), orig.ID, []model.ChangeProposal{
		{Action: model.ChangeRemove, Day: intp(1), Location: strp("louvre museum")},
	})
	if err != nil {
		t.Fatalf("ApplyChanges: %v", err)
	}
	acts := out.Snapshot.ActivitiesByDay["1"]
	if len(acts) != 1 || acts[0].Name != "Eiffel Tower" {
		t.Fatalf("remove result: %+v", acts)
	}
	// The surviving activity keeps its original ID.
	if acts[0].ID != "1-2" {
		t.Fatalf("survivor renumbered: %s", acts[0].ID)
	}
	// Overview resynced: one stop, one label, recomputed time.
	day := out.Snapshot.Overview[0]
	if len(day.Stops) != 1 || day.Stops[0].Name != "Eiffel Tower" || day.Stops[0].Time != "09:00" {
		t.Fatalf("overview not resynced: %+v", day.Stops)
	}
	if len(day.Activities) != 1 || day.Activities[0] != "Eiffel Tower" {
		t.Fatalf("labels not resynced: %v", day.Activities)
	}
	// Coordinates survive the rebuild.
	if day.Stops[0].Lat != 48.8584 {
		t.Fatalf("stop coordinates lost: %+v", day.Stops[0])
	}
}

func TestApplyRemoveFallsBackToSubstringMatch(t *testing.T) {
	svc, st := newTestService(t)
	orig := seedSnapshot(t, st)

	out, err := svc.ApplyChanges(context.Background(), orig.ID, []model.ChangeProposal{
		{Action: model.ChangeRemove, Day: intp(1), Location: strp("eiffel")},
	})
	if err != nil {
		t.Fatalf("ApplyChanges: %v", err)
	}
	acts := out.Snapshot.ActivitiesByDay["1"]
	if len(acts) != 1 || acts[0].Name != "Louvre Museum" {
		t.Fatalf("substring remove result: %+v", acts)
	}
}

func TestApplyRemoveNoMatchWarnsAndKeepsDay(t *testing.T) {
	svc, st := newTestService(t)
	orig := seedSnapshot(t, st)

	out, err := svc.ApplyChanges(context.Background(), orig.ID, []model.ChangeProposal{
		{Action: model.ChangeRemove, Day: intp(2), Location: strp("Arc de Triomphe")},
	})
	if err != nil {
		t.Fatalf("ApplyChanges: %v", err)
	}
	if len(out.Warnings) != 1 || out.Warnings[0].Kind != model.WarnNoMatch || out.Warnings[0].Day != 2 {
		t.Fatalf("want one no_match warning for day 2, got %v", out.Warnings)
	}
	if len(out.Snapshot.ActivitiesByDay["2"]) != 1 {
		t.Fatal("no-match remove altered the day")
	}
	if !strings.Contains(out.SystemMessage.Text, "nothing was removed") {
		t.Fatalf("system message does not surface the warning: %q", out.SystemMessage.Text)
	}
}

func TestApplyAddAppendsWithNextOrdinal(t *testing.T) {
	svc, st := newTestService(t)
	orig := seedSnapshot(t, st)

	out, err := svc.ApplyChanges(context.Background(), orig.ID, []model.ChangeProposal{
		{Action: model.ChangeAdd, Day: intp(1), Location: strp("Cafe break"), Details: strp("A slow afternoon coffee.")},
	})
	if err != nil {
		t.Fatalf("ApplyChanges: %v", err)
	}
	acts := out.Snapshot.ActivitiesByDay["1"]
	if len(acts) != 3 {
		t.Fatalf("want 3 activities, got %d", len(acts))
	}
	added := acts[2]
	if added.ID != "1-3" || added.Name != "Cafe break" {
		t.Fatalf("added activity: %+v", added)
	}
	if added.Description != "A slow afternoon coffee." {
		t.Fatalf("details not applied: %q", added.Description)
	}
	day := out.Snapshot.Overview[0]
	if len(day.Stops) != 3 || day.Stops[2].Name != "Cafe break" {
		t.Fatalf("overview missing added stop: %+v", day.Stops)
	}
	// Times recomputed across the whole day.
	if day.Stops[0].Time != "09:00" || day.Stops[1].Time != "10:30" || day.Stops[2].Time != "12:00" {
		t.Fatalf("times not recomputed: %+v", day.Stops)
	}
}

func TestApplyAddThenRemoveSameLocationNetsToZero(t *testing.T) {
	svc, st := newTestService(t)
	orig := seedSnapshot(t, st)

	out, err := svc.ApplyChanges(context.Background(), orig.ID, []model.ChangeProposal{
		{Action: model.ChangeAdd, Day: intp(2), Location: strp("Pop-up gallery")},
		{Action: model.ChangeRemove, Day: intp(2), Location: strp("Pop-up gallery")},
	})
	if err != nil {
		t.Fatalf("ApplyChanges: %v", err)
	}
	if len(out.Warnings) != 0 {
		t.Fatalf("the remove must see the earlier add: %v", out.Warnings)
	}
	if len(out.Snapshot.ActivitiesByDay["2"]) != 1 {
		t.Fatalf("activity count changed: %+v", out.Snapshot.ActivitiesByDay["2"])
	}
}

func TestApplyRemoveThenAddNetsOut(t *testing.T) {
	svc, st := newTestService(t)
	orig := seedSnapshot(t, st)

	out, err := svc.ApplyChanges(context.Background(), orig.ID, []model.ChangeProposal{
		{Action: model.ChangeRemove, Day: intp(1), Location: strp("Louvre Museum")},
		{Action: model.ChangeAdd, Day: intp(1), Location: strp("Pompidou Centre")},
	})
	if err != nil {
		t.Fatalf("ApplyChanges: %v", err)
	}
	acts := out.Snapshot.ActivitiesByDay["1"]
	if len(acts) != 2 {
		t.Fatalf("want 2 activities after remove+add, got %d", len(acts))
	}
	// Ordinal continues past the highest surviving ordinal.
	if acts[1].ID != "1-3" {
		t.Fatalf("added activity id: %s", acts[1].ID)
	}
}

func TestApplyModifyMergesDetails(t *testing.T) {
	svc, st := newTestService(t)
	orig := seedSnapshot(t, st)

	out, err := svc.ApplyChanges(context.Background(), orig.ID, []model.ChangeProposal{
		{Action: model.ChangeModify, Day: intp(1), Location: strp("Louvre"), Details: strp("Book tickets online.")},
	})
	if err != nil {
		t.Fatalf("ApplyChanges: %v", err)
	}
	got := out.Snapshot.ActivitiesByDay["1"][0]
	if !strings.Contains(got.Description, "World-class art.") || !strings.Contains(got.Description, "Book tickets online.") {
		t.Fatalf("description not merged: %q", got.Description)
	}
	if got.ID != "1-1" {
		t.Fatalf("modify renumbered the activity: %s", got.ID)
	}
}

func TestApplyModifyWithoutMatchBecomesAdd(t *testing.T) {
	svc, st := newTestService(t)
	orig := seedSnapshot(t, st)

	out, err := svc.ApplyChanges(context.Background(), orig.ID, []model.ChangeProposal{
		{Action: model.ChangeModify, Day: intp(2), Location: strp("Latin Quarter walk"), Details: strp("Evening stroll.")},
	})
	if err != nil {
		t.Fatalf("ApplyChanges: %v", err)
	}
	acts := out.Snapshot.ActivitiesByDay["2"]
	if len(acts) != 2 || acts[1].Name != "Latin Quarter walk" {
		t.Fatalf("modify-as-add result: %+v", acts)
	}
}

func TestApplyTransportSetsAnnotation(t *testing.T) {
	svc, st := newTestService(t)
	orig := seedSnapshot(t, st)

	out, err := svc.ApplyChanges(context.Background(), orig.ID, []model.ChangeProposal{
		{Action: model.ChangeTransport, Day: intp(2), Details: strp("Take the RER C to the museum.")},
	})
	if err != nil {
		t.Fatalf("ApplyChanges: %v", err)
	}
	day := out.Snapshot.Overview[1]
	if day.Transport == nil || *day.Transport != "Take the RER C to the museum." {
		t.Fatalf("transport annotation: %v", day.Transport)
	}
	// Activities themselves are untouched.
	if len(out.Snapshot.ActivitiesByDay["2"]) != 1 {
		t.Fatal("transport change altered activities")
	}
}

func TestApplyOutOfRangeDayRejectedAtomically(t *testing.T) {
	svc, st := newTestService(t)
	orig := seedSnapshot(t, st)

	_, err := svc.ApplyChanges(context.Background(), orig.ID, []model.ChangeProposal{
		{Action: model.ChangeRemove, Day: intp(1), Location: strp("Louvre Museum")},
		{Action: model.ChangeAdd, Day: intp(9), Location: strp("Ghost stop")},
	})
	if !errors.Is(err, model.ErrValidation) {
		t.Fatalf("want ErrValidation, got %v", err)
	}
	// The valid first change must not have been applied either.
	got, err := st.Itineraries().Get(context.Background(), orig.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.ActivitiesByDay["1"]) != 2 {
		t.Fatal("rejected change list was partially applied")
	}
}

func TestApplyUnknownItinerary(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.ApplyChanges(context.Background(), "itn_missing0000", nil)
	if !errors.Is(err, model.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestApplyLeavesPriorSnapshotUntouched(t *testing.T) {
	svc, st := newTestService(t)
	orig := seedSnapshot(t, st)

	before, err := st.Itineraries().Get(context.Background(), orig.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	_, err = svc.ApplyChanges(context.Background(), orig.ID, []model.ChangeProposal{
		{Action: model.ChangeRemove, Day: intp(1), Location: strp("Louvre Museum")},
	})
	if err != nil {
		t.Fatalf("ApplyChanges: %v", err)
	}

	// The snapshot fetched before the apply still shows pre-change state.
	if len(before.ActivitiesByDay["1"]) != 2 {
		t.Fatal("previously fetched snapshot mutated by apply")
	}
}

func TestApplyResultValidatesInvariants(t *testing.T) {
	svc, st := newTestService(t)
	orig := seedSnapshot(t, st)

	out, err := svc.ApplyChanges(context.Background(), orig.ID, []model.ChangeProposal{
		{Action: model.ChangeRemove, Day: intp(1), Location: strp("Louvre Museum")},
		{Action: model.ChangeAdd, Day: intp(2), Location: strp("Canal Saint-Martin")},
		{Action: model.ChangeTransport, Day: intp(1), Details: strp("Metro line 1")},
	})
	if err != nil {
		t.Fatalf("ApplyChanges: %v", err)
	}
	if err := model.ValidateSnapshot(out.Snapshot); err != nil {
		t.Fatalf("apply produced an invalid snapshot: %v", err)
	}
}
