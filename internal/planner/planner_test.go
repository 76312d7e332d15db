package planner

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/rs/zerolog"

	"github.com/tripweaver/tripweaver/internal/model"
	"github.com/tripweaver/tripweaver/internal/oracle"
	"github.com/tripweaver/tripweaver/internal/oracle/rulebased"
)

func franceRequest() model.TripRequest {
	start := model.NewDate(2025, 6, 10)
	return model.TripRequest{
		Country:   "France",
		Cities:    []string{"Paris", "Nice"},
		DateRange: model.DateRange{Start: start, End: start.AddDays(6)},
		Travelers: model.Travelers{Adults: 2, Type: "couple"},
		Styles:    []string{"culture", "food"},
	}
}

func TestGenerateFullTrip(t *testing.T) {
	p := New(rulebased.New(), nil, nil, Options{}, zerolog.Nop())
	snap, warnings, err := p.Generate(context.Background(), franceRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}

	if len(snap.Overview) != 7 {
		t.Fatalf("want 7 days, got %d", len(snap.Overview))
	}
	for day := 1; day <= 7; day++ {
		key := strconv.Itoa(day)
		if _, ok := snap.ActivitiesByDay[key]; !ok {
			t.Fatalf("no activities for day %s", key)
		}
	}
	if err := model.ValidateSnapshot(snap); err != nil {
		t.Fatalf("generated snapshot violates invariants: %v", err)
	}
	if !snap.CreatedAt.Equal(snap.UpdatedAt) {
		t.Fatal("fresh snapshot should have CreatedAt == UpdatedAt")
	}

	// Activity IDs follow <day>-<ordinal> in stop order.
	for day, acts := range snap.ActivitiesByDay {
		for i, a := range acts {
			if want := fmt.Sprintf("%s-%d", day, i+1); a.ID != want {
				t.Fatalf("activity id: got %q want %q", a.ID, want)
			}
			if a.Tips == nil || a.NearbyFood == nil {
				t.Fatalf("activity %s has nil slices", a.ID)
			}
		}
	}

	// Both cities appear in the overview.
	sawNice := false
	for _, d := range snap.Overview {
		if d.Title == fmt.Sprintf("Day %d: Nice", d.Day) {
			sawNice = true
		}
	}
	if !sawNice {
		t.Fatal("second city never scheduled")
	}
}

func TestGenerateDeterministicWithRuleBasedOracle(t *testing.T) {
	p := New(rulebased.New(), nil, nil, Options{}, zerolog.Nop())
	a, _, err := p.Generate(context.Background(), franceRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	b, _, err := p.Generate(context.Background(), franceRequest())
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	for day := range a.ActivitiesByDay {
		av, bv := a.ActivitiesByDay[day], b.ActivitiesByDay[day]
		if len(av) != len(bv) {
			t.Fatalf("day %s length differs between runs", day)
		}
		for i := range av {
			if av[i].Name != bv[i].Name {
				t.Fatalf("day %s position %d differs: %q vs %q", day, i, av[i].Name, bv[i].Name)
			}
		}
	}
}

func TestGenerateUnschedulableTrip(t *testing.T) {
	p := New(rulebased.New(), nil, nil, Options{}, zerolog.Nop())

	req := franceRequest()
	req.DateRange.End = req.DateRange.Start // 1 day, 2 cities
	if _, _, err := p.Generate(context.Background(), req); !errors.Is(err, model.ErrUnschedulableTrip) {
		t.Fatalf("want ErrUnschedulableTrip, got %v", err)
	}
}

// failingOracle errors on candidate suggestion and detail expansion.
type failingOracle struct{}

func (failingOracle) SuggestCandidates(context.Context, string, model.TripRequest) ([]model.Candidate, error) {
	return nil, errors.New("upstream down")
}
func (failingOracle) ExpandDetail(context.Context, oracle.DetailRequest) (oracle.Detail, error) {
	return oracle.Detail{}, errors.New("upstream down")
}
func (failingOracle) ResolveIntent(context.Context, oracle.IntentRequest) (oracle.IntentResult, error) {
	return oracle.IntentResult{}, errors.New("upstream down")
}

func TestGenerateOracleFailureFallsBackToCannedSet(t *testing.T) {
	p := New(failingOracle{}, nil, nil, Options{}, zerolog.Nop())

	req := franceRequest()
	req.Cities = []string{"Paris"}
	snap, _, err := p.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("fallback generation failed: %v", err)
	}
	if err := model.ValidateSnapshot(snap); err != nil {
		t.Fatalf("fallback snapshot invalid: %v", err)
	}
	// Detail expansion also failed, so activities are minimal but present.
	for _, acts := range snap.ActivitiesByDay {
		for _, a := range acts {
			if a.Name == "" || a.ID == "" {
				t.Fatalf("minimal activity incomplete: %+v", a)
			}
		}
	}
}

func TestGenerateUnknownCityWithoutOracleFails(t *testing.T) {
	p := New(failingOracle{}, nil, nil, Options{}, zerolog.Nop())

	req := franceRequest()
	req.Cities = []string{"Atlantis"}
	if _, _, err := p.Generate(context.Background(), req); !errors.Is(err, model.ErrUpstreamUnavailable) {
		t.Fatalf("want ErrUpstreamUnavailable, got %v", err)
	}
}

// stubEnricher returns fixed grounding text for every place.
type stubEnricher struct{ text string }

func (s stubEnricher) FetchText(context.Context, string, string) (string, error) {
	return s.text, nil
}

func TestGenerateEnrichmentFlowsIntoDescriptions(t *testing.T) {
	p := New(rulebased.New(), nil, stubEnricher{text: "A well-known landmark."}, Options{}, zerolog.Nop())

	req := franceRequest()
	req.Cities = []string{"Paris"}
	snap, _, err := p.Generate(context.Background(), req)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	found := false
	for _, acts := range snap.ActivitiesByDay {
		for _, a := range acts {
			if a.Description == "A well-known landmark." {
				found = true
			}
		}
	}
	if !found {
		t.Fatal("enrichment text never reached an activity description")
	}
}
