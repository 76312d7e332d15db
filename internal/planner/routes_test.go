package planner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tripweaver/tripweaver/internal/model"
	"github.com/tripweaver/tripweaver/internal/routing"
)

type stubRouter struct {
	legs []time.Duration
	err  error
}

func (s stubRouter) LegDurations(_ context.Context, points []routing.Point) ([]time.Duration, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.legs, nil
}

func fourStops() []model.Stop {
	return []model.Stop{
		{Name: "A", Lat: 48.86, Lng: 2.33},
		{Name: "B", Lat: 48.85, Lng: 2.29},
		{Name: "C", Lat: 48.87, Lng: 2.35},
		{Name: "D", Lat: 48.84, Lng: 2.30},
	}
}

func pipelineWithRouter(r routing.Router) *Pipeline {
	return New(nil, r, nil, Options{}, zerolog.Nop())
}

func stopTimes(stops []model.Stop) []string {
	out := make([]string, len(stops))
	for i, s := range stops {
		out[i] = s.Time
	}
	return out
}

func TestRecomputeStopsZeroLegsWithoutRouter(t *testing.T) {
	p := pipelineWithRouter(nil)
	stops, warnings := p.RecomputeStops(context.Background(), 1, fourStops())
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	want := []string{"09:00", "10:30", "12:00", "13:30"}
	got := stopTimes(stops)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("times: got %v want %v", got, want)
		}
	}
}

func TestRecomputeStopsUsesLegDurations(t *testing.T) {
	p := pipelineWithRouter(stubRouter{legs: []time.Duration{
		30 * time.Minute, 60 * time.Minute, 15 * time.Minute,
	}})
	stops, warnings := p.RecomputeStops(context.Background(), 2, fourStops())
	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", warnings)
	}
	want := []string{"09:00", "11:00", "13:30", "15:15"}
	got := stopTimes(stops)
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("times: got %v want %v", got, want)
		}
	}
}

func TestRecomputeStopsOverflowClampsAndWarns(t *testing.T) {
	p := pipelineWithRouter(stubRouter{legs: []time.Duration{
		5 * time.Hour, 5 * time.Hour, 5 * time.Hour,
	}})
	stops, warnings := p.RecomputeStops(context.Background(), 3, fourStops())

	if stops[len(stops)-1].Time != "21:00" {
		t.Fatalf("overflowing stop not clamped: %s", stops[len(stops)-1].Time)
	}
	if len(warnings) != 1 {
		t.Fatalf("want 1 warning, got %d", len(warnings))
	}
	if warnings[0].Kind != model.WarnScheduleOverflow || warnings[0].Day != 3 {
		t.Fatalf("warning: %+v", warnings[0])
	}
}

func TestRecomputeStopsRouterFailureDegradesToZeros(t *testing.T) {
	p := pipelineWithRouter(stubRouter{err: errors.New("routes api down")})
	stops, warnings := p.RecomputeStops(context.Background(), 1, fourStops())
	if len(warnings) != 0 {
		t.Fatalf("router failure must be silent, got %v", warnings)
	}
	if stops[1].Time != "10:30" {
		t.Fatalf("degraded times wrong: %v", stopTimes(stops))
	}
}

func TestRecomputeStopsEmptyDay(t *testing.T) {
	p := pipelineWithRouter(nil)
	stops, warnings := p.RecomputeStops(context.Background(), 1, nil)
	if stops != nil || warnings != nil {
		t.Fatalf("empty day: got %v / %v", stops, warnings)
	}
}

func TestRecomputeStopsDoesNotMutateInput(t *testing.T) {
	p := pipelineWithRouter(nil)
	in := fourStops()
	in[0].Time = "unset"
	_, _ = p.RecomputeStops(context.Background(), 1, in)
	if in[0].Time != "unset" {
		t.Fatal("input slice was mutated")
	}
}
