package planner

import (
	"context"
	"fmt"
	"time"

	"github.com/samber/lo"

	"github.com/tripweaver/tripweaver/internal/model"
	"github.com/tripweaver/tripweaver/internal/routing"
)

// defaultVisitMin is the assumed dwell time at a stop when no better estimate
// exists.
const defaultVisitMin = 90

// RecomputeStops rewrites the display times of an ordered stop list: each
// stop starts after the previous stop's visit plus the computed travel leg,
// clamped to the daily window. Overflow past the window never pushes a stop
// to the next day; it is surfaced as a schedule_overflow warning instead.
//
// When the routing collaborator is missing or failing, every leg is zero and
// no error propagates. A full-zero result is advisory, not evidence that the
// stops are co-located.
func (p *Pipeline) RecomputeStops(ctx context.Context, day int, stops []model.Stop) ([]model.Stop, []model.Warning) {
	if len(stops) == 0 {
		return stops, nil
	}

	legs := p.legDurations(ctx, stops)
	out := append([]model.Stop(nil), stops...)

	cur := dayWindowStartMin
	overflow := false
	for i := range out {
		if i > 0 {
			cur += defaultVisitMin + int(legs[i-1].Minutes())
		}
		if cur > dayWindowEndMin {
			cur = dayWindowEndMin
			overflow = true
		}
		out[i].Time = minutesToClock(cur)
	}

	var warnings []model.Warning
	if overflow {
		warnings = append(warnings, model.Warning{
			Kind:    model.WarnScheduleOverflow,
			Day:     day,
			Message: fmt.Sprintf("day %d does not fit the %s-%s window; later stops were clamped", day, minutesToClock(dayWindowStartMin), minutesToClock(dayWindowEndMin)),
		})
	}
	return out, warnings
}

// legDurations asks the router for consecutive-pair durations, zero-filling
// whenever the collaborator is absent or misbehaves.
func (p *Pipeline) legDurations(ctx context.Context, stops []model.Stop) []time.Duration {
	zeros := make([]time.Duration, len(stops)-1)
	if p.router == nil || len(stops) < 2 {
		return zeros
	}

	points := lo.Map(stops, func(s model.Stop, _ int) routing.Point {
		return routing.Point{Lat: s.Lat, Lng: s.Lng}
	})
	legs, err := p.router.LegDurations(ctx, points)
	if err != nil || len(legs) != len(zeros) {
		p.log.Warn().Err(err).Int("stops", len(stops)).Msg("routing unavailable, using zero-length legs")
		return zeros
	}
	return legs
}

func minutesToClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
