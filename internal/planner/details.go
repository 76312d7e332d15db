package planner

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/tripweaver/tripweaver/internal/model"
	"github.com/tripweaver/tripweaver/internal/oracle"
)

// expandDetails turns every scheduled stop into an Activity via the oracle,
// with bounded fan-out. Identifiers are "<day>-<ordinal>" where ordinal is
// the stop's 1-based position at enrichment time; they are never renumbered
// afterwards, so chat references stay stable across removals.
//
// An oracle failure for one stop degrades to a minimal activity instead of
// aborting the day.
func (p *Pipeline) expandDetails(ctx context.Context, req model.TripRequest, days []scheduledDay) map[string][]model.Activity {
	activities := make(map[string][]model.Activity, len(days))
	for _, d := range days {
		activities[strconv.Itoa(d.Summary.Day)] = make([]model.Activity, len(d.Summary.Stops))
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.opts.FanOutLimit)
	for di := range days {
		day := days[di]
		slot := activities[strconv.Itoa(day.Summary.Day)]
		for si := range day.Summary.Stops {
			si := si
			stop := day.Summary.Stops[si]
			cand := day.Candidates[si]
			g.Go(func() error {
				det, err := p.oracle.ExpandDetail(gctx, oracle.DetailRequest{
					Name:       stop.Name,
					City:       day.City,
					Time:       stop.Time,
					Styles:     req.Styles,
					Enrichment: cand.Enrichment,
				})
				if err != nil {
					p.log.Warn().Err(err).Str("stop", stop.Name).Int("day", day.Summary.Day).
						Msg("detail expansion failed, keeping minimal activity")
				}
				slot[si] = buildActivity(day.Summary.Day, si+1, stop, day.City, det, err)
				return nil
			})
		}
	}
	_ = g.Wait()
	return activities
}

func buildActivity(day, ordinal int, stop model.Stop, city string, det oracle.Detail, err error) model.Activity {
	act := model.Activity{
		ID:         fmt.Sprintf("%d-%d", day, ordinal),
		Name:       stop.Name,
		Location:   city,
		Time:       stop.Time,
		Tips:       []string{},
		NearbyFood: []string{},
	}
	if err != nil {
		return act
	}
	return mergeDetail(act, det)
}

// mergeDetail copies oracle detail onto an activity, substituting stable
// placeholders for anything the oracle left blank.
func mergeDetail(act model.Activity, det oracle.Detail) model.Activity {
	act.Description = det.Description
	act.Duration = orDefault(det.Duration, "2h")
	act.OpenHours = orDefault(det.OpenHours, "unknown")
	act.Price = orDefault(det.Price, "unknown")
	act.EstimatedDuration = orDefault(det.EstimatedDuration, act.Duration)
	act.BestTime = orDefault(det.BestTime, "afternoon")
	act.Image = orDefault(det.Image, "/default-activity.jpg")
	if len(det.Tips) > 0 {
		act.Tips = det.Tips
	}
	if len(det.NearbyFood) > 0 {
		act.NearbyFood = det.NearbyFood
	}
	return act
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
