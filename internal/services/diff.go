package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/tripweaver/tripweaver/internal/geo"
	"github.com/tripweaver/tripweaver/internal/model"
)

// applyChange mutates the working snapshot in place and records which days
// need their stop times recomputed. It never fails: a change that cannot find
// its target degrades to a warning (remove) or an add (modify).
func (s *ItineraryService) applyChange(ctx context.Context, snap *model.ItinerarySnapshot, change model.ChangeProposal, touched map[int]bool) []model.Warning {
	day := 1
	if change.Day != nil {
		day = *change.Day
	}

	switch change.Action {
	case model.ChangeRemove:
		return s.applyRemove(snap, day, change, touched)
	case model.ChangeAdd:
		s.applyAdd(ctx, snap, day, change, touched)
	case model.ChangeModify:
		s.applyModify(ctx, snap, day, change, touched)
	case model.ChangeTransport:
		s.applyTransport(snap, day, change, touched)
	}
	return nil
}

func (s *ItineraryService) applyRemove(snap *model.ItinerarySnapshot, day int, change model.ChangeProposal, touched map[int]bool) []model.Warning {
	key := strconv.Itoa(day)
	acts := snap.ActivitiesByDay[key]

	target := ""
	if change.Location != nil {
		target = *change.Location
	}
	idx := matchActivity(acts, target)
	if idx < 0 {
		return []model.Warning{{
			Kind:    model.WarnNoMatch,
			Day:     day,
			Message: fmt.Sprintf("Nothing on day %d matches %q, so nothing was removed.", day, target),
		}}
	}

	snap.ActivitiesByDay[key] = append(acts[:idx:idx], acts[idx+1:]...)
	touched[day] = true
	return nil
}

func (s *ItineraryService) applyAdd(ctx context.Context, snap *model.ItinerarySnapshot, day int, change model.ChangeProposal, touched map[int]bool) {
	key := strconv.Itoa(day)
	acts := snap.ActivitiesByDay[key]

	name := "New stop"
	if change.Location != nil && *change.Location != "" {
		name = *change.Location
	}
	desc := "Added from chat."
	if change.Details != nil && *change.Details != "" {
		desc = *change.Details
	}

	act := model.Activity{
		ID:                fmt.Sprintf("%d-%d", day, nextOrdinal(acts)),
		Name:              name,
		Location:          cityForDay(snap, day),
		Time:              "18:00",
		Duration:          "2h",
		Description:       desc,
		Image:             "/default-activity.jpg",
		OpenHours:         "unknown",
		Price:             "unknown",
		Tips:              []string{},
		NearbyFood:        []string{},
		EstimatedDuration: "2h",
		BestTime:          "afternoon",
	}
	if s.enrichOnAdd && s.pipeline != nil {
		act = s.pipeline.ExpandActivity(ctx, act, act.Location, snap.Request.Styles)
	}

	snap.ActivitiesByDay[key] = append(acts, act)
	touched[day] = true
}

func (s *ItineraryService) applyModify(ctx context.Context, snap *model.ItinerarySnapshot, day int, change model.ChangeProposal, touched map[int]bool) {
	key := strconv.Itoa(day)
	acts := snap.ActivitiesByDay[key]

	target := ""
	if change.Location != nil {
		target = *change.Location
	}
	idx := matchActivity(acts, target)
	if idx < 0 {
		// Nothing to modify; the intent still deserves an effect, so the
		// change lands as a new stop instead.
		s.applyAdd(ctx, snap, day, change, touched)
		return
	}

	if change.Details != nil && *change.Details != "" {
		if acts[idx].Description == "" || acts[idx].Description == "Added from chat." {
			acts[idx].Description = *change.Details
		} else {
			acts[idx].Description += "\n\n" + *change.Details
		}
	}
	touched[day] = true
}

func (s *ItineraryService) applyTransport(snap *model.ItinerarySnapshot, day int, change model.ChangeProposal, touched map[int]bool) {
	note := "Transport updated"
	switch {
	case change.Details != nil && *change.Details != "":
		note = *change.Details
	case change.Location != nil && *change.Location != "":
		note = *change.Location
	}

	for i := range snap.Overview {
		if snap.Overview[i].Day == day {
			snap.Overview[i].Transport = &note
			break
		}
	}
	touched[day] = true
}

// matchActivity finds the activity whose name or location matches target.
// Exact case-insensitive matches win; otherwise the first substring match is
// taken. Returns -1 when nothing matches or the target is empty.
func matchActivity(acts []model.Activity, target string) int {
	if target == "" {
		return -1
	}
	for i, a := range acts {
		if strings.EqualFold(a.Name, target) || strings.EqualFold(a.Location, target) {
			return i
		}
	}
	t := strings.ToLower(target)
	for i, a := range acts {
		if strings.Contains(strings.ToLower(a.Name), t) || strings.Contains(strings.ToLower(a.Location), t) {
			return i
		}
	}
	return -1
}

// nextOrdinal continues a day's "<day>-<ordinal>" ID sequence past the
// highest ordinal ever assigned, so IDs of removed activities are never
// reused within a snapshot lineage.
func nextOrdinal(acts []model.Activity) int {
	max := 0
	for _, a := range acts {
		if i := strings.LastIndex(a.ID, "-"); i >= 0 {
			if n, err := strconv.Atoi(a.ID[i+1:]); err == nil && n > max {
				max = n
			}
		}
	}
	return max + 1
}

// cityForDay recovers the day's city from its overview title, falling back to
// the last requested city.
func cityForDay(snap *model.ItinerarySnapshot, day int) string {
	for _, d := range snap.Overview {
		if d.Day == day {
			if i := strings.Index(d.Title, ": "); i >= 0 {
				return d.Title[i+2:]
			}
		}
	}
	if n := len(snap.Request.Cities); n > 0 {
		return snap.Request.Cities[n-1]
	}
	return ""
}

// recomputeDay rebuilds a touched day's stop list from its activities,
// reruns the route enrichment over the new order and resyncs the overview
// labels and activity display times.
func (s *ItineraryService) recomputeDay(ctx context.Context, snap *model.ItinerarySnapshot, day int) []model.Warning {
	key := strconv.Itoa(day)
	acts := snap.ActivitiesByDay[key]

	di := -1
	for i := range snap.Overview {
		if snap.Overview[i].Day == day {
			di = i
			break
		}
	}
	if di < 0 {
		return nil
	}

	// Coordinates survive from the previous stop list where names still
	// match; new stops get deterministic placeholder coordinates.
	prev := make(map[string]model.Stop, len(snap.Overview[di].Stops))
	for _, st := range snap.Overview[di].Stops {
		prev[strings.ToLower(st.Name)] = st
	}

	stops := lo.Map(acts, func(a model.Activity, _ int) model.Stop {
		if st, ok := prev[strings.ToLower(a.Name)]; ok {
			return model.Stop{Name: a.Name, Lat: st.Lat, Lng: st.Lng}
		}
		lat, lng := geo.CoordsFor(a.Name)
		return model.Stop{Name: a.Name, Lat: lat, Lng: lng}
	})

	stops, warnings := s.pipeline.RecomputeStops(ctx, day, stops)

	for i := range acts {
		acts[i].Time = stops[i].Time
	}
	snap.ActivitiesByDay[key] = acts
	snap.Overview[di].Stops = stops
	snap.Overview[di].Activities = lo.Map(acts, func(a model.Activity, _ int) string { return a.Name })
	return warnings
}
