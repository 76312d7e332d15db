package model

import (
	"fmt"
	"strconv"
	"strings"
)

// Clone returns a deep copy of the snapshot. Every mutation path works on a
// clone so concurrent readers never observe a half-applied change set.
func (s *ItinerarySnapshot) Clone() *ItinerarySnapshot {
	out := *s
	out.Overview = make([]DaySummary, len(s.Overview))
	for i, day := range s.Overview {
		d := day
		d.Activities = append([]string(nil), day.Activities...)
		d.Stops = append([]Stop(nil), day.Stops...)
		if day.Transport != nil {
			t := *day.Transport
			d.Transport = &t
		}
		out.Overview[i] = d
	}
	out.ActivitiesByDay = make(map[string][]Activity, len(s.ActivitiesByDay))
	for key, acts := range s.ActivitiesByDay {
		copied := make([]Activity, len(acts))
		for i, a := range acts {
			a.Tips = append([]string(nil), a.Tips...)
			a.NearbyFood = append([]string(nil), a.NearbyFood...)
			copied[i] = a
		}
		out.ActivitiesByDay[key] = copied
	}
	out.Request.Cities = append([]string(nil), s.Request.Cities...)
	out.Request.Styles = append([]string(nil), s.Request.Styles...)
	return &out
}

// ValidateSnapshot enforces the day/activity cross-reference invariant at
// every snapshot construction point:
//   - day indices are exactly 1..n with no gaps or repeats,
//   - the activity map keys equal the overview day set,
//   - every stop has an activity in the same day matched by name
//     (case-insensitive).
func ValidateSnapshot(s *ItinerarySnapshot) error {
	for i, day := range s.Overview {
		if day.Day != i+1 {
			return fmt.Errorf("%w: overview day %d at position %d", ErrInvariantViolation, day.Day, i)
		}
	}
	if len(s.ActivitiesByDay) != len(s.Overview) {
		return fmt.Errorf("%w: %d activity days for %d overview days",
			ErrInvariantViolation, len(s.ActivitiesByDay), len(s.Overview))
	}
	for _, day := range s.Overview {
		key := strconv.Itoa(day.Day)
		acts, ok := s.ActivitiesByDay[key]
		if !ok {
			return fmt.Errorf("%w: no activities recorded for day %d", ErrInvariantViolation, day.Day)
		}
		for _, stop := range day.Stops {
			if !hasActivityNamed(acts, stop.Name) {
				return fmt.Errorf("%w: stop %q on day %d has no matching activity",
					ErrInvariantViolation, stop.Name, day.Day)
			}
		}
	}
	return nil
}

func hasActivityNamed(acts []Activity, name string) bool {
	for _, a := range acts {
		if strings.EqualFold(a.Name, name) {
			return true
		}
	}
	return false
}
