package planner

import (
	"time"

	"github.com/samber/lo"

	"github.com/tripweaver/tripweaver/internal/model"
)

// assemble zips the day list and the activity map into one immutable
// snapshot. A failed invariant check here means a pipeline bug, not bad user
// input.
func assemble(req model.TripRequest, days []scheduledDay, activities map[string][]model.Activity) (*model.ItinerarySnapshot, error) {
	now := time.Now().UTC()
	snap := &model.ItinerarySnapshot{
		ID:              model.NewItineraryID(),
		Request:         req,
		Overview:        lo.Map(days, func(d scheduledDay, _ int) model.DaySummary { return d.Summary }),
		ActivitiesByDay: activities,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := model.ValidateSnapshot(snap); err != nil {
		return nil, err
	}
	return snap, nil
}
