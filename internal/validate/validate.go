// Package validate holds request validation helpers shared by the service
// layer and the HTTP handlers. Everything here runs before any collaborator
// call, so a rejected request is never partially applied.
package validate

import (
	"fmt"

	"github.com/tripweaver/tripweaver/internal/model"
)

var changeActions = map[model.ChangeAction]bool{
	model.ChangeAdd:       true,
	model.ChangeRemove:    true,
	model.ChangeModify:    true,
	model.ChangeTransport: true,
}

// TripRequest checks the structured preference document a generation run
// starts from.
func TripRequest(req model.TripRequest) error {
	if req.Country == "" {
		return fmt.Errorf("%w: country is required", model.ErrValidation)
	}
	if len(req.Cities) == 0 {
		return fmt.Errorf("%w: at least one city is required", model.ErrValidation)
	}
	for i, city := range req.Cities {
		if city == "" {
			return fmt.Errorf("%w: cities[%d] is empty", model.ErrValidation, i)
		}
	}
	if req.DateRange.Start.IsZero() || req.DateRange.End.IsZero() {
		return fmt.Errorf("%w: dateRange start and end are required", model.ErrValidation)
	}
	if req.DateRange.Start.After(req.DateRange.End) {
		return fmt.Errorf("%w: dateRange start is after end", model.ErrValidation)
	}
	if req.Travelers.Adults < 1 {
		return fmt.Errorf("%w: at least 1 adult is required", model.ErrValidation)
	}
	if req.Travelers.Children < 0 {
		return fmt.Errorf("%w: children must be zero or more", model.ErrValidation)
	}
	if len(req.Styles) == 0 {
		return fmt.Errorf("%w: at least one style is required", model.ErrValidation)
	}
	return nil
}

// Changes checks an accepted change list against a trip's day count. Day
// indices must land inside the trip; an out-of-range target is rejected here
// rather than silently growing the itinerary.
func Changes(changes []model.ChangeProposal, dayCount int) error {
	for i, c := range changes {
		if !changeActions[c.Action] {
			return fmt.Errorf("%w: changes[%d] has unknown action %q", model.ErrValidation, i, c.Action)
		}
		if c.Day != nil && (*c.Day < 1 || *c.Day > dayCount) {
			return fmt.Errorf("%w: changes[%d] targets day %d outside 1..%d",
				model.ErrValidation, i, *c.Day, dayCount)
		}
	}
	return nil
}

// Preview checks that a resolver response has exactly one of the two legal
// shapes. A failure here triggers the resolver's single corrective retry.
func Preview(p *model.ChatPreview, dayCount int) error {
	if p == nil {
		return nil
	}
	switch p.Kind {
	case model.PreviewChange:
		if len(p.Changes) == 0 {
			return fmt.Errorf("%w: change preview carries no changes", model.ErrValidation)
		}
		if len(p.Recommendations) > 0 {
			return fmt.Errorf("%w: change preview carries recommendations", model.ErrValidation)
		}
		return Changes(p.Changes, dayCount)
	case model.PreviewRecommendation:
		if len(p.Recommendations) == 0 {
			return fmt.Errorf("%w: recommendation preview carries no entries", model.ErrValidation)
		}
		if len(p.Changes) > 0 {
			return fmt.Errorf("%w: recommendation preview carries changes", model.ErrValidation)
		}
		for i, rec := range p.Recommendations {
			if rec.Name == "" {
				return fmt.Errorf("%w: recommendations[%d] has no name", model.ErrValidation, i)
			}
		}
		return nil
	default:
		return fmt.Errorf("%w: unknown preview type %q", model.ErrValidation, p.Kind)
	}
}
