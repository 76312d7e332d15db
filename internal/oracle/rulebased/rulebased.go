// Package rulebased is a deterministic Oracle used when no OpenAI key is
// configured. It produces the same itinerary for the same input, which keeps
// local development and the test suite reproducible.
package rulebased

import (
	"context"
	"fmt"
	"strings"

	"github.com/tripweaver/tripweaver/internal/geo"
	"github.com/tripweaver/tripweaver/internal/model"
	"github.com/tripweaver/tripweaver/internal/oracle"
)

type Oracle struct{}

func New() *Oracle { return &Oracle{} }

var _ oracle.Oracle = (*Oracle)(nil)

func (o *Oracle) SuggestCandidates(_ context.Context, city string, req model.TripRequest) ([]model.Candidate, error) {
	lat, lng := geo.CoordsFor(city)
	cands := []model.Candidate{
		{Name: "Arrival and check-in", City: city, Category: "logistics", Lat: lat, Lng: lng, StyleScore: 0.9},
		{Name: fmt.Sprintf("%s old town walk", city), City: city, Category: "sightseeing", Lat: lat + 0.01, Lng: lng + 0.01, StyleScore: 0.85},
	}
	styles := req.Styles
	if len(styles) == 0 {
		styles = []string{"sightseeing"}
	}
	for i, style := range styles {
		offset := float64(i+2) * 0.01
		cands = append(cands,
			model.Candidate{
				Name:       fmt.Sprintf("%s highlights of %s", title(style), city),
				City:       city,
				Category:   style,
				Lat:        lat + offset,
				Lng:        lng + offset,
				StyleScore: 0.8,
			},
			model.Candidate{
				Name:       fmt.Sprintf("Hidden %s spots near %s center", style, city),
				City:       city,
				Category:   style,
				Lat:        lat - offset,
				Lng:        lng - offset,
				StyleScore: 0.7,
			})
	}
	cands = append(cands, model.Candidate{
		Name: fmt.Sprintf("Dinner at a local favorite in %s", city),
		City: city, Category: "food", Lat: lat + 0.02, Lng: lng - 0.02, StyleScore: 0.75,
	})
	return cands, nil
}

func (o *Oracle) ExpandDetail(_ context.Context, req oracle.DetailRequest) (oracle.Detail, error) {
	theme := "sightseeing"
	if len(req.Styles) > 0 {
		theme = req.Styles[0]
	}
	desc := fmt.Sprintf("%s is a popular %s stop in %s.", req.Name, theme, req.City)
	if req.Enrichment != "" {
		desc = req.Enrichment
	}
	return oracle.Detail{
		Description:       desc,
		Duration:          "2h",
		OpenHours:         "09:00-18:00",
		Price:             "varies",
		Tips:              []string{fmt.Sprintf("Take your time around %s.", req.Name)},
		NearbyFood:        []string{fmt.Sprintf("Local eateries around %s", req.City)},
		EstimatedDuration: "2h",
		BestTime:          "afternoon",
		Image:             "/default-activity.jpg",
	}, nil
}

func (o *Oracle) ResolveIntent(_ context.Context, req oracle.IntentRequest) (oracle.IntentResult, error) {
	day := 1
	if req.Context.CurrentDay != nil {
		day = *req.Context.CurrentDay
	}
	city := req.Snapshot.Request.Country
	if len(req.Snapshot.Request.Cities) > 0 {
		city = req.Snapshot.Request.Cities[0]
	}

	if wantsRestaurants(req) {
		return oracle.IntentResult{
			Reply:   fmt.Sprintf("Here are a few places worth trying around %s. Pick one and I can add it to the plan.", city),
			Preview: restaurantPreview(city),
		}, nil
	}

	return oracle.IntentResult{
		Reply:   fmt.Sprintf("I loosened up day %d a little. Review the proposal and apply it if it looks right.", day),
		Preview: changePreview(day, req.Snapshot),
	}, nil
}

func wantsRestaurants(req oracle.IntentRequest) bool {
	if req.Context.PendingAction != nil && *req.Context.PendingAction == "restaurant" {
		return true
	}
	text := strings.ToLower(req.Message.Text)
	return strings.Contains(text, "restaurant") || strings.Contains(text, "food") || strings.Contains(text, "eat")
}

func restaurantPreview(city string) *model.ChatPreview {
	r1, r2, r3 := 4.6, 4.5, 4.3
	local, cafe, street := "local", "cafe", "street food"
	return &model.ChatPreview{
		Kind:  model.PreviewRecommendation,
		Title: fmt.Sprintf("Restaurants in %s", city),
		Recommendations: []model.Recommendation{
			{Name: fmt.Sprintf("%s Local Table", city), Location: fmt.Sprintf("%s center", city), Rating: &r1, Cuisine: &local},
			{Name: fmt.Sprintf("%s Corner Cafe", city), Location: fmt.Sprintf("%s old town", city), Rating: &r2, Cuisine: &cafe},
			{Name: fmt.Sprintf("%s Night Market", city), Location: fmt.Sprintf("%s market district", city), Rating: &r3, Cuisine: &street},
		},
	}
}

func changePreview(day int, snap *model.ItinerarySnapshot) *model.ChatPreview {
	removeTarget := "an existing stop"
	if acts := snap.ActivitiesByDay[fmt.Sprint(day)]; len(acts) > 0 {
		removeTarget = acts[0].Name
	}
	slowDown := "free up the afternoon"
	coffee := "a slow coffee break"
	cafeStop := "Cafe break"
	return &model.ChatPreview{
		Kind:  model.PreviewChange,
		Title: fmt.Sprintf("Adjust day %d", day),
		Changes: []model.ChangeProposal{
			{Action: model.ChangeRemove, Day: &day, Location: &removeTarget, Details: &slowDown},
			{Action: model.ChangeAdd, Day: &day, Location: &cafeStop, Details: &coffee},
		},
	}
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
