package planner

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/tripweaver/tripweaver/internal/geo"
	"github.com/tripweaver/tripweaver/internal/model"
)

// The daily scheduling window. Stops outside it are clamped by the route
// enricher and surfaced as schedule_overflow warnings.
const (
	dayWindowStartMin = 9 * 60  // 09:00
	dayWindowEndMin   = 21 * 60 // 21:00
)

// scheduledDay pairs a DaySummary shell with the candidates behind its
// stops. Candidates is parallel to Summary.Stops so the detail enricher can
// reach the enrichment text gathered during collection.
type scheduledDay struct {
	Summary    model.DaySummary
	City       string
	Transition bool
	Candidates []model.Candidate
}

// buildSchedule distributes filtered candidates across the date range,
// assigning contiguous day blocks per city proportional to candidate count.
// The first day of every block after the first is a transition day and gets
// a reduced load. Days that outrun the candidate supply receive a single
// free-exploration placeholder instead of staying empty.
func buildSchedule(req model.TripRequest, byCity map[string][]model.Candidate, maxPerDay int) []scheduledDay {
	dayCount := req.DayCount()
	weights := lo.Map(req.Cities, func(city string, _ int) int { return len(byCity[city]) })
	blockLens := allocateDays(dayCount, weights)

	days := make([]scheduledDay, 0, dayCount)
	day := 0
	for ci, city := range req.Cities {
		queue := byCity[city]
		for b := 0; b < blockLens[ci]; b++ {
			day++
			transition := ci > 0 && b == 0

			load := maxPerDay
			if transition && load > 1 {
				load-- // leave room for travel into the new city
			}
			var picked []model.Candidate
			if len(queue) > 0 {
				n := min(load, len(queue))
				picked = queue[:n]
				queue = queue[n:]
			} else {
				picked = []model.Candidate{placeholderCandidate(city)}
			}

			days = append(days, scheduledDay{
				Summary:    daySummaryShell(req, day, city, picked),
				City:       city,
				Transition: transition,
				Candidates: picked,
			})
		}
	}
	return days
}

func daySummaryShell(req model.TripRequest, day int, city string, picked []model.Candidate) model.DaySummary {
	stops := make([]model.Stop, len(picked))
	labels := make([]string, len(picked))
	for i, c := range picked {
		stops[i] = model.Stop{
			Name: c.Name,
			Time: provisionalTime(i, len(picked)),
			Lat:  c.Lat,
			Lng:  c.Lng,
		}
		labels[i] = c.Name
	}
	return model.DaySummary{
		Day:        day,
		Date:       req.DateRange.Start.AddDays(day - 1),
		Title:      fmt.Sprintf("Day %d: %s", day, city),
		Photo:      "/city-arrival.jpg",
		Activities: labels,
		Stops:      stops,
	}
}

// provisionalTime spaces stops evenly across the daily window; the route
// enricher replaces these once leg durations are known.
func provisionalTime(slot, count int) string {
	if count < 1 {
		count = 1
	}
	minutes := dayWindowStartMin + slot*(dayWindowEndMin-dayWindowStartMin)/count
	return minutesToClock(minutes)
}

func placeholderCandidate(city string) model.Candidate {
	lat, lng := geo.CoordsFor(city)
	return model.Candidate{
		Name:     fmt.Sprintf("Free exploration in %s", city),
		City:     city,
		Category: "leisure",
		Lat:      lat,
		Lng:      lng,
	}
}

// allocateDays splits dayCount across cities proportionally to weight, with
// every city receiving at least one day. Rounding drift lands on the cities
// with the largest weights, in order.
func allocateDays(dayCount int, weights []int) []int {
	n := len(weights)
	if n == 0 {
		return nil
	}
	total := 0
	for _, w := range weights {
		total += w
	}
	out := make([]int, n)
	if total == 0 {
		return evenDaySplit(dayCount, n)
	}

	assigned := 0
	for i, w := range weights {
		out[i] = dayCount * w / total
		if out[i] < 1 {
			out[i] = 1
		}
		assigned += out[i]
	}
	// Drain or top up the drift one day at a time, heaviest cities first.
	order := heaviestFirst(weights)
	for assigned < dayCount {
		for _, i := range order {
			if assigned == dayCount {
				break
			}
			out[i]++
			assigned++
		}
	}
	for assigned > dayCount {
		for _, i := range order {
			if assigned == dayCount {
				break
			}
			if out[i] > 1 {
				out[i]--
				assigned--
			}
		}
	}
	return out
}

func heaviestFirst(weights []int) []int {
	order := make([]int, len(weights))
	for i := range order {
		order[i] = i
	}
	// insertion sort; city lists are tiny and stability keeps ties in input order
	for i := 1; i < len(order); i++ {
		for j := i; j > 0 && weights[order[j]] > weights[order[j-1]]; j-- {
			order[j], order[j-1] = order[j-1], order[j]
		}
	}
	return order
}
