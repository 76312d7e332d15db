package planner

import (
	"strings"

	"github.com/tripweaver/tripweaver/internal/model"
)

const (
	styleWeight     = 0.7
	diversityWeight = 0.3
)

// scoreAndFilter ranks candidates per city and trims each city's list to its
// share of the trip's stop budget. Selection is greedy: each pick re-weights
// remaining candidates so a run of same-category picks loses ground to a
// fresh category. Deterministic given identical inputs; ties keep the
// original candidate order.
func scoreAndFilter(cands []model.Candidate, req model.TripRequest, maxPerDay int) map[string][]model.Candidate {
	byCity := make(map[string][]model.Candidate)
	for _, c := range cands {
		key := strings.ToLower(c.City)
		byCity[key] = append(byCity[key], c)
	}

	shares := evenDaySplit(req.DayCount(), len(req.Cities))
	out := make(map[string][]model.Candidate, len(req.Cities))
	for i, city := range req.Cities {
		quota := shares[i] * maxPerDay
		out[city] = selectDiverse(byCity[strings.ToLower(city)], req.Styles, quota)
	}
	return out
}

func selectDiverse(cands []model.Candidate, styles []string, quota int) []model.Candidate {
	selected := make([]model.Candidate, 0, quota)
	used := make([]bool, len(cands))
	categoryPicks := make(map[string]int)

	for len(selected) < quota {
		bestIdx := -1
		best := -1.0
		for idx, c := range cands {
			if used[idx] {
				continue
			}
			category := strings.ToLower(c.Category)
			score := styleWeight*styleAffinity(c, styles) +
				diversityWeight/float64(1+categoryPicks[category])
			// strict greater-than keeps earlier candidates on ties
			if score > best {
				best = score
				bestIdx = idx
			}
		}
		if bestIdx < 0 {
			break
		}
		used[bestIdx] = true
		categoryPicks[strings.ToLower(cands[bestIdx].Category)]++
		selected = append(selected, cands[bestIdx])
	}
	return selected
}

func styleAffinity(c model.Candidate, styles []string) float64 {
	score := c.StyleScore
	for _, s := range styles {
		if strings.EqualFold(s, c.Category) {
			score += 0.2
			break
		}
	}
	if score > 1 {
		score = 1
	}
	return score
}

// evenDaySplit divides dayCount across n cities, earlier cities absorbing
// the remainder. Used for the scorer's quota; the scheduler re-splits by
// candidate weight afterwards.
func evenDaySplit(dayCount, n int) []int {
	if n == 0 {
		return nil
	}
	out := make([]int, n)
	base := dayCount / n
	rem := dayCount % n
	for i := range out {
		out[i] = base
		if i < rem {
			out[i]++
		}
	}
	return out
}
