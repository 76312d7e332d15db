// Package routing defines the travel-time collaborator. Callers treat a
// missing or failing router as degraded mode and zero-fill leg durations;
// there is no retry loop in the core.
package routing

import (
	"context"
	"time"
)

// Point is a geographic coordinate.
type Point struct {
	Lat float64
	Lng float64
}

// Router computes leg durations between consecutive points. For n points it
// returns n-1 durations in order.
type Router interface {
	LegDurations(ctx context.Context, points []Point) ([]time.Duration, error)
}
