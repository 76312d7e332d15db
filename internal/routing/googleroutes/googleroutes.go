// Package googleroutes adapts the Google Routes API computeRoutes endpoint.
package googleroutes

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/tripweaver/tripweaver/internal/routing"
)

const computeRoutesURL = "https://routes.googleapis.com/directions/v2:computeRoutes"

type Router struct {
	client *resty.Client
	apiKey string
}

func New(apiKey string) *Router {
	return &Router{
		client: resty.New().SetTimeout(10 * time.Second),
		apiKey: apiKey,
	}
}

var _ routing.Router = (*Router)(nil)

type latLng struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type waypoint struct {
	Location struct {
		LatLng latLng `json:"latLng"`
	} `json:"location"`
}

type routeRequest struct {
	Origin      waypoint `json:"origin"`
	Destination waypoint `json:"destination"`
	TravelMode  string   `json:"travelMode"`
}

type routeResponse struct {
	Routes []struct {
		Duration string `json:"duration"` // e.g. "723s"
	} `json:"routes"`
}

// LegDurations issues one computeRoutes call per consecutive pair. The Routes
// API prices per element, so the planner bounds the number of stops per day
// long before this becomes a hot loop.
func (r *Router) LegDurations(ctx context.Context, points []routing.Point) ([]time.Duration, error) {
	if len(points) < 2 {
		return nil, nil
	}
	legs := make([]time.Duration, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		d, err := r.legDuration(ctx, points[i-1], points[i])
		if err != nil {
			return nil, err
		}
		legs = append(legs, d)
	}
	return legs, nil
}

func (r *Router) legDuration(ctx context.Context, from, to routing.Point) (time.Duration, error) {
	req := routeRequest{TravelMode: "TRANSIT"}
	req.Origin.Location.LatLng = latLng{Latitude: from.Lat, Longitude: from.Lng}
	req.Destination.Location.LatLng = latLng{Latitude: to.Lat, Longitude: to.Lng}

	var out routeResponse
	resp, err := r.client.R().
		SetContext(ctx).
		SetHeader("X-Goog-Api-Key", r.apiKey).
		SetHeader("X-Goog-FieldMask", "routes.duration").
		SetBody(req).
		SetResult(&out).
		Post(computeRoutesURL)
	if err != nil {
		return 0, err
	}
	if resp.IsError() {
		return 0, fmt.Errorf("routes api status %d", resp.StatusCode())
	}
	if len(out.Routes) == 0 {
		return 0, fmt.Errorf("routes api returned no routes")
	}
	d, err := time.ParseDuration(out.Routes[0].Duration)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", out.Routes[0].Duration, err)
	}
	return d, nil
}
