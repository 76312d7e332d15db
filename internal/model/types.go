package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DateRange is an inclusive span of calendar dates.
type DateRange struct {
	Start Date `json:"start"`
	End   Date `json:"end"`
}

// Days returns the inclusive day count of the range.
func (r DateRange) Days() int {
	return r.Start.DaysUntil(r.End) + 1
}

// Travelers describes the party taking the trip.
type Travelers struct {
	Adults   int    `json:"adults"`
	Children int    `json:"children"`
	Type     string `json:"type"`
}

// TripRequest is the structured preference document a generation run starts
// from. It is immutable once accepted; invalid instances are rejected before
// any collaborator call.
type TripRequest struct {
	Country   string    `json:"country"`
	Cities    []string  `json:"cities"`
	DateRange DateRange `json:"dateRange"`
	Travelers Travelers `json:"travelers"`
	Styles    []string  `json:"styles"`
}

// DayCount returns the trip length in days, inclusive of both endpoints.
func (r TripRequest) DayCount() int { return r.DateRange.Days() }

// Candidate is an unscheduled point of interest. Candidates exist only
// inside the generation pipeline and are never persisted.
type Candidate struct {
	Name       string
	City       string
	Category   string
	Lat        float64
	Lng        float64
	StyleScore float64 // style affinity in [0,1]
	Enrichment string  // optional grounding text, may be empty
}

// Stop is a scheduled placement of a candidate on a specific day. Order
// within a day determines the travel-time computation sequence.
type Stop struct {
	Name string  `json:"name"`
	Time string  `json:"time"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
}

// DaySummary is the overview entry for one trip day.
type DaySummary struct {
	Day        int      `json:"day"`
	Date       Date     `json:"date"`
	Title      string   `json:"title"`
	Photo      string   `json:"photo"`
	Activities []string `json:"activities"`
	Stops      []Stop   `json:"locations"`
	Transport  *string  `json:"transport,omitempty"`
}

// Activity is the durable detail record behind a Stop. IDs have the form
// "<day>-<ordinal>" and are never renumbered once assigned, so chat turns can
// keep referring to them after later removals.
type Activity struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	Location          string   `json:"location"`
	Time              string   `json:"time"`
	Duration          string   `json:"duration"`
	Description       string   `json:"description"`
	Image             string   `json:"image"`
	OpenHours         string   `json:"openHours"`
	Price             string   `json:"price"`
	Tips              []string `json:"tips"`
	NearbyFood        []string `json:"nearbyFood"`
	EstimatedDuration string   `json:"estimatedDuration"`
	BestTime          string   `json:"bestTime"`
}

// ItinerarySnapshot is one immutable, fully assembled itinerary version.
// Mutation always produces a new snapshot; callers holding the old value keep
// seeing consistent pre-change state.
type ItinerarySnapshot struct {
	ID              string                `json:"id"`
	Request         TripRequest           `json:"plannerData"`
	Overview        []DaySummary          `json:"overview"`
	ActivitiesByDay map[string][]Activity `json:"activitiesByDay"`
	CreatedAt       time.Time             `json:"createdAt"`
	UpdatedAt       time.Time             `json:"updatedAt"`
}

// NewItineraryID returns an identifier of the form "itn_<12 hex>".
func NewItineraryID() string {
	return "itn_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
}

// NewMessageID returns an identifier of the form "msg_<10 hex>".
func NewMessageID() string {
	return "msg_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:10]
}

// Warning kinds returned alongside successful results.
const (
	WarnScheduleOverflow = "schedule_overflow"
	WarnNoMatch          = "no_match"
)

// Warning is a non-fatal condition surfaced next to a successful result.
type Warning struct {
	Kind    string `json:"kind"`
	Day     int    `json:"day,omitempty"`
	Message string `json:"message"`
}
