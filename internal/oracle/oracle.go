// Package oracle defines the language-generation collaborator interface.
// The oracle is a best-effort source of structured suggestions; everything it
// returns is validated and merged deterministically by the pipeline.
package oracle

import (
	"context"

	"github.com/tripweaver/tripweaver/internal/model"
)

// DetailRequest carries the context for expanding one scheduled stop.
type DetailRequest struct {
	Name       string
	City       string
	Time       string
	Styles     []string
	Enrichment string // optional grounding text gathered during collection
}

// Detail is the structured expansion for a stop. The pipeline turns it into
// an Activity; missing fields degrade to placeholders, never to errors.
type Detail struct {
	Description       string   `json:"description"`
	Duration          string   `json:"duration"`
	OpenHours         string   `json:"openHours"`
	Price             string   `json:"price"`
	Tips              []string `json:"tips"`
	NearbyFood        []string `json:"nearbyFood"`
	EstimatedDuration string   `json:"estimatedDuration"`
	BestTime          string   `json:"bestTime"`
	Image             string   `json:"image"`
}

// IntentRequest is the single-shot resolver input: current snapshot, the new
// message, the UI context it was sent from, and prior turns for grounding.
type IntentRequest struct {
	Snapshot *model.ItinerarySnapshot
	Message  model.ChatMessage
	Context  model.ChatContext
	History  []model.ChatMessage

	// Corrective is set on the one retry after a shape-validation failure.
	Corrective string
}

// IntentResult pairs the conversational reply with an optional structured
// preview. The resolver never mutates the snapshot.
type IntentResult struct {
	Reply   string
	Preview *model.ChatPreview
}

// Oracle is implemented by language-model adapters (openai) and by the
// deterministic rule-based fallback used when no API key is configured.
type Oracle interface {
	SuggestCandidates(ctx context.Context, city string, req model.TripRequest) ([]model.Candidate, error)
	ExpandDetail(ctx context.Context, req DetailRequest) (Detail, error)
	ResolveIntent(ctx context.Context, req IntentRequest) (IntentResult, error)
}
