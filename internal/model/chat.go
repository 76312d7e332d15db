package model

import "time"

// Change actions accepted by the diff apply engine.
type ChangeAction string

const (
	ChangeAdd       ChangeAction = "add"
	ChangeRemove    ChangeAction = "remove"
	ChangeModify    ChangeAction = "modify"
	ChangeTransport ChangeAction = "transport"
)

// ChangeProposal is one discrete, reviewable mutation produced by the intent
// resolver. It is applied only after explicit user acceptance.
type ChangeProposal struct {
	Action   ChangeAction `json:"action"`
	Day      *int         `json:"day,omitempty"`
	Location *string      `json:"location,omitempty"`
	Details  *string      `json:"details,omitempty"`
}

// Preview kinds.
const (
	PreviewChange         = "change"
	PreviewRecommendation = "recommendation"
)

// Recommendation is one ranked suggestion in a recommendation preview.
type Recommendation struct {
	Name     string   `json:"name"`
	Location string   `json:"location"`
	Rating   *float64 `json:"rating,omitempty"`
	Cuisine  *string  `json:"cuisine,omitempty"`
}

// ChatPreview is an unapplied, user-reviewable proposal. It never applies
// itself; acceptance routes its changes to the diff apply engine.
type ChatPreview struct {
	Kind            string           `json:"type"`
	Title           string           `json:"title"`
	Changes         []ChangeProposal `json:"changes,omitempty"`
	Recommendations []Recommendation `json:"recommendations,omitempty"`
}

// ChatMessage is one turn of the conversation.
type ChatMessage struct {
	ID        string       `json:"id"`
	Text      string       `json:"text"`
	Sender    string       `json:"sender"`
	Timestamp time.Time    `json:"timestamp"`
	Preview   *ChatPreview `json:"preview,omitempty"`
}

// ChatContext carries the UI state a message was sent from.
type ChatContext struct {
	CurrentView   string  `json:"currentView"`
	CurrentDay    *int    `json:"currentDay,omitempty"`
	PendingAction *string `json:"pendingAction,omitempty"`
}
