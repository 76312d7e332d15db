// Package openai adapts the OpenAI chat completions API to the oracle
// interface. All three calls constrain the model to JSON output and decode it
// into typed results; the pipeline owns validation and degraded-mode policy.
package openai

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/shared"

	"github.com/tripweaver/tripweaver/internal/model"
	"github.com/tripweaver/tripweaver/internal/oracle"
)

type Client struct {
	api            openai.Client
	itineraryModel string
	chatModel      string
}

func New(apiKey, itineraryModel, chatModel string) *Client {
	return &Client{
		api:            openai.NewClient(option.WithAPIKey(apiKey)),
		itineraryModel: itineraryModel,
		chatModel:      chatModel,
	}
}

var _ oracle.Oracle = (*Client)(nil)

const suggestSystem = `You are a travel planner. Reply with a single JSON object:
{"candidates":[{"name":string,"category":string,"lat":number,"lng":number,"styleScore":number}]}
styleScore is the affinity to the traveler's styles in [0,1]. 8 to 12 candidates, no duplicates.`

func (c *Client) SuggestCandidates(ctx context.Context, city string, req model.TripRequest) ([]model.Candidate, error) {
	user := fmt.Sprintf("City: %s, %s. Travel styles: %v. Party: %d adults, %d children (%s).",
		city, req.Country, req.Styles, req.Travelers.Adults, req.Travelers.Children, req.Travelers.Type)

	var out struct {
		Candidates []struct {
			Name       string  `json:"name"`
			Category   string  `json:"category"`
			Lat        float64 `json:"lat"`
			Lng        float64 `json:"lng"`
			StyleScore float64 `json:"styleScore"`
		} `json:"candidates"`
	}
	if err := c.completeJSON(ctx, c.itineraryModel, suggestSystem, user, &out); err != nil {
		return nil, fmt.Errorf("suggest candidates for %s: %w", city, err)
	}

	cands := make([]model.Candidate, 0, len(out.Candidates))
	for _, raw := range out.Candidates {
		if raw.Name == "" {
			continue
		}
		score := raw.StyleScore
		if score < 0 {
			score = 0
		}
		if score > 1 {
			score = 1
		}
		cands = append(cands, model.Candidate{
			Name:       raw.Name,
			City:       city,
			Category:   raw.Category,
			Lat:        raw.Lat,
			Lng:        raw.Lng,
			StyleScore: score,
		})
	}
	return cands, nil
}

const detailSystem = `You expand one itinerary stop into structured detail. Reply with a single JSON object:
{"description":string,"duration":string,"openHours":string,"price":string,"tips":[string],
"nearbyFood":[string],"estimatedDuration":string,"bestTime":string,"image":string}
Keep the description to two or three sentences. Use the grounding text when provided.`

func (c *Client) ExpandDetail(ctx context.Context, req oracle.DetailRequest) (oracle.Detail, error) {
	user := fmt.Sprintf("Stop: %s in %s at %s. Styles: %v.", req.Name, req.City, req.Time, req.Styles)
	if req.Enrichment != "" {
		user += "\nGrounding text:\n" + req.Enrichment
	}

	var detail oracle.Detail
	if err := c.completeJSON(ctx, c.itineraryModel, detailSystem, user, &detail); err != nil {
		return oracle.Detail{}, fmt.Errorf("expand detail for %s: %w", req.Name, err)
	}
	return detail, nil
}

const intentSystem = `You translate a traveler's chat message into either an itinerary change proposal or
restaurant recommendations. Reply with a single JSON object:
{"reply":string,"preview":{"type":"change","title":string,"changes":[{"action":"add|remove|modify|transport",
"day":int,"location":string,"details":string}]}}
or
{"reply":string,"preview":{"type":"recommendation","title":string,"recommendations":[{"name":string,
"location":string,"rating":number,"cuisine":string}]}}
or {"reply":string,"preview":null} when no concrete proposal fits.
Never invent days outside the trip. Proposals are previews; they are not applied until accepted.`

func (c *Client) ResolveIntent(ctx context.Context, req oracle.IntentRequest) (oracle.IntentResult, error) {
	snapshotJSON, err := json.Marshal(req.Snapshot)
	if err != nil {
		return oracle.IntentResult{}, fmt.Errorf("marshal snapshot: %w", err)
	}

	user := fmt.Sprintf("Current itinerary:\n%s\n\nUI context: view=%s", snapshotJSON, req.Context.CurrentView)
	if req.Context.CurrentDay != nil {
		user += fmt.Sprintf(", day=%d", *req.Context.CurrentDay)
	}
	if req.Context.PendingAction != nil {
		user += fmt.Sprintf(", pendingAction=%s", *req.Context.PendingAction)
	}
	for _, turn := range req.History {
		user += fmt.Sprintf("\n[%s] %s", turn.Sender, turn.Text)
	}
	user += "\n\nNew message: " + req.Message.Text
	if req.Corrective != "" {
		user += "\n\n" + req.Corrective
	}

	var out struct {
		Reply   string             `json:"reply"`
		Preview *model.ChatPreview `json:"preview"`
	}
	if err := c.completeJSON(ctx, c.chatModel, intentSystem, user, &out); err != nil {
		return oracle.IntentResult{}, fmt.Errorf("resolve intent: %w", err)
	}
	return oracle.IntentResult{Reply: out.Reply, Preview: out.Preview}, nil
}

// completeJSON performs one JSON-mode completion and decodes the content.
func (c *Client) completeJSON(ctx context.Context, mdl, system, user string, out interface{}) error {
	resp, err := c.api.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(mdl),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return err
	}
	if len(resp.Choices) == 0 {
		return fmt.Errorf("empty completion")
	}
	if err := json.Unmarshal([]byte(resp.Choices[0].Message.Content), out); err != nil {
		return fmt.Errorf("decode completion: %w", err)
	}
	return nil
}
