package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/tripweaver/tripweaver/internal/model"
	"github.com/tripweaver/tripweaver/internal/oracle"
	"github.com/tripweaver/tripweaver/internal/store"
	"github.com/tripweaver/tripweaver/internal/validate"
)

// correctiveHint is sent on the single retry after a resolver response failed
// shape validation.
const correctiveHint = "Your previous response did not match the required JSON shape. " +
	"Return a JSON object with a non-empty \"reply\" string and, optionally, a \"preview\" " +
	"that is either type \"change\" with a non-empty \"changes\" list (days inside the trip) " +
	"or type \"recommendation\" with a non-empty \"recommendations\" list. Never mix the two."

// fallbackReply is returned when the resolver fails twice. The turn still
// succeeds; it just carries no preview.
const fallbackReply = "I couldn't work out a concrete change from that just now. " +
	"Could you rephrase it, for example \"remove the museum on day 2\" or \"add a food market on day 3\"?"

// ChatService orchestrates one conversational turn: load the snapshot, ask
// the intent resolver, validate the proposed preview, retry once with a
// corrective hint, and fall back to a plain-text reply if the resolver cannot
// produce a legal shape. Nothing here mutates the itinerary.
type ChatService struct {
	store  store.Store
	oracle oracle.Oracle
	log    zerolog.Logger
}

// NewChatService creates a new chat service.
func NewChatService(s store.Store, o oracle.Oracle, log zerolog.Logger) *ChatService {
	return &ChatService{store: s, oracle: o, log: log}
}

// HandleMessage resolves one user message against the itinerary's current
// snapshot and returns the assistant's reply, optionally carrying a preview
// for the user to accept or dismiss.
func (s *ChatService) HandleMessage(ctx context.Context, itineraryID string, msg model.ChatMessage, chatCtx model.ChatContext, history []model.ChatMessage) (*model.ChatMessage, error) {
	if itineraryID == "" {
		return nil, fmt.Errorf("%w: itinerary id is required", model.ErrValidation)
	}
	if msg.Text == "" {
		return nil, fmt.Errorf("%w: message text is required", model.ErrValidation)
	}

	snap, err := s.store.Itineraries().Get(ctx, itineraryID)
	if err != nil {
		return nil, err
	}

	if msg.ID == "" {
		msg.ID = model.NewMessageID()
	}
	if msg.Sender == "" {
		msg.Sender = "user"
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}

	req := oracle.IntentRequest{
		Snapshot: snap,
		Message:  msg,
		Context:  chatCtx,
		History:  history,
	}
	dayCount := snap.Request.DayCount()

	res, err := s.resolve(ctx, req, dayCount)
	if err != nil {
		req.Corrective = correctiveHint
		res, err = s.resolve(ctx, req, dayCount)
	}
	if err != nil {
		s.log.Warn().Err(err).
			Str("itineraryId", itineraryID).
			Str("messageId", msg.ID).
			Msg("intent resolution failed twice, replying without a preview")
		res = oracle.IntentResult{Reply: fallbackReply}
	}

	return &model.ChatMessage{
		ID:        model.NewMessageID(),
		Text:      res.Reply,
		Sender:    "assistant",
		Timestamp: time.Now().UTC(),
		Preview:   res.Preview,
	}, nil
}

// resolve runs one resolver call and enforces the response contract.
func (s *ChatService) resolve(ctx context.Context, req oracle.IntentRequest, dayCount int) (oracle.IntentResult, error) {
	res, err := s.oracle.ResolveIntent(ctx, req)
	if err != nil {
		return oracle.IntentResult{}, fmt.Errorf("%w: %v", model.ErrIntentResolutionFailed, err)
	}
	if res.Reply == "" {
		return oracle.IntentResult{}, fmt.Errorf("%w: empty reply", model.ErrIntentResolutionFailed)
	}
	if err := validate.Preview(res.Preview, dayCount); err != nil {
		return oracle.IntentResult{}, fmt.Errorf("%w: %v", model.ErrIntentResolutionFailed, err)
	}
	return res, nil
}
