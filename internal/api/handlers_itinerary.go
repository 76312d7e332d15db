package api

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	respond "github.com/tripweaver/tripweaver/internal/api/respond"
	"github.com/tripweaver/tripweaver/internal/model"
	"github.com/tripweaver/tripweaver/internal/services"
)

// ItineraryHandler serves generation, retrieval and apply endpoints.
type ItineraryHandler struct {
	svc *services.ItineraryService
}

func NewItineraryHandler(svc *services.ItineraryService) *ItineraryHandler {
	return &ItineraryHandler{svc: svc}
}

// itineraryResponse is a snapshot with warnings riding along.
type itineraryResponse struct {
	*model.ItinerarySnapshot
	Warnings []model.Warning `json:"warnings,omitempty"`
}

// CreateItinerary POST /api/itineraries
func (h *ItineraryHandler) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	var req model.TripRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	snap, warnings, err := h.svc.CreateItinerary(r.Context(), req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, itineraryResponse{ItinerarySnapshot: snap, Warnings: warnings})
}

// GetItinerary GET /api/itineraries/{itineraryId}
func (h *ItineraryHandler) GetItinerary(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["itineraryId"]

	snap, err := h.svc.GetItinerary(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, snap)
}

// ApplyPreview POST /api/itineraries/{itineraryId}/apply-preview
func (h *ItineraryHandler) ApplyPreview(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["itineraryId"]

	var req struct {
		SourceMessageID string                 `json:"sourceMessageId"`
		Changes         []model.ChangeProposal `json:"changes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return
	}

	out, err := h.svc.ApplyChanges(r.Context(), id, req.Changes)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	warnings := out.Warnings
	if warnings == nil {
		warnings = []model.Warning{}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"updatedItinerary": out.Snapshot,
		"systemMessage":    out.SystemMessage,
		"warnings":         warnings,
	})
}
