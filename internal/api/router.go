package api

import (
	"github.com/gorilla/mux"

	"github.com/tripweaver/tripweaver/internal/api/recovery"
	"github.com/tripweaver/tripweaver/internal/services"
)

// NewRouter wires all API routes onto a gorilla/mux router.
func NewRouter(itineraries *services.ItineraryService, chat *services.ChatService) *mux.Router {
	router := mux.NewRouter()

	// Global middlewares
	router.Use(recovery.Middleware)

	healthHandler := NewHealthHandler()
	itineraryHandler := NewItineraryHandler(itineraries)
	chatHandler := NewChatHandler(chat)

	// Health endpoint
	router.HandleFunc("/api/health", healthHandler.CheckHealth).Methods("GET")

	// Itinerary endpoints
	router.HandleFunc("/api/itineraries", itineraryHandler.CreateItinerary).Methods("POST")
	router.HandleFunc("/api/itineraries/{itineraryId:itn_[0-9a-f]{12}}", itineraryHandler.GetItinerary).Methods("GET")

	// Chat-driven change flow
	router.HandleFunc("/api/itineraries/{itineraryId:itn_[0-9a-f]{12}}/chat", chatHandler.HandleChat).Methods("POST")
	router.HandleFunc("/api/itineraries/{itineraryId:itn_[0-9a-f]{12}}/apply-preview", itineraryHandler.ApplyPreview).Methods("POST")

	return router
}
