package store

import (
	"context"

	"github.com/tripweaver/tripweaver/internal/model"
)

// Store exposes persistence operations required by services.
// Implementations live under internal/store/<driver>/ (memory, postgres).
type Store interface {
	Itineraries() Itineraries
}

// Itineraries persists itinerary snapshots keyed by identifier. Snapshots
// are append-only versions: Replace swaps the whole document atomically, and
// implementations guarantee a single writer per identifier.
type Itineraries interface {
	// Save stores a new snapshot. model.ErrConflict when the ID exists.
	Save(ctx context.Context, snap *model.ItinerarySnapshot) error
	// Get returns the current snapshot. model.ErrNotFound when absent.
	Get(ctx context.Context, id string) (*model.ItinerarySnapshot, error)
	// Replace swaps the stored snapshot for an existing ID.
	// model.ErrNotFound when absent.
	Replace(ctx context.Context, snap *model.ItinerarySnapshot) error
}
