// Package memory is the default in-process store. It keeps deep copies on
// both write and read so callers can never alias the stored document.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/tripweaver/tripweaver/internal/model"
	"github.com/tripweaver/tripweaver/internal/store"
)

type memStore struct {
	itineraries *itineraries
}

func New() store.Store {
	return &memStore{itineraries: &itineraries{snaps: make(map[string]*model.ItinerarySnapshot)}}
}

func (s *memStore) Itineraries() store.Itineraries { return s.itineraries }

// HealthPing implements health.HealthPinger; the in-memory store is always
// reachable.
func (s *memStore) HealthPing(context.Context) error { return nil }

type itineraries struct {
	mu    sync.RWMutex
	snaps map[string]*model.ItinerarySnapshot
}

func (it *itineraries) Save(_ context.Context, snap *model.ItinerarySnapshot) error {
	it.mu.Lock()
	defer it.mu.Unlock()
	if _, exists := it.snaps[snap.ID]; exists {
		return fmt.Errorf("%w: itinerary %s already exists", model.ErrConflict, snap.ID)
	}
	it.snaps[snap.ID] = snap.Clone()
	return nil
}

func (it *itineraries) Get(_ context.Context, id string) (*model.ItinerarySnapshot, error) {
	it.mu.RLock()
	defer it.mu.RUnlock()
	snap, ok := it.snaps[id]
	if !ok {
		return nil, fmt.Errorf("%w: itinerary %s", model.ErrNotFound, id)
	}
	return snap.Clone(), nil
}

func (it *itineraries) Replace(_ context.Context, snap *model.ItinerarySnapshot) error {
	it.mu.Lock()
	defer it.mu.Unlock()
	if _, ok := it.snaps[snap.ID]; !ok {
		return fmt.Errorf("%w: itinerary %s", model.ErrNotFound, snap.ID)
	}
	it.snaps[snap.ID] = snap.Clone()
	return nil
}
