package memory

import (
	"testing"

	"github.com/tripweaver/tripweaver/internal/store"
	"github.com/tripweaver/tripweaver/internal/store/storetest"
)

func TestMemoryStoreConformance(t *testing.T) {
	storetest.Run(t, func(t *testing.T) store.Store {
		return New()
	})
}
