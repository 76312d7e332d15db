// Package factory builds concrete collaborators from config. Selection
// happens here so run.go stays a pure wiring file.
package factory

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tripweaver/tripweaver/internal/config"
	storepkg "github.com/tripweaver/tripweaver/internal/store"
	storemem "github.com/tripweaver/tripweaver/internal/store/memory"
	storepg "github.com/tripweaver/tripweaver/internal/store/postgres"
)

// NewStore returns the store selected by cfg.StoreDriver. For postgres the
// schema is ensured before the store is handed out.
func NewStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (storepkg.Store, error) {
	switch cfg.StoreDriver {
	case "memory":
		log.Info().Msg("using in-memory store")
		return storemem.New(), nil
	case "postgres":
		db, err := storepg.Open(cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if err := storepg.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("ensure schema: %w", err)
		}
		log.Info().Msg("using postgres store")
		return storepg.NewWithDB(db), nil
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER: %s", cfg.StoreDriver)
	}
}
