// Package postgres stores each itinerary snapshot as one JSONB document row.
// Row-level locking on UPDATE gives the single-writer-per-identifier
// guarantee the services layer relies on.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/tripweaver/tripweaver/internal/model"
	"github.com/tripweaver/tripweaver/internal/store"
)

const schema = `
CREATE TABLE IF NOT EXISTS itineraries (
    itinerary_id TEXT PRIMARY KEY,
    doc          JSONB NOT NULL,
    created_at   TIMESTAMPTZ NOT NULL,
    updated_at   TIMESTAMPTZ NOT NULL
);`

// Open opens a PostgreSQL connection using the pgx stdlib driver and
// verifies connectivity.
func Open(dsn string) (*sql.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is empty")
	}
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// EnsureSchema creates the itineraries table when missing.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, schema)
	return err
}

// NewWithDB constructs a Postgres store backed directly by database/sql.
func NewWithDB(db *sql.DB) store.Store { return &pgStore{db: db} }

type pgStore struct{ db *sql.DB }

func (s *pgStore) Itineraries() store.Itineraries { return &itineraries{db: s.db} }

// HealthPing implements health.HealthPinger.
func (s *pgStore) HealthPing(ctx context.Context) error { return s.db.PingContext(ctx) }

type itineraries struct{ db *sql.DB }

func (it *itineraries) Save(ctx context.Context, snap *model.ItinerarySnapshot) error {
	doc, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	_, err = it.db.ExecContext(ctx, `
        INSERT INTO itineraries (itinerary_id, doc, created_at, updated_at)
        VALUES ($1, $2, $3, $4)
    `, snap.ID, doc, snap.CreatedAt, snap.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: itinerary %s already exists", model.ErrConflict, snap.ID)
		}
		return err
	}
	return nil
}

func (it *itineraries) Get(ctx context.Context, id string) (*model.ItinerarySnapshot, error) {
	var doc []byte
	row := it.db.QueryRowContext(ctx, `SELECT doc FROM itineraries WHERE itinerary_id=$1`, id)
	if err := row.Scan(&doc); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: itinerary %s", model.ErrNotFound, id)
		}
		return nil, err
	}
	var snap model.ItinerarySnapshot
	if err := json.Unmarshal(doc, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", id, err)
	}
	return &snap, nil
}

func (it *itineraries) Replace(ctx context.Context, snap *model.ItinerarySnapshot) error {
	doc, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	res, err := it.db.ExecContext(ctx, `
        UPDATE itineraries SET doc=$2, updated_at=$3 WHERE itinerary_id=$1
    `, snap.ID, doc, snap.UpdatedAt)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: itinerary %s", model.ErrNotFound, snap.ID)
	}
	return nil
}

// isUniqueViolation matches the Postgres 23505 error without importing the
// pgx error types through the stdlib shim.
func isUniqueViolation(err error) bool {
	type coder interface{ SQLState() string }
	var c coder
	if errors.As(err, &c) {
		return c.SQLState() == "23505"
	}
	return false
}
