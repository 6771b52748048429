// Package archive is an optional Postgres sink for history entries
// evicted by the client-side cap. The shared document only keeps the
// most recent entries; the archive preserves the rest for audit. A nil
// *Sink drops evicted entries silently.
package archive

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"famboard/internal/ledger"
	_ "github.com/jackc/pgx/v5/stdlib"
)

const schema = `
CREATE TABLE IF NOT EXISTS evicted_history (
	id          TEXT NOT NULL,
	group_id    TEXT NOT NULL,
	label       TEXT NOT NULL,
	point_delta INTEGER NOT NULL,
	occurred_at TIMESTAMPTZ NOT NULL,
	kind        TEXT NOT NULL,
	archived_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (group_id, id)
)`

type Sink struct {
	db *sql.DB
}

// Open connects to Postgres and ensures the archive table exists.
func Open(ctx context.Context, databaseURL string) (*Sink, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	db.SetConnMaxIdleTime(5 * time.Minute)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetMaxIdleConns(2)
	db.SetMaxOpenConns(5)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &Sink{db: db}, nil
}

// RecordEvicted stores entries evicted from a group's history. Replayed
// entries are ignored, so retries after partial failures are safe.
func (s *Sink) RecordEvicted(ctx context.Context, groupID string, entries []ledger.HistoryEntry) error {
	if s == nil || len(entries) == 0 {
		return nil
	}
	for _, e := range entries {
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO evicted_history (id, group_id, label, point_delta, occurred_at, kind)
			 VALUES ($1, $2, $3, $4, $5, $6)
			 ON CONFLICT (group_id, id) DO NOTHING`,
			e.ID, groupID, e.Label, e.PointDelta, e.OccurredAt, string(e.Kind),
		)
		if err != nil {
			return fmt.Errorf("archive entry %s: %w", e.ID, err)
		}
	}
	return nil
}

func (s *Sink) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}
