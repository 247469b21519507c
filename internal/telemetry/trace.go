// Package telemetry records gameplay notifications to a SQLite trace
// file for post-run debugging of quest sequencing and companion
// behavior. Opt-in tooling; the game runs fine without it.
package telemetry

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/quietpond/straycat/internal/events"
	"github.com/quietpond/straycat/internal/logger"
)

const schema = `
CREATE TABLE IF NOT EXISTS events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	tick INTEGER NOT NULL,
	type TEXT NOT NULL,
	source TEXT NOT NULL,
	detail TEXT NOT NULL DEFAULT '',
	obj_index INTEGER NOT NULL DEFAULT -1
);
CREATE INDEX IF NOT EXISTS idx_events_type ON events(type);
`

// Trace wraps the SQLite connection holding the event log of one or
// more runs.
type Trace struct {
	db *sql.DB
}

// Open opens or creates the trace database at the given path.
func Open(path string) (*Trace, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create trace directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create trace schema: %w", err)
	}

	return &Trace{db: db}, nil
}

// Close closes the underlying database.
func (t *Trace) Close() error {
	return t.db.Close()
}

// Record appends one event at the given tick.
func (t *Trace) Record(tick uint64, e events.Event) error {
	_, err := t.db.Exec(
		"INSERT INTO events (tick, type, source, detail, obj_index) VALUES (?, ?, ?, ?, ?)",
		int64(tick), string(e.Type), e.Source, e.Text, e.Index,
	)
	if err != nil {
		return fmt.Errorf("failed to record event: %w", err)
	}
	return nil
}

// Attach subscribes the trace to a bus, recording every published event
// at the tick reported by tickFn. Recording failures are logged, never
// propagated into gameplay.
func (t *Trace) Attach(bus *events.Bus, tickFn func() uint64) {
	bus.Subscribe(func(e events.Event) {
		if err := t.Record(tickFn(), e); err != nil {
			logger.Warning("Telemetry record failed", "type", e.Type, "error", err)
		}
	})
}

// Count returns the number of recorded events, optionally filtered by
// type. An empty type counts everything.
func (t *Trace) Count(eventType string) (int, error) {
	var row *sql.Row
	if eventType == "" {
		row = t.db.QueryRow("SELECT COUNT(*) FROM events")
	} else {
		row = t.db.QueryRow("SELECT COUNT(*) FROM events WHERE type = ?", eventType)
	}
	var count int
	if err := row.Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count events: %w", err)
	}
	return count, nil
}

// TraceEvent is one recorded row.
type TraceEvent struct {
	Tick   uint64
	Type   string
	Source string
	Detail string
	Index  int
}

// Events returns all recorded events in insertion order.
func (t *Trace) Events() ([]TraceEvent, error) {
	rows, err := t.db.Query("SELECT tick, type, source, detail, obj_index FROM events ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var result []TraceEvent
	for rows.Next() {
		var e TraceEvent
		var tick int64
		if err := rows.Scan(&tick, &e.Type, &e.Source, &e.Detail, &e.Index); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		e.Tick = uint64(tick)
		result = append(result, e)
	}
	return result, rows.Err()
}
