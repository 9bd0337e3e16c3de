// Package journal records notable world events (harvests, spawns,
// quest completions, day phases) to SQLite for the API's event feed.
// This is an append-only observability log, not world persistence:
// nothing is ever read back into the simulation.
package journal

import (
	"fmt"
	"log/slog"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// Event is one journal entry.
type Event struct {
	Clock       float64 `db:"clock" json:"clock"` // world-clock seconds
	Category    string  `db:"category" json:"category"`
	Description string  `db:"description" json:"description"`
}

// DB wraps a SQLite connection for the event journal.
type DB struct {
	conn *sqlx.DB
}

// Open opens or creates the journal database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate journal: %w", err)
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		clock REAL NOT NULL,
		category TEXT NOT NULL,
		description TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_events_clock ON events(clock);
	CREATE INDEX IF NOT EXISTS idx_events_category ON events(category);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// Append writes a batch of events in one transaction.
func (db *DB) Append(events []Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, e := range events {
		if _, err := tx.Exec(
			"INSERT INTO events (clock, category, description) VALUES (?, ?, ?)",
			e.Clock, e.Category, e.Description,
		); err != nil {
			return fmt.Errorf("insert event: %w", err)
		}
	}
	return tx.Commit()
}

// Record writes a single event, logging rather than propagating the
// error. The journal must never stall the frame loop.
func (db *DB) Record(clock float64, category, description string) {
	if db == nil {
		return
	}
	err := db.Append([]Event{{Clock: clock, Category: category, Description: description}})
	if err != nil {
		slog.Warn("journal write failed", "category", category, "error", err)
	}
}

// Recent returns the most recent N events, newest first.
func (db *DB) Recent(limit int) ([]Event, error) {
	var events []Event
	err := db.conn.Select(&events,
		"SELECT clock, category, description FROM events ORDER BY id DESC LIMIT ?",
		limit,
	)
	return events, err
}
