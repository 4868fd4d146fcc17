package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists the audit trail to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS observations (
			id          TEXT PRIMARY KEY,
			timestamp   INTEGER NOT NULL,
			session_key TEXT NOT NULL,
			position    INTEGER,
			value       REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_observations_session ON observations(session_key, timestamp)`,

		`CREATE TABLE IF NOT EXISTS analyses (
			id               TEXT PRIMARY KEY,
			timestamp        INTEGER NOT NULL,
			session_key      TEXT NOT NULL,
			sequence_len     INTEGER,
			lower            REAL,
			estimate         REAL,
			upper            REAL,
			confidence       REAL,
			confidence_level TEXT,
			transition       INTEGER,
			alerts           TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_analyses_session ON analyses(session_key, timestamp)`,

		`CREATE TABLE IF NOT EXISTS session_events (
			id          TEXT PRIMARY KEY,
			timestamp   INTEGER NOT NULL,
			session_key TEXT NOT NULL,
			event_type  TEXT,
			dropped     INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_session_events_ts ON session_events(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordObservation(evt *ObservationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO observations
		(id, timestamp, session_key, position, value)
		VALUES (?,?,?,?,?)`,
		uuid.NewString(), evt.Observation.RecordedAt.Unix(), evt.SessionKey,
		evt.Position, evt.Observation.Value,
	)
	return err
}

func (r *SQLiteRecorder) RecordAnalysis(snap *AnalysisSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a := snap.Analysis
	labels := make([]string, len(a.Alerts))
	for i, al := range a.Alerts {
		labels[i] = al.Label
	}
	transition := 0
	if a.Transition {
		transition = 1
	}
	at := snap.At
	if at.IsZero() {
		at = time.Now()
	}

	_, err := r.db.Exec(`INSERT INTO analyses
		(id, timestamp, session_key, sequence_len, lower, estimate, upper,
		 confidence, confidence_level, transition, alerts)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		uuid.NewString(), at.Unix(), snap.SessionKey, a.Count,
		a.Forecast.Lower, a.Forecast.Estimate, a.Forecast.Upper,
		a.Forecast.Confidence, a.Level.Label, transition, strings.Join(labels, ";"),
	)
	return err
}

func (r *SQLiteRecorder) RecordSessionEvent(evt *SessionEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO session_events
		(id, timestamp, session_key, event_type, dropped)
		VALUES (?,?,?,?,?)`,
		uuid.NewString(), time.Now().Unix(), evt.SessionKey, evt.EventType, evt.Dropped,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
