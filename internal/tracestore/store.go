// Package tracestore gives the lexer's trace-sink collaborator contract
// (a callable accepting state, pattern source, and matched text) a
// durable SQLite-backed implementation, so a scan session's rule
// selection history can be inspected after the fact.
package tracestore

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"log/slog"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaSQL string

// Store provides durable storage for lexer trace-sink events. Uses
// SQLite with WAL mode for concurrent read access while a scan session
// is in progress.
type Store struct {
	db  *sql.DB
	log *slog.Logger
}

// Open creates or opens a SQLite database at path, applying the
// required pragmas and schema. Idempotent - safe to call multiple times
// against the same path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open trace store: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to trace store: %w", err)
	}

	// SQLite only supports one writer at a time, and a scan session is
	// itself single-threaded, so a single connection is never a
	// bottleneck.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, log: slog.Default()}, nil
}

func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			return fmt.Errorf("%q: %w", pragma, err)
		}
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Sink returns a lexer.TraceSink (see internal/lexer/scanner.go) bound
// to sessionID and rulesetHash, suitable for lexer.WithTraceSink /
// Scanner.SetTraceSink. Each call increments seq starting at 0.
// Write failures are logged and swallowed rather than propagated: a
// trace-sink failure should not abort an in-progress scan.
func (s *Store) Sink(sessionID, rulesetHash string) func(state, pattern, matchedText string) {
	seq := 0
	return func(state, pattern, matchedText string) {
		if err := s.record(sessionID, rulesetHash, seq, state, pattern, matchedText); err != nil {
			s.log.Error("trace record write failed", "session", sessionID, "seq", seq, "error", err)
		}
		seq++
	}
}

func (s *Store) record(sessionID, rulesetHash string, seq int, state, pattern, matchedText string) error {
	_, err := s.db.Exec(
		`INSERT INTO trace_events (session_id, seq, ruleset_hash, state, pattern, matched_text, recorded_at)
		 VALUES (?, ?, ?, ?, ?, ?, strftime('%s','now'))`,
		sessionID, seq, rulesetHash, state, pattern, matchedText,
	)
	return err
}

// Event is one recorded trace row.
type Event struct {
	Seq         int
	State       string
	Pattern     string
	MatchedText string
}

// Session returns every recorded event for sessionID, ordered by seq.
func (s *Store) Session(ctx context.Context, sessionID string) ([]Event, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, state, pattern, matched_text FROM trace_events
		 WHERE session_id = ? ORDER BY seq ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query session trace: %w", err)
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.Seq, &e.State, &e.Pattern, &e.MatchedText); err != nil {
			return nil, fmt.Errorf("scan trace event: %w", err)
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
