// Package trace records dispatch activity of CLI sessions into a SQLite
// database: one row per session, one row per call with the callable name,
// observed argument types, the outcome and the error text on failure.
// The engine itself never touches this store; only the CLI does.
package trace

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	id         TEXT PRIMARY KEY,
	label      TEXT NOT NULL,
	started_at TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS calls (
	session_id TEXT NOT NULL REFERENCES sessions(id),
	fn         TEXT NOT NULL,
	arg_types  TEXT NOT NULL,
	ok         INTEGER NOT NULL,
	error      TEXT NOT NULL,
	called_at  TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS calls_session ON calls(session_id);
`

// Session is one recorded CLI session.
type Session struct {
	ID        string
	Label     string
	StartedAt time.Time
}

// Call is one recorded dispatch.
type Call struct {
	SessionID string
	Fn        string
	ArgTypes  string
	OK        bool
	Error     string
	CalledAt  time.Time
}

// Store is a dispatch trace database.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) a trace database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("cannot open trace store: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("cannot initialize trace store: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// BeginSession registers a new session and returns its id.
func (s *Store) BeginSession(label string) (string, error) {
	id := uuid.NewString()
	_, err := s.db.Exec(
		"INSERT INTO sessions (id, label, started_at) VALUES (?, ?, ?)",
		id, label, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("cannot begin session: %w", err)
	}
	return id, nil
}

// Record stores one dispatch outcome.
func (s *Store) Record(c Call) error {
	if c.CalledAt.IsZero() {
		c.CalledAt = time.Now().UTC()
	}
	_, err := s.db.Exec(
		"INSERT INTO calls (session_id, fn, arg_types, ok, error, called_at) VALUES (?, ?, ?, ?, ?, ?)",
		c.SessionID, c.Fn, c.ArgTypes, c.OK, c.Error, c.CalledAt)
	if err != nil {
		return fmt.Errorf("cannot record call: %w", err)
	}
	return nil
}

// Sessions lists recorded sessions, oldest first.
func (s *Store) Sessions() ([]Session, error) {
	rows, err := s.db.Query("SELECT id, label, started_at FROM sessions ORDER BY started_at")
	if err != nil {
		return nil, fmt.Errorf("cannot list sessions: %w", err)
	}
	defer rows.Close()

	var out []Session
	for rows.Next() {
		var sess Session
		if err := rows.Scan(&sess.ID, &sess.Label, &sess.StartedAt); err != nil {
			return nil, fmt.Errorf("cannot scan session: %w", err)
		}
		out = append(out, sess)
	}
	return out, rows.Err()
}

// Calls lists the calls of one session in recording order.
func (s *Store) Calls(sessionID string) ([]Call, error) {
	rows, err := s.db.Query(
		"SELECT session_id, fn, arg_types, ok, error, called_at FROM calls WHERE session_id = ? ORDER BY called_at",
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("cannot list calls: %w", err)
	}
	defer rows.Close()

	var out []Call
	for rows.Next() {
		var c Call
		if err := rows.Scan(&c.SessionID, &c.Fn, &c.ArgTypes, &c.OK, &c.Error, &c.CalledAt); err != nil {
			return nil, fmt.Errorf("cannot scan call: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
