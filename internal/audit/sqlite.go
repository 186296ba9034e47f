package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"go.uber.org/zap"
)

// SQLiteSink persists session activity to a local SQLite file via the
// pure-Go modernc.org/sqlite driver, matching the rest of the module's
// preference for dependency-only, cgo-free builds.
type SQLiteSink struct {
	db     *sql.DB
	logger *zap.Logger
}

// OpenSQLiteSink opens (creating if necessary) the database at path and
// ensures its schema exists.
func OpenSQLiteSink(path string, logger *zap.Logger) (*SQLiteSink, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("audit: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1) // modernc.org/sqlite serializes writers per-connection

	const schema = `
CREATE TABLE IF NOT EXISTS session_events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id TEXT NOT NULL,
	event_type TEXT NOT NULL,
	payload TEXT NOT NULL,
	recorded_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_session_events_session ON session_events(session_id);
`
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("audit: migrate schema: %w", err)
	}
	return &SQLiteSink{db: db, logger: logger}, nil
}

func (s *SQLiteSink) insert(sessionID, eventType string, payload any) {
	body, err := json.Marshal(payload)
	if err != nil {
		s.logger.Warn("audit: marshal payload", zap.Error(err))
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO session_events (session_id, event_type, payload, recorded_at) VALUES (?, ?, ?, ?)`,
		sessionID, eventType, string(body), time.Now().UTC())
	if err != nil {
		s.logger.Warn("audit: insert event",
			zap.String("session_id", sessionID), zap.String("event_type", eventType), zap.Error(err))
	}
}

func (s *SQLiteSink) RecordSessionStarted(sessionID string, goals []string) {
	s.insert(sessionID, "session_started", map[string]any{"goals": goals})
}

func (s *SQLiteSink) RecordAnswer(sessionID, fact, answer string, firedRules []int) {
	s.insert(sessionID, "answer", map[string]any{
		"fact": fact, "answer": answer, "fired_rules": firedRules,
	})
}

func (s *SQLiteSink) RecordSessionCompleted(sessionID string, goalMap map[string]bool) {
	s.insert(sessionID, "session_completed", map[string]any{"goal_map": goalMap})
}

func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
