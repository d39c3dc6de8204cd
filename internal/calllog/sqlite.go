package calllog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// SQLiteSink stores call records in a local SQLite database.
type SQLiteSink struct {
	mu sync.Mutex
	db *sql.DB
}

func NewSQLiteSink(dbPath string) (*SQLiteSink, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create call log directory: %w", err)
	}

	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open call log database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping call log database: %w", err)
	}

	sink := &SQLiteSink{db: db}
	if err := sink.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return sink, nil
}

func (s *SQLiteSink) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS call_logs (
		id TEXT PRIMARY KEY,
		created_at INTEGER NOT NULL,
		use_case TEXT NOT NULL,
		query TEXT NOT NULL,
		history_json TEXT,
		output TEXT NOT NULL,
		safety_flag TEXT NOT NULL,
		pii_masked INTEGER NOT NULL,
		handled_by TEXT NOT NULL,
		contexts_json TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_call_logs_created ON call_logs(created_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create call log schema: %w", err)
	}
	return nil
}

func (s *SQLiteSink) Append(ctx context.Context, record Record) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}
	if record.Timestamp.IsZero() {
		record.Timestamp = time.Now().UTC()
	}

	historyJSON, err := json.Marshal(record.History)
	if err != nil {
		return fmt.Errorf("marshal record history: %w", err)
	}
	contextsJSON, err := json.Marshal(record.Contexts)
	if err != nil {
		return fmt.Errorf("marshal record contexts: %w", err)
	}

	piiMasked := 0
	if record.PIIMasked {
		piiMasked = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO call_logs
		 (id, created_at, use_case, query, history_json, output, safety_flag, pii_masked, handled_by, contexts_json)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Timestamp.Unix(),
		record.UseCase,
		record.Query,
		string(historyJSON),
		record.Output,
		string(record.SafetyFlag),
		piiMasked,
		record.HandledBy,
		string(contextsJSON),
	)
	if err != nil {
		return fmt.Errorf("insert call record: %w", err)
	}
	return nil
}

func (s *SQLiteSink) Close() error {
	return s.db.Close()
}
