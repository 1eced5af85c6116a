// Package sqlite persists the command history log in SQLite.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/p4runner/internal/domain"
	"github.com/bnema/p4runner/internal/ports"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS command_log (
	id             INTEGER PRIMARY KEY AUTOINCREMENT,
	command        TEXT    NOT NULL,
	correlation_id TEXT    NOT NULL DEFAULT '',
	tagged         INTEGER NOT NULL DEFAULT 0,
	duration_us    INTEGER NOT NULL DEFAULT 0,
	init_us        INTEGER NOT NULL DEFAULT 0,
	retries        INTEGER NOT NULL DEFAULT 0,
	failed         INTEGER NOT NULL DEFAULT 0,
	started_at_ms  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_command_log_started_at ON command_log(started_at_ms DESC);
`

// Store is a ports.CommandLog on a local SQLite file.
type Store struct {
	sqlDB *sql.DB
}

var _ ports.CommandLog = (*Store)(nil)

// Open opens the history database, creating the schema when missing.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("history path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping history db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply history schema: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

func (s *Store) Record(ctx context.Context, record domain.CommandRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO command_log (command, correlation_id, tagged, duration_us, init_us, retries, failed, started_at_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		record.Command,
		string(record.CorrelationID),
		boolToInt(record.Tagged),
		record.DurationUS,
		record.InitUS,
		record.Retries,
		boolToInt(record.Failed),
		record.StartedAt.UTC().UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("insert command record: %w", err)
	}
	return nil
}

// Recent returns up to limit records, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]domain.CommandRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT id, command, correlation_id, tagged, duration_us, init_us, retries, failed, started_at_ms
		 FROM command_log ORDER BY started_at_ms DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query command log: %w", err)
	}
	defer rows.Close()

	var records []domain.CommandRecord
	for rows.Next() {
		var record domain.CommandRecord
		var correlationID string
		var tagged, failed int
		var startedMS int64
		if err := rows.Scan(&record.ID, &record.Command, &correlationID, &tagged,
			&record.DurationUS, &record.InitUS, &record.Retries, &failed, &startedMS); err != nil {
			return nil, fmt.Errorf("scan command record: %w", err)
		}
		record.CorrelationID = domain.CorrelationID(correlationID)
		record.Tagged = tagged != 0
		record.Failed = failed != 0
		record.StartedAt = time.UnixMilli(startedMS).UTC()
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate command log: %w", err)
	}
	return records, nil
}

func boolToInt(value bool) int {
	if value {
		return 1
	}
	return 0
}
