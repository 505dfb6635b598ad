// Package history records one row per wrapped run in a local SQLite
// database so past outcomes can be listed with `clarity history`.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one recorded run.
type Entry struct {
	ID          int64
	Timestamp   time.Time
	Command     string
	CommandLine string
	Mode        string
	Profile     string
	Plugin      string
	ExitCode    int
	Duration    time.Duration
	LogPath     string
}

// Store is a history database. A nil or disabled store accepts records and
// returns empty results.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path. An empty path returns a
// disabled store.
func Open(path string) (*Store, error) {
	if path == "" {
		return &Store{}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	s := &Store{db: db}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize history schema: %w", err)
	}
	return s, nil
}

// Enabled reports whether records are persisted.
func (s *Store) Enabled() bool {
	return s != nil && s.db != nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT NOT NULL,
		command TEXT NOT NULL,
		command_line TEXT NOT NULL,
		mode TEXT,
		profile TEXT,
		plugin TEXT,
		exit_code INTEGER NOT NULL,
		duration_ms INTEGER,
		log_path TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
	CREATE INDEX IF NOT EXISTS idx_runs_command ON runs(command);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record inserts e. A zero Timestamp is replaced with the current time.
func (s *Store) Record(ctx context.Context, e Entry) error {
	if !s.Enabled() {
		return nil
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}

	query := `
		INSERT INTO runs
		(timestamp, command, command_line, mode, profile, plugin, exit_code, duration_ms, log_path)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		e.Timestamp.UTC().Format(time.RFC3339Nano),
		e.Command,
		e.CommandLine,
		e.Mode,
		e.Profile,
		e.Plugin,
		e.ExitCode,
		e.Duration.Milliseconds(),
		e.LogPath,
	)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	return nil
}

// Recent returns up to limit runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if !s.Enabled() {
		return nil, nil
	}
	if limit <= 0 {
		limit = 20
	}

	query := `
		SELECT id, timestamp, command, command_line, mode, profile, plugin, exit_code, duration_ms, log_path
		FROM runs
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e          Entry
			ts         string
			durationMS int64
			mode       sql.NullString
			profile    sql.NullString
			plugin     sql.NullString
			logPath    sql.NullString
		)
		if err := rows.Scan(&e.ID, &ts, &e.Command, &e.CommandLine, &mode, &profile, &plugin, &e.ExitCode, &durationMS, &logPath); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		parsed, err := time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse timestamp of run %d: %w", e.ID, err)
		}
		e.Timestamp = parsed
		e.Duration = time.Duration(durationMS) * time.Millisecond
		e.Mode = mode.String
		e.Profile = profile.String
		e.Plugin = plugin.String
		e.LogPath = logPath.String
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// FailureRate returns the share of recorded runs of command that exited
// non-zero, and the number of runs considered.
func (s *Store) FailureRate(ctx context.Context, command string) (float64, int, error) {
	if !s.Enabled() {
		return 0, 0, nil
	}

	query := `
		SELECT
			COUNT(*) as total,
			COALESCE(SUM(CASE WHEN exit_code != 0 THEN 1 ELSE 0 END), 0) as failures
		FROM runs
		WHERE command = ?
	`

	var total, failures int
	if err := s.db.QueryRowContext(ctx, query, command).Scan(&total, &failures); err != nil {
		return 0, 0, fmt.Errorf("query failure rate: %w", err)
	}
	if total == 0 {
		return 0, 0, nil
	}
	return float64(failures) / float64(total), total, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if !s.Enabled() {
		return nil
	}
	return s.db.Close()
}
