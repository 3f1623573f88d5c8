package datastore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aleister1102/linkchecker/internal/models"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// RunHistoryStore records one row per checker run in SQLite
type RunHistoryStore struct {
	db     *sql.DB
	logger zerolog.Logger
}

// RunHistoryEntry represents a record in the run_history table.
type RunHistoryEntry struct {
	ID              int64
	RunID           string
	RunLabel        string
	InputFile       string
	StartTime       time.Time
	EndTime         sql.NullTime
	Status          string
	PreviouslySeen  int
	RawLines        int
	InputCandidates int
	Good            int
	Bad             int
	ErrorSummary    sql.NullString
}

// NewRunHistoryStore opens the database, creating its directory and schema
func NewRunHistoryStore(dataSourceName string, logger zerolog.Logger) (*RunHistoryStore, error) {
	logger = logger.With().Str("component", "RunHistoryStore").Logger()

	if dir := filepath.Dir(dataSourceName); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create history database directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("sql.Open failed for %s: %w", dataSourceName, err)
	}
	// One writer at a time keeps SQLite from reporting SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	s := &RunHistoryStore{db: db, logger: logger}
	if err := s.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	logger.Debug().Str("path", dataSourceName).Msg("Run history database ready")
	return s, nil
}

// Close closes the database connection.
func (s *RunHistoryStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *RunHistoryStore) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS run_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT UNIQUE NOT NULL,
		run_label TEXT,
		input_file TEXT NOT NULL,
		start_time DATETIME NOT NULL,
		end_time DATETIME,
		status TEXT NOT NULL,
		previously_seen INTEGER DEFAULT 0,
		raw_lines INTEGER DEFAULT 0,
		input_candidates INTEGER DEFAULT 0,
		good INTEGER DEFAULT 0,
		bad INTEGER DEFAULT 0,
		error_summary TEXT
	);
	`
	_, err := s.db.ExecContext(ctx, query)
	return err
}

// RecordRunStart inserts a row with status STARTED and returns its ID.
func (s *RunHistoryStore) RecordRunStart(ctx context.Context, runID, label, inputFile string, startTime time.Time) (int64, error) {
	query := `INSERT INTO run_history (run_id, run_label, input_file, start_time, status) VALUES (?, ?, ?, ?, ?)`
	result, err := s.db.ExecContext(ctx, query, runID, label, inputFile, startTime.UTC(), "STARTED")
	if err != nil {
		return 0, fmt.Errorf("failed to insert run start record: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get last insert ID: %w", err)
	}
	s.logger.Debug().Int64("db_id", id).Str("run_id", runID).Msg("Recorded run start")
	return id, nil
}

// RecordRunCompletion stores the final counts of a run.
func (s *RunHistoryStore) RecordRunCompletion(ctx context.Context, id int64, summary models.RunSummary) error {
	query := `UPDATE run_history SET end_time = ?, status = ?, previously_seen = ?, raw_lines = ?,
		input_candidates = ?, good = ?, bad = ?, error_summary = ? WHERE id = ?`

	endTime := summary.StartedAt.Add(summary.Duration).UTC()
	errSummary := strings.Join(summary.ErrorMessages, "; ")

	res, err := s.db.ExecContext(ctx, query, endTime, string(summary.Status), summary.PreviouslySeen, summary.RawLines,
		summary.InputCandidates, summary.Good, summary.Bad,
		sql.NullString{String: errSummary, Valid: errSummary != ""}, id)
	if err != nil {
		return fmt.Errorf("failed to update run completion for ID %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("no run history row with ID %d", id)
	}

	s.logger.Debug().Int64("db_id", id).Str("status", string(summary.Status)).Msg("Recorded run completion")
	return nil
}

// RecentRuns returns up to limit runs, newest first.
func (s *RunHistoryStore) RecentRuns(ctx context.Context, limit int) ([]RunHistoryEntry, error) {
	query := `SELECT id, run_id, COALESCE(run_label, ''), input_file, start_time, end_time, status,
		previously_seen, raw_lines, input_candidates, good, bad, error_summary
		FROM run_history ORDER BY id DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query run history: %w", err)
	}
	defer rows.Close()

	var entries []RunHistoryEntry
	for rows.Next() {
		var e RunHistoryEntry
		if err := rows.Scan(&e.ID, &e.RunID, &e.RunLabel, &e.InputFile, &e.StartTime, &e.EndTime, &e.Status,
			&e.PreviouslySeen, &e.RawLines, &e.InputCandidates, &e.Good, &e.Bad, &e.ErrorSummary); err != nil {
			return nil, fmt.Errorf("failed to scan run history row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
