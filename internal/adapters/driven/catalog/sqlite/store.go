// Package sqlite persists run reports in a local SQLite database so
// completed runs can be inspected later with "winnow runs".
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/veldt-labs/winnow-cli/internal/core/domain"
	"github.com/veldt-labs/winnow-cli/internal/core/ports/driven"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id          TEXT PRIMARY KEY,
	input_path  TEXT NOT NULL,
	output_path TEXT NOT NULL,
	started_at  TEXT NOT NULL,
	finished_at TEXT NOT NULL,
	read_count  INTEGER NOT NULL,
	malformed   INTEGER NOT NULL,
	written     INTEGER NOT NULL,
	drops       TEXT NOT NULL
);
`

// Ensure Store implements the interface.
var _ driven.ReportStore = (*Store)(nil)

// Store is a SQLite-backed run-report catalog.
type Store struct {
	db *sql.DB
}

// NewStore opens (and creates if needed) the catalog at the given
// data directory. If dataDir is empty, defaults to ~/.winnow/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".winnow", "data")
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, "runs.db")
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Save records one completed run.
func (s *Store) Save(ctx context.Context, report *domain.RunReport) error {
	drops, err := json.Marshal(report.DropsByStage)
	if err != nil {
		return fmt.Errorf("marshal drop counts: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, input_path, output_path, started_at, finished_at, read_count, malformed, written, drops)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.ID,
		report.InputPath,
		report.OutputPath,
		report.StartedAt.UTC().Format(time.RFC3339Nano),
		report.FinishedAt.UTC().Format(time.RFC3339Nano),
		report.Read,
		report.Malformed,
		report.Written,
		string(drops),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// List returns saved reports, most recent first.
func (s *Store) List(ctx context.Context, limit int) ([]domain.RunReport, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, input_path, output_path, started_at, finished_at, read_count, malformed, written, drops
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var reports []domain.RunReport
	for rows.Next() {
		var (
			r                   domain.RunReport
			startedAt, finished string
			drops               string
		)
		if err := rows.Scan(&r.ID, &r.InputPath, &r.OutputPath, &startedAt, &finished,
			&r.Read, &r.Malformed, &r.Written, &drops); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if r.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, fmt.Errorf("parse started_at: %w", err)
		}
		if r.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
			return nil, fmt.Errorf("parse finished_at: %w", err)
		}
		if err := json.Unmarshal([]byte(drops), &r.DropsByStage); err != nil {
			return nil, fmt.Errorf("parse drop counts: %w", err)
		}
		reports = append(reports, r)
	}
	return reports, rows.Err()
}

// Close releases the database.
func (s *Store) Close() error {
	return s.db.Close()
}
