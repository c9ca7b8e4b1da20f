package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"stepcov/internal/domain"
)

const historySchema = `
CREATE TABLE IF NOT EXISTS runs (
	id              TEXT PRIMARY KEY,
	created_at      TEXT NOT NULL,
	total_usages    INTEGER NOT NULL,
	covered_usages  INTEGER NOT NULL,
	missing         INTEGER NOT NULL,
	unused          INTEGER NOT NULL,
	definitions     INTEGER NOT NULL,
	coverage        REAL NOT NULL,
	implementation  REAL NOT NULL
);
`

// HistoryStore records coverage runs over time in a SQLite database so
// coverage trends can be inspected later.
type HistoryStore struct {
	db *sql.DB
}

// OpenHistory opens (creating if needed) the history database at path.
func OpenHistory(path string) (*HistoryStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}
	if _, err := db.Exec(historySchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init history schema: %w", err)
	}
	return &HistoryStore{db: db}, nil
}

// Append records one coverage run.
func (h *HistoryStore) Append(report *domain.CoverageReport) error {
	ts := report.Meta.Timestamp
	if ts == "" {
		ts = time.Now().Format(time.RFC3339)
	}
	_, err := h.db.Exec(
		`INSERT INTO runs (id, created_at, total_usages, covered_usages, missing, unused, definitions, coverage, implementation)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(),
		ts,
		report.Meta.TotalUsages,
		report.Meta.CoveredUsages,
		len(report.Missing),
		len(report.Unused),
		report.Meta.TotalDefs,
		report.Coverage,
		report.Implementation,
	)
	if err != nil {
		return fmt.Errorf("append history run: %w", err)
	}
	return nil
}

// Runs returns recorded runs, most recent first, capped at limit when
// limit is positive.
func (h *HistoryStore) Runs(limit int) ([]domain.RunRecord, error) {
	query := `SELECT id, created_at, total_usages, covered_usages, missing, unused, definitions, coverage, implementation
		  FROM runs ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := h.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.RunRecord
	for rows.Next() {
		var r domain.RunRecord
		if err := rows.Scan(&r.ID, &r.Timestamp, &r.TotalUsages, &r.CoveredUsages,
			&r.Missing, &r.Unused, &r.Definitions, &r.Coverage, &r.Implementation); err != nil {
			return nil, fmt.Errorf("scan history run: %w", err)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Close closes the underlying database.
func (h *HistoryStore) Close() error {
	return h.db.Close()
}
