// Package store persists run artifacts into a local sqlite database so
// downstream pipelines and notebooks can query classified runs without
// re-parsing the CSV exports.
package store

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/Roberto-info/CDA2-Demokratie-Challange/votes"
)

// Store wraps the artifact database. Artifacts are write-once per run; rows
// carry the run id so several runs can share one file.
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the artifact database and ensures the schema.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open artifact db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Safe to run repeatedly - uses IF NOT EXISTS.
const schema = `
CREATE TABLE IF NOT EXISTS run (
    id TEXT PRIMARY KEY,
    pipeline TEXT NOT NULL,
    started_at TIMESTAMP NOT NULL,
    rows INTEGER NOT NULL,
    skipped INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS referendum (
    run_id TEXT NOT NULL REFERENCES run(id),
    id TEXT NOT NULL,
    date TEXT,
    title_short TEXT,
    title_official TEXT,
    yesperc REAL,
    societal INTEGER NOT NULL,
    matched TEXT,
    excluded TEXT,
    PRIMARY KEY (run_id, id)
);

CREATE INDEX IF NOT EXISTS idx_referendum_societal ON referendum(run_id, societal);

CREATE TABLE IF NOT EXISTS liberality (
    run_id TEXT NOT NULL REFERENCES run(id),
    rank INTEGER NOT NULL,
    canton TEXT NOT NULL,
    score REAL,
    count INTEGER NOT NULL,
    PRIMARY KEY (run_id, canton)
);
`

// SaveRun records the run metadata row identifying one pipeline execution.
func (s *Store) SaveRun(runID, pipeline string, startedAt time.Time, rows, skipped int) error {
	_, err := s.db.Exec(
		`INSERT INTO run (id, pipeline, started_at, rows, skipped) VALUES (?, ?, ?, ?, ?)`,
		runID, pipeline, startedAt.UTC().Format(time.RFC3339), rows, skipped,
	)
	if err != nil {
		return fmt.Errorf("save run %s: %w", runID, err)
	}
	return nil
}

// SaveClassified stores the classified table for the run in one transaction.
func (s *Store) SaveClassified(runID string, rows []votes.Classified) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin classified insert: %w", err)
	}
	stmt, err := tx.Prepare(`INSERT INTO referendum
		(run_id, id, date, title_short, title_official, yesperc, societal, matched, excluded)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare classified insert: %w", err)
	}
	defer stmt.Close()

	for _, rec := range rows {
		var date any
		if !rec.Date.IsZero() {
			date = rec.Date.Format("2006-01-02")
		}
		var yes any
		if rec.Yes != nil {
			yes = *rec.Yes
		}
		if _, err := stmt.Exec(
			runID, rec.ID, date, rec.TitleShort, rec.TitleOfficial, yes,
			boolToInt(rec.Societal),
			votes.JoinKeywords(rec.Matched),
			votes.JoinKeywords(rec.Excluded),
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert referendum %s: %w", rec.ID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit classified insert: %w", err)
	}
	return nil
}

// SaveRanking stores the liberality ranking for the run. A nil score is
// stored as NULL, never as zero.
func (s *Store) SaveRanking(runID string, ranking []votes.LiberalityScore) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin ranking insert: %w", err)
	}
	for i, entry := range ranking {
		var score any
		if entry.Score != nil {
			score = *entry.Score
		}
		if _, err := tx.Exec(
			`INSERT INTO liberality (run_id, rank, canton, score, count) VALUES (?, ?, ?, ?, ?)`,
			runID, i+1, string(entry.Canton), score, entry.Count,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert ranking %s: %w", entry.Canton, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit ranking insert: %w", err)
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
