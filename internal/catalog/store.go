// Package catalog persists merge runs in DuckDB: which sources were merged
// and which header lines the merge produced, queryable after the fact.
package catalog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/marcboeker/go-duckdb"

	"github.com/singerma/vcfmerge/internal/vcf"
)

// Store manages a DuckDB connection for the merge catalog.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create catalog directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS merge_runs (
		run VARCHAR,
		algorithm VARCHAR,
		merged_at TIMESTAMP,
		PRIMARY KEY (run)
	)`); err != nil {
		return err
	}
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS merge_sources (
		run VARCHAR,
		position INTEGER,
		source VARCHAR,
		PRIMARY KEY (run, position)
	)`); err != nil {
		return err
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS merged_lines (
		run VARCHAR,
		line VARCHAR
	)`)
	return err
}

// Run describes one recorded merge.
type Run struct {
	Name      string
	Algorithm string
	MergedAt  time.Time
	Sources   []string
}

// RecordMerge stores a merge run: its algorithm, its source names in order,
// and the rendered merged header lines. Re-recording a run name replaces the
// previous record.
func (s *Store) RecordMerge(run, algorithm string, sources []string, lines []vcf.HeaderLine) error {
	if err := s.DeleteRun(run); err != nil {
		return err
	}

	if _, err := s.db.Exec(
		`INSERT INTO merge_runs (run, algorithm, merged_at) VALUES (?, ?, ?)`,
		run, algorithm, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("insert merge run: %w", err)
	}

	for i, source := range sources {
		if _, err := s.db.Exec(
			`INSERT INTO merge_sources (run, position, source) VALUES (?, ?, ?)`,
			run, i, source,
		); err != nil {
			return fmt.Errorf("insert merge source: %w", err)
		}
	}

	for _, line := range vcf.SortLines(lines) {
		if _, err := s.db.Exec(
			`INSERT INTO merged_lines (run, line) VALUES (?, ?)`,
			run, line.String(),
		); err != nil {
			return fmt.Errorf("insert merged line: %w", err)
		}
	}

	return nil
}

// LookupRun returns the recorded run, or nil if the run name is unknown.
func (s *Store) LookupRun(run string) (*Run, error) {
	row := s.db.QueryRow(`SELECT run, algorithm, merged_at FROM merge_runs WHERE run=?`, run)

	var r Run
	if err := row.Scan(&r.Name, &r.Algorithm, &r.MergedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("query merge run: %w", err)
	}

	rows, err := s.db.Query(`SELECT source FROM merge_sources WHERE run=? ORDER BY position`, run)
	if err != nil {
		return nil, fmt.Errorf("query merge sources: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var source string
		if err := rows.Scan(&source); err != nil {
			return nil, fmt.Errorf("scan merge source: %w", err)
		}
		r.Sources = append(r.Sources, source)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate merge sources: %w", err)
	}

	return &r, nil
}

// LookupLines returns the rendered header lines recorded for a run, in the
// order they were stored.
func (s *Store) LookupLines(run string) ([]string, error) {
	rows, err := s.db.Query(`SELECT line FROM merged_lines WHERE run=?`, run)
	if err != nil {
		return nil, fmt.Errorf("query merged lines: %w", err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, fmt.Errorf("scan merged line: %w", err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate merged lines: %w", err)
	}
	return lines, nil
}

// DeleteRun removes a recorded run and its sources and lines.
func (s *Store) DeleteRun(run string) error {
	for _, stmt := range []string{
		`DELETE FROM merged_lines WHERE run=?`,
		`DELETE FROM merge_sources WHERE run=?`,
		`DELETE FROM merge_runs WHERE run=?`,
	} {
		if _, err := s.db.Exec(stmt, run); err != nil {
			return fmt.Errorf("delete merge run: %w", err)
		}
	}
	return nil
}
