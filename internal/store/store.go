// Package store persists the run history catalog in a local SQLite
// database: one row per analysis run with its parameters and statistics.
package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/terracanopy/connectivity-cli/internal/connectivity"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	created_at TEXT NOT NULL,
	location TEXT NOT NULL,
	year INTEGER NOT NULL,
	resolution REAL NOT NULL,
	edge_threshold REAL NOT NULL,
	core_threshold REAL NOT NULL,
	core_area_ha REAL NOT NULL,
	edge_area_ha REAL NOT NULL,
	fragmented_area_ha REAL NOT NULL,
	total_forest_ha REAL NOT NULL,
	fragmentation_index REAL NOT NULL,
	output_dir TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// Run is one recorded analysis run.
type Run struct {
	ID            string
	CreatedAt     time.Time
	Location      string
	Year          int
	Resolution    float64
	EdgeThreshold float64
	CoreThreshold float64
	Stats         connectivity.Stats
	OutputDir     string
}

// Store wraps the SQLite run catalog.
type Store struct {
	db *sql.DB
}

// Open opens (and migrates) the catalog at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrapf(err, "store: open %s", path)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, eris.Wrap(err, "store: migrate")
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Insert records a run.
func (s *Store) Insert(ctx context.Context, r Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (
			id, created_at, location, year, resolution,
			edge_threshold, core_threshold,
			core_area_ha, edge_area_ha, fragmented_area_ha,
			total_forest_ha, fragmentation_index, output_dir
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CreatedAt.UTC().Format(time.RFC3339), r.Location, r.Year, r.Resolution,
		r.EdgeThreshold, r.CoreThreshold,
		r.Stats.CoreAreaHa, r.Stats.EdgeAreaHa, r.Stats.FragmentedAreaHa,
		r.Stats.TotalForestHa, r.Stats.FragmentationIndex, r.OutputDir,
	)
	if err != nil {
		return eris.Wrap(err, "store: insert run")
	}
	return nil
}

// List returns all runs, newest first.
func (s *Store) List(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, location, year, resolution,
		       edge_threshold, core_threshold,
		       core_area_ha, edge_area_ha, fragmented_area_ha,
		       total_forest_ha, fragmentation_index, output_dir
		FROM runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, eris.Wrap(err, "store: list runs")
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "store: iterate runs")
	}
	return runs, nil
}

// Get returns one run by id.
func (s *Store) Get(ctx context.Context, id string) (Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, location, year, resolution,
		       edge_threshold, core_threshold,
		       core_area_ha, edge_area_ha, fragmented_area_ha,
		       total_forest_ha, fragmentation_index, output_dir
		FROM runs WHERE id = ?`, id)
	if err != nil {
		return Run{}, eris.Wrap(err, "store: get run")
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return Run{}, eris.Wrap(err, "store: get run")
		}
		return Run{}, eris.Errorf("store: run %s not found", id)
	}
	return scanRun(rows)
}

func scanRun(rows *sql.Rows) (Run, error) {
	var r Run
	var createdAt string
	if err := rows.Scan(
		&r.ID, &createdAt, &r.Location, &r.Year, &r.Resolution,
		&r.EdgeThreshold, &r.CoreThreshold,
		&r.Stats.CoreAreaHa, &r.Stats.EdgeAreaHa, &r.Stats.FragmentedAreaHa,
		&r.Stats.TotalForestHa, &r.Stats.FragmentationIndex, &r.OutputDir,
	); err != nil {
		return Run{}, eris.Wrap(err, "store: scan run")
	}
	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return Run{}, eris.Wrap(err, "store: parse run timestamp")
	}
	r.CreatedAt = ts
	return r, nil
}
