// Package sqlitestore persists calibration artifacts in a SQLite database
// (pure-Go modernc.org/sqlite driver).
//
// Schema: one row per run in runs, one row per artifact in artifacts, and
// one row per matrix cell in cells (flow and probability side by side).
package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/katalvlaran/gravity/results"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id      TEXT PRIMARY KEY,
	created_at  TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS artifacts (
	run_id          TEXT NOT NULL,
	name            TEXT NOT NULL,
	distance        REAL NOT NULL,
	entropy         REAL NOT NULL,
	n_rows          INTEGER NOT NULL,
	n_cols          INTEGER NOT NULL,
	origin_ids      TEXT NOT NULL,
	destination_ids TEXT NOT NULL,
	PRIMARY KEY (run_id, name),
	FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS cells (
	run_id      TEXT NOT NULL,
	name        TEXT NOT NULL,
	i           INTEGER NOT NULL,
	j           INTEGER NOT NULL,
	flow        REAL NOT NULL,
	probability REAL NOT NULL,
	PRIMARY KEY (run_id, name, i, j),
	FOREIGN KEY (run_id, name) REFERENCES artifacts(run_id, name) ON DELETE CASCADE
);
`

// Run is a stored run header.
type Run struct {
	ID        string
	CreatedAt time.Time
}

// Store is a SQLite-backed results.Sink.
type Store struct {
	db *sql.DB
}

var _ results.Sink = (*Store)(nil)

// NewRunID returns a fresh run identifier.
func NewRunID() string { return uuid.New().String() }

// Open opens (or creates) the database at path and runs migrations.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA foreign_keys=ON"} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("pragma: %w", err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores all artifacts of runID in one transaction. Artifacts already
// stored under the same (run, name) are replaced.
func (s *Store) Save(ctx context.Context, runID string, artifacts []results.Artifact) error {
	if len(artifacts) == 0 {
		return results.ErrNoArtifacts
	}
	if runID == "" {
		runID = NewRunID()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO runs (run_id, created_at) VALUES (?, ?)`,
		runID, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, a := range artifacts {
		if err := saveArtifact(ctx, tx, runID, a); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func saveArtifact(ctx context.Context, tx *sql.Tx, runID string, a results.Artifact) error {
	oJSON, err := json.Marshal(a.OriginIDs)
	if err != nil {
		return fmt.Errorf("marshal origin ids: %w", err)
	}
	dJSON, err := json.Marshal(a.DestinationIDs)
	if err != nil {
		return fmt.Errorf("marshal destination ids: %w", err)
	}
	cols := 0
	if len(a.Flow) > 0 {
		cols = len(a.Flow[0])
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM cells WHERE run_id = ? AND name = ?`, runID, a.Name); err != nil {
		return fmt.Errorf("clear cells: %w", err)
	}
	_, err = tx.ExecContext(ctx,
		`INSERT OR REPLACE INTO artifacts
		 (run_id, name, distance, entropy, n_rows, n_cols, origin_ids, destination_ids)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, a.Name, a.Distance, a.Entropy, len(a.Flow), cols, string(oJSON), string(dJSON))
	if err != nil {
		return fmt.Errorf("insert artifact %q: %w", a.Name, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO cells (run_id, name, i, j, flow, probability) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare cells: %w", err)
	}
	defer stmt.Close()

	for i, row := range a.Flow {
		for j, v := range row {
			var p float64
			if i < len(a.Probabilities) && j < len(a.Probabilities[i]) {
				p = a.Probabilities[i][j]
			}
			if _, err := stmt.ExecContext(ctx, runID, a.Name, i, j, v, p); err != nil {
				return fmt.Errorf("insert cell (%d,%d): %w", i, j, err)
			}
		}
	}
	return nil
}

// Load reads one artifact back.
func (s *Store) Load(ctx context.Context, runID, name string) (results.Artifact, error) {
	var (
		a            = results.Artifact{Name: name}
		rows, cols   int
		oJSON, dJSON string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT distance, entropy, n_rows, n_cols, origin_ids, destination_ids
		 FROM artifacts WHERE run_id = ? AND name = ?`, runID, name,
	).Scan(&a.Distance, &a.Entropy, &rows, &cols, &oJSON, &dJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return results.Artifact{}, fmt.Errorf("%s/%s: %w", runID, name, results.ErrNotFound)
	}
	if err != nil {
		return results.Artifact{}, fmt.Errorf("query artifact: %w", err)
	}
	if err := json.Unmarshal([]byte(oJSON), &a.OriginIDs); err != nil {
		return results.Artifact{}, fmt.Errorf("unmarshal origin ids: %w", err)
	}
	if err := json.Unmarshal([]byte(dJSON), &a.DestinationIDs); err != nil {
		return results.Artifact{}, fmt.Errorf("unmarshal destination ids: %w", err)
	}

	a.Flow = make([][]float64, rows)
	a.Probabilities = make([][]float64, rows)
	for i := range a.Flow {
		a.Flow[i] = make([]float64, cols)
		a.Probabilities[i] = make([]float64, cols)
	}

	cur, err := s.db.QueryContext(ctx,
		`SELECT i, j, flow, probability FROM cells WHERE run_id = ? AND name = ?`, runID, name)
	if err != nil {
		return results.Artifact{}, fmt.Errorf("query cells: %w", err)
	}
	defer cur.Close()

	for cur.Next() {
		var (
			i, j    int
			flow, p float64
		)
		if err := cur.Scan(&i, &j, &flow, &p); err != nil {
			return results.Artifact{}, fmt.Errorf("scan cell: %w", err)
		}
		if i < 0 || i >= rows || j < 0 || j >= cols {
			return results.Artifact{}, fmt.Errorf("cell (%d,%d) outside %dx%d", i, j, rows, cols)
		}
		a.Flow[i][j] = flow
		a.Probabilities[i][j] = p
	}
	if err := cur.Err(); err != nil {
		return results.Artifact{}, fmt.Errorf("iterate cells: %w", err)
	}
	return a, nil
}

// Runs lists stored runs, oldest first.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	cur, err := s.db.QueryContext(ctx, `SELECT run_id, created_at FROM runs ORDER BY created_at, run_id`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer cur.Close()

	var out []Run
	for cur.Next() {
		var (
			r  Run
			ts string
		)
		if err := cur.Scan(&r.ID, &ts); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.CreatedAt, err = time.Parse(time.RFC3339Nano, ts)
		if err != nil {
			return nil, fmt.Errorf("parse created_at: %w", err)
		}
		out = append(out, r)
	}
	return out, cur.Err()
}
