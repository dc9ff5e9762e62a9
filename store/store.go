// Package store provides SQLite-backed persistence for batch experiments.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/gridlock-xyz/go-gridlock/results"
)

// Store handles SQLite database operations for experiment logging.
type Store struct {
	db *sql.DB
}

// Experiment describes one batch invocation.
type Experiment struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Puzzles   string    `json:"puzzles"` // comma-separated puzzle names
	Modes     string    `json:"modes"`   // comma-separated preprocessing modes
	Attempts  int       `json:"attempts"`
	Workers   int       `json:"workers"`
	CreatedAt time.Time `json:"created_at"`
}

// Summary aggregates the runs of one experiment.
type Summary struct {
	ExperimentID string  `json:"experiment_id"`
	Runs         int     `json:"runs"`
	Solved       int     `json:"solved"`
	SuccessRate  float64 `json:"success_rate"`
	MeanSeconds  float64 `json:"mean_seconds"`
	MinSeconds   float64 `json:"min_seconds"`
	MaxSeconds   float64 `json:"max_seconds"`
}

// Open creates a Store on the given database path.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_time_format=sqlite")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS experiments (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		puzzles TEXT NOT NULL,
		modes TEXT NOT NULL,
		attempts INTEGER NOT NULL,
		workers INTEGER NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		experiment_id TEXT NOT NULL,
		attempt INTEGER NOT NULL,
		puzzle TEXT NOT NULL,
		preprocessing INTEGER NOT NULL DEFAULT 0,
		seed INTEGER NOT NULL,
		solved INTEGER NOT NULL DEFAULT 0,
		seconds REAL NOT NULL DEFAULT 0,
		return_code INTEGER NOT NULL DEFAULT 0,
		solution TEXT,
		timestamp DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (experiment_id) REFERENCES experiments(id)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_experiment ON runs(experiment_id);
	CREATE INDEX IF NOT EXISTS idx_runs_puzzle ON runs(experiment_id, puzzle);
	CREATE INDEX IF NOT EXISTS idx_experiments_created ON experiments(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection for custom queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// CreateExperiment inserts a new experiment record and returns its id.
func (s *Store) CreateExperiment(name string, puzzles, modes []string, attempts, workers int) (string, error) {
	id := uuid.New().String()
	_, err := s.db.Exec(
		`INSERT INTO experiments (id, name, puzzles, modes, attempts, workers, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, name, strings.Join(puzzles, ","), strings.Join(modes, ","),
		attempts, workers, time.Now().UTC(),
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

// InsertRun logs one solver attempt under an experiment.
func (s *Store) InsertRun(experimentID string, rec results.Record) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (experiment_id, attempt, puzzle, preprocessing, seed,
		 solved, seconds, return_code, solution, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		experimentID, rec.Attempt, rec.Puzzle, rec.Preprocessing, rec.Seed,
		rec.Solved, rec.Seconds, rec.ReturnCode, rec.Solution, rec.Timestamp.UTC(),
	)
	return err
}

// GetExperiment retrieves an experiment by id.
func (s *Store) GetExperiment(id string) (*Experiment, error) {
	row := s.db.QueryRow(
		`SELECT id, name, puzzles, modes, attempts, workers, created_at
		 FROM experiments WHERE id = ?`, id,
	)

	var exp Experiment
	err := row.Scan(&exp.ID, &exp.Name, &exp.Puzzles, &exp.Modes,
		&exp.Attempts, &exp.Workers, &exp.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &exp, nil
}

// RecentExperiments returns the most recent experiments.
func (s *Store) RecentExperiments(limit int) ([]*Experiment, error) {
	rows, err := s.db.Query(
		`SELECT id, name, puzzles, modes, attempts, workers, created_at
		 FROM experiments ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var experiments []*Experiment
	for rows.Next() {
		var exp Experiment
		err := rows.Scan(&exp.ID, &exp.Name, &exp.Puzzles, &exp.Modes,
			&exp.Attempts, &exp.Workers, &exp.CreatedAt)
		if err != nil {
			return nil, err
		}
		experiments = append(experiments, &exp)
	}
	return experiments, rows.Err()
}

// Runs retrieves all records of an experiment in insertion order.
func (s *Store) Runs(experimentID string) ([]results.Record, error) {
	rows, err := s.db.Query(
		`SELECT attempt, puzzle, preprocessing, seed, solved, seconds,
		 return_code, solution, timestamp
		 FROM runs WHERE experiment_id = ? ORDER BY id`, experimentID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []results.Record
	for rows.Next() {
		var rec results.Record
		var solution sql.NullString
		err := rows.Scan(&rec.Attempt, &rec.Puzzle, &rec.Preprocessing, &rec.Seed,
			&rec.Solved, &rec.Seconds, &rec.ReturnCode, &solution, &rec.Timestamp)
		if err != nil {
			return nil, err
		}
		if solution.Valid {
			rec.Solution = solution.String
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}

// ExperimentSummary aggregates an experiment's runs in SQL.
func (s *Store) ExperimentSummary(experimentID string) (*Summary, error) {
	row := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(solved), 0), COALESCE(AVG(seconds), 0),
		 COALESCE(MIN(seconds), 0), COALESCE(MAX(seconds), 0)
		 FROM runs WHERE experiment_id = ?`, experimentID,
	)

	sum := Summary{ExperimentID: experimentID}
	err := row.Scan(&sum.Runs, &sum.Solved, &sum.MeanSeconds,
		&sum.MinSeconds, &sum.MaxSeconds)
	if err != nil {
		return nil, err
	}
	if sum.Runs > 0 {
		sum.SuccessRate = float64(sum.Solved) / float64(sum.Runs)
	}
	return &sum, nil
}

// ExportJSON writes an experiment with its runs and summary as JSON.
func (s *Store) ExportJSON(experimentID string, w io.Writer) error {
	exp, err := s.GetExperiment(experimentID)
	if err != nil {
		return err
	}

	records, err := s.Runs(experimentID)
	if err != nil {
		return err
	}

	summary, err := s.ExperimentSummary(experimentID)
	if err != nil {
		return err
	}

	export := map[string]any{
		"experiment": exp,
		"runs":       records,
		"summary":    summary,
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return err
	}

	_, err = w.Write(data)
	return err
}
