// Package results defines the record format for batch experiments
package results

import "time"

// Return codes recorded for each solver attempt.
const (
	CodeSolved   = 0  // a verified solution was found
	CodeUnsolved = 1  // the solver finished without a solution, or the puzzle was invalid
	CodeError    = -1 // the attempt timed out or failed outright
)

// NoSolution is the final_solution value written for attempts that
// finished without a complete grid.
const NoSolution = "N/A"

// Record captures one solver attempt within a batch experiment.
type Record struct {
	Attempt       int       `json:"attempt"`            // 1-based attempt number within the batch
	Puzzle        string    `json:"puzzle"`             // puzzle name, e.g. "s01a"
	Preprocessing bool      `json:"preprocessing"`      // constraint propagation ran before the solver
	Seed          int64     `json:"seed"`               // RNG seed used for the attempt
	Solved        bool      `json:"solved"`             // a verified solution was found
	Seconds       float64   `json:"seconds"`            // wall-clock execution time
	ReturnCode    int       `json:"returnCode"`         // CodeSolved, CodeUnsolved or CodeError
	Solution      string    `json:"solution,omitempty"` // final 81-digit grid, empty when none
	Timestamp     time.Time `json:"timestamp"`          // when the attempt finished
}

// Stat holds a statistical summary of a series
type Stat struct {
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Mean   float64 `json:"mean"`
	Median float64 `json:"median"`
	Std    float64 `json:"std"`
}

// GroupStats aggregates the attempts sharing a puzzle or configuration.
type GroupStats struct {
	Attempts    int     `json:"attempts"`
	Solved      int     `json:"solved"`
	SuccessRate float64 `json:"successRate"` // solved / attempts, in [0, 1]
	Time        Stat    `json:"time"`        // execution time in seconds
}

// Comparison holds one puzzle's outcomes under each preprocessing mode.
type Comparison struct {
	Puzzle  string     `json:"puzzle"`
	With    GroupStats `json:"with"`
	Without GroupStats `json:"without"`
}

// Report summarizes a set of batch records.
type Report struct {
	Records              int                   `json:"records"`
	Puzzles              []string              `json:"puzzles"` // distinct puzzle names, sorted
	Overall              GroupStats            `json:"overall"`
	WithPreprocessing    GroupStats            `json:"withPreprocessing"`
	WithoutPreprocessing GroupStats            `json:"withoutPreprocessing"`
	ByPuzzle             map[string]GroupStats `json:"byPuzzle"`
	Comparison           []Comparison          `json:"comparison"` // one row per puzzle, sorted
}
