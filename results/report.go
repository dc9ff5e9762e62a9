package results

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Print writes the full report to stdout.
func (r *Report) Print() {
	r.Write(os.Stdout)
}

// Write renders the full report
func (r *Report) Write(w io.Writer) {
	fmt.Fprintf(w, "=== Overall Statistics ===\n")
	fmt.Fprintf(w, "Records: %d\n", r.Records)
	fmt.Fprintf(w, "Puzzles: %s\n", strings.Join(r.Puzzles, ", "))
	writeGroup(w, "all attempts", r.Overall)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "=== By Preprocessing ===\n")
	writeGroup(w, "with preprocessing", r.WithPreprocessing)
	writeGroup(w, "without preprocessing", r.WithoutPreprocessing)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "=== By Puzzle ===\n")
	for _, name := range r.Puzzles {
		writeGroup(w, name, r.ByPuzzle[name])
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "=== Success Rate: Puzzle x Preprocessing ===\n")
	fmt.Fprintf(w, "%-16s %10s %10s\n", "puzzle", "with", "without")
	for _, c := range r.Comparison {
		fmt.Fprintf(w, "%-16s %10s %10s\n", c.Puzzle, successCell(c.With), successCell(c.Without))
	}
}

// WriteSummary writes a short text summary of the report to path.
func (r *Report) WriteSummary(path string) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Sudoku solver experiment summary\n")
	fmt.Fprintf(&b, "Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(&b, "%s\n\n", strings.Repeat("=", 70))

	fmt.Fprintf(&b, "Attempts: %d\n", r.Overall.Attempts)
	fmt.Fprintf(&b, "Solved:   %s\n\n", summaryLine(r.Overall))

	fmt.Fprintf(&b, "By preprocessing:\n")
	fmt.Fprintf(&b, "  with:    %s\n", summaryLine(r.WithPreprocessing))
	fmt.Fprintf(&b, "  without: %s\n", summaryLine(r.WithoutPreprocessing))

	fmt.Fprintf(&b, "\nBy puzzle:\n")
	for _, name := range r.Puzzles {
		fmt.Fprintf(&b, "  %s: %s\n", name, summaryLine(r.ByPuzzle[name]))
	}

	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

func writeGroup(w io.Writer, label string, g GroupStats) {
	fmt.Fprintf(w, "--- %s ---\n", label)
	if g.Attempts == 0 {
		fmt.Fprintf(w, "  no attempts\n")
		return
	}

	fmt.Fprintf(w, "  Attempts: %d\n", g.Attempts)
	fmt.Fprintf(w, "  Solved:   %d (%.1f%%)\n", g.Solved, 100*g.SuccessRate)
	fmt.Fprintf(w, "  Time:     mean %.4fs ± %.4fs, min %.4fs, max %.4fs\n",
		g.Time.Mean, g.Time.Std, g.Time.Min, g.Time.Max)
}

func successCell(g GroupStats) string {
	if g.Attempts == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", 100*g.SuccessRate)
}

func summaryLine(g GroupStats) string {
	if g.Attempts == 0 {
		return "no attempts"
	}
	return fmt.Sprintf("%d/%d (%.1f%%)", g.Solved, g.Attempts, 100*g.SuccessRate)
}
