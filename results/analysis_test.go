package results

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func analysisRecords() []Record {
	ts := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	return []Record{
		{Attempt: 1, Puzzle: "s01a", Preprocessing: true, Solved: true, Seconds: 1, ReturnCode: CodeSolved, Timestamp: ts},
		{Attempt: 2, Puzzle: "s01a", Preprocessing: true, Solved: false, Seconds: 3, ReturnCode: CodeUnsolved, Timestamp: ts},
		{Attempt: 3, Puzzle: "s01b", Preprocessing: false, Solved: true, Seconds: 5, ReturnCode: CodeSolved, Timestamp: ts},
	}
}

func TestAnalyzeOverall(t *testing.T) {
	report := Analyze(analysisRecords())

	require.Equal(t, 3, report.Records)
	require.Equal(t, []string{"s01a", "s01b"}, report.Puzzles)

	require.Equal(t, 3, report.Overall.Attempts)
	require.Equal(t, 2, report.Overall.Solved)
	require.InDelta(t, 2.0/3.0, report.Overall.SuccessRate, 1e-12)
	require.InDelta(t, 1.0, report.Overall.Time.Min, 1e-12)
	require.InDelta(t, 5.0, report.Overall.Time.Max, 1e-12)
	require.InDelta(t, 3.0, report.Overall.Time.Mean, 1e-12)
	require.InDelta(t, 3.0, report.Overall.Time.Median, 1e-12)
	require.InDelta(t, 1.632993161855452, report.Overall.Time.Std, 1e-12)
}

func TestAnalyzeByPreprocessing(t *testing.T) {
	report := Analyze(analysisRecords())

	with := report.WithPreprocessing
	require.Equal(t, 2, with.Attempts)
	require.Equal(t, 1, with.Solved)
	require.InDelta(t, 0.5, with.SuccessRate, 1e-12)
	require.InDelta(t, 2.0, with.Time.Mean, 1e-12)
	require.InDelta(t, 1.0, with.Time.Std, 1e-12)

	without := report.WithoutPreprocessing
	require.Equal(t, 1, without.Attempts)
	require.Equal(t, 1, without.Solved)
	require.InDelta(t, 1.0, without.SuccessRate, 1e-12)
	require.InDelta(t, 5.0, without.Time.Median, 1e-12)
	require.Zero(t, without.Time.Std)
}

func TestAnalyzeByPuzzle(t *testing.T) {
	report := Analyze(analysisRecords())

	require.Len(t, report.ByPuzzle, 2)
	require.Equal(t, 2, report.ByPuzzle["s01a"].Attempts)
	require.Equal(t, 1, report.ByPuzzle["s01a"].Solved)
	require.Equal(t, 1, report.ByPuzzle["s01b"].Attempts)

	require.Len(t, report.Comparison, 2)

	first := report.Comparison[0]
	require.Equal(t, "s01a", first.Puzzle)
	require.Equal(t, 2, first.With.Attempts)
	require.Zero(t, first.Without.Attempts)

	second := report.Comparison[1]
	require.Equal(t, "s01b", second.Puzzle)
	require.Zero(t, second.With.Attempts)
	require.InDelta(t, 1.0, second.Without.SuccessRate, 1e-12)
}

func TestAnalyzeEmpty(t *testing.T) {
	report := Analyze(nil)

	require.Zero(t, report.Records)
	require.Empty(t, report.Puzzles)
	require.Zero(t, report.Overall.Attempts)
}

func TestComputeStats(t *testing.T) {
	a := NewAnalyzer(nil)

	s := a.computeStats([]float64{4, 1, 3, 2})
	require.InDelta(t, 1.0, s.Min, 1e-12)
	require.InDelta(t, 4.0, s.Max, 1e-12)
	require.InDelta(t, 2.5, s.Mean, 1e-12)
	require.InDelta(t, 2.5, s.Median, 1e-12)
	require.InDelta(t, 1.118033988749895, s.Std, 1e-12)

	odd := a.computeStats([]float64{3, 1, 2})
	require.InDelta(t, 2.0, odd.Median, 1e-12)

	require.Equal(t, Stat{}, a.computeStats(nil))
}

func TestReportWrite(t *testing.T) {
	var b strings.Builder
	Analyze(analysisRecords()).Write(&b)
	out := b.String()

	require.Contains(t, out, "=== Overall Statistics ===")
	require.Contains(t, out, "Records: 3")
	require.Contains(t, out, "Puzzles: s01a, s01b")
	require.Contains(t, out, "--- with preprocessing ---")
	require.Contains(t, out, "Solved:   1 (50.0%)")
	require.Contains(t, out, "=== Success Rate: Puzzle x Preprocessing ===")
	require.Regexp(t, `s01a\s+50\.0%\s+-`, out)
	require.Regexp(t, `s01b\s+-\s+100\.0%`, out)
}

func TestWriteSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.txt")
	require.NoError(t, Analyze(analysisRecords()).WriteSummary(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(raw)

	require.Contains(t, out, "Sudoku solver experiment summary")
	require.Contains(t, out, "Solved:   2/3 (66.7%)")
	require.Contains(t, out, "with:    1/2 (50.0%)")
	require.Contains(t, out, "without: 1/1 (100.0%)")
	require.Contains(t, out, "s01a: 1/2 (50.0%)")
}
