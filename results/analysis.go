package results

import (
	"math"
	"sort"
)

// Analyzer computes insights from batch records
type Analyzer struct {
	records []Record
}

// NewAnalyzer creates an analyzer for records
func NewAnalyzer(records []Record) *Analyzer {
	return &Analyzer{records: records}
}

// Analyze summarizes a set of batch records into a report.
func Analyze(records []Record) *Report {
	return NewAnalyzer(records).ComputeAll()
}

// ComputeAll runs all aggregations
func (a *Analyzer) ComputeAll() *Report {
	report := &Report{
		Records:  len(a.records),
		ByPuzzle: make(map[string]GroupStats),
	}

	report.Overall = a.groupStats(a.records)

	// Split by preprocessing mode
	with, without := splitByMode(a.records)
	report.WithPreprocessing = a.groupStats(with)
	report.WithoutPreprocessing = a.groupStats(without)

	// Per-puzzle aggregates
	byPuzzle := make(map[string][]Record)
	for _, rec := range a.records {
		byPuzzle[rec.Puzzle] = append(byPuzzle[rec.Puzzle], rec)
	}
	for name, recs := range byPuzzle {
		report.Puzzles = append(report.Puzzles, name)
		report.ByPuzzle[name] = a.groupStats(recs)
	}
	sort.Strings(report.Puzzles)

	// Puzzle x preprocessing success matrix
	for _, name := range report.Puzzles {
		with, without := splitByMode(byPuzzle[name])
		report.Comparison = append(report.Comparison, Comparison{
			Puzzle:  name,
			With:    a.groupStats(with),
			Without: a.groupStats(without),
		})
	}

	return report
}

// groupStats aggregates one group of records
func (a *Analyzer) groupStats(records []Record) GroupStats {
	if len(records) == 0 {
		return GroupStats{}
	}

	g := GroupStats{Attempts: len(records)}
	times := make([]float64, 0, len(records))

	for _, rec := range records {
		if rec.Solved {
			g.Solved++
		}
		times = append(times, rec.Seconds)
	}

	g.SuccessRate = float64(g.Solved) / float64(g.Attempts)
	g.Time = a.computeStats(times)

	return g
}

func splitByMode(records []Record) (with, without []Record) {
	for _, rec := range records {
		if rec.Preprocessing {
			with = append(with, rec)
		} else {
			without = append(without, rec)
		}
	}
	return with, without
}

// computeStats calculates statistical summary
func (a *Analyzer) computeStats(data []float64) Stat {
	if len(data) == 0 {
		return Stat{}
	}

	// Min and max
	min := data[0]
	max := data[0]
	sum := 0.0

	for _, v := range data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
		sum += v
	}

	mean := sum / float64(len(data))

	// Standard deviation
	sumSq := 0.0
	for _, v := range data {
		diff := v - mean
		sumSq += diff * diff
	}
	std := math.Sqrt(sumSq / float64(len(data)))

	// Median
	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	var median float64
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		median = (sorted[mid-1] + sorted[mid]) / 2
	} else {
		median = sorted[mid]
	}

	return Stat{
		Min:    min,
		Max:    max,
		Mean:   mean,
		Median: median,
		Std:    std,
	}
}
