package results

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Header is the column layout of results CSV files.
var Header = []string{
	"attempt_number",
	"puzzle_name",
	"preprocessing",
	"seed",
	"solved",
	"execution_time_seconds",
	"return_code",
	"final_solution",
	"timestamp",
}

// Writer appends records to a CSV file as attempts finish.
type Writer struct {
	f *os.File
	w *csv.Writer
}

// NewWriter creates filename and writes the CSV header.
func NewWriter(filename string) (*Writer, error) {
	f, err := os.Create(filename)
	if err != nil {
		return nil, fmt.Errorf("creating file: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(Header); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing header: %w", err)
	}
	w.Flush()

	return &Writer{f: f, w: w}, nil
}

// Write appends one record and flushes it to disk, so partial results
// survive an interrupted batch.
func (w *Writer) Write(rec Record) error {
	if err := w.w.Write(encodeRecord(rec)); err != nil {
		return fmt.Errorf("writing record %d: %w", rec.Attempt, err)
	}
	w.w.Flush()
	return w.w.Error()
}

// Close flushes buffered rows and closes the file.
func (w *Writer) Close() error {
	w.w.Flush()
	if err := w.w.Error(); err != nil {
		w.f.Close()
		return err
	}
	return w.f.Close()
}

// WriteFile writes a complete set of records to a CSV file.
func WriteFile(filename string, records []Record) error {
	w, err := NewWriter(filename)
	if err != nil {
		return err
	}

	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			w.Close()
			return err
		}
	}

	return w.Close()
}

// ReadFile loads the records from one results CSV file.
func ReadFile(filename string) ([]Record, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	return ReadAll(f)
}

// ReadDir loads and merges every *.csv file in a directory.
func ReadDir(dir string) ([]Record, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no CSV files in %s", dir)
	}

	var records []Record
	for _, name := range matches {
		recs, err := ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		records = append(records, recs...)
	}

	return records, nil
}

// ReadAll parses records from a CSV stream.
func ReadAll(r io.Reader) ([]Record, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	// Build column index map
	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, col := range Header {
		if _, ok := colIndex[col]; !ok {
			return nil, fmt.Errorf("column '%s' not found in header: %v", col, header)
		}
	}

	var records []Record
	lineNum := 2 // the header is line 1

	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading line %d: %w", lineNum, err)
		}

		rec, err := decodeRecord(row, colIndex)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		records = append(records, rec)
		lineNum++
	}

	return records, nil
}

func encodeRecord(rec Record) []string {
	solution := rec.Solution
	if solution == "" {
		solution = NoSolution
	}

	return []string{
		strconv.Itoa(rec.Attempt),
		rec.Puzzle,
		strconv.FormatBool(rec.Preprocessing),
		strconv.FormatInt(rec.Seed, 10),
		strconv.FormatBool(rec.Solved),
		strconv.FormatFloat(rec.Seconds, 'f', 4, 64),
		strconv.Itoa(rec.ReturnCode),
		solution,
		rec.Timestamp.Format(time.RFC3339),
	}
}

func decodeRecord(row []string, colIndex map[string]int) (Record, error) {
	var rec Record
	var err error

	field := func(name string) string {
		return strings.TrimSpace(row[colIndex[name]])
	}

	if rec.Attempt, err = strconv.Atoi(field("attempt_number")); err != nil {
		return rec, fmt.Errorf("invalid attempt number '%s'", field("attempt_number"))
	}
	rec.Puzzle = field("puzzle_name")

	if rec.Preprocessing, err = strconv.ParseBool(field("preprocessing")); err != nil {
		return rec, fmt.Errorf("invalid preprocessing flag '%s'", field("preprocessing"))
	}
	if rec.Seed, err = strconv.ParseInt(field("seed"), 10, 64); err != nil {
		return rec, fmt.Errorf("invalid seed '%s'", field("seed"))
	}
	if rec.Solved, err = strconv.ParseBool(field("solved")); err != nil {
		return rec, fmt.Errorf("invalid solved flag '%s'", field("solved"))
	}
	if rec.Seconds, err = strconv.ParseFloat(field("execution_time_seconds"), 64); err != nil {
		return rec, fmt.Errorf("invalid execution time '%s'", field("execution_time_seconds"))
	}
	if rec.ReturnCode, err = strconv.Atoi(field("return_code")); err != nil {
		return rec, fmt.Errorf("invalid return code '%s'", field("return_code"))
	}

	if solution := field("final_solution"); solution != NoSolution {
		rec.Solution = solution
	}

	if rec.Timestamp, err = time.Parse(time.RFC3339, field("timestamp")); err != nil {
		return rec, fmt.Errorf("invalid timestamp '%s': %w", field("timestamp"), err)
	}

	return rec, nil
}
