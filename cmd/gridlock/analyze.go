package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gridlock-xyz/go-gridlock/plotter"
	"github.com/gridlock-xyz/go-gridlock/results"
)

func analyze(args []string) error {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	summaryPath := fs.String("summary", "", "Also write a plain-text summary to this file")
	svgPath := fs.String("svg", "", "Also write a success-rate chart to this file")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: gridlock analyze <csv-file-or-dir>... [options]

Display success rates and timing statistics from experiment records,
overall and broken down by puzzle and preprocessing mode.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  # Report on one results file
  gridlock analyze runs.csv

  # Merge every CSV in a directory
  gridlock analyze results/

  # Keep a text summary next to the data
  gridlock analyze runs.csv --summary summary.txt
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("CSV file or directory required")
	}

	var records []results.Record
	for _, arg := range fs.Args() {
		info, err := os.Stat(arg)
		if err != nil {
			return err
		}
		var recs []results.Record
		if info.IsDir() {
			recs, err = results.ReadDir(arg)
		} else {
			recs, err = results.ReadFile(arg)
		}
		if err != nil {
			return err
		}
		records = append(records, recs...)
	}

	rep := results.Analyze(records)
	rep.Print()

	if *summaryPath != "" {
		if err := rep.WriteSummary(*summaryPath); err != nil {
			return fmt.Errorf("write summary: %w", err)
		}
		fmt.Fprintf(os.Stderr, "\nSummary written to %s\n", *summaryPath)
	}

	if *svgPath != "" {
		svg := plotter.PlotSuccessRates(rep, 800, 500, "Success rate by puzzle")
		if err := os.WriteFile(*svgPath, []byte(svg), 0644); err != nil {
			return fmt.Errorf("write chart: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Chart written to %s\n", *svgPath)
	}
	return nil
}
