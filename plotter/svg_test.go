package plotter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gridlock-xyz/go-gridlock/results"
)

func TestChartRenderLine(t *testing.T) {
	x := []float64{0, 1, 2, 3}
	y := []float64{0.2, 0.5, 0.8, 1.0}

	svg := New(800, 600).
		SetTitle("Convergence").
		SetXLabel("Generation").
		SetYLabel("Fitness").
		AddSeries(x, y, "best", "").
		Render()

	require.True(t, strings.HasPrefix(svg, `<svg xmlns="http://www.w3.org/2000/svg" width="800" height="600">`))
	require.True(t, strings.HasSuffix(svg, `</svg>`))
	require.Contains(t, svg, "Convergence")
	require.Contains(t, svg, "Generation")
	require.Contains(t, svg, "Fitness")
	require.Contains(t, svg, `<path d="M`)
	require.Contains(t, svg, palette[0])
}

func TestChartPaletteCycles(t *testing.T) {
	x := []float64{0, 1}
	c := New(400, 300).
		AddSeries(x, []float64{1, 2}, "a", "").
		AddSeries(x, []float64{2, 1}, "b", "")

	svg := c.Render()
	require.Contains(t, svg, palette[0])
	require.Contains(t, svg, palette[1])
}

func TestChartKeepsExplicitColor(t *testing.T) {
	svg := New(400, 300).
		AddSeries([]float64{0, 1}, []float64{1, 2}, "a", "#123456").
		Render()
	require.Contains(t, svg, "#123456")
}

func TestChartEscapesMarkup(t *testing.T) {
	svg := New(400, 300).SetTitle(`a<b & "c"`).Render()
	require.Contains(t, svg, "a&lt;b &amp; &quot;c&quot;")
	require.NotContains(t, svg, `a<b`)
}

func TestChartEmpty(t *testing.T) {
	svg := New(400, 300).Render()
	require.Contains(t, svg, "<svg")
	require.Contains(t, svg, "</svg>")
	require.NotContains(t, svg, "<path")
}

func TestChartBars(t *testing.T) {
	svg := New(640, 480).
		SetBarLegend("with", "without").
		SetYRange(0, 100).
		AddBars("s01a", 80, 40).
		AddBars("s10a", 50, 10).
		Render()

	require.Contains(t, svg, "s01a")
	require.Contains(t, svg, "s10a")
	require.Contains(t, svg, "with")
	require.Contains(t, svg, "without")
	// Pinned axis: ticks run 0 to 100 in steps of 20.
	require.Contains(t, svg, ">100<")
	require.Contains(t, svg, ">20<")
	require.GreaterOrEqual(t, strings.Count(svg, "<rect"), 5)
}

func TestPlotConvergence(t *testing.T) {
	best := []float64{0.5, 0.7, 0.9, 1.0}
	rate := []float64{0.06, 0.08, 0.07, 0.06}

	svg := PlotConvergence(best, rate, 800, 600, "easy run")
	require.Contains(t, svg, "easy run")
	require.Contains(t, svg, "best fitness")
	require.Contains(t, svg, "mutation rate")
	require.Equal(t, 2, strings.Count(svg, `<path d="M`))

	// Without a rate series only one line is drawn.
	svg = PlotConvergence(best, nil, 800, 600, "easy run")
	require.Equal(t, 1, strings.Count(svg, `<path d="M`))
}

func TestPlotSuccessRates(t *testing.T) {
	rep := &results.Report{
		Comparison: []results.Comparison{
			{
				Puzzle:  "s01a",
				With:    results.GroupStats{Attempts: 2, Solved: 2, SuccessRate: 1},
				Without: results.GroupStats{Attempts: 2, Solved: 1, SuccessRate: 0.5},
			},
			{
				Puzzle:  "s10a",
				With:    results.GroupStats{Attempts: 2, Solved: 1, SuccessRate: 0.5},
				Without: results.GroupStats{Attempts: 2, Solved: 0, SuccessRate: 0},
			},
		},
	}

	svg := PlotSuccessRates(rep, 640, 480, "Success by puzzle")
	require.Contains(t, svg, "Success by puzzle")
	require.Contains(t, svg, "s01a")
	require.Contains(t, svg, "s10a")
	require.Contains(t, svg, "with preprocessing")
	require.Contains(t, svg, "without preprocessing")
	require.Contains(t, svg, "Success rate (%)")
}
