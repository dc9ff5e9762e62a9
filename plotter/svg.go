// Package plotter renders experiment data as standalone SVG images:
// convergence curves for single evolutionary runs and success-rate bars
// for batch reports.
package plotter

import (
	"fmt"
	"math"
	"strings"

	"github.com/gridlock-xyz/go-gridlock/results"
)

// Chart margins in pixels.
const (
	marginTop    = 40.0
	marginRight  = 30.0
	marginBottom = 50.0
	marginLeft   = 60.0
)

var palette = []string{"#377eb8", "#e41a1c", "#4daf4a", "#984ea3", "#ff7f00"}

var xmlEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")

// Series is one polyline of a chart.
type Series struct {
	X, Y  []float64
	Label string
	Color string
}

// BarGroup is one labelled cluster of bars. Values are drawn in legend
// order, colored from the palette.
type BarGroup struct {
	Label  string
	Values []float64
}

// Chart builds a standalone SVG image. Start from New; setters chain.
type Chart struct {
	Width, Height float64
	Title         string
	XLabel        string
	YLabel        string

	series     []Series
	groups     []BarGroup
	barLegend  []string
	yFixed     bool
	yMin, yMax float64
}

// New creates an empty chart of the given pixel dimensions.
func New(width, height float64) *Chart {
	return &Chart{Width: width, Height: height}
}

// SetTitle sets the chart title.
func (c *Chart) SetTitle(t string) *Chart { c.Title = t; return c }

// SetXLabel sets the X-axis label.
func (c *Chart) SetXLabel(s string) *Chart { c.XLabel = s; return c }

// SetYLabel sets the Y-axis label.
func (c *Chart) SetYLabel(s string) *Chart { c.YLabel = s; return c }

// SetYRange pins the Y axis instead of fitting it to the data.
func (c *Chart) SetYRange(min, max float64) *Chart {
	c.yFixed, c.yMin, c.yMax = true, min, max
	return c
}

// SetBarLegend names the bars inside each cluster.
func (c *Chart) SetBarLegend(names ...string) *Chart {
	c.barLegend = names
	return c
}

// AddSeries appends one line. An empty color picks the next palette
// entry.
func (c *Chart) AddSeries(x, y []float64, label, color string) *Chart {
	if color == "" {
		color = palette[len(c.series)%len(palette)]
	}
	c.series = append(c.series, Series{X: x, Y: y, Label: label, Color: color})
	return c
}

// AddBars appends one cluster of bars.
func (c *Chart) AddBars(label string, values ...float64) *Chart {
	c.groups = append(c.groups, BarGroup{Label: label, Values: values})
	return c
}

// Render generates the SVG document.
func (c *Chart) Render() string {
	pw := c.Width - marginLeft - marginRight
	ph := c.Height - marginTop - marginBottom

	xmin, xmax, ymin, ymax := c.ranges()

	sx := func(x float64) float64 { return marginLeft + (x-xmin)/(xmax-xmin)*pw }
	sy := func(y float64) float64 { return marginTop + ph - (y-ymin)/(ymax-ymin)*ph }

	var b strings.Builder
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d">`,
		int(c.Width), int(c.Height))
	fmt.Fprintf(&b, `<rect width="%d" height="%d" fill="#ffffff"/>`,
		int(c.Width), int(c.Height))

	if c.Title != "" {
		fmt.Fprintf(&b, `<text x="%.1f" y="25" text-anchor="middle" font-family="sans-serif" font-size="16" font-weight="bold">%s</text>`,
			c.Width/2, xmlEscaper.Replace(c.Title))
	}

	// Axes
	fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#333" stroke-width="2"/>`,
		marginLeft, marginTop, marginLeft, marginTop+ph)
	fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#333" stroke-width="2"/>`,
		marginLeft, marginTop+ph, marginLeft+pw, marginTop+ph)

	if c.XLabel != "" {
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="12">%s</text>`,
			marginLeft+pw/2, c.Height-10, xmlEscaper.Replace(c.XLabel))
	}
	if c.YLabel != "" {
		fmt.Fprintf(&b, `<text x="15" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="12" transform="rotate(-90, 15, %.1f)">%s</text>`,
			marginTop+ph/2, marginTop+ph/2, xmlEscaper.Replace(c.YLabel))
	}

	// Y ticks and horizontal grid
	for i := 0; i <= 5; i++ {
		v := ymin + (ymax-ymin)*float64(i)/5
		py := sy(v)
		fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#333" stroke-width="1"/>`,
			marginLeft-5, py, marginLeft, py)
		fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" text-anchor="end" font-family="sans-serif" font-size="10">%s</text>`,
			marginLeft-10, py+4, tickLabel(v, ymax-ymin))
		fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#ddd" stroke-width="0.5"/>`,
			marginLeft, py, marginLeft+pw, py)
	}

	if len(c.groups) > 0 {
		c.renderBars(&b, pw, ph, sy)
	} else {
		// Numeric X ticks
		for i := 0; i <= 5; i++ {
			v := xmin + (xmax-xmin)*float64(i)/5
			px := sx(v)
			fmt.Fprintf(&b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#333" stroke-width="1"/>`,
				px, marginTop+ph, px, marginTop+ph+5)
			fmt.Fprintf(&b, `<text x="%.1f" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="10">%s</text>`,
				px, marginTop+ph+20, tickLabel(v, xmax-xmin))
		}
	}

	// Lines
	for _, s := range c.series {
		if len(s.X) == 0 {
			continue
		}
		var path strings.Builder
		for i := range s.X {
			if i == 0 {
				fmt.Fprintf(&path, "M%.1f,%.1f", sx(s.X[i]), sy(s.Y[i]))
			} else {
				fmt.Fprintf(&path, " L%.1f,%.1f", sx(s.X[i]), sy(s.Y[i]))
			}
		}
		fmt.Fprintf(&b, `<path d="%s" stroke="%s" stroke-width="2" fill="none"/>`,
			path.String(), s.Color)
	}

	c.renderLegend(&b)

	b.WriteString(`</svg>`)
	return b.String()
}

// renderBars draws the clustered bars and their category labels. Bars
// grow from the X axis; each cluster takes an equal slot of the plot
// width.
func (c *Chart) renderBars(b *strings.Builder, pw, ph float64, sy func(float64) float64) {
	slot := pw / float64(len(c.groups))
	bars := len(c.barLegend)
	if bars == 0 {
		for _, g := range c.groups {
			if len(g.Values) > bars {
				bars = len(g.Values)
			}
		}
	}
	if bars == 0 {
		return
	}
	barWidth := slot * 0.7 / float64(bars)

	for i, g := range c.groups {
		x0 := marginLeft + slot*float64(i) + slot*0.15
		for j, v := range g.Values {
			top := sy(v)
			h := marginTop + ph - top
			if h < 0 {
				h = 0
			}
			fmt.Fprintf(b, `<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s"/>`,
				x0+barWidth*float64(j), top, barWidth, h, palette[j%len(palette)])
		}
		fmt.Fprintf(b, `<text x="%.1f" y="%.1f" text-anchor="middle" font-family="sans-serif" font-size="10">%s</text>`,
			marginLeft+slot*(float64(i)+0.5), marginTop+ph+20, xmlEscaper.Replace(g.Label))
	}
}

func (c *Chart) renderLegend(b *strings.Builder) {
	y := marginTop + 10
	for j, name := range c.barLegend {
		fmt.Fprintf(b, `<rect x="%.1f" y="%.1f" width="12" height="12" fill="%s"/>`,
			c.Width-marginRight-170, y-9, palette[j%len(palette)])
		fmt.Fprintf(b, `<text x="%.1f" y="%.1f" font-family="sans-serif" font-size="10">%s</text>`,
			c.Width-marginRight-153, y+1, xmlEscaper.Replace(name))
		y += 20
	}
	for _, s := range c.series {
		if s.Label == "" {
			continue
		}
		fmt.Fprintf(b, `<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="%s" stroke-width="2"/>`,
			c.Width-marginRight-170, y-4, c.Width-marginRight-153, y-4, s.Color)
		fmt.Fprintf(b, `<text x="%.1f" y="%.1f" font-family="sans-serif" font-size="10">%s</text>`,
			c.Width-marginRight-148, y, xmlEscaper.Replace(s.Label))
		y += 20
	}
}

// ranges fits the axes to the data. Line charts get a small pad around
// the data; bar charts grow from zero. SetYRange overrides the fit.
func (c *Chart) ranges() (xmin, xmax, ymin, ymax float64) {
	xmin, ymin = math.Inf(1), math.Inf(1)
	xmax, ymax = math.Inf(-1), math.Inf(-1)

	for _, s := range c.series {
		for i := range s.X {
			xmin = math.Min(xmin, s.X[i])
			xmax = math.Max(xmax, s.X[i])
			ymin = math.Min(ymin, s.Y[i])
			ymax = math.Max(ymax, s.Y[i])
		}
	}
	for _, g := range c.groups {
		for _, v := range g.Values {
			ymin = math.Min(ymin, v)
			ymax = math.Max(ymax, v)
		}
	}

	if math.IsInf(xmin, 1) {
		xmin, xmax = 0, 1
	}
	if math.IsInf(ymin, 1) {
		ymin, ymax = 0, 1
	}
	if xmax == xmin {
		xmax = xmin + 1
	}
	if ymax == ymin {
		ymax = ymin + 1
	}

	if len(c.groups) > 0 {
		ymin = math.Min(ymin, 0)
		ymax += (ymax - ymin) * 0.05
	} else {
		xpad := (xmax - xmin) * 0.05
		ypad := (ymax - ymin) * 0.10
		xmin, xmax = xmin-xpad, xmax+xpad
		ymin, ymax = ymin-ypad, ymax+ypad
	}

	if c.yFixed {
		ymin, ymax = c.yMin, c.yMax
	}
	return xmin, xmax, ymin, ymax
}

func tickLabel(v, span float64) string {
	switch {
	case span >= 20:
		return fmt.Sprintf("%.0f", v)
	case span >= 2:
		return fmt.Sprintf("%.1f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

// PlotConvergence renders the best-fitness curve of one evolutionary
// run, with the adaptive mutation rate overlaid when given.
func PlotConvergence(best, rate []float64, width, height float64, title string) string {
	x := make([]float64, len(best))
	for i := range x {
		x[i] = float64(i)
	}

	c := New(width, height).SetTitle(title).SetXLabel("Generation").SetYLabel("Fitness")
	c.AddSeries(x, best, "best fitness", "")
	if len(rate) == len(best) && len(rate) > 0 {
		c.AddSeries(x, rate, "mutation rate", "")
	}
	return c.Render()
}

// PlotSuccessRates renders one bar pair per puzzle: solve rate with and
// without the deduction stage.
func PlotSuccessRates(rep *results.Report, width, height float64, title string) string {
	c := New(width, height).SetTitle(title).SetYLabel("Success rate (%)").
		SetBarLegend("with preprocessing", "without preprocessing").
		SetYRange(0, 100)
	for _, cmp := range rep.Comparison {
		c.AddBars(cmp.Puzzle, 100*cmp.With.SuccessRate, 100*cmp.Without.SuccessRate)
	}
	return c.Render()
}
