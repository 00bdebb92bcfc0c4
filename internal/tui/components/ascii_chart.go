package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rgehrsitz/nestegg/internal/tui/tuistyles"
)

// DataSeries represents a single line in a chart
type DataSeries struct {
	Name   string
	Points []float64
	Color  lipgloss.Color
}

// ASCIIChart draws one or more series as a line chart in plain runes
type ASCIIChart struct {
	Title      string
	Series     []*DataSeries
	Labels     []string // X-axis labels, one per point
	Width      int
	Height     int
	ShowLegend bool
	XAxisLabel string

	// Vertical marker drawn at point index MarkerIndex when >= 0
	MarkerIndex int
	MarkerLabel string
}

const yAxisWidth = 9

// NewASCIIChart creates a new ASCII chart
func NewASCIIChart(title string) *ASCIIChart {
	return &ASCIIChart{
		Title:       title,
		Width:       60,
		Height:      12,
		ShowLegend:  true,
		MarkerIndex: -1,
	}
}

// AddSeries adds a data series to the chart
func (c *ASCIIChart) AddSeries(name string, points []float64, color lipgloss.Color) *ASCIIChart {
	c.Series = append(c.Series, &DataSeries{
		Name:   name,
		Points: points,
		Color:  color,
	})
	return c
}

// WithLabels sets the X-axis labels
func (c *ASCIIChart) WithLabels(labels []string) *ASCIIChart {
	c.Labels = labels
	return c
}

// WithSize sets the chart dimensions
func (c *ASCIIChart) WithSize(width, height int) *ASCIIChart {
	c.Width = width
	c.Height = height
	return c
}

// WithXAxisLabel sets the caption under the X axis
func (c *ASCIIChart) WithXAxisLabel(label string) *ASCIIChart {
	c.XAxisLabel = label
	return c
}

// WithMarker draws a vertical line at point index i
func (c *ASCIIChart) WithMarker(i int, label string) *ASCIIChart {
	c.MarkerIndex = i
	c.MarkerLabel = label
	return c
}

// Render returns the styled chart
func (c *ASCIIChart) Render() string {
	if c.pointCount() == 0 {
		return tuistyles.InfoStyle.Render("No data to display")
	}
	if c.Height < 2 {
		c.Height = 2
	}

	var content strings.Builder

	if c.Title != "" {
		content.WriteString(tuistyles.TitleStyle.Render(c.Title))
		content.WriteString("\n\n")
	}

	lo, hi := c.bounds()
	content.WriteString(c.renderGrid(lo, hi))

	if c.XAxisLabel != "" {
		content.WriteString("\n")
		content.WriteString(tuistyles.SubtitleStyle.Render(c.XAxisLabel))
	}

	if c.ShowLegend && (len(c.Series) > 1 || c.MarkerLabel != "") {
		content.WriteString("\n")
		content.WriteString(c.renderLegend())
	}

	return content.String()
}

func (c *ASCIIChart) pointCount() int {
	n := 0
	for _, s := range c.Series {
		if len(s.Points) > n {
			n = len(s.Points)
		}
	}
	return n
}

// bounds returns the plotted value range. Balances never go below zero so the
// floor is pinned at zero when every point is non-negative.
func (c *ASCIIChart) bounds() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, s := range c.Series {
		for _, p := range s.Points {
			lo = math.Min(lo, p)
			hi = math.Max(hi, p)
		}
	}
	if lo >= 0 {
		lo = 0
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi + (hi-lo)*0.05
}

func (c *ASCIIChart) plotWidth() int {
	w := c.Width - yAxisWidth - 3
	if w < 2 {
		w = 2
	}
	return w
}

func (c *ASCIIChart) column(i, n, width int) int {
	if n <= 1 {
		return 0
	}
	return int(math.Round(float64(i) / float64(n-1) * float64(width-1)))
}

func (c *ASCIIChart) row(v, lo, hi float64) int {
	return c.Height - 1 - int(math.Round((v-lo)/(hi-lo)*float64(c.Height-1)))
}

// renderGrid renders the plot area with the Y axis on the left
func (c *ASCIIChart) renderGrid(lo, hi float64) string {
	width := c.plotWidth()
	grid := make([][]rune, c.Height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	n := c.pointCount()
	if c.MarkerIndex >= 0 && c.MarkerIndex < n {
		x := c.column(c.MarkerIndex, n, width)
		for y := range grid {
			grid[y][x] = '┊'
		}
	}

	for idx, s := range c.Series {
		char := seriesChar(idx)
		for i, v := range s.Points {
			x, y := c.column(i, len(s.Points), width), c.row(v, lo, hi)
			if i > 0 {
				px, py := c.column(i-1, len(s.Points), width), c.row(s.Points[i-1], lo, hi)
				drawLine(grid, px, py, x, y)
			}
			if y >= 0 && y < c.Height {
				grid[y][x] = char
			}
		}
	}

	var out strings.Builder
	axisStyle := lipgloss.NewStyle().
		Foreground(tuistyles.ColorMuted).
		Width(yAxisWidth).
		Align(lipgloss.Right)

	for i, r := range grid {
		label := ""
		// Label the top, middle and bottom rows only
		if i == 0 || i == c.Height-1 || i == c.Height/2 {
			v := hi - float64(i)/float64(c.Height-1)*(hi-lo)
			label = formatChartValue(v)
		}
		out.WriteString(axisStyle.Render(label))
		out.WriteString(" │ ")
		out.WriteString(c.colorize(string(r)))
		out.WriteString("\n")
	}

	out.WriteString(strings.Repeat(" ", yAxisWidth))
	out.WriteString(" └─")
	out.WriteString(strings.Repeat("─", width))

	if len(c.Labels) > 0 {
		out.WriteString("\n")
		out.WriteString(c.renderXAxisLabels(width))
	}

	return out.String()
}

// colorize paints each series rune in its series colour
func (c *ASCIIChart) colorize(line string) string {
	var b strings.Builder
	for _, r := range line {
		styled := false
		for idx, s := range c.Series {
			if r == seriesChar(idx) && s.Color != "" {
				b.WriteString(lipgloss.NewStyle().Foreground(s.Color).Render(string(r)))
				styled = true
				break
			}
		}
		if !styled {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// renderXAxisLabels places up to five labels under their columns
func (c *ASCIIChart) renderXAxisLabels(width int) string {
	n := len(c.Labels)
	line := []rune(strings.Repeat(" ", width+8))

	slots := 5
	if n < slots {
		slots = n
	}
	for k := 0; k < slots; k++ {
		i := 0
		if slots > 1 {
			i = k * (n - 1) / (slots - 1)
		}
		x := c.column(i, n, width)
		for j, r := range c.Labels[i] {
			if x+j < len(line) {
				line[x+j] = r
			}
		}
	}

	return strings.Repeat(" ", yAxisWidth+3) +
		lipgloss.NewStyle().Foreground(tuistyles.ColorMuted).Render(strings.TrimRight(string(line), " "))
}

// renderLegend renders the chart legend
func (c *ASCIIChart) renderLegend() string {
	var items []string
	for i, s := range c.Series {
		symbol := lipgloss.NewStyle().Foreground(s.Color).Render(string(seriesChar(i)))
		items = append(items, fmt.Sprintf("%s %s", symbol, s.Name))
	}
	if c.MarkerLabel != "" {
		items = append(items, "┊ "+c.MarkerLabel)
	}
	return tuistyles.HelpDescStyle.Render(strings.Join(items, " • "))
}

func seriesChar(index int) rune {
	chars := []rune{'●', '■', '▲', '♦'}
	return chars[index%len(chars)]
}

// drawLine joins two points with Bresenham's algorithm, leaving existing points in place
func drawLine(grid [][]rune, x0, y0, x1, y1 int) {
	dx, dy := abs(x1-x0), abs(y1-y0)
	sx, sy := -1, -1
	if x0 < x1 {
		sx = 1
	}
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for x, y := x0, y0; ; {
		if y >= 0 && y < len(grid) && x >= 0 && x < len(grid[y]) {
			if grid[y][x] == ' ' || grid[y][x] == '┊' {
				grid[y][x] = '·'
			}
		}
		if x == x1 && y == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x += sx
		}
		if e2 < dx {
			err += dx
			y += sy
		}
	}
}

// formatChartValue formats a value for the Y axis
func formatChartValue(value float64) string {
	switch {
	case math.Abs(value) >= 1000000:
		return fmt.Sprintf("$%.1fM", value/1000000)
	case math.Abs(value) >= 1000:
		return fmt.Sprintf("$%.0fK", value/1000)
	default:
		return fmt.Sprintf("$%.0f", value)
	}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
