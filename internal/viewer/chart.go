package viewer

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"lookback/pkg/lookback"
)

// Candle and volume bar colors, fixed per direction.
var (
	upStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	downStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	markerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	axisStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
)

// Fraction of the chart body given to the volume pane.
const volumePaneFraction = 0.2

// gutterWidth is the left price-axis gutter, including a trailing space.
const gutterWidth = 10

type cellKind uint8

const (
	cellEmpty cellKind = iota
	cellBodyUp
	cellBodyDown
	cellWickUp
	cellWickDown
	cellVolUp
	cellVolDown
)

// column is one rendered chart column: a single bar, or several adjacent
// bars merged when more bars are loaded than columns available.
type column struct {
	open, high, low, close float64
	volume                 float64
	up                     bool
}

// chartGrid is the style-free chart layout: cell kinds per row/column plus
// axis metadata. Styling is applied only at View time.
type chartGrid struct {
	price     [][]cellKind // priceRows x cols
	volume    [][]cellKind // volRows x cols
	markerCol int          // -1 when the purchase bar is off-range
	high, low float64
	first     time.Time
	last      time.Time
}

// Chart renders a candlestick series with a volume pane and a purchase
// marker. It owns the loaded data; every SetData call fully replaces the
// previous chart state.
type Chart struct {
	width  int
	height int

	symbol  string
	data    lookback.ChartData
	hasData bool
}

// NewChart creates an empty chart with the given outer dimensions.
func NewChart(width, height int) *Chart {
	return &Chart{width: width, height: height}
}

// SetSize updates the chart's outer dimensions.
func (c *Chart) SetSize(width, height int) {
	c.width = width
	c.height = height
}

// SetData replaces the chart contents with a new series. There is no
// incremental update path: prior state is discarded entirely.
func (c *Chart) SetData(symbol string, data lookback.ChartData) {
	c.symbol = symbol
	c.data = data
	c.hasData = len(data.Candlestick) > 0
}

// Clear discards the loaded series.
func (c *Chart) Clear() {
	c.symbol = ""
	c.data = lookback.ChartData{}
	c.hasData = false
}

// HasData reports whether a series is loaded.
func (c *Chart) HasData() bool { return c.hasData }

// Symbol returns the symbol of the loaded series, or "".
func (c *Chart) Symbol() string { return c.symbol }

// fitColumns merges the candlestick series into at most maxCols columns.
// Merged columns take the first open, last close, extreme high/low, and
// summed volume of their bars, so the whole time range stays visible.
func fitColumns(data lookback.ChartData, maxCols int) []column {
	n := len(data.Candlestick)
	if n == 0 || maxCols <= 0 {
		return nil
	}

	cols := maxCols
	if n < cols {
		cols = n
	}

	out := make([]column, 0, cols)
	for i := 0; i < cols; i++ {
		lo := i * n / cols
		hi := (i + 1) * n / cols
		if hi <= lo {
			hi = lo + 1
		}

		first := data.Candlestick[lo]
		col := column{open: first.Open, high: first.High, low: first.Low, close: first.Close}
		for j := lo; j < hi; j++ {
			cp := data.Candlestick[j]
			if cp.High > col.high {
				col.high = cp.High
			}
			if cp.Low < col.low {
				col.low = cp.Low
			}
			col.close = cp.Close
			if j < len(data.Volume) {
				col.volume += data.Volume[j].Value
			}
		}
		col.up = col.close >= col.open
		out = append(out, col)
	}
	return out
}

// markerColumn returns the column holding the first bar at or after the
// purchase timestamp, or -1 when no bar qualifies.
func markerColumn(data lookback.ChartData, cols int) int {
	n := len(data.Candlestick)
	if n == 0 || cols <= 0 {
		return -1
	}
	if n < cols {
		cols = n
	}
	for i, cp := range data.Candlestick {
		if cp.Time >= data.PurchaseTimestamp {
			// Walk the same partition fitColumns uses so the marker
			// lands under the column that holds this bar.
			for c := 0; c < cols; c++ {
				lo := c * n / cols
				hi := (c + 1) * n / cols
				if hi <= lo {
					hi = lo + 1
				}
				if i >= lo && i < hi {
					return c
				}
			}
			return cols - 1
		}
	}
	return -1
}

// buildGrid lays out the loaded series into a cell grid with priceRows price
// rows and volRows volume rows across chartWidth columns.
func buildGrid(data lookback.ChartData, chartWidth, priceRows, volRows int) chartGrid {
	cols := fitColumns(data, chartWidth)

	g := chartGrid{
		price:     make([][]cellKind, priceRows),
		volume:    make([][]cellKind, volRows),
		markerCol: markerColumn(data, chartWidth),
	}
	for r := range g.price {
		g.price[r] = make([]cellKind, len(cols))
	}
	for r := range g.volume {
		g.volume[r] = make([]cellKind, len(cols))
	}
	if len(cols) == 0 {
		return g
	}

	g.first = time.Unix(data.Candlestick[0].Time, 0).UTC()
	g.last = time.Unix(data.Candlestick[len(data.Candlestick)-1].Time, 0).UTC()

	// Global price range across all columns.
	g.high, g.low = cols[0].high, cols[0].low
	var maxVol float64
	for _, col := range cols {
		if col.high > g.high {
			g.high = col.high
		}
		if col.low < g.low {
			g.low = col.low
		}
		if col.volume > maxVol {
			maxVol = col.volume
		}
	}

	span := g.high - g.low
	if span <= 0 {
		span = 1
	}
	// priceRow maps a price to a grid row (row 0 = highest price).
	priceRow := func(p float64) int {
		r := int((g.high - p) / span * float64(priceRows-1))
		if r < 0 {
			r = 0
		}
		if r > priceRows-1 {
			r = priceRows - 1
		}
		return r
	}

	for i, col := range cols {
		body, wick := cellBodyUp, cellWickUp
		if !col.up {
			body, wick = cellBodyDown, cellWickDown
		}

		hiRow := priceRow(col.high)
		loRow := priceRow(col.low)
		openRow := priceRow(col.open)
		closeRow := priceRow(col.close)
		bodyTop, bodyBot := openRow, closeRow
		if bodyTop > bodyBot {
			bodyTop, bodyBot = bodyBot, bodyTop
		}

		for r := hiRow; r <= loRow; r++ {
			if r >= bodyTop && r <= bodyBot {
				g.price[r][i] = body
			} else {
				g.price[r][i] = wick
			}
		}

		// Volume bars grow up from the bottom of the volume pane.
		if maxVol > 0 && volRows > 0 {
			h := int(col.volume / maxVol * float64(volRows))
			if h == 0 && col.volume > 0 {
				h = 1
			}
			vol := cellVolUp
			if !col.up {
				vol = cellVolDown
			}
			for r := volRows - h; r < volRows; r++ {
				g.volume[r][i] = vol
			}
		}
	}

	return g
}

// View renders the chart. The layout is a title line, the price pane, a
// marker line carrying the BUY arrow, and the volume pane at the bottom.
func (c *Chart) View() string {
	if !c.hasData {
		return axisStyle.Render("No chart loaded. Enter a symbol and purchase date.")
	}

	chartWidth := c.width - gutterWidth
	if chartWidth < 10 {
		chartWidth = 10
	}

	// Title + marker line + panes fill the height; volume gets the bottom
	// fifth of the pane rows.
	paneRows := c.height - 2
	if paneRows < 5 {
		paneRows = 5
	}
	volRows := int(float64(paneRows) * volumePaneFraction)
	if volRows < 1 {
		volRows = 1
	}
	priceRows := paneRows - volRows

	g := buildGrid(c.data, chartWidth, priceRows, volRows)

	var b strings.Builder
	title := fmt.Sprintf("%s  %s – %s", c.symbol, g.first.Format("2006-01-02"), g.last.Format("2006-01-02"))
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")

	for r := 0; r < priceRows; r++ {
		b.WriteString(c.renderGutter(r, priceRows, g))
		b.WriteString(renderCells(g.price[r]))
		b.WriteString("\n")
	}

	// Marker line.
	b.WriteString(strings.Repeat(" ", gutterWidth))
	if g.markerCol >= 0 {
		b.WriteString(strings.Repeat(" ", g.markerCol))
		b.WriteString(markerStyle.Render("▲ BUY"))
	}
	b.WriteString("\n")

	for r := 0; r < volRows; r++ {
		b.WriteString(strings.Repeat(" ", gutterWidth))
		b.WriteString(renderCells(g.volume[r]))
		if r < volRows-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// renderGutter renders the price-axis gutter: the range extremes on the top
// and bottom price rows, blank elsewhere.
func (c *Chart) renderGutter(row, priceRows int, g chartGrid) string {
	switch row {
	case 0:
		return axisStyle.Render(fmt.Sprintf("%*.2f ", gutterWidth-1, g.high))
	case priceRows - 1:
		return axisStyle.Render(fmt.Sprintf("%*.2f ", gutterWidth-1, g.low))
	default:
		return strings.Repeat(" ", gutterWidth)
	}
}

// renderCells converts a row of cells to styled glyphs, batching runs of the
// same kind into a single style call.
func renderCells(row []cellKind) string {
	var b strings.Builder
	i := 0
	for i < len(row) {
		kind := row[i]
		j := i
		for j < len(row) && row[j] == kind {
			j++
		}
		run := j - i
		switch kind {
		case cellEmpty:
			b.WriteString(strings.Repeat(" ", run))
		case cellBodyUp:
			b.WriteString(upStyle.Render(strings.Repeat("█", run)))
		case cellBodyDown:
			b.WriteString(downStyle.Render(strings.Repeat("█", run)))
		case cellWickUp:
			b.WriteString(upStyle.Render(strings.Repeat("│", run)))
		case cellWickDown:
			b.WriteString(downStyle.Render(strings.Repeat("│", run)))
		case cellVolUp:
			b.WriteString(upStyle.Render(strings.Repeat("█", run)))
		case cellVolDown:
			b.WriteString(downStyle.Render(strings.Repeat("█", run)))
		}
		i = j
	}
	return b.String()
}
