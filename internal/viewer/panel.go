package viewer

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"lookback/pkg/lookback"
)

// placeholder fills info fields that have no data loaded (startup or after a
// failed fetch).
const placeholder = "-"

// infoFieldCount is the number of display slots in the panel.
const infoFieldCount = 9

var infoLabels = [infoFieldCount]string{
	"Company",
	"Sector",
	"Industry",
	"Market Cap",
	"P/E Ratio",
	"Dividend Yield",
	"52W High",
	"52W Low",
	"Avg Volume",
}

var (
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(15)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
)

// InfoPanel renders company metadata as labeled display slots. Every update
// replaces the full set of values; Clear resets them all.
type InfoPanel struct {
	values [infoFieldCount]string
}

// NewInfoPanel creates a panel with all slots showing the placeholder.
func NewInfoPanel() *InfoPanel {
	p := &InfoPanel{}
	p.Clear()
	return p
}

// Update formats info into the nine display slots.
func (p *InfoPanel) Update(info *lookback.StockInfo) {
	p.values = [infoFieldCount]string{
		info.Name,
		info.Sector,
		info.Industry,
		FormatMarketCap(info.MarketCap),
		FormatNumber(info.PERatio),
		FormatPercentage(info.DividendYield),
		FormatPrice(info.FiftyTwoWeekHigh),
		FormatPrice(info.FiftyTwoWeekLow),
		FormatVolume(info.AvgVolume),
	}
}

// Clear resets every slot to the placeholder.
func (p *InfoPanel) Clear() {
	for i := range p.values {
		p.values[i] = placeholder
	}
}

// Values returns the current display values in label order.
func (p *InfoPanel) Values() []string {
	return p.values[:]
}

// View renders the panel as one label/value row per field.
func (p *InfoPanel) View() string {
	var b strings.Builder
	for i, label := range infoLabels {
		b.WriteString(labelStyle.Render(label))
		b.WriteString(" ")
		b.WriteString(valueStyle.Render(p.values[i]))
		if i < len(infoLabels)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}
