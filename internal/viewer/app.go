package viewer

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"lookback/pkg/lookback"
)

var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("4"))
	footerStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8"))
	statusErrStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	statusOKStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	entryStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))
	entrySelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6"))
	sectionStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
)

// Focus targets, cycled with tab.
const (
	focusSymbol = iota
	focusDate
	focusEntries
	focusCount
)

const entriesPaneWidth = 26

// Messages.
type entriesMsg struct {
	entries []lookback.Entry
	err     error
}

type fetchResultMsg struct {
	symbol string
	view   *lookback.ChartView
	err    error
}

// App is the terminal UI: symbol and date inputs, the recorded entries list,
// the info panel, and the chart.
type App struct {
	client *lookback.Client
	log    *slog.Logger

	symbolInput textinput.Model
	dateInput   textinput.Model
	focus       int

	entries  []lookback.Entry
	entryIdx int

	panel *InfoPanel
	chart *Chart

	status   string
	statusOK bool
	loading  bool

	width, height int
	ready         bool
}

// NewApp creates the UI bound to the given API client.
func NewApp(client *lookback.Client, log *slog.Logger) *App {
	symbol := textinput.New()
	symbol.Placeholder = "AAPL"
	symbol.CharLimit = 10
	symbol.Width = 10
	symbol.Focus()

	date := textinput.New()
	date.Placeholder = "2024-01-15"
	date.CharLimit = 10
	date.Width = 12

	return &App{
		client:      client,
		log:         log,
		symbolInput: symbol,
		dateInput:   date,
		panel:       NewInfoPanel(),
		chart:       NewChart(80, 24),
		status:      "Enter a symbol and purchase date, or pick a recorded entry.",
		statusOK:    true,
	}
}

func (a *App) Init() tea.Cmd {
	return a.loadEntriesCmd()
}

// loadEntriesCmd fetches the recorded entries in the background.
func (a *App) loadEntriesCmd() tea.Cmd {
	client := a.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		entries, err := client.Entries(ctx)
		return entriesMsg{entries: entries, err: err}
	}
}

// submit validates the inputs and starts the combined fetch. Empty fields
// produce a status message and no request at all.
func (a *App) submit() tea.Cmd {
	symbol := strings.ToUpper(strings.TrimSpace(a.symbolInput.Value()))
	date := strings.TrimSpace(a.dateInput.Value())
	if symbol == "" || date == "" {
		a.status = "Please enter both a stock symbol and a purchase date."
		a.statusOK = false
		return nil
	}

	a.loading = true
	a.status = fmt.Sprintf("Loading %s...", symbol)
	a.statusOK = true

	client := a.client
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 45*time.Second)
		defer cancel()
		view, err := client.FetchChartView(ctx, symbol, date)
		return fetchResultMsg{symbol: symbol, view: view, err: err}
	}
}

// selectEntry copies the highlighted entry into the inputs and submits.
// Entry selection and manual input share the same request path.
func (a *App) selectEntry() tea.Cmd {
	if a.entryIdx < 0 || a.entryIdx >= len(a.entries) {
		return nil
	}
	e := a.entries[a.entryIdx]
	a.symbolInput.SetValue(e.Symbol)
	a.dateInput.SetValue(e.Date)
	return a.submit()
}

func (a *App) setFocus(focus int) {
	a.focus = focus
	a.symbolInput.Blur()
	a.dateInput.Blur()
	switch focus {
	case focusSymbol:
		a.symbolInput.Focus()
	case focusDate:
		a.dateInput.Focus()
	}
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return a, tea.Quit
		case "tab":
			a.setFocus((a.focus + 1) % focusCount)
			return a, nil
		case "shift+tab":
			a.setFocus((a.focus + focusCount - 1) % focusCount)
			return a, nil
		case "enter":
			if a.loading {
				return a, nil
			}
			if a.focus == focusEntries {
				return a, a.selectEntry()
			}
			return a, a.submit()
		case "up":
			if a.focus == focusEntries && a.entryIdx > 0 {
				a.entryIdx--
			}
			return a, nil
		case "down":
			if a.focus == focusEntries && a.entryIdx < len(a.entries)-1 {
				a.entryIdx++
			}
			return a, nil
		}

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		chartWidth := a.width - entriesPaneWidth - 2
		chartHeight := a.height - infoFieldCount - 6
		a.chart.SetSize(chartWidth, chartHeight)
		return a, nil

	case entriesMsg:
		if msg.err != nil {
			a.log.Error("loading entries", "error", msg.err)
			return a, nil
		}
		a.entries = msg.entries
		a.entryIdx = 0
		return a, nil

	case fetchResultMsg:
		a.loading = false
		if msg.err != nil {
			a.log.Error("loading chart view", "symbol", msg.symbol, "error", msg.err)
			a.status = fmt.Sprintf("Error loading data for %s: %v", msg.symbol, msg.err)
			a.statusOK = false
			a.panel.Clear()
			return a, nil
		}
		a.panel.Update(msg.view.Info)
		a.chart.SetData(msg.symbol, *msg.view.Chart)
		a.status = fmt.Sprintf("Loaded %s.", msg.symbol)
		a.statusOK = true
		return a, nil
	}

	// Route remaining messages to the focused input.
	var cmd tea.Cmd
	switch a.focus {
	case focusSymbol:
		a.symbolInput, cmd = a.symbolInput.Update(msg)
	case focusDate:
		a.dateInput, cmd = a.dateInput.Update(msg)
	}
	return a, cmd
}

func (a *App) View() string {
	if !a.ready {
		return "Loading..."
	}

	header := headerStyle.Render(padOrTrunc(" lookback - stock purchase visualizer ", a.width))

	inputs := lipgloss.JoinHorizontal(lipgloss.Top,
		sectionStyle.Render("Symbol: "), a.symbolInput.View(),
		"   ",
		sectionStyle.Render("Purchase date: "), a.dateInput.View(),
	)

	left := a.renderEntries()
	right := lipgloss.JoinVertical(lipgloss.Left, a.panel.View(), "", a.chart.View())
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right)

	statusStyle := statusOKStyle
	if !a.statusOK {
		statusStyle = statusErrStyle
	}
	status := statusStyle.Render(a.status)

	footer := footerStyle.Render(padOrTrunc(" tab focus  enter load  up/dn select  esc quit", a.width))

	return strings.Join([]string{header, "", inputs, "", body, "", status, footer}, "\n")
}

// renderEntries renders the recorded entries pane, newest first.
func (a *App) renderEntries() string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Recorded entries"))
	b.WriteString("\n")
	if len(a.entries) == 0 {
		b.WriteString(entryStyle.Render("(none)"))
		return b.String()
	}
	for i, e := range a.entries {
		line := padOrTrunc(fmt.Sprintf(" %s  %s", e.Symbol, e.Date), entriesPaneWidth)
		if i == a.entryIdx && a.focus == focusEntries {
			b.WriteString(entrySelStyle.Render(line))
		} else {
			b.WriteString(entryStyle.Render(line))
		}
		if i < len(a.entries)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// padOrTrunc pads s with spaces to width, or truncates if longer.
func padOrTrunc(s string, width int) string {
	if len(s) >= width {
		return s[:width]
	}
	return s + strings.Repeat(" ", width-len(s))
}
