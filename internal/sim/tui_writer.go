package sim

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"warpsim/internal/attitude"
)

// teaProgram abstracts bubbletea.Program for testing.
type teaProgram interface {
	Send(tea.Msg)
}

// rowMsg carries one projected source into the TUI.
type rowMsg struct{ ResultRow }

// summaryMsg carries the run summary into the TUI.
type summaryMsg struct{ SummaryRow }

const maxLogLines = 200

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	missStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	failStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

// TUIWriter renders projection results as a live focal-plane view: a
// per-detector hit table next to a rolling log of projected sources. It
// is the interactive counterpart of the JSONL writers.
type TUIWriter struct {
	program teaProgram
	done    chan struct{}
}

// NewTUIWriter starts a bubbletea program and returns a TUIWriter.
func NewTUIWriter(instrument string, pointing attitude.Pointing, detectorIDs []int) *TUIWriter {
	w := &TUIWriter{done: make(chan struct{})}
	m := newTUIModel(instrument, pointing, detectorIDs)
	p := tea.NewProgram(m, tea.WithAltScreen())
	w.program = p
	go func() {
		_, _ = p.Run()
		close(w.done)
	}()
	return w
}

// Write forwards a result row to the TUI.
func (w *TUIWriter) Write(row ResultRow) error {
	w.program.Send(rowMsg{row})
	return nil
}

// WriteSummary forwards the run summary to the TUI.
func (w *TUIWriter) WriteSummary(s SummaryRow) error {
	w.program.Send(summaryMsg{s})
	return nil
}

// Close stops the TUI program and waits for it to exit.
func (w *TUIWriter) Close() error {
	w.program.Send(tea.Quit())
	if w.done != nil {
		<-w.done
	}
	return nil
}

// Wait blocks until the user quits the TUI.
func (w *TUIWriter) Wait() {
	if w.done != nil {
		<-w.done
	}
}

type tuiModel struct {
	instrument  string
	pointing    attitude.Pointing
	detectorIDs []int

	hits       map[int]int
	assigned   int
	unassigned int
	singular   int
	noConverge int
	summary    *SummaryRow

	table        table.Model
	vp           viewport.Model
	logs         []string
	width        int
	height       int
	headerHeight int
}

func newTUIModel(instrument string, pointing attitude.Pointing, detectorIDs []int) tuiModel {
	ids := append([]int{}, detectorIDs...)
	sort.Ints(ids)
	cols := []table.Column{
		{Title: "Detector", Width: 10},
		{Title: "Hits", Width: 8},
	}
	t := table.New(table.WithColumns(cols), table.WithHeight(len(ids)+1))
	return tuiModel{
		instrument:  instrument,
		pointing:    pointing,
		detectorIDs: ids,
		hits:        make(map[int]int),
		table:       t,
		vp:          viewport.New(0, 0),
	}
}

func (m tuiModel) Init() tea.Cmd { return nil }

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.headerHeight = lipgloss.Height(m.renderHeader())
		m.resize()
		m.refreshTable()
		m.refreshLog()
	case rowMsg:
		m.record(msg.ResultRow)
		m.refreshTable()
		m.refreshLog()
	case summaryMsg:
		s := msg.SummaryRow
		m.summary = &s
		m.headerHeight = lipgloss.Height(m.renderHeader())
		m.resize()
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *tuiModel) record(row ResultRow) {
	switch row.Status {
	case "ok":
		m.assigned++
		m.hits[row.DetectorID]++
		m.logs = append(m.logs, okStyle.Render(fmt.Sprintf(
			"%s det=%d pixel=(%.2f, %.2f)", row.SourceID, row.DetectorID, row.PixelX, row.PixelY)))
	case "unassigned":
		m.unassigned++
		m.logs = append(m.logs, missStyle.Render(fmt.Sprintf(
			"%s off-chip (ra=%.5f dec=%.5f)", row.SourceID, row.RADeg, row.DecDeg)))
	default:
		if row.Status == "singular" {
			m.singular++
		} else {
			m.noConverge++
		}
		m.logs = append(m.logs, failStyle.Render(fmt.Sprintf(
			"%s %s (ra=%.5f dec=%.5f)", row.SourceID, row.Status, row.RADeg, row.DecDeg)))
	}
	if len(m.logs) > maxLogLines {
		m.logs = m.logs[len(m.logs)-maxLogLines:]
	}
}

func (m *tuiModel) resize() {
	m.vp.Width = m.width
	h := m.height - m.headerHeight - m.table.Height() - lipgloss.Height(m.renderFooter())
	if h < 1 {
		h = 1
	}
	m.vp.Height = h
}

func (m *tuiModel) refreshTable() {
	rows := make([]table.Row, len(m.detectorIDs))
	for i, id := range m.detectorIDs {
		rows[i] = table.Row{strconv.Itoa(id), strconv.Itoa(m.hits[id])}
	}
	m.table.SetRows(rows)
}

func (m *tuiModel) refreshLog() {
	start := 0
	if len(m.logs) > m.vp.Height {
		start = len(m.logs) - m.vp.Height
	}
	content := ""
	for _, l := range m.logs[start:] {
		content += l + "\n"
	}
	m.vp.SetContent(content)
	m.vp.GotoBottom()
}

func (m tuiModel) renderHeader() string {
	line := fmt.Sprintf("%s  boresight ra=%.4f dec=%.4f pa=%.2f",
		m.instrument, m.pointing.RADeg, m.pointing.DecDeg, m.pointing.PositionAngleDeg)
	counts := fmt.Sprintf("assigned=%d unassigned=%d singular=%d no_converge=%d",
		m.assigned, m.unassigned, m.singular, m.noConverge)
	if m.summary != nil {
		counts += fmt.Sprintf("  [run %s complete: %d sources]", m.summary.RunID, m.summary.Sources)
	}
	return headerStyle.Render(line) + "\n" + counts
}

func (m tuiModel) renderFooter() string {
	help := "q: quit  |  results stream in as the field is projected; " +
		"the hit table counts sources per detector."
	if m.width > 0 {
		help = wordwrap.String(help, m.width)
	}
	return helpStyle.Render(help)
}

func (m tuiModel) View() string {
	return m.renderHeader() + "\n" + m.table.View() + "\n" + m.vp.View() + "\n" + m.renderFooter()
}
