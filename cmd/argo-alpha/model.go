package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rxtech-lab/argo-alpha/internal/backtest"
)

// Application states.
const (
	StateReportSelect = iota
	StateSignals
)

// Model is the Bubble Tea model of the report viewer.
type Model struct {
	state       int
	reports     []backtest.Report
	reportList  list.Model
	signalTable table.Model
	selected    int
	showRegime  bool
	width       int
	height      int
}

// NewModel creates a viewer over reports, starting at the report list.
func NewModel(reports []backtest.Report) Model {
	return Model{
		state:       StateReportSelect,
		reports:     reports,
		reportList:  NewReportList(reports),
		signalTable: NewSignalTable(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		case "esc":
			if m.state == StateSignals {
				m.state = StateReportSelect
			}

			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.reportList.SetSize(msg.Width, msg.Height-4)
		m.signalTable.SetWidth(msg.Width)
		m.signalTable.SetHeight(msg.Height - 8)

		return m, nil
	}

	switch m.state {
	case StateReportSelect:
		return m.updateReportSelect(msg)
	case StateSignals:
		return m.updateSignals(msg)
	}

	return m, nil
}

func (m Model) updateReportSelect(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "enter" {
		if item, ok := m.reportList.SelectedItem().(reportItem); ok {
			m.selected = item.index
			m.showRegime = false
			m.state = StateSignals
			m.signalTable = UpdateSignalRows(m.signalTable, m.currentSignals())

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.reportList, cmd = m.reportList.Update(msg)

	return m, cmd
}

func (m Model) updateSignals(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "tab" {
		m.showRegime = !m.showRegime
		m.signalTable = UpdateSignalRows(m.signalTable, m.currentSignals())

		return m, nil
	}

	var cmd tea.Cmd
	m.signalTable, cmd = m.signalTable.Update(msg)

	return m, cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var s strings.Builder

	switch m.state {
	case StateReportSelect:
		s.WriteString(TitleStyle.Render("argo-alpha - Reports"))
		s.WriteString("\n\n")
		s.WriteString(m.reportList.View())
		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("Press Enter to open, q to quit"))

	case StateSignals:
		report := m.reports[m.selected]

		s.WriteString(TitleStyle.Render(fmt.Sprintf("%s - %s", report.Symbol, m.signalsTitle())))
		s.WriteString("\n\n")
		s.WriteString(metricsLine(report, m.showRegime))
		s.WriteString("\n\n")

		if len(m.currentSignals()) == 0 {
			s.WriteString("No signals\n")
		} else {
			s.WriteString(m.signalTable.View())
		}

		s.WriteString("\n")
		s.WriteString(HelpStyle.Render("Tab: switch strategy | Esc: back | q: quit"))
	}

	return s.String()
}
