package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/rxtech-lab/argo-alpha/internal/backtest"
	"github.com/rxtech-lab/argo-alpha/internal/types"
)

// reportItem implements list.Item for one report.
type reportItem struct {
	index  int
	report backtest.Report
}

func (i reportItem) Title() string {
	if i.report.DataPath == "" {
		return i.report.Symbol
	}

	return fmt.Sprintf("%s (%s)", i.report.Symbol, i.report.DataPath)
}

func (i reportItem) Description() string {
	m := i.report.Strategy.Metrics

	return fmt.Sprintf("%d trades | return %.2f%% | sharpe %.2f | %d regime signals",
		i.report.TradeStats.NumberOfTrades, m.TotalReturn*100, m.SharpeRatio, len(i.report.Regime.Signals))
}

func (i reportItem) FilterValue() string { return i.report.Symbol }

// NewReportList creates the list of reports to choose from.
func NewReportList(reports []backtest.Report) list.Model {
	items := make([]list.Item, len(reports))
	for i, r := range reports {
		items[i] = reportItem{index: i, report: r}
	}

	delegate := list.NewDefaultDelegate()
	delegate.ShowDescription = true

	l := list.New(items, delegate, 0, 0)
	l.Title = "Select Report"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)

	return l
}

// NewSignalTable creates the table listing a strategy's signals.
func NewSignalTable() table.Model {
	columns := []table.Column{
		{Title: "Time", Width: 18},
		{Title: "Type", Width: 6},
		{Title: "Price", Width: 14},
		{Title: "Reason", Width: 50},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	t.SetStyles(s)

	return t
}

// UpdateSignalRows replaces the table rows with signals.
func UpdateSignalRows(t table.Model, signals []types.Signal) table.Model {
	rows := make([]table.Row, 0, len(signals))

	for _, sig := range signals {
		rows = append(rows, table.Row{
			formatTimestamp(sig.Timestamp),
			string(sig.Type),
			strconv.FormatFloat(sig.Price, 'f', 4, 64),
			sig.Reason,
		})
	}

	t.SetRows(rows)
	t.GotoTop()

	return t
}

func (m Model) currentSignals() []types.Signal {
	report := m.reports[m.selected]
	if m.showRegime {
		return report.Regime.Signals
	}

	return report.Strategy.Signals
}

func (m Model) signalsTitle() string {
	if m.showRegime {
		return "Regime signals"
	}

	return "Threshold signals"
}

func metricsLine(report backtest.Report, regime bool) string {
	if regime {
		return fmt.Sprintf("Sharpe %.2f | Volatility %.2f%%",
			report.Regime.SharpeRatio, report.Regime.CurrentVolatility*100)
	}

	m := report.Strategy.Metrics

	return fmt.Sprintf("Sharpe %.2f | Max drawdown %.2f%% | Total return %s | Win rate %.2f%%",
		m.SharpeRatio, m.MaxDrawdown*100, FormatPercent(m.TotalReturn), m.WinRate*100)
}
