package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/rxtech-lab/argo-alpha/internal/backtest"
)

// Style definitions.
var (
	// TitleStyle for headers.
	TitleStyle = lipgloss.NewStyle().Bold(true)

	// HelpStyle for help text.
	HelpStyle = lipgloss.NewStyle().Faint(true)

	// ErrorStyle for error messages.
	ErrorStyle = lipgloss.NewStyle().Bold(true)

	// BorderStyle for table borders.
	BorderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	gainStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	lossStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// FormatPercent formats a fraction as a percentage, coloured by sign.
func FormatPercent(v float64) string {
	s := fmt.Sprintf("%.2f%%", v*100)

	switch {
	case v > 0:
		return gainStyle.Render(s)
	case v < 0:
		return lossStyle.Render(s)
	}

	return s
}

// renderSummary renders one row per report.
func renderSummary(reports []backtest.Report) string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(BorderStyle).
		Headers("Symbol", "Bars", "Trades", "Win Rate", "Total Return", "Sharpe", "Max Drawdown", "Regime Signals", "Volatility")

	for _, r := range reports {
		m := r.Strategy.Metrics
		t.Row(
			r.Symbol,
			fmt.Sprintf("%d", r.Bars),
			fmt.Sprintf("%d", r.TradeStats.NumberOfTrades),
			fmt.Sprintf("%.2f%%", m.WinRate*100),
			FormatPercent(m.TotalReturn),
			fmt.Sprintf("%.2f", m.SharpeRatio),
			fmt.Sprintf("%.2f%%", m.MaxDrawdown*100),
			fmt.Sprintf("%d", len(r.Regime.Signals)),
			fmt.Sprintf("%.2f%%", r.Regime.CurrentVolatility*100),
		)
	}

	return TitleStyle.Render("Analysis Summary") + "\n" + t.Render()
}
