package backtest

import (
	"math"
	"os"
	"path/filepath"
	"time"

	"github.com/rxtech-lab/argo-alpha/internal/types"
	"github.com/rxtech-lab/argo-alpha/pkg/errors"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// Report is the outcome of one engine run over one instrument.
type Report struct {
	ID         string               `yaml:"id" json:"id"`
	Timestamp  time.Time            `yaml:"timestamp" json:"timestamp"`
	Symbol     string               `yaml:"symbol" json:"symbol"`
	DataPath   string               `yaml:"data_path,omitempty" json:"data_path,omitempty"`
	Bars       int                  `yaml:"bars" json:"bars"`
	Config     Config               `yaml:"config" json:"config"`
	Strategy   types.StrategyResult `yaml:"strategy" json:"strategy"`
	Regime     types.RegimeAnalysis `yaml:"regime" json:"regime"`
	TradeStats types.TradeStats     `yaml:"trade_stats" json:"trade_stats"`
}

// round rounds v half away from zero to places decimals. Non-finite values are returned unchanged.
func round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}

	return decimal.NewFromFloat(v).Round(int32(places)).InexactFloat64()
}

func roundSignals(signals []types.Signal, places int) []types.Signal {
	rounded := make([]types.Signal, len(signals))
	for i, s := range signals {
		s.Price = round(s.Price, places)
		rounded[i] = s
	}

	return rounded
}

// Rounded returns a copy of the report with every reported figure rounded to
// places decimals. The raw return and volatility series are left untouched.
func (r Report) Rounded(places int) Report {
	r.Strategy.Signals = roundSignals(r.Strategy.Signals, places)
	r.Strategy.Metrics = types.Metrics{
		SharpeRatio: round(r.Strategy.Metrics.SharpeRatio, places),
		MaxDrawdown: round(r.Strategy.Metrics.MaxDrawdown, places),
		TotalReturn: round(r.Strategy.Metrics.TotalReturn, places),
		WinRate:     round(r.Strategy.Metrics.WinRate, places),
	}

	r.Regime.Signals = roundSignals(r.Regime.Signals, places)
	r.Regime.CurrentVolatility = round(r.Regime.CurrentVolatility, places)
	r.Regime.SharpeRatio = round(r.Regime.SharpeRatio, places)

	return r
}

// WriteReports writes reports as a YAML list to path, creating parent directories.
func WriteReports(path string, reports []Report) error {
	data, err := yaml.Marshal(reports)
	if err != nil {
		return errors.Wrap(errors.ErrCodeReportWriteFailed, "failed to marshal reports", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to create %s", dir)
		}
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return errors.Wrapf(errors.ErrCodeReportWriteFailed, err, "failed to write %s", path)
	}

	return nil
}

// ReadReports reads a file written by WriteReports.
func ReadReports(path string) ([]Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeDataNotFound, err, "failed to read %s", path)
	}

	var reports []Report
	if err := yaml.Unmarshal(data, &reports); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidParameter, err, "failed to parse %s", path)
	}

	return reports, nil
}
