package indicator

import (
	"github.com/rxtech-lab/argo-alpha/internal/types"
)

// SMA returns the simple moving average of prices over period bars.
// Index i < period-1 is a sentinel. Each window is summed from scratch so the
// output does not depend on accumulated rounding from earlier windows.
func SMA(prices []float64, period int) types.Series {
	return Rolling(prices, period, mean)
}

// MA indicator implements Simple Moving Average calculation.
type MA struct {
	period int
}

// NewMA creates a new MA indicator with default configuration.
func NewMA() Indicator {
	return &MA{
		period: 20, // Default period
	}
}

// Name returns the name of the indicator.
func (m *MA) Name() types.IndicatorType {
	return types.IndicatorTypeMA
}

// Config expects parameters: period (int).
func (m *MA) Config(params ...any) error {
	if len(params) != 1 {
		return configError("Config expects 1 parameter: period (int)")
	}

	period, err := parsePeriod(params[0])
	if err != nil {
		return err
	}

	m.period = period

	return nil
}

// Compute returns the SMA of the series' close prices.
func (m *MA) Compute(series types.PriceSeries) types.Series {
	return SMA(series.Closes(), m.period)
}
