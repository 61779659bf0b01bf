package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-alpha/internal/types"
	"gonum.org/v1/gonum/stat"
)

const (
	// TradingPeriodsPerYear is the annualisation convention for daily bars.
	TradingPeriodsPerYear = 252
	// DefaultVolatilityWindow is the default rolling volatility window.
	DefaultVolatilityWindow = 20
)

// RollingVolatility returns the annualised rolling volatility of returns.
// The output is aligned to returns (not prices). Index i < window-1 is a sentinel;
// otherwise it is the population standard deviation of the trailing window
// multiplied by sqrt(TradingPeriodsPerYear).
//
// The deviation is taken around the window mean, so a window of identical
// returns reads 0. A root-mean-square of raw returns would instead read
// |r|*sqrt(252) there, and on trending data the two give different regimes.
func RollingVolatility(returns types.ReturnSeries, window int) types.Series {
	annualise := math.Sqrt(TradingPeriodsPerYear)

	return Rolling(returns, window, func(win []float64) float64 {
		return stat.PopStdDev(win, nil) * annualise
	})
}

// Volatility exposes RollingVolatility through the Indicator interface.
// Its output has one entry per return, i.e. one fewer than the price series.
type Volatility struct {
	window int
}

// NewVolatility creates a new Volatility indicator with default configuration.
func NewVolatility() Indicator {
	return &Volatility{
		window: DefaultVolatilityWindow,
	}
}

// Name returns the name of the indicator.
func (v *Volatility) Name() types.IndicatorType {
	return types.IndicatorTypeVolatility
}

// Config expects parameters: window (int).
func (v *Volatility) Config(params ...any) error {
	if len(params) != 1 {
		return configError("Config expects 1 parameter: window (int)")
	}

	window, err := parsePeriod(params[0])
	if err != nil {
		return err
	}

	v.window = window

	return nil
}

// Compute returns the rolling volatility of the series' close-to-close returns.
func (v *Volatility) Compute(series types.PriceSeries) types.Series {
	return RollingVolatility(Returns(series.Closes()), v.window)
}
