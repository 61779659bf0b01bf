package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-alpha/internal/types"
)

const (
	// DefaultRSIPeriod is the conventional RSI look-back.
	DefaultRSIPeriod = 14
	// OversoldThreshold is the RSI level below which an instrument is considered oversold.
	OversoldThreshold = 30.0
	// OverboughtThreshold is the RSI level above which an instrument is considered overbought.
	OverboughtThreshold = 70.0
	// NeutralRSI is reported when a window has neither gains nor losses.
	NeutralRSI = 50.0
)

// RSI returns the Relative Strength Index of prices.
//
// The value at index i uses the simple (not Wilder-smoothed) average gain and
// loss of the period price changes ending at i. Index i < period is a sentinel.
// A window without losses reads 100, a window without any movement reads NeutralRSI.
func RSI(prices []float64, period int) types.Series {
	series := types.NewSeries(len(prices))
	if period < 1 || len(prices) < 2 {
		return series
	}

	gains := make([]float64, len(prices)-1)
	losses := make([]float64, len(prices)-1)

	for i := 1; i < len(prices); i++ {
		change := prices[i] - prices[i-1]
		if change > 0 {
			gains[i-1] = change
		} else {
			losses[i-1] = -change
		}
	}

	for i := period; i < len(prices); i++ {
		avgGain := sum(gains[i-period:i]) / float64(period)
		avgLoss := sum(losses[i-period:i]) / float64(period)
		series[i] = optional.Some(relativeStrengthIndex(avgGain, avgLoss))
	}

	return series
}

func relativeStrengthIndex(avgGain, avgLoss float64) float64 {
	if avgLoss == 0 {
		if avgGain == 0 {
			return NeutralRSI
		}

		return 100 // Perfect uptrend
	}

	rs := avgGain / avgLoss

	return 100 - (100 / (1 + rs))
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}

	return total
}

// RelativeStrength exposes RSI through the Indicator interface.
type RelativeStrength struct {
	period int
}

// NewRSI creates a new RSI indicator with default configuration.
func NewRSI() Indicator {
	return &RelativeStrength{
		period: DefaultRSIPeriod,
	}
}

// Name returns the name of the indicator.
func (r *RelativeStrength) Name() types.IndicatorType {
	return types.IndicatorTypeRSI
}

// Config configures the RSI indicator. Expected parameters: period (int).
func (r *RelativeStrength) Config(params ...any) error {
	if len(params) != 1 {
		return configError("Config expects 1 parameter: period (int)")
	}

	period, err := parsePeriod(params[0])
	if err != nil {
		return err
	}

	r.period = period

	return nil
}

// Compute returns the RSI of the series' close prices.
func (r *RelativeStrength) Compute(series types.PriceSeries) types.Series {
	return RSI(series.Closes(), r.period)
}
