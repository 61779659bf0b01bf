// Package metrics aggregates return and price series into performance figures.
//
// All functions are pure. Empty input yields 0 rather than an error.
package metrics

import (
	"math"

	"github.com/rxtech-lab/argo-alpha/internal/indicator"
	"github.com/rxtech-lab/argo-alpha/internal/types"
	"gonum.org/v1/gonum/stat"
)

// DefaultRiskFreeRate is the annual risk-free rate used when none is configured.
const DefaultRiskFreeRate = 0.02

// SharpeRatio returns the annualised Sharpe ratio of per-period returns.
//
// Each return is reduced by riskFreeRate/252 before the sample mean and the
// Bessel-corrected standard deviation are taken. Fewer than two returns, or a
// zero standard deviation, give 0.
func SharpeRatio(returns types.ReturnSeries, riskFreeRate float64) float64 {
	if len(returns) <= 1 {
		return 0
	}

	periodRate := riskFreeRate / indicator.TradingPeriodsPerYear
	excess := make([]float64, len(returns))
	identical := true

	for i, r := range returns {
		excess[i] = r - periodRate
		if excess[i] != excess[0] {
			identical = false
		}
	}

	// a constant series must not pick up a rounding-error deviation
	if identical {
		return 0
	}

	mean, std := stat.MeanStdDev(excess, nil)
	if std == 0 {
		return 0
	}

	return mean / std * math.Sqrt(indicator.TradingPeriodsPerYear)
}

// MaxDrawdown returns the largest peak-to-trough decline of prices as a fraction of the peak.
func MaxDrawdown(prices []float64) float64 {
	if len(prices) == 0 {
		return 0
	}

	maxDrawdown := 0.0
	peak := prices[0]

	for _, price := range prices {
		if price > peak {
			peak = price
		}

		maxDrawdown = math.Max(maxDrawdown, (peak-price)/peak)
	}

	return maxDrawdown
}

// TotalReturn compounds returns into a single cumulative return.
func TotalReturn(returns types.ReturnSeries) float64 {
	total := 0.0
	for _, r := range returns {
		total = (1+total)*(1+r) - 1
	}

	return total
}

// WinRate is the fraction of returns strictly greater than zero.
func WinRate(returns types.ReturnSeries) float64 {
	if len(returns) == 0 {
		return 0
	}

	wins := 0
	for _, r := range returns {
		if r > 0 {
			wins++
		}
	}

	return float64(wins) / float64(len(returns))
}

// Compute assembles the four metrics: Sharpe, total return and win rate over
// tradeReturns and max drawdown over closes.
func Compute(tradeReturns types.ReturnSeries, closes []float64, riskFreeRate float64) types.Metrics {
	return types.Metrics{
		SharpeRatio: SharpeRatio(tradeReturns, riskFreeRate),
		MaxDrawdown: MaxDrawdown(closes),
		TotalReturn: TotalReturn(tradeReturns),
		WinRate:     WinRate(tradeReturns),
	}
}
