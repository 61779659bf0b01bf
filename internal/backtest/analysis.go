package backtest

import (
	"github.com/rxtech-lab/argo-alpha/internal/indicator"
	"github.com/rxtech-lab/argo-alpha/internal/metrics"
	"github.com/rxtech-lab/argo-alpha/internal/strategy"
	"github.com/rxtech-lab/argo-alpha/internal/types"
)

// RunStrategy runs the RSI/SMA threshold strategy over an instrument and
// scores its closed trades. Max drawdown is measured on the close prices.
// The only error is an invalid config.
func RunStrategy(instrument types.Instrument, config Config) (types.StrategyResult, error) {
	if err := config.Validate(); err != nil {
		return types.StrategyResult{}, err
	}

	closes := instrument.Data.Closes()
	sma := indicator.SMA(closes, config.Period)
	rsi := indicator.RSI(closes, config.Period)

	signals := strategy.Threshold(instrument.Data, sma, rsi, config.Period)

	return types.StrategyResult{
		Signals: signals,
		Metrics: metrics.Compute(strategy.TradeReturns(signals), closes, config.RiskFreeRate),
	}, nil
}

// AnalyzeRegime runs the volatility regime strategy and reports the per-bar
// returns, their rolling volatility and the Sharpe ratio of those returns.
func AnalyzeRegime(instrument types.Instrument, config Config) (types.RegimeAnalysis, error) {
	if err := config.Validate(); err != nil {
		return types.RegimeAnalysis{}, err
	}

	returns := indicator.Returns(instrument.Data.Closes())
	volatility := indicator.RollingVolatility(returns, config.VolatilityWindow)

	return types.RegimeAnalysis{
		Signals:           strategy.Regime(instrument.Data, config.LookbackPeriod, config.VolatilityWindow),
		Returns:           returns,
		Volatility:        volatility,
		CurrentVolatility: volatility.Last().TakeOr(0),
		SharpeRatio:       metrics.SharpeRatio(returns, config.RiskFreeRate),
	}, nil
}
