package types

type Metrics struct {
	// Annualised Sharpe ratio of the realised trade returns.
	SharpeRatio float64 `yaml:"sharpe_ratio" json:"sharpe_ratio"`
	// Largest peak-to-trough decline of the close prices, as a fraction.
	MaxDrawdown float64 `yaml:"max_drawdown" json:"max_drawdown"`
	// Compounded return of all realised trades.
	TotalReturn float64 `yaml:"total_return" json:"total_return"`
	// Fraction of realised trades with a strictly positive return.
	WinRate float64 `yaml:"win_rate" json:"win_rate"`
}

// StrategyResult is the output of a single threshold strategy run.
type StrategyResult struct {
	Signals []Signal `yaml:"signals" json:"signals"`
	Metrics Metrics  `yaml:"metrics" json:"metrics"`
}

// RegimeAnalysis is the output of the volatility regime strategy.
type RegimeAnalysis struct {
	Signals []Signal `yaml:"signals" json:"signals"`
	// Returns are the per-bar close-to-close returns.
	Returns ReturnSeries `yaml:"-" json:"returns"`
	// Volatility is the rolling annualised volatility, aligned to Returns.
	Volatility Series `yaml:"-" json:"volatility"`
	// CurrentVolatility is the latest non-sentinel volatility reading, 0 when there is none.
	CurrentVolatility float64 `yaml:"current_volatility" json:"current_volatility"`
	// SharpeRatio of the per-bar returns.
	SharpeRatio float64 `yaml:"sharpe_ratio" json:"sharpe_ratio"`
}

type TradeStats struct {
	// Count of all closed trades.
	NumberOfTrades int `yaml:"number_of_trades" json:"number_of_trades"`
	// Count of closed trades with a positive return.
	NumberOfWinningTrades int `yaml:"number_of_winning_trades" json:"number_of_winning_trades"`
	// Count of closed trades with a negative return.
	NumberOfLosingTrades int `yaml:"number_of_losing_trades" json:"number_of_losing_trades"`
	// OpenPosition is true when the last signal opened a position that was never closed.
	OpenPosition bool `yaml:"open_position" json:"open_position"`
}
