package strategy

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-alpha/internal/indicator"
	"github.com/rxtech-lab/argo-alpha/internal/types"
)

const (
	ReasonThresholdEntry = "RSI oversold + Price above SMA"
	ReasonThresholdExit  = "RSI overbought or Price below SMA"
)

// Threshold runs the RSI/SMA threshold strategy.
//
// While flat it enters when RSI < 30 and the close is above the SMA. While long
// it exits when RSI > 70 or the close is below the SMA. Bars before period are
// skipped. A sentinel indicator value never satisfies a condition.
func Threshold(series types.PriceSeries, sma, rsi types.Series, period int) []types.Signal {
	signals := []types.Signal{}
	state := flat

	for i := max(period, 0); i < len(series); i++ {
		bar := series[i]
		closePrice := optional.Some(bar.Close)
		smaValue := sma.ValueAt(i)
		rsiValue := rsi.ValueAt(i)

		switch state {
		case flat:
			if lessThan(rsiValue, optional.Some(indicator.OversoldThreshold)) && lessThan(smaValue, closePrice) {
				signals = append(signals, types.Signal{
					Timestamp: bar.Timestamp,
					Type:      types.SignalTypeEntry,
					Price:     bar.Close,
					Reason:    ReasonThresholdEntry,
				})
				state = long
			}
		case long:
			if lessThan(optional.Some(indicator.OverboughtThreshold), rsiValue) || lessThan(closePrice, smaValue) {
				signals = append(signals, types.Signal{
					Timestamp: bar.Timestamp,
					Type:      types.SignalTypeExit,
					Price:     bar.Close,
					Reason:    ReasonThresholdExit,
				})
				state = flat
			}
		}
	}

	return signals
}
