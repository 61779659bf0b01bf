package strategy

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-alpha/internal/indicator"
	"github.com/rxtech-lab/argo-alpha/internal/types"
)

const (
	// RegimeShortWindow is the fast moving average window.
	RegimeShortWindow = 10
	// RegimeLongWindow is the slow moving average window.
	RegimeLongWindow = 30
	// RegimeExitMultiplier scales the average volatility into the exit threshold.
	RegimeExitMultiplier = 1.5

	ReasonRegimeBuy  = "Low volatility regime + short MA above long MA"
	ReasonRegimeSell = "High volatility regime or short MA below long MA"
)

// Regime runs the volatility regime + dual moving average strategy.
//
// At bar i the current volatility is the rolling volatility reading at index i
// (0 when it is a sentinel or past the end) and the average volatility is the
// mean of every non-sentinel reading before i. While flat it buys when current
// volatility is below average and the short MA is above the long MA. While long
// it sells when current volatility exceeds 1.5x the average or the short MA
// drops below the long MA. With no earlier readings there is no average and
// the volatility conditions are false.
func Regime(series types.PriceSeries, lookbackPeriod, volatilityWindow int) []types.Signal {
	closes := series.Closes()
	volatility := indicator.RollingVolatility(indicator.Returns(closes), volatilityWindow)
	shortMA := indicator.SMA(closes, RegimeShortWindow)
	longMA := indicator.SMA(closes, RegimeLongWindow)

	signals := []types.Signal{}
	state := flat

	// running totals over volatility[0:i]
	volSum, volCount := 0.0, 0
	start := max(lookbackPeriod, 0)

	for i := 0; i < len(series); i++ {
		if i >= start {
			current := optional.Some(volatility.ValueAt(i).TakeOr(0))
			average := optional.None[float64]()
			if volCount > 0 {
				average = optional.Some(volSum / float64(volCount))
			}

			bar := series[i]

			switch state {
			case flat:
				if lessThan(current, average) && lessThan(longMA[i], shortMA[i]) {
					signals = append(signals, types.Signal{
						Timestamp: bar.Timestamp,
						Type:      types.SignalTypeBuy,
						Price:     bar.Close,
						Reason:    ReasonRegimeBuy,
					})
					state = long
				}
			case long:
				exitLevel := optional.Map(average, func(v float64) float64 { return v * RegimeExitMultiplier })
				if lessThan(exitLevel, current) || lessThan(shortMA[i], longMA[i]) {
					signals = append(signals, types.Signal{
						Timestamp: bar.Timestamp,
						Type:      types.SignalTypeSell,
						Price:     bar.Close,
						Reason:    ReasonRegimeSell,
					})
					state = flat
				}
			}
		}

		if v := volatility.ValueAt(i); v.IsSome() {
			volSum += v.Unwrap()
			volCount++
		}
	}

	return signals
}
