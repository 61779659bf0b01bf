// Package strategy turns price and indicator series into entry and exit signals.
//
// Each generator is a single pass over the bars with a flat/long position held
// in a local variable. A generator never opens a position while long and never
// closes one while flat, so its signals strictly alternate starting with an
// open. A position still open at the last bar is left open.
package strategy

import (
	"github.com/rxtech-lab/argo-alpha/internal/types"
)

type position int

const (
	flat position = iota
	long
)

// lessThan compares two optional values; a sentinel on either side is never less.
func lessThan(a, b types.Value) bool {
	return a.IsSome() && b.IsSome() && a.Unwrap() < b.Unwrap()
}

// TradeReturns computes the realised return of every closed trade. A return is
// produced for each close signal that immediately follows an open signal.
func TradeReturns(signals []types.Signal) types.ReturnSeries {
	returns := types.ReturnSeries{}

	for i := 1; i < len(signals); i++ {
		entry, exit := signals[i-1], signals[i]
		if !exit.Type.IsClose() || !entry.Type.IsOpen() {
			continue
		}

		returns = append(returns, (exit.Price-entry.Price)/entry.Price)
	}

	return returns
}

// Stats summarises the closed trades of a signal sequence.
func Stats(signals []types.Signal) types.TradeStats {
	stats := types.TradeStats{}

	for _, r := range TradeReturns(signals) {
		stats.NumberOfTrades++

		switch {
		case r > 0:
			stats.NumberOfWinningTrades++
		case r < 0:
			stats.NumberOfLosingTrades++
		}
	}

	if len(signals) > 0 {
		stats.OpenPosition = signals[len(signals)-1].Type.IsOpen()
	}

	return stats
}
