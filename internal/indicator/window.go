package indicator

import (
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-alpha/internal/types"
)

// Rolling applies fn to every trailing window of the given size.
// Index i < window-1 is a sentinel; otherwise the value is fn(values[i-window+1 : i+1]).
// A window smaller than 1 yields a series of sentinels.
// fn must not retain or modify the slice it receives.
func Rolling(values []float64, window int, fn func(win []float64) float64) types.Series {
	series := types.NewSeries(len(values))
	if window < 1 {
		return series
	}

	for i := window - 1; i < len(values); i++ {
		series[i] = optional.Some(fn(values[i-window+1 : i+1]))
	}

	return series
}

// mean is a left-to-right arithmetic mean.
func mean(values []float64) float64 {
	return sum(values) / float64(len(values))
}
