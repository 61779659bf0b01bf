package indicator

import "github.com/rxtech-lab/argo-alpha/internal/types"

// Returns computes simple close-to-close returns. The result has len(prices)-1
// entries and is empty when fewer than two prices are given.
func Returns(prices []float64) types.ReturnSeries {
	if len(prices) < 2 {
		return types.ReturnSeries{}
	}

	returns := make(types.ReturnSeries, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		returns[i-1] = (prices[i] - prices[i-1]) / prices[i-1]
	}

	return returns
}
