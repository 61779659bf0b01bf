// Package indicator computes technical indicator series over closing prices.
//
// Every series has the same length as its input. Indices where an indicator
// has not seen enough data hold optional.None instead of a number.
package indicator

import (
	"math"

	"github.com/rxtech-lab/argo-alpha/internal/types"
	"github.com/rxtech-lab/argo-alpha/pkg/errors"
)

// Indicator interface defines methods that any technical indicator must implement
type Indicator interface {
	// Name returns the name of the indicator
	Name() types.IndicatorType
	// Config sets the indicator parameters
	Config(params ...any) error
	// Compute returns the indicator series for the given bars
	Compute(series types.PriceSeries) types.Series
}

func configError(message string) error {
	return errors.New(errors.ErrCodeMissingParameter, message)
}

// parsePeriod accepts an int or a whole float64 and requires it to be positive.
func parsePeriod(param any) (int, error) {
	period, ok := param.(int)
	if !ok {
		// Try to convert to float first
		periodFloat, ok := param.(float64)
		if !ok {
			return 0, errors.New(errors.ErrCodeInvalidType, "invalid type for period parameter, expected int or float")
		}

		if periodFloat != math.Trunc(periodFloat) {
			return 0, errors.Newf(errors.ErrCodeInvalidType, "period must be a whole number, got %v", periodFloat)
		}

		period = int(periodFloat)
	}

	if period <= 0 {
		return 0, errors.Newf(errors.ErrCodeInvalidPeriod, "period must be a positive integer, got %d", period)
	}

	return period, nil
}
