package types

import (
	"math"

	"github.com/moznion/go-optional"
)

// Value is a single indicator reading. None marks an index where the
// indicator has not seen enough data or the ratio is undefined.
type Value = optional.Option[float64]

// Series is an indicator series. It always has the same length as the
// price or return series it was derived from.
type Series []Value

// ReturnSeries holds simple per-period returns.
type ReturnSeries []float64

// NewSeries returns a series of n sentinel values.
func NewSeries(n int) Series {
	if n < 0 {
		n = 0
	}

	series := make(Series, n)
	for i := range series {
		series[i] = optional.None[float64]()
	}

	return series
}

// ValueAt returns the value at index i, or None when i is out of range.
func (s Series) ValueAt(i int) Value {
	if i < 0 || i >= len(s) {
		return optional.None[float64]()
	}

	return s[i]
}

// Valid returns the non-sentinel values in order.
func (s Series) Valid() []float64 {
	values := make([]float64, 0, len(s))
	for _, v := range s {
		if v.IsSome() {
			values = append(values, v.Unwrap())
		}
	}

	return values
}

// Floats converts the series to plain floats with NaN in place of sentinels.
// Intended for chart and table renderers.
func (s Series) Floats() []float64 {
	values := make([]float64, len(s))
	for i, v := range s {
		values[i] = v.TakeOr(math.NaN())
	}

	return values
}

// Last returns the most recent non-sentinel value.
func (s Series) Last() Value {
	for i := len(s) - 1; i >= 0; i-- {
		if s[i].IsSome() {
			return s[i]
		}
	}

	return optional.None[float64]()
}
