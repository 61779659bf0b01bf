package types

// PricePoint is a single OHLCV bar. Timestamp is epoch milliseconds.
// Only Close is consumed by the analytics core; the remaining fields are carried for callers.
type PricePoint struct {
	Timestamp int64   `yaml:"timestamp" json:"timestamp" csv:"timestamp"`
	Open      float64 `yaml:"open" json:"open" csv:"open" validate:"gte=0"`
	High      float64 `yaml:"high" json:"high" csv:"high" validate:"gte=0,gtefield=Low"`
	Low       float64 `yaml:"low" json:"low" csv:"low" validate:"gte=0"`
	Close     float64 `yaml:"close" json:"close" csv:"close" validate:"gte=0"`
	Volume    float64 `yaml:"volume" json:"volume" csv:"volume" validate:"gte=0"`
}

// PriceSeries is an ordered, index-aligned sequence of bars.
type PriceSeries []PricePoint

// Closes returns the close column of the series.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, p := range s {
		closes[i] = p.Close
	}

	return closes
}

// Timestamps returns the timestamp column of the series.
func (s PriceSeries) Timestamps() []int64 {
	timestamps := make([]int64, len(s))
	for i, p := range s {
		timestamps[i] = p.Timestamp
	}

	return timestamps
}

// Instrument is a symbol together with its bar history.
type Instrument struct {
	Symbol string      `yaml:"symbol" json:"symbol"`
	Data   PriceSeries `yaml:"data" json:"data"`
}
