package types

type IndicatorType string

const (
	IndicatorTypeMA         IndicatorType = "ma"
	IndicatorTypeRSI        IndicatorType = "rsi"
	IndicatorTypeVolatility IndicatorType = "volatility"
)

// AllIndicatorTypes lists the indicators that can be computed by name.
var AllIndicatorTypes = []IndicatorType{
	IndicatorTypeMA,
	IndicatorTypeRSI,
	IndicatorTypeVolatility,
}
