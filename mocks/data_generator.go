package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/argo-alpha/internal/types"
)

// DataGenerator generates synthetic price bars for tests, benchmarks and the --mock run mode.
type DataGenerator struct {
	rng *rand.Rand
}

// NewDataGenerator creates a new DataGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// GeneratorConfig configures how price bars are generated.
type GeneratorConfig struct {
	// Symbol is the instrument symbol (e.g., "AAPL", "SPY")
	Symbol string
	// StartTime is the timestamp of the first bar
	StartTime time.Time
	// Interval is the duration between each bar
	Interval time.Duration
	// Count is the number of bars to generate
	Count int
	// InitialPrice is the starting price
	InitialPrice float64
	// Volatility controls price movement (0.01 = 1% per bar)
	Volatility float64
	// Trend is the total drift spread across the series (-0.5 to 0.5 for bearish to bullish)
	Trend float64
	// VolumeBase is the average volume per bar
	VolumeBase float64
	// VolumeVariance is the variance in volume (0.0 to 1.0)
	VolumeVariance float64
}

// DefaultConfig returns a sensible default configuration.
func DefaultConfig() GeneratorConfig {
	return GeneratorConfig{
		Symbol:         "TEST",
		StartTime:      time.Date(2024, 1, 1, 9, 30, 0, 0, time.UTC),
		Interval:       time.Minute,
		Count:          10000,
		InitialPrice:   100.0,
		Volatility:     0.002, // 0.2% per bar
		Trend:          0.0,   // neutral
		VolumeBase:     10000,
		VolumeVariance: 0.3,
	}
}

// DailyConfig returns a configuration producing one bar per calendar day.
func DailyConfig(symbol string, count int) GeneratorConfig {
	config := DefaultConfig()
	config.Symbol = symbol
	config.StartTime = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	config.Interval = 24 * time.Hour
	config.Count = count
	config.Volatility = 0.02
	config.Trend = 0.1
	config.VolumeBase = 1_000_000

	return config
}

// Generate creates a price series based on the configuration.
// Prices follow a geometric Brownian motion model.
func (g *DataGenerator) Generate(config GeneratorConfig) types.PriceSeries {
	count := max(config.Count, 0)
	data := make(types.PriceSeries, count)
	currentPrice := config.InitialPrice
	currentTime := config.StartTime

	for i := 0; i < count; i++ {
		open := currentPrice

		// Box-Muller transform for a standard normal draw
		u1 := g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		priceChange := config.Volatility * z
		drift := config.Trend / float64(count)

		close := open * (1 + priceChange + drift)
		if close <= 0 {
			close = open * 0.99
		}

		highExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)
		lowExtension := math.Abs(g.rng.Float64() * config.Volatility * open * 0.5)

		high := math.Max(open, close) + highExtension
		low := math.Min(open, close) - lowExtension
		if low <= 0 {
			low = math.Min(open, close) * 0.99
		}

		volumeVariation := 1.0 + (g.rng.Float64()*2-1)*config.VolumeVariance
		volume := config.VolumeBase * volumeVariation
		if volume < 0 {
			volume = config.VolumeBase * 0.1
		}

		data[i] = types.PricePoint{
			Timestamp: currentTime.UnixMilli(),
			Open:      roundToDecimals(open, 4),
			High:      roundToDecimals(high, 4),
			Low:       roundToDecimals(low, 4),
			Close:     roundToDecimals(close, 4),
			Volume:    roundToDecimals(volume, 2),
		}

		currentPrice = close
		currentTime = currentTime.Add(config.Interval)
	}

	return data
}

// GenerateInstrument generates a series and wraps it with the configured symbol.
func (g *DataGenerator) GenerateInstrument(config GeneratorConfig) types.Instrument {
	return types.Instrument{
		Symbol: config.Symbol,
		Data:   g.Generate(config),
	}
}

// GenerateMultiSymbol generates one instrument per symbol.
func (g *DataGenerator) GenerateMultiSymbol(symbols []string, baseConfig GeneratorConfig) []types.Instrument {
	instruments := make([]types.Instrument, 0, len(symbols))

	for _, symbol := range symbols {
		config := baseConfig
		config.Symbol = symbol
		// Vary initial price and volatility slightly per symbol
		config.InitialPrice = baseConfig.InitialPrice * (0.8 + g.rng.Float64()*0.4)
		config.Volatility = baseConfig.Volatility * (0.8 + g.rng.Float64()*0.4)

		instruments = append(instruments, g.GenerateInstrument(config))
	}

	return instruments
}

// Mock252Days generates one trading year of daily bars for symbol.
func Mock252Days(symbol string) types.Instrument {
	return NewDataGenerator(42).GenerateInstrument(DailyConfig(symbol, 252))
}

// Generate10K generates 10,000 minute bars with default settings for benchmarking.
func Generate10K(symbol string) types.Instrument {
	gen := NewDataGenerator(42)
	config := DefaultConfig()
	config.Symbol = symbol
	config.Count = 10000

	return gen.GenerateInstrument(config)
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(val*pow) / pow
}

// SeriesIterator adapts a series to the DataSource.ReadAll iterator shape, for
// stubbing a MockDataSource.
func SeriesIterator(series types.PriceSeries) func(yield func(types.PricePoint, error) bool) {
	return func(yield func(types.PricePoint, error) bool) {
		for _, bar := range series {
			if !yield(bar, nil) {
				return
			}
		}
	}
}
