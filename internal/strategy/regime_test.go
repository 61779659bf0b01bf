package strategy

import (
	"testing"

	"github.com/rxtech-lab/argo-alpha/internal/indicator"
	"github.com/rxtech-lab/argo-alpha/internal/types"
	"github.com/rxtech-lab/argo-alpha/mocks"
	"github.com/stretchr/testify/suite"
)

type RegimeTestSuite struct {
	suite.Suite
}

func TestRegimeSuite(t *testing.T) {
	suite.Run(t, new(RegimeTestSuite))
}

// choppyTrendCrash zigzags for 40 bars, trends smoothly upward for 40 bars and
// then falls 3% per bar for 20 bars.
func choppyTrendCrash() (types.PriceSeries, int64) {
	closes := make([]float64, 0, 100)
	for i := 0; i < 40; i++ {
		if i%2 == 0 {
			closes = append(closes, 100)
		} else {
			closes = append(closes, 105)
		}
	}

	price := 105.0
	for i := 0; i < 40; i++ {
		price *= 1.01
		closes = append(closes, price)
	}

	for i := 0; i < 20; i++ {
		price *= 0.97
		closes = append(closes, price)
	}

	series := barsFromCloses(closes)

	return series, series[80].Timestamp
}

func (suite *RegimeTestSuite) TestTrendThenCrash() {
	series, crashAt := choppyTrendCrash()

	signals := Regime(series, 20, 20)

	suite.Require().GreaterOrEqual(len(signals), 2)
	assertAlternates(&suite.Suite, signals)
	suite.Equal(types.SignalTypeBuy, signals[0].Type)
	suite.Equal(ReasonRegimeBuy, signals[0].Reason)

	last := signals[len(signals)-1]
	suite.Equal(types.SignalTypeSell, last.Type)
	suite.Equal(ReasonRegimeSell, last.Reason)
	suite.GreaterOrEqual(last.Timestamp, crashAt)
}

func (suite *RegimeTestSuite) TestConstantPricesNoSignals() {
	closes := make([]float64, 80)
	for i := range closes {
		closes[i] = 10
	}

	suite.Empty(Regime(barsFromCloses(closes), 20, 20))
}

func (suite *RegimeTestSuite) TestAlternationOnGeneratedData() {
	for _, seed := range []int64{11, 12, 13} {
		config := mocks.DefaultConfig()
		config.Count = 2000
		config.Volatility = 0.015
		series := mocks.NewDataGenerator(seed).Generate(config)

		for _, window := range []int{5, 20} {
			assertAlternates(&suite.Suite, Regime(series, 20, window))
		}
	}
}

func (suite *RegimeTestSuite) TestShortSeries() {
	suite.Empty(Regime(nil, 20, 20))
	suite.Empty(Regime(barsFromCloses([]float64{1, 2, 3}), 20, 20))
	suite.Empty(Regime(barsFromCloses([]float64{1, 2, 3}), 0, 0))
}

func (suite *RegimeTestSuite) TestDeterministic() {
	series := mocks.NewDataGenerator(5).Generate(mocks.DefaultConfig())

	suite.Equal(Regime(series, 20, 20), Regime(series, 20, 20))
}

// zigzagCloses builds n closes from 100 whose k-th return is 0.01 plus or minus
// amplitude(k), alternating sign. override replaces single returns.
func zigzagCloses(n int, amplitude func(k int) float64, override map[int]float64) []float64 {
	closes := make([]float64, 0, n)
	price := 100.0
	closes = append(closes, price)

	for k := 0; k < n-1; k++ {
		a := amplitude(k)

		r := 0.01 - a
		if k%2 == 0 {
			r = 0.01 + a
		}

		if v, ok := override[k]; ok {
			r = v
		}

		price *= 1 + r
		closes = append(closes, price)
	}

	return closes
}

// fadingZigzag is an uptrend whose volatility slowly shrinks, with one return
// at bar 45 of 0.01+jump.
func fadingZigzag(jump float64) []float64 {
	return zigzagCloses(60, func(k int) float64 {
		return 0.004 * (1 - 0.01*float64(k))
	}, map[int]float64{45: 0.01 + jump})
}

// expandingAverage is the mean of every volatility reading before bar i.
func expandingAverage(volatility types.Series, i int) float64 {
	readings := volatility[:i].Valid()

	total := 0.0
	for _, v := range readings {
		total += v
	}

	return total / float64(len(readings))
}

func (suite *RegimeTestSuite) TestVolatilitySpikeExitsUptrend() {
	closes := fadingZigzag(0.015)
	series := barsFromCloses(closes)

	shortMA := indicator.SMA(closes, RegimeShortWindow)
	longMA := indicator.SMA(closes, RegimeLongWindow)
	suite.Require().Greater(shortMA[45].Unwrap(), longMA[45].Unwrap())

	volatility := indicator.RollingVolatility(indicator.Returns(closes), 10)
	ratio := volatility[45].Unwrap() / expandingAverage(volatility, 45)
	suite.Require().Greater(ratio, RegimeExitMultiplier)

	signals := Regime(series, 0, 10)

	suite.Require().GreaterOrEqual(len(signals), 2)
	suite.Equal(types.SignalTypeBuy, signals[0].Type)
	suite.Equal(series[29].Timestamp, signals[0].Timestamp)
	suite.Equal(types.SignalTypeSell, signals[1].Type)
	suite.Equal(series[45].Timestamp, signals[1].Timestamp)
	suite.Equal(ReasonRegimeSell, signals[1].Reason)
}

func (suite *RegimeTestSuite) TestVolatilityBelowExitLevelHolds() {
	closes := fadingZigzag(0.013)
	series := barsFromCloses(closes)

	volatility := indicator.RollingVolatility(indicator.Returns(closes), 10)
	ratio := volatility[45].Unwrap() / expandingAverage(volatility, 45)
	suite.Require().Greater(ratio, 1.0)
	suite.Require().Less(ratio, RegimeExitMultiplier)

	signals := Regime(series, 0, 10)

	suite.Require().Len(signals, 1)
	suite.Equal(types.SignalTypeBuy, signals[0].Type)
	suite.Equal(series[29].Timestamp, signals[0].Timestamp)
}

func (suite *RegimeTestSuite) TestAverageVolatilityCoversWholeHistory() {
	// 20 wild returns followed by a calm trend whose volatility slowly grows
	closes := zigzagCloses(60, func(k int) float64 {
		if k < 20 {
			return 0.05
		}

		return 0.002 * (1 + 0.02*float64(k-20))
	}, nil)
	series := barsFromCloses(closes)

	volatility := indicator.RollingVolatility(indicator.Returns(closes), 5)

	// the calm reading is above its recent readings but far below the full history
	recent := volatility[24:29].Floats()
	recentMean := (recent[0] + recent[1] + recent[2] + recent[3] + recent[4]) / 5
	suite.Require().Greater(volatility[29].Unwrap(), recentMean)
	suite.Require().Less(volatility[29].Unwrap(), expandingAverage(volatility, 29))

	signals := Regime(series, 0, 5)

	suite.Require().Len(signals, 1)
	suite.Equal(types.SignalTypeBuy, signals[0].Type)
	suite.Equal(series[29].Timestamp, signals[0].Timestamp)
}

func (suite *RegimeTestSuite) TestLastBarReadsZeroVolatility() {
	closes := make([]float64, 40)
	for i := range closes {
		closes[i] = 100
	}

	closes[39] = 130
	series := barsFromCloses(closes)

	// one return fewer than bars, so the last bar has no volatility reading
	suite.Require().Len(indicator.RollingVolatility(indicator.Returns(closes), 5), 39)

	signals := Regime(series, 0, 5)

	suite.Require().Len(signals, 1)
	suite.Equal(types.SignalTypeBuy, signals[0].Type)
	suite.Equal(series[39].Timestamp, signals[0].Timestamp)
	suite.Equal(130.0, signals[0].Price)
}
