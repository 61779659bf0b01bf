package strategy

import (
	"testing"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-alpha/internal/indicator"
	"github.com/rxtech-lab/argo-alpha/internal/types"
	"github.com/rxtech-lab/argo-alpha/mocks"
	"github.com/stretchr/testify/suite"
)

type ThresholdTestSuite struct {
	suite.Suite
}

func TestThresholdSuite(t *testing.T) {
	suite.Run(t, new(ThresholdTestSuite))
}

func barsFromCloses(closes []float64) types.PriceSeries {
	series := make(types.PriceSeries, len(closes))
	for i, c := range closes {
		series[i] = types.PricePoint{Timestamp: int64(i) * 86_400_000, Open: c, High: c, Low: c, Close: c, Volume: 1000}
	}

	return series
}

func runThreshold(series types.PriceSeries, period int) []types.Signal {
	closes := series.Closes()

	return Threshold(series, indicator.SMA(closes, period), indicator.RSI(closes, period), period)
}

// dipThenRally is flat at 120, drops to 100 in one bar and then climbs by 0.5 per bar.
// The single large loss keeps RSI under 30 while the climb lifts the close above
// its 14-bar SMA; once the loss leaves the RSI window the RSI jumps to 100.
func dipThenRally() types.PriceSeries {
	closes := make([]float64, 0, 30)
	for i := 0; i < 15; i++ {
		closes = append(closes, 120)
	}
	for i := 0; i < 15; i++ {
		closes = append(closes, 100+0.5*float64(i))
	}

	return barsFromCloses(closes)
}

func (suite *ThresholdTestSuite) TestDipThenRally() {
	signals := runThreshold(dipThenRally(), indicator.DefaultRSIPeriod)

	suite.Require().Len(signals, 2)
	suite.Equal(types.SignalTypeEntry, signals[0].Type)
	suite.Equal(types.SignalTypeExit, signals[1].Type)
	suite.Equal(ReasonThresholdEntry, signals[0].Reason)
	suite.Equal(ReasonThresholdExit, signals[1].Reason)
	suite.Equal(105.5, signals[0].Price)
	suite.Equal(107.0, signals[1].Price)
	suite.Greater(signals[1].Price, signals[0].Price)

	returns := TradeReturns(signals)
	suite.Require().Len(returns, 1)
	suite.Greater(returns[0], 0.0)
}

func (suite *ThresholdTestSuite) TestConstantPricesNoSignals() {
	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 10
	}

	suite.Empty(runThreshold(barsFromCloses(closes), 14))
}

func (suite *ThresholdTestSuite) TestAlternationOnGeneratedData() {
	for _, seed := range []int64{1, 2, 3, 4, 5} {
		config := mocks.DefaultConfig()
		config.Count = 3000
		config.Volatility = 0.01
		series := mocks.NewDataGenerator(seed).Generate(config)

		for _, period := range []int{5, 14, 30} {
			signals := runThreshold(series, period)
			assertAlternates(&suite.Suite, signals)
		}
	}
}

func (suite *ThresholdTestSuite) TestSkipsBarsBeforePeriod() {
	series := barsFromCloses([]float64{10, 20, 30, 40})
	// indicator values that would trigger an entry on every bar
	sma := types.Series{optional.Some(1.0), optional.Some(1.0), optional.Some(1.0), optional.Some(1.0)}
	rsi := types.Series{optional.Some(10.0), optional.Some(10.0), optional.Some(10.0), optional.Some(10.0)}

	signals := Threshold(series, sma, rsi, 2)

	suite.Require().Len(signals, 1)
	suite.Equal(series[2].Timestamp, signals[0].Timestamp)
	suite.Equal(30.0, signals[0].Price)
}

func (suite *ThresholdTestSuite) TestSentinelsNeverTrigger() {
	series := barsFromCloses([]float64{10, 20, 30, 40})
	none := types.NewSeries(4)
	low := types.Series{optional.Some(10.0), optional.Some(10.0), optional.Some(10.0), optional.Some(10.0)}

	suite.Empty(Threshold(series, none, low, 0))
	suite.Empty(Threshold(series, low, none, 0))
	suite.Empty(Threshold(series, nil, nil, 0))
}

func (suite *ThresholdTestSuite) TestOpenPositionIsNotClosed() {
	series := barsFromCloses([]float64{10, 20, 30})
	sma := types.Series{optional.Some(1.0), optional.Some(1.0), optional.Some(1.0)}
	rsi := types.Series{optional.Some(10.0), optional.Some(50.0), optional.Some(50.0)}

	signals := Threshold(series, sma, rsi, 0)

	suite.Require().Len(signals, 1)
	suite.Equal(types.SignalTypeEntry, signals[0].Type)
}

func (suite *ThresholdTestSuite) TestReentryAfterExit() {
	series := barsFromCloses([]float64{10, 5, 20})
	sma := types.Series{optional.Some(8.0), optional.Some(8.0), optional.Some(8.0)}
	rsi := types.Series{optional.Some(10.0), optional.Some(10.0), optional.Some(10.0)}

	signals := Threshold(series, sma, rsi, 0)

	suite.Require().Len(signals, 3)
	suite.Equal(types.SignalTypeEntry, signals[0].Type)
	suite.Equal(types.SignalTypeExit, signals[1].Type)
	suite.Equal(types.SignalTypeEntry, signals[2].Type)
	suite.Equal(series[2].Timestamp, signals[2].Timestamp)
}
