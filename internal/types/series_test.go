package types

import (
	"math"
	"testing"

	"github.com/moznion/go-optional"
	"github.com/stretchr/testify/suite"
)

type SeriesTestSuite struct {
	suite.Suite
}

func TestSeriesSuite(t *testing.T) {
	suite.Run(t, new(SeriesTestSuite))
}

func (suite *SeriesTestSuite) TestNewSeriesIsAllSentinel() {
	series := NewSeries(3)

	suite.Len(series, 3)
	for _, v := range series {
		suite.True(v.IsNone())
	}

	suite.Empty(NewSeries(-1))
}

func (suite *SeriesTestSuite) TestValueAt() {
	series := Series{optional.None[float64](), optional.Some(2.0)}

	suite.True(series.ValueAt(0).IsNone())
	suite.Equal(2.0, series.ValueAt(1).Unwrap())
	suite.True(series.ValueAt(-1).IsNone())
	suite.True(series.ValueAt(2).IsNone())
}

func (suite *SeriesTestSuite) TestValidAndLast() {
	series := Series{optional.None[float64](), optional.Some(1.0), optional.Some(3.0), optional.None[float64]()}

	suite.Equal([]float64{1, 3}, series.Valid())
	suite.Equal(3.0, series.Last().Unwrap())
	suite.True(NewSeries(2).Last().IsNone())
}

func (suite *SeriesTestSuite) TestFloats() {
	floats := Series{optional.None[float64](), optional.Some(4.5)}.Floats()

	suite.True(math.IsNaN(floats[0]))
	suite.Equal(4.5, floats[1])
}
