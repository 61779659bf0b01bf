package indicator

import (
	"testing"

	"github.com/stretchr/testify/suite"
)

type WindowTestSuite struct {
	suite.Suite
}

func TestWindowSuite(t *testing.T) {
	suite.Run(t, new(WindowTestSuite))
}

func (suite *WindowTestSuite) TestRollingAlignment() {
	values := []float64{1, 2, 3, 4, 5}
	series := Rolling(values, 3, func(win []float64) float64 { return win[len(win)-1] - win[0] })

	suite.Len(series, len(values))
	suite.True(series[0].IsNone())
	suite.True(series[1].IsNone())
	for i := 2; i < len(values); i++ {
		suite.Equal(2.0, series[i].Unwrap())
	}
}

func (suite *WindowTestSuite) TestRollingWindowPassesTrailingSlice() {
	values := []float64{1, 2, 3, 4}
	var windows [][]float64

	Rolling(values, 2, func(win []float64) float64 {
		windows = append(windows, append([]float64(nil), win...))
		return 0
	})

	suite.Equal([][]float64{{1, 2}, {2, 3}, {3, 4}}, windows)
}

func (suite *WindowTestSuite) TestRollingDegenerateWindows() {
	values := []float64{1, 2, 3}
	called := false
	fn := func([]float64) float64 {
		called = true
		return 0
	}

	for _, window := range []int{0, -1, 4} {
		series := Rolling(values, window, fn)
		suite.Len(series, 3)
		for _, v := range series {
			suite.True(v.IsNone())
		}
	}

	suite.False(called)
	suite.Empty(Rolling(nil, 3, fn))
}

func (suite *WindowTestSuite) TestRollingWindowOfOne() {
	series := Rolling([]float64{7, 8}, 1, mean)

	suite.Equal(7.0, series[0].Unwrap())
	suite.Equal(8.0, series[1].Unwrap())
}
