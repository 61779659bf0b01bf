package indicator

import (
	"math"
	"testing"

	"github.com/rxtech-lab/argo-alpha/internal/types"
	"github.com/rxtech-lab/argo-alpha/mocks"
	"github.com/rxtech-lab/argo-alpha/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type MATestSuite struct {
	suite.Suite
}

func TestMASuite(t *testing.T) {
	suite.Run(t, new(MATestSuite))
}

func (suite *MATestSuite) TestSMAHandCalculated() {
	// SMA(3) of 100, 102, 104, 103, 105
	series := SMA([]float64{100, 102, 104, 103, 105}, 3)

	suite.Len(series, 5)
	suite.True(series[0].IsNone())
	suite.True(series[1].IsNone())
	suite.InDelta(102.0, series[2].Unwrap(), 1e-12)
	suite.InDelta(103.0, series[3].Unwrap(), 1e-12)
	suite.InDelta(104.0, series[4].Unwrap(), 1e-12)
}

func (suite *MATestSuite) TestSMAMatchesWindowMean() {
	closes := mocks.NewDataGenerator(7).Generate(mocks.DefaultConfig()).Closes()[:500]

	for _, period := range []int{1, 2, 5, 14, 30} {
		series := SMA(closes, period)
		suite.Len(series, len(closes))

		for i := range closes {
			if i < period-1 {
				suite.True(series[i].IsNone(), "period %d index %d", period, i)
				continue
			}

			total := 0.0
			for _, c := range closes[i-period+1 : i+1] {
				total += c
			}

			suite.Equal(total/float64(period), series[i].Unwrap(), "period %d index %d", period, i)
		}
	}
}

func (suite *MATestSuite) TestSMAShorterThanPeriod() {
	series := SMA([]float64{1, 2}, 5)

	suite.Len(series, 2)
	suite.Empty(series.Valid())
	suite.Empty(SMA(nil, 5))
}

func (suite *MATestSuite) TestMAIndicator() {
	ma := NewMA()
	suite.Equal(types.IndicatorTypeMA, ma.Name())
	suite.Equal(20, ma.(*MA).period)

	suite.NoError(ma.Config(2))
	series := ma.Compute(types.PriceSeries{{Close: 1}, {Close: 3}, {Close: 5}})

	suite.True(series[0].IsNone())
	suite.Equal(2.0, series[1].Unwrap())
	suite.Equal(4.0, series[2].Unwrap())
}

func (suite *MATestSuite) TestMAConfig() {
	tests := []struct {
		name     string
		params   []any
		wantCode errors.ErrorCode
		want     int
	}{
		{name: "int", params: []any{10}, want: 10},
		{name: "float", params: []any{15.0}, want: 15},
		{name: "no params", params: nil, wantCode: errors.ErrCodeMissingParameter},
		{name: "too many", params: []any{1, 2}, wantCode: errors.ErrCodeMissingParameter},
		{name: "string", params: []any{"10"}, wantCode: errors.ErrCodeInvalidType},
		{name: "fractional float", params: []any{14.7}, wantCode: errors.ErrCodeInvalidType},
		{name: "NaN", params: []any{math.NaN()}, wantCode: errors.ErrCodeInvalidType},
		{name: "zero", params: []any{0}, wantCode: errors.ErrCodeInvalidPeriod},
		{name: "negative", params: []any{-5}, wantCode: errors.ErrCodeInvalidPeriod},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			ma := NewMA().(*MA)
			err := ma.Config(tt.params...)

			if tt.wantCode != 0 {
				suite.Error(err)
				suite.True(errors.HasCode(err, tt.wantCode))
				suite.Equal(20, ma.period)

				return
			}

			suite.NoError(err)
			suite.Equal(tt.want, ma.period)
		})
	}
}
