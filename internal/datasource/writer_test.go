package datasource

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-alpha/internal/logger"
	"github.com/rxtech-lab/argo-alpha/internal/types"
	"github.com/rxtech-lab/argo-alpha/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type DuckDBWriterTestSuite struct {
	suite.Suite
	dir string
}

func TestDuckDBWriterSuite(t *testing.T) {
	suite.Run(t, new(DuckDBWriterTestSuite))
}

func (suite *DuckDBWriterTestSuite) SetupTest() {
	suite.dir = suite.T().TempDir()
}

func dailyBars(n int) types.PriceSeries {
	series := make(types.PriceSeries, n)
	for i := range series {
		c := 50 + float64(i)
		series[i] = types.PricePoint{
			Timestamp: baseTime.Add(time.Duration(i) * 24 * time.Hour).UnixMilli(),
			Open:      c - 0.25,
			High:      c + 1,
			Low:       c - 1,
			Close:     c,
			Volume:    500,
		}
	}

	return series
}

func (suite *DuckDBWriterTestSuite) TestRoundTrip() {
	for _, name := range []string{"bars.csv", "bars.parquet"} {
		suite.Run(name, func() {
			expected := dailyBars(10)

			path, err := WriteSeries(filepath.Join(suite.dir, name), expected)
			suite.Require().NoError(err)

			ds, err := NewDataSource(":memory:", logger.NewNopLogger())
			suite.Require().NoError(err)
			defer ds.Close()

			series, err := LoadSeries(ds, path, optional.None[time.Time](), optional.None[time.Time](), optional.None[Interval]())
			suite.Require().NoError(err)
			suite.Equal(expected, series)
		})
	}
}

func (suite *DuckDBWriterTestSuite) TestUnsupportedFormat() {
	_, err := NewBarWriter(filepath.Join(suite.dir, "bars.json"))
	suite.True(errors.HasCode(err, errors.ErrCodeUnsupportedFormat))
}

func (suite *DuckDBWriterTestSuite) TestWriteBeforeInitialize() {
	writer, err := NewBarWriter(filepath.Join(suite.dir, "bars.csv"))
	suite.Require().NoError(err)

	suite.Error(writer.Write(types.PricePoint{}))

	_, err = writer.Finalize()
	suite.Error(err)
	suite.NoError(writer.Close())
}
