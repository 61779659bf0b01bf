// Package datasource loads OHLCV bars from CSV or Parquet files through DuckDB.
package datasource

import (
	"time"

	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-alpha/internal/types"
)

type Interval string

const (
	Interval1m  Interval = "1m"
	Interval5m  Interval = "5m"
	Interval15m Interval = "15m"
	Interval30m Interval = "30m"
	Interval1h  Interval = "1h"
	Interval4h  Interval = "4h"
	Interval1d  Interval = "1d"
	Interval1w  Interval = "1w"
)

// DataSource reads bars for a single instrument.
//
// Files must carry the columns time, open, high, low, close and volume; time is
// a timestamp column and is exposed as epoch milliseconds.
type DataSource interface {
	// Initialize points the data source at a .csv or .parquet file
	Initialize(path string) error
	// ReadAll reads every bar in time order and yields it to the caller
	ReadAll(start optional.Option[time.Time], end optional.Option[time.Time]) func(yield func(types.PricePoint, error) bool)
	// GetRange reads the bars in [start, end], optionally resampled to interval
	GetRange(start time.Time, end time.Time, interval optional.Option[Interval]) (types.PriceSeries, error)
	// Count returns the number of bars in the data source
	Count(start optional.Option[time.Time], end optional.Option[time.Time]) (int, error)
	// Close closes the data source and releases any resources
	Close() error
}
