package datasource

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-alpha/internal/types"
	"github.com/rxtech-lab/argo-alpha/pkg/errors"
)

var validate = validator.New()

// Bounds used for GetRange when the caller leaves start or end open.
var (
	earliestBar = time.Date(1, 1, 1, 0, 0, 0, 0, time.UTC)
	latestBar   = time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC)
)

// LoadSeries initialises ds with path and collects every bar in [start, end].
// With an interval the bars are resampled to it, otherwise they are read as stored.
// Each bar is validated; a malformed row fails the whole load.
func LoadSeries(ds DataSource, path string, start, end optional.Option[time.Time], interval optional.Option[Interval]) (types.PriceSeries, error) {
	if err := ds.Initialize(path); err != nil {
		return nil, err
	}

	count, err := ds.Count(start, end)
	if err != nil {
		return nil, err
	}

	if count == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "no bars found in %s", path)
	}

	var series types.PriceSeries

	if interval.IsSome() {
		series, err = ds.GetRange(start.TakeOr(earliestBar), end.TakeOr(latestBar), interval)
		if err != nil {
			return nil, err
		}
	} else {
		series = make(types.PriceSeries, 0, count)

		for bar, err := range ds.ReadAll(start, end) {
			if err != nil {
				return nil, err
			}

			series = append(series, bar)
		}
	}

	for _, bar := range series {
		if err := validate.Struct(bar); err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidMarketData, err, "invalid bar at %d in %s", bar.Timestamp, path)
		}
	}

	if len(series) == 0 {
		return nil, errors.Newf(errors.ErrCodeNoDataFound, "no bars found in %s", path)
	}

	return series, nil
}

// LoadInstrument loads path into an instrument. An empty symbol is replaced by
// the upper-cased file name without extension.
func LoadInstrument(ds DataSource, path, symbol string, start, end optional.Option[time.Time], interval optional.Option[Interval]) (types.Instrument, error) {
	series, err := LoadSeries(ds, path, start, end, interval)
	if err != nil {
		return types.Instrument{}, err
	}

	if symbol == "" {
		symbol = SymbolFromPath(path)
	}

	return types.Instrument{Symbol: symbol, Data: series}, nil
}

// SymbolFromPath derives a symbol from a data file name, e.g. data/spy.csv -> SPY.
func SymbolFromPath(path string) string {
	base := filepath.Base(path)

	return strings.ToUpper(strings.TrimSuffix(base, filepath.Ext(base)))
}
