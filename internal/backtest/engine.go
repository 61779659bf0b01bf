// Package backtest runs the analytics pipeline over instruments and data files.
package backtest

import (
	"context"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-alpha/internal/datasource"
	"github.com/rxtech-lab/argo-alpha/internal/logger"
	"github.com/rxtech-lab/argo-alpha/internal/strategy"
	"github.com/rxtech-lab/argo-alpha/internal/types"
	"github.com/rxtech-lab/argo-alpha/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// OnRunStartCallback is called once a data file is loaded, before it is analysed.
// Returning an error aborts the batch.
type OnRunStartCallback func(runID string, dataFileIndex int, dataFilePath string, totalBars int) error

// OnRunEndCallback is called when processing of a data file ends, with the run error if any.
type OnRunEndCallback func(dataFileIndex int, dataFilePath string, err error)

// LifecycleCallbacks holds the optional batch callbacks. Runs execute
// concurrently, so callbacks must be safe for concurrent use.
type LifecycleCallbacks struct {
	OnRunStart *OnRunStartCallback
	OnRunEnd   *OnRunEndCallback
}

// DataSourceFactory creates a fresh data source for one data file.
type DataSourceFactory func() (datasource.DataSource, error)

// Engine runs both strategies over instruments and assembles reports.
type Engine struct {
	log         *logger.Logger
	now         func() time.Time
	concurrency int
}

// NewEngine creates an engine that logs through log.
func NewEngine(log *logger.Logger) *Engine {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Engine{
		log:         log,
		now:         time.Now,
		concurrency: runtime.NumCPU(),
	}
}

// SetConcurrency caps the number of data files processed at once.
func (e *Engine) SetConcurrency(n int) {
	e.concurrency = max(n, 1)
}

// Run analyses a single instrument.
func (e *Engine) Run(ctx context.Context, instrument types.Instrument, config Config) (Report, error) {
	return e.run(ctx, uuid.New().String(), instrument, "", config)
}

func (e *Engine) run(ctx context.Context, runID string, instrument types.Instrument, dataPath string, config Config) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, errors.Wrap(errors.ErrCodeRunCancelled, "run cancelled", err)
	}

	log := e.log.With(zap.String("run_id", runID), zap.String("symbol", instrument.Symbol))
	log.Info("Starting run", zap.Int("bars", len(instrument.Data)), zap.String("data", dataPath))

	result, err := RunStrategy(instrument, config)
	if err != nil {
		log.Error("Invalid config", zap.Error(err))

		return Report{}, err
	}

	regime, err := AnalyzeRegime(instrument, config)
	if err != nil {
		return Report{}, err
	}

	report := Report{
		ID:         runID,
		Timestamp:  e.now().UTC(),
		Symbol:     instrument.Symbol,
		DataPath:   dataPath,
		Bars:       len(instrument.Data),
		Config:     config,
		Strategy:   result,
		Regime:     regime,
		TradeStats: strategy.Stats(result.Signals),
	}

	log.Info("Run finished",
		zap.Int("signals", len(result.Signals)),
		zap.Int("regime_signals", len(regime.Signals)),
		zap.Float64("sharpe_ratio", result.Metrics.SharpeRatio),
		zap.Float64("total_return", result.Metrics.TotalReturn),
	)

	return report.Rounded(config.DecimalPrecision), nil
}

// RunBatch loads and analyses every data file concurrently. Each file gets its
// own data source from factory. Reports are returned in the order of dataPaths.
// The first failure cancels the remaining runs and is returned as
// ErrCodeRunFailed wrapping the cause; cancellation keeps ErrCodeRunCancelled.
func (e *Engine) RunBatch(ctx context.Context, dataPaths []string, factory DataSourceFactory, config Config, callbacks LifecycleCallbacks) ([]Report, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	reports := make([]Report, len(dataPaths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i, dataPath := range dataPaths {
		g.Go(func() (err error) {
			if callbacks.OnRunEnd != nil {
				defer func() { (*callbacks.OnRunEnd)(i, dataPath, err) }()
			}

			reports[i], err = e.runFile(gctx, i, dataPath, factory, config, callbacks)
			if err != nil && !errors.HasCode(err, errors.ErrCodeRunCancelled) {
				err = errors.Wrapf(errors.ErrCodeRunFailed, err, "run of %s failed", dataPath)
			}

			return err
		})
	}

	if err := g.Wait(); err != nil {
		e.log.Error("Batch failed", zap.Error(err))

		return nil, err
	}

	return reports, nil
}

func (e *Engine) runFile(ctx context.Context, index int, dataPath string, factory DataSourceFactory, config Config, callbacks LifecycleCallbacks) (Report, error) {
	if err := ctx.Err(); err != nil {
		return Report{}, errors.Wrap(errors.ErrCodeRunCancelled, "run cancelled", err)
	}

	ds, err := factory()
	if err != nil {
		return Report{}, err
	}
	defer ds.Close()

	instrument, err := datasource.LoadInstrument(ds, dataPath, "", config.StartTime, config.EndTime, config.ResampleInterval())
	if err != nil {
		e.log.Error("Failed to load data", zap.String("data", dataPath), zap.Error(err))

		return Report{}, err
	}

	runID := uuid.New().String()

	if callbacks.OnRunStart != nil {
		if err := (*callbacks.OnRunStart)(runID, index, dataPath, len(instrument.Data)); err != nil {
			return Report{}, errors.Wrap(errors.ErrCodeCallbackFailed, "OnRunStart callback failed", err)
		}
	}

	return e.run(ctx, runID, instrument, dataPath, config)
}
