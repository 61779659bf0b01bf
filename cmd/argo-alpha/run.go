package main

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/rxtech-lab/argo-alpha/internal/backtest"
	"github.com/rxtech-lab/argo-alpha/internal/datasource"
	"github.com/rxtech-lab/argo-alpha/internal/logger"
	"github.com/rxtech-lab/argo-alpha/mocks"
	"github.com/rxtech-lab/argo-alpha/pkg/errors"
	"github.com/schollz/progressbar/v3"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "Run both strategies over data files and write a YAML report",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Data file or glob of `.csv` / `.parquet` files (e.g. data/*.parquet)",
			},
			&cli.BoolFlag{
				Name:  "mock",
				Usage: "Analyse 252 generated daily bars instead of data files",
			},
			&cli.StringFlag{
				Name:  "symbol",
				Usage: "Symbol of the generated instrument used with --mock",
				Value: "MOCK",
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to a YAML config file",
			},
			&cli.IntFlag{
				Name:  "period",
				Usage: "SMA and RSI window (overrides the config file)",
			},
			&cli.IntFlag{
				Name:  "lookback",
				Usage: "Bars skipped by the regime strategy (overrides the config file)",
			},
			&cli.IntFlag{
				Name:  "volatility-window",
				Usage: "Rolling volatility window (overrides the config file)",
			},
			&cli.FloatFlag{
				Name:  "risk-free-rate",
				Usage: "Annual risk-free rate (overrides the config file)",
			},
			&cli.StringFlag{
				Name:  "interval",
				Usage: "Resample data files to this bar interval: 1m, 5m, 15m, 30m, 1h, 4h, 1d or 1w (overrides the config file)",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Report output path",
				Value:   filepath.Join("results", "report.yaml"),
			},
		},
		Action: runAction,
	}
}

func runAction(ctx context.Context, cmd *cli.Command) error {
	log, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	config, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	eng := backtest.NewEngine(log)

	var reports []backtest.Report

	if cmd.Bool("mock") {
		report, err := eng.Run(ctx, mocks.Mock252Days(cmd.String("symbol")), config)
		if err != nil {
			return err
		}

		reports = []backtest.Report{report}
	} else {
		paths, err := resolveDataPaths(cmd.String("data"))
		if err != nil {
			return err
		}

		reports, err = runFiles(ctx, eng, log, paths, config)
		if err != nil {
			return err
		}
	}

	output := cmd.String("output")
	if err := backtest.WriteReports(output, reports); err != nil {
		return err
	}

	fmt.Println(renderSummary(reports))
	fmt.Println(HelpStyle.Render("Report written to " + output))

	return nil
}

func runFiles(ctx context.Context, eng *backtest.Engine, log *logger.Logger, paths []string, config backtest.Config) ([]backtest.Report, error) {
	bar := progressbar.Default(int64(len(paths)), "analysing")

	onEnd := backtest.OnRunEndCallback(func(_ int, path string, err error) {
		if err != nil {
			log.Warn("Run failed", zap.String("data", path), zap.Error(err))
		}

		_ = bar.Add(1)
	})

	reports, err := eng.RunBatch(ctx, paths, func() (datasource.DataSource, error) {
		return datasource.NewDataSource(":memory:", log)
	}, config, backtest.LifecycleCallbacks{OnRunEnd: &onEnd})

	_ = bar.Finish()

	return reports, err
}

// resolveConfig loads the config file, if any, and applies flag overrides.
func resolveConfig(cmd *cli.Command) (backtest.Config, error) {
	config := backtest.DefaultConfig()

	if path := cmd.String("config"); path != "" {
		loaded, err := backtest.LoadConfig(path)
		if err != nil {
			return backtest.Config{}, err
		}

		config = loaded
	}

	if cmd.IsSet("period") {
		config.Period = int(cmd.Int("period"))
	}

	if cmd.IsSet("lookback") {
		config.LookbackPeriod = int(cmd.Int("lookback"))
	}

	if cmd.IsSet("volatility-window") {
		config.VolatilityWindow = int(cmd.Int("volatility-window"))
	}

	if cmd.IsSet("risk-free-rate") {
		config.RiskFreeRate = cmd.Float("risk-free-rate")
	}

	if cmd.IsSet("interval") {
		config.Interval = datasource.Interval(cmd.String("interval"))
	}

	if err := config.Validate(); err != nil {
		return backtest.Config{}, err
	}

	return config, nil
}

// resolveDataPaths expands a file path or glob into a sorted list of files.
func resolveDataPaths(pattern string) ([]string, error) {
	if pattern == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "either --data or --mock is required")
	}

	paths, err := filepath.Glob(pattern)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidParameter, err, "invalid data pattern %q", pattern)
	}

	if len(paths) == 0 {
		return nil, errors.Newf(errors.ErrCodeDataNotFound, "no data files match %q", pattern)
	}

	slices.Sort(paths)

	return paths, nil
}
