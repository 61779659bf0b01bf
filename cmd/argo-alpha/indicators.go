package main

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/moznion/go-optional"
	"github.com/rxtech-lab/argo-alpha/internal/datasource"
	"github.com/rxtech-lab/argo-alpha/internal/indicator"
	"github.com/rxtech-lab/argo-alpha/internal/logger"
	"github.com/rxtech-lab/argo-alpha/internal/types"
	"github.com/rxtech-lab/argo-alpha/mocks"
	"github.com/rxtech-lab/argo-alpha/pkg/errors"
	"github.com/urfave/cli/v3"
)

func indicatorsCommand() *cli.Command {
	return &cli.Command{
		Name:  "indicators",
		Usage: "Print an indicator series for a data file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "name",
				Aliases: []string{"n"},
				Usage:   "Indicator name (ma, rsi, volatility)",
				Value:   string(types.IndicatorTypeRSI),
			},
			&cli.IntFlag{
				Name:    "period",
				Aliases: []string{"p"},
				Usage:   "Indicator window; the indicator default when unset",
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Path to a `.csv` or `.parquet` data file",
			},
			&cli.BoolFlag{
				Name:  "mock",
				Usage: "Use 252 generated daily bars",
			},
			&cli.IntFlag{
				Name:  "tail",
				Usage: "Number of most recent readings to print (0 prints all)",
				Value: 20,
			},
		},
		Action: indicatorsAction,
	}
}

func indicatorsAction(ctx context.Context, cmd *cli.Command) error {
	registry := indicator.NewDefaultRegistry()

	ind, err := registry.GetIndicator(types.IndicatorType(cmd.String("name")))
	if err != nil {
		return err
	}

	if cmd.IsSet("period") {
		if err := ind.Config(int(cmd.Int("period"))); err != nil {
			return err
		}
	}

	instrument, err := loadSingleInstrument(cmd)
	if err != nil {
		return err
	}

	values := ind.Compute(instrument.Data)

	fmt.Println(TitleStyle.Render(fmt.Sprintf("%s %s", instrument.Symbol, ind.Name())))
	fmt.Println(renderIndicator(instrument.Data, values, int(cmd.Int("tail"))))

	return nil
}

func loadSingleInstrument(cmd *cli.Command) (types.Instrument, error) {
	if cmd.Bool("mock") {
		return mocks.Mock252Days("MOCK"), nil
	}

	path := cmd.String("data")
	if path == "" {
		return types.Instrument{}, errors.New(errors.ErrCodeMissingParameter, "either --data or --mock is required")
	}

	log, err := newLogger(cmd)
	if err != nil {
		return types.Instrument{}, err
	}

	return loadInstrumentFile(path, log)
}

func loadInstrumentFile(path string, log *logger.Logger) (types.Instrument, error) {
	ds, err := datasource.NewDataSource(":memory:", log)
	if err != nil {
		return types.Instrument{}, err
	}
	defer ds.Close()

	return datasource.LoadInstrument(ds, path, "", optional.None[time.Time](), optional.None[time.Time](), optional.None[datasource.Interval]())
}

// renderIndicator lays out the last tail readings next to their bar time and close.
// A series one shorter than the bars (volatility) is aligned to the later bar of each return.
func renderIndicator(bars types.PriceSeries, values types.Series, tail int) string {
	offset := len(bars) - len(values)

	start := 0
	if tail > 0 && len(values) > tail {
		start = len(values) - tail
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(BorderStyle).
		Headers("Time", "Close", "Value")

	for i := start; i < len(values); i++ {
		bar := bars[i+offset]
		t.Row(formatTimestamp(bar.Timestamp), strconv.FormatFloat(bar.Close, 'f', 4, 64), formatValue(values[i]))
	}

	return t.Render()
}

func formatValue(v types.Value) string {
	if v.IsNone() {
		return "-"
	}

	return strconv.FormatFloat(v.Unwrap(), 'f', 4, 64)
}

func formatTimestamp(ms int64) string {
	return time.UnixMilli(ms).UTC().Format("2006-01-02 15:04")
}
