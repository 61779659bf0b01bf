package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rxtech-lab/argo-alpha/internal/datasource"
	"github.com/rxtech-lab/argo-alpha/mocks"
	"github.com/rxtech-lab/argo-alpha/pkg/errors"
	"github.com/urfave/cli/v3"
)

func generateCommand() *cli.Command {
	return &cli.Command{
		Name:  "generate",
		Usage: "Write synthetic daily bars to a CSV or Parquet file",
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:  "symbols",
				Usage: "Symbols to generate, one file each",
				Value: []string{"TEST"},
			},
			&cli.IntFlag{
				Name:  "count",
				Usage: "Number of bars per symbol",
				Value: 252,
			},
			&cli.IntFlag{
				Name:  "seed",
				Usage: "Random seed",
				Value: 42,
			},
			&cli.StringFlag{
				Name:  "format",
				Usage: "Output format: csv or parquet",
				Value: "parquet",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Output directory",
				Value:   "data",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			paths, err := generateData(cmd.String("output"), cmd.String("format"), cmd.StringSlice("symbols"), int(cmd.Int("count")), int64(cmd.Int("seed")))
			if err != nil {
				return err
			}

			for _, path := range paths {
				fmt.Println(HelpStyle.Render("Wrote " + path))
			}

			return nil
		},
	}
}

// generateData writes one file of generated bars per symbol into dir.
func generateData(dir string, format string, symbols []string, count int, seed int64) ([]string, error) {
	format = strings.ToLower(format)
	if format != "csv" && format != "parquet" {
		return nil, errors.Newf(errors.ErrCodeUnsupportedFormat, "unsupported format %q", format)
	}

	if count <= 0 {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "count must be positive, got %d", count)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	instruments := mocks.NewDataGenerator(seed).GenerateMultiSymbol(symbols, mocks.DailyConfig("", count))
	paths := make([]string, 0, len(instruments))

	for _, instrument := range instruments {
		path, err := datasource.WriteSeries(filepath.Join(dir, instrument.Symbol+"."+format), instrument.Data)
		if err != nil {
			return nil, err
		}

		paths = append(paths, path)
	}

	return paths, nil
}
