package main

import (
	"context"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rxtech-lab/argo-alpha/internal/backtest"
	"github.com/rxtech-lab/argo-alpha/pkg/errors"
	"github.com/urfave/cli/v3"
)

func viewCommand() *cli.Command {
	return &cli.Command{
		Name:  "view",
		Usage: "Browse the signals of a report interactively",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "report",
				Aliases: []string{"r"},
				Usage:   "Report written by the run command",
				Value:   filepath.Join("results", "report.yaml"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			reports, err := backtest.ReadReports(cmd.String("report"))
			if err != nil {
				return err
			}

			if len(reports) == 0 {
				return errors.Newf(errors.ErrCodeNoDataFound, "%s holds no reports", cmd.String("report"))
			}

			_, err = tea.NewProgram(NewModel(reports), tea.WithAltScreen(), tea.WithContext(ctx)).Run()

			return err
		},
	}
}
