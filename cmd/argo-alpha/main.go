package main

import (
	"context"
	"log"
	"os"
	"os/signal"

	"github.com/rxtech-lab/argo-alpha/internal/logger"
	"github.com/rxtech-lab/argo-alpha/internal/version"
	"github.com/urfave/cli/v3"
)

func newLogger(cmd *cli.Command) (*logger.Logger, error) {
	if cmd.Bool("debug") {
		return logger.NewDevelopmentLogger()
	}

	return logger.NewLogger()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := &cli.Command{
		Name:    "argo-alpha",
		Usage:   "Indicator, signal and performance analytics over OHLCV bars",
		Version: version.GetVersion(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable human readable debug logging",
			},
		},
		Commands: []*cli.Command{
			runCommand(),
			indicatorsCommand(),
			schemaCommand(),
			generateCommand(),
			viewCommand(),
			{
				Name:  "version",
				Usage: "Print the argo-alpha version",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					_, err := os.Stdout.WriteString(version.GetVersion() + "\n")
					return err
				},
			},
		},
	}

	if err := cmd.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
