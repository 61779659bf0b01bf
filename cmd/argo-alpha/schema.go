package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rxtech-lab/argo-alpha/internal/backtest"
	"github.com/urfave/cli/v3"
	"gopkg.in/yaml.v3"
)

func schemaCommand() *cli.Command {
	return &cli.Command{
		Name:  "schema",
		Usage: "Write the config JSON schema and a sample config",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "dir",
				Aliases: []string{"o"},
				Usage:   "Output directory",
				Value:   "config",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			schemaPath, samplePath, err := writeSchema(cmd.String("dir"))
			if err != nil {
				return err
			}

			fmt.Println(HelpStyle.Render("Schema written to " + schemaPath))

			if samplePath != "" {
				fmt.Println(HelpStyle.Render("Sample config written to " + samplePath))
			}

			return nil
		},
	}
}

const schemaName = "argo-alpha-config.json"

// writeSchema writes the schema into dir and, when none exists yet, a sample
// config pointing at it. The sample path is empty when it was left untouched.
func writeSchema(dir string) (string, string, error) {
	config := backtest.DefaultConfig()

	schemaJSON, err := config.GenerateSchemaJSON()
	if err != nil {
		return "", "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", "", err
	}

	schemaPath := filepath.Join(dir, schemaName)
	if err := os.WriteFile(schemaPath, []byte(schemaJSON), 0o644); err != nil {
		return "", "", err
	}

	samplePath := filepath.Join(dir, "argo-alpha-config.yaml")
	if _, err := os.Stat(samplePath); !os.IsNotExist(err) {
		return schemaPath, "", nil
	}

	yamlBytes, err := yaml.Marshal(config)
	if err != nil {
		return "", "", err
	}

	yamlBytes = append([]byte("# yaml-language-server: $schema="+schemaName+"\n"), yamlBytes...)
	if err := os.WriteFile(samplePath, yamlBytes, 0o644); err != nil {
		return "", "", err
	}

	return schemaPath, samplePath, nil
}
