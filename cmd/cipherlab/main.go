package main

import (
	"context"
	"log"
	"os"
	"slices"

	"github.com/robalyx/cipherlab/cmd/cipherlab/commands"
	"github.com/robalyx/cipherlab/internal/setup/config"
	"github.com/urfave/cli/v3"
)

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	deps := &commands.CLIDependencies{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
	defer deps.Close()

	app := &cli.Command{
		Name:    "cipherlab",
		Usage:   "Caesar cipher workbench with frequency analysis",
		Version: config.RepositoryVersion,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to " + config.FileName + " (searched in the usual locations when unset)",
			},
		},
		Commands: slices.Concat(
			commands.CipherCommands(deps),
			commands.AnalysisCommands(deps),
			commands.HistoryCommands(deps),
		),
	}

	return app.Run(context.Background(), os.Args)
}
