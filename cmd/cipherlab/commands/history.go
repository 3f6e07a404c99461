package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/robalyx/cipherlab/internal/export/json"
	"github.com/urfave/cli/v3"
)

// HistoryCommands returns the commands reading persisted state.
func HistoryCommands(deps *CLIDependencies) []*cli.Command {
	return []*cli.Command{
		{
			Name:   "last",
			Usage:  "Print the last saved input",
			Action: handleLast(deps),
		},
		{
			Name:  "history",
			Usage: "List recent operations, newest first",
			Flags: []cli.Flag{
				&cli.IntFlag{
					Name:  "limit",
					Usage: "Maximum entries to list (0 = all kept)",
					Value: 20,
				},
				&cli.BoolFlag{
					Name:  "json",
					Usage: "Print the entries as JSON",
				},
			},
			Action: handleHistory(deps),
		},
	}
}

// handleLast handles the 'last' command.
func handleLast(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		app, err := deps.App(ctx, c)
		if err != nil {
			return err
		}

		text, found, err := app.Workbench.Restore(ctx)
		if err != nil {
			return err
		}
		if !found {
			_, _ = fmt.Fprintln(deps.Stderr, "No saved input")
			return nil
		}

		_, err = fmt.Fprintln(deps.Stdout, text)
		return err
	}
}

// handleHistory handles the 'history' command.
func handleHistory(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		app, err := deps.App(ctx, c)
		if err != nil {
			return err
		}

		entries, err := app.Workbench.History(ctx, int(c.Int("limit")))
		if err != nil {
			return err
		}

		if c.Bool("json") {
			return json.Write(deps.Stdout, entries, false)
		}

		for _, entry := range entries {
			_, _ = fmt.Fprintf(deps.Stdout, "%s  %-7s  %-6s  %3d  %6d  %s\n",
				entry.CreatedAt.Local().Format(time.DateTime), entry.Mode, entry.Alphabet,
				entry.AppliedShift, entry.Characters, entry.Preview)
		}
		return nil
	}
}
