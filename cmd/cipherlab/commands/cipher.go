package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"sync"
	"unicode/utf8"

	"github.com/robalyx/cipherlab/internal/cipher"
	"github.com/robalyx/cipherlab/internal/progress"
	"github.com/robalyx/cipherlab/internal/tui"
	"github.com/robalyx/cipherlab/internal/workbench"
	"github.com/sourcegraph/conc"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// maxLiveLine bounds a single live input line.
const maxLiveLine = 1 << 20

// progressWidth is the bar width in characters.
const progressWidth = 40

// CipherCommands returns the encrypt, decrypt, live and tui commands.
func CipherCommands(deps *CLIDependencies) []*cli.Command {
	return []*cli.Command{
		{
			Name:   "encrypt",
			Usage:  "Encrypt a text with a Caesar shift",
			Flags:  transformFlags(),
			Action: handleTransform(deps, cipher.ModeEncrypt),
		},
		{
			Name:   "decrypt",
			Usage:  "Decrypt a text with a Caesar shift",
			Flags:  transformFlags(),
			Action: handleTransform(deps, cipher.ModeDecrypt),
		},
		{
			Name:  "live",
			Usage: "Encrypt every stdin line as it arrives, dropping superseded results",
			Description: `Each input line replaces the previous one, like typing into a live preview.
Results of lines that were superseded while still processing are not printed.`,
			Flags:  []cli.Flag{shiftFlag()},
			Action: handleLive(deps),
		},
		{
			Name:   "tui",
			Usage:  "Open the interactive workbench with live output and frequency analysis",
			Action: handleTUI(deps),
		},
	}
}

func shiftFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "shift",
		Aliases: []string{"s"},
		Value:   workbench.DefaultShift,
		Usage:   "Shift value (Persian and Arabic-Indic digits are accepted)",
	}
}

func transformFlags() []cli.Flag {
	return append(inputFlags(),
		shiftFlag(),
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write the result to a file instead of stdout",
		},
		&cli.BoolFlag{
			Name:  "stats",
			Usage: "Print the alphabet, applied shift and timing to stderr",
		},
	)
}

// handleTransform handles the 'encrypt' and 'decrypt' commands.
func handleTransform(deps *CLIDependencies, mode cipher.Mode) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		text, err := deps.readInput(c)
		if err != nil {
			return err
		}

		app, err := deps.App(ctx, c)
		if err != nil {
			return err
		}

		req := workbench.Request{Text: text, Shift: c.String("shift")}

		var opts []cipher.BatchOption
		var bar *progress.Bar
		if utf8.RuneCountInString(text) > workbench.LargeInputThreshold {
			bar = progress.NewBar(deps.Stderr, progressWidth, workbench.ProcessingNotice)
			opts = append(opts, cipher.WithProgress(bar.Update))
		}

		var result *workbench.Result
		if mode == cipher.ModeEncrypt {
			result, err = app.Workbench.Encrypt(ctx, req, opts...)
		} else {
			result, err = app.Workbench.Decrypt(ctx, req, opts...)
		}
		if bar != nil {
			bar.Finish()
		}
		if err != nil {
			return requestError(err)
		}

		if c.Bool("stats") {
			printStats(deps.Stderr, result)
		}

		return deps.writeOutput(c, result.Output)
	}
}

// handleLive handles the 'live' command.
func handleLive(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		app, err := deps.App(ctx, c)
		if err != nil {
			return err
		}

		shift := c.String("shift")
		results := make(chan workbench.LiveResult)

		// Printer keeps results in sequence order
		var printed sync.WaitGroup
		printed.Add(1)
		go func() {
			defer printed.Done()

			var last uint64
			for result := range results {
				if result.Seq < last {
					continue
				}
				last = result.Seq
				_, _ = fmt.Fprintln(deps.Stdout, result.Output)
			}
		}()

		var wg conc.WaitGroup
		scanner := bufio.NewScanner(deps.Stdin)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLiveLine)

		for scanner.Scan() {
			req := workbench.Request{Text: scanner.Text(), Shift: shift}
			wg.Go(func() {
				result, fresh := app.Workbench.Live(ctx, req)
				if !fresh {
					return
				}
				if result.Err != nil {
					app.Logger.Debug("Live request failed", zap.Uint64("seq", result.Seq), zap.Error(result.Err))
				}
				results <- result
			})
		}

		wg.Wait()
		close(results)
		printed.Wait()

		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		return nil
	}
}

// handleTUI handles the 'tui' command.
func handleTUI(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		app, err := deps.App(ctx, c)
		if err != nil {
			return err
		}

		manager := tui.NewManager(ctx, app.Workbench, app.Logger)
		defer manager.Stop()

		return manager.Run()
	}
}

// printStats writes a short summary of a result.
func printStats(w io.Writer, result *workbench.Result) {
	_, _ = fmt.Fprintf(w, "mode=%s alphabet=%s size=%d shift=%d applied=%d characters=%d duration=%s\n",
		result.Mode, result.Alphabet, result.AlphabetSize, result.OriginalShift,
		result.AppliedShift, result.Characters, result.Duration)

	for _, entry := range result.Frequencies {
		_, _ = fmt.Fprintf(w, "  %c %5d %6.2f%%\n", entry.Char, entry.Count, entry.Percentage)
	}
}
