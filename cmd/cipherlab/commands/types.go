package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/robalyx/cipherlab/internal/setup"
	"github.com/robalyx/cipherlab/internal/workbench"
	"github.com/urfave/cli/v3"
)

var (
	ErrUnknownOutputFormat = errors.New("unknown output format")
	ErrConflictingInput    = errors.New("--text and --file cannot be used together")
)

// Output formats accepted by the --format flags.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// Component names the log sessions of the CLI.
const Component = "cli"

// CLIDependencies holds the common dependencies needed by CLI commands.
// The application is initialized on first use so that commands see the
// --config flag of the root command.
type CLIDependencies struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	app *setup.App
}

// App returns the initialized application, creating it on first call.
func (d *CLIDependencies) App(ctx context.Context, c *cli.Command) (*setup.App, error) {
	if d.app != nil {
		return d.app, nil
	}

	app, err := setup.InitializeApp(ctx, Component, c.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize application: %w", err)
	}
	d.app = app

	return app, nil
}

// Close releases the application if one was initialized.
func (d *CLIDependencies) Close() {
	if d.app != nil {
		d.app.Cleanup()
		d.app = nil
	}
}

// inputFlags are shared by the commands that read a text.
func inputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "text",
			Aliases: []string{"t"},
			Usage:   "Input text (reads stdin when neither --text nor --file is set)",
		},
		&cli.StringFlag{
			Name:    "file",
			Aliases: []string{"f"},
			Usage:   "Read the input text from a file",
		},
	}
}

// readInput resolves the input text from --text, --file or stdin.
func (d *CLIDependencies) readInput(c *cli.Command) (string, error) {
	text := c.String("text")
	path := c.String("file")

	switch {
	case text != "" && path != "":
		return "", ErrConflictingInput
	case text != "":
		return text, nil
	case path != "":
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read input file: %w", err)
		}
		return string(data), nil
	}

	data, err := io.ReadAll(d.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}

	input := string(data)
	if trimmed, ok := strings.CutSuffix(input, "\r\n"); ok {
		return trimmed, nil
	}
	return strings.TrimSuffix(input, "\n"), nil
}

// writeOutput writes s to --output when set, stdout otherwise.
func (d *CLIDependencies) writeOutput(c *cli.Command, s string) error {
	if path := c.String("output"); path != "" {
		if err := os.WriteFile(path, []byte(s), 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		return nil
	}

	_, err := fmt.Fprintln(d.Stdout, s)
	return err
}

// requestError pairs a workbench error with the message a user sees.
func requestError(err error) error {
	msg := workbench.UserMessage(err)
	if msg == err.Error() {
		return err
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// checkFormat validates a --format value.
func checkFormat(format string) error {
	switch format {
	case FormatText, FormatJSON, FormatCSV:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownOutputFormat, format)
	}
}
