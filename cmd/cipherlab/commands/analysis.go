package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/robalyx/cipherlab/internal/analysis"
	"github.com/robalyx/cipherlab/internal/export"
	"github.com/robalyx/cipherlab/internal/export/chart"
	"github.com/robalyx/cipherlab/internal/export/csv"
	"github.com/robalyx/cipherlab/internal/export/json"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

// AnalysisCommands returns the cryptanalysis commands.
func AnalysisCommands(deps *CLIDependencies) []*cli.Command {
	return []*cli.Command{
		{
			Name:  "analyze",
			Usage: "Show letter frequencies and patterns of a text",
			Description: `Count the letters of a text, score it against English and look for
repeated characters, common words and double letters.

Examples:
  cipherlab analyze -t "Khoor Zruog"                   # Print a text report
  cipherlab analyze -f secret.txt --format json        # Print the report as JSON
  cipherlab analyze -f secret.txt --chart freq.webp    # Also draw the frequency chart
  cipherlab analyze -f secret.txt --export reports     # Write every export format`,
			Flags: append(inputFlags(),
				formatFlag(),
				&cli.BoolFlag{
					Name:  "compact",
					Usage: "Minify JSON output",
				},
				&cli.IntFlag{
					Name:  "candidates",
					Usage: "Attach the best brute-force candidates to the report (0 = none)",
				},
				&cli.StringFlag{
					Name:  "chart",
					Usage: "Write the frequency bar chart to this path (.png or .webp)",
				},
				&cli.StringFlag{
					Name:  "export",
					Usage: "Write the report into a timestamped folder under this directory",
				},
				&cli.StringSliceFlag{
					Name:  "export-format",
					Usage: "Export formats (json, csv, sqlite, png, webp); all when unset",
				},
			),
			Action: handleAnalyze(deps),
		},
		{
			Name:  "bruteforce",
			Usage: "Try every Latin shift and rank the results by English likelihood",
			Flags: append(inputFlags(),
				formatFlag(),
				&cli.IntFlag{
					Name:  "top",
					Usage: "Number of candidates to show",
					Value: 5,
				},
			),
			Action: handleBruteForce(deps),
		},
	}
}

func formatFlag() cli.Flag {
	return &cli.StringFlag{
		Name:  "format",
		Value: FormatText,
		Usage: "Output format (text, json, csv)",
	}
}

// handleAnalyze handles the 'analyze' command.
func handleAnalyze(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		format := c.String("format")
		if err := checkFormat(format); err != nil {
			return err
		}

		formats := make([]export.Format, 0, len(c.StringSlice("export-format")))
		for _, name := range c.StringSlice("export-format") {
			f, err := export.ParseFormat(name)
			if err != nil {
				return err
			}
			formats = append(formats, f)
		}

		text, err := deps.readInput(c)
		if err != nil {
			return err
		}

		app, err := deps.App(ctx, c)
		if err != nil {
			return err
		}

		var decrypter analysis.Decrypter
		top := int(c.Int("candidates"))
		if top > 0 {
			decrypter = app.Engine
		}
		report := analysis.BuildReport(text, decrypter, top)

		if path := c.String("chart"); path != "" {
			if err := writeChart(path, report.Frequencies); err != nil {
				return err
			}
		}

		if dir := c.String("export"); dir != "" {
			outDir := filepath.Join(dir, time.Now().UTC().Format("2006-01-02_150405"))
			paths, err := export.New(outDir, c.Bool("compact"), app.Logger, formats...).Export(report)
			if err != nil {
				return fmt.Errorf("failed to export report: %w", err)
			}
			app.Logger.Info("Exported report", zap.Strings("paths", paths))
		}

		switch format {
		case FormatJSON:
			return json.Write(deps.Stdout, report, c.Bool("compact"))
		case FormatCSV:
			return csv.WriteFrequencies(deps.Stdout, report.Frequencies)
		default:
			printReport(deps.Stdout, report)
			return nil
		}
	}
}

// handleBruteForce handles the 'bruteforce' command.
func handleBruteForce(deps *CLIDependencies) cli.ActionFunc {
	return func(ctx context.Context, c *cli.Command) error {
		format := c.String("format")
		if err := checkFormat(format); err != nil {
			return err
		}

		text, err := deps.readInput(c)
		if err != nil {
			return err
		}

		app, err := deps.App(ctx, c)
		if err != nil {
			return err
		}

		candidates := analysis.BruteForce(app.Engine, text)
		if top := int(c.Int("top")); top > 0 && top < len(candidates) {
			candidates = candidates[:top]
		}

		switch format {
		case FormatJSON:
			return json.Write(deps.Stdout, candidates, false)
		case FormatCSV:
			return csv.WriteCandidates(deps.Stdout, candidates)
		default:
			printCandidates(deps.Stdout, candidates)
			return nil
		}
	}
}

// writeChart renders the frequency chart, picking the encoding from the extension.
func writeChart(path string, entries []analysis.FrequencyEntry) error {
	format := chart.FormatPNG
	if strings.EqualFold(filepath.Ext(path), ".webp") {
		format = chart.FormatWebP
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer file.Close()

	if err := chart.Render(file, entries, format); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// printReport writes a human-readable report.
func printReport(w io.Writer, report *analysis.Report) {
	_, _ = fmt.Fprintf(w, "Source:     %s\n", report.Source)
	_, _ = fmt.Fprintf(w, "Characters: %d\n", report.Characters)
	_, _ = fmt.Fprintf(w, "Letters:    %d\n", report.Letters)
	_, _ = fmt.Fprintf(w, "Score:      %.1f\n", report.Score)

	_, _ = fmt.Fprintln(w, "\nFrequencies:")
	for _, entry := range report.Frequencies {
		_, _ = fmt.Fprintf(w, "  %c %5d %6.2f%%\n", entry.Char, entry.Count, entry.Percentage)
	}

	_, _ = fmt.Fprintln(w, "\nPatterns:")
	_, _ = fmt.Fprintf(w, "  Repeated characters: %d\n", report.Patterns.RepeatedChars)
	_, _ = fmt.Fprintf(w, "  Common words:        %d\n", report.Patterns.CommonWords)
	_, _ = fmt.Fprintf(w, "  Double letters:      %d\n", report.Patterns.DoubleLetters)

	if len(report.Candidates) > 0 {
		_, _ = fmt.Fprintln(w, "\nCandidates:")
		printCandidates(w, report.Candidates)
	}
}

// printCandidates writes one line per candidate.
func printCandidates(w io.Writer, candidates []analysis.Candidate) {
	for _, c := range candidates {
		var top strings.Builder
		for _, entry := range c.TopChars {
			top.WriteRune(entry.Char)
		}
		_, _ = fmt.Fprintf(w, "  %2d  %5.1f  %-3s  %s\n", c.Shift, c.Score, top.String(), c.Preview)
	}
}
