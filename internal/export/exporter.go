// Package export writes analysis reports to files.
package export

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/robalyx/cipherlab/internal/analysis"
	"github.com/robalyx/cipherlab/internal/export/chart"
	"github.com/robalyx/cipherlab/internal/export/csv"
	"github.com/robalyx/cipherlab/internal/export/json"
	"github.com/robalyx/cipherlab/internal/export/sqlite"
	"go.uber.org/zap"
)

var ErrUnsupportedFormat = errors.New("unsupported export format")

// Format represents a supported export format.
type Format string

const (
	FormatJSON   Format = "json"
	FormatCSV    Format = "csv"
	FormatSQLite Format = "sqlite"
	FormatPNG    Format = "png"
	FormatWebP   Format = "webp"
)

// Formats lists every supported format.
func Formats() []Format {
	return []Format{FormatJSON, FormatCSV, FormatSQLite, FormatPNG, FormatWebP}
}

// ParseFormat resolves a format name, ignoring case.
func ParseFormat(name string) (Format, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats() {
		if format == known {
			return format, nil
		}
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, name)
}

// Exporter writes reports into an output directory.
type Exporter struct {
	outDir  string
	compact bool
	formats []Format
	logger  *zap.Logger
}

// New creates a new exporter instance. Without formats every format is written.
func New(outDir string, compact bool, logger *zap.Logger, formats ...Format) *Exporter {
	if len(formats) == 0 {
		formats = Formats()
	}

	return &Exporter{
		outDir:  outDir,
		compact: compact,
		formats: formats,
		logger:  logger.Named("export"),
	}
}

// Export writes the report in each configured format and returns the written paths.
func (e *Exporter) Export(report *analysis.Report) ([]string, error) {
	if err := os.MkdirAll(e.outDir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var written []string
	for _, format := range e.formats {
		paths, err := e.export(format, report)
		if err != nil {
			return written, fmt.Errorf("failed to export %s format: %w", format, err)
		}

		if len(paths) == 0 {
			e.logger.Debug("Skipped format with nothing to write", zap.String("format", string(format)))
			continue
		}

		e.logger.Debug("Exported report", zap.String("format", string(format)), zap.Strings("paths", paths))
		written = append(written, paths...)
	}

	return written, nil
}

// export handles exporting data in the specified format.
func (e *Exporter) export(format Format, report *analysis.Report) ([]string, error) {
	var exporter interface {
		Export(report *analysis.Report) ([]string, error)
	}

	switch format {
	case FormatJSON:
		exporter = json.New(e.outDir, e.compact)
	case FormatCSV:
		exporter = csv.New(e.outDir)
	case FormatSQLite:
		exporter = sqlite.New(e.outDir)
	case FormatPNG:
		exporter = chart.New(e.outDir, chart.FormatPNG)
	case FormatWebP:
		exporter = chart.New(e.outDir, chart.FormatWebP)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, format)
	}

	return exporter.Export(report)
}
