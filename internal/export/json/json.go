package json

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	"github.com/robalyx/cipherlab/internal/analysis"
	"github.com/tdewolff/minify/v2"
	minjson "github.com/tdewolff/minify/v2/json"
)

// FileName is the name of the written report file.
const FileName = "report.json"

// Marshal encodes v as indented JSON, or minified JSON when compact is set.
func Marshal(v any, compact bool) ([]byte, error) {
	data, err := sonic.MarshalIndent(v, "", "    ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report: %w", err)
	}

	if !compact {
		return data, nil
	}

	m := minify.New()
	m.AddFunc("application/json", minjson.Minify)

	minified, err := m.Bytes("application/json", data)
	if err != nil {
		return nil, fmt.Errorf("failed to minify report: %w", err)
	}

	return minified, nil
}

// Write encodes v to w followed by a newline.
func Write(w io.Writer, v any, compact bool) error {
	data, err := Marshal(v, compact)
	if err != nil {
		return err
	}

	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}

// Exporter handles exporting reports to JSON files.
type Exporter struct {
	outDir  string
	compact bool
}

// New creates a new JSON exporter instance.
func New(outDir string, compact bool) *Exporter {
	return &Exporter{outDir: outDir, compact: compact}
}

// Export writes the report to report.json.
func (e *Exporter) Export(report *analysis.Report) ([]string, error) {
	data, err := Marshal(report, e.compact)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(e.outDir, FileName)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", FileName, err)
	}

	return []string{path}, nil
}
