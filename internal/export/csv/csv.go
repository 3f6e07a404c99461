package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/robalyx/cipherlab/internal/analysis"
)

const (
	// FrequenciesFile holds one row per counted letter.
	FrequenciesFile = "frequencies.csv"
	// CandidatesFile holds one row per brute-force candidate.
	CandidatesFile = "candidates.csv"
)

var (
	frequencyHeader = []string{"char", "count", "percentage"}
	candidateHeader = []string{"shift", "score", "preview", "top_chars"}
)

// Exporter handles exporting reports to csv files.
type Exporter struct {
	outDir string
}

// New creates a new csv exporter instance.
func New(outDir string) *Exporter {
	return &Exporter{outDir: outDir}
}

// Export writes the frequencies and, when present, the candidates to separate csv files.
func (e *Exporter) Export(report *analysis.Report) ([]string, error) {
	// Remove existing files if they exist
	for _, file := range []string{FrequenciesFile, CandidatesFile} {
		path := filepath.Join(e.outDir, file)
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to remove existing file %s: %w", file, err)
		}
	}

	written := make([]string, 0, 2)

	path, err := e.writeFile(FrequenciesFile, func(w io.Writer) error {
		return WriteFrequencies(w, report.Frequencies)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to export frequencies: %w", err)
	}
	written = append(written, path)

	if len(report.Candidates) > 0 {
		path, err := e.writeFile(CandidatesFile, func(w io.Writer) error {
			return WriteCandidates(w, report.Candidates)
		})
		if err != nil {
			return nil, fmt.Errorf("failed to export candidates: %w", err)
		}
		written = append(written, path)
	}

	return written, nil
}

// WriteFrequencies writes frequency entries as csv rows with a header.
func WriteFrequencies(w io.Writer, entries []analysis.FrequencyEntry) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(frequencyHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, entry := range entries {
		if err := writer.Write([]string{
			string(entry.Char),
			strconv.Itoa(entry.Count),
			fmt.Sprintf("%.2f", entry.Percentage),
		}); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteCandidates writes brute-force candidates as csv rows with a header.
func WriteCandidates(w io.Writer, candidates []analysis.Candidate) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(candidateHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, candidate := range candidates {
		topChars := make([]rune, 0, len(candidate.TopChars))
		for _, entry := range candidate.TopChars {
			topChars = append(topChars, entry.Char)
		}

		if err := writer.Write([]string{
			strconv.Itoa(candidate.Shift),
			fmt.Sprintf("%.2f", candidate.Score),
			candidate.Preview,
			string(topChars),
		}); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// writeFile creates filename in the output directory and fills it with write.
func (e *Exporter) writeFile(filename string, write func(io.Writer) error) (string, error) {
	path := filepath.Join(e.outDir, filename)

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create csv file: %w", err)
	}
	defer file.Close()

	if err := write(file); err != nil {
		return "", err
	}

	return path, nil
}
