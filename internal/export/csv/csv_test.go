package csv_test

import (
	"bytes"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/robalyx/cipherlab/internal/analysis"
	"github.com/robalyx/cipherlab/internal/cipher"
	exportCSV "github.com/robalyx/cipherlab/internal/export/csv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// readCSVFile reads every row of a csv file.
func readCSVFile(t *testing.T, path string) [][]string {
	t.Helper()

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestWriteFrequencies(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, exportCSV.WriteFrequencies(&buf, analysis.Frequency("aab")))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"char", "count", "percentage"},
		{"A", "2", "66.67"},
		{"B", "1", "33.33"},
	}, rows)
}

func TestExporterExport(t *testing.T) {
	t.Parallel()

	engine := cipher.NewEngine(cipher.DefaultOptions(), zap.NewNop())

	tests := []struct {
		name          string
		report        *analysis.Report
		expectedFiles []string
		topRow        []string
	}{
		{
			name:          "frequencies only",
			report:        analysis.BuildReport("Hello World", nil, 0),
			expectedFiles: []string{exportCSV.FrequenciesFile},
			topRow:        []string{"L", "3", "30.00"},
		},
		{
			name:          "with candidates",
			report:        analysis.BuildReport("Khoor Zruog", engine, 3),
			expectedFiles: []string{exportCSV.FrequenciesFile, exportCSV.CandidatesFile},
			topRow:        []string{"O", "3", "30.00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			outDir := t.TempDir()
			paths, err := exportCSV.New(outDir).Export(tt.report)
			require.NoError(t, err)
			require.Len(t, paths, len(tt.expectedFiles))

			for i, name := range tt.expectedFiles {
				assert.Equal(t, filepath.Join(outDir, name), paths[i])
			}

			frequencies := readCSVFile(t, paths[0])
			assert.Len(t, frequencies, len(tt.report.Frequencies)+1)
			assert.Equal(t, tt.topRow, frequencies[1])

			if len(tt.report.Candidates) > 0 {
				candidates := readCSVFile(t, paths[1])
				require.Len(t, candidates, 4)
				assert.Equal(t, []string{"shift", "score", "preview", "top_chars"}, candidates[0])
			}
		})
	}
}

func TestExporterReplacesStaleCandidates(t *testing.T) {
	t.Parallel()

	engine := cipher.NewEngine(cipher.DefaultOptions(), zap.NewNop())
	outDir := t.TempDir()
	exporter := exportCSV.New(outDir)

	_, err := exporter.Export(analysis.BuildReport("Khoor", engine, 2))
	require.NoError(t, err)

	_, err = exporter.Export(analysis.BuildReport("Hello", nil, 0))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(outDir, exportCSV.CandidatesFile))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteCandidatesEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, exportCSV.WriteCandidates(&buf, nil))

	reader := csv.NewReader(&buf)
	header, err := reader.Read()
	require.NoError(t, err)
	assert.Equal(t, []string{"shift", "score", "preview", "top_chars"}, header)

	_, err = reader.Read()
	assert.Equal(t, io.EOF, err)
}
