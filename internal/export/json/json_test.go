package json_test

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/robalyx/cipherlab/internal/analysis"
	exportJSON "github.com/robalyx/cipherlab/internal/export/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshal(t *testing.T) {
	t.Parallel()

	report := analysis.BuildReport("AABB", nil, 0)

	indented, err := exportJSON.Marshal(report, false)
	require.NoError(t, err)
	assert.Contains(t, string(indented), "\n    \"source\"")

	compact, err := exportJSON.Marshal(report, true)
	require.NoError(t, err)
	assert.NotContains(t, string(compact), "\n")
	assert.Less(t, len(compact), len(indented))

	var decoded map[string]any
	require.NoError(t, sonic.Unmarshal(compact, &decoded))
	assert.Equal(t, "AABB", decoded["source"])

	frequencies, ok := decoded["frequencies"].([]any)
	require.True(t, ok)
	require.Len(t, frequencies, 2)

	first, ok := frequencies[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "A", first["char"])
	assert.InDelta(t, 50.0, first["percentage"], 0.001)
}

func TestWrite(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, exportJSON.Write(&buf, analysis.DetectPatterns("THE AAA"), true))
	assert.Equal(t, `{"repeatedChars":1,"commonWords":1,"doubleLetters":1}`+"\n", buf.String())
}

func TestExporterExport(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	paths, err := exportJSON.New(outDir, false).Export(analysis.BuildReport("Hello", nil, 0))
	require.NoError(t, err)
	require.Len(t, paths, 1)
	assert.True(t, strings.HasSuffix(paths[0], exportJSON.FileName))

	data, err := os.ReadFile(paths[0])
	require.NoError(t, err)
	assert.Contains(t, string(data), `"characters": 5`)
}
