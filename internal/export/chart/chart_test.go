package chart_test

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/HugoSmits86/nativewebp"
	"github.com/robalyx/cipherlab/internal/analysis"
	"github.com/robalyx/cipherlab/internal/export/chart"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/webp"
)

func TestRender(t *testing.T) {
	t.Parallel()

	entries := analysis.Analyze("The quick brown fox jumps over the lazy dog")

	t.Run("png", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, chart.Render(&buf, entries, chart.FormatPNG))

		img, err := png.Decode(&buf)
		require.NoError(t, err)
		assert.Equal(t, 1024, img.Bounds().Dx())
		assert.Equal(t, 512, img.Bounds().Dy())
	})

	t.Run("webp", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, chart.Render(&buf, entries, chart.FormatWebP))

		data := buf.Bytes()

		img, err := nativewebp.Decode(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 1024, img.Bounds().Dx())
		assert.Equal(t, 512, img.Bounds().Dy())

		// Lossless output must also decode with x/image/webp
		cfg, err := webp.DecodeConfig(bytes.NewReader(data))
		require.NoError(t, err)
		assert.Equal(t, 1024, cfg.Width)
		assert.Equal(t, 512, cfg.Height)
	})

	t.Run("single letter", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		require.NoError(t, chart.Render(&buf, analysis.Analyze("zzz"), chart.FormatPNG))
		assert.Positive(t, buf.Len())
	})
}

func TestRenderNoData(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := chart.Render(&buf, nil, chart.FormatPNG)
	require.ErrorIs(t, err, chart.ErrNoData)
}

func TestExporterExport(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	report := analysis.BuildReport("Hello World", nil, 0)

	paths, err := chart.New(outDir, chart.FormatWebP).Export(report)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(outDir, "frequency.webp")}, paths)

	info, err := os.Stat(paths[0])
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestExporterExportWithoutLetters(t *testing.T) {
	t.Parallel()

	outDir := t.TempDir()
	report := analysis.BuildReport("سلام دنیا ۱۲۳", nil, 0)

	for _, format := range []chart.Format{chart.FormatPNG, chart.FormatWebP} {
		paths, err := chart.New(outDir, format).Export(report)
		require.NoError(t, err)
		assert.Empty(t, paths)

		_, err = os.Stat(filepath.Join(outDir, "frequency."+string(format)))
		assert.True(t, os.IsNotExist(err))
	}
}
