package commands_test

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/robalyx/cipherlab/cmd/cipherlab/commands"
	"github.com/robalyx/cipherlab/internal/cipher"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"
)

// newConfig writes a config using a fresh sqlite store and log directory.
func newConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "cipherlab.toml")
	body := fmt.Sprintf(`version = 1

[debug]
log_dir = %q

[storage]
driver = "sqlite"
sqlite_path = %q
`, filepath.Join(dir, "logs"), filepath.Join(dir, "cipherlab.db"))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

// runCLI runs one command line and returns stdout.
func runCLI(t *testing.T, configPath, stdin string, args ...string) (string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	deps := &commands.CLIDependencies{
		Stdin:  strings.NewReader(stdin),
		Stdout: &stdout,
		Stderr: &stderr,
	}
	defer deps.Close()

	root := &cli.Command{
		Name: "cipherlab",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}},
		},
		Commands: slices.Concat(
			commands.CipherCommands(deps),
			commands.AnalysisCommands(deps),
			commands.HistoryCommands(deps),
		),
	}

	err := root.Run(t.Context(), append([]string{"cipherlab", "--config", configPath}, args...))
	return stdout.String(), err
}

func TestTransformCommands(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		stdin string
		args  []string
		want  string
	}{
		{
			name: "encrypt text flag",
			args: []string{"encrypt", "-t", "Hello, World!", "-s", "3"},
			want: "Khoor, Zruog!\n",
		},
		{
			name: "decrypt persian shift",
			args: []string{"decrypt", "--text", "Khoor", "--shift", "۳"},
			want: "Hello\n",
		},
		{
			name: "default shift",
			args: []string{"encrypt", "-t", "abc"},
			want: "def\n",
		},
		{
			name:  "stdin input",
			stdin: "xyz\n",
			args:  []string{"encrypt", "-s", "3"},
			want:  "abc\n",
		},
		{
			name:  "stdin crlf input",
			stdin: "Hello\r\n",
			args:  []string{"encrypt", "-s", "3"},
			want:  "Khoor\n",
		},
		{
			name: "persian text",
			args: []string{"encrypt", "-t", "سلام", "-s", "1"},
			want: "شمبن\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			out, err := runCLI(t, newConfig(t), tt.stdin, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, out)
		})
	}
}

func TestTransformErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{
			name:    "invalid shift",
			args:    []string{"encrypt", "-t", "abc", "-s", "abc"},
			wantErr: cipher.ErrInvalidShift,
		},
		{
			name:    "zero shift",
			args:    []string{"encrypt", "-t", "abc", "-s", "0"},
			wantErr: cipher.ErrInvalidShift,
		},
		{
			name:    "blank input",
			args:    []string{"decrypt", "-t", "   "},
			wantErr: cipher.ErrEmptyInput,
		},
		{
			name:    "text and file",
			args:    []string{"encrypt", "-t", "abc", "-f", "input.txt"},
			wantErr: commands.ErrConflictingInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := runCLI(t, newConfig(t), "", tt.args...)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestTransformOutputFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	input := filepath.Join(dir, "input.txt")
	output := filepath.Join(dir, "output.txt")
	require.NoError(t, os.WriteFile(input, []byte("Khoor Zruog"), 0o600))

	out, err := runCLI(t, newConfig(t), "", "decrypt", "-f", input, "-o", output)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", string(data))
}

func TestLive(t *testing.T) {
	t.Parallel()

	out, err := runCLI(t, newConfig(t), "abc\n", "live", "-s", "3")
	require.NoError(t, err)
	assert.Equal(t, "def\n", out)

	out, err = runCLI(t, newConfig(t), "abc\n", "live", "-s", "x")
	require.NoError(t, err)
	assert.Equal(t, "خطا: مقدار جابجایی نامعتبر\n", out)
}

func TestLastAndHistory(t *testing.T) {
	t.Parallel()

	configPath := newConfig(t)

	_, err := runCLI(t, configPath, "", "encrypt", "-t", "first", "-s", "1")
	require.NoError(t, err)
	_, err = runCLI(t, configPath, "", "decrypt", "-t", "second", "-s", "2")
	require.NoError(t, err)

	out, err := runCLI(t, configPath, "", "last")
	require.NoError(t, err)
	assert.Equal(t, "second\n", out)

	out, err = runCLI(t, configPath, "", "history", "--limit", "1")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], "Decrypt")

	out, err = runCLI(t, configPath, "", "history", "--json")
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(out, `"id"`))
}

func TestAnalyze(t *testing.T) {
	t.Parallel()

	t.Run("text", func(t *testing.T) {
		t.Parallel()

		out, err := runCLI(t, newConfig(t), "", "analyze", "-t", "Hello World")
		require.NoError(t, err)
		assert.Contains(t, out, "Letters:    10")
		assert.Contains(t, out, "L     3  30.00%")
		assert.Contains(t, out, "Double letters:      1")
	})

	t.Run("csv", func(t *testing.T) {
		t.Parallel()

		out, err := runCLI(t, newConfig(t), "", "analyze", "-t", "aab", "--format", "csv")
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(out), "\n")
		require.Len(t, lines, 3)
		assert.Equal(t, "A,2,66.67", lines[1])
	})

	t.Run("json with candidates", func(t *testing.T) {
		t.Parallel()

		out, err := runCLI(t, newConfig(t), "", "analyze", "-t", "Khoor", "--format", "json", "--candidates", "2")
		require.NoError(t, err)
		assert.Contains(t, out, `"letters": 5`)
		assert.Equal(t, 2, strings.Count(out, `"shift"`))
	})

	t.Run("chart and export", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		chartPath := filepath.Join(dir, "freq.webp")
		exportDir := filepath.Join(dir, "reports")

		_, err := runCLI(t, newConfig(t), "", "analyze", "-t", "Hello World",
			"--chart", chartPath, "--export", exportDir, "--export-format", "json")
		require.NoError(t, err)
		assert.FileExists(t, chartPath)

		matches, err := filepath.Glob(filepath.Join(exportDir, "*", "report.json"))
		require.NoError(t, err)
		assert.Len(t, matches, 1)
	})

	t.Run("unknown format", func(t *testing.T) {
		t.Parallel()

		_, err := runCLI(t, newConfig(t), "", "analyze", "-t", "abc", "--format", "xml")
		require.ErrorIs(t, err, commands.ErrUnknownOutputFormat)
	})
}

func TestBruteForce(t *testing.T) {
	t.Parallel()

	out, err := runCLI(t, newConfig(t), "", "bruteforce", "-t", "Khoor Zruog", "--top", "3", "--format", "csv")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Len(t, lines, 4)

	out, err = runCLI(t, newConfig(t), "", "bruteforce", "-t", "Khoor Zruog", "--top", "0")
	require.NoError(t, err)
	assert.Len(t, strings.Split(strings.TrimSpace(out), "\n"), 25)
}
